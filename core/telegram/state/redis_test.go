package state

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

func newRedisManager(t *testing.T, opts RedisOptions) (Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisManager(client, opts), mr
}

func TestRedisManagerStates(t *testing.T) {
	m, _ := newRedisManager(t, RedisOptions{})

	assert.Equal(t, StateIdle, m.GetState(1))
	assert.False(t, m.InProgress(1))

	m.SetState(1, stateTesting)
	assert.Equal(t, stateTesting, m.GetState(1))
	assert.True(t, m.InProgress(1))
	assert.False(t, m.InProgress(2))

	m.ClearState(1)
	assert.Equal(t, StateIdle, m.GetState(1))
}

func TestRedisManagerTempDataSurvivesJSON(t *testing.T) {
	m, _ := newRedisManager(t, RedisOptions{})

	m.SetState(1, stateTesting)
	m.SetTemp(1, "exercise_id", int64(42))
	m.SetTemp(1, "date", "2025-03-14")

	// The JSON round-trip widens numbers to float64; the typed getter
	// narrows them back.
	id, ok := m.GetTempInt64(1, "exercise_id")
	require.True(t, ok)
	assert.EqualValues(t, 42, id)

	day, ok := m.GetTempString(1, "date")
	require.True(t, ok)
	assert.Equal(t, "2025-03-14", day)

	raw, ok := m.GetTemp(1, "exercise_id")
	require.True(t, ok)
	assert.IsType(t, float64(0), raw)

	// ClearState keeps the bag.
	m.ClearState(1)
	_, ok = m.GetTempInt64(1, "exercise_id")
	assert.True(t, ok)

	m.ClearTemp(1, "date")
	_, ok = m.GetTempString(1, "date")
	assert.False(t, ok)

	m.Clear(1)
	assert.Equal(t, StateIdle, m.GetState(1))
	_, ok = m.GetTempInt64(1, "exercise_id")
	assert.False(t, ok)
}

func TestRedisManagerKeyPrefixAndTTL(t *testing.T) {
	m, mr := newRedisManager(t, RedisOptions{KeyPrefix: "gym", TTL: time.Minute})

	m.SetState(7, stateTesting)
	require.True(t, mr.Exists("gym:7"))

	ttl := mr.TTL("gym:7")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	// A stalled session expires on its own.
	mr.FastForward(2 * time.Minute)
	assert.Equal(t, StateIdle, m.GetState(7))
}

func TestRedisManagerDispatch(t *testing.T) {
	m, _ := newRedisManager(t, RedisOptions{})

	var calls int
	m.RegisterHandler(stateTesting, func(c tele.Context) error {
		calls++
		return nil
	})

	require.NoError(t, m.ManagerHandler(newFakeContext(1)))
	assert.Zero(t, calls)

	m.SetState(1, stateTesting)
	require.NoError(t, m.ManagerHandler(newFakeContext(1)))
	assert.Equal(t, 1, calls)
}
