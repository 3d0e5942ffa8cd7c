package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"
)

const stateTesting State = "testing_step"

// fakeContext implements just enough of tele.Context for dispatch.
type fakeContext struct {
	tele.Context
	sender *tele.User
	bag    map[string]any
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID},
		bag:    make(map[string]any),
	}
}

func (c *fakeContext) Sender() *tele.User  { return c.sender }
func (c *fakeContext) Chat() *tele.Chat    { return &tele.Chat{ID: c.sender.ID} }
func (c *fakeContext) Update() tele.Update { return tele.Update{ID: 1} }
func (c *fakeContext) Get(key string) any  { return c.bag[key] }
func (c *fakeContext) Set(key string, v any) {
	c.bag[key] = v
}

func TestMemoryManagerStates(t *testing.T) {
	m := NewMemoryManager()

	assert.Equal(t, StateIdle, m.GetState(1))
	assert.False(t, m.HasState(1))
	assert.False(t, m.InProgress(1))

	m.SetState(1, stateTesting)
	assert.Equal(t, stateTesting, m.GetState(1))
	assert.True(t, m.HasState(1))
	assert.True(t, m.InProgress(1))

	// Other users are unaffected.
	assert.False(t, m.HasState(2))

	m.ClearState(1)
	assert.Equal(t, StateIdle, m.GetState(1))
	assert.False(t, m.InProgress(1))
}

func TestMemoryManagerTempData(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, stateTesting)
	m.SetTemp(1, "exercise_id", int64(42))
	m.SetTemp(1, "date", "2025-03-14")

	id, ok := m.GetTempInt64(1, "exercise_id")
	require.True(t, ok)
	assert.EqualValues(t, 42, id)

	day, ok := m.GetTempString(1, "date")
	require.True(t, ok)
	assert.Equal(t, "2025-03-14", day)

	_, ok = m.GetTemp(1, "missing")
	assert.False(t, ok)
	_, ok = m.GetTempInt64(1, "date")
	assert.False(t, ok)

	// ClearState keeps the data bag, Clear drops everything.
	m.ClearState(1)
	_, ok = m.GetTempInt64(1, "exercise_id")
	assert.True(t, ok)

	m.ClearTemp(1, "exercise_id")
	_, ok = m.GetTempInt64(1, "exercise_id")
	assert.False(t, ok)

	m.Clear(1)
	_, ok = m.GetTempString(1, "date")
	assert.False(t, ok)
}

func TestMemoryManagerDispatch(t *testing.T) {
	m := NewMemoryManager()

	var calls int
	m.RegisterHandler(stateTesting, func(c tele.Context) error {
		calls++
		return nil
	})

	c := newFakeContext(1)

	// Idle users fall through without invoking any handler.
	require.NoError(t, m.ManagerHandler(c))
	assert.Zero(t, calls)

	m.SetState(1, stateTesting)
	require.NoError(t, m.ManagerHandler(c))
	assert.Equal(t, 1, calls)

	// A state with no registered handler is a no-op, not an error.
	m.SetState(1, State("unregistered"))
	require.NoError(t, m.ManagerHandler(newFakeContext(1)))
	assert.Equal(t, 1, calls)
}

func TestManagersDoNotShareHandlers(t *testing.T) {
	a := NewMemoryManager()
	b := NewMemoryManager()

	var aCalls, bCalls int
	a.RegisterHandler(stateTesting, func(c tele.Context) error { aCalls++; return nil })
	b.RegisterHandler(stateTesting, func(c tele.Context) error { bCalls++; return nil })

	a.SetState(1, stateTesting)
	b.SetState(1, stateTesting)

	require.NoError(t, a.ManagerHandler(newFakeContext(1)))
	assert.Equal(t, 1, aCalls)
	assert.Zero(t, bCalls)
}
