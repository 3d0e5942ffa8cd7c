package state

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SI1V/GymStars/core/logger"

	tele "gopkg.in/telebot.v4"
)

const redisOpTimeout = 2 * time.Second

// RedisOptions configures the Redis-backed session manager.
type RedisOptions struct {
	// KeyPrefix namespaces session keys; defaults to "fsm".
	KeyPrefix string
	// TTL expires stalled sessions. Zero keeps sessions until cleared,
	// matching the in-memory manager.
	TTL time.Duration
}

type redisManager struct {
	client   redis.UniversalClient
	prefix   string
	ttl      time.Duration
	registry *handlerRegistry
}

// NewRedisManager constructs a Manager backed by Redis. Sessions survive
// process restarts and, when a TTL is set, expire on their own.
func NewRedisManager(client redis.UniversalClient, opts RedisOptions) Manager {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "fsm"
	}
	return &redisManager{
		client:   client,
		prefix:   prefix,
		ttl:      opts.TTL,
		registry: newHandlerRegistry(),
	}
}

func (m *redisManager) key(userID int64) string {
	return m.prefix + ":" + strconv.FormatInt(userID, 10)
}

func (m *redisManager) load(userID int64) (*Session, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := m.client.Get(ctx, m.key(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn(ctx, "tg", "fsm.redis.load_failed",
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		return nil, false
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		logger.Warn(ctx, "tg", "fsm.redis.decode_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, false
	}
	if sess.TempData == nil {
		sess.TempData = make(map[string]any)
	}
	return &sess, true
}

func (m *redisManager) store(userID int64, sess *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := json.Marshal(sess)
	if err != nil {
		logger.Warn(ctx, "tg", "fsm.redis.encode_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return
	}
	if err := m.client.Set(ctx, m.key(userID), raw, m.ttl).Err(); err != nil {
		logger.Warn(ctx, "tg", "fsm.redis.store_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

// Get returns the session for a user, or a default idle session.
func (m *redisManager) Get(userID int64) *Session {
	if sess, ok := m.load(userID); ok {
		return sess
	}
	return &Session{State: StateIdle, TempData: make(map[string]any)}
}

// SetState sets the FSM state for the given user.
func (m *redisManager) SetState(userID int64, st State) {
	sess := m.Get(userID)
	sess.State = st
	m.store(userID, sess)
}

// GetState returns the current FSM state of a user, or StateIdle if none exists.
func (m *redisManager) GetState(userID int64) State {
	if sess, ok := m.load(userID); ok {
		return sess.State
	}
	return StateIdle
}

// HasState checks if a user has an active state other than idle.
func (m *redisManager) HasState(userID int64) bool {
	return m.GetState(userID) != StateIdle
}

// ClearState resets the FSM state to idle without discarding session data.
func (m *redisManager) ClearState(userID int64) {
	if sess, ok := m.load(userID); ok {
		sess.State = StateIdle
		m.store(userID, sess)
	}
}

// Clear removes the entire session for a user.
func (m *redisManager) Clear(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := m.client.Del(ctx, m.key(userID)).Err(); err != nil {
		logger.Warn(ctx, "tg", "fsm.redis.clear_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}

// SetTemp stores a temporary key/value pair for the given user session.
func (m *redisManager) SetTemp(userID int64, key string, value any) {
	sess := m.Get(userID)
	sess.TempData[key] = value
	m.store(userID, sess)
}

// GetTemp retrieves a temporary value by key for the given user session.
func (m *redisManager) GetTemp(userID int64, key string) (any, bool) {
	sess, ok := m.load(userID)
	if !ok {
		return nil, false
	}
	val, ok := sess.TempData[key]
	return val, ok
}

// GetTempInt64 retrieves a temporary value by key and coerces it to int64.
func (m *redisManager) GetTempInt64(userID int64, key string) (int64, bool) {
	val, found := m.GetTemp(userID, key)
	if !found {
		return 0, false
	}
	return asInt64(val)
}

// GetTempString retrieves a temporary value by key and asserts it as string.
func (m *redisManager) GetTempString(userID int64, key string) (string, bool) {
	val, found := m.GetTemp(userID, key)
	if !found {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// ClearTemp removes a temporary key/value pair for the given user session.
func (m *redisManager) ClearTemp(userID int64, key string) {
	if sess, ok := m.load(userID); ok {
		delete(sess.TempData, key)
		m.store(userID, sess)
	}
}

// RegisterHandler associates a state with its step handler.
func (m *redisManager) RegisterHandler(st State, h tele.HandlerFunc) {
	m.registry.RegisterHandler(st, h)
}

// InProgress reports whether the user currently has an active FSM state.
func (m *redisManager) InProgress(userID int64) bool {
	return m.HasState(userID)
}

// ManagerHandler executes the handler registered for the user's current state, if any.
func (m *redisManager) ManagerHandler(c tele.Context) error {
	return dispatch(m, m.registry, c)
}
