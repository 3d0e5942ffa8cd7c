package state

import (
	"log/slog"
	"sync"

	"github.com/SI1V/GymStars/core/logger"
	tghelpers "github.com/SI1V/GymStars/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// handlerRegistry maps states to their step handlers. It is owned by a
// Manager instance rather than shared process-wide, so two managers never
// see each other's flows.
type handlerRegistry struct {
	mu       sync.RWMutex
	handlers map[State]tele.HandlerFunc
}

func newHandlerRegistry() *handlerRegistry {
	return &handlerRegistry{handlers: make(map[State]tele.HandlerFunc)}
}

// RegisterHandler associates a state with its handler.
func (r *handlerRegistry) RegisterHandler(st State, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[st] = h
}

func (r *handlerRegistry) lookup(st State) (tele.HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[st]
	return h, ok
}

// dispatch executes the handler registered for the user's current state, if any.
func dispatch(m Manager, r *handlerRegistry, c tele.Context) error {
	userID := c.Sender().ID
	current := m.GetState(userID)
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.manager",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(current)),
	)

	if handler, ok := r.lookup(current); ok {
		return handler(c)
	}
	return nil
}
