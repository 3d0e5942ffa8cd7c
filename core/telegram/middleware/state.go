package middleware

import (
	"github.com/SI1V/GymStars/core/logger"
	tghelpers "github.com/SI1V/GymStars/core/telegram/helpers"
	tgstate "github.com/SI1V/GymStars/core/telegram/state"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// StateGetter is the minimal interface required from an FSM manager.
type StateGetter interface {
	GetState(userID int64) tgstate.State
}

// State returns a middleware that runs the handler only when the user is in
// the expected FSM state; updates arriving in any other state are ignored.
func State(mgr StateGetter, expected tgstate.State) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID
			current := mgr.GetState(userID)
			ctx := tghelpers.BuildContext(c)
			if current == expected {
				logger.Debug(ctx, "tg", "fsm.match",
					slog.Int64("user_id", userID),
					slog.String("state", string(current)),
					slog.String("expected", string(expected)),
				)
				return next(c)
			}
			logger.Debug(ctx, "tg", "fsm.skip",
				slog.Int64("user_id", userID),
				slog.String("state", string(current)),
				slog.String("expected", string(expected)),
			)
			return nil
		}
	}
}
