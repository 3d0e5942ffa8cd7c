package ops

import (
	"time"

	tg "github.com/SI1V/GymStars/core/telegram"

	tele "gopkg.in/telebot.v4"
)

func updateKind(c tele.Context) string {
	switch {
	case c.Callback() != nil:
		return "callback"
	case c.Message() != nil:
		return "message"
	case c.Query() != nil:
		return "inline_query"
	default:
		return "other"
	}
}

// Middleware returns a bot middleware that feeds the collector with update
// counts, outcomes and handler durations.
func (c *Collector) Middleware() tg.Middleware {
	return tg.Middleware{
		Name: "ops_metrics",
		Use: func(next tele.HandlerFunc) tele.HandlerFunc {
			return func(tc tele.Context) error {
				start := time.Now()
				err := next(tc)
				c.RecordUpdate(updateKind(tc), time.Since(start), err)
				return err
			}
		},
	}
}
