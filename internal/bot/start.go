package bot

import (
	"fmt"

	tghelpers "github.com/SI1V/GymStars/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// cmdStart registers the user and shows the main menu. Safe to repeat.
func (h *Handlers) cmdStart(c tele.Context) error {
	sender := c.Sender()
	ctx := tghelpers.BuildContext(c)
	if _, err := h.users.Register(ctx, sender.ID, sender.Username, tghelpers.SenderName(sender)); err != nil {
		return send(c, errGenericText)
	}
	h.state.Clear(sender.ID)
	return send(c, mainMenuText)
}

// cmdStats reports row counts. Admin only, enforced by the command router.
func (h *Handlers) cmdStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	users, err := h.users.Count(ctx)
	if err != nil {
		return send(c, errGenericText)
	}
	exercises, err := h.exercises.Count(ctx)
	if err != nil {
		return send(c, errGenericText)
	}
	workouts, err := h.workouts.Count(ctx)
	if err != nil {
		return send(c, errGenericText)
	}
	return send(c, fmt.Sprintf("Пользователи: %d\nУпражнения: %d\nТренировки: %d", users, exercises, workouts))
}
