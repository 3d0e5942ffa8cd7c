// Package bot implements the conversation flows of the workout tracker on
// top of the core telegram plumbing: command registry, callback routing and
// the FSM session manager.
package bot

import (
	tg "github.com/SI1V/GymStars/core/telegram"
	"github.com/SI1V/GymStars/core/telegram/commands"
	"github.com/SI1V/GymStars/core/telegram/helpers"
	"github.com/SI1V/GymStars/core/telegram/state"
	"github.com/SI1V/GymStars/internal/service"

	tele "gopkg.in/telebot.v4"
)

// DefaultPageSize is the number of exercises per list page.
const DefaultPageSize = 5

const errGenericText = "Произошла ошибка. Попробуйте позже."

// Handlers bundles the services and the session manager behind every flow.
type Handlers struct {
	users     *service.Users
	exercises *service.Exercises
	workouts  *service.Workouts
	state     state.Manager
	pageSize  int
}

// New builds the flow handlers. pageSize <= 0 falls back to DefaultPageSize.
func New(users *service.Users, exercises *service.Exercises, workouts *service.Workouts, mgr state.Manager, pageSize int) *Handlers {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Handlers{
		users:     users,
		exercises: exercises,
		workouts:  workouts,
		state:     mgr,
		pageSize:  pageSize,
	}
}

// Register wires commands, callbacks, FSM step handlers and fallbacks into
// the registry and the session manager.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.cmdStart,
		Description: "Главное меню",
	})
	reg.RegisterCommand("/exercises", commands.Command{
		Handler:     h.cmdExercises,
		Description: "Список упражнений",
	})
	reg.RegisterCommand("/new_exercise", commands.Command{
		Handler:     h.cmdNewExercise,
		Description: "Создать упражнение",
	})
	reg.RegisterCommand("/workouts", commands.Command{
		Handler:     h.cmdWorkouts,
		Description: "Календарь тренировок",
	})
	reg.RegisterCommand("/add_workout", commands.Command{
		Handler:     h.cmdAddWorkout,
		Description: "Добавить тренировку",
		Aliases:     []string{textAddWorkout},
	})
	reg.RegisterCommand("/my_workouts", commands.Command{
		Handler:     h.cmdListWorkouts,
		Description: "Список тренировок",
		Aliases:     []string{textListWorkouts},
	})
	reg.RegisterCommand("/menu", commands.Command{
		Handler:     h.cmdMainMenu,
		Description: "Главное меню",
		Hidden:      true,
		Aliases:     []string{textBackToMenu},
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.cmdStats,
		Description: "Статистика бота",
		AdminOnly:   true,
		Hidden:      true,
	})

	h.registerExerciseFlow(reg)
	h.registerWorkoutFlow(reg)

	reg.SetTextFallback(h.unknownText)
	reg.SetCallbackNotFound(func(c tele.Context) error {
		return nil
	})
}

func (h *Handlers) unknownText(c tele.Context) error {
	return helpers.SendText(c, "Не понимаю эту команду.\n\n"+mainMenuText)
}

// send delivers plain text with an optional keyboard through the async sender.
func send(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	if len(markup) > 0 && markup[0] != nil {
		return helpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: markup[0]})
	}
	return helpers.SendText(c, text)
}

// edit replaces the current message in place, falling back to a new one.
func edit(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	if len(markup) > 0 && markup[0] != nil {
		return c.EditOrSend(text, markup[0])
	}
	return c.EditOrSend(text)
}
