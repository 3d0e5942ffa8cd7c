package bot

import (
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/SI1V/GymStars/core/logger"
	tg "github.com/SI1V/GymStars/core/telegram"
	"github.com/SI1V/GymStars/core/telegram/callbacks"
	tghelpers "github.com/SI1V/GymStars/core/telegram/helpers"
	"github.com/SI1V/GymStars/core/telegram/keyboard"
	"github.com/SI1V/GymStars/core/telegram/middleware"
	"github.com/SI1V/GymStars/internal/bot/calendar"
	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/service"

	tele "gopkg.in/telebot.v4"
)

func (h *Handlers) registerWorkoutFlow(reg *tg.Registry) {
	_ = reg.RegisterCallback(calendar.Key, h.onCalendar)
	_ = reg.RegisterCallback(cbWorkoutAddExercise, h.onWorkoutAddExercise)
	_ = reg.RegisterCallback(cbWorkoutCalendar, h.onWorkoutCalendar)
	_ = reg.RegisterCallback(cbWorkoutType, middleware.State(h.state, StateWorkoutType)(h.onWorkoutType))
	_ = reg.RegisterCallback(cbWorkoutExercise, middleware.State(h.state, StateWorkoutExercise)(h.onWorkoutExercise))
	_ = reg.RegisterCallback(cbWorkoutPage, middleware.State(h.state, StateWorkoutExercise)(h.onWorkoutPage))

	h.state.RegisterHandler(StateWorkoutDate, h.fsmWorkoutDate)
	h.state.RegisterHandler(StateWorkoutNote, h.fsmWorkoutNote)
	h.state.RegisterHandler(StateWorkoutConfirm, h.fsmWorkoutConfirm)
	h.state.RegisterHandler(StateWorkoutAdding, h.fsmWorkoutAdding)
	h.state.RegisterHandler(StateWorkoutSets, h.fsmWorkoutSets)
	h.state.RegisterHandler(StateWorkoutBrowse, h.fsmWorkoutBrowse)
	h.state.RegisterHandler(StateWorkoutView, h.fsmWorkoutView)
	h.state.RegisterHandler(StateWorkoutEditNote, h.fsmWorkoutEditNote)
}

// cmdWorkouts opens the calendar for the current month with trained days
// marked.
func (h *Handlers) cmdWorkouts(c tele.Context) error {
	userID := c.Sender().ID
	h.state.Clear(userID)
	now := time.Now().UTC()
	markup, err := h.calendarMonth(c, now.Year(), now.Month())
	if err != nil {
		return send(c, errGenericText)
	}
	return send(c, "Выберите дату для создания тренировки:", markup)
}

func (h *Handlers) calendarMonth(c tele.Context, year int, month time.Month) (*tele.ReplyMarkup, error) {
	ctx := tghelpers.BuildContext(c)
	marked, err := h.workouts.Dates(ctx, c.Sender().ID)
	if err != nil {
		return nil, err
	}
	return calendar.Month(year, month, marked), nil
}

// onCalendar handles every calendar button: day selection plus the month and
// year navigation.
func (h *Handlers) onCalendar(c tele.Context) error {
	cb, err := calendar.Decode(callbacks.CallbackPayload(c))
	if err != nil {
		return nil
	}

	switch cb.Action {
	case calendar.ActionSelectDay:
		if cb.Day <= 0 {
			return nil
		}
		return h.openDay(c, cb.Date())
	case calendar.ActionSelectMonth:
		markup, err := h.calendarMonth(c, cb.Year, cb.Month)
		if err != nil {
			return send(c, errGenericText)
		}
		return edit(c, "Выберите дату для создания тренировки:", markup)
	case calendar.ActionShowMonths:
		return edit(c, "Выберите месяц:", calendar.MonthSelector(cb.Year))
	case calendar.ActionSelectYear:
		return edit(c, "Выберите месяц:", calendar.MonthSelector(cb.Year))
	case calendar.ActionShowYears, calendar.ActionChangeRange:
		return edit(c, "Выберите год:", calendar.YearSelector(cb.Year))
	}
	return nil
}

// openDay shows the existing workout for the day or starts a fresh one.
// Either way the day lands in the session so the add-exercise loop knows it.
func (h *Handlers) openDay(c tele.Context, day time.Time) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	h.state.SetTemp(userID, tempDate, tghelpers.DayKey(day))

	w, err := h.workouts.ByDate(ctx, userID, day)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.state.SetState(userID, StateWorkoutAdding)
		return send(c, fmt.Sprintf("Дата тренировки: %s\nТеперь вы можете добавить упражнения.", tghelpers.FormatDay(day)), addExerciseKeyboard())
	case err != nil:
		return send(c, errGenericText)
	}

	detail, err := h.workouts.View(ctx, userID, w.ID)
	if err != nil {
		return send(c, errGenericText)
	}
	logger.Debug(ctx, "tg", "workout.day.view",
		slog.Int64("user_id", userID),
		slog.Int64("workout_id", w.ID),
	)
	return send(c, renderWorkoutDetail(detail), addExerciseKeyboard())
}

func (h *Handlers) onWorkoutAddExercise(c tele.Context) error {
	userID := c.Sender().ID
	if _, ok := h.sessionDay(userID); !ok {
		return send(c, "Сначала выберите дату тренировки: /workouts")
	}
	h.state.SetState(userID, StateWorkoutType)
	return edit(c, "Выберите тип упражнения для добавления в тренировку:", exerciseTypeKeyboard(cbWorkoutType))
}

func (h *Handlers) onWorkoutCalendar(c tele.Context) error {
	userID := c.Sender().ID
	h.state.Clear(userID)
	now := time.Now().UTC()
	markup, err := h.calendarMonth(c, now.Year(), now.Month())
	if err != nil {
		return send(c, errGenericText)
	}
	return edit(c, "Выберите дату для создания тренировки:", markup)
}

func (h *Handlers) onWorkoutType(c tele.Context) error {
	userID := c.Sender().ID
	t, err := service.ParseType(callbacks.CallbackPayload(c))
	if err != nil {
		return send(c, "❌ Ошибка выбора типа упражнения.")
	}
	h.state.SetTemp(userID, tempExerciseType, string(t))
	h.state.SetTemp(userID, tempPage, 0)
	h.state.SetState(userID, StateWorkoutExercise)
	return h.showWorkoutExercisePage(c, t, 0)
}

func (h *Handlers) onWorkoutPage(c tele.Context) error {
	userID := c.Sender().ID
	page, err := callbacks.PayloadInt(c)
	if err != nil || page < 0 {
		return nil
	}
	t, ok := h.currentType(userID)
	if !ok {
		return nil
	}
	h.state.SetTemp(userID, tempPage, page)
	return h.showWorkoutExercisePage(c, t, page)
}

func (h *Handlers) onWorkoutExercise(c tele.Context) error {
	userID := c.Sender().ID
	if _, ok := h.sessionDay(userID); !ok {
		return send(c, "Сначала выберите дату тренировки: /workouts")
	}
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return nil
	}

	ctx := tghelpers.BuildContext(c)
	ex, err := h.exercises.Get(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		return send(c, "🚫 Упражнение не найдено.")
	}
	if err != nil {
		return send(c, errGenericText)
	}

	h.state.SetTemp(userID, tempExerciseID, id)
	h.state.SetState(userID, StateWorkoutSets)
	return edit(c, renderSetsPrompt(ex.Type))
}

// fsmWorkoutSets parses the typed sets and records them. Cardio keeps the
// state on bad input so the user can retype; malformed strength lines are
// dropped during parsing.
func (h *Handlers) fsmWorkoutSets(c tele.Context) error {
	userID := c.Sender().ID
	day, dayOK := h.sessionDay(userID)
	exerciseID, exOK := h.state.GetTempInt64(userID, tempExerciseID)
	if !dayOK || !exOK {
		h.state.Clear(userID)
		return send(c, "Ошибка: не выбрана дата или упражнение. Начните с выбора даты: /workouts")
	}

	ctx := tghelpers.BuildContext(c)
	ex, err := h.exercises.Get(ctx, exerciseID)
	if err != nil {
		h.state.Clear(userID)
		return send(c, errGenericText)
	}

	var reps []models.RepInput
	if ex.Type == models.ExerciseCardio {
		rep, ok := ParseCardio(c.Text())
		if !ok {
			return send(c, "Ошибка: введите только число минут")
		}
		reps = append(reps, rep)
	} else {
		reps = ParseStrength(ctx, c.Text())
	}

	detail, err := h.workouts.AddSets(ctx, userID, day, exerciseID, reps)
	if err != nil {
		h.state.Clear(userID)
		return send(c, errGenericText)
	}

	h.state.ClearTemp(userID, tempExerciseID)
	h.state.SetState(userID, StateWorkoutAdding)
	return send(c, renderWorkoutDetail(detail), addExerciseKeyboard())
}

// fsmWorkoutAdding keeps the loop alive: free text between exercises just
// re-offers the actions.
func (h *Handlers) fsmWorkoutAdding(c tele.Context) error {
	if c.Text() == textBackToMenu {
		return h.cmdMainMenu(c)
	}
	return send(c, "Выберите действие:", addExerciseKeyboard())
}

// cmdAddWorkout starts the manual create path with a typed date.
func (h *Handlers) cmdAddWorkout(c tele.Context) error {
	userID := c.Sender().ID
	h.state.Clear(userID)
	h.state.SetState(userID, StateWorkoutDate)
	return send(c, "Введите дату тренировки в формате ГГГГ-ММ-ДД:", keyboard.RemoveKeyboard())
}

func (h *Handlers) fsmWorkoutDate(c tele.Context) error {
	userID := c.Sender().ID
	day, ok := tghelpers.ParseDay(c.Text())
	if !ok {
		return send(c, "Неверный формат. Введите в формате ГГГГ-ММ-ДД:")
	}
	h.state.SetTemp(userID, tempDate, tghelpers.DayKey(day))
	h.state.SetState(userID, StateWorkoutNote)
	return send(c, "Добавьте заметку к тренировке (или напишите - для пропуска):")
}

func (h *Handlers) fsmWorkoutNote(c tele.Context) error {
	userID := c.Sender().ID
	note := ""
	if t := c.Text(); t != "-" {
		note = t
	}
	h.state.SetTemp(userID, tempNote, note)
	h.state.SetState(userID, StateWorkoutConfirm)
	return send(c, "Сохранить тренировку?", workoutConfirmKeyboard())
}

func (h *Handlers) fsmWorkoutConfirm(c tele.Context) error {
	userID := c.Sender().ID
	switch c.Text() {
	case textSaveWorkout:
		return h.saveWorkout(c)
	case textCancel:
		h.state.Clear(userID)
		return send(c, "Создание тренировки отменено.", workoutMenuKeyboard())
	default:
		return send(c, "Сохранить тренировку?", workoutConfirmKeyboard())
	}
}

func (h *Handlers) saveWorkout(c tele.Context) error {
	userID := c.Sender().ID
	day, ok := h.sessionDay(userID)
	if !ok {
		h.state.Clear(userID)
		return send(c, errGenericText)
	}
	ctx := tghelpers.BuildContext(c)

	if _, err := h.workouts.ByDate(ctx, userID, day); err == nil {
		h.state.Clear(userID)
		return send(c, "На эту дату уже есть тренировка.", workoutMenuKeyboard())
	} else if !errors.Is(err, service.ErrNotFound) {
		h.state.Clear(userID)
		return send(c, errGenericText)
	}

	var note *string
	if text, ok := h.state.GetTempString(userID, tempNote); ok && text != "" {
		note = &text
	}
	if _, err := h.workouts.Create(ctx, userID, day, note); err != nil {
		h.state.Clear(userID)
		if errors.Is(err, service.ErrConflict) {
			return send(c, "На эту дату уже есть тренировка.", workoutMenuKeyboard())
		}
		return send(c, errGenericText)
	}
	h.state.Clear(userID)
	return send(c, "Тренировка добавлена!", workoutMenuKeyboard())
}

// cmdListWorkouts shows the browse list with one button per workout.
func (h *Handlers) cmdListWorkouts(c tele.Context) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	workouts, err := h.workouts.List(ctx, userID)
	if err != nil {
		return send(c, errGenericText)
	}
	if len(workouts) == 0 {
		h.state.Clear(userID)
		return send(c, "У вас нет тренировок.", workoutMenuKeyboard())
	}
	h.state.Clear(userID)
	h.state.SetState(userID, StateWorkoutBrowse)
	return send(c, renderWorkoutList(workouts), workoutListKeyboard(workouts))
}

func (h *Handlers) fsmWorkoutBrowse(c tele.Context) error {
	userID := c.Sender().ID
	if c.Text() == textBackToMenu {
		return h.cmdMainMenu(c)
	}
	id, ok := ParseWorkoutRef(c.Text())
	if !ok {
		return send(c, "Некорректный формат. Выберите тренировку из списка.")
	}

	ctx := tghelpers.BuildContext(c)
	detail, err := h.workouts.View(ctx, userID, id)
	if errors.Is(err, service.ErrNotFound) {
		return send(c, "Тренировка не найдена.")
	}
	if err != nil {
		return send(c, errGenericText)
	}

	h.state.SetTemp(userID, tempWorkoutID, id)
	h.state.SetState(userID, StateWorkoutView)
	return send(c, renderWorkoutCard(&detail.Workout), workoutViewKeyboard())
}

func (h *Handlers) fsmWorkoutView(c tele.Context) error {
	userID := c.Sender().ID
	switch c.Text() {
	case textEditWorkout:
		h.state.SetState(userID, StateWorkoutEditNote)
		return send(c, "Введите новую заметку (или - чтобы убрать):", keyboard.RemoveKeyboard())
	case textDelWorkout:
		return h.deleteViewedWorkout(c)
	case textBackToList:
		return h.cmdListWorkouts(c)
	case textBackToMenu:
		return h.cmdMainMenu(c)
	default:
		return send(c, "Выберите действие.", workoutViewKeyboard())
	}
}

func (h *Handlers) deleteViewedWorkout(c tele.Context) error {
	userID := c.Sender().ID
	id, ok := h.state.GetTempInt64(userID, tempWorkoutID)
	if !ok {
		h.state.Clear(userID)
		return send(c, errGenericText)
	}
	ctx := tghelpers.BuildContext(c)
	if err := h.workouts.Delete(ctx, userID, id); err != nil && !errors.Is(err, service.ErrNotFound) {
		return send(c, errGenericText)
	}
	if err := send(c, "Тренировка удалена."); err != nil {
		return err
	}
	return h.cmdListWorkouts(c)
}

func (h *Handlers) fsmWorkoutEditNote(c tele.Context) error {
	userID := c.Sender().ID
	id, ok := h.state.GetTempInt64(userID, tempWorkoutID)
	if !ok {
		h.state.Clear(userID)
		return send(c, errGenericText)
	}
	note := ""
	if t := c.Text(); t != "-" {
		note = t
	}

	ctx := tghelpers.BuildContext(c)
	w, err := h.workouts.SetNote(ctx, userID, id, note)
	if errors.Is(err, service.ErrNotFound) {
		h.state.Clear(userID)
		return send(c, "Тренировка не найдена.")
	}
	if err != nil {
		return send(c, errGenericText)
	}

	h.state.SetState(userID, StateWorkoutView)
	if err := send(c, "Заметка обновлена."); err != nil {
		return err
	}
	return send(c, renderWorkoutCard(w), workoutViewKeyboard())
}

func (h *Handlers) cmdMainMenu(c tele.Context) error {
	h.state.Clear(c.Sender().ID)
	return send(c, mainMenuText, keyboard.RemoveKeyboard())
}

func (h *Handlers) showWorkoutExercisePage(c tele.Context, t models.ExerciseType, page int) error {
	ctx := tghelpers.BuildContext(c)
	list, total, err := h.exercises.ListPage(ctx, c.Sender().ID, t, page, h.pageSize)
	if err != nil {
		return send(c, errGenericText)
	}
	markup := exerciseListKeyboard(list, page, total, h.pageSize, cbWorkoutExercise, cbWorkoutPage, cbWorkoutAddExercise)
	return edit(c, "Выберите упражнение для добавления в тренировку:", markup)
}

// sessionDay reads the selected day back out of the session data bag.
func (h *Handlers) sessionDay(userID int64) (time.Time, bool) {
	raw, ok := h.state.GetTempString(userID, tempDate)
	if !ok {
		return time.Time{}, false
	}
	return tghelpers.ParseDay(raw)
}
