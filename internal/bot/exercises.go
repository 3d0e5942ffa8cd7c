package bot

import (
	"errors"
	"fmt"

	"log/slog"

	"github.com/SI1V/GymStars/core/logger"
	tg "github.com/SI1V/GymStars/core/telegram"
	"github.com/SI1V/GymStars/core/telegram/callbacks"
	tghelpers "github.com/SI1V/GymStars/core/telegram/helpers"
	"github.com/SI1V/GymStars/core/telegram/middleware"
	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/service"

	tele "gopkg.in/telebot.v4"
)

func (h *Handlers) registerExerciseFlow(reg *tg.Registry) {
	_ = reg.RegisterCallback(cbExerciseType, h.onExerciseType)
	_ = reg.RegisterCallback(cbExercisePage, h.onExercisePage)
	_ = reg.RegisterCallback(cbExerciseOpen, h.onExerciseOpen)
	_ = reg.RegisterCallback(cbExerciseEdit, h.onExerciseEdit)
	_ = reg.RegisterCallback(cbExerciseDelete, h.onExerciseDelete)
	_ = reg.RegisterCallback(cbExerciseDelYes, middleware.State(h.state, StateExerciseDelete)(h.onExerciseDeleteConfirm))
	_ = reg.RegisterCallback(cbExerciseDelNo, h.onExerciseDeleteCancel)
	_ = reg.RegisterCallback(cbExerciseBackTypes, h.onExerciseBackToTypes)
	_ = reg.RegisterCallback(cbExerciseBackList, h.onExerciseBackToList)
	_ = reg.RegisterCallback(cbExerciseNewType, h.onExerciseNewType)
	_ = reg.RegisterCallback(cbExerciseNewCancel, h.onExerciseNewCancel)
	_ = reg.RegisterCallback(cbMainMenu, h.onMainMenu)

	h.state.RegisterHandler(StateExerciseCreateName, h.fsmExerciseCreateName)
	h.state.RegisterHandler(StateExerciseRename, h.fsmExerciseRename)
}

// cmdExercises starts the browse flow with the type keyboard.
func (h *Handlers) cmdExercises(c tele.Context) error {
	h.state.Clear(c.Sender().ID)
	return send(c, "Выбери тип упражнения:", exerciseTypeKeyboard(cbExerciseType))
}

// cmdNewExercise starts the create flow with its own type keyboard.
func (h *Handlers) cmdNewExercise(c tele.Context) error {
	h.state.Clear(c.Sender().ID)
	return send(c, "Выбери тип нового упражнения:", newExerciseTypeKeyboard())
}

func (h *Handlers) onExerciseType(c tele.Context) error {
	userID := c.Sender().ID
	t, err := service.ParseType(callbacks.CallbackPayload(c))
	if err != nil {
		return send(c, "❌ Ошибка выбора типа упражнения.")
	}
	h.state.SetTemp(userID, tempExerciseType, string(t))
	h.state.SetTemp(userID, tempPage, 0)
	return h.showExercisePage(c, t, 0)
}

func (h *Handlers) onExercisePage(c tele.Context) error {
	userID := c.Sender().ID
	page, err := callbacks.PayloadInt(c)
	if err != nil || page < 0 {
		return nil
	}
	t, ok := h.currentType(userID)
	if !ok {
		return send(c, "Выбери тип упражнения:", exerciseTypeKeyboard(cbExerciseType))
	}
	h.state.SetTemp(userID, tempPage, page)
	return h.showExercisePage(c, t, page)
}

func (h *Handlers) onExerciseOpen(c tele.Context) error {
	userID := c.Sender().ID
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

	typeStr, _ := h.state.GetTempString(userID, tempExerciseType)
	text := fmt.Sprintf("🏋️ Упражнение: %s\n\nТип: %s", ex.Name, ex.Type)
	if ex.IsDefault {
		text = fmt.Sprintf("🏋️ Упражнение: %s", ex.Name)
	}
	return edit(c, text, exerciseActionKeyboard(ex, typeStr))
}

func (h *Handlers) onExerciseEdit(c tele.Context) error {
	userID := c.Sender().ID
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return nil
	}
	h.state.SetTemp(userID, tempExerciseID, id)
	h.state.SetState(userID, StateExerciseRename)
	return edit(c, "Введите новое название упражнения:")
}

func (h *Handlers) fsmExerciseRename(c tele.Context) error {
	userID := c.Sender().ID
	id, ok := h.state.GetTempInt64(userID, tempExerciseID)
	if !ok {
		h.state.Clear(userID)
		return send(c, errGenericText)
	}

	ctx := tghelpers.BuildContext(c)
	ex, err := h.exercises.Rename(ctx, id, userID, c.Text())
	switch {
	case service.IsValidation(err):
		return send(c, "🚫 Название должно быть непустым и не длиннее 30 символов. Попробуйте ещё раз:")
	case errors.Is(err, service.ErrForbidden):
		h.state.Clear(userID)
		return send(c, "🚫 Это упражнение нельзя изменить.")
	case errors.Is(err, service.ErrNotFound):
		h.state.Clear(userID)
		return send(c, "🚫 Упражнение не найдено.")
	case err != nil:
		h.state.Clear(userID)
		return send(c, errGenericText)
	}

	h.state.ClearState(userID)
	h.state.SetTemp(userID, tempExerciseType, string(ex.Type))
	h.state.SetTemp(userID, tempPage, 0)
	if err := send(c, fmt.Sprintf("✅ Упражнение обновлено: %s", ex.Name)); err != nil {
		return err
	}
	return h.showExercisePage(c, ex.Type, 0)
}

func (h *Handlers) onExerciseDelete(c tele.Context) error {
	userID := c.Sender().ID
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return nil
	}
	h.state.SetTemp(userID, tempExerciseID, id)
	h.state.SetState(userID, StateExerciseDelete)
	typeStr, _ := h.state.GetTempString(userID, tempExerciseType)
	return edit(c, "❗ Вы уверены, что хотите удалить это упражнение?", deleteConfirmKeyboard(typeStr))
}

// onExerciseDeleteConfirm is the only handler bound to the confirm button.
// The pending exercise id lives in the session, armed by onExerciseDelete;
// the state middleware drops presses arriving in any other state.
func (h *Handlers) onExerciseDeleteConfirm(c tele.Context) error {
	userID := c.Sender().ID
	id, ok := h.state.GetTempInt64(userID, tempExerciseID)
	if !ok {
		h.state.ClearState(userID)
		return send(c, errGenericText)
	}

	ctx := tghelpers.BuildContext(c)
	err := h.exercises.Delete(ctx, id, userID)
	h.state.ClearState(userID)
	h.state.ClearTemp(userID, tempExerciseID)
	switch {
	case errors.Is(err, service.ErrForbidden):
		return send(c, "🚫 Невозможно удалить это упражнение.")
	case err != nil:
		return send(c, errGenericText)
	}

	logger.Info(ctx, "tg", "exercise.delete.confirmed",
		slog.Int64("user_id", userID),
		slog.Int64("exercise_id", id),
	)
	t, ok := h.currentType(userID)
	if !ok {
		return edit(c, "✅ Упражнение удалено.")
	}
	h.state.SetTemp(userID, tempPage, 0)
	return h.showExercisePage(c, t, 0, "📋 Упражнение удалено. Вот обновлённый список:")
}

func (h *Handlers) onExerciseDeleteCancel(c tele.Context) error {
	userID := c.Sender().ID
	h.state.ClearState(userID)
	h.state.ClearTemp(userID, tempExerciseID)
	t, ok := h.currentType(userID)
	if !ok {
		return edit(c, "Выбери тип упражнения:", exerciseTypeKeyboard(cbExerciseType))
	}
	page, _ := h.currentPage(userID)
	return h.showExercisePage(c, t, page)
}

func (h *Handlers) onExerciseBackToTypes(c tele.Context) error {
	h.state.Clear(c.Sender().ID)
	return edit(c, "Выбери тип упражнения:", exerciseTypeKeyboard(cbExerciseType))
}

func (h *Handlers) onExerciseBackToList(c tele.Context) error {
	userID := c.Sender().ID
	t, err := service.ParseType(callbacks.CallbackPayload(c))
	if err != nil {
		return edit(c, "Выбери тип упражнения:", exerciseTypeKeyboard(cbExerciseType))
	}
	h.state.ClearState(userID)
	h.state.ClearTemp(userID, tempExerciseID)
	h.state.SetTemp(userID, tempExerciseType, string(t))
	page, _ := h.currentPage(userID)
	return h.showExercisePage(c, t, page)
}

func (h *Handlers) onExerciseNewType(c tele.Context) error {
	userID := c.Sender().ID
	t, err := service.ParseType(callbacks.CallbackPayload(c))
	if err != nil {
		return send(c, "❌ Ошибка выбора типа упражнения.")
	}
	h.state.SetTemp(userID, tempExerciseType, string(t))
	h.state.SetState(userID, StateExerciseCreateName)
	return edit(c, fmt.Sprintf("Тип упражнения: %s\nТеперь введи название упражнения:", t))
}

func (h *Handlers) fsmExerciseCreateName(c tele.Context) error {
	userID := c.Sender().ID
	typeStr, ok := h.state.GetTempString(userID, tempExerciseType)
	if !ok {
		h.state.Clear(userID)
		return send(c, "🚫 Тип упражнения не выбран. Начните с команды /new_exercise.")
	}

	ctx := tghelpers.BuildContext(c)
	ex, err := h.exercises.Create(ctx, userID, typeStr, c.Text())
	switch {
	case service.IsValidation(err):
		return send(c, "🚫 Название должно быть непустым и не длиннее 30 символов. Попробуйте ещё раз:")
	case err != nil:
		h.state.Clear(userID)
		return send(c, errGenericText)
	}

	h.state.ClearState(userID)
	h.state.SetTemp(userID, tempPage, 0)
	if err := send(c, fmt.Sprintf("✅ Упражнение «%s» типа %s создано!", ex.Name, ex.Type)); err != nil {
		return err
	}
	return h.showExercisePage(c, ex.Type, 0)
}

func (h *Handlers) onExerciseNewCancel(c tele.Context) error {
	h.state.Clear(c.Sender().ID)
	return edit(c, "Создание упражнения отменено.", exerciseTypeKeyboard(cbExerciseType))
}

func (h *Handlers) onMainMenu(c tele.Context) error {
	h.state.Clear(c.Sender().ID)
	return send(c, mainMenuText)
}

// showExercisePage renders one list page in place. An optional title
// overrides the default header.
func (h *Handlers) showExercisePage(c tele.Context, t models.ExerciseType, page int, title ...string) error {
	ctx := tghelpers.BuildContext(c)
	list, total, err := h.exercises.ListPage(ctx, c.Sender().ID, t, page, h.pageSize)
	if err != nil {
		return send(c, errGenericText)
	}
	text := fmt.Sprintf("Тип: %s\nВыбери упражнение:", t)
	if len(title) > 0 {
		text = title[0]
	}
	markup := exerciseListKeyboard(list, page, total, h.pageSize, cbExerciseOpen, cbExercisePage, cbExerciseBackTypes)
	return edit(c, text, markup)
}

func (h *Handlers) currentType(userID int64) (models.ExerciseType, bool) {
	raw, ok := h.state.GetTempString(userID, tempExerciseType)
	if !ok {
		return "", false
	}
	t, err := service.ParseType(raw)
	if err != nil {
		return "", false
	}
	return t, true
}

func (h *Handlers) currentPage(userID int64) (int, bool) {
	page, ok := h.state.GetTempInt64(userID, tempPage)
	if !ok || page < 0 {
		return 0, false
	}
	return int(page), true
}
