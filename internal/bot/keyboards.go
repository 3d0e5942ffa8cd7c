package bot

import (
	"strconv"

	"github.com/SI1V/GymStars/core/telegram/keyboard"
	"github.com/SI1V/GymStars/internal/models"

	tele "gopkg.in/telebot.v4"
)

func exerciseTypeKeyboard(typeKey string) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "🏋️‍♂️ Силовые", Unique: typeKey, Data: string(models.ExerciseStrength)}},
		[]keyboard.InlineBtn{{Text: "🏃‍♂️ Кардио", Unique: typeKey, Data: string(models.ExerciseCardio)}},
		[]keyboard.InlineBtn{{Text: "🏠 Главная", Unique: cbMainMenu}},
	)
}

func newExerciseTypeKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "🏋️‍♂️ Силовые", Unique: cbExerciseNewType, Data: string(models.ExerciseStrength)}},
		[]keyboard.InlineBtn{{Text: "🏃‍♂️ Кардио", Unique: cbExerciseNewType, Data: string(models.ExerciseCardio)}},
		[]keyboard.InlineBtn{keyboard.CancelBtn(cbExerciseNewCancel)},
	)
}

// exerciseListKeyboard renders one page of exercises with navigation.
// openKey, pageKey and backKey differ between the browse flow and the
// in-workout pick.
func exerciseListKeyboard(list []models.Exercise, page, total, pageSize int, openKey, pageKey, backKey string) *tele.ReplyMarkup {
	var rows [][]keyboard.InlineBtn
	for _, ex := range list {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   ex.Name,
			Unique: openKey,
			Data:   strconv.FormatInt(ex.ID, 10),
		}})
	}

	var nav []keyboard.InlineBtn
	if page > 0 {
		nav = append(nav, keyboard.InlineBtn{Text: "⬅️ Назад", Unique: pageKey, Data: strconv.Itoa(page - 1)})
	}
	if (page+1)*pageSize < total {
		nav = append(nav, keyboard.InlineBtn{Text: "Вперед ➡️", Unique: pageKey, Data: strconv.Itoa(page + 1)})
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, []keyboard.InlineBtn{{Text: "⬅️ Назад к типам", Unique: backKey}})
	return keyboard.InlineButtonsRows(rows...)
}

// exerciseActionKeyboard is the card under a single exercise. Defaults are
// read-only, so edit and delete are hidden for them.
func exerciseActionKeyboard(ex *models.Exercise, typeStr string) *tele.ReplyMarkup {
	var rows [][]keyboard.InlineBtn
	if !ex.IsDefault {
		id := strconv.FormatInt(ex.ID, 10)
		rows = append(rows, []keyboard.InlineBtn{
			{Text: "✏️ Редактировать", Unique: cbExerciseEdit, Data: id},
			{Text: "🗑️ Удалить", Unique: cbExerciseDelete, Data: id},
		})
	}
	back := keyboard.InlineBtn{Text: "⬅️ Назад к упражнениям", Unique: cbExerciseBackTypes}
	if typeStr != "" {
		back = keyboard.InlineBtn{Text: "⬅️ Назад к упражнениям", Unique: cbExerciseBackList, Data: typeStr}
	}
	rows = append(rows,
		[]keyboard.InlineBtn{back},
		[]keyboard.InlineBtn{{Text: "🏠 Главная", Unique: cbMainMenu}},
	)
	return keyboard.InlineButtonsRows(rows...)
}

func deleteConfirmKeyboard(typeStr string) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Подтвердить", Unique: cbExerciseDelYes},
			keyboard.CancelBtn(cbExerciseDelNo),
		},
		[]keyboard.InlineBtn{{Text: "⬅️ Назад к упражнениям", Unique: cbExerciseBackList, Data: typeStr}},
	)
}

func workoutMenuKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{textAddWorkout},
		[]string{textListWorkouts},
		[]string{textBackToMenu},
	)
}

func workoutConfirmKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{textSaveWorkout},
		[]string{textCancel},
	)
}

func workoutViewKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{textEditWorkout, textDelWorkout},
		[]string{textBackToList},
	)
}

func workoutListKeyboard(workouts []models.Workout) *tele.ReplyMarkup {
	rows := make([][]string, 0, len(workouts)+1)
	for _, w := range workouts {
		rows = append(rows, []string{workoutRef(w)})
	}
	rows = append(rows, []string{textBackToMenu})
	return keyboard.ReplyButtons(rows...)
}

// addExerciseKeyboard is shown under a workout summary while the user keeps
// adding exercises.
func addExerciseKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "➕ Добавить упражнение", Unique: cbWorkoutAddExercise},
		{Text: "📅 Календарь", Unique: cbWorkoutCalendar},
		{Text: "🏠 Главная", Unique: cbMainMenu},
	})
}
