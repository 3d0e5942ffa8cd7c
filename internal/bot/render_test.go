package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SI1V/GymStars/internal/models"
)

func strPtr(s string) *string { return &s }

func testWorkout(id int64, comment *string) models.Workout {
	return models.Workout{
		ID:      id,
		UserID:  1,
		Date:    time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
		Comment: comment,
	}
}

func TestWorkoutRef(t *testing.T) {
	assert.Equal(t, "7: 2025-03-14 ноги", workoutRef(testWorkout(7, strPtr("ноги"))))
	assert.Equal(t, "7: 2025-03-14", workoutRef(testWorkout(7, nil)))
	assert.Equal(t, "7: 2025-03-14", workoutRef(testWorkout(7, strPtr(""))))
}

func TestRenderWorkoutList(t *testing.T) {
	got := renderWorkoutList([]models.Workout{
		testWorkout(1, strPtr("ноги")),
		testWorkout(2, nil),
	})
	assert.Equal(t, "Ваши тренировки:\n1: 2025-03-14 ноги\n2: 2025-03-14", got)
}

func TestRenderWorkoutCard(t *testing.T) {
	w := testWorkout(7, nil)
	assert.Equal(t, "Тренировка №7\nДата: 2025-03-14\nЗаметка: -", renderWorkoutCard(&w))

	w = testWorkout(7, strPtr("спина"))
	assert.Equal(t, "Тренировка №7\nДата: 2025-03-14\nЗаметка: спина", renderWorkoutCard(&w))
}

func TestRenderWorkoutDetail(t *testing.T) {
	w := testWorkout(7, strPtr("день ног"))
	detail := &models.WorkoutDetail{
		Workout: w,
		Exercises: []models.WorkoutExerciseDetail{
			{
				Exercise: models.Exercise{Name: "Приседания", Type: models.ExerciseStrength},
				Reps: []models.Rep{
					{Weight: 60, Count: 10},
					{Weight: 72.5, Count: 8},
				},
			},
			{
				Exercise: models.Exercise{Name: "Бег", Type: models.ExerciseCardio},
				Reps:     []models.Rep{{Duration: 30}},
			},
		},
	}

	got := renderWorkoutDetail(detail)
	assert.Equal(t,
		"Тренировка на 14.03.2025\nЗаметка: день ног\n\nУпражнения:"+
			"\n\n🔹 Приседания (STRENGTH)\nПодходы:\n💪 60кг x 10\n💪 72.5кг x 8"+
			"\n\n🔹 Бег (CARDIO)\nВремя:\n⏱ 30 мин",
		got)
}

func TestRenderWorkoutDetailEmptyEntries(t *testing.T) {
	detail := &models.WorkoutDetail{
		Workout: testWorkout(7, nil),
		Exercises: []models.WorkoutExerciseDetail{
			{Exercise: models.Exercise{Name: "Жим", Type: models.ExerciseStrength}},
			{Exercise: models.Exercise{Name: "Бег", Type: models.ExerciseCardio}},
		},
	}

	got := renderWorkoutDetail(detail)
	assert.Contains(t, got, "Заметка: -")
	assert.Contains(t, got, "🔹 Жим (STRENGTH)\nНет записанных подходов")
	assert.Contains(t, got, "🔹 Бег (CARDIO)\nВремя не указано")
}

func TestExerciseListKeyboardNav(t *testing.T) {
	page := []models.Exercise{
		{ID: 1, Name: "Жим"},
		{ID: 2, Name: "Присед"},
	}

	// Middle page carries both nav arrows.
	markup := exerciseListKeyboard(page, 1, 12, 5, cbExerciseOpen, cbExercisePage, cbExerciseBackTypes)
	rows := markup.InlineKeyboard
	require.Len(t, rows, 4)
	assert.Equal(t, "Жим", rows[0][0].Text)
	require.Len(t, rows[2], 2)
	assert.Equal(t, "0", rows[2][0].Data)
	assert.Equal(t, "2", rows[2][1].Data)

	// First page of a short list has no nav row at all.
	markup = exerciseListKeyboard(page, 0, 2, 5, cbExerciseOpen, cbExercisePage, cbExerciseBackTypes)
	rows = markup.InlineKeyboard
	require.Len(t, rows, 3)
	assert.Equal(t, cbExerciseBackTypes, rows[2][0].Unique)

	// Exactly one full page still has no next arrow.
	markup = exerciseListKeyboard(page, 0, 5, 5, cbExerciseOpen, cbExercisePage, cbExerciseBackTypes)
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			assert.NotEqual(t, "Вперед ➡️", b.Text)
		}
	}

	// Last page only points back.
	markup = exerciseListKeyboard(page, 2, 12, 5, cbExerciseOpen, cbExercisePage, cbExerciseBackTypes)
	rows = markup.InlineKeyboard
	require.Len(t, rows, 4)
	require.Len(t, rows[2], 1)
	assert.Equal(t, "1", rows[2][0].Data)
}

func TestExerciseActionKeyboardHidesMutationsForDefaults(t *testing.T) {
	def := &models.Exercise{ID: 1, Name: "Присед", IsDefault: true}
	markup := exerciseActionKeyboard(def, string(models.ExerciseStrength))
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			assert.NotEqual(t, cbExerciseEdit, b.Unique)
			assert.NotEqual(t, cbExerciseDelete, b.Unique)
		}
	}

	userID := int64(1)
	mine := &models.Exercise{ID: 2, Name: "Жим", UserID: &userID}
	markup = exerciseActionKeyboard(mine, string(models.ExerciseStrength))
	var uniques []string
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			uniques = append(uniques, b.Unique)
		}
	}
	assert.Contains(t, uniques, cbExerciseEdit)
	assert.Contains(t, uniques, cbExerciseDelete)
}
