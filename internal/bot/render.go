package bot

import (
	"fmt"
	"strings"

	"github.com/SI1V/GymStars/core/telegram/format"
	"github.com/SI1V/GymStars/core/telegram/helpers"
	"github.com/SI1V/GymStars/internal/models"
)

// workoutRef is the "id: date comment" line used both in the list text and
// as the selection button label.
func workoutRef(w models.Workout) string {
	ref := fmt.Sprintf("%d: %s", w.ID, helpers.DayKey(w.Date))
	if w.Comment != nil && *w.Comment != "" {
		ref += " " + *w.Comment
	}
	return ref
}

func renderWorkoutList(workouts []models.Workout) string {
	lines := make([]string, 0, len(workouts)+1)
	lines = append(lines, "Ваши тренировки:")
	for _, w := range workouts {
		lines = append(lines, workoutRef(w))
	}
	return strings.Join(lines, "\n")
}

func renderWorkoutCard(w *models.Workout) string {
	return fmt.Sprintf("Тренировка №%d\nДата: %s\nЗаметка: %s",
		w.ID, helpers.DayKey(w.Date), format.DerefString(w.Comment, "-"))
}

// renderWorkoutDetail renders the full summary: header, note, then every
// exercise with its recorded reps in the order they were added.
func renderWorkoutDetail(d *models.WorkoutDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Тренировка на %s\nЗаметка: %s\n\nУпражнения:",
		helpers.FormatDay(d.Workout.Date), format.DerefString(d.Workout.Comment, "-"))

	for _, item := range d.Exercises {
		fmt.Fprintf(&b, "\n\n🔹 %s (%s)", item.Exercise.Name, item.Exercise.Type)
		cardio := item.Exercise.Type == models.ExerciseCardio
		switch {
		case len(item.Reps) == 0 && cardio:
			b.WriteString("\nВремя не указано")
		case len(item.Reps) == 0:
			b.WriteString("\nНет записанных подходов")
		case cardio:
			b.WriteString("\nВремя:")
			for _, rep := range item.Reps {
				fmt.Fprintf(&b, "\n⏱ %d мин", rep.Duration)
			}
		default:
			b.WriteString("\nПодходы:")
			for _, rep := range item.Reps {
				fmt.Fprintf(&b, "\n💪 %gкг x %d", rep.Weight, rep.Count)
			}
		}
	}
	return b.String()
}

func renderSetsPrompt(t models.ExerciseType) string {
	if t == models.ExerciseCardio {
		return "Введите длительность упражнения в минутах (например: 30)"
	}
	return "Введите подходы в формате:\n" +
		"20 10\n" +
		"40 10\n" +
		"60 10\n" +
		"(вес пробел количество повторов, каждый подход с новой строки)"
}
