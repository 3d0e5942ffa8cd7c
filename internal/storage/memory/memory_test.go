package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/storage"
)

func i64(v int64) *int64 { return &v }

func mustCreate(t *testing.T, s storage.Store, ex models.Exercise) models.Exercise {
	t.Helper()
	created, err := s.Exercises().Create(context.Background(), ex)
	require.NoError(t, err)
	return *created
}

func TestUsersEnsureIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()

	name := "Иван"
	created, err := s.Users().Ensure(ctx, models.User{ID: 100, FullName: &name})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Users().Ensure(ctx, models.User{ID: 100})
	require.NoError(t, err)
	assert.False(t, created)

	u, err := s.Users().ByID(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, u.FullName)
	assert.Equal(t, "Иван", *u.FullName)

	_, err = s.Users().ByID(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	n, err := s.Users().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestExercisesVisibility(t *testing.T) {
	ctx := context.Background()
	s := New()

	def := mustCreate(t, s, models.Exercise{Name: "Приседания", Type: models.ExerciseStrength, IsDefault: true})
	mine := mustCreate(t, s, models.Exercise{Name: "Жим лёжа", Type: models.ExerciseStrength, UserID: i64(1)})
	other := mustCreate(t, s, models.Exercise{Name: "Становая", Type: models.ExerciseStrength, UserID: i64(2)})
	cardio := mustCreate(t, s, models.Exercise{Name: "Бег", Type: models.ExerciseCardio, IsDefault: true})

	list, total, err := s.Exercises().ListByType(ctx, 1, models.ExerciseStrength, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	ids := make([]int64, 0, len(list))
	for _, ex := range list {
		ids = append(ids, ex.ID)
	}
	assert.ElementsMatch(t, []int64{def.ID, mine.ID}, ids)
	assert.NotContains(t, ids, other.ID)
	assert.NotContains(t, ids, cardio.ID)

	// The owner of the third exercise sees it plus the shared default.
	list, total, err = s.Exercises().ListByType(ctx, 2, models.ExerciseStrength, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	ids = ids[:0]
	for _, ex := range list {
		ids = append(ids, ex.ID)
	}
	assert.ElementsMatch(t, []int64{def.ID, other.ID}, ids)
}

func TestExercisesListOrderAndPagination(t *testing.T) {
	ctx := context.Background()
	s := New()

	names := []string{"Выпады", "Жим", "Приседания", "Становая", "Тяга", "Французский жим", "Шраги"}
	for _, n := range names {
		mustCreate(t, s, models.Exercise{Name: n, Type: models.ExerciseStrength, UserID: i64(1)})
	}

	first, total, err := s.Exercises().ListByType(ctx, 1, models.ExerciseStrength, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, first, 5)

	second, total, err := s.Exercises().ListByType(ctx, 1, models.ExerciseStrength, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, second, 2)

	// Pages concatenate into the full name-ordered listing.
	var got []string
	for _, ex := range append(first, second...) {
		got = append(got, ex.Name)
	}
	assert.Equal(t, names, got)

	// Past the end is empty, not an error.
	tail, total, err := s.Exercises().ListByType(ctx, 1, models.ExerciseStrength, 20, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Empty(t, tail)
}

func TestExercisesRename(t *testing.T) {
	ctx := context.Background()
	s := New()

	ex := mustCreate(t, s, models.Exercise{Name: "Жим", Type: models.ExerciseStrength, UserID: i64(1)})

	updated, err := s.Exercises().Rename(ctx, ex.ID, "Жим лёжа")
	require.NoError(t, err)
	assert.Equal(t, "Жим лёжа", updated.Name)

	got, err := s.Exercises().ByID(ctx, ex.ID)
	require.NoError(t, err)
	assert.Equal(t, "Жим лёжа", got.Name)

	_, err = s.Exercises().Rename(ctx, 9999, "что-то")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestExercisesDeleteGuards(t *testing.T) {
	ctx := context.Background()
	s := New()

	def := mustCreate(t, s, models.Exercise{Name: "Приседания", Type: models.ExerciseStrength, IsDefault: true})
	mine := mustCreate(t, s, models.Exercise{Name: "Жим", Type: models.ExerciseStrength, UserID: i64(1)})

	// Defaults and other users' exercises are untouchable.
	affected, err := s.Exercises().Delete(ctx, def.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	affected, err = s.Exercises().Delete(ctx, mine.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)

	affected, err = s.Exercises().Delete(ctx, mine.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = s.Exercises().ByID(ctx, mine.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWorkoutsByUserAndDateNormalizesDay(t *testing.T) {
	ctx := context.Background()
	s := New()

	noon := time.Date(2025, time.March, 10, 12, 30, 0, 0, time.UTC)
	w, err := s.Workouts().Create(ctx, models.Workout{UserID: 1, Date: noon})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), w.Date)

	got, err := s.Workouts().ByUserAndDate(ctx, 1, time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)

	_, err = s.Workouts().ByUserAndDate(ctx, 1, time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.Workouts().ByUserAndDate(ctx, 2, noon)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWorkoutsOnePerUserPerDay(t *testing.T) {
	ctx := context.Background()
	s := New()

	morning := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 10, 20, 0, 0, 0, time.UTC)

	first, err := s.Workouts().Create(ctx, models.Workout{UserID: 1, Date: morning})
	require.NoError(t, err)

	// The same calendar day collides regardless of the time of day.
	_, err = s.Workouts().Create(ctx, models.Workout{UserID: 1, Date: evening})
	assert.ErrorIs(t, err, storage.ErrConflict)

	// Another user is free to train on that day.
	_, err = s.Workouts().Create(ctx, models.Workout{UserID: 2, Date: morning})
	require.NoError(t, err)

	next := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
	second, err := s.Workouts().Create(ctx, models.Workout{UserID: 1, Date: next})
	require.NoError(t, err)

	// Moving a workout onto an occupied day is rejected too.
	_, err = s.Workouts().Update(ctx, second.ID, storage.WorkoutPatch{Date: &morning})
	assert.ErrorIs(t, err, storage.ErrConflict)

	// Re-dating within its own day stays fine.
	moved, err := s.Workouts().Update(ctx, first.ID, storage.WorkoutPatch{Date: &evening})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), moved.Date)
}

func TestWorkoutsListByUserOrdered(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, d := range []int{15, 3, 28} {
		_, err := s.Workouts().Create(ctx, models.Workout{
			UserID: 1,
			Date:   time.Date(2025, time.February, d, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	_, err := s.Workouts().Create(ctx, models.Workout{
		UserID: 2,
		Date:   time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	list, err := s.Workouts().ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[0].Date.Day())
	assert.Equal(t, 15, list[1].Date.Day())
	assert.Equal(t, 28, list[2].Date.Day())

	empty, err := s.Workouts().ListByUser(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWorkoutsUpdatePatch(t *testing.T) {
	ctx := context.Background()
	s := New()

	note := "ноги"
	w, err := s.Workouts().Create(ctx, models.Workout{
		UserID:  1,
		Date:    time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Comment: &note,
	})
	require.NoError(t, err)

	// Patch without SetComment leaves the note alone.
	newDay := time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC)
	updated, err := s.Workouts().Update(ctx, w.ID, storage.WorkoutPatch{Date: &newDay})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC), updated.Date)
	require.NotNil(t, updated.Comment)
	assert.Equal(t, "ноги", *updated.Comment)

	// SetComment with a nil comment clears it.
	updated, err = s.Workouts().Update(ctx, w.ID, storage.WorkoutPatch{SetComment: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Comment)

	_, err = s.Workouts().Update(ctx, 9999, storage.WorkoutPatch{})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetOrCreateItemIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()

	ex := mustCreate(t, s, models.Exercise{Name: "Жим", Type: models.ExerciseStrength, UserID: i64(1)})
	w, err := s.Workouts().Create(ctx, models.Workout{UserID: 1, Date: time.Now()})
	require.NoError(t, err)

	first, err := s.Workouts().GetOrCreateItem(ctx, w.ID, ex.ID)
	require.NoError(t, err)
	second, err := s.Workouts().GetOrCreateItem(ctx, w.ID, ex.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestDetailKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	bench := mustCreate(t, s, models.Exercise{Name: "Жим", Type: models.ExerciseStrength, UserID: i64(1)})
	run := mustCreate(t, s, models.Exercise{Name: "Бег", Type: models.ExerciseCardio, IsDefault: true})

	w, err := s.Workouts().Create(ctx, models.Workout{UserID: 1, Date: time.Now()})
	require.NoError(t, err)

	benchItem, err := s.Workouts().GetOrCreateItem(ctx, w.ID, bench.ID)
	require.NoError(t, err)
	runItem, err := s.Workouts().GetOrCreateItem(ctx, w.ID, run.ID)
	require.NoError(t, err)

	require.NoError(t, s.Workouts().AddReps(ctx, benchItem.ID, []models.RepInput{
		{Weight: 60, Count: 10},
		{Weight: 70, Count: 8},
	}))
	require.NoError(t, s.Workouts().AddReps(ctx, runItem.ID, []models.RepInput{{Duration: 30}}))

	detail, err := s.Workouts().Detail(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 2)

	// Exercises in the order they were attached, not alphabetical.
	assert.Equal(t, bench.ID, detail.Exercises[0].Exercise.ID)
	assert.Equal(t, run.ID, detail.Exercises[1].Exercise.ID)

	reps := detail.Exercises[0].Reps
	require.Len(t, reps, 2)
	assert.Equal(t, 60.0, reps[0].Weight)
	assert.Equal(t, 10, reps[0].Count)
	assert.Equal(t, 70.0, reps[1].Weight)

	require.Len(t, detail.Exercises[1].Reps, 1)
	assert.Equal(t, 30, detail.Exercises[1].Reps[0].Duration)

	_, err = s.Workouts().Detail(ctx, 9999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWorkoutDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := New()

	ex := mustCreate(t, s, models.Exercise{Name: "Жим", Type: models.ExerciseStrength, UserID: i64(1)})
	w, err := s.Workouts().Create(ctx, models.Workout{UserID: 1, Date: time.Now()})
	require.NoError(t, err)

	item, err := s.Workouts().GetOrCreateItem(ctx, w.ID, ex.ID)
	require.NoError(t, err)
	require.NoError(t, s.Workouts().AddReps(ctx, item.ID, []models.RepInput{{Weight: 50, Count: 5}}))

	require.NoError(t, s.Workouts().Delete(ctx, w.ID))

	_, err = s.Workouts().ByID(ctx, w.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.Workouts().Detail(ctx, w.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// A fresh workout on the same day starts with no attached exercises.
	again, err := s.Workouts().Create(ctx, models.Workout{UserID: 1, Date: time.Now()})
	require.NoError(t, err)
	detail, err := s.Workouts().Detail(ctx, again.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Exercises)
}
