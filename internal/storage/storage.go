// Package storage defines the persistence gateway consumed by the services.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/SI1V/GymStars/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("storage: not found")

// ErrConflict is returned when an insert or update violates a uniqueness
// constraint, such as a second workout on the same day.
var ErrConflict = errors.New("storage: conflict")

// WorkoutPatch is a partial field replacement for a workout. Nil fields are
// left untouched; SetComment with a nil Comment clears the note.
type WorkoutPatch struct {
	Date       *time.Time
	Comment    *string
	SetComment bool
}

// Users persists bot users.
type Users interface {
	// Ensure inserts the user if the id is unseen and reports whether a row
	// was created. Repeated calls with the same id are no-ops.
	Ensure(ctx context.Context, u models.User) (bool, error)
	ByID(ctx context.Context, id int64) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// Exercises persists exercise definitions.
type Exercises interface {
	// ListByType returns one page of exercises of the given type visible to
	// the user (owned or default) plus the total matching count. Pages out
	// of range yield an empty slice, not an error.
	ListByType(ctx context.Context, userID int64, t models.ExerciseType, offset, limit int) ([]models.Exercise, int, error)
	ByID(ctx context.Context, id int64) (*models.Exercise, error)
	Create(ctx context.Context, ex models.Exercise) (*models.Exercise, error)
	// Rename updates the name only. ErrNotFound when the row vanished.
	Rename(ctx context.Context, id int64, name string) (*models.Exercise, error)
	// Delete removes the exercise only when it is owned by userID and not a
	// default; it reports the number of rows affected.
	Delete(ctx context.Context, id, userID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// Workouts persists workouts, their exercise entries, and reps.
type Workouts interface {
	ByID(ctx context.Context, id int64) (*models.Workout, error)
	ByUserAndDate(ctx context.Context, userID int64, day time.Time) (*models.Workout, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Workout, error)
	// Create inserts the workout. ErrConflict when the user already has a
	// workout on that day.
	Create(ctx context.Context, w models.Workout) (*models.Workout, error)
	// Update applies the patch. ErrConflict when a date change lands on an
	// already occupied day.
	Update(ctx context.Context, id int64, patch WorkoutPatch) (*models.Workout, error)
	// Delete removes the workout and, by cascade, its exercise entries and reps.
	Delete(ctx context.Context, id int64) error
	// Detail loads the workout with exercises and reps eager-loaded, both in
	// creation (id) order.
	Detail(ctx context.Context, workoutID int64) (*models.WorkoutDetail, error)
	// GetOrCreateItem returns the join row for (workout, exercise), creating
	// it on first use. Re-adding the same exercise reuses the existing row.
	GetOrCreateItem(ctx context.Context, workoutID, exerciseID int64) (*models.WorkoutExercise, error)
	AddReps(ctx context.Context, workoutExerciseID int64, reps []models.RepInput) error
	Count(ctx context.Context) (int64, error)
}

// Store aggregates the repositories behind a single gateway.
type Store interface {
	Users() Users
	Exercises() Exercises
	Workouts() Workouts
}
