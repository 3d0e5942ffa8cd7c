package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"log/slog"

	"github.com/SI1V/GymStars/core/logger"
	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/storage"
)

// MaxExerciseName bounds exercise names, matching the column width.
const MaxExerciseName = 30

// Exercises manages exercise definitions: shared defaults plus per-user ones.
type Exercises struct {
	store storage.Store
}

// NewExercises constructs the exercise service.
func NewExercises(store storage.Store) *Exercises {
	return &Exercises{store: store}
}

// ParseType maps a user-supplied type string onto an ExerciseType. Unknown
// strings yield a ValidationError without touching storage.
func ParseType(raw string) (models.ExerciseType, error) {
	t := models.ExerciseType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown exercise type %q", raw)}
	}
	return t, nil
}

// ListPage returns one page of exercises of the given type visible to the
// user (owned or shared defaults) together with the total count. Pages past
// the end are empty, not an error.
func (s *Exercises) ListPage(ctx context.Context, userID int64, t models.ExerciseType, page, pageSize int) ([]models.Exercise, int, error) {
	if page < 0 {
		page = 0
	}
	list, total, err := s.store.Exercises().ListByType(ctx, userID, t, page*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list page: %w", err)
	}
	logger.Debug(ctx, "service.exercises", "exercise.list",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("exercise_type", string(t)),
		slog.Int("page", page),
		slog.Int("count", len(list)),
		slog.Int("total", total),
	)
	return list, total, nil
}

// Get returns the exercise or ErrNotFound.
func (s *Exercises) Get(ctx context.Context, id int64) (*models.Exercise, error) {
	ex, err := s.store.Exercises().ByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return ex, nil
}

// Create validates the type and name, then inserts a user-owned exercise.
// Validation failures never reach storage.
func (s *Exercises) Create(ctx context.Context, userID int64, typeRaw, name string) (*models.Exercise, error) {
	t, err := ParseType(typeRaw)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "empty name"}
	}
	if utf8.RuneCountInString(name) > MaxExerciseName {
		return nil, &ValidationError{Field: "name", Reason: fmt.Sprintf("name longer than %d characters", MaxExerciseName)}
	}

	created, err := s.store.Exercises().Create(ctx, models.Exercise{
		Name:   name,
		Type:   t,
		UserID: &userID,
	})
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	logger.Info(ctx, "service.exercises", "exercise.create",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("exercise_id", created.ID),
		slog.String("exercise_type", string(t)),
	)
	return created, nil
}

// Rename changes the name of an exercise, the only mutable field. Defaults
// and exercises owned by somebody else are refused with ErrForbidden,
// ErrNotFound when the target was deleted concurrently.
func (s *Exercises) Rename(ctx context.Context, id, userID int64, name string) (*models.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "empty name"}
	}
	if utf8.RuneCountInString(name) > MaxExerciseName {
		return nil, &ValidationError{Field: "name", Reason: fmt.Sprintf("name longer than %d characters", MaxExerciseName)}
	}

	ex, err := s.store.Exercises().ByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rename exercise: %w", err)
	}
	if ex.IsDefault || !ex.OwnedBy(userID) {
		logger.Warn(ctx, "service.exercises", "exercise.rename",
			slog.String("status", "skip"),
			slog.Int64("user_id", userID),
			slog.Int64("exercise_id", id),
		)
		return nil, ErrForbidden
	}

	updated, err := s.store.Exercises().Rename(ctx, id, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rename exercise: %w", err)
	}
	logger.Info(ctx, "service.exercises", "exercise.rename",
		slog.String("status", "ok"),
		slog.Int64("exercise_id", id),
	)
	return updated, nil
}

// Delete removes the exercise when it is owned by the requester and not a
// default. Zero affected rows is reported as ErrForbidden, a soft failure.
func (s *Exercises) Delete(ctx context.Context, id, userID int64) error {
	affected, err := s.store.Exercises().Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		logger.Warn(ctx, "service.exercises", "exercise.delete",
			slog.String("status", "skip"),
			slog.Int64("user_id", userID),
			slog.Int64("exercise_id", id),
		)
		return ErrForbidden
	}
	logger.Info(ctx, "service.exercises", "exercise.delete",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("exercise_id", id),
	)
	return nil
}

// Count reports the number of exercise definitions.
func (s *Exercises) Count(ctx context.Context) (int64, error) {
	return s.store.Exercises().Count(ctx)
}
