package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/SI1V/GymStars/core/logger"
	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/storage"
)

// Workouts manages workouts, their exercise entries, and recorded reps.
type Workouts struct {
	store storage.Store
}

// NewWorkouts constructs the workout service.
func NewWorkouts(store storage.Store) *Workouts {
	return &Workouts{store: store}
}

// List returns all workouts of the user in date order.
func (s *Workouts) List(ctx context.Context, userID int64) ([]models.Workout, error) {
	list, err := s.store.Workouts().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return list, nil
}

// Dates returns the set of calendar days the user trained on, keyed by the
// day truncated to UTC midnight. The calendar uses it to mark trained days.
func (s *Workouts) Dates(ctx context.Context, userID int64) (map[time.Time]bool, error) {
	list, err := s.store.Workouts().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("workout dates: %w", err)
	}
	days := make(map[time.Time]bool, len(list))
	for _, w := range list {
		y, m, d := w.Date.Date()
		days[time.Date(y, m, d, 0, 0, 0, 0, time.UTC)] = true
	}
	return days, nil
}

// ByDate returns the user's workout on the given day, or ErrNotFound.
func (s *Workouts) ByDate(ctx context.Context, userID int64, day time.Time) (*models.Workout, error) {
	w, err := s.store.Workouts().ByUserAndDate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("workout by date: %w", err)
	}
	return w, nil
}

// Create records a workout on the given day. A nil note leaves the comment
// empty. One workout per user per day; a second create on the same day
// returns ErrConflict.
func (s *Workouts) Create(ctx context.Context, userID int64, day time.Time, note *string) (*models.Workout, error) {
	w, err := s.store.Workouts().Create(ctx, models.Workout{
		UserID:  userID,
		Date:    day,
		Comment: note,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			logger.Warn(ctx, "service.workouts", "workout.create",
				slog.String("status", "skip"),
				slog.Int64("user_id", userID),
				slog.String("date", day.Format("2006-01-02")),
			)
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create workout: %w", err)
	}
	logger.Info(ctx, "service.workouts", "workout.create",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("workout_id", w.ID),
		slog.String("date", w.Date.Format("2006-01-02")),
	)
	return w, nil
}

// View loads the full workout detail for display. Requests for another
// user's workout are indistinguishable from a missing one.
func (s *Workouts) View(ctx context.Context, userID, workoutID int64) (*models.WorkoutDetail, error) {
	detail, err := s.store.Workouts().Detail(ctx, workoutID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("view workout: %w", err)
	}
	if detail.Workout.UserID != userID {
		return nil, ErrNotFound
	}
	return detail, nil
}

// SetNote replaces the workout's note. An empty string clears it.
func (s *Workouts) SetNote(ctx context.Context, userID, workoutID int64, note string) (*models.Workout, error) {
	if _, err := s.owned(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	patch := storage.WorkoutPatch{SetComment: true}
	if note != "" {
		patch.Comment = &note
	}
	w, err := s.store.Workouts().Update(ctx, workoutID, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set note: %w", err)
	}
	logger.Info(ctx, "service.workouts", "workout.note",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("workout_id", workoutID),
	)
	return w, nil
}

// Delete removes the workout and everything recorded under it.
func (s *Workouts) Delete(ctx context.Context, userID, workoutID int64) error {
	if _, err := s.owned(ctx, userID, workoutID); err != nil {
		return err
	}
	if err := s.store.Workouts().Delete(ctx, workoutID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete workout: %w", err)
	}
	logger.Info(ctx, "service.workouts", "workout.delete",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("workout_id", workoutID),
	)
	return nil
}

// AddSets records reps for an exercise on the given day. The workout and the
// workout-exercise entry are created on first use; with no reps nothing new
// is inserted beyond those rows. Returns the refreshed workout detail.
func (s *Workouts) AddSets(ctx context.Context, userID int64, day time.Time, exerciseID int64, reps []models.RepInput) (*models.WorkoutDetail, error) {
	if _, err := s.store.Exercises().ByID(ctx, exerciseID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("add sets: %w", err)
	}

	w, err := s.store.Workouts().ByUserAndDate(ctx, userID, day)
	if errors.Is(err, storage.ErrNotFound) {
		w, err = s.store.Workouts().Create(ctx, models.Workout{UserID: userID, Date: day})
		if errors.Is(err, storage.ErrConflict) {
			// Lost a create race; the day now has a workout.
			w, err = s.store.Workouts().ByUserAndDate(ctx, userID, day)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("add sets: %w", err)
	}

	item, err := s.store.Workouts().GetOrCreateItem(ctx, w.ID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("add sets: %w", err)
	}
	if len(reps) > 0 {
		if err := s.store.Workouts().AddReps(ctx, item.ID, reps); err != nil {
			return nil, fmt.Errorf("add sets: %w", err)
		}
	}

	logger.Info(ctx, "service.workouts", "workout.sets",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("workout_id", w.ID),
		slog.Int64("exercise_id", exerciseID),
		slog.Int64("workout_exercise_id", item.ID),
		slog.Int("reps", len(reps)),
	)
	return s.store.Workouts().Detail(ctx, w.ID)
}

// Count reports the number of recorded workouts.
func (s *Workouts) Count(ctx context.Context) (int64, error) {
	return s.store.Workouts().Count(ctx)
}

func (s *Workouts) owned(ctx context.Context, userID, workoutID int64) (*models.Workout, error) {
	w, err := s.store.Workouts().ByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load workout: %w", err)
	}
	if w.UserID != userID {
		return nil, ErrNotFound
	}
	return w, nil
}
