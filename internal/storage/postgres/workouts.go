package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/storage"
)

type workoutsRepo struct {
	db *sqlx.DB
}

// isUniqueViolation matches the postgres unique_violation error code, raised
// by the one-workout-per-day constraint.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *workoutsRepo) ByID(ctx context.Context, id int64) (*models.Workout, error) {
	var w models.Workout
	err := r.db.GetContext(ctx, &w, `SELECT * FROM workouts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workout %d: %w", id, err)
	}
	return &w, nil
}

func (r *workoutsRepo) ByUserAndDate(ctx context.Context, userID int64, day time.Time) (*models.Workout, error) {
	var w models.Workout
	err := r.db.GetContext(ctx, &w, `
		SELECT * FROM workouts WHERE user_id = $1 AND date = $2`,
		userID, day,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workout by date %s: %w", day.Format("2006-01-02"), err)
	}
	return &w, nil
}

func (r *workoutsRepo) ListByUser(ctx context.Context, userID int64) ([]models.Workout, error) {
	list := []models.Workout{}
	err := r.db.SelectContext(ctx, &list, `
		SELECT * FROM workouts WHERE user_id = $1 ORDER BY date, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list workouts user=%d: %w", userID, err)
	}
	return list, nil
}

func (r *workoutsRepo) Create(ctx context.Context, w models.Workout) (*models.Workout, error) {
	var created models.Workout
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO workouts (user_id, date, comment)
		VALUES ($1, $2, $3)
		RETURNING *`,
		w.UserID, w.Date, w.Comment,
	)
	if isUniqueViolation(err) {
		return nil, storage.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	return &created, nil
}

func (r *workoutsRepo) Update(ctx context.Context, id int64, patch storage.WorkoutPatch) (*models.Workout, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}
	if patch.Date != nil {
		args = append(args, *patch.Date)
		sets = append(sets, fmt.Sprintf("date = $%d", len(args)))
	}
	if patch.SetComment {
		args = append(args, patch.Comment)
		sets = append(sets, fmt.Sprintf("comment = $%d", len(args)))
	}

	var updated models.Workout
	query := fmt.Sprintf(`UPDATE workouts SET %s WHERE id = $1 RETURNING *`, strings.Join(sets, ", "))
	err := r.db.GetContext(ctx, &updated, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, storage.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update workout %d: %w", id, err)
	}
	return &updated, nil
}

func (r *workoutsRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	return nil
}

func (r *workoutsRepo) Detail(ctx context.Context, workoutID int64) (*models.WorkoutDetail, error) {
	workout, err := r.ByID(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	items := []models.WorkoutExercise{}
	err = r.db.SelectContext(ctx, &items, `
		SELECT * FROM workout_exercises WHERE workout_id = $1 ORDER BY id`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("detail workout %d: items: %w", workoutID, err)
	}

	detail := &models.WorkoutDetail{Workout: *workout}
	for _, item := range items {
		var ex models.Exercise
		err = r.db.GetContext(ctx, &ex, `SELECT * FROM exercises WHERE id = $1`, item.ExerciseID)
		if errors.Is(err, sql.ErrNoRows) {
			// Exercise definition vanished; skip the orphaned entry.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("detail workout %d: exercise %d: %w", workoutID, item.ExerciseID, err)
		}

		reps := []models.Rep{}
		err = r.db.SelectContext(ctx, &reps, `
			SELECT * FROM reps WHERE workout_exercise_id = $1 ORDER BY id`,
			item.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("detail workout %d: reps: %w", workoutID, err)
		}

		detail.Exercises = append(detail.Exercises, models.WorkoutExerciseDetail{
			Exercise: ex,
			Reps:     reps,
		})
	}
	return detail, nil
}

func (r *workoutsRepo) GetOrCreateItem(ctx context.Context, workoutID, exerciseID int64) (*models.WorkoutExercise, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workout_exercises (workout_id, exercise_id)
		VALUES ($1, $2)
		ON CONFLICT (workout_id, exercise_id) DO NOTHING`,
		workoutID, exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("create workout item %d/%d: %w", workoutID, exerciseID, err)
	}

	var item models.WorkoutExercise
	err = r.db.GetContext(ctx, &item, `
		SELECT * FROM workout_exercises WHERE workout_id = $1 AND exercise_id = $2`,
		workoutID, exerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("get workout item %d/%d: %w", workoutID, exerciseID, err)
	}
	return &item, nil
}

func (r *workoutsRepo) AddReps(ctx context.Context, workoutExerciseID int64, reps []models.RepInput) error {
	if len(reps) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add reps: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, rep := range reps {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO reps (workout_exercise_id, weight, count, duration)
			VALUES ($1, $2, $3, $4)`,
			workoutExerciseID, rep.Weight, rep.Count, rep.Duration,
		)
		if err != nil {
			return fmt.Errorf("add reps: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add reps: commit: %w", err)
	}
	return nil
}

func (r *workoutsRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM workouts`); err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return n, nil
}
