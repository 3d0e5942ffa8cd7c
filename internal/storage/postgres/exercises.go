package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/storage"
)

type exercisesRepo struct {
	db *sqlx.DB
}

func (r *exercisesRepo) ListByType(ctx context.Context, userID int64, t models.ExerciseType, offset, limit int) ([]models.Exercise, int, error) {
	list := []models.Exercise{}
	err := r.db.SelectContext(ctx, &list, `
		SELECT * FROM exercises
		WHERE type = $1 AND (user_id = $2 OR is_default)
		ORDER BY name, id
		OFFSET $3 LIMIT $4`,
		t, userID, offset, limit,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list exercises type=%s: %w", t, err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM exercises
		WHERE type = $1 AND (user_id = $2 OR is_default)`,
		t, userID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count exercises type=%s: %w", t, err)
	}
	return list, total, nil
}

func (r *exercisesRepo) ByID(ctx context.Context, id int64) (*models.Exercise, error) {
	var ex models.Exercise
	err := r.db.GetContext(ctx, &ex, `SELECT * FROM exercises WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return &ex, nil
}

func (r *exercisesRepo) Create(ctx context.Context, ex models.Exercise) (*models.Exercise, error) {
	var created models.Exercise
	err := r.db.GetContext(ctx, &created, `
		INSERT INTO exercises (name, type, is_default, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING *`,
		ex.Name, ex.Type, ex.IsDefault, ex.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("create exercise %q: %w", ex.Name, err)
	}
	return &created, nil
}

func (r *exercisesRepo) Rename(ctx context.Context, id int64, name string) (*models.Exercise, error) {
	var updated models.Exercise
	err := r.db.GetContext(ctx, &updated, `
		UPDATE exercises SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING *`,
		id, name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("rename exercise %d: %w", id, err)
	}
	return &updated, nil
}

func (r *exercisesRepo) Delete(ctx context.Context, id, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM exercises
		WHERE id = $1 AND user_id = $2 AND NOT is_default`,
		id, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete exercise %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete exercise %d: rows affected: %w", id, err)
	}
	return affected, nil
}

func (r *exercisesRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM exercises`); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return n, nil
}
