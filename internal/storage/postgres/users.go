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

type usersRepo struct {
	db *sqlx.DB
}

func (r *usersRepo) Ensure(ctx context.Context, u models.User) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, full_name, is_subscribed, subscription_expires)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		u.ID, u.Username, u.FullName, u.IsSubscribed, u.SubscriptionExpires,
	)
	if err != nil {
		return false, fmt.Errorf("ensure user %d: %w", u.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ensure user %d: rows affected: %w", u.ID, err)
	}
	return affected > 0, nil
}

func (r *usersRepo) ByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *usersRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
