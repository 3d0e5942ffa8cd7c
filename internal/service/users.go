package service

import (
	"context"
	"errors"
	"fmt"

	"log/slog"

	"github.com/SI1V/GymStars/core/logger"
	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/storage"
)

// Users registers and resolves bot users.
type Users struct {
	store storage.Store
}

// NewUsers constructs the user service.
func NewUsers(store storage.Store) *Users {
	return &Users{store: store}
}

// Register creates the user on first contact and reports whether a new row
// was created. Registration is idempotent: repeated /start calls return the
// same identity without duplicating rows.
func (s *Users) Register(ctx context.Context, id int64, username, fullName string) (bool, error) {
	u := models.User{ID: id}
	if username != "" {
		u.Username = &username
	}
	if fullName != "" {
		u.FullName = &fullName
	}

	created, err := s.store.Users().Ensure(ctx, u)
	if err != nil {
		return false, fmt.Errorf("register user: %w", err)
	}
	logger.Info(ctx, "service.users", "user.register",
		slog.String("status", "ok"),
		slog.Int64("user_id", id),
		slog.Bool("created", created),
	)
	return created, nil
}

// Get returns the user or ErrNotFound.
func (s *Users) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.store.Users().ByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Count reports the number of registered users.
func (s *Users) Count(ctx context.Context) (int64, error) {
	return s.store.Users().Count(ctx)
}
