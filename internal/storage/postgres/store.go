// Package postgres implements the storage gateway on top of PostgreSQL
// through sqlx.
package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/SI1V/GymStars/internal/storage"
)

type store struct {
	users     *usersRepo
	exercises *exercisesRepo
	workouts  *workoutsRepo
}

// New wires the PostgreSQL-backed repositories around an open connection pool.
func New(db *sqlx.DB) storage.Store {
	return &store{
		users:     &usersRepo{db: db},
		exercises: &exercisesRepo{db: db},
		workouts:  &workoutsRepo{db: db},
	}
}

func (s *store) Users() storage.Users         { return s.users }
func (s *store) Exercises() storage.Exercises { return s.exercises }
func (s *store) Workouts() storage.Workouts   { return s.workouts }
