// Package memory is an in-memory storage gateway used by tests and local
// development, mirroring the SQL semantics of the postgres implementation.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/storage"
)

type store struct {
	mu sync.RWMutex

	users     map[int64]models.User
	exercises map[int64]models.Exercise
	workouts  map[int64]models.Workout
	items     map[int64]models.WorkoutExercise
	reps      map[int64]models.Rep

	nextExercise int64
	nextWorkout  int64
	nextItem     int64
	nextRep      int64
}

// New constructs an empty in-memory store.
func New() storage.Store {
	return &store{
		users:     make(map[int64]models.User),
		exercises: make(map[int64]models.Exercise),
		workouts:  make(map[int64]models.Workout),
		items:     make(map[int64]models.WorkoutExercise),
		reps:      make(map[int64]models.Rep),
	}
}

func (s *store) Users() storage.Users         { return (*usersRepo)(s) }
func (s *store) Exercises() storage.Exercises { return (*exercisesRepo)(s) }
func (s *store) Workouts() storage.Workouts   { return (*workoutsRepo)(s) }

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type usersRepo store

func (r *usersRepo) Ensure(_ context.Context, u models.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; ok {
		return false, nil
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = u
	return true, nil
}

func (r *usersRepo) ByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (r *usersRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

type exercisesRepo store

func (r *exercisesRepo) visible(userID int64, t models.ExerciseType) []models.Exercise {
	var out []models.Exercise
	for _, ex := range r.exercises {
		if ex.Type != t {
			continue
		}
		if ex.IsDefault || ex.OwnedBy(userID) {
			out = append(out, ex)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := strings.Compare(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *exercisesRepo) ListByType(_ context.Context, userID int64, t models.ExerciseType, offset, limit int) ([]models.Exercise, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.visible(userID, t)
	total := len(all)
	if offset >= total {
		return []models.Exercise{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return append([]models.Exercise(nil), all[offset:end]...), total, nil
}

func (r *exercisesRepo) ByID(_ context.Context, id int64) (*models.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ex, ok := r.exercises[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &ex, nil
}

func (r *exercisesRepo) Create(_ context.Context, ex models.Exercise) (*models.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextExercise++
	ex.ID = r.nextExercise
	ex.CreatedAt = time.Now()
	ex.UpdatedAt = ex.CreatedAt
	r.exercises[ex.ID] = ex
	return &ex, nil
}

func (r *exercisesRepo) Rename(_ context.Context, id int64, name string) (*models.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exercises[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	ex.Name = name
	ex.UpdatedAt = time.Now()
	r.exercises[id] = ex
	return &ex, nil
}

func (r *exercisesRepo) Delete(_ context.Context, id, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exercises[id]
	if !ok || ex.IsDefault || !ex.OwnedBy(userID) {
		return 0, nil
	}
	delete(r.exercises, id)
	return 1, nil
}

func (r *exercisesRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.exercises)), nil
}

type workoutsRepo store

func (r *workoutsRepo) ByID(_ context.Context, id int64) (*models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workouts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &w, nil
}

func (r *workoutsRepo) ByUserAndDate(_ context.Context, userID int64, d time.Time) (*models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := day(d)
	for _, w := range r.workouts {
		if w.UserID == userID && day(w.Date).Equal(want) {
			return &w, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *workoutsRepo) ListByUser(_ context.Context, userID int64) ([]models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Workout{}
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// dayTaken reports whether the user already has a different workout on the
// given day. Callers hold the lock.
func (r *workoutsRepo) dayTaken(userID int64, d time.Time, exceptID int64) bool {
	for _, w := range r.workouts {
		if w.ID != exceptID && w.UserID == userID && w.Date.Equal(d) {
			return true
		}
	}
	return false
}

func (r *workoutsRepo) Create(_ context.Context, w models.Workout) (*models.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.Date = day(w.Date)
	if r.dayTaken(w.UserID, w.Date, 0) {
		return nil, storage.ErrConflict
	}
	r.nextWorkout++
	w.ID = r.nextWorkout
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	r.workouts[w.ID] = w
	return &w, nil
}

func (r *workoutsRepo) Update(_ context.Context, id int64, patch storage.WorkoutPatch) (*models.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if patch.Date != nil {
		moved := day(*patch.Date)
		if r.dayTaken(w.UserID, moved, id) {
			return nil, storage.ErrConflict
		}
		w.Date = moved
	}
	if patch.SetComment {
		w.Comment = patch.Comment
	}
	w.UpdatedAt = time.Now()
	r.workouts[id] = w
	return &w, nil
}

func (r *workoutsRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workouts, id)
	for itemID, item := range r.items {
		if item.WorkoutID != id {
			continue
		}
		delete(r.items, itemID)
		for repID, rep := range r.reps {
			if rep.WorkoutExerciseID == itemID {
				delete(r.reps, repID)
			}
		}
	}
	return nil
}

func (r *workoutsRepo) Detail(_ context.Context, workoutID int64) (*models.WorkoutDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workouts[workoutID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	items := []models.WorkoutExercise{}
	for _, item := range r.items {
		if item.WorkoutID == workoutID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	detail := &models.WorkoutDetail{Workout: w}
	for _, item := range items {
		ex, ok := r.exercises[item.ExerciseID]
		if !ok {
			continue
		}
		reps := []models.Rep{}
		for _, rep := range r.reps {
			if rep.WorkoutExerciseID == item.ID {
				reps = append(reps, rep)
			}
		}
		sort.Slice(reps, func(i, j int) bool { return reps[i].ID < reps[j].ID })
		detail.Exercises = append(detail.Exercises, models.WorkoutExerciseDetail{
			Exercise: ex,
			Reps:     reps,
		})
	}
	return detail, nil
}

func (r *workoutsRepo) GetOrCreateItem(_ context.Context, workoutID, exerciseID int64) (*models.WorkoutExercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.WorkoutID == workoutID && item.ExerciseID == exerciseID {
			return &item, nil
		}
	}
	r.nextItem++
	item := models.WorkoutExercise{
		ID:         r.nextItem,
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	r.items[item.ID] = item
	return &item, nil
}

func (r *workoutsRepo) AddReps(_ context.Context, workoutExerciseID int64, reps []models.RepInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, in := range reps {
		r.nextRep++
		r.reps[r.nextRep] = models.Rep{
			ID:                r.nextRep,
			WorkoutExerciseID: workoutExerciseID,
			Weight:            in.Weight,
			Count:             in.Count,
			Duration:          in.Duration,
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		}
	}
	return nil
}

func (r *workoutsRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.workouts)), nil
}
