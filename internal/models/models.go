// Package models declares the persistent entities of the workout tracker.
package models

import "time"

// ExerciseType distinguishes strength exercises (weight x count sets) from
// cardio exercises (duration in minutes).
type ExerciseType string

const (
	ExerciseStrength ExerciseType = "STRENGTH"
	ExerciseCardio   ExerciseType = "CARDIO"
)

// Valid reports whether t is one of the known exercise types.
func (t ExerciseType) Valid() bool {
	return t == ExerciseStrength || t == ExerciseCardio
}

// User is a person talking to the bot. The primary key is the
// platform-assigned Telegram identifier; rows are created on first contact
// and never deleted by the bot.
type User struct {
	ID                  int64      `db:"id"`
	Username            *string    `db:"username"`
	FullName            *string    `db:"full_name"`
	IsSubscribed        bool       `db:"is_subscribed"`
	SubscriptionExpires *time.Time `db:"subscription_expires"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

// Exercise is a strength or cardio exercise definition. Default exercises
// (UserID nil, IsDefault true) are shared, immutable, and undeletable;
// everything else belongs to exactly one user.
type Exercise struct {
	ID        int64        `db:"id"`
	Name      string       `db:"name"`
	Type      ExerciseType `db:"type"`
	IsDefault bool         `db:"is_default"`
	UserID    *int64       `db:"user_id"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

// OwnedBy reports whether the exercise belongs to the given user.
func (e Exercise) OwnedBy(userID int64) bool {
	return e.UserID != nil && *e.UserID == userID
}

// Workout is one training occurrence on a calendar day.
type Workout struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Date      time.Time `db:"date"`
	Comment   *string   `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// WorkoutExercise links one workout to one exercise definition. It is
// created lazily the first time sets are recorded for that exercise on that
// workout and holds the recorded reps.
type WorkoutExercise struct {
	ID         int64     `db:"id"`
	WorkoutID  int64     `db:"workout_id"`
	ExerciseID int64     `db:"exercise_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Rep is one recorded unit of performance: a strength set carries
// (weight, count) with zero duration, a cardio entry carries duration with
// zero weight and count.
type Rep struct {
	ID                int64     `db:"id"`
	WorkoutExerciseID int64     `db:"workout_exercise_id"`
	Weight            float64   `db:"weight"`
	Count             int       `db:"count"`
	Duration          int       `db:"duration"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// RepInput is a rep prior to insertion.
type RepInput struct {
	Weight   float64
	Count    int
	Duration int
}

// WorkoutExerciseDetail is one exercise of a workout with its recorded reps
// in creation order.
type WorkoutExerciseDetail struct {
	Exercise Exercise
	Reps     []Rep
}

// WorkoutDetail is a workout with its exercises eager-loaded, exercises and
// reps both in creation order.
type WorkoutDetail struct {
	Workout   Workout
	Exercises []WorkoutExerciseDetail
}
