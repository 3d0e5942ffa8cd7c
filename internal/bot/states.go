package bot

import "github.com/SI1V/GymStars/core/telegram/state"

// Exercise flow states.
const (
	StateExerciseCreateName state.State = "exercise_create_name"
	StateExerciseRename     state.State = "exercise_rename"
	StateExerciseDelete     state.State = "exercise_delete_confirm"
)

// Workout flow states.
const (
	StateWorkoutDate     state.State = "workout_date"
	StateWorkoutNote     state.State = "workout_note"
	StateWorkoutConfirm  state.State = "workout_confirm"
	StateWorkoutAdding   state.State = "workout_adding_exercises"
	StateWorkoutType     state.State = "workout_choose_type"
	StateWorkoutExercise state.State = "workout_choose_exercise"
	StateWorkoutSets     state.State = "workout_enter_sets"
	StateWorkoutBrowse   state.State = "workout_browse"
	StateWorkoutView     state.State = "workout_view"
	StateWorkoutEditNote state.State = "workout_edit_note"
)

// Session temp-data keys shared between flow steps.
const (
	tempExerciseType = "exercise_type"
	tempExerciseID   = "exercise_id"
	tempPage         = "page"
	tempDate         = "date"
	tempNote         = "note"
	tempWorkoutID    = "workout_id"
)
