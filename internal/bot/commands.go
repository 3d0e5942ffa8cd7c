package bot

// Callback keys. Every inline button carries one of these tags; the callback
// router decodes the tag once and dispatches by exact match, payloads are
// parsed inside the handlers.
const (
	cbExerciseType      = "ex_type"
	cbExercisePage      = "ex_page"
	cbExerciseOpen      = "ex_open"
	cbExerciseEdit      = "ex_edit"
	cbExerciseDelete    = "ex_del"
	cbExerciseDelYes    = "ex_del_confirm"
	cbExerciseDelNo     = "ex_del_cancel"
	cbExerciseBackTypes = "ex_types"
	cbExerciseBackList  = "ex_back"
	cbExerciseNewType   = "ex_new_type"
	cbExerciseNewCancel = "ex_create_cancel"

	cbWorkoutAddExercise = "wk_add_ex"
	cbWorkoutCalendar    = "wk_calendar"
	cbWorkoutType        = "wk_type"
	cbWorkoutExercise    = "wk_ex"
	cbWorkoutPage        = "wk_page"

	cbMainMenu = "main_menu"
)

// Reply-keyboard button texts doubling as command aliases.
const (
	textAddWorkout   = "Добавить тренировку"
	textListWorkouts = "Список тренировок"
	textBackToMenu   = "Назад в главное меню"
	textSaveWorkout  = "Сохранить тренировку"
	textCancel       = "Отмена"
	textEditWorkout  = "Редактировать"
	textDelWorkout   = "Удалить"
	textBackToList   = "Назад к списку тренировок"
)

const mainMenuText = "Главное меню:\n" +
	"/exercises — упражнения\n" +
	"/new_exercise — новое упражнение\n" +
	"/workouts — календарь тренировок"
