package bot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tele "gopkg.in/telebot.v4"

	"github.com/SI1V/GymStars/core/telegram/middleware"
	"github.com/SI1V/GymStars/core/telegram/state"
	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/service"
	"github.com/SI1V/GymStars/internal/storage"
	"github.com/SI1V/GymStars/internal/storage/memory"
)

// scriptedContext fakes just enough of tele.Context to drive flow handlers:
// incoming text or callback data in, outbound message texts captured.
type scriptedContext struct {
	tele.Context
	sender *tele.User
	text   string
	cb     *tele.Callback
	bag    map[string]any
	sent   []string
}

func script(userID int64) *scriptedContext {
	return &scriptedContext{
		sender: &tele.User{ID: userID, Username: "ivan", FirstName: "Иван"},
		bag:    make(map[string]any),
	}
}

func (c *scriptedContext) withText(text string) *scriptedContext {
	c.text = text
	return c
}

func (c *scriptedContext) withCallback(unique, payload string) *scriptedContext {
	c.cb = &tele.Callback{Data: unique + "|" + payload}
	return c
}

func (c *scriptedContext) Sender() *tele.User       { return c.sender }
func (c *scriptedContext) Chat() *tele.Chat         { return &tele.Chat{ID: c.sender.ID} }
func (c *scriptedContext) Update() tele.Update      { return tele.Update{ID: 1} }
func (c *scriptedContext) Text() string             { return c.text }
func (c *scriptedContext) Callback() *tele.Callback { return c.cb }
func (c *scriptedContext) Get(key string) any       { return c.bag[key] }
func (c *scriptedContext) Set(key string, v any)    { c.bag[key] = v }

func (c *scriptedContext) Send(what any, _ ...any) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return nil
}

func (c *scriptedContext) EditOrSend(what any, _ ...any) error {
	return c.Send(what)
}

func newTestHandlers(t *testing.T) (*Handlers, storage.Store, state.Manager) {
	t.Helper()
	store := memory.New()
	mgr := state.NewMemoryManager()
	h := New(
		service.NewUsers(store),
		service.NewExercises(store),
		service.NewWorkouts(store),
		mgr,
		DefaultPageSize,
	)
	return h, store, mgr
}

func TestStartRegistersUserOnce(t *testing.T) {
	h, store, _ := newTestHandlers(t)

	c := script(100)
	require.NoError(t, h.cmdStart(c))
	require.NoError(t, h.cmdStart(c))

	n, err := store.Users().Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NotEmpty(t, c.sent)
	assert.Contains(t, c.sent[len(c.sent)-1], "/exercises")
}

func TestExerciseCreateFlow(t *testing.T) {
	h, store, mgr := newTestHandlers(t)

	c := script(1).withCallback(cbExerciseNewType, "STRENGTH")
	require.NoError(t, h.onExerciseNewType(c))
	assert.Equal(t, StateExerciseCreateName, mgr.GetState(1))

	// Too-long name holds the state and reprompts.
	longName := ""
	for i := 0; i < service.MaxExerciseName+1; i++ {
		longName += "ж"
	}
	c = script(1).withText(longName)
	require.NoError(t, h.fsmExerciseCreateName(c))
	assert.Equal(t, StateExerciseCreateName, mgr.GetState(1))
	n, err := store.Exercises().Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	c = script(1).withText("Жим гантелей")
	require.NoError(t, h.fsmExerciseCreateName(c))
	assert.Equal(t, state.StateIdle, mgr.GetState(1))
	require.NotEmpty(t, c.sent)
	assert.Contains(t, c.sent[0], "Жим гантелей")

	n, err = store.Exercises().Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestDeleteConfirmRequiresArmedSession(t *testing.T) {
	h, store, mgr := newTestHandlers(t)
	ctx := context.Background()

	userID := int64(1)
	ex, err := store.Exercises().Create(ctx, models.Exercise{
		Name:   "Жим",
		Type:   models.ExerciseStrength,
		UserID: &userID,
	})
	require.NoError(t, err)

	confirm := middleware.State(mgr, StateExerciseDelete)(h.onExerciseDeleteConfirm)

	// A stray confirm press with no pending delete is dropped.
	c := script(1).withCallback(cbExerciseDelYes, "")
	require.NoError(t, confirm(c))
	assert.Empty(t, c.sent)
	_, err = store.Exercises().ByID(ctx, ex.ID)
	require.NoError(t, err)

	// Arm, then confirm.
	c = script(1).withCallback(cbExerciseDelete, fmt.Sprintf("%d", ex.ID))
	require.NoError(t, h.onExerciseDelete(c))
	assert.Equal(t, StateExerciseDelete, mgr.GetState(1))

	c = script(1).withCallback(cbExerciseDelYes, "")
	require.NoError(t, confirm(c))
	assert.Equal(t, state.StateIdle, mgr.GetState(1))
	_, err = store.Exercises().ByID(ctx, ex.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRenameRefusedForForeignAndDefault(t *testing.T) {
	h, store, mgr := newTestHandlers(t)
	ctx := context.Background()

	def, err := store.Exercises().Create(ctx, models.Exercise{
		Name:      "Приседания",
		Type:      models.ExerciseStrength,
		IsDefault: true,
	})
	require.NoError(t, err)
	owner := int64(1)
	foreign, err := store.Exercises().Create(ctx, models.Exercise{
		Name:   "Жим",
		Type:   models.ExerciseStrength,
		UserID: &owner,
	})
	require.NoError(t, err)

	// A crafted edit callback arms the rename, but the submit is refused
	// for a default exercise.
	c := script(2).withCallback(cbExerciseEdit, fmt.Sprintf("%d", def.ID))
	require.NoError(t, h.onExerciseEdit(c))
	c = script(2).withText("Мои приседания")
	require.NoError(t, h.fsmExerciseRename(c))
	assert.Equal(t, state.StateIdle, mgr.GetState(2))
	require.NotEmpty(t, c.sent)
	assert.Contains(t, c.sent[0], "нельзя изменить")

	// Same for an exercise owned by somebody else.
	c = script(2).withCallback(cbExerciseEdit, fmt.Sprintf("%d", foreign.ID))
	require.NoError(t, h.onExerciseEdit(c))
	c = script(2).withText("Чужой жим")
	require.NoError(t, h.fsmExerciseRename(c))
	require.NotEmpty(t, c.sent)
	assert.Contains(t, c.sent[0], "нельзя изменить")

	got, err := store.Exercises().ByID(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, "Приседания", got.Name)
	got, err = store.Exercises().ByID(ctx, foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, "Жим", got.Name)
}

func TestManualWorkoutCreateFlow(t *testing.T) {
	h, store, mgr := newTestHandlers(t)
	ctx := context.Background()

	c := script(1)
	require.NoError(t, h.cmdAddWorkout(c))
	assert.Equal(t, StateWorkoutDate, mgr.GetState(1))

	// Bad date reprompts without advancing.
	c = script(1).withText("14.03.2025")
	require.NoError(t, h.fsmWorkoutDate(c))
	assert.Equal(t, StateWorkoutDate, mgr.GetState(1))

	c = script(1).withText("2025-03-14")
	require.NoError(t, h.fsmWorkoutDate(c))
	assert.Equal(t, StateWorkoutNote, mgr.GetState(1))

	c = script(1).withText("-")
	require.NoError(t, h.fsmWorkoutNote(c))
	assert.Equal(t, StateWorkoutConfirm, mgr.GetState(1))

	c = script(1).withText(textSaveWorkout)
	require.NoError(t, h.fsmWorkoutConfirm(c))
	assert.Equal(t, state.StateIdle, mgr.GetState(1))

	w, err := store.Workouts().ByUserAndDate(ctx, 1, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, w.Comment)

	// A second create on the same day is turned away.
	require.NoError(t, h.cmdAddWorkout(script(1)))
	require.NoError(t, h.fsmWorkoutDate(script(1).withText("2025-03-14")))
	require.NoError(t, h.fsmWorkoutNote(script(1).withText("-")))
	c = script(1).withText(textSaveWorkout)
	require.NoError(t, h.fsmWorkoutConfirm(c))
	require.NotEmpty(t, c.sent)
	assert.Contains(t, c.sent[0], "уже есть")
}

func TestCalendarDaySelection(t *testing.T) {
	h, store, mgr := newTestHandlers(t)
	ctx := context.Background()

	// A free day starts the adding loop with the date held in the session.
	c := script(1).withCallback("cal", "select_day|2025|3|14")
	require.NoError(t, h.onCalendar(c))
	assert.Equal(t, StateWorkoutAdding, mgr.GetState(1))
	day, ok := h.sessionDay(1)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), day)

	// A day with an existing workout shows the detail without changing state.
	note := "ноги"
	_, err := store.Workouts().Create(ctx, models.Workout{
		UserID:  1,
		Date:    time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
		Comment: &note,
	})
	require.NoError(t, err)
	mgr.Clear(1)

	c = script(1).withCallback("cal", "select_day|2025|3|20")
	require.NoError(t, h.onCalendar(c))
	assert.Equal(t, state.StateIdle, mgr.GetState(1))
	require.NotEmpty(t, c.sent)
	assert.Contains(t, c.sent[0], "20.03.2025")
	assert.Contains(t, c.sent[0], "ноги")

	// Filler cells are inert.
	c = script(1).withCallback("cal", "select_day|2025|3|0")
	require.NoError(t, h.onCalendar(c))
	assert.Empty(t, c.sent)
}

func TestSetsRecording(t *testing.T) {
	h, store, mgr := newTestHandlers(t)
	ctx := context.Background()

	cardio, err := store.Exercises().Create(ctx, models.Exercise{
		Name:      "Бег",
		Type:      models.ExerciseCardio,
		IsDefault: true,
	})
	require.NoError(t, err)

	mgr.SetTemp(1, tempDate, "2025-03-14")
	mgr.SetTemp(1, tempExerciseID, cardio.ID)
	mgr.SetState(1, StateWorkoutSets)

	// Non-numeric cardio input holds the stage.
	c := script(1).withText("полчаса")
	require.NoError(t, h.fsmWorkoutSets(c))
	assert.Equal(t, StateWorkoutSets, mgr.GetState(1))

	c = script(1).withText("30")
	require.NoError(t, h.fsmWorkoutSets(c))
	assert.Equal(t, StateWorkoutAdding, mgr.GetState(1))
	require.NotEmpty(t, c.sent)
	assert.Contains(t, c.sent[0], "⏱ 30 мин")

	w, err := store.Workouts().ByUserAndDate(ctx, 1, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	detail, err := store.Workouts().Detail(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 1)
	require.Len(t, detail.Exercises[0].Reps, 1)
	assert.Equal(t, 30, detail.Exercises[0].Reps[0].Duration)
}

func TestBrowseAndEditNote(t *testing.T) {
	h, store, mgr := newTestHandlers(t)
	ctx := context.Background()

	w, err := store.Workouts().Create(ctx, models.Workout{
		UserID: 1,
		Date:   time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	c := script(1)
	require.NoError(t, h.cmdListWorkouts(c))
	assert.Equal(t, StateWorkoutBrowse, mgr.GetState(1))
	require.NotEmpty(t, c.sent)
	assert.Contains(t, c.sent[0], fmt.Sprintf("%d: 2025-03-14", w.ID))

	c = script(1).withText(fmt.Sprintf("%d: 2025-03-14", w.ID))
	require.NoError(t, h.fsmWorkoutBrowse(c))
	assert.Equal(t, StateWorkoutView, mgr.GetState(1))

	c = script(1).withText(textEditWorkout)
	require.NoError(t, h.fsmWorkoutView(c))
	assert.Equal(t, StateWorkoutEditNote, mgr.GetState(1))

	c = script(1).withText("спина и бицепс")
	require.NoError(t, h.fsmWorkoutEditNote(c))
	assert.Equal(t, StateWorkoutView, mgr.GetState(1))

	got, err := store.Workouts().ByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "спина и бицепс", *got.Comment)
}
