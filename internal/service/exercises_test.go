package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/storage/memory"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  models.ExerciseType
		ok    bool
	}{
		{input: "STRENGTH", want: models.ExerciseStrength, ok: true},
		{input: "cardio", want: models.ExerciseCardio, ok: true},
		{input: " Strength ", want: models.ExerciseStrength, ok: true},
		{input: "yoga", ok: false},
		{input: "", ok: false},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.input)
		if !tt.ok {
			assert.True(t, IsValidation(err), "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestExercisesCreateValidation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewExercises(store)

	tests := []struct {
		name    string
		typeRaw string
		exName  string
	}{
		{name: "unknown type", typeRaw: "yoga", exName: "Поза дерева"},
		{name: "empty name", typeRaw: "STRENGTH", exName: "   "},
		{name: "name over limit", typeRaw: "STRENGTH", exName: strings.Repeat("ж", MaxExerciseName+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, tt.typeRaw, tt.exName)
			assert.True(t, IsValidation(err))
		})
	}

	// Rejected input never reaches storage.
	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestExercisesCreateAndList(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewExercises(store)

	// A 30-rune Cyrillic name is twice that in bytes and still fits.
	longName := strings.Repeat("ж", MaxExerciseName)
	created, err := svc.Create(ctx, 1, "strength", "  "+longName+"  ")
	require.NoError(t, err)
	assert.Equal(t, longName, created.Name)
	assert.Equal(t, models.ExerciseStrength, created.Type)
	require.NotNil(t, created.UserID)
	assert.EqualValues(t, 1, *created.UserID)
	assert.False(t, created.IsDefault)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExercisesListPage(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewExercises(store)

	for _, n := range []string{"Бег", "Велосипед", "Гребля", "Плавание", "Скакалка", "Ходьба"} {
		_, err := svc.Create(ctx, 1, "CARDIO", n)
		require.NoError(t, err)
	}

	page, total, err := svc.ListPage(ctx, 1, models.ExerciseCardio, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, page, 5)

	page, total, err = svc.ListPage(ctx, 1, models.ExerciseCardio, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Ходьба", page[0].Name)

	// Negative pages clamp to the first one.
	page, _, err = svc.ListPage(ctx, 1, models.ExerciseCardio, -3, 5)
	require.NoError(t, err)
	assert.Len(t, page, 5)
}

func TestExercisesRename(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewExercises(store)

	created, err := svc.Create(ctx, 1, "STRENGTH", "Жим")
	require.NoError(t, err)

	updated, err := svc.Rename(ctx, created.ID, 1, " Жим лёжа ")
	require.NoError(t, err)
	assert.Equal(t, "Жим лёжа", updated.Name)

	_, err = svc.Rename(ctx, created.ID, 1, "")
	assert.True(t, IsValidation(err))

	_, err = svc.Rename(ctx, 9999, 1, "Жим")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExercisesRenameGuards(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewExercises(store)

	def, err := store.Exercises().Create(ctx, models.Exercise{
		Name:      "Приседания",
		Type:      models.ExerciseStrength,
		IsDefault: true,
	})
	require.NoError(t, err)

	mine, err := svc.Create(ctx, 1, "STRENGTH", "Жим")
	require.NoError(t, err)

	// Defaults stay read-only regardless of who asks.
	_, err = svc.Rename(ctx, def.ID, 1, "Мои приседания")
	assert.ErrorIs(t, err, ErrForbidden)

	// A crafted callback from another user must not touch the row.
	_, err = svc.Rename(ctx, mine.ID, 2, "Чужой жим")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := store.Exercises().ByID(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, "Приседания", got.Name)

	got, err = store.Exercises().ByID(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Жим", got.Name)
}

func TestExercisesDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewExercises(store)

	def, err := store.Exercises().Create(ctx, models.Exercise{
		Name:      "Приседания",
		Type:      models.ExerciseStrength,
		IsDefault: true,
	})
	require.NoError(t, err)

	mine, err := svc.Create(ctx, 1, "STRENGTH", "Жим")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, def.ID, 1), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, mine.ID, 2), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, 9999, 1), ErrForbidden)

	require.NoError(t, svc.Delete(ctx, mine.ID, 1))
	_, err = svc.Get(ctx, mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
