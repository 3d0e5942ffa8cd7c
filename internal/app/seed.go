package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/SI1V/GymStars/core/bootstrap"
	"github.com/SI1V/GymStars/core/logger"
	"github.com/SI1V/GymStars/internal/models"
	"github.com/SI1V/GymStars/internal/storage"
)

// defaultExercises are the shared exercises every user sees.
var defaultExercises = []models.Exercise{
	{Name: "Приседания со штангой", Type: models.ExerciseStrength, IsDefault: true},
	{Name: "Жим лёжа", Type: models.ExerciseStrength, IsDefault: true},
	{Name: "Становая тяга", Type: models.ExerciseStrength, IsDefault: true},
	{Name: "Беговая дорожка", Type: models.ExerciseCardio, IsDefault: true},
	{Name: "Велотренажёр", Type: models.ExerciseCardio, IsDefault: true},
	{Name: "Скакалка", Type: models.ExerciseCardio, IsDefault: true},
}

// DefaultExerciseSeeder inserts the shared exercises once. Re-runs are no-ops
// as soon as any default row exists.
func DefaultExerciseSeeder() bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, st bootstrap.Storage) error {
		store, ok := st.(storage.Store)
		if !ok {
			return fmt.Errorf("seed: unexpected storage type %T", st)
		}

		// Listing for the zero user returns defaults only; telegram ids are
		// always positive.
		for _, t := range []models.ExerciseType{models.ExerciseStrength, models.ExerciseCardio} {
			_, total, err := store.Exercises().ListByType(ctx, 0, t, 0, 1)
			if err != nil {
				return fmt.Errorf("seed: probe defaults: %w", err)
			}
			if total > 0 {
				logger.SEED.Debug("defaults present, skipping",
					slog.String("event", "seed.skip"),
				)
				return nil
			}
		}

		for _, ex := range defaultExercises {
			if _, err := store.Exercises().Create(ctx, ex); err != nil {
				return fmt.Errorf("seed: insert %q: %w", ex.Name, err)
			}
		}
		logger.SEED.Info("default exercises seeded",
			slog.String("event", "seed.done"),
			slog.Int("total", len(defaultExercises)),
		)
		return nil
	})
}
