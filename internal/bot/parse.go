package bot

import (
	"context"
	"strconv"
	"strings"

	"log/slog"

	"github.com/SI1V/GymStars/core/logger"
	"github.com/SI1V/GymStars/internal/models"
)

// ParseCardio reads a cardio entry: the whole message is one duration in
// minutes. Anything else fails.
func ParseCardio(input string) (models.RepInput, bool) {
	minutes, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || minutes <= 0 {
		return models.RepInput{}, false
	}
	return models.RepInput{Duration: minutes}, true
}

// ParseStrength reads strength sets, one "weight count" pair per line.
// Malformed lines are skipped with a warning, well-formed ones survive.
func ParseStrength(ctx context.Context, input string) []models.RepInput {
	var reps []models.RepInput
	for _, line := range strings.Split(strings.TrimSpace(input), "\n") {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			if strings.TrimSpace(line) != "" {
				logger.Warn(ctx, "tg", "sets.parse.skip",
					slog.String("line", line),
					slog.String("reason", "field_count"),
				)
			}
			continue
		}
		weight, werr := strconv.ParseFloat(parts[0], 64)
		count, cerr := strconv.Atoi(parts[1])
		if werr != nil || cerr != nil {
			logger.Warn(ctx, "tg", "sets.parse.skip",
				slog.String("line", line),
				slog.String("reason", "not_numeric"),
			)
			continue
		}
		reps = append(reps, models.RepInput{Weight: weight, Count: count})
	}
	return reps
}

// ParseWorkoutRef reads the "id: date comment" button text of the workout
// list and returns the leading id.
func ParseWorkoutRef(text string) (int64, bool) {
	head, _, ok := strings.Cut(text, ":")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(head), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
