package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SI1V/GymStars/internal/models"
)

func TestParseCardio(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.RepInput
		ok    bool
	}{
		{name: "plain minutes", input: "45", want: models.RepInput{Duration: 45}, ok: true},
		{name: "surrounding spaces", input: "  30 \n", want: models.RepInput{Duration: 30}, ok: true},
		{name: "zero", input: "0", ok: false},
		{name: "negative", input: "-10", ok: false},
		{name: "not a number", input: "сорок пять", ok: false},
		{name: "float", input: "12.5", ok: false},
		{name: "empty", input: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCardio(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseStrength(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  []models.RepInput
	}{
		{
			name:  "two sets",
			input: "20 10\n40 8",
			want: []models.RepInput{
				{Weight: 20, Count: 10},
				{Weight: 40, Count: 8},
			},
		},
		{
			name:  "fractional weight",
			input: "22.5 12",
			want:  []models.RepInput{{Weight: 22.5, Count: 12}},
		},
		{
			name:  "malformed line skipped",
			input: "20 10\nмусор\n40 8",
			want: []models.RepInput{
				{Weight: 20, Count: 10},
				{Weight: 40, Count: 8},
			},
		},
		{
			name:  "non numeric pair skipped",
			input: "двадцать десять\n60 5",
			want:  []models.RepInput{{Weight: 60, Count: 5}},
		},
		{
			name:  "blank lines ignored",
			input: "\n20 10\n\n",
			want:  []models.RepInput{{Weight: 20, Count: 10}},
		},
		{
			name:  "all malformed",
			input: "one two three\nx",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStrength(ctx, tt.input))
		})
	}
}

func TestParseWorkoutRef(t *testing.T) {
	tests := []struct {
		name  string
		input string
		id    int64
		ok    bool
	}{
		{name: "list button", input: "7: 02.01.2025 ноги", id: 7, ok: true},
		{name: "no comment", input: "12: 15.03.2025", id: 12, ok: true},
		{name: "no colon", input: "просто текст", ok: false},
		{name: "non numeric id", input: "abc: 02.01.2025", ok: false},
		{name: "zero id", input: "0: 02.01.2025", ok: false},
		{name: "negative id", input: "-3: 02.01.2025", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseWorkoutRef(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.id, id)
			}
		})
	}
}
