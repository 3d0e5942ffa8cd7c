package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundtrip(t *testing.T) {
	tests := []Callback{
		{Action: ActionSelectDay, Year: 2025, Month: time.March, Day: 14},
		{Action: ActionSelectMonth, Year: 2024, Month: time.December},
		{Action: ActionShowYears, Year: 2025},
		{Action: ActionChangeRange, Year: 2013},
	}
	for _, cb := range tests {
		got, err := Decode(cb.Payload())
		require.NoError(t, err, "payload %q", cb.Payload())
		assert.Equal(t, cb, got)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, payload := range []string{
		"",
		"select_day",
		"select_day|2025|3",
		"select_day|год|3|14",
		"select_day|2025|тринадцать|14",
		"select_day|2025|13|14",
		"select_day|2025|3|четырнадцать",
	} {
		_, err := Decode(payload)
		assert.Error(t, err, "payload %q", payload)
	}
}

func TestCallbackDate(t *testing.T) {
	cb := Callback{Action: ActionSelectDay, Year: 2025, Month: time.March, Day: 14}
	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), cb.Date())
}

func TestMonthGrid(t *testing.T) {
	// March 2025 starts on a Saturday, so the first day row carries five
	// leading fillers.
	marked := map[time.Time]bool{
		time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC): true,
	}
	markup := Month(2025, time.March, marked)
	rows := markup.InlineKeyboard
	require.GreaterOrEqual(t, len(rows), 3)

	nav := rows[0]
	require.Len(t, nav, 3)
	assert.Equal(t, "Март 2025", nav[1].Text)

	prev, err := Decode(nav[0].Data)
	require.NoError(t, err)
	assert.Equal(t, Callback{Action: ActionSelectMonth, Year: 2025, Month: time.February}, prev)

	next, err := Decode(nav[2].Data)
	require.NoError(t, err)
	assert.Equal(t, Callback{Action: ActionSelectMonth, Year: 2025, Month: time.April}, next)

	header := rows[1]
	require.Len(t, header, 7)
	assert.Equal(t, "Пн", header[0].Text)
	assert.Equal(t, "Вс", header[6].Text)

	firstWeek := rows[2]
	require.Len(t, firstWeek, 7)
	for i := 0; i < 5; i++ {
		cb, err := Decode(firstWeek[i].Data)
		require.NoError(t, err)
		assert.Zero(t, cb.Day, "column %d should be a filler", i)
	}
	assert.Equal(t, "1", firstWeek[5].Text)
	assert.Equal(t, "2", firstWeek[6].Text)

	day1, err := Decode(firstWeek[5].Data)
	require.NoError(t, err)
	assert.Equal(t, Callback{Action: ActionSelectDay, Year: 2025, Month: time.March, Day: 1}, day1)

	// Every button routes through the shared calendar callback key.
	for _, row := range rows {
		for _, b := range row {
			assert.Equal(t, Key, b.Unique)
		}
	}

	// The marked day shows the trophy instead of its number.
	var trophy int
	for _, row := range rows[2:] {
		for _, b := range row {
			if b.Text == MarkedIcon {
				trophy++
				cb, err := Decode(b.Data)
				require.NoError(t, err)
				assert.Equal(t, 14, cb.Day)
			}
		}
	}
	assert.Equal(t, 1, trophy)
}

func TestMonthGridYearBoundary(t *testing.T) {
	markup := Month(2025, time.January, nil)
	nav := markup.InlineKeyboard[0]

	prev, err := Decode(nav[0].Data)
	require.NoError(t, err)
	assert.Equal(t, 2024, prev.Year)
	assert.Equal(t, time.December, prev.Month)

	next, err := Decode(nav[2].Data)
	require.NoError(t, err)
	assert.Equal(t, 2025, next.Year)
	assert.Equal(t, time.February, next.Month)
}

func TestMonthSelector(t *testing.T) {
	markup := MonthSelector(2025)
	rows := markup.InlineKeyboard
	require.Len(t, rows, 5)

	head, err := Decode(rows[0][0].Data)
	require.NoError(t, err)
	assert.Equal(t, ActionShowYears, head.Action)
	assert.Equal(t, 2025, head.Year)

	assert.Equal(t, "Январь", rows[1][0].Text)
	assert.Equal(t, "Декабрь", rows[4][2].Text)

	dec, err := Decode(rows[4][2].Data)
	require.NoError(t, err)
	assert.Equal(t, Callback{Action: ActionSelectMonth, Year: 2025, Month: time.December}, dec)
}

func TestYearSelector(t *testing.T) {
	markup := YearSelector(2025)
	rows := markup.InlineKeyboard
	require.Len(t, rows, 4)

	nav := rows[0]
	require.Len(t, nav, 3)

	back, err := Decode(nav[0].Data)
	require.NoError(t, err)
	assert.Equal(t, Callback{Action: ActionChangeRange, Year: 2025 - YearSelectorSpan}, back)

	fwd, err := Decode(nav[2].Data)
	require.NoError(t, err)
	assert.Equal(t, Callback{Action: ActionChangeRange, Year: 2025 + YearSelectorSpan}, fwd)

	assert.Equal(t, "2019", rows[1][0].Text)
	assert.Equal(t, "2030", rows[3][3].Text)

	first, err := Decode(rows[1][0].Data)
	require.NoError(t, err)
	assert.Equal(t, Callback{Action: ActionSelectYear, Year: 2019}, first)
}
