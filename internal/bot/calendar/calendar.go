// Package calendar renders the inline date picker used by the workout flow.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SI1V/GymStars/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Key is the callback unique shared by every calendar button.
const Key = "cal"

// Calendar callback actions.
const (
	ActionSelectDay   = "select_day"
	ActionSelectMonth = "select_month"
	ActionShowMonths  = "show_months"
	ActionShowYears   = "show_years"
	ActionSelectYear  = "select_year"
	ActionChangeRange = "change_year_range"
)

// MarkedIcon replaces the day number on days that already have a workout.
const MarkedIcon = "🏆"

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var weekdayHeader = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// Callback is one decoded calendar button press.
type Callback struct {
	Action string
	Year   int
	Month  time.Month
	Day    int
}

// Payload encodes the callback as "action|year|month|day".
func (cb Callback) Payload() string {
	return fmt.Sprintf("%s|%d|%d|%d", cb.Action, cb.Year, int(cb.Month), cb.Day)
}

// Date returns the selected day in UTC. Valid only for ActionSelectDay.
func (cb Callback) Date() time.Time {
	return time.Date(cb.Year, cb.Month, cb.Day, 0, 0, 0, 0, time.UTC)
}

// Decode parses a calendar callback payload.
func Decode(payload string) (Callback, error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return Callback{}, fmt.Errorf("calendar: malformed payload %q", payload)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Callback{}, fmt.Errorf("calendar: bad year in %q", payload)
	}
	month, err := strconv.Atoi(parts[2])
	if err != nil || month < 0 || month > 12 {
		return Callback{}, fmt.Errorf("calendar: bad month in %q", payload)
	}
	day, err := strconv.Atoi(parts[3])
	if err != nil {
		return Callback{}, fmt.Errorf("calendar: bad day in %q", payload)
	}
	return Callback{Action: parts[0], Year: year, Month: time.Month(month), Day: day}, nil
}

func btn(text string, cb Callback) keyboard.InlineBtn {
	return keyboard.InlineBtn{Text: text, Unique: Key, Data: cb.Payload()}
}

// filler is an inert cell, ignored by the handler since Day is zero.
func filler(year int, month time.Month) keyboard.InlineBtn {
	return btn(" ", Callback{Action: ActionSelectDay, Year: year, Month: month})
}

// Month builds the day grid for one month. Days present in marked (UTC
// midnight keys) show the trophy icon instead of the number.
func Month(year int, month time.Month, marked map[time.Time]bool) *tele.ReplyMarkup {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	var rows [][]keyboard.InlineBtn

	rows = append(rows, []keyboard.InlineBtn{
		btn("«", Callback{Action: ActionSelectMonth, Year: prev.Year(), Month: prev.Month()}),
		btn(fmt.Sprintf("%s %d", monthNames[month-1], year), Callback{Action: ActionShowMonths, Year: year, Month: month}),
		btn("»", Callback{Action: ActionSelectMonth, Year: next.Year(), Month: next.Month()}),
	})

	header := make([]keyboard.InlineBtn, 0, 7)
	for _, wd := range weekdayHeader {
		header = append(header, filler(year, month))
		header[len(header)-1].Text = wd
	}
	rows = append(rows, header)

	daysInMonth := next.AddDate(0, 0, -1).Day()
	// Monday-first column of the 1st.
	offset := (int(first.Weekday()) + 6) % 7

	week := make([]keyboard.InlineBtn, 0, 7)
	for i := 0; i < offset; i++ {
		week = append(week, filler(year, month))
	}
	for day := 1; day <= daysInMonth; day++ {
		text := strconv.Itoa(day)
		if marked[time.Date(year, month, day, 0, 0, 0, 0, time.UTC)] {
			text = MarkedIcon
		}
		week = append(week, btn(text, Callback{Action: ActionSelectDay, Year: year, Month: month, Day: day}))
		if len(week) == 7 {
			rows = append(rows, week)
			week = make([]keyboard.InlineBtn, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, filler(year, month))
		}
		rows = append(rows, week)
	}

	return keyboard.InlineButtonsRows(rows...)
}

// MonthSelector builds the list of months for one year. The year header
// switches to the year selector.
func MonthSelector(year int) *tele.ReplyMarkup {
	rows := [][]keyboard.InlineBtn{
		{btn(strconv.Itoa(year), Callback{Action: ActionShowYears, Year: year})},
	}
	row := make([]keyboard.InlineBtn, 0, 3)
	for m := time.January; m <= time.December; m++ {
		row = append(row, btn(monthNames[m-1], Callback{Action: ActionSelectMonth, Year: year, Month: m}))
		if len(row) == 3 {
			rows = append(rows, row)
			row = make([]keyboard.InlineBtn, 0, 3)
		}
	}
	return keyboard.InlineButtonsRows(rows...)
}

// YearSelectorSpan is the number of years shown per selector page.
const YearSelectorSpan = 12

// YearSelector builds a page of years centered near the given year. Choosing
// a year opens its month selector; the arrows shift the visible range.
func YearSelector(center int) *tele.ReplyMarkup {
	start := center - YearSelectorSpan/2
	rows := [][]keyboard.InlineBtn{
		{
			btn("«", Callback{Action: ActionChangeRange, Year: center - YearSelectorSpan}),
			btn(fmt.Sprintf("%d – %d", start, start+YearSelectorSpan-1), Callback{Action: ActionChangeRange, Year: center}),
			btn("»", Callback{Action: ActionChangeRange, Year: center + YearSelectorSpan}),
		},
	}
	row := make([]keyboard.InlineBtn, 0, 4)
	for y := start; y < start+YearSelectorSpan; y++ {
		row = append(row, btn(strconv.Itoa(y), Callback{Action: ActionSelectYear, Year: y}))
		if len(row) == 4 {
			rows = append(rows, row)
			row = make([]keyboard.InlineBtn, 0, 4)
		}
	}
	return keyboard.InlineButtonsRows(rows...)
}
