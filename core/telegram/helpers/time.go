package helpers

import (
	"strings"
	"time"
)

const (
	// DateLayoutISO is the format users type dates in (ГГГГ-ММ-ДД).
	DateLayoutISO = "2006-01-02"
	// DateLayoutDisplay is the format dates are rendered in (ДД.ММ.ГГГГ).
	DateLayoutDisplay = "02.01.2006"
)

// ParseDay parses a calendar day typed by the user. Only the exact
// ISO layout is accepted; anything else reports false.
func ParseDay(input string) (time.Time, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayoutISO, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDay renders a calendar day for user-facing messages.
func FormatDay(t time.Time) string {
	return t.Format(DateLayoutDisplay)
}

// DayKey renders a calendar day as its canonical ISO string, suitable for
// dialog data bags and map keys.
func DayKey(t time.Time) string {
	return t.Format(DateLayoutISO)
}
