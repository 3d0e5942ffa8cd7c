package helpers

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// SenderName builds a display name for the sender of the current update,
// preferring the full name and falling back to the username.
func SenderName(u *tele.User) string {
	if u == nil {
		return ""
	}
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full != "" {
		return full
	}
	return u.Username
}
