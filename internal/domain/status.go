package domain

import "strings"

type BadgeClass string

const (
	BadgeOpen    BadgeClass = "open"
	BadgeClosed  BadgeClass = "closed"
	BadgeDefault BadgeClass = "default"
)

func BadgeFor(status string) BadgeClass {
	s := strings.ToLower(status)
	if strings.Contains(s, "פתוח") {
		return BadgeOpen
	}
	if strings.Contains(s, closedStatus) {
		return BadgeClosed
	}
	return BadgeDefault
}
