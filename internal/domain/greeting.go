package domain

import "strings"

func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "בוקר טוב,"
	case hour < 18:
		return "צהריים טובים,"
	default:
		return "ערב טוב,"
	}
}

func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
