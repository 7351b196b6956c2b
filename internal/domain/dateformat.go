package domain

import (
	"fmt"
	"time"
)

// FormatDateWithSuffix renders a date like "Monday 1st March".
func FormatDateWithSuffix(d time.Time) string {
	return fmt.Sprintf("%s %d%s %s", d.Weekday(), d.Day(), daySuffix(d.Day()), d.Month())
}

// daySuffix returns the English ordinal suffix for a day of the month.
// 11th-13th are irregular; otherwise the suffix follows the last digit.
func daySuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
