package projection

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bodyshop-work-order/models"
)

// ComputeDuration returns the inclusive day count of the range as "N DAYS".
// Both ends are MM/DD in the calendar year of now. ok is false when either end
// is missing or malformed, or when the span is not positive.
func ComputeDuration(r models.DateRange, now time.Time) (label string, ok bool) {
	year := now.Year()
	start, ok := parseMonthDay(r.Start, year)
	if !ok {
		return "", false
	}
	end, ok := parseMonthDay(r.End, year)
	if !ok {
		return "", false
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days <= 0 {
		return "", false
	}
	return fmt.Sprintf("%d DAYS", days), true
}

// parseMonthDay parses "MM/DD" in the given year, rejecting dates that
// time.Date would normalize (02/30, 13/01, ...)
func parseMonthDay(value string, year int) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
