package services

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// Every date handed to the core is a UTC midnight. CalendarDate keeps the
// calendar day the value carries in its own location.
func CalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return CalendarDate(value.In(location))
}

// TodayAt is the current calendar day for a subject living in location.
func TodayAt(clock Clock, location *time.Location) time.Time {
	return DateAtLocation(clock.Now(), location)
}

// ParseISODate is the single entry point for external date strings.
func ParseISODate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrDateRequired
	}
	parsed, err := time.ParseInLocation(isoDateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, newDateError(trimmed)
	}
	return parsed, nil
}

func ParseOptionalISODate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := ParseISODate(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func FormatISODate(day time.Time) string {
	return day.Format(isoDateLayout)
}

func AddDays(day time.Time, days int) time.Time {
	return day.AddDate(0, 0, days)
}

// DaysBetween counts calendar days from a to b; negative when b is earlier.
func DaysBetween(a time.Time, b time.Time) int {
	return int(CalendarDate(b).Sub(CalendarDate(a)) / (24 * time.Hour))
}

func floorDiv(value int, divisor int) int {
	quotient := value / divisor
	if value%divisor != 0 && (value < 0) != (divisor < 0) {
		quotient--
	}
	return quotient
}

func intervalsIntersect(start time.Time, end time.Time, rangeStart time.Time, rangeEnd time.Time) bool {
	return !start.After(rangeEnd) && !end.Before(rangeStart)
}

func datePtr(day time.Time) *time.Time {
	return &day
}
