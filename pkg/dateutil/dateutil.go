package dateutil

import (
	"fmt"
	"time"
)

// monthDays holds the length of each month in a common year, indexed by
// zero-based month (January = 0)
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether February has 29 days in the given year.
// Only the four-year rule is applied: 1900 and 2100 count as leap years.
func IsLeapYear(year int) bool {
	return year%4 == 0
}

// DaysInMonth returns the number of days of a zero-based month.
// It returns 0 if month is outside [0, 11].
func DaysInMonth(month, year int) int {
	if month < 0 || month > 11 {
		return 0
	}
	if month == 1 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

// WeekdayOf returns the day of week (0 = Sunday .. 6 = Saturday) of the given
// date in the proleptic Gregorian calendar. month is zero-based.
func WeekdayOf(year, month, day int) int {
	return int(time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC).Weekday())
}

// Exists reports whether the zero-based month has the given day in the
// proleptic Gregorian calendar. It is false for 29 February of years such as
// 1900, which DaysInMonth still counts.
func Exists(year, month, day int) bool {
	d := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
	return d.Month() == time.Month(month+1) && d.Day() == day
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfMonth returns midnight of the first day of the date's month
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// Date builds a local calendar date from a zero-based month
func Date(year, month, day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, loc)
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q (expected YYYY-MM-DD or DD.MM.YYYY)", dateStr)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
