package locale

import "time"

// Default is the process-wide labeler. The last SetLocale call wins for
// every caller.
var Default = New(DefaultLocale)

// SetLocale replaces the process-wide locale tag
func SetLocale(tag string) {
	Default.SetLocale(tag)
}

// MonthNames returns the month names of the process-wide locale
func MonthNames() ([]string, error) {
	return Default.MonthNames()
}

// WeekdayShortNames returns the weekday names of the process-wide locale
func WeekdayShortNames() ([]string, error) {
	return Default.WeekdayShortNames()
}

// FormatSelected formats date with the process-wide locale
func FormatSelected(date time.Time) (string, error) {
	return Default.FormatSelected(date)
}
