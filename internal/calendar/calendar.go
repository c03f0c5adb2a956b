package calendar

import (
	"errors"
	"time"
)

// ErrInvalidArgument is returned when a month or day is out of range
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// DaysPerWeek is the width of a page row
	DaysPerWeek = 7
	// ShortPageLen is the length of a five-week page
	ShortPageLen = 35
	// LongPageLen is the length of a six-week page
	LongPageLen = 42
)

// DayCell is a single grid position. The zero value is a blank cell.
type DayCell struct {
	day int
}

// Blank is the padding cell placed before day 1 and after the last day
var Blank = DayCell{}

// Day returns a cell holding day number n
func Day(n int) DayCell {
	return DayCell{day: n}
}

// IsBlank reports whether the cell has no day number
func (c DayCell) IsBlank() bool {
	return c.day == 0
}

// Day returns the day number, or 0 for a blank cell
func (c DayCell) Day() int {
	return c.day
}

// Page is the week-major layout of one month, Sunday first.
// Its length is always ShortPageLen or LongPageLen.
type Page []DayCell

// Weeks splits the page into rows of DaysPerWeek cells
func (p Page) Weeks() [][]DayCell {
	weeks := make([][]DayCell, 0, len(p)/DaysPerWeek)
	for i := 0; i+DaysPerWeek <= len(p); i += DaysPerWeek {
		weeks = append(weeks, p[i:i+DaysPerWeek])
	}
	return weeks
}

// Days returns the non-blank day numbers in page order
func (p Page) Days() []int {
	days := make([]int, 0, 31)
	for _, c := range p {
		if !c.IsBlank() {
			days = append(days, c.day)
		}
	}
	return days
}

// AllowFunc decides whether a date may be selected
type AllowFunc func(date time.Time) bool

// AllowAll is the default predicate: every date is selectable
func AllowAll(time.Time) bool {
	return true
}

// Availability is a source of selectable dates
type Availability interface {
	// IsAllowed checks if the given date may be selected
	IsAllowed(date time.Time) (bool, error)
}

// DayType represents the type of day in an availability source
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeShortened
)

// Selectable reports whether days of this type can be picked
func (t DayType) Selectable() bool {
	return t == DayTypeWorkday || t == DayTypeShortened
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date time.Time
	Type DayType
	Note string
}

// MonthInfo holds the day entries known for a month
type MonthInfo struct {
	Year  int
	Month time.Month
	Days  []DayInfo
}

// day looks up the entry for a day of the month
func (m *MonthInfo) day(n int) (*DayInfo, bool) {
	for i := range m.Days {
		if m.Days[i].Date.Day() == n {
			return &m.Days[i], true
		}
	}
	return nil, false
}
