package calendar

import (
	"fmt"
	"time"

	"github.com/username/date-picker/pkg/dateutil"
)

// BuildPage lays out a zero-based month as a Sunday-first grid. Days fill
// cells startWeekday..startWeekday+n-1 of a six-week buffer; the sixth row is
// dropped when no day reaches it.
func BuildPage(month, year int) (Page, error) {
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("month %d outside [0, 11]: %w", month, ErrInvalidArgument)
	}

	days := dateutil.DaysInMonth(month, year)
	start := dateutil.WeekdayOf(year, month, 1)

	cells := make(Page, LongPageLen)
	for i := 0; i < days; i++ {
		cells[start+i] = Day(i + 1)
	}

	if cells[ShortPageLen].IsBlank() {
		return cells[:ShortPageLen:ShortPageLen], nil
	}
	return cells, nil
}

// Cell is a page cell decorated with its selectability
type Cell struct {
	DayCell
	Allowed bool
}

// Cells builds the page for a month and runs allow on every day. Blank cells
// are always reported as allowed. A nil allow means AllowAll. Days the
// four-year rule adds but the Gregorian calendar lacks (29 February 1900)
// are never allowed.
func Cells(month, year int, allow AllowFunc, loc *time.Location) ([]Cell, error) {
	page, err := BuildPage(month, year)
	if err != nil {
		return nil, err
	}
	if allow == nil {
		allow = AllowAll
	}

	cells := make([]Cell, len(page))
	for i, c := range page {
		cells[i] = Cell{DayCell: c, Allowed: true}
		switch {
		case c.IsBlank():
		case !dateutil.Exists(year, month, c.Day()):
			cells[i].Allowed = false
		default:
			cells[i].Allowed = allow(dateutil.Date(year, month, c.Day(), loc))
		}
	}
	return cells, nil
}
