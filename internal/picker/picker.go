// Package picker models the date-picker widget without a display: the month
// on screen, the selected date, popup visibility and navigation.
package picker

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/date-picker/internal/calendar"
	"github.com/username/date-picker/internal/locale"
	"github.com/username/date-picker/pkg/dateutil"
	"go.uber.org/zap"
)

var (
	// ErrBlankCell is returned when selecting a day that is not on the page
	ErrBlankCell = errors.New("no such day on page")
	// ErrNotAllowed is returned when the allow predicate rejects a day
	ErrNotAllowed = errors.New("day not allowed")
	// ErrNoSuchDate is returned for a page day the Gregorian calendar lacks
	ErrNoSuchDate = errors.New("date does not exist")
)

// Options configures a Picker. Zero values select the defaults.
type Options struct {
	Selected time.Time          // initial selection, default today
	Allow    calendar.AllowFunc // default calendar.AllowAll
	Labeler  *locale.Labeler    // default locale.Default
	Location *time.Location     // default time.Local
	Logger   *zap.Logger        // default no-op
}

// Picker holds the widget state
type Picker struct {
	month    int
	year     int
	selected time.Time
	visible  bool

	allow   calendar.AllowFunc
	labeler *locale.Labeler
	loc     *time.Location
	logger  *zap.Logger
	cells   []calendar.Cell
}

// New creates a Picker showing the month of the initial selection
func New(opts Options) (*Picker, error) {
	p := &Picker{
		allow:   opts.Allow,
		labeler: opts.Labeler,
		loc:     opts.Location,
		logger:  opts.Logger,
	}
	if p.allow == nil {
		p.allow = calendar.AllowAll
	}
	if p.labeler == nil {
		p.labeler = locale.Default
	}
	if p.loc == nil {
		p.loc = time.Local
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	selected := opts.Selected
	if selected.IsZero() {
		selected = time.Now()
	}
	p.selected = dateutil.StartOfDay(selected.In(p.loc))

	if err := p.GoTo(int(p.selected.Month())-1, p.selected.Year()); err != nil {
		return nil, err
	}
	return p, nil
}

// GoTo shows the given zero-based month
func (p *Picker) GoTo(month, year int) error {
	cells, err := calendar.Cells(month, year, p.allow, p.loc)
	if err != nil {
		return err
	}

	p.month, p.year, p.cells = month, year, cells
	p.logger.Debug("Page changed",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("cells", len(cells)))
	return nil
}

// Next shows the following month, rolling December over to January
func (p *Picker) Next() error {
	if p.month == 11 {
		return p.GoTo(0, p.year+1)
	}
	return p.GoTo(p.month+1, p.year)
}

// Prev shows the previous month, rolling January back to December
func (p *Picker) Prev() error {
	if p.month == 0 {
		return p.GoTo(11, p.year-1)
	}
	return p.GoTo(p.month-1, p.year)
}

// ShowSelected returns the view to the month of the selected date
func (p *Picker) ShowSelected() error {
	return p.GoTo(int(p.selected.Month())-1, p.selected.Year())
}

// Select picks a day of the month on screen and closes the popup
func (p *Picker) Select(day int) error {
	cell, ok := p.cell(day)
	if !ok {
		return fmt.Errorf("day %d: %w", day, ErrBlankCell)
	}
	if !dateutil.Exists(p.year, p.month, day) {
		return fmt.Errorf("%04d-%02d-%02d: %w", p.year, p.month+1, day, ErrNoSuchDate)
	}
	if !cell.Allowed {
		return fmt.Errorf("%04d-%02d-%02d: %w", p.year, p.month+1, day, ErrNotAllowed)
	}

	p.selected = dateutil.Date(p.year, p.month, day, p.loc)
	p.visible = false
	p.logger.Info("Date selected", zap.Time("date", p.selected))
	return nil
}

// Focus opens the popup
func (p *Picker) Focus() {
	p.visible = true
}

// Dismiss closes the popup, as when a click lands outside of it
func (p *Picker) Dismiss() {
	p.visible = false
}

// Visible reports whether the popup is open
func (p *Picker) Visible() bool {
	return p.visible
}

// Month returns the zero-based month on screen
func (p *Picker) Month() int { return p.month }

// Year returns the year on screen
func (p *Picker) Year() int { return p.year }

// Selected returns the selected date
func (p *Picker) Selected() time.Time { return p.selected }

// Labeler returns the labeler used for display strings
func (p *Picker) Labeler() *locale.Labeler { return p.labeler }

// Cells returns the decorated page of the month on screen
func (p *Picker) Cells() []calendar.Cell {
	cells := make([]calendar.Cell, len(p.cells))
	copy(cells, p.cells)
	return cells
}

// IsSelected reports whether day of the month on screen is the selection
func (p *Picker) IsSelected(day int) bool {
	if day <= 0 || !dateutil.Exists(p.year, p.month, day) {
		return false
	}
	return dateutil.IsSameDay(p.selected, dateutil.Date(p.year, p.month, day, p.loc))
}

// Header returns the month name and year of the page on screen
func (p *Picker) Header() (string, error) {
	name, err := p.labeler.MonthName(p.month)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d", name, p.year), nil
}

// InputValue returns the label of the selected date
func (p *Picker) InputValue() (string, error) {
	return p.labeler.FormatSelected(p.selected)
}

func (p *Picker) cell(day int) (calendar.Cell, bool) {
	for _, c := range p.cells {
		if !c.IsBlank() && c.Day() == day {
			return c, true
		}
	}
	return calendar.Cell{}, false
}
