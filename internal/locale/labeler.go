// Package locale derives month names, weekday names and the selected-date
// label for the active locale.
package locale

import (
	"fmt"
	"sync"
	"time"

	"github.com/goodsign/monday"
)

// DefaultLocale is the tag a Labeler starts with
const DefaultLocale = "de-DE"

// Labeler holds the current locale tag. Name tables are computed lazily for
// the current tag and dropped whenever the tag changes.
type Labeler struct {
	mu     sync.RWMutex
	tag    string
	tables *nameTables
}

type nameTables struct {
	locale   monday.Locale
	layout   string
	months   [12]string
	weekdays [7]string
}

// New creates a Labeler for the given tag. The tag is not validated until a
// name or format is requested.
func New(tag string) *Labeler {
	return &Labeler{tag: tag}
}

// SetLocale replaces the current locale tag
func (l *Labeler) SetLocale(tag string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tag != l.tag {
		l.tag = tag
		l.tables = nil
	}
}

// Locale returns the current locale tag
func (l *Labeler) Locale() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tag
}

// MonthNames returns the long month names, January first
func (l *Labeler) MonthNames() ([]string, error) {
	t, err := l.current()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(t.months))
	copy(names, t.months[:])
	return names, nil
}

// MonthName returns the long name of a zero-based month
func (l *Labeler) MonthName(month int) (string, error) {
	t, err := l.current()
	if err != nil {
		return "", err
	}
	if month < 0 || month > 11 {
		return "", fmt.Errorf("month %d outside [0, 11]", month)
	}
	return t.months[month], nil
}

// WeekdayShortNames returns the abbreviated weekday names, Sunday first
func (l *Labeler) WeekdayShortNames() ([]string, error) {
	t, err := l.current()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(t.weekdays))
	copy(names, t.weekdays[:])
	return names, nil
}

// FormatSelected renders date as short weekday, 2-digit day, 2-digit month
// and numeric year in the order and punctuation of the current locale
func (l *Labeler) FormatSelected(date time.Time) (string, error) {
	t, err := l.current()
	if err != nil {
		return "", err
	}
	return monday.Format(date, t.layout, t.locale), nil
}

// current returns the name tables of the current tag, building them on
// first use
func (l *Labeler) current() (*nameTables, error) {
	l.mu.RLock()
	tag, tables := l.tag, l.tables
	l.mu.RUnlock()

	if tables != nil {
		return tables, nil
	}

	tables, err := buildTables(tag)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.tag == tag && l.tables == nil {
		l.tables = tables
	}
	l.mu.Unlock()

	return tables, nil
}

func buildTables(tag string) (*nameTables, error) {
	loc, err := Resolve(tag)
	if err != nil {
		return nil, err
	}

	t := &nameTables{locale: loc, layout: layoutFor(loc)}
	for m := range t.months {
		t.months[m] = monday.Format(time.Date(1970, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC), "January", loc)
	}
	// 4 January 1970 was a Sunday
	for d := range t.weekdays {
		t.weekdays[d] = monday.Format(time.Date(1970, time.January, 4+d, 0, 0, 0, 0, time.UTC), "Mon", loc)
	}
	return t, nil
}
