package calendar

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/username/date-picker/pkg/dateutil"
)

func TestBuildPage(t *testing.T) {
	tests := []struct {
		name      string
		month     int
		year      int
		wantLen   int
		wantStart int
		wantDays  int
	}{
		{"January 2024 starts Monday", 0, 2024, 35, 1, 31},
		{"February 2024 is leap", 1, 2024, 35, 4, 29},
		{"February 2023 is common", 1, 2023, 35, 3, 28},
		{"February 2015 fits four rows", 1, 2015, 35, 0, 28},
		{"March 2024 needs six rows", 2, 2024, 42, 5, 31},
		{"June 2024 needs six rows", 5, 2024, 42, 6, 30},
		{"February 1900 has 29 days under the four-year rule", 1, 1900, 35, 4, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := BuildPage(tt.month, tt.year)
			if err != nil {
				t.Fatalf("BuildPage(%v, %v) error = %v", tt.month, tt.year, err)
			}

			if len(page) != tt.wantLen {
				t.Errorf("len(BuildPage(%v, %v)) = %v, want %v", tt.month, tt.year, len(page), tt.wantLen)
			}

			for i := 0; i < tt.wantStart; i++ {
				if !page[i].IsBlank() {
					t.Errorf("page[%d] = %v, want blank", i, page[i].Day())
				}
			}
			if got := page[tt.wantStart]; got != Day(1) {
				t.Errorf("page[%d] = %v, want day 1", tt.wantStart, got.Day())
			}

			if got := len(page.Days()); got != tt.wantDays {
				t.Errorf("day count = %v, want %v", got, tt.wantDays)
			}
		})
	}
}

func TestBuildPageJanuary2024(t *testing.T) {
	page, err := BuildPage(0, 2024)
	if err != nil {
		t.Fatalf("BuildPage(0, 2024) error = %v", err)
	}

	want := make(Page, 35)
	for d := 1; d <= 31; d++ {
		want[d] = Day(d)
	}

	if !reflect.DeepEqual(page, want) {
		t.Errorf("BuildPage(0, 2024) = %v, want %v", page.Days(), want.Days())
	}
}

func TestBuildPageInvalidMonth(t *testing.T) {
	for _, month := range []int{-1, 12, 100} {
		page, err := BuildPage(month, 2024)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("BuildPage(%v, 2024) error = %v, want ErrInvalidArgument", month, err)
		}
		if page != nil {
			t.Errorf("BuildPage(%v, 2024) = %v, want nil page", month, page)
		}
	}
}

// TestBuildPageProperties checks every month of a wide year range
func TestBuildPageProperties(t *testing.T) {
	for year := 1582; year <= 2400; year++ {
		for month := 0; month < 12; month++ {
			page, err := BuildPage(month, year)
			if err != nil {
				t.Fatalf("BuildPage(%v, %v) error = %v", month, year, err)
			}

			if len(page) != ShortPageLen && len(page) != LongPageLen {
				t.Fatalf("BuildPage(%v, %v) length %v", month, year, len(page))
			}

			start := dateutil.WeekdayOf(year, month, 1)
			days := dateutil.DaysInMonth(month, year)

			for i, c := range page {
				inMonth := i >= start && i < start+days
				if inMonth && c.Day() != i-start+1 {
					t.Fatalf("BuildPage(%v, %v)[%d] = %v, want day %v", month, year, i, c.Day(), i-start+1)
				}
				if !inMonth && !c.IsBlank() {
					t.Fatalf("BuildPage(%v, %v)[%d] = %v, want blank", month, year, i, c.Day())
				}
			}

			wantLen := ShortPageLen
			if start+days > ShortPageLen {
				wantLen = LongPageLen
			}
			if len(page) != wantLen {
				t.Fatalf("BuildPage(%v, %v) length = %v, want %v", month, year, len(page), wantLen)
			}
		}
	}
}

func TestBuildPageIsDeterministic(t *testing.T) {
	first, _ := BuildPage(9, 2023)
	second, _ := BuildPage(9, 2023)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("BuildPage(9, 2023) differs between calls: %v vs %v", first, second)
	}

	first[0] = Day(99)
	third, _ := BuildPage(9, 2023)
	if third[0] == Day(99) {
		t.Errorf("BuildPage shares storage between calls")
	}
}

func TestPageWeeks(t *testing.T) {
	page, _ := BuildPage(2, 2024)
	weeks := page.Weeks()

	if len(weeks) != 6 {
		t.Fatalf("len(Weeks()) = %v, want 6", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != DaysPerWeek {
			t.Errorf("len(Weeks()[%d]) = %v, want %v", i, len(w), DaysPerWeek)
		}
	}
	if weeks[5][0] != Day(31) {
		t.Errorf("Weeks()[5][0] = %v, want day 31", weeks[5][0].Day())
	}
}

func TestCells(t *testing.T) {
	noWeekends := func(date time.Time) bool {
		return date.Weekday() != time.Saturday && date.Weekday() != time.Sunday
	}

	cells, err := Cells(0, 2024, noWeekends, time.UTC)
	if err != nil {
		t.Fatalf("Cells() error = %v", err)
	}

	tests := []struct {
		name        string
		index       int
		wantDay     int
		wantAllowed bool
	}{
		{"Leading blank is allowed", 0, 0, true},
		{"Monday 1st is allowed", 1, 1, true},
		{"Saturday 6th is disallowed", 6, 6, false},
		{"Sunday 7th is disallowed", 7, 7, false},
		{"Trailing blank is allowed", 34, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cells[tt.index]
			if c.Day() != tt.wantDay || c.Allowed != tt.wantAllowed {
				t.Errorf("cells[%d] = (%v, %v), want (%v, %v)",
					tt.index, c.Day(), c.Allowed, tt.wantDay, tt.wantAllowed)
			}
		})
	}
}

func TestCellsDefaultsToAllowAll(t *testing.T) {
	cells, err := Cells(1, 2023, nil, nil)
	if err != nil {
		t.Fatalf("Cells() error = %v", err)
	}

	for i, c := range cells {
		if !c.Allowed {
			t.Errorf("cells[%d] disallowed with nil predicate", i)
		}
	}
}

func TestCellsInvalidMonth(t *testing.T) {
	if _, err := Cells(12, 2023, nil, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Cells(12, 2023) error = %v, want ErrInvalidArgument", err)
	}
}

func TestCellsRejectsMissingLeapDay(t *testing.T) {
	var asked []time.Time
	allow := func(date time.Time) bool {
		asked = append(asked, date)
		return true
	}

	cells, err := Cells(1, 1900, allow, time.UTC)
	if err != nil {
		t.Fatalf("Cells() error = %v", err)
	}

	for _, c := range cells {
		if c.IsBlank() {
			continue
		}
		want := c.Day() != 29
		if c.Allowed != want {
			t.Errorf("cell %d Allowed = %v, want %v", c.Day(), c.Allowed, want)
		}
	}
	if len(asked) != 28 {
		t.Errorf("allow called %d times, want 28", len(asked))
	}
	for _, d := range asked {
		if d.Month() != time.February {
			t.Errorf("allow called with %v, outside February 1900", d)
		}
	}
}
