package picker

import (
	"fmt"
	"io"
	"strings"

	"github.com/username/date-picker/internal/calendar"
)

// Render writes the page on screen as text:
//
//	   Januar 2024
//	 So  Mo  Di  Mi  Do  Fr  Sa
//	      1   2   3   4   5   6
//	...
//
// The selected day is bracketed, disallowed days are parenthesized.
func (p *Picker) Render(w io.Writer) error {
	header, err := p.Header()
	if err != nil {
		return err
	}
	weekdays, err := p.labeler.WeekdayShortNames()
	if err != nil {
		return err
	}

	var b strings.Builder

	width := calendar.DaysPerWeek * 4
	pad := (width - len([]rune(header))) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(header)
	b.WriteByte('\n')

	for _, name := range weekdays {
		fmt.Fprintf(&b, " %-3s", name)
	}
	b.WriteByte('\n')

	for i, c := range p.cells {
		b.WriteString(p.renderCell(c))
		if (i+1)%calendar.DaysPerWeek == 0 {
			b.WriteByte('\n')
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func (p *Picker) renderCell(c calendar.Cell) string {
	switch {
	case c.IsBlank():
		return "    "
	case p.IsSelected(c.Day()):
		return fmt.Sprintf("[%2d]", c.Day())
	case !c.Allowed:
		return fmt.Sprintf("(%2d)", c.Day())
	default:
		return fmt.Sprintf(" %2d ", c.Day())
	}
}
