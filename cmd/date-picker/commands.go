package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/date-picker/internal/calendar"
	"github.com/username/date-picker/internal/locale"
	"github.com/username/date-picker/internal/picker"
	"github.com/username/date-picker/internal/session"
	"github.com/username/date-picker/pkg/dateutil"
	"go.uber.org/zap"
)

func pageCmd() *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print the calendar page of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := dateutil.Today()
			if month == 0 {
				month = int(today.Month())
			}
			if year == 0 {
				year = today.Year()
			}

			selected, err := pageSelection(month, year, today)
			if err != nil {
				return err
			}
			p, err := newPicker(selected)
			if err != nil {
				return err
			}

			logger.Debug("Rendering page", zap.Int("month", month), zap.Int("year", year))
			p.Focus()
			return p.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month 1-12 (default: current month)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default: current year)")

	return cmd
}

func namesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "Print month and weekday names of the locale",
		RunE: func(cmd *cobra.Command, args []string) error {
			months, err := locale.MonthNames()
			if err != nil {
				return err
			}
			weekdays, err := locale.WeekdayShortNames()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Locale:   %s\n", locale.Default.Locale())
			fmt.Fprintf(out, "Months:   %s\n", strings.Join(months, ", "))
			fmt.Fprintf(out, "Weekdays: %s\n", strings.Join(weekdays, ", "))
			return nil
		},
	}
}

func formatCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Print the selected-date label of a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			label, err := locale.FormatSelected(date)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Date as YYYY-MM-DD or DD.MM.YYYY (default: today)")

	return cmd
}

func pickCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a date interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			p, err := newPicker(date)
			if err != nil {
				return err
			}
			p.Focus()

			s := session.New(cmd.Context(), p, os.Stdin, cmd.OutOrStdout(), logger)
			return s.Run()
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Initially selected date (default: today)")

	return cmd
}

func newPicker(selected time.Time) (*picker.Picker, error) {
	allow, err := initializeAvailability(cfg)
	if err != nil {
		return nil, err
	}

	return picker.New(picker.Options{
		Selected: selected,
		Allow:    allow,
		Labeler:  locale.Default,
		Logger:   logger,
	})
}

// pageSelection returns the initial selection for a page of a one-based
// month: today when it falls in that month, the 1st otherwise.
func pageSelection(month, year int, today time.Time) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d outside [1, 12]: %w", month, calendar.ErrInvalidArgument)
	}
	if today.Year() == year && int(today.Month()) == month {
		return today, nil
	}
	return dateutil.Date(year, month-1, 1, today.Location()), nil
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return dateutil.Today(), nil
	}
	return dateutil.ParseDate(value, time.Local)
}
