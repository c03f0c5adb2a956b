package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileCalendar implements Availability using a local text file.
// Dates missing from the file are allowed.
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	data     map[string]*MonthInfo // key: "YYYY-MM"
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string]*MonthInfo),
	}
}

// Load loads calendar data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	data := make(map[string]*MonthInfo)
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD type [note]
		// Example: 2025-12-25 holiday Christmas
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			fc.logger.Warn("Invalid line format",
				zap.Int("line", lineNo),
				zap.String("text", line))
			continue
		}

		date, err := time.ParseInLocation("2006-01-02", parts[0], time.Local)
		if err != nil {
			fc.logger.Warn("Failed to parse date",
				zap.Int("line", lineNo),
				zap.String("date", parts[0]),
				zap.Error(err))
			continue
		}

		dayType, ok := parseDayType(parts[1])
		if !ok {
			fc.logger.Warn("Unknown day type",
				zap.Int("line", lineNo),
				zap.String("type", parts[1]))
			continue
		}

		note := ""
		if len(parts) == 3 {
			note = strings.TrimSpace(parts[2])
		}

		key := monthKey(date.Year(), date.Month())
		month, ok := data[key]
		if !ok {
			month = &MonthInfo{Year: date.Year(), Month: date.Month()}
			data[key] = month
		}
		month.Days = append(month.Days, DayInfo{Date: date, Type: dayType, Note: note})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}

	fc.data = data
	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("months", len(fc.data)))

	return nil
}

// IsAllowed reports false only for dates listed as weekend or holiday
func (fc *FileCalendar) IsAllowed(date time.Time) (bool, error) {
	info, ok := fc.GetDayInfo(date)
	if !ok {
		return true, nil
	}
	return info.Type.Selectable(), nil
}

// GetDayInfo returns the file entry for a day, if any
func (fc *FileCalendar) GetDayInfo(date time.Time) (*DayInfo, bool) {
	month, ok := fc.data[monthKey(date.Year(), date.Month())]
	if !ok {
		return nil, false
	}
	return month.day(date.Day())
}

func parseDayType(s string) (DayType, bool) {
	switch s {
	case "workday":
		return DayTypeWorkday, true
	case "weekend":
		return DayTypeWeekend, true
	case "holiday":
		return DayTypeHoliday, true
	case "shortened":
		return DayTypeShortened, true
	}
	return 0, false
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d", year, month)
}
