package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultIsDayOffURL is the production isdayoff.ru endpoint
	DefaultIsDayOffURL = "https://isdayoff.ru"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// IsDayOffCalendar implements Availability using the isdayoff.ru API.
// Non-working days are not selectable.
type IsDayOffCalendar struct {
	httpClient   *http.Client
	logger       *zap.Logger
	baseURL      string
	country      string
	cache        map[string]*cachedMonth
	cacheMu      sync.RWMutex
	cacheTTL     time.Duration
	fallbackURL  string
	fallbackData map[int]*xmlCalendarYear // year → calendar data
}

type cachedMonth struct {
	data      *MonthInfo
	fetchedAt time.Time
}

// xmlCalendarYear represents xmlcalendar.ru JSON structure
type xmlCalendarYear struct {
	Year   int                `json:"year"`
	Months []xmlCalendarMonth `json:"months"`
}

type xmlCalendarMonth struct {
	Month int    `json:"month"`
	Days  string `json:"days"` // "1*,2,3+,4,8,9,..." where * = shortened, + = transferred
}

// NewIsDayOffCalendar creates a new IsDayOffCalendar instance
func NewIsDayOffCalendar(baseURL, country, fallbackURL string, cacheTTL time.Duration, logger *zap.Logger) *IsDayOffCalendar {
	if baseURL == "" {
		baseURL = DefaultIsDayOffURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &IsDayOffCalendar{
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:       logger,
		baseURL:      strings.TrimRight(baseURL, "/"),
		country:      country,
		cache:        make(map[string]*cachedMonth),
		cacheTTL:     cacheTTL,
		fallbackURL:  fallbackURL,
		fallbackData: make(map[int]*xmlCalendarYear),
	}
}

// IsAllowed reports whether the date is a working day
func (c *IsDayOffCalendar) IsAllowed(date time.Time) (bool, error) {
	month, err := c.GetMonthInfo(date.Year(), date.Month())
	if err != nil {
		return false, err
	}

	info, ok := month.day(date.Day())
	if !ok {
		return false, fmt.Errorf("day not found in month data: %s", date.Format("2006-01-02"))
	}
	return info.Type.Selectable(), nil
}

// GetMonthInfo returns day types for the month, from cache when fresh
func (c *IsDayOffCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	key := monthKey(year, month)

	c.cacheMu.RLock()
	if cached, ok := c.cache[key]; ok && time.Since(cached.fetchedAt) < c.cacheTTL {
		c.cacheMu.RUnlock()
		c.logger.Debug("Using cached month info", zap.String("month", key))
		return cached.data, nil
	}
	c.cacheMu.RUnlock()

	monthInfo, err := c.fetchMonthFromAPI(year, month)
	if err != nil {
		c.logger.Warn("Failed to fetch month from API, trying fallback",
			zap.Int("year", year),
			zap.Int("month", int(month)),
			zap.Error(err))

		var fallbackErr error
		monthInfo, fallbackErr = c.fetchMonthFromFallback(year, month)
		if fallbackErr != nil {
			return nil, fmt.Errorf("API and fallback both failed: API=%w, Fallback=%v", err, fallbackErr)
		}
	}

	c.cacheMu.Lock()
	c.cache[key] = &cachedMonth{data: monthInfo, fetchedAt: time.Now()}
	c.cacheMu.Unlock()

	return monthInfo, nil
}

// fetchMonthFromAPI fetches entire month from the bulk endpoint
func (c *IsDayOffCalendar) fetchMonthFromAPI(year int, month time.Month) (*MonthInfo, error) {
	url := fmt.Sprintf("%s/api/getdata?year=%d&month=%02d&pre=1", c.baseURL, year, int(month))
	if c.country != "" {
		url += "&cc=" + c.country
	}

	c.logger.Debug("Fetching month from isdayoff",
		zap.String("url", url),
		zap.Int("year", year),
		zap.Int("month", int(month)))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	monthInfo, err := parseBulkResponse(year, month, strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bulk response: %w", err)
	}

	return monthInfo, nil
}

// parseBulkResponse parses isdayoff.ru bulk response string
// Format: "211100011000001100000110000011" where:
// 0 = working day
// 1 = non-working day (holiday/weekend)
// 2 = shortened day
// 4 = working day (remote)
func parseBulkResponse(year int, month time.Month, data string) (*MonthInfo, error) {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	if len(data) != daysInMonth {
		return nil, fmt.Errorf("bulk data length mismatch: expected %d, got %d", daysInMonth, len(data))
	}

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	for i, code := range data {
		date := time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC)

		var dayType DayType
		switch code {
		case '0', '4':
			dayType = DayTypeWorkday
		case '1':
			dayType = offDayType(date)
		case '2':
			dayType = DayTypeShortened
		default:
			return nil, fmt.Errorf("unknown code '%c' at position %d", code, i)
		}

		monthInfo.Days = append(monthInfo.Days, DayInfo{Date: date, Type: dayType})
	}

	return monthInfo, nil
}

// fetchMonthFromFallback fetches month from xmlcalendar.ru
func (c *IsDayOffCalendar) fetchMonthFromFallback(year int, month time.Month) (*MonthInfo, error) {
	if c.fallbackURL == "" {
		return nil, fmt.Errorf("no fallback URL configured")
	}

	c.cacheMu.RLock()
	yearData, exists := c.fallbackData[year]
	c.cacheMu.RUnlock()

	if !exists {
		var err error
		yearData, err = c.downloadFallbackYear(year)
		if err != nil {
			return nil, fmt.Errorf("failed to download fallback data: %w", err)
		}

		c.cacheMu.Lock()
		c.fallbackData[year] = yearData
		c.cacheMu.Unlock()
	}

	for i := range yearData.Months {
		if yearData.Months[i].Month == int(month) {
			return parseXMLCalendarMonth(year, month, yearData.Months[i].Days, c.logger), nil
		}
	}

	return nil, fmt.Errorf("month %d not found in fallback data for year %d", month, year)
}

// downloadFallbackYear downloads entire year from xmlcalendar.ru
func (c *IsDayOffCalendar) downloadFallbackYear(year int) (*xmlCalendarYear, error) {
	url := strings.ReplaceAll(c.fallbackURL, "{year}", strconv.Itoa(year))

	c.logger.Info("Downloading fallback calendar data",
		zap.String("url", url),
		zap.Int("year", year))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fallback data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback API returned status %d", resp.StatusCode)
	}

	var yearData xmlCalendarYear
	if err := json.NewDecoder(resp.Body).Decode(&yearData); err != nil {
		return nil, fmt.Errorf("failed to parse fallback JSON: %w", err)
	}

	return &yearData, nil
}

// parseXMLCalendarMonth parses xmlcalendar.ru compact format
// Format: "1*,2,3+,4,8,9,15,16,22,23,29,30"
// * = shortened day, + = transferred day, others = weekends/holidays
func parseXMLCalendarMonth(year int, month time.Month, days string, logger *zap.Logger) *MonthInfo {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	shortened := make(map[int]bool)
	nonWorking := make(map[int]bool)
	for _, part := range strings.Split(days, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		dayStr := strings.TrimRight(part, "*+")
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			logger.Warn("Failed to parse day number",
				zap.String("part", part),
				zap.Error(err))
			continue
		}

		if strings.HasSuffix(part, "*") {
			shortened[day] = true
		} else {
			nonWorking[day] = true
		}
	}

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		dayType := DayTypeWorkday
		switch {
		case shortened[day]:
			dayType = DayTypeShortened
		case nonWorking[day]:
			dayType = offDayType(date)
		}

		monthInfo.Days = append(monthInfo.Days, DayInfo{Date: date, Type: dayType})
	}

	return monthInfo
}

func offDayType(date time.Time) DayType {
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		return DayTypeWeekend
	}
	return DayTypeHoliday
}

// ClearCache clears the cache
func (c *IsDayOffCalendar) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache = make(map[string]*cachedMonth)
	c.fallbackData = make(map[int]*xmlCalendarYear)
	c.logger.Info("Calendar cache cleared")
}
