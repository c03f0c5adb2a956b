package calendar

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements Availability with fallback strategy
// Primary: IsDayOffCalendar (API)
// Fallback: FileCalendar (local file)
type CompositeCalendar struct {
	primary  Availability
	fallback Availability
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Availability, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// IsAllowed asks the primary source and falls back on error
func (cc *CompositeCalendar) IsAllowed(date time.Time) (bool, error) {
	allowed, err := cc.primary.IsAllowed(date)
	if err == nil {
		return allowed, nil
	}

	cc.logger.Warn("Primary calendar failed, falling back",
		zap.Time("date", date),
		zap.Error(err))

	return cc.fallback.IsAllowed(date)
}

// LoadFallback loads the fallback calendar (if FileCalendar)
func (cc *CompositeCalendar) LoadFallback() error {
	if fc, ok := cc.fallback.(*FileCalendar); ok {
		if err := fc.Load(); err != nil {
			return fmt.Errorf("failed to load fallback calendar: %w", err)
		}
		cc.logger.Info("Fallback calendar loaded successfully")
	}
	return nil
}

// Predicate adapts an Availability to an AllowFunc. Source errors are logged
// and the date is treated as allowed.
func Predicate(source Availability, logger *zap.Logger) AllowFunc {
	if source == nil {
		return AllowAll
	}
	return func(date time.Time) bool {
		allowed, err := source.IsAllowed(date)
		if err != nil {
			logger.Warn("Availability lookup failed, allowing date",
				zap.String("date", date.Format("2006-01-02")),
				zap.Error(err))
			return true
		}
		return allowed
	}
}
