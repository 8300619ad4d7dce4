package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/service"
)

// DefaultSeedInterval is how often the seeder re-checks the calendar.
const DefaultSeedInterval = 24 * time.Hour

// HolidaySeeder keeps the default holidays of the current and next year in
// the calendar.
type HolidaySeeder struct {
	holidays *service.HolidayService
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewHolidaySeeder constructs the seeder. A non-positive interval uses
// DefaultSeedInterval.
func NewHolidaySeeder(holidays *service.HolidayService, interval time.Duration, logger *zap.Logger) *HolidaySeeder {
	if interval <= 0 {
		interval = DefaultSeedInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidaySeeder{holidays: holidays, interval: interval, now: time.Now, logger: logger}
}

// SeedYears returns the years the seeder maintains as of now.
func SeedYears(now time.Time) []int {
	return []int{now.Year(), now.Year() + 1}
}

// SeedOnce seeds every maintained year. It keeps going after a failing year
// and returns the joined errors.
func (s *HolidaySeeder) SeedOnce(ctx context.Context) error {
	var errs []error
	for _, year := range SeedYears(s.now()) {
		result, err := s.holidays.AddDefaultHolidays(ctx, year)
		if err != nil {
			s.logger.Error("holiday seeding failed", zap.Int("year", year), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if n := len(result.All()); n > 0 {
			s.logger.Info("holiday seeder inserted defaults", zap.Int("year", year), zap.Int("inserted", n))
		}
	}
	return errors.Join(errs...)
}

// Run seeds immediately and then on every tick until ctx is cancelled.
func (s *HolidaySeeder) Run(ctx context.Context) {
	_ = s.SeedOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("holiday seeder stopped")
			return
		case <-ticker.C:
			_ = s.SeedOnce(ctx)
		}
	}
}
