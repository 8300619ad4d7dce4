// Package sla implements the business-day calendar used to compute ticket
// deadlines. A business day is any civil date that is neither a Saturday, a
// Sunday nor an active holiday.
//
// Holiday dates are civil dates stored as midnight UTC. Every other time
// value is first converted to the engine's location and truncated to its
// civil date, so the time of day never influences a business-day test.
package sla

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// DefaultMaxWalkDays bounds every day-by-day scan.
const DefaultMaxWalkDays = 5000

// ErrCalendarExhausted signals that a scan ran past the walk limit, which only
// happens when the holiday calendar blocks out an implausibly long span.
var ErrCalendarExhausted = errors.New("sla: walk limit exceeded without reaching a business day")

// HolidayLookup is the read side of the holiday store. Both methods must only
// return active holidays.
type HolidayLookup interface {
	FindActiveByDate(ctx context.Context, date time.Time) ([]domain.Holiday, error)
	ListActiveByYear(ctx context.Context, year int) ([]domain.Holiday, error)
}

// Engine answers business-day questions against a HolidayLookup.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	holidays    HolidayLookup
	loc         *time.Location
	maxWalkDays int
}

// NewEngine builds an engine evaluating dates in loc.
func NewEngine(holidays HolidayLookup, loc *time.Location, maxWalkDays int) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	if maxWalkDays <= 0 {
		maxWalkDays = DefaultMaxWalkDays
	}
	return &Engine{holidays: holidays, loc: loc, maxWalkDays: maxWalkDays}
}

// Location returns the timezone civil dates are taken in.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// CivilDate returns the calendar date of t in loc as midnight UTC, the
// representation holidays are stored with.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date is CivilDate in the engine's location.
func (e *Engine) Date(t time.Time) time.Time {
	return CivilDate(t, e.loc)
}

// Midnight returns the start of date's calendar day in the engine's location.
// Only date's year, month and day are read; its own location is ignored.
func (e *Engine) Midnight(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.loc)
}

// IsWeekend reports whether date falls on a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// IsWeekend is IsWeekend evaluated in the engine's location.
func (e *Engine) IsWeekend(date time.Time) bool {
	return IsWeekend(date.In(e.loc))
}

// IsHoliday reports whether an active holiday falls on date's civil day.
func (e *Engine) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	matches, err := e.holidays.FindActiveByDate(ctx, e.Date(date))
	if err != nil {
		return false, fmt.Errorf("find holiday: %w", err)
	}
	for _, h := range matches {
		if h.Active {
			return true, nil
		}
	}
	return false, nil
}

// IsBusinessDay reports whether date is neither a weekend nor a holiday.
func (e *Engine) IsBusinessDay(ctx context.Context, date time.Time) (bool, error) {
	if e.IsWeekend(date) {
		return false, nil
	}
	holiday, err := e.IsHoliday(ctx, date)
	if err != nil {
		return false, err
	}
	return !holiday, nil
}

type civilDay struct {
	year  int
	month time.Month
	day   int
}

// snapshot is the active holiday set for the years a single computation
// touches. Each year is fetched once.
type snapshot struct {
	engine *Engine
	years  map[int]map[civilDay]struct{}
}

func (e *Engine) snapshot() *snapshot {
	return &snapshot{engine: e, years: make(map[int]map[civilDay]struct{})}
}

func (s *snapshot) year(ctx context.Context, year int) (map[civilDay]struct{}, error) {
	if set, ok := s.years[year]; ok {
		return set, nil
	}
	holidays, err := s.engine.holidays.ListActiveByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list holidays for %d: %w", year, err)
	}
	set := make(map[civilDay]struct{}, len(holidays))
	for _, h := range holidays {
		if !h.Active {
			continue
		}
		y, m, d := h.Date.Date()
		set[civilDay{y, m, d}] = struct{}{}
	}
	s.years[year] = set
	return set, nil
}

func (s *snapshot) isBusinessDay(ctx context.Context, t time.Time) (bool, error) {
	local := t.In(s.engine.loc)
	if IsWeekend(local) {
		return false, nil
	}
	y, m, d := local.Date()
	set, err := s.year(ctx, y)
	if err != nil {
		return false, err
	}
	_, holiday := set[civilDay{y, m, d}]
	return !holiday, nil
}
