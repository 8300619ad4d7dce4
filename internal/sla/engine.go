package sla

import (
	"context"
	"fmt"
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// NextBusinessDay returns date when it is a business day, otherwise the first
// business day after it. The time of day is preserved.
func (e *Engine) NextBusinessDay(ctx context.Context, date time.Time) (time.Time, error) {
	return e.nextBusinessDay(ctx, e.snapshot(), date.In(e.loc))
}

func (e *Engine) nextBusinessDay(ctx context.Context, snap *snapshot, date time.Time) (time.Time, error) {
	current := date
	for step := 0; step <= e.maxWalkDays; step++ {
		ok, err := snap.isBusinessDay(ctx, current)
		if err != nil {
			return time.Time{}, err
		}
		if ok {
			return current, nil
		}
		current = current.AddDate(0, 0, 1)
	}
	return time.Time{}, fmt.Errorf("%w: next business day after %s", ErrCalendarExhausted, date.Format(time.DateOnly))
}

// CalculateDueDate returns the businessDays-th business day counting from
// start, where start itself is day one when it is a business day. A start on
// a non-business day is first moved to the next business day. Non-positive
// businessDays return start unchanged.
func (e *Engine) CalculateDueDate(ctx context.Context, start time.Time, businessDays int) (time.Time, error) {
	if businessDays <= 0 {
		return start, nil
	}

	snap := e.snapshot()
	current, err := e.nextBusinessDay(ctx, snap, start.In(e.loc))
	if err != nil {
		return time.Time{}, err
	}

	counted := 0
	for step := 0; step <= e.maxWalkDays; step++ {
		ok, err := snap.isBusinessDay(ctx, current)
		if err != nil {
			return time.Time{}, err
		}
		if ok {
			counted++
			if counted == businessDays {
				return current, nil
			}
		}
		current = current.AddDate(0, 0, 1)
	}
	return time.Time{}, fmt.Errorf("%w: %d business days from %s", ErrCalendarExhausted, businessDays, start.Format(time.DateOnly))
}

// RemainingBusinessDays counts business days in the inclusive civil-date range
// [asOf, due]. It returns -1 when asOf's date is strictly after due's date; a
// ticket due today is never reported as past due.
func (e *Engine) RemainingBusinessDays(ctx context.Context, due, asOf time.Time) (int, error) {
	dueDay := e.Date(due)
	current := e.Date(asOf)
	if current.After(dueDay) {
		return -1, nil
	}

	snap := e.snapshot()
	remaining := 0
	for step := 0; !current.After(dueDay); step++ {
		if step > e.maxWalkDays {
			return 0, fmt.Errorf("%w: counting up to %s", ErrCalendarExhausted, dueDay.Format(time.DateOnly))
		}
		ok, err := snap.isBusinessDay(ctx, e.Midnight(current))
		if err != nil {
			return 0, err
		}
		if ok {
			remaining++
		}
		current = current.AddDate(0, 0, 1)
	}
	return remaining, nil
}

// Classify maps a remaining business-day count to a status bucket.
func Classify(remaining int) domain.SLAStatus {
	switch {
	case remaining < 0:
		return domain.SLAStatusOverdue
	case remaining <= 1:
		return domain.SLAStatusNearDue
	default:
		return domain.SLAStatusOnTrack
	}
}

// Status computes the remaining business days until due as of asOf and the
// resulting bucket.
func (e *Engine) Status(ctx context.Context, due, asOf time.Time) (domain.SLAStatus, int, error) {
	remaining, err := e.RemainingBusinessDays(ctx, due, asOf)
	if err != nil {
		return "", 0, err
	}
	return Classify(remaining), remaining, nil
}
