package sla

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// fakeHolidays is an in-memory HolidayLookup.
type fakeHolidays struct {
	holidays     []domain.Holiday
	yearCalls    int
	dateCalls    int
	ListYearFunc func(ctx context.Context, year int) ([]domain.Holiday, error)
	FindDateFunc func(ctx context.Context, date time.Time) ([]domain.Holiday, error)
}

func (f *fakeHolidays) add(name string, date time.Time, active bool) *domain.Holiday {
	f.holidays = append(f.holidays, domain.Holiday{Name: name, Date: date, Kind: domain.HolidayKindNational, Active: active})
	return &f.holidays[len(f.holidays)-1]
}

func (f *fakeHolidays) FindActiveByDate(ctx context.Context, date time.Time) ([]domain.Holiday, error) {
	f.dateCalls++
	if f.FindDateFunc != nil {
		return f.FindDateFunc(ctx, date)
	}
	var out []domain.Holiday
	for _, h := range f.holidays {
		if h.Active && h.Date.Equal(date) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidays) ListActiveByYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	f.yearCalls++
	if f.ListYearFunc != nil {
		return f.ListYearFunc(ctx, year)
	}
	var out []domain.Holiday
	for _, h := range f.holidays {
		if h.Active && h.Date.Year() == year {
			out = append(out, h)
		}
	}
	return out, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestEngine(h *fakeHolidays) *Engine {
	return NewEngine(h, time.UTC, 0)
}

func TestIsWeekend_FullWeek(t *testing.T) {
	// 2024-01-01 is a Monday.
	weekends := 0
	for i := 0; i < 7; i++ {
		d := date(2024, time.January, 1).AddDate(0, 0, i)
		want := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
		if got := IsWeekend(d); got != want {
			t.Errorf("IsWeekend(%s) = %v, want %v", d.Format(time.DateOnly), got, want)
		}
		if IsWeekend(d) {
			weekends++
		}
	}
	if weekends != 2 {
		t.Errorf("expected exactly 2 weekend days in a week, got %d", weekends)
	}
}

func TestEngine_IsHoliday(t *testing.T) {
	ctx := context.Background()
	h := &fakeHolidays{}
	h.add("Natal", date(2024, time.December, 25), true)
	h.add("Natal (empresa)", date(2024, time.December, 25), true)
	h.add("Desativado", date(2024, time.December, 26), false)
	e := newTestEngine(h)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"duplicate active holidays", date(2024, time.December, 25), true},
		{"time of day ignored", time.Date(2024, time.December, 25, 17, 45, 0, 0, time.UTC), true},
		{"inactive holiday", date(2024, time.December, 26), false},
		{"plain day", date(2024, time.December, 27), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.IsHoliday(ctx, tt.date)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsHoliday = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_IsBusinessDay(t *testing.T) {
	ctx := context.Background()
	h := &fakeHolidays{}
	h.add("Tiradentes", date(2024, time.April, 21), true)   // Sunday
	h.add("Dia do Trabalho", date(2024, time.May, 1), true) // Wednesday
	e := newTestEngine(h)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"weekday", date(2024, time.April, 30), true},
		{"weekday holiday", date(2024, time.May, 1), false},
		{"weekend holiday", date(2024, time.April, 21), false},
		{"saturday", date(2024, time.April, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.IsBusinessDay(ctx, tt.date)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsBusinessDay = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_HolidayActiveToggle(t *testing.T) {
	ctx := context.Background()
	h := &fakeHolidays{}
	holiday := h.add("Ponto facultativo", date(2024, time.March, 13), true) // Wednesday
	e := newTestEngine(h)

	check := func(want bool) {
		t.Helper()
		got, err := e.IsBusinessDay(ctx, date(2024, time.March, 13))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("IsBusinessDay = %v, want %v", got, want)
		}
	}

	check(false)
	holiday.Active = false
	check(true)
	holiday.Active = true
	check(false)
}

func TestEngine_NextBusinessDay(t *testing.T) {
	ctx := context.Background()
	h := &fakeHolidays{}
	h.add("Carnaval", date(2024, time.February, 12), true) // Monday
	h.add("Carnaval", date(2024, time.February, 13), true) // Tuesday
	e := newTestEngine(h)

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"already business day", date(2024, time.February, 8), date(2024, time.February, 8)},
		{"saturday to monday", date(2024, time.January, 6), date(2024, time.January, 8)},
		{"weekend then carnival", date(2024, time.February, 10), date(2024, time.February, 14)},
		{"time of day preserved", time.Date(2024, time.January, 7, 14, 30, 0, 0, time.UTC), time.Date(2024, time.January, 8, 14, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.NextBusinessDay(ctx, tt.from)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextBusinessDay = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEngine_CalculateDueDate_NonPositive(t *testing.T) {
	ctx := context.Background()
	h := &fakeHolidays{}
	e := newTestEngine(h)
	start := time.Date(2024, time.January, 6, 10, 0, 0, 0, time.UTC) // Saturday

	for _, days := range []int{0, -5} {
		got, err := e.CalculateDueDate(ctx, start, days)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != start {
			t.Errorf("CalculateDueDate(%d) = %s, want start %s", days, got, start)
		}
	}
	if h.yearCalls != 0 || h.dateCalls != 0 {
		t.Error("expected no holiday lookups for a non-positive SLA")
	}
}

func TestEngine_CalculateDueDate(t *testing.T) {
	ctx := context.Background()
	h := &fakeHolidays{}
	h.add("Confraternização Universal", date(2025, time.January, 1), true)
	h.add("Tiradentes", date(2024, time.April, 21), true)
	h.add("Dia do Trabalho", date(2024, time.May, 1), true)
	h.add("Inativo", date(2024, time.January, 10), false)
	e := newTestEngine(h)

	tests := []struct {
		name  string
		start time.Time
		days  int
		want  time.Time
	}{
		{"business day counts as day one", date(2024, time.January, 3), 1, date(2024, time.January, 3)},
		{"saturday start moves to monday", date(2024, time.January, 6), 1, date(2024, time.January, 8)},
		{"sunday start moves to monday", date(2024, time.January, 7), 2, date(2024, time.January, 9)},
		{"friday plus three is tuesday", date(2024, time.January, 5), 3, date(2024, time.January, 9)},
		{"inactive holiday ignored", date(2024, time.January, 8), 3, date(2024, time.January, 10)},
		{"skips weekday holiday", date(2024, time.April, 29), 3, date(2024, time.May, 2)},
		{"crosses new year", date(2024, time.December, 30), 3, date(2025, time.January, 2)},
		{"two full weeks", date(2024, time.January, 8), 10, date(2024, time.January, 19)},
		{"keeps time of day", time.Date(2024, time.January, 5, 16, 20, 0, 0, time.UTC), 3, time.Date(2024, time.January, 9, 16, 20, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.CalculateDueDate(ctx, tt.start, tt.days)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("CalculateDueDate(%s, %d) = %s, want %s",
					tt.start.Format(time.DateOnly), tt.days, got.Format(time.DateOnly), tt.want.Format(time.DateOnly))
			}
		})
	}
}

func TestEngine_CalculateDueDate_Monotonic(t *testing.T) {
	ctx := context.Background()
	h := &fakeHolidays{}
	for _, fh := range FixedHolidays(2024) {
		h.holidays = append(h.holidays, fh)
	}
	for _, mh := range MovableHolidays(2024) {
		h.holidays = append(h.holidays, mh)
	}
	e := newTestEngine(h)

	starts := []time.Time{date(2024, time.February, 9), date(2024, time.April, 20), date(2024, time.December, 20)}
	for _, start := range starts {
		prev := time.Time{}
		for n := 0; n <= 40; n++ {
			got, err := e.CalculateDueDate(ctx, start, n)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Before(prev) {
				t.Fatalf("due date decreased from %s to %s at n=%d (start %s)",
					prev.Format(time.DateOnly), got.Format(time.DateOnly), n, start.Format(time.DateOnly))
			}
			prev = got
		}
	}
}

func TestEngine_CalculateDueDate_LoadsEachYearOnce(t *testing.T) {
	ctx := context.Background()
	h := &fakeHolidays{}
	e := newTestEngine(h)

	if _, err := e.CalculateDueDate(ctx, date(2024, time.March, 1), 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.yearCalls != 1 {
		t.Errorf("expected 1 holiday load for a walk inside one year, got %d", h.yearCalls)
	}
	if h.dateCalls != 0 {
		t.Errorf("expected no per-day lookups, got %d", h.dateCalls)
	}

	h.yearCalls = 0
	if _, err := e.CalculateDueDate(ctx, date(2024, time.December, 20), 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.yearCalls != 2 {
		t.Errorf("expected 2 holiday loads across a year boundary, got %d", h.yearCalls)
	}
}

func TestEngine_CalendarExhausted(t *testing.T) {
	ctx := context.Background()
	everyDay := func(_ context.Context, year int) ([]domain.Holiday, error) {
		var out []domain.Holiday
		for d := date(year, time.January, 1); d.Year() == year; d = d.AddDate(0, 0, 1) {
			out = append(out, domain.Holiday{Name: "bloqueio", Date: d, Active: true})
		}
		return out, nil
	}
	h := &fakeHolidays{ListYearFunc: everyDay}
	e := NewEngine(h, time.UTC, 100)

	if _, err := e.NextBusinessDay(ctx, date(2024, time.January, 1)); !errors.Is(err, ErrCalendarExhausted) {
		t.Errorf("NextBusinessDay: expected ErrCalendarExhausted, got %v", err)
	}
	if _, err := e.CalculateDueDate(ctx, date(2024, time.January, 1), 3); !errors.Is(err, ErrCalendarExhausted) {
		t.Errorf("CalculateDueDate: expected ErrCalendarExhausted, got %v", err)
	}
}

func TestEngine_StorageFailurePropagates(t *testing.T) {
	ctx := context.Background()
	errStorage := errors.New("connection reset")
	h := &fakeHolidays{
		ListYearFunc: func(context.Context, int) ([]domain.Holiday, error) { return nil, errStorage },
		FindDateFunc: func(context.Context, time.Time) ([]domain.Holiday, error) { return nil, errStorage },
	}
	e := newTestEngine(h)

	if _, err := e.CalculateDueDate(ctx, date(2024, time.January, 3), 2); !errors.Is(err, errStorage) {
		t.Errorf("CalculateDueDate: expected storage error, got %v", err)
	}
	if _, err := e.RemainingBusinessDays(ctx, date(2024, time.January, 10), date(2024, time.January, 3)); !errors.Is(err, errStorage) {
		t.Errorf("RemainingBusinessDays: expected storage error, got %v", err)
	}
	if _, err := e.IsBusinessDay(ctx, date(2024, time.January, 3)); !errors.Is(err, errStorage) {
		t.Errorf("IsBusinessDay: expected storage error, got %v", err)
	}
}

func TestEngine_RemainingBusinessDays(t *testing.T) {
	ctx := context.Background()
	h := &fakeHolidays{}
	h.add("Dia do Trabalho", date(2024, time.May, 1), true)
	e := newTestEngine(h)

	tests := []struct {
		name string
		due  time.Time
		asOf time.Time
		want int
	}{
		{"past due", date(2024, time.January, 10), date(2024, time.January, 11), -1},
		{"long past due", date(2024, time.January, 10), date(2024, time.March, 1), -1},
		{"due today business day", date(2024, time.January, 10), date(2024, time.January, 10), 1},
		{"due today later hour", time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC), time.Date(2024, time.January, 10, 19, 0, 0, 0, time.UTC), 1},
		{"due today weekend", date(2024, time.January, 13), date(2024, time.January, 13), 0},
		{"friday to tuesday", date(2024, time.January, 9), date(2024, time.January, 5), 3},
		{"over a holiday", date(2024, time.May, 3), date(2024, time.April, 29), 4},
		{"weekend to monday", date(2024, time.January, 8), date(2024, time.January, 6), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.RemainingBusinessDays(ctx, tt.due, tt.asOf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RemainingBusinessDays = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		remaining int
		want      domain.SLAStatus
	}{
		{-5, domain.SLAStatusOverdue},
		{-1, domain.SLAStatusOverdue},
		{0, domain.SLAStatusNearDue},
		{1, domain.SLAStatusNearDue},
		{2, domain.SLAStatusOnTrack},
		{30, domain.SLAStatusOnTrack},
	}
	for _, tt := range tests {
		if got := Classify(tt.remaining); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.remaining, got, tt.want)
		}
	}
}

func TestEngine_Status(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(&fakeHolidays{})

	status, remaining, err := e.Status(ctx, date(2024, time.January, 9), date(2024, time.January, 8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining != 2 || status != domain.SLAStatusOnTrack {
		t.Errorf("got (%s, %d), want (on_track, 2)", status, remaining)
	}

	status, remaining, err = e.Status(ctx, date(2024, time.January, 9), date(2024, time.January, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if remaining != -1 || status != domain.SLAStatusOverdue {
		t.Errorf("got (%s, %d), want (overdue, -1)", status, remaining)
	}
}

func TestEngine_Location(t *testing.T) {
	ctx := context.Background()
	brt := time.FixedZone("BRT", -3*60*60)
	h := &fakeHolidays{}
	h.add("Natal", date(2024, time.December, 25), true)
	e := NewEngine(h, brt, 0)

	// 2024-01-06T01:00Z is Friday 22:00 in BRT.
	ok, err := e.IsBusinessDay(ctx, time.Date(2024, time.January, 6, 1, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected Friday evening in BRT to be a business day")
	}

	// 2024-12-26T02:00Z is still Christmas day in BRT.
	holiday, err := e.IsHoliday(ctx, time.Date(2024, time.December, 26, 2, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !holiday {
		t.Error("expected late Christmas evening in BRT to be a holiday")
	}
}

func TestEngine_Midnight(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	e := NewEngine(&fakeHolidays{}, brt, 0)

	got := e.Midnight(date(2024, time.January, 6))
	want := time.Date(2024, time.January, 6, 0, 0, 0, 0, brt)
	if !got.Equal(want) {
		t.Fatalf("Midnight = %s, want %s", got, want)
	}
	if !e.IsWeekend(got) {
		t.Error("expected 2024-01-06 to stay a Saturday once placed in BRT")
	}
	if civil := e.Date(got); !civil.Equal(date(2024, time.January, 6)) {
		t.Errorf("Date(Midnight) = %s, want 2024-01-06", civil.Format(time.DateOnly))
	}
}
