package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/repository/memory"
	"github.com/thallyson03/ceapdesk/internal/service"
	"github.com/thallyson03/ceapdesk/internal/sla"
)

type failingHolidays struct {
	*memory.HolidayStore
	failYear int
}

func (f *failingHolidays) FindByNameAndDate(ctx context.Context, name string, date time.Time) (*domain.Holiday, error) {
	if date.Year() == f.failYear {
		return nil, errors.New("connection reset")
	}
	return f.HolidayStore.FindByNameAndDate(ctx, name, date)
}

func TestSeedYears(t *testing.T) {
	got := SeedYears(time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC))
	if len(got) != 2 || got[0] != 2025 || got[1] != 2026 {
		t.Fatalf("SeedYears = %v", got)
	}
}

func TestHolidaySeeder_SeedOnceIsIdempotent(t *testing.T) {
	store := memory.NewHolidayStore()
	svc := service.NewHolidayService(service.HolidayDependencies{
		HolidayRepo: store,
		Engine:      sla.NewEngine(store, time.UTC, 0),
	})
	seeder := NewHolidaySeeder(svc, 0, nil)
	seeder.now = func() time.Time { return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC) }

	if seeder.interval != DefaultSeedInterval {
		t.Fatalf("interval = %s, want default", seeder.interval)
	}
	for i := 0; i < 2; i++ {
		if err := seeder.SeedOnce(context.Background()); err != nil {
			t.Fatalf("seed #%d: %v", i, err)
		}
	}
	// Eight fixed and three movable holidays for each of 2025 and 2026.
	if got := store.Len(); got != 22 {
		t.Fatalf("stored %d holidays, want 22", got)
	}
}

func TestHolidaySeeder_ContinuesAfterFailure(t *testing.T) {
	repo := &failingHolidays{HolidayStore: memory.NewHolidayStore(), failYear: 2025}
	svc := service.NewHolidayService(service.HolidayDependencies{
		HolidayRepo: repo,
		Engine:      sla.NewEngine(repo, time.UTC, 0),
	})
	core, logs := observer.New(zap.InfoLevel)
	seeder := NewHolidaySeeder(svc, time.Hour, zap.New(core))
	seeder.now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }

	if err := seeder.SeedOnce(context.Background()); err == nil {
		t.Fatal("expected the failing year to surface")
	}
	if got := repo.Len(); got != 11 {
		t.Fatalf("stored %d holidays, want 11 for the healthy year", got)
	}
	if logs.FilterMessage("holiday seeding failed").Len() != 1 {
		t.Fatal("expected one failure log")
	}
}

func TestHolidaySeeder_RunStopsOnCancel(t *testing.T) {
	store := memory.NewHolidayStore()
	svc := service.NewHolidayService(service.HolidayDependencies{
		HolidayRepo: store,
		Engine:      sla.NewEngine(store, time.UTC, 0),
	})
	seeder := NewHolidaySeeder(svc, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		seeder.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
