package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/repository"
	"github.com/thallyson03/ceapdesk/internal/repository/memory"
)

// countingHolidays counts year loads and can run a hook after the snapshot is
// taken but before it is returned.
type countingHolidays struct {
	*memory.HolidayStore
	loads     int
	afterLoad func()
}

func (c *countingHolidays) ListActiveByYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	c.loads++
	holidays, err := c.HolidayStore.ListActiveByYear(ctx, year)
	if hook := c.afterLoad; hook != nil {
		c.afterLoad = nil
		hook()
	}
	return holidays, err
}

type cacheFixture struct {
	repo  repository.HolidayRepository
	store *countingHolidays
	mr    *miniredis.Miniredis
}

func newCacheFixture(t *testing.T) *cacheFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := &countingHolidays{HolidayStore: memory.NewHolidayStore()}
	return &cacheFixture{
		repo:  repository.NewCachedHolidayRepository(store, client, time.Hour, zap.NewNop()),
		store: store,
		mr:    mr,
	}
}

func civil(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func activeHoliday(name string, date time.Time) *domain.Holiday {
	return &domain.Holiday{Name: name, Date: date, Kind: domain.HolidayKindNational, Active: true}
}

func names(holidays []domain.Holiday) map[string]bool {
	out := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		out[h.Name] = true
	}
	return out
}

func TestCachedHolidays_MissThenHit(t *testing.T) {
	ctx := context.Background()
	f := newCacheFixture(t)
	if err := f.store.Create(ctx, activeHoliday("Natal", civil(2024, time.December, 25))); err != nil {
		t.Fatalf("seed: %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := f.repo.ListActiveByYear(ctx, 2024)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if !names(got)["Natal"] {
			t.Fatalf("call %d: missing Natal in %v", i, got)
		}
	}
	if f.store.loads != 1 {
		t.Errorf("expected one load from the backing store, got %d", f.store.loads)
	}
	if !f.mr.Exists("holidays:active:2024:0") {
		t.Errorf("expected cached year key, have %v", f.mr.Keys())
	}
	if f.mr.TTL("holidays:active:2024:0") != time.Hour {
		t.Errorf("unexpected ttl %v", f.mr.TTL("holidays:active:2024:0"))
	}

	matches, err := f.repo.FindActiveByDate(ctx, civil(2024, time.December, 25))
	if err != nil || len(matches) != 1 {
		t.Fatalf("find by date: %v %v", matches, err)
	}
	if f.store.loads != 1 {
		t.Errorf("date lookup should be served from cache, loads = %d", f.store.loads)
	}
}

func TestCachedHolidays_CreateIsVisible(t *testing.T) {
	ctx := context.Background()
	f := newCacheFixture(t)

	if _, err := f.repo.ListActiveByYear(ctx, 2024); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if err := f.repo.Create(ctx, activeHoliday("Carnaval", civil(2024, time.February, 13))); err != nil {
		t.Fatalf("create: %v", err)
	}

	matches, err := f.repo.FindActiveByDate(ctx, civil(2024, time.February, 13))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected the new holiday after create, got %v", matches)
	}
	if f.store.loads != 2 {
		t.Errorf("expected a reload after create, loads = %d", f.store.loads)
	}
}

func TestCachedHolidays_UpdateAcrossYears(t *testing.T) {
	ctx := context.Background()
	f := newCacheFixture(t)
	moved := activeHoliday("Recesso", civil(2024, time.December, 31))
	if err := f.repo.Create(ctx, moved); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, y := range []int{2024, 2025} {
		if _, err := f.repo.ListActiveByYear(ctx, y); err != nil {
			t.Fatalf("warm %d: %v", y, err)
		}
	}

	moved.Date = civil(2025, time.January, 2)
	if err := f.repo.Update(ctx, moved); err != nil {
		t.Fatalf("update: %v", err)
	}

	old, err := f.repo.ListActiveByYear(ctx, 2024)
	if err != nil {
		t.Fatalf("list 2024: %v", err)
	}
	if names(old)["Recesso"] {
		t.Error("2024 still lists the moved holiday")
	}
	next, err := f.repo.ListActiveByYear(ctx, 2025)
	if err != nil {
		t.Fatalf("list 2025: %v", err)
	}
	if !names(next)["Recesso"] {
		t.Error("2025 is missing the moved holiday")
	}
	for _, key := range []string{"holidays:generation:2024", "holidays:generation:2025"} {
		if got, _ := f.mr.Get(key); got == "" || got == "0" {
			t.Errorf("%s not bumped, got %q", key, got)
		}
	}
}

func TestCachedHolidays_DeleteIsVisible(t *testing.T) {
	ctx := context.Background()
	f := newCacheFixture(t)
	h := activeHoliday("Tiradentes", civil(2024, time.April, 21))
	if err := f.repo.Create(ctx, h); err != nil {
		t.Fatalf("create: %v", err)
	}
	if got, _ := f.repo.ListActiveByYear(ctx, 2024); len(got) != 1 {
		t.Fatalf("warm: %v", got)
	}

	if err := f.repo.Delete(ctx, h.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := f.repo.ListActiveByYear(ctx, 2024)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("deleted holiday still cached: %v", got)
	}
}

func TestCachedHolidays_WriteDuringLoadIsNotLost(t *testing.T) {
	ctx := context.Background()
	f := newCacheFixture(t)

	// The first reader snapshots the empty year, then a create commits and
	// invalidates before the reader fills the cache.
	f.store.afterLoad = func() {
		if err := f.repo.Create(ctx, activeHoliday("Corpus Christi", civil(2024, time.May, 30))); err != nil {
			t.Errorf("create during load: %v", err)
		}
	}
	if _, err := f.repo.ListActiveByYear(ctx, 2024); err != nil {
		t.Fatalf("first read: %v", err)
	}

	got, err := f.repo.FindActiveByDate(ctx, civil(2024, time.May, 30))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("completed create is not visible: %v", got)
	}
}

func TestCachedHolidays_RedisFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newCacheFixture(t)
	if err := f.store.Create(ctx, activeHoliday("Natal", civil(2024, time.December, 25))); err != nil {
		t.Fatalf("seed: %v", err)
	}

	f.mr.SetError("LOADING Redis is loading the dataset in memory")
	got, err := f.repo.ListActiveByYear(ctx, 2024)
	if err != nil {
		t.Fatalf("expected fallback to the backing store, got %v", err)
	}
	if !names(got)["Natal"] {
		t.Errorf("unexpected holidays %v", got)
	}

	f.mr.SetError("")
	if _, err := f.repo.ListActiveByYear(ctx, 2024); err != nil {
		t.Fatalf("list after recovery: %v", err)
	}
	if f.store.loads != 2 {
		t.Errorf("expected a load per uncached read, got %d", f.store.loads)
	}
}

func TestCachedHolidays_CorruptEntryIsReloaded(t *testing.T) {
	ctx := context.Background()
	f := newCacheFixture(t)
	if err := f.store.Create(ctx, activeHoliday("Natal", civil(2024, time.December, 25))); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := f.mr.Set("holidays:active:2024:0", "not json"); err != nil {
		t.Fatalf("plant: %v", err)
	}

	got, err := f.repo.ListActiveByYear(ctx, 2024)
	if err != nil || !names(got)["Natal"] {
		t.Fatalf("expected reload from store, got %v %v", got, err)
	}
	raw, _ := f.mr.Get("holidays:active:2024:0")
	if raw == "not json" {
		t.Error("corrupt entry was not replaced")
	}
}
