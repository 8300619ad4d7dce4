package service

import (
	"context"
	"errors"
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/events"
	"github.com/thallyson03/ceapdesk/internal/observability"
	"github.com/thallyson03/ceapdesk/internal/repository"
	"github.com/thallyson03/ceapdesk/internal/repository/memory"
	"github.com/thallyson03/ceapdesk/internal/sla"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// MockHolidayRepository wraps the in-memory store with per-method overrides.
type MockHolidayRepository struct {
	*memory.HolidayStore
	CreateFunc            func(ctx context.Context, h *domain.Holiday) error
	FindByNameAndDateFunc func(ctx context.Context, name string, date time.Time) (*domain.Holiday, error)
	ListActiveByYearFunc  func(ctx context.Context, year int) ([]domain.Holiday, error)
}

func NewMockHolidayRepository() *MockHolidayRepository {
	return &MockHolidayRepository{HolidayStore: memory.NewHolidayStore()}
}

func (m *MockHolidayRepository) Create(ctx context.Context, h *domain.Holiday) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, h)
	}
	return m.HolidayStore.Create(ctx, h)
}

func (m *MockHolidayRepository) FindByNameAndDate(ctx context.Context, name string, date time.Time) (*domain.Holiday, error) {
	if m.FindByNameAndDateFunc != nil {
		return m.FindByNameAndDateFunc(ctx, name, date)
	}
	return m.HolidayStore.FindByNameAndDate(ctx, name, date)
}

func (m *MockHolidayRepository) ListActiveByYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	if m.ListActiveByYearFunc != nil {
		return m.ListActiveByYearFunc(ctx, year)
	}
	return m.HolidayStore.ListActiveByYear(ctx, year)
}

// MockTicketRepository wraps the in-memory store with per-method overrides.
type MockTicketRepository struct {
	*memory.TicketStore
	UpdateSLAStatusFunc func(ctx context.Context, id string, status domain.SLAStatus) error
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{TicketStore: memory.NewTicketStore()}
}

func (m *MockTicketRepository) UpdateSLAStatus(ctx context.Context, id string, status domain.SLAStatus) error {
	if m.UpdateSLAStatusFunc != nil {
		return m.UpdateSLAStatusFunc(ctx, id, status)
	}
	return m.TicketStore.UpdateSLAStatus(ctx, id, status)
}

// MockSLAPolicyRepository wraps the in-memory store with per-method overrides.
type MockSLAPolicyRepository struct {
	*memory.SLAPolicyStore
	GetActiveBySectorFunc func(ctx context.Context, sectorID string) (*domain.SLAPolicy, error)
}

func NewMockSLAPolicyRepository() *MockSLAPolicyRepository {
	return &MockSLAPolicyRepository{SLAPolicyStore: memory.NewSLAPolicyStore()}
}

func (m *MockSLAPolicyRepository) GetActiveBySector(ctx context.Context, sectorID string) (*domain.SLAPolicy, error) {
	if m.GetActiveBySectorFunc != nil {
		return m.GetActiveBySectorFunc(ctx, sectorID)
	}
	return m.SLAPolicyStore.GetActiveBySector(ctx, sectorID)
}

var (
	_ repository.HolidayRepository   = (*MockHolidayRepository)(nil)
	_ repository.TicketRepository    = (*MockTicketRepository)(nil)
	_ repository.SLAPolicyRepository = (*MockSLAPolicyRepository)(nil)
)

// fakeClock is a settable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// testEnv wires every service against in-memory stores.
type testEnv struct {
	holidays   *MockHolidayRepository
	tickets    *MockTicketRepository
	policies   *MockSLAPolicyRepository
	sectors    *memory.SectorStore
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	clock      *fakeClock

	holidaySvc *HolidayService
	slaSvc     *SLAService
	policySvc  *SLAPolicyService
	sectorSvc  *SectorService
	ticketSvc  *TicketService
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		holidays:   NewMockHolidayRepository(),
		tickets:    NewMockTicketRepository(),
		policies:   NewMockSLAPolicyRepository(),
		sectors:    memory.NewSectorStore(),
		dispatcher: events.NewInMemoryDispatcher(),
		metrics:    observability.NewMetrics(),
		clock:      &fakeClock{now: now},
	}
	engine := sla.NewEngine(env.holidays, time.UTC, 0)

	env.holidaySvc = NewHolidayService(HolidayDependencies{
		HolidayRepo: env.holidays,
		Engine:      engine,
		Dispatcher:  env.dispatcher,
		Metrics:     env.metrics,
	})
	env.slaSvc = NewSLAService(engine, env.policies, DefaultBusinessDays, nil)
	env.policySvc = NewSLAPolicyService(env.policies, env.sectors, nil)
	env.sectorSvc = NewSectorService(env.sectors)
	env.ticketSvc = NewTicketService(TicketDependencies{
		TicketRepo: env.tickets,
		SectorRepo: env.sectors,
		SLA:        env.slaSvc,
		Dispatcher: env.dispatcher,
		Metrics:    env.metrics,
		Clock:      env.clock.Now,
	})
	return env
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func errorCode(err error) string {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
