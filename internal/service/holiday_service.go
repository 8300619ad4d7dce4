package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/events"
	"github.com/thallyson03/ceapdesk/internal/observability"
	"github.com/thallyson03/ceapdesk/internal/repository"
	"github.com/thallyson03/ceapdesk/internal/sla"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

const (
	MinSeedYear = 1900
	MaxSeedYear = 2100
)

// HolidayService manages the holiday calendar.
type HolidayService struct {
	holidays   repository.HolidayRepository
	engine     *sla.Engine
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// HolidayDependencies bundles collaborators for the holiday service.
type HolidayDependencies struct {
	HolidayRepo repository.HolidayRepository
	Engine      *sla.Engine
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// HolidayInput carries create and update fields. Active defaults to true on create.
type HolidayInput struct {
	Name        string
	Date        time.Time
	Kind        domain.HolidayKind
	Active      *bool
	Description *string
}

// SeedResult lists the default holidays a seeding run actually inserted.
type SeedResult struct {
	Year    int
	Fixed   []domain.Holiday
	Movable []domain.Holiday
}

// All returns fixed and movable insertions combined.
func (r SeedResult) All() []domain.Holiday {
	out := make([]domain.Holiday, 0, len(r.Fixed)+len(r.Movable))
	out = append(out, r.Fixed...)
	return append(out, r.Movable...)
}

// BusinessDayCheck explains whether a date is a business day.
type BusinessDayCheck struct {
	Date          time.Time
	IsBusinessDay bool
	IsWeekend     bool
	IsHoliday     bool
}

// NewHolidayService constructs the service.
func NewHolidayService(deps HolidayDependencies) *HolidayService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HolidayService{
		holidays:   deps.HolidayRepo,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// List returns every holiday, optionally restricted to one year.
func (s *HolidayService) List(ctx context.Context, year *int) ([]domain.Holiday, error) {
	return s.holidays.List(ctx, repository.HolidayFilter{Year: year})
}

// ListActiveByYear returns the holidays that currently affect business-day math in year.
func (s *HolidayService) ListActiveByYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	return s.holidays.ListActiveByYear(ctx, year)
}

// Create adds a holiday. Only one holiday may exist per date.
func (s *HolidayService) Create(ctx context.Context, input HolidayInput) (*domain.Holiday, error) {
	holiday, err := validateHolidayInput(input)
	if err != nil {
		return nil, err
	}
	holiday.Active = true
	if input.Active != nil {
		holiday.Active = *input.Active
	}

	if err := s.ensureDateFree(ctx, holiday.Date, ""); err != nil {
		return nil, err
	}
	if err := s.holidays.Create(ctx, holiday); err != nil {
		return nil, fmt.Errorf("create holiday: %w", err)
	}
	s.logger.Info("holiday created",
		zap.String("holiday_id", holiday.ID),
		zap.String("date", holiday.Date.Format(time.DateOnly)))
	return holiday, nil
}

// Update replaces a holiday's fields. Moving it onto a date taken by another
// holiday is a conflict.
func (s *HolidayService) Update(ctx context.Context, id string, input HolidayInput) (*domain.Holiday, error) {
	existing, err := s.holidays.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "holiday", id)
	}
	updated, err := validateHolidayInput(input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Active = existing.Active
	if input.Active != nil {
		updated.Active = *input.Active
	}

	if !updated.Date.Equal(existing.Date) {
		if err := s.ensureDateFree(ctx, updated.Date, existing.ID); err != nil {
			return nil, err
		}
	}
	if err := s.holidays.Update(ctx, updated); err != nil {
		return nil, notFoundOr(err, "holiday", id)
	}
	return updated, nil
}

// Delete removes a holiday.
func (s *HolidayService) Delete(ctx context.Context, id string) error {
	if err := s.holidays.Delete(ctx, id); err != nil {
		return notFoundOr(err, "holiday", id)
	}
	s.logger.Info("holiday deleted", zap.String("holiday_id", id))
	return nil
}

// AddDefaultHolidays inserts the national fixed and Easter-derived holidays of
// year. Holidays already present with the same name and date are skipped, so
// repeated calls are harmless.
func (s *HolidayService) AddDefaultHolidays(ctx context.Context, year int) (*SeedResult, error) {
	if year < MinSeedYear || year > MaxSeedYear {
		return nil, apperrors.NewValidationError("year out of range", map[string]any{
			"year": year, "min": MinSeedYear, "max": MaxSeedYear,
		})
	}

	ctx, span := observability.Tracer().Start(ctx, "HolidayService.AddDefaultHolidays")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year))

	fixed, err := s.insertMissing(ctx, sla.FixedHolidays(year))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	movable, err := s.insertMissing(ctx, sla.MovableHolidays(year))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &SeedResult{Year: year, Fixed: fixed, Movable: movable}
	inserted := len(fixed) + len(movable)
	s.metrics.RecordSeededHolidays(inserted)
	s.logger.Info("default holidays seeded",
		zap.Int("year", year),
		zap.Int("fixed", len(fixed)),
		zap.Int("movable", len(movable)))

	if inserted > 0 {
		publishEvent(ctx, s.dispatcher, s.logger, events.Event{
			Type: events.EventHolidaysSeeded,
			Payload: events.HolidaysSeededPayload{
				Year:     year,
				Fixed:    len(fixed),
				Movable:  len(movable),
				Inserted: inserted,
			},
		})
	}
	return result, nil
}

// CheckBusinessDay reports how the calendar classifies the civil date of date.
func (s *HolidayService) CheckBusinessDay(ctx context.Context, date time.Time) (*BusinessDayCheck, error) {
	local := s.engine.Midnight(date)
	weekend := s.engine.IsWeekend(local)
	holiday, err := s.engine.IsHoliday(ctx, local)
	if err != nil {
		return nil, err
	}
	return &BusinessDayCheck{
		Date:          s.engine.Date(local),
		IsBusinessDay: !weekend && !holiday,
		IsWeekend:     weekend,
		IsHoliday:     holiday,
	}, nil
}

func (s *HolidayService) insertMissing(ctx context.Context, candidates []domain.Holiday) ([]domain.Holiday, error) {
	created := []domain.Holiday{}
	for _, candidate := range candidates {
		_, err := s.holidays.FindByNameAndDate(ctx, candidate.Name, candidate.Date)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("find holiday %q: %w", candidate.Name, err)
		}
		holiday := candidate
		if err := s.holidays.Create(ctx, &holiday); err != nil {
			return nil, fmt.Errorf("create holiday %q: %w", candidate.Name, err)
		}
		created = append(created, holiday)
	}
	return created, nil
}

func (s *HolidayService) ensureDateFree(ctx context.Context, date time.Time, selfID string) error {
	sameDay, err := s.holidays.FindByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("find holidays by date: %w", err)
	}
	for _, h := range sameDay {
		if h.ID != selfID {
			return apperrors.NewConflict("a holiday already exists on this date", map[string]any{
				"date":         date.Format(time.DateOnly),
				"holiday_id":   h.ID,
				"holiday_name": h.Name,
			})
		}
	}
	return nil
}

func validateHolidayInput(input HolidayInput) (*domain.Holiday, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewValidationError("date is required", nil)
	}
	kind := input.Kind
	if kind == "" {
		kind = domain.HolidayKindNational
	}
	if !kind.Valid() {
		return nil, apperrors.NewValidationError("invalid holiday kind", map[string]any{"kind": kind})
	}
	var description *string
	if input.Description != nil {
		if trimmed := strings.TrimSpace(*input.Description); trimmed != "" {
			description = &trimmed
		}
	}
	return &domain.Holiday{
		Name:        name,
		Date:        sla.CivilDate(input.Date, time.UTC),
		Kind:        kind,
		Description: description,
	}, nil
}
