package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/observability"
	"github.com/thallyson03/ceapdesk/internal/repository"
	"github.com/thallyson03/ceapdesk/internal/sla"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// DefaultBusinessDays applies to sectors without an active policy.
const DefaultBusinessDays = 3

// SLAService exposes the business-day engine to the rest of the application.
type SLAService struct {
	engine      *sla.Engine
	policies    repository.SLAPolicyRepository
	defaultDays int
	logger      *zap.Logger
}

// NewSLAService constructs the service. A non-positive defaultDays falls back
// to DefaultBusinessDays.
func NewSLAService(engine *sla.Engine, policies repository.SLAPolicyRepository, defaultDays int, logger *zap.Logger) *SLAService {
	if defaultDays <= 0 {
		defaultDays = DefaultBusinessDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SLAService{engine: engine, policies: policies, defaultDays: defaultDays, logger: logger}
}

// Engine returns the underlying calendar engine.
func (s *SLAService) Engine() *sla.Engine {
	return s.engine
}

// Remaining is the outcome of a remaining-days computation.
type Remaining struct {
	Due          time.Time
	AsOf         time.Time
	BusinessDays int
	Status       domain.SLAStatus
}

// DueDate computes the deadline businessDays business days from start.
// Non-positive counts return start's civil date; counts above the policy
// maximum are rejected.
func (s *SLAService) DueDate(ctx context.Context, start time.Time, businessDays int) (time.Time, error) {
	ctx, span := observability.Tracer().Start(ctx, "SLAService.DueDate")
	defer span.End()
	span.SetAttributes(attribute.Int("business_days", businessDays))

	if businessDays > domain.MaxPolicyBusinessDays {
		return time.Time{}, apperrors.NewValidationError("business days must not exceed 365", map[string]any{
			"business_days": businessDays,
		})
	}

	due, err := s.engine.CalculateDueDate(ctx, start, businessDays)
	if err != nil {
		span.RecordError(err)
		return time.Time{}, engineError(err)
	}
	return due, nil
}

// Remaining counts business days left until due as of asOf and classifies it.
func (s *SLAService) Remaining(ctx context.Context, due, asOf time.Time) (*Remaining, error) {
	status, remaining, err := s.engine.Status(ctx, due, asOf)
	if err != nil {
		return nil, engineError(err)
	}
	return &Remaining{Due: due, AsOf: asOf, BusinessDays: remaining, Status: status}, nil
}

// BusinessDaysForSector returns the active policy's day count for the sector,
// or the default when the sector has none. The policy is nil in that case.
func (s *SLAService) BusinessDaysForSector(ctx context.Context, sectorID string) (int, *domain.SLAPolicy, error) {
	policy, err := s.policies.GetActiveBySector(ctx, sectorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.defaultDays, nil, nil
		}
		return 0, nil, fmt.Errorf("load sla policy: %w", err)
	}
	return policy.BusinessDays, policy, nil
}

func validateBusinessDays(days int) error {
	if days < domain.MinPolicyBusinessDays || days > domain.MaxPolicyBusinessDays {
		return apperrors.NewValidationError("business days must be between 1 and 365", map[string]any{
			"business_days": days,
		})
	}
	return nil
}
