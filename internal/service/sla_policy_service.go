package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/repository"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// DefaultPolicyDescription labels policies created without a description.
const DefaultPolicyDescription = "SLA padrão"

// SLAPolicyService administers per-sector SLA policies.
type SLAPolicyService struct {
	policies repository.SLAPolicyRepository
	sectors  repository.SectorRepository
	logger   *zap.Logger
}

// SLAPolicyInput carries create and update fields.
type SLAPolicyInput struct {
	SectorID     string
	BusinessDays int
	Description  string
	Active       *bool
}

// NewSLAPolicyService constructs the service.
func NewSLAPolicyService(policies repository.SLAPolicyRepository, sectors repository.SectorRepository, logger *zap.Logger) *SLAPolicyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SLAPolicyService{policies: policies, sectors: sectors, logger: logger}
}

// List returns all policies, newest first.
func (s *SLAPolicyService) List(ctx context.Context) ([]domain.SLAPolicy, error) {
	return s.policies.List(ctx)
}

// GetActiveForSector returns the sector's active policy.
func (s *SLAPolicyService) GetActiveForSector(ctx context.Context, sectorID string) (*domain.SLAPolicy, error) {
	policy, err := s.policies.GetActiveBySector(ctx, sectorID)
	if err != nil {
		return nil, notFoundOr(err, "sla policy", sectorID)
	}
	return policy, nil
}

// Create stores a new active policy for the sector. Any policy that was active
// for the sector before is deactivated in the same write.
func (s *SLAPolicyService) Create(ctx context.Context, input SLAPolicyInput) (*domain.SLAPolicy, error) {
	sectorID := strings.TrimSpace(input.SectorID)
	if sectorID == "" {
		return nil, apperrors.NewValidationError("sector_id is required", nil)
	}
	if err := validateBusinessDays(input.BusinessDays); err != nil {
		return nil, err
	}
	if _, err := s.sectors.GetByID(ctx, sectorID); err != nil {
		return nil, notFoundOr(err, "sector", sectorID)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = DefaultPolicyDescription
	}
	policy := &domain.SLAPolicy{
		SectorID:     sectorID,
		BusinessDays: input.BusinessDays,
		Description:  description,
	}
	if err := s.policies.CreateActive(ctx, policy); err != nil {
		return nil, fmt.Errorf("create sla policy: %w", err)
	}
	s.logger.Info("sla policy activated",
		zap.String("policy_id", policy.ID),
		zap.String("sector_id", policy.SectorID),
		zap.Int("business_days", policy.BusinessDays))
	return policy, nil
}

// Update changes a policy's day count, description or active flag. Tickets
// keep the day count they were opened with.
func (s *SLAPolicyService) Update(ctx context.Context, id string, input SLAPolicyInput) (*domain.SLAPolicy, error) {
	policy, err := s.policies.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "sla policy", id)
	}
	if input.BusinessDays != 0 {
		if err := validateBusinessDays(input.BusinessDays); err != nil {
			return nil, err
		}
		policy.BusinessDays = input.BusinessDays
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		policy.Description = desc
	}
	if input.Active != nil {
		if *input.Active && !policy.Active {
			if err := s.ensureNoOtherActive(ctx, policy); err != nil {
				return nil, err
			}
		}
		policy.Active = *input.Active
	}
	if err := s.policies.Update(ctx, policy); err != nil {
		return nil, notFoundOr(err, "sla policy", id)
	}
	return policy, nil
}

func (s *SLAPolicyService) ensureNoOtherActive(ctx context.Context, policy *domain.SLAPolicy) error {
	active, err := s.policies.GetActiveBySector(ctx, policy.SectorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load active sla policy: %w", err)
	}
	if active.ID == policy.ID {
		return nil
	}
	return apperrors.NewConflict("sector already has an active policy; create a new one to replace it", map[string]any{
		"active_policy_id": active.ID,
	})
}

// Delete removes a policy.
func (s *SLAPolicyService) Delete(ctx context.Context, id string) error {
	if err := s.policies.Delete(ctx, id); err != nil {
		return notFoundOr(err, "sla policy", id)
	}
	return nil
}
