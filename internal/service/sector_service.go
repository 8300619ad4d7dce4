package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/repository"
	apperrors "github.com/thallyson03/ceapdesk/pkg/util/errorutil"
)

// SectorService manages sectors.
type SectorService struct {
	sectors repository.SectorRepository
}

func NewSectorService(sectors repository.SectorRepository) *SectorService {
	return &SectorService{sectors: sectors}
}

// Create adds an active sector. Names are unique ignoring case.
func (s *SectorService) Create(ctx context.Context, name string) (*domain.Sector, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	existing, err := s.sectors.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	for _, sector := range existing {
		if strings.EqualFold(sector.Name, name) {
			return nil, apperrors.NewConflict("sector already exists", map[string]any{"sector_id": sector.ID})
		}
	}

	sector := &domain.Sector{Name: name, Active: true}
	if err := s.sectors.Create(ctx, sector); err != nil {
		return nil, fmt.Errorf("create sector: %w", err)
	}
	return sector, nil
}

func (s *SectorService) List(ctx context.Context, activeOnly bool) ([]domain.Sector, error) {
	return s.sectors.List(ctx, activeOnly)
}

func (s *SectorService) Get(ctx context.Context, id string) (*domain.Sector, error) {
	sector, err := s.sectors.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "sector", id)
	}
	return sector, nil
}
