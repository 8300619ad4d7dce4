package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/thallyson03/ceapdesk/internal/domain"
	"github.com/thallyson03/ceapdesk/internal/repository"
)

// SectorStore is an in-memory repository.SectorRepository.
type SectorStore struct {
	mu      sync.RWMutex
	sectors map[string]domain.Sector
}

func NewSectorStore() *SectorStore {
	return &SectorStore{sectors: make(map[string]domain.Sector)}
}

var _ repository.SectorRepository = (*SectorStore)(nil)

func (s *SectorStore) Create(_ context.Context, sector *domain.Sector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	sector.ID = uuid.NewString()
	sector.CreatedAt = now
	sector.UpdatedAt = now
	s.sectors[sector.ID] = *sector
	return nil
}

func (s *SectorStore) Update(_ context.Context, sector *domain.Sector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sectors[sector.ID]; !ok {
		return pgx.ErrNoRows
	}
	sector.UpdatedAt = time.Now()
	s.sectors[sector.ID] = *sector
	return nil
}

func (s *SectorStore) GetByID(_ context.Context, id string) (*domain.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sector, ok := s.sectors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &sector, nil
}

func (s *SectorStore) List(_ context.Context, activeOnly bool) ([]domain.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Sector{}
	for _, sector := range s.sectors {
		if activeOnly && !sector.Active {
			continue
		}
		out = append(out, sector)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
