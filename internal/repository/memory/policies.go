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

// SLAPolicyStore is an in-memory repository.SLAPolicyRepository.
type SLAPolicyStore struct {
	mu       sync.RWMutex
	policies map[string]domain.SLAPolicy
}

func NewSLAPolicyStore() *SLAPolicyStore {
	return &SLAPolicyStore{policies: make(map[string]domain.SLAPolicy)}
}

var _ repository.SLAPolicyRepository = (*SLAPolicyStore)(nil)

func (s *SLAPolicyStore) CreateActive(_ context.Context, policy *domain.SLAPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, existing := range s.policies {
		if existing.SectorID == policy.SectorID && existing.Active {
			existing.Active = false
			existing.UpdatedAt = now
			s.policies[id] = existing
		}
	}
	policy.ID = uuid.NewString()
	policy.Active = true
	policy.CreatedAt = now
	policy.UpdatedAt = now
	s.policies[policy.ID] = *policy
	return nil
}

func (s *SLAPolicyStore) Update(_ context.Context, policy *domain.SLAPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[policy.ID]; !ok {
		return pgx.ErrNoRows
	}
	policy.UpdatedAt = time.Now()
	s.policies[policy.ID] = *policy
	return nil
}

func (s *SLAPolicyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.policies, id)
	return nil
}

func (s *SLAPolicyStore) GetByID(_ context.Context, id string) (*domain.SLAPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (s *SLAPolicyStore) GetActiveBySector(_ context.Context, sectorID string) (*domain.SLAPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.SLAPolicy
	for _, p := range s.policies {
		if p.SectorID != sectorID || !p.Active {
			continue
		}
		if found == nil || p.CreatedAt.After(found.CreatedAt) {
			candidate := p
			found = &candidate
		}
	}
	if found == nil {
		return nil, pgx.ErrNoRows
	}
	return found, nil
}

func (s *SLAPolicyStore) List(_ context.Context) ([]domain.SLAPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SLAPolicy, 0, len(s.policies))
	for _, p := range s.policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
