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

// TicketStore is an in-memory repository.TicketRepository.
type TicketStore struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
	// SLAStatusWrites counts UpdateSLAStatus calls.
	SLAStatusWrites int
}

func NewTicketStore() *TicketStore {
	return &TicketStore{tickets: make(map[string]domain.Ticket)}
}

var _ repository.TicketRepository = (*TicketStore)(nil)

func (s *TicketStore) Create(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket.ID = uuid.NewString()
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now()
	}
	ticket.UpdatedAt = ticket.CreatedAt
	s.tickets[ticket.ID] = *ticket
	return nil
}

func (s *TicketStore) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (s *TicketStore) UpdateSLAStatus(_ context.Context, id string, status domain.SLAStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.SLAStatus = status
	s.tickets[id] = t
	s.SLAStatusWrites++
	return nil
}

func (s *TicketStore) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Ticket{}
	for _, t := range s.tickets {
		if filter.RequesterID != nil && t.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.SectorID != nil && t.SectorID != *filter.SectorID {
			continue
		}
		if len(filter.Statuses) > 0 && !contains(filter.Statuses, t.Status) {
			continue
		}
		if len(filter.SLAStatuses) > 0 && !contains(filter.SLAStatuses, t.SLAStatus) {
			continue
		}
		if filter.CreatedFrom != nil && t.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && t.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		out = append(out, t)
	}
	if filter.OrderByDue {
		sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return []domain.Ticket{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
