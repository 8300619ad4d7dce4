// Package memory provides map-backed repositories. The API falls back to them
// when no database is configured, and tests use them as fakes.
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

// HolidayStore is an in-memory repository.HolidayRepository.
type HolidayStore struct {
	mu       sync.RWMutex
	holidays map[string]domain.Holiday
}

// NewHolidayStore returns an empty store.
func NewHolidayStore() *HolidayStore {
	return &HolidayStore{holidays: make(map[string]domain.Holiday)}
}

var _ repository.HolidayRepository = (*HolidayStore)(nil)

func (s *HolidayStore) Create(_ context.Context, holiday *domain.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	holiday.ID = uuid.NewString()
	holiday.CreatedAt = now
	holiday.UpdatedAt = now
	s.holidays[holiday.ID] = *holiday
	return nil
}

func (s *HolidayStore) Update(_ context.Context, holiday *domain.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.holidays[holiday.ID]; !ok {
		return pgx.ErrNoRows
	}
	holiday.UpdatedAt = time.Now()
	s.holidays[holiday.ID] = *holiday
	return nil
}

func (s *HolidayStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.holidays[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.holidays, id)
	return nil
}

func (s *HolidayStore) GetByID(_ context.Context, id string) (*domain.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.holidays[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &h, nil
}

func (s *HolidayStore) FindByDate(_ context.Context, date time.Time) ([]domain.Holiday, error) {
	return s.filter(func(h domain.Holiday) bool { return h.Date.Equal(date) }), nil
}

func (s *HolidayStore) FindByNameAndDate(_ context.Context, name string, date time.Time) (*domain.Holiday, error) {
	matches := s.filter(func(h domain.Holiday) bool { return h.Name == name && h.Date.Equal(date) })
	if len(matches) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &matches[0], nil
}

func (s *HolidayStore) List(_ context.Context, filter repository.HolidayFilter) ([]domain.Holiday, error) {
	return s.filter(func(h domain.Holiday) bool {
		if filter.Year != nil && h.Date.Year() != *filter.Year {
			return false
		}
		return !filter.ActiveOnly || h.Active
	}), nil
}

func (s *HolidayStore) FindActiveByDate(_ context.Context, date time.Time) ([]domain.Holiday, error) {
	return s.filter(func(h domain.Holiday) bool { return h.Active && h.Date.Equal(date) }), nil
}

func (s *HolidayStore) ListActiveByYear(_ context.Context, year int) ([]domain.Holiday, error) {
	return s.filter(func(h domain.Holiday) bool { return h.Active && h.Date.Year() == year }), nil
}

// Len reports how many holidays are stored.
func (s *HolidayStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.holidays)
}

func (s *HolidayStore) filter(keep func(domain.Holiday) bool) []domain.Holiday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Holiday{}
	for _, h := range s.holidays {
		if keep(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].Name < out[j].Name
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
