package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

const (
	holidayYearKeyPrefix       = "holidays:active:"
	holidayGenerationKeyPrefix = "holidays:generation:"
)

// cachedHolidayRepository keeps the active holiday set of each year in Redis.
// Cached sets are keyed by a per-year generation counter. Writes go to the
// wrapped repository first and then bump the generation of every year they
// touch, so a completed write is visible to the next lookup and a reader that
// loaded the old set can only fill a key nobody reads anymore.
type cachedHolidayRepository struct {
	next   HolidayRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedHolidayRepository wraps next with a Redis cache. A nil client
// returns next unchanged.
func NewCachedHolidayRepository(next HolidayRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) HolidayRepository {
	if client == nil {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedHolidayRepository{next: next, client: client, ttl: ttl, logger: logger}
}

type cachedHoliday struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Date        string             `json:"date"`
	Kind        domain.HolidayKind `json:"kind"`
	Description *string            `json:"description,omitempty"`
}

func holidayYearKey(year int, generation int64) string {
	return fmt.Sprintf("%s%d:%d", holidayYearKeyPrefix, year, generation)
}

func holidayGenerationKey(year int) string {
	return fmt.Sprintf("%s%d", holidayGenerationKeyPrefix, year)
}

func (r *cachedHolidayRepository) generation(ctx context.Context, year int) (int64, error) {
	gen, err := r.client.Get(ctx, holidayGenerationKey(year)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *cachedHolidayRepository) ListActiveByYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	gen, err := r.generation(ctx, year)
	if err != nil {
		r.logger.Warn("holiday cache generation read failed", zap.Int("year", year), zap.Error(err))
		return r.next.ListActiveByYear(ctx, year)
	}
	key := holidayYearKey(year, gen)
	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		holidays, decodeErr := decodeHolidays(raw)
		if decodeErr == nil {
			return holidays, nil
		}
		r.logger.Warn("discarding unreadable holiday cache entry", zap.String("key", key), zap.Error(decodeErr))
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Warn("holiday cache read failed", zap.String("key", key), zap.Error(err))
	}

	holidays, err := r.next.ListActiveByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if encoded, err := encodeHolidays(holidays); err == nil {
		if err := r.client.Set(ctx, key, encoded, r.ttl).Err(); err != nil {
			r.logger.Warn("holiday cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return holidays, nil
}

func (r *cachedHolidayRepository) FindActiveByDate(ctx context.Context, date time.Time) ([]domain.Holiday, error) {
	holidays, err := r.ListActiveByYear(ctx, date.Year())
	if err != nil {
		return nil, err
	}
	matches := []domain.Holiday{}
	for _, h := range holidays {
		if h.Date.Equal(date) {
			matches = append(matches, h)
		}
	}
	return matches, nil
}

func (r *cachedHolidayRepository) Create(ctx context.Context, holiday *domain.Holiday) error {
	if err := r.next.Create(ctx, holiday); err != nil {
		return err
	}
	return r.invalidate(ctx, holiday.Date.Year())
}

func (r *cachedHolidayRepository) Update(ctx context.Context, holiday *domain.Holiday) error {
	previous, err := r.next.GetByID(ctx, holiday.ID)
	if err != nil {
		return err
	}
	if err := r.next.Update(ctx, holiday); err != nil {
		return err
	}
	return r.invalidate(ctx, previous.Date.Year(), holiday.Date.Year())
}

func (r *cachedHolidayRepository) Delete(ctx context.Context, id string) error {
	previous, err := r.next.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	return r.invalidate(ctx, previous.Date.Year())
}

func (r *cachedHolidayRepository) GetByID(ctx context.Context, id string) (*domain.Holiday, error) {
	return r.next.GetByID(ctx, id)
}

func (r *cachedHolidayRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.Holiday, error) {
	return r.next.FindByDate(ctx, date)
}

func (r *cachedHolidayRepository) FindByNameAndDate(ctx context.Context, name string, date time.Time) (*domain.Holiday, error) {
	return r.next.FindByNameAndDate(ctx, name, date)
}

func (r *cachedHolidayRepository) List(ctx context.Context, filter HolidayFilter) ([]domain.Holiday, error) {
	return r.next.List(ctx, filter)
}

func (r *cachedHolidayRepository) invalidate(ctx context.Context, years ...int) error {
	seen := make(map[int]struct{}, len(years))
	pipe := r.client.TxPipeline()
	for _, y := range years {
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		pipe.Incr(ctx, holidayGenerationKey(y))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("invalidate holiday cache: %w", err)
	}
	return nil
}

func encodeHolidays(holidays []domain.Holiday) ([]byte, error) {
	out := make([]cachedHoliday, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, cachedHoliday{
			ID:          h.ID,
			Name:        h.Name,
			Date:        h.Date.Format(time.DateOnly),
			Kind:        h.Kind,
			Description: h.Description,
		})
	}
	return json.Marshal(out)
}

func decodeHolidays(raw []byte) ([]domain.Holiday, error) {
	var cached []cachedHoliday
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, err
	}
	out := make([]domain.Holiday, 0, len(cached))
	for _, c := range cached {
		date, err := time.Parse(time.DateOnly, c.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Holiday{
			ID:          c.ID,
			Name:        c.Name,
			Date:        date,
			Kind:        c.Kind,
			Active:      true,
			Description: c.Description,
		})
	}
	return out, nil
}
