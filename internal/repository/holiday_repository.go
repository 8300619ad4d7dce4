package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// HolidayFilter narrows holiday listings.
type HolidayFilter struct {
	Year       *int
	ActiveOnly bool
}

// HolidayRepository encapsulates holiday persistence. Dates are civil dates at
// midnight UTC. Lookups that find nothing return pgx.ErrNoRows only for
// single-row methods; list methods return an empty slice.
type HolidayRepository interface {
	Create(ctx context.Context, holiday *domain.Holiday) error
	Update(ctx context.Context, holiday *domain.Holiday) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Holiday, error)
	FindByDate(ctx context.Context, date time.Time) ([]domain.Holiday, error)
	FindByNameAndDate(ctx context.Context, name string, date time.Time) (*domain.Holiday, error)
	List(ctx context.Context, filter HolidayFilter) ([]domain.Holiday, error)
	FindActiveByDate(ctx context.Context, date time.Time) ([]domain.Holiday, error)
	ListActiveByYear(ctx context.Context, year int) ([]domain.Holiday, error)
}

type holidayRepository struct {
	pool *pgxpool.Pool
}

// NewHolidayRepository returns a Postgres-backed implementation.
func NewHolidayRepository(pool *pgxpool.Pool) HolidayRepository {
	return &holidayRepository{pool: pool}
}

const holidayColumns = `id, name, date, kind, active, description, created_at, updated_at`

func (r *holidayRepository) Create(ctx context.Context, holiday *domain.Holiday) error {
	const query = `
        INSERT INTO holidays (name, date, kind, active, description)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		holiday.Name,
		holiday.Date,
		holiday.Kind,
		holiday.Active,
		holiday.Description,
	).Scan(&holiday.ID, &holiday.CreatedAt, &holiday.UpdatedAt)
}

func (r *holidayRepository) Update(ctx context.Context, holiday *domain.Holiday) error {
	const query = `
        UPDATE holidays SET name=$1, date=$2, kind=$3, active=$4, description=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		holiday.Name,
		holiday.Date,
		holiday.Kind,
		holiday.Active,
		holiday.Description,
		holiday.ID,
	).Scan(&holiday.UpdatedAt)
	return err
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM holidays WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *holidayRepository) GetByID(ctx context.Context, id string) (*domain.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *holidayRepository) FindByNameAndDate(ctx context.Context, name string, date time.Time) (*domain.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE name=$1 AND date=$2 LIMIT 1`
	return r.fetchSingle(ctx, query, name, date)
}

func (r *holidayRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE date=$1 ORDER BY created_at`
	return r.query(ctx, query, date)
}

func (r *holidayRepository) FindActiveByDate(ctx context.Context, date time.Time) ([]domain.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE date=$1 AND active = TRUE`
	return r.query(ctx, query, date)
}

func (r *holidayRepository) ListActiveByYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	return r.List(ctx, HolidayFilter{Year: &year, ActiveOnly: true})
}

func (r *holidayRepository) List(ctx context.Context, filter HolidayFilter) ([]domain.Holiday, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Year != nil {
		from := time.Date(*filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		args = append(args, from, from.AddDate(1, 0, 0))
		clauses = append(clauses, fmt.Sprintf("date >= $%d AND date < $%d", len(args)-1, len(args)))
	}
	if filter.ActiveOnly {
		clauses = append(clauses, "active = TRUE")
	}

	query := fmt.Sprintf(`SELECT %s FROM holidays WHERE %s ORDER BY date ASC, name ASC`,
		holidayColumns, strings.Join(clauses, " AND "))
	return r.query(ctx, query, args...)
}

func (r *holidayRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Holiday, error) {
	var h domain.Holiday
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&h.ID,
		&h.Name,
		&h.Date,
		&h.Kind,
		&h.Active,
		&h.Description,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holidayRepository) query(ctx context.Context, query string, args ...any) ([]domain.Holiday, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Holiday{}
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.Kind, &h.Active, &h.Description, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}
