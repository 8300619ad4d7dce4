package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// SLAPolicyRepository manages per-sector SLA policies.
type SLAPolicyRepository interface {
	// CreateActive deactivates the sector's current active policy and inserts
	// policy as the new active one, atomically.
	CreateActive(ctx context.Context, policy *domain.SLAPolicy) error
	Update(ctx context.Context, policy *domain.SLAPolicy) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SLAPolicy, error)
	GetActiveBySector(ctx context.Context, sectorID string) (*domain.SLAPolicy, error)
	List(ctx context.Context) ([]domain.SLAPolicy, error)
}

type slaPolicyRepository struct {
	pool *pgxpool.Pool
}

// NewSLAPolicyRepository returns a Postgres-backed implementation.
func NewSLAPolicyRepository(pool *pgxpool.Pool) SLAPolicyRepository {
	return &slaPolicyRepository{pool: pool}
}

const policyColumns = `id, sector_id, business_days, description, is_active, created_at, updated_at`

func (r *slaPolicyRepository) CreateActive(ctx context.Context, policy *domain.SLAPolicy) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return createActivePolicy(ctx, tx, policy)
	})
}

// createActivePolicy locks the sector row first so concurrent creates for the
// same sector run one after another and the last one stays active.
func createActivePolicy(ctx context.Context, tx pgx.Tx, policy *domain.SLAPolicy) error {
	var locked string
	if err := tx.QueryRow(ctx, `SELECT id FROM sectors WHERE id=$1 FOR UPDATE`, policy.SectorID).Scan(&locked); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE sla_policies SET is_active = FALSE, updated_at = NOW() WHERE sector_id=$1 AND is_active = TRUE`,
		policy.SectorID,
	); err != nil {
		return err
	}
	const query = `
        INSERT INTO sla_policies (sector_id, business_days, description, is_active)
        VALUES ($1,$2,$3,TRUE)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		policy.SectorID,
		policy.BusinessDays,
		policy.Description,
	).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt); err != nil {
		return err
	}
	policy.Active = true
	return nil
}

func (r *slaPolicyRepository) Update(ctx context.Context, policy *domain.SLAPolicy) error {
	const query = `
        UPDATE sla_policies SET business_days=$1, description=$2, is_active=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		policy.BusinessDays,
		policy.Description,
		policy.Active,
		policy.ID,
	).Scan(&policy.UpdatedAt)
}

func (r *slaPolicyRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sla_policies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *slaPolicyRepository) GetByID(ctx context.Context, id string) (*domain.SLAPolicy, error) {
	return r.fetchSingle(ctx, `SELECT `+policyColumns+` FROM sla_policies WHERE id=$1`, id)
}

func (r *slaPolicyRepository) GetActiveBySector(ctx context.Context, sectorID string) (*domain.SLAPolicy, error) {
	return r.fetchSingle(ctx,
		`SELECT `+policyColumns+` FROM sla_policies WHERE sector_id=$1 AND is_active = TRUE ORDER BY created_at DESC LIMIT 1`,
		sectorID)
}

func (r *slaPolicyRepository) List(ctx context.Context) ([]domain.SLAPolicy, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+policyColumns+` FROM sla_policies ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.SLAPolicy{}
	for rows.Next() {
		var p domain.SLAPolicy
		if err := rows.Scan(&p.ID, &p.SectorID, &p.BusinessDays, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *slaPolicyRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.SLAPolicy, error) {
	var p domain.SLAPolicy
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.SectorID,
		&p.BusinessDays,
		&p.Description,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
