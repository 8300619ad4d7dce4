package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

type recordingTx struct {
	pgx.Tx
	statements []string
	rowErr     error
}

func (t *recordingTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.statements = append(t.statements, strings.TrimSpace(sql))
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (t *recordingTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	t.statements = append(t.statements, strings.TrimSpace(sql))
	return scriptedRow{err: t.rowErr}
}

type scriptedRow struct {
	err error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for _, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = "11111111-1111-1111-1111-111111111111"
		case *time.Time:
			*v = time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)
		}
	}
	return nil
}

func TestCreateActivePolicy_LocksSectorBeforeSwap(t *testing.T) {
	tx := &recordingTx{}
	policy := &domain.SLAPolicy{SectorID: "sector-1", BusinessDays: 5}

	if err := createActivePolicy(context.Background(), tx, policy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tx.statements) != 3 {
		t.Fatalf("expected 3 statements, got %d: %v", len(tx.statements), tx.statements)
	}
	if !strings.HasPrefix(tx.statements[0], "SELECT id FROM sectors") || !strings.HasSuffix(tx.statements[0], "FOR UPDATE") {
		t.Errorf("first statement must lock the sector row, got %q", tx.statements[0])
	}
	if !strings.HasPrefix(tx.statements[1], "UPDATE sla_policies SET is_active = FALSE") {
		t.Errorf("second statement must deactivate the current policy, got %q", tx.statements[1])
	}
	if !strings.HasPrefix(tx.statements[2], "INSERT INTO sla_policies") {
		t.Errorf("third statement must insert the new policy, got %q", tx.statements[2])
	}
	if !policy.Active || policy.ID == "" || policy.CreatedAt.IsZero() {
		t.Errorf("policy not populated: %+v", policy)
	}
}

func TestCreateActivePolicy_UnknownSector(t *testing.T) {
	tx := &recordingTx{rowErr: pgx.ErrNoRows}
	policy := &domain.SLAPolicy{SectorID: "missing", BusinessDays: 5}

	if err := createActivePolicy(context.Background(), tx, policy); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if len(tx.statements) != 1 {
		t.Errorf("expected to stop after the lock, got %v", tx.statements)
	}
	if policy.Active {
		t.Error("policy must not be marked active")
	}
}
