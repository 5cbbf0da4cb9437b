package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/donations/domain"
)

// HistoryRepo handles PostgreSQL operations for the donation history.
//
// Expected schema:
//
//	CREATE TABLE donations (
//	    id         TEXT PRIMARY KEY,
//	    project_id TEXT NOT NULL,
//	    donor      TEXT NOT NULL,
//	    amount_xlm DOUBLE PRECISION NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE INDEX donations_project_idx ON donations (project_id, created_at DESC);
type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Record appends one accepted donation. History is an audit trail only; the
// authoritative total lives on the project document.
func (r *HistoryRepo) Record(ctx context.Context, d *domain.Donation) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}

	const query = `
		INSERT INTO donations (id, project_id, donor, amount_xlm)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, d.ID, d.ProjectID, d.Donor, d.AmountXLM).
		Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record donation: %w", err)
	}
	return nil
}

// ListByProject returns a project's donations, newest first.
func (r *HistoryRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Donation, error) {
	const query = `
		SELECT id, project_id, donor, amount_xlm, created_at
		FROM donations
		WHERE project_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Donation, 0, 16)
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Donor, &d.AmountXLM, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
