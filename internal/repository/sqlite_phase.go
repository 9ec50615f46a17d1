package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vlanet/vridge/internal/db"
	"github.com/vlanet/vridge/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

func NewSQLitePhaseRepo(db db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: db}
}

const phaseColumns = `id, project_id, name, type, start_date, end_date, duration_days, is_movable, created_at, updated_at`

func (r *SQLitePhaseRepo) Create(ctx context.Context, ph *domain.ProjectPhase) error {
	query := `INSERT INTO project_phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ph.ID,
		ph.ProjectID,
		ph.Name,
		string(ph.Type),
		formatDay(ph.StartDate),
		formatDay(ph.EndDate),
		ph.Duration,
		boolToInt(ph.IsMovable),
		ph.CreatedAt.UTC().Format(time.RFC3339),
		ph.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.ProjectPhase, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+phaseColumns+` FROM project_phases WHERE id = ?`, id)
	return scanPhase(row)
}

func (r *SQLitePhaseRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectPhase, error) {
	return r.list(ctx, `SELECT `+phaseColumns+` FROM project_phases
		WHERE project_id = ? ORDER BY start_date, end_date, id`, projectID)
}

func (r *SQLitePhaseRepo) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.ProjectPhase, error) {
	return r.list(ctx, `SELECT `+phaseColumns+` FROM project_phases
		WHERE start_date <= ? AND end_date >= ? ORDER BY start_date, end_date, id`,
		formatDay(to), formatDay(from))
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, ph *domain.ProjectPhase) error {
	query := `UPDATE project_phases SET name = ?, type = ?, start_date = ?, end_date = ?, duration_days = ?, is_movable = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		ph.Name,
		string(ph.Type),
		formatDay(ph.StartDate),
		formatDay(ph.EndDate),
		ph.Duration,
		boolToInt(ph.IsMovable),
		ph.UpdatedAt.UTC().Format(time.RFC3339),
		ph.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return requireAffected(res, "phase", ph.ID)
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_phases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return requireAffected(res, "phase", id)
}

func (r *SQLitePhaseRepo) list(ctx context.Context, query string, args ...any) ([]*domain.ProjectPhase, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.ProjectPhase
	for rows.Next() {
		ph, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		phases = append(phases, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func scanPhase(row rowScanner) (*domain.ProjectPhase, error) {
	var ph domain.ProjectPhase
	var typeStr, startStr, endStr, createdAtStr, updatedAtStr string
	var movable int

	err := row.Scan(
		&ph.ID, &ph.ProjectID, &ph.Name, &typeStr,
		&startStr, &endStr, &ph.Duration, &movable,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("phase %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}

	ph.Type = domain.PhaseType(typeStr)
	ph.IsMovable = intToBool(movable)
	if ph.StartDate, err = time.Parse(domain.DateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if ph.EndDate, err = time.Parse(domain.DateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	ph.CreatedAt, ph.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr)
	if err != nil {
		return nil, err
	}
	return &ph, nil
}
