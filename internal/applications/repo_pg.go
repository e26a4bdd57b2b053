package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The full application document is
// stored as a jsonb payload; company, position, status and stage are
// denormalized for indexing.
type PGRepo struct {
	DB *sql.DB
}

// List returns all applications, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Application, error) {
	const query = `SELECT payload FROM applications ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var app Application
		if err := json.Unmarshal(payload, &app); err != nil {
			return nil, fmt.Errorf("decode application payload: %w", err)
		}
		apps = append(apps, migrate(app))
	}
	return apps, rows.Err()
}

// Get returns an application by its ID.
func (r *PGRepo) Get(ctx context.Context, id string) (Application, error) {
	const query = `SELECT payload FROM applications WHERE id = $1`
	var payload []byte
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	var app Application
	if err := json.Unmarshal(payload, &app); err != nil {
		return Application{}, fmt.Errorf("decode application payload: %w", err)
	}
	return migrate(app), nil
}

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (id, company, position, status, stage, payload, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	payload, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		app.ID,
		app.JobPosting.Company,
		app.JobPosting.Title,
		app.Status,
		string(app.Stage),
		payload,
		app.CreatedAt,
		app.UpdatedAt,
	)
	return err
}

// Update replaces an existing application.
func (r *PGRepo) Update(ctx context.Context, app Application) error {
	const query = `
UPDATE applications
SET company = $2, position = $3, status = $4, stage = $5, payload = $6, updated_at = $7
WHERE id = $1`
	payload, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, query,
		app.ID,
		app.JobPosting.Company,
		app.JobPosting.Title,
		app.Status,
		string(app.Stage),
		payload,
		app.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an application.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
