package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. The profile table holds a single
// row pinned to id = 1; skills are stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context) (Profile, error) {
	const query = `SELECT resume_text, skills, last_updated FROM profile WHERE id = 1`
	var (
		p         Profile
		rawSkills []byte
	)
	if err := r.DB.QueryRowContext(ctx, query).Scan(&p.ResumeText, &rawSkills, &p.LastUpdated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if err := json.Unmarshal(rawSkills, &p.Skills); err != nil {
		return Profile{}, fmt.Errorf("decode profile skills: %w", err)
	}
	return p, nil
}

func (r *PGRepo) Save(ctx context.Context, p Profile) error {
	const query = `
INSERT INTO profile (id, resume_text, skills, last_updated)
VALUES (1, $1, $2, $3)
ON CONFLICT (id) DO UPDATE SET
    resume_text  = EXCLUDED.resume_text,
    skills       = EXCLUDED.skills,
    last_updated = EXCLUDED.last_updated`
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	rawSkills, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("encode profile skills: %w", err)
	}
	if p.LastUpdated.IsZero() {
		p.LastUpdated = time.Now().UTC()
	}
	_, err = r.DB.ExecContext(ctx, query, p.ResumeText, rawSkills, p.LastUpdated)
	return err
}

func (r *PGRepo) Clear(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM profile WHERE id = 1`)
	return err
}
