package repository

import (
	"context"
	"encoding/json"
	"time"

	"resume-match/internal/database"
)

type MatchRow struct {
	JobID      int64
	Title      string
	MatchScore int
	Reasoning  json.RawMessage
}

type MatchInsert struct {
	ResumeID   int64
	JobID      int64
	MatchScore int
	Reasoning  json.RawMessage
	CreatedAt  time.Time
}

type MatchRepository interface {
	// FindByResume returns previously computed matches joined with the
	// job title, highest score first. An empty slice means the resume
	// has not been matched yet.
	FindByResume(ctx context.Context, resumeID int64) ([]MatchRow, error)
	Insert(ctx context.Context, m MatchInsert) error
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) FindByResume(ctx context.Context, resumeID int64) ([]MatchRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.job_id, COALESCE(j.title, ''), m.match_score, m.reasoning
		 FROM matches m
		 JOIN jobs j ON m.job_id = j.id
		 WHERE m.resume_id = $1
		 ORDER BY m.match_score DESC`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchRow, 0)
	for rows.Next() {
		var m MatchRow
		if err := rows.Scan(&m.JobID, &m.Title, &m.MatchScore, &m.Reasoning); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Insert is idempotent: a concurrent request that already stored the
// same (resume_id, job_id) pair leaves the existing row untouched.
func (r *PostgresMatchRepository) Insert(ctx context.Context, m MatchInsert) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO matches (resume_id, job_id, match_score, reasoning, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (resume_id, job_id) DO NOTHING`,
		m.ResumeID,
		m.JobID,
		m.MatchScore,
		string(m.Reasoning), // jsonb, not bytea
		m.CreatedAt,
	)
	return err
}

var _ MatchRepository = (*PostgresMatchRepository)(nil)
