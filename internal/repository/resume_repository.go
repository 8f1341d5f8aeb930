package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"resume-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrResumeNotFound = errors.New("resume not found")

type Resume struct {
	ID           int64
	UserID       uuid.UUID
	Filename     string
	OriginalName string
	UploadedAt   time.Time
}

type ResumeCreate struct {
	UserID       uuid.UUID
	Filename     string
	OriginalName string
}

type ResumeRepository interface {
	Create(ctx context.Context, r ResumeCreate) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Resume, error)
	// FindAnalysisByID returns the stored analysis document, which is
	// nil when the resume exists but has not been analyzed yet.
	FindAnalysisByID(ctx context.Context, resumeID int64) (json.RawMessage, error)
	SaveAnalysis(ctx context.Context, resumeID int64, analysis json.RawMessage) error
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) Create(ctx context.Context, in ResumeCreate) (int64, error) {
	var id int64
	row := r.db.QueryRow(ctx,
		`INSERT INTO resumes (user_id, filename, original_name) VALUES ($1, $2, $3) RETURNING id`,
		in.UserID, in.Filename, in.OriginalName,
	)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresResumeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, filename, original_name, uploaded_at
		 FROM resumes
		 WHERE user_id = $1
		 ORDER BY uploaded_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		var res Resume
		if err := rows.Scan(&res.ID, &res.UserID, &res.Filename, &res.OriginalName, &res.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) FindAnalysisByID(ctx context.Context, resumeID int64) (json.RawMessage, error) {
	var analysis []byte
	row := r.db.QueryRow(ctx, `SELECT analysis_result FROM resumes WHERE id = $1`, resumeID)
	if err := row.Scan(&analysis); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return analysis, nil
}

func (r *PostgresResumeRepository) SaveAnalysis(ctx context.Context, resumeID int64, analysis json.RawMessage) error {
	n, err := r.db.Exec(ctx,
		`UPDATE resumes SET analysis_result = $2 WHERE id = $1`,
		resumeID, string(analysis),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResumeNotFound
	}
	return nil
}

var _ ResumeRepository = (*PostgresResumeRepository)(nil)
