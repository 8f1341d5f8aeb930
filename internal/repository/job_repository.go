package repository

import (
	"context"

	"resume-match/internal/database"
)

type Job struct {
	ID             int64
	Title          string
	Description    string
	SkillsRequired string
}

type JobRepository interface {
	ListAll(ctx context.Context) ([]Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ListAll(ctx context.Context) ([]Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(description, ''), COALESCE(skills_required, '')
		 FROM jobs`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.SkillsRequired); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ JobRepository = (*PostgresJobRepository)(nil)
