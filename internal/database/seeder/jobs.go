package seeder

import (
	"context"
	"errors"

	"resume-match/internal/database"
)

type defaultJob struct {
	title          string
	description    string
	skillsRequired string
}

var defaultJobs = []defaultJob{
	{"Backend Engineer", "Design and run Go services with PostgreSQL.", "go,postgresql,docker,rest"},
	{"Frontend Engineer", "Build and ship React interfaces.", "javascript,react,css,html"},
	{"Full Stack Developer", "Own features end to end across Node and React.", "node,react,sql,typescript"},
	{"Data Engineer", "Build batch and streaming data pipelines.", "python,sql,spark,airflow"},
	{"DevOps Engineer", "Keep CI/CD and Kubernetes clusters healthy.", "kubernetes,terraform,aws,ci/cd"},
	{"Mobile Developer", "Develop cross-platform mobile applications.", "flutter,dart,rest"},
	{"Machine Learning Engineer", "Train and serve ML models in production.", "python,pytorch,mlops,sql"},
	{"QA Engineer", "Automate regression and integration testing.", "selenium,python,testing"},
}

// SeedJobs populates the job catalog on first boot. A non-empty table
// is left untouched.
func SeedJobs(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, j := range defaultJobs {
		if _, err := db.Exec(ctx,
			`INSERT INTO jobs (title, description, skills_required) VALUES ($1, $2, $3)`,
			j.title, j.description, j.skillsRequired,
		); err != nil {
			return err
		}
	}
	return nil
}
