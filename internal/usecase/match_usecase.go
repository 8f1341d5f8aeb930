package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"resume-match/internal/domain/matching"
	"resume-match/internal/infrastructure/ai"
	"resume-match/internal/repository"
)

const (
	topJobsLimit = 10
	matchLockTTL = 90 * time.Second
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrResumeNotFound  = errors.New("resume not found")
	ErrNoSkills        = errors.New("resume has no extracted skills")
	ErrReasoningFailed = errors.New("failed to match jobs")
	ErrInternal        = errors.New("internal error")
)

// ReasoningService produces a JSON text answer for a single prompt.
type ReasoningService interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// MatchLocker serializes concurrent cache misses for the same resume.
// A nil locker disables serialization; inserts stay idempotent either way.
type MatchLocker interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

type MatchResult struct {
	JobID          int64
	Title          string
	MatchScore     int
	SkillsRequired []string // only populated on a fresh computation
	Reasoning      matching.Reasoning
}

type MatchUsecase interface {
	MatchJobs(ctx context.Context, resumeID int64) ([]MatchResult, error)
}

type Match struct {
	resumes  repository.ResumeRepository
	jobs     repository.JobRepository
	matches  repository.MatchRepository
	reasoner ReasoningService
	locker   MatchLocker
	logger   *log.Logger
}

func NewMatchUsecase(
	resumes repository.ResumeRepository,
	jobs repository.JobRepository,
	matches repository.MatchRepository,
	reasoner ReasoningService,
	locker MatchLocker,
	logger *log.Logger,
) *Match {
	if logger == nil {
		logger = log.Default()
	}
	return &Match{
		resumes:  resumes,
		jobs:     jobs,
		matches:  matches,
		reasoner: reasoner,
		locker:   locker,
		logger:   logger,
	}
}

func (u *Match) MatchJobs(ctx context.Context, resumeID int64) ([]MatchResult, error) {
	if resumeID <= 0 {
		return nil, ErrInvalidInput
	}

	cached, err := u.matches.FindByResume(ctx, resumeID)
	if err != nil {
		u.logger.Printf("[Match] cache read failed resume=%d: %v", resumeID, err)
		return nil, ErrInternal
	}
	if len(cached) > 0 {
		return u.fromCache(cached), nil
	}

	skills, err := u.loadSkills(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	jobs, err := u.jobs.ListAll(ctx)
	if err != nil {
		u.logger.Printf("[Match] job catalog read failed: %v", err)
		return nil, ErrInternal
	}

	top := rankJobs(skills, jobs)
	if len(top) == 0 {
		return []MatchResult{}, nil
	}

	if u.locker != nil {
		key := "matches:lock:" + strconv.FormatInt(resumeID, 10)
		acquired, _ := u.locker.SetIfNotExists(ctx, key, "1", matchLockTTL)
		if acquired {
			defer func() { _ = u.locker.Delete(context.WithoutCancel(ctx), key) }()
		}
		// a concurrent request may have just populated the cache
		cached, err := u.matches.FindByResume(ctx, resumeID)
		if err == nil && len(cached) > 0 {
			return u.fromCache(cached), nil
		}
	}

	raw, err := u.reasoner.GenerateJSON(ctx, buildMatchPrompt(skills, top))
	if err != nil {
		u.logger.Printf("[Match] reasoning call failed resume=%d: %v", resumeID, err)
		return nil, ErrReasoningFailed
	}

	parsed, perr := ai.SanitizeJSON(raw)
	if perr != nil {
		u.logger.Printf("[Match] reasoning parse failed resume=%d: sample=%q", resumeID, perr.RawTextSample)
		return nil, ErrReasoningFailed
	}

	entries := map[string]json.RawMessage{}
	if err := json.Unmarshal(parsed, &entries); err != nil {
		// valid JSON but not an object keyed by job id; every job
		// falls back below
		u.logger.Printf("[Match] unexpected reasoning shape resume=%d: %v", resumeID, err)
	}

	results := make([]MatchResult, 0, len(top))
	for _, cand := range top {
		reasoning := reasoningForJob(entries, cand.JobID)

		b, err := json.Marshal(reasoning)
		if err != nil {
			return nil, ErrInternal
		}
		if err := u.matches.Insert(ctx, repository.MatchInsert{
			ResumeID:   resumeID,
			JobID:      cand.JobID,
			MatchScore: cand.MatchScore,
			Reasoning:  b,
		}); err != nil {
			u.logger.Printf("[Match] persist failed resume=%d job=%d: %v", resumeID, cand.JobID, err)
			return nil, ErrInternal
		}

		results = append(results, MatchResult{
			JobID:          cand.JobID,
			Title:          cand.Title,
			MatchScore:     cand.MatchScore,
			SkillsRequired: cand.SkillsRequired,
			Reasoning:      reasoning,
		})
	}

	return results, nil
}

func (u *Match) loadSkills(ctx context.Context, resumeID int64) ([]string, error) {
	analysis, err := u.resumes.FindAnalysisByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return nil, ErrResumeNotFound
		}
		u.logger.Printf("[Match] resume read failed id=%d: %v", resumeID, err)
		return nil, ErrInternal
	}
	if len(analysis) == 0 {
		return nil, ErrNoSkills
	}

	var doc struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal(analysis, &doc); err != nil {
		return nil, ErrNoSkills
	}
	if len(doc.Skills) == 0 {
		return nil, ErrNoSkills
	}
	return doc.Skills, nil
}

func (u *Match) fromCache(rows []repository.MatchRow) []MatchResult {
	out := make([]MatchResult, 0, len(rows))
	for _, row := range rows {
		var r matching.Reasoning
		if err := json.Unmarshal(row.Reasoning, &r); err != nil || r.Reasoning == "" {
			r = matching.FallbackReasoning()
		}
		if r.FitSkills == nil {
			r.FitSkills = []string{}
		}
		if r.MissingSkills == nil {
			r.MissingSkills = []string{}
		}
		out = append(out, MatchResult{
			JobID:      row.JobID,
			Title:      row.Title,
			MatchScore: row.MatchScore,
			Reasoning:  r,
		})
	}
	return out
}

type topJobCandidate struct {
	JobID          int64    `json:"job_id"`
	Title          string   `json:"title"`
	MatchScore     int      `json:"match_score"`
	SkillsRequired []string `json:"skills_required"`
}

func rankJobs(skills []string, jobs []repository.Job) []topJobCandidate {
	cands := make([]topJobCandidate, 0, len(jobs))
	for _, j := range jobs {
		required := matching.ParseRequiredSkills(j.SkillsRequired)
		cands = append(cands, topJobCandidate{
			JobID:          j.ID,
			Title:          j.Title,
			MatchScore:     matching.SimilarityScore(skills, required),
			SkillsRequired: required,
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].MatchScore > cands[j].MatchScore
	})

	if len(cands) > topJobsLimit {
		cands = cands[:topJobsLimit]
	}
	return cands
}

func buildMatchPrompt(skills []string, top []topJobCandidate) string {
	jobsJSON, _ := json.Marshal(top)
	return fmt.Sprintf(
		"Candidate Skills: [%s]\n\nJobs to analyze:\n%s\n\nRespond ONLY as JSON format:\n{ job_id:{ reasoning, fit_skills, missing_skills } }",
		strings.Join(skills, ", "),
		jobsJSON,
	)
}

func reasoningForJob(entries map[string]json.RawMessage, jobID int64) matching.Reasoning {
	entry, ok := entries[strconv.FormatInt(jobID, 10)]
	if !ok {
		return matching.FallbackReasoning()
	}

	var r matching.Reasoning
	if err := json.Unmarshal(entry, &r); err != nil {
		return matching.FallbackReasoning()
	}
	if r.FitSkills == nil {
		r.FitSkills = []string{}
	}
	if r.MissingSkills == nil {
		r.MissingSkills = []string{}
	}
	return r
}
