package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"resume-match/internal/repository"

	"github.com/google/uuid"
)

// ResumeExtractor turns raw resume text into the structured analysis
// document (skills, experience, education, project highlights).
type ResumeExtractor interface {
	ExtractResume(ctx context.Context, resumeText string) (json.RawMessage, error)
}

type UploadInput struct {
	UserID       uuid.UUID
	Filename     string
	OriginalName string
}

type ResumeUsecase interface {
	Upload(ctx context.Context, in UploadInput) (int64, error)
	List(ctx context.Context, userID uuid.UUID) ([]repository.Resume, error)
	Analyze(ctx context.Context, userID uuid.UUID, resumeID int64, text string) (json.RawMessage, error)
}

type Resume struct {
	resumes   repository.ResumeRepository
	extractor ResumeExtractor
	logger    *log.Logger
}

func NewResumeUsecase(resumes repository.ResumeRepository, extractor ResumeExtractor, logger *log.Logger) *Resume {
	if logger == nil {
		logger = log.Default()
	}
	return &Resume{resumes: resumes, extractor: extractor, logger: logger}
}

func (u *Resume) Upload(ctx context.Context, in UploadInput) (int64, error) {
	if in.UserID == uuid.Nil {
		return 0, ErrUnauthorized
	}
	if strings.TrimSpace(in.Filename) == "" || strings.TrimSpace(in.OriginalName) == "" {
		return 0, ErrInvalidInput
	}

	id, err := u.resumes.Create(ctx, repository.ResumeCreate{
		UserID:       in.UserID,
		Filename:     in.Filename,
		OriginalName: in.OriginalName,
	})
	if err != nil {
		u.logger.Printf("[Resume] create failed user=%s: %v", in.UserID, err)
		return 0, ErrInternal
	}
	return id, nil
}

func (u *Resume) List(ctx context.Context, userID uuid.UUID) ([]repository.Resume, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.resumes.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Printf("[Resume] list failed user=%s: %v", userID, err)
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Resume) Analyze(ctx context.Context, userID uuid.UUID, resumeID int64, text string) (json.RawMessage, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if resumeID <= 0 || strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}

	// the resume must exist before its analysis can be stored
	if _, err := u.resumes.FindAnalysisByID(ctx, resumeID); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, ErrInternal
	}

	analysis, err := u.extractor.ExtractResume(ctx, text)
	if err != nil {
		u.logger.Printf("[Resume] extraction failed resume=%d: %v", resumeID, err)
		return nil, ErrReasoningFailed
	}

	if err := u.resumes.SaveAnalysis(ctx, resumeID, analysis); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return nil, ErrResumeNotFound
		}
		u.logger.Printf("[Resume] save analysis failed resume=%d: %v", resumeID, err)
		return nil, ErrInternal
	}
	return analysis, nil
}
