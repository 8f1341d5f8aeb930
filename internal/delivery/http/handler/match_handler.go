package handler

import (
	"errors"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

type matchJobsRequest struct {
	ResumeID int64 `json:"resume_id"`
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/job-matches", h.MatchJobs)
}

func (h *MatchHandler) MatchJobs(c fiber.Ctx) error {
	if _, ok := middleware.UserIDFromCtx(c); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	var req matchJobsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "resume_id is required.", err)
	}
	if req.ResumeID <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "resume_id is required.", nil)
	}

	results, err := h.uc.MatchJobs(c.Context(), req.ResumeID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := make([]dto.MatchItemResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.MatchItemResponse{
			JobID:          r.JobID,
			Title:          r.Title,
			MatchScore:     r.MatchScore,
			SkillsRequired: r.SkillsRequired,
			Reasoning:      r.Reasoning.Reasoning,
			FitSkills:      r.Reasoning.FitSkills,
			MissingSkills:  r.Reasoning.MissingSkills,
		})
	}

	return response.Success(c, fiber.StatusOK, out)
}

func mapMatchUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "resume_id is required.", err)
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", err)
	case errors.Is(err, usecase.ErrNoSkills):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume has no extracted skills.", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to match jobs.", err)
	}
}
