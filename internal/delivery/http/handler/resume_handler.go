package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc        usecase.ResumeUsecase
	uploadDir string
}

type analyzeResumeRequest struct {
	Text string `json:"text"`
}

func NewResumeHandler(uc usecase.ResumeUsecase, uploadDir string) *ResumeHandler {
	if strings.TrimSpace(uploadDir) == "" {
		uploadDir = "uploads"
	}
	return &ResumeHandler{uc: uc, uploadDir: uploadDir}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/upload", h.Upload)
	r.Get("/", h.List)
	r.Post("/:id/analyze", h.Analyze)
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "A resume file is required.", err)
	}
	if fh.Header.Get("Content-Type") != "application/pdf" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Only PDF files allowed!", nil)
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fh.Filename))
	if err := h.saveFile(fh, filename); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "Server error during upload", err)
	}

	id, err := h.uc.Upload(c.Context(), usecase.UploadInput{
		UserID:       userID,
		Filename:     filename,
		OriginalName: fh.Filename,
	})
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, dto.ResumeUploadResponse{
		ID:      id,
		Message: "Resume uploaded successfully!",
		File:    filename,
	})
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	resumes, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	out := make([]dto.ResumeListItemResponse, 0, len(resumes))
	for _, r := range resumes {
		out = append(out, dto.ResumeListItemResponse{
			ID:           r.ID,
			OriginalName: r.OriginalName,
			UploadedAt:   r.UploadedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, out)
}

func (h *ResumeHandler) Analyze(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	resumeID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || resumeID <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}

	var req analyzeResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume text is required.", nil)
	}

	analysis, err := h.uc.Analyze(c.Context(), userID, resumeID, req.Text)
	if err != nil {
		return mapResumeUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, dto.ResumeAnalysisResponse{
		ID:       resumeID,
		Analysis: analysis,
	})
}

func (h *ResumeHandler) saveFile(fh *multipart.FileHeader, filename string) error {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return err
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func mapResumeUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", err)
	case errors.Is(err, usecase.ErrResumeNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume not found", err)
	case errors.Is(err, usecase.ErrReasoningFailed):
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to analyze resume.", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
