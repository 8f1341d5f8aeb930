package dto

import (
	"encoding/json"
	"time"
)

type ResumeListItemResponse struct {
	ID           int64     `json:"id"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type ResumeUploadResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	File    string `json:"file"`
}

type ResumeAnalysisResponse struct {
	ID       int64           `json:"id"`
	Analysis json.RawMessage `json:"analysis"`
}
