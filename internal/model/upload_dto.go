package model

import "github.com/ridwanfathin/invoice-document-service/internal/domain"

// UploadResponse is the body of every /api/upload reply
type UploadResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    []domain.UploadResult `json:"data,omitempty"`
}
