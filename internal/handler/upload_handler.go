package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-document-service/internal/logger"
	"github.com/ridwanfathin/invoice-document-service/internal/service"
)

// UploadHandler handles photo uploads for invoices
type UploadHandler struct {
	uploadService service.UploadService
	maxUploadSize int64
}

// NewUploadHandler creates a new upload handler. maxUploadSize <= 0 disables the limit.
func NewUploadHandler(uploadService service.UploadService, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxUploadSize: maxUploadSize,
	}
}

// Upload handles the POST /api/upload endpoint
// @Summary Upload invoice photos
// @Description Stores conference, load and receipt photos for an invoice. Each file is resized and saved under its category directory.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param documentNumber formData string true "Invoice number in SS-NNNNNN format"
// @Param conferencia formData file false "Conference photo"
// @Param placa formData file false "License plate photo"
// @Param carga1 formData file false "First load photo"
// @Param carga2 formData file false "Second load photo"
// @Param canhoto formData file false "Signed receipt photo"
// @Success 200 {object} model.UploadResponse "Per-file results"
// @Failure 400 {object} model.UploadResponse "Validation error"
// @Failure 413 {object} model.UploadResponse "Request too large"
// @Failure 500 {object} model.UploadResponse "Internal server error"
// @Router /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), nil)

	form, err := parseMultipartForm(c, h.maxUploadSize)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			respondUpload(c, StatusRequestEntityTooLarge, ErrUploadTooLarge, nil)
			return
		}
		log.Warn("failed to parse upload form", zap.Error(err))
		respondUpload(c, StatusBadRequest, ErrInvalidForm, nil)
		return
	}

	files, err := collectUploadFiles(form)
	if err != nil {
		log.Error("failed to read uploaded files", zap.Error(err))
		respondUpload(c, StatusInternalServerError, ErrUploadFailed, nil)
		return
	}

	documentNumber := ""
	if values := form.Value["documentNumber"]; len(values) > 0 {
		documentNumber = strings.TrimSpace(values[0])
	}

	results, err := h.uploadService.HandleUpload(c.Request.Context(), documentNumber, files)
	if err != nil {
		var uploadErr *service.UploadError
		if errors.As(err, &uploadErr) {
			if uploadErr.StatusCode >= StatusInternalServerError {
				log.Error("upload failed", zap.Error(err))
			}
			respondUpload(c, uploadErr.StatusCode, uploadErr.UserMessage, nil)
			return
		}
		log.Error("upload failed", zap.Error(err))
		respondUpload(c, StatusInternalServerError, ErrUploadFailed, nil)
		return
	}

	respondUpload(c, StatusOK, ErrUploadSucceeded, results)
}
