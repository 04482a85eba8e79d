package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
	"github.com/ridwanfathin/invoice-document-service/internal/imageutil"
	"github.com/ridwanfathin/invoice-document-service/internal/logger"
	"github.com/ridwanfathin/invoice-document-service/internal/metrics"
)

// jpegExtensions are the names a re-encoded JPEG may keep
var jpegExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {},
}

// UploadError is returned when an upload request cannot be processed at all
type UploadError struct {
	StatusCode  int
	UserMessage string
	Err         error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

// Unwrap returns the underlying error
func (e *UploadError) Unwrap() error {
	return e.Err
}

// ImageStore locates category directories and refreshes the image index
type ImageStore interface {
	Directory(category domain.Category) string
	URLFor(category domain.Category, filename string) string
	Invalidate()
}

// Mirror copies stored photos to secondary storage
type Mirror interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// UploadService stores categorized invoice photos on the upload share
type UploadService interface {
	HandleUpload(ctx context.Context, documentNumber string, files []domain.UploadFile) ([]domain.UploadResult, error)
}

// UploadServiceImpl implements the UploadService interface
type UploadServiceImpl struct {
	images     ImageStore
	mirror     Mirror
	resize     *imageutil.ResizeConfig
	workerPool chan struct{}
	logger     *zap.Logger
}

// NewUploadService creates a new UploadService. mirror may be nil.
func NewUploadService(images ImageStore, mirror Mirror, resize *imageutil.ResizeConfig, maxWorkers int, log *zap.Logger) UploadService {
	if resize == nil {
		resize = imageutil.DefaultConfig()
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &UploadServiceImpl{
		images:     images,
		mirror:     mirror,
		resize:     resize,
		workerPool: make(chan struct{}, maxWorkers),
		logger:     log.Named("upload"),
	}
}

// HandleUpload validates the invoice number, then resizes and writes each
// recognized photo. Per-file failures are reported in the results.
func (s *UploadServiceImpl) HandleUpload(ctx context.Context, documentNumber string, files []domain.UploadFile) ([]domain.UploadResult, error) {
	documentNumber = strings.TrimSpace(documentNumber)
	if documentNumber == "" {
		return nil, &UploadError{StatusCode: http.StatusBadRequest, UserMessage: "O campo documentNumber é obrigatório."}
	}
	if !domain.IsStrictKey(documentNumber) {
		return nil, &UploadError{StatusCode: http.StatusBadRequest, UserMessage: "Formato inválido. Use o formato XX-XXXXXX."}
	}
	if len(files) == 0 {
		return nil, &UploadError{StatusCode: http.StatusBadRequest, UserMessage: "Nenhum arquivo foi enviado."}
	}

	if err := s.ensureDirectories(); err != nil {
		return nil, &UploadError{
			StatusCode:  http.StatusInternalServerError,
			UserMessage: "Erro interno ao processar o upload. Tente novamente mais tarde.",
			Err:         err,
		}
	}

	// Acquire worker from pool
	select {
	case s.workerPool <- struct{}{}:
		defer func() {
			<-s.workerPool
		}()
	case <-ctx.Done():
		return nil, &UploadError{
			StatusCode:  http.StatusServiceUnavailable,
			UserMessage: "Tempo de espera excedido. Tente novamente.",
			Err:         ctx.Err(),
		}
	}

	log := logger.FromContext(ctx, s.logger)
	seen := make(map[string]bool, len(files))
	results := make([]domain.UploadResult, 0, len(files))
	saved := 0

	for _, file := range files {
		category, ok := domain.CategoryForField(file.Field)
		if !ok || seen[file.Field] {
			continue
		}
		seen[file.Field] = true

		result := s.saveFile(ctx, log, file, category, documentNumber)
		metrics.UploadedFilesTotal.WithLabelValues(string(category), result.Status).Inc()
		if result.Status == domain.UploadStatusOK {
			saved++
		}
		results = append(results, result)
	}

	if saved > 0 {
		s.images.Invalidate()
	}

	return results, nil
}

func (s *UploadServiceImpl) saveFile(ctx context.Context, log *zap.Logger, file domain.UploadFile, category domain.Category, documentNumber string) domain.UploadResult {
	fileName := fmt.Sprintf("%s_%s%s", documentNumber, file.Field, storedExtension(file.Filename, s.resize))
	outputPath := filepath.Join(s.images.Directory(category), fileName)

	data, err := imageutil.ResizeImage(file.Data, s.resize)
	if err != nil {
		log.Warn("failed to process photo", zap.String("file", file.Filename), zap.Error(err))
		return domain.UploadResult{File: file.Filename, Status: domain.UploadStatusError, Error: err.Error()}
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		log.Error("failed to write photo", zap.String("path", outputPath), zap.Error(err))
		return domain.UploadResult{File: file.Filename, Status: domain.UploadStatusError, Error: err.Error()}
	}

	if s.mirror != nil {
		key := path.Join(string(category), fileName)
		if _, err := s.mirror.Put(ctx, key, data, contentType(s.resize)); err != nil {
			log.Warn("failed to mirror photo", zap.String("key", key), zap.Error(err))
		}
	}

	log.Info("photo stored",
		zap.String("invoice", documentNumber),
		zap.String("category", string(category)),
		zap.String("file", fileName),
	)

	return domain.UploadResult{
		Category: category,
		File:     fileName,
		Path:     outputPath,
		URL:      s.images.URLFor(category, fileName),
		Status:   domain.UploadStatusOK,
	}
}

func (s *UploadServiceImpl) ensureDirectories() error {
	for _, category := range domain.Categories {
		if err := os.MkdirAll(s.images.Directory(category), 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", category, err)
		}
	}
	return nil
}

// storedExtension names the file after the encoded output so static serving
// reports the right content type. JPEG output keeps a .jpeg spelling.
func storedExtension(filename string, cfg *imageutil.ResizeConfig) string {
	if cfg != nil && cfg.OutputFormat == "png" {
		return ".png"
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := jpegExtensions[ext]; ok {
		return ext
	}
	return ".jpg"
}

func contentType(cfg *imageutil.ResizeConfig) string {
	if cfg != nil && cfg.OutputFormat == "png" {
		return "image/png"
	}
	return "image/jpeg"
}
