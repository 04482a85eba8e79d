package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
	"github.com/ridwanfathin/invoice-document-service/internal/logger"
	"github.com/ridwanfathin/invoice-document-service/internal/metrics"
	"github.com/ridwanfathin/invoice-document-service/internal/querycache"
	"github.com/ridwanfathin/invoice-document-service/internal/repository"
)

// Mode selects the query strategy
type Mode string

const (
	// ModeDatabasePrimary tries the legacy database first and falls back to the filesystem
	ModeDatabasePrimary Mode = "DB_PRIMARY"
	// ModeFilesystemOnly answers every query from the image index
	ModeFilesystemOnly Mode = "FS_ONLY"
)

// DocumentServiceError represents an error in the document service
type DocumentServiceError struct {
	Op  string
	Err error
}

func (e *DocumentServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *DocumentServiceError) Unwrap() error {
	return e.Err
}

// DocumentService is the single entry point for invoice document lookups
type DocumentService interface {
	// ListDocuments returns the invoices matching the filter. Data source
	// failures degrade to filesystem results and are never returned.
	ListDocuments(ctx context.Context, filter domain.DocumentFilter) []domain.InvoiceRecord

	// Mode returns the configured query strategy
	Mode() Mode
}

// DocumentServiceImpl implements the DocumentService interface
type DocumentServiceImpl struct {
	database   repository.InvoiceRepository
	filesystem repository.InvoiceRepository
	cache      *querycache.Cache
	mode       Mode
	logger     *zap.Logger
}

// NewDocumentService creates a new DocumentService. A nil database reader forces filesystem-only mode.
func NewDocumentService(database, filesystem repository.InvoiceRepository, cache *querycache.Cache, useDatabase bool, log *zap.Logger) DocumentService {
	mode := ModeFilesystemOnly
	if useDatabase && database != nil {
		mode = ModeDatabasePrimary
	}
	if cache == nil {
		cache = querycache.New(querycache.DefaultTTL)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentServiceImpl{
		database:   database,
		filesystem: filesystem,
		cache:      cache,
		mode:       mode,
		logger:     log.Named("documents"),
	}
}

// Mode returns the configured query strategy
func (s *DocumentServiceImpl) Mode() Mode {
	return s.mode
}

// ListDocuments returns cached results when fresh, otherwise queries the
// database (when enabled) and falls back to the filesystem on any failure
func (s *DocumentServiceImpl) ListDocuments(ctx context.Context, filter domain.DocumentFilter) []domain.InvoiceRecord {
	filter = filter.Trimmed()
	key := querycache.Key(filter)

	if documents, ok := s.cache.Get(key); ok {
		return documents
	}

	documents := s.query(ctx, filter)
	s.cache.Set(key, documents)
	return documents
}

func (s *DocumentServiceImpl) query(ctx context.Context, filter domain.DocumentFilter) []domain.InvoiceRecord {
	log := logger.FromContext(ctx, s.logger)

	if s.mode == ModeDatabasePrimary {
		documents, err := s.database.ListInvoices(ctx, filter)
		if err == nil {
			metrics.DocumentQueriesTotal.WithLabelValues("database").Inc()
			return documents
		}
		metrics.DatabaseFallbacksTotal.Inc()
		log.Warn("legacy database query failed, using filesystem index",
			zap.String("invoice", filter.Invoice),
			zap.String("date", filter.Date),
			zap.Bool("unavailable", repository.IsUnavailable(err)),
			zap.Error(&DocumentServiceError{Op: "query_database", Err: err}),
		)
	}

	documents, err := s.filesystem.ListInvoices(ctx, filter)
	if err != nil {
		log.Error("filesystem query failed", zap.Error(&DocumentServiceError{Op: "query_filesystem", Err: err}))
		return []domain.InvoiceRecord{}
	}
	metrics.DocumentQueriesTotal.WithLabelValues("filesystem").Inc()
	return documents
}
