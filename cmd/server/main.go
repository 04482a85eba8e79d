package main

import (
	"log"

	"go.uber.org/zap"

	_ "github.com/ridwanfathin/invoice-document-service/docs"
	"github.com/ridwanfathin/invoice-document-service/internal/config"
	"github.com/ridwanfathin/invoice-document-service/internal/database"
	"github.com/ridwanfathin/invoice-document-service/internal/handler"
	"github.com/ridwanfathin/invoice-document-service/internal/imageindex"
	"github.com/ridwanfathin/invoice-document-service/internal/imageutil"
	"github.com/ridwanfathin/invoice-document-service/internal/logger"
	"github.com/ridwanfathin/invoice-document-service/internal/metrics"
	"github.com/ridwanfathin/invoice-document-service/internal/querycache"
	"github.com/ridwanfathin/invoice-document-service/internal/repository"
	"github.com/ridwanfathin/invoice-document-service/internal/server"
	"github.com/ridwanfathin/invoice-document-service/internal/service"
	"github.com/ridwanfathin/invoice-document-service/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	metrics.Register()

	// Image index over the upload share
	images := imageindex.NewBuilder(imageindex.Config{
		Root:    cfg.BaseUploadPath,
		BaseURL: cfg.PublicBaseURL,
		TTL:     cfg.ImageIndexTTL,
	}, appLogger)

	// Legacy database reader, only when enabled and correctly configured
	legacyDB := database.NewLegacyDB(cfg.DBDriver, cfg.DBDSN)
	defer legacyDB.Close()

	var databaseRepo repository.InvoiceRepository
	if cfg.UseDatabase {
		repo, err := repository.NewLegacyInvoiceRepository(legacyDB, images, repository.LegacyTableConfig{
			Schema:         cfg.DBSchema,
			Table:          cfg.DBTable,
			SeriesColumn:   cfg.DBSeriesColumn,
			NumberColumn:   cfg.DBNumberColumn,
			CustomerColumn: cfg.DBCustomerColumn,
			DateColumn:     cfg.DBDateColumn,
			SeriesFilter:   cfg.DBSeriesFilter,
		}, appLogger)
		if err != nil {
			appLogger.Error("legacy database disabled", zap.Error(err))
		} else {
			databaseRepo = repo
		}
	}

	cache := querycache.New(cfg.QueryCacheTTL)
	documentService := service.NewDocumentService(
		databaseRepo,
		repository.NewFilesystemInvoiceRepository(images),
		cache,
		cfg.UseDatabase,
		appLogger,
	)
	appLogger.Info("document service ready",
		zap.String("mode", string(documentService.Mode())),
		zap.String("driver", legacyDB.Driver()),
		zap.String("upload_path", cfg.BaseUploadPath),
	)

	// Optional S3 mirror for uploaded photos
	var mirror service.Mirror
	s3Config := &storage.Config{
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		AccessKeySecret: cfg.S3AccessKeySecret,
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Prefix:          cfg.S3Prefix,
	}
	if s3Config.Enabled() {
		uploader, err := storage.NewS3Uploader(s3Config)
		if err != nil {
			appLogger.Error("upload mirror disabled", zap.Error(err))
		} else {
			mirror = uploader
			appLogger.Info("upload mirror enabled", zap.String("bucket", cfg.S3Bucket))
		}
	}

	uploadService := service.NewUploadService(images, mirror, &imageutil.ResizeConfig{
		MaxWidth:     cfg.UploadMaxWidth,
		Quality:      cfg.UploadJPEGQuality,
		OutputFormat: "jpeg",
	}, cfg.MaxWorkers, appLogger)

	// Create and configure server
	appServer := server.NewServer(cfg, appLogger, server.Handlers{
		Documents: handler.NewDocumentHandler(documentService),
		Uploads:   handler.NewUploadHandler(uploadService, cfg.MaxUploadSize),
		Health:    handler.NewHealthHandler(documentService, images, cache),
	})

	// Start server (blocking call)
	if err := appServer.Start(); err != nil {
		appLogger.Fatal("server error", zap.Error(err))
	}

	appLogger.Info("server shutdown complete")
}
