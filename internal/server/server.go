package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-document-service/internal/config"
	"github.com/ridwanfathin/invoice-document-service/internal/handler"
	"github.com/ridwanfathin/invoice-document-service/internal/metrics"
	"github.com/ridwanfathin/invoice-document-service/internal/middleware"
)

// shutdownTimeout bounds how long in-flight requests get to finish
const shutdownTimeout = 10 * time.Second

// Handlers groups the HTTP handlers served by the application
type Handlers struct {
	Documents *handler.DocumentHandler
	Uploads   *handler.UploadHandler
	Health    *handler.HealthHandler
}

// Server represents the HTTP server for the invoice document service
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	logger     *zap.Logger
}

// NewServer creates and configures a new server instance
func NewServer(cfg *config.Config, log *zap.Logger, handlers Handlers) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID(log))
	router.Use(gin.CustomRecovery(handler.Recovery))
	router.Use(middleware.CORS())
	router.Use(metrics.Middleware())
	router.Use(middleware.RequestResponseLogger(log, middleware.LoggerConfig{
		LogBodies: cfg.LogLevel == "debug",
	}))

	server := &Server{
		router: router,
		config: cfg,
		logger: log,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	server.setupRoutes(handlers)

	return server
}

// GetRouter returns the gin router instance
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// setupRoutes configures all application routes
func (s *Server) setupRoutes(handlers Handlers) {
	if handlers.Health != nil {
		s.router.GET("/health", handlers.Health.Health)
	} else {
		s.router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API documentation endpoints
	// Access the Swagger UI at http://localhost:3000/api-docs/index.html
	swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler)
	s.router.GET("/api-docs/*any", swaggerHandler)
	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})

	// Photos are served straight from the upload share under both prefixes
	s.router.Static("/uploads", s.config.BaseUploadPath)
	s.router.Static("/api/uploads", s.config.BaseUploadPath)

	api := s.router.Group("/api")
	if handlers.Documents != nil {
		api.GET("/documentos", handlers.Documents.ListDocuments)
	}
	if handlers.Uploads != nil {
		api.POST("/upload", handlers.Uploads.Upload)
	}

	s.router.NoRoute(handler.NotFound)
}

// Start begins listening for requests and handles graceful shutdown
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", zap.Int("port", s.config.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("server exited gracefully")
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}
