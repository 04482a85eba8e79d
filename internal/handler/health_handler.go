package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ridwanfathin/invoice-document-service/internal/imageindex"
	"github.com/ridwanfathin/invoice-document-service/internal/model"
	"github.com/ridwanfathin/invoice-document-service/internal/service"
)

// IndexStats reports the state of the image index
type IndexStats interface {
	Stats() imageindex.Stats
}

// CacheSize reports the number of cached query results
type CacheSize interface {
	Len() int
}

// HealthHandler reports service health
type HealthHandler struct {
	documentService service.DocumentService
	index           IndexStats
	cache           CacheSize
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(documentService service.DocumentService, index IndexStats, cache CacheSize) *HealthHandler {
	return &HealthHandler{
		documentService: documentService,
		index:           index,
		cache:           cache,
	}
}

// Health handles the GET /health endpoint
// @Summary Service health
// @Description Reports the query mode together with image index and cache state
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := model.HealthResponse{
		Status: "ok",
		Mode:   string(h.documentService.Mode()),
	}

	if h.index != nil {
		stats := h.index.Stats()
		response.Index = model.IndexStatsDTO{Entries: stats.Entries, Fresh: stats.Fresh}
		if !stats.BuiltAt.IsZero() {
			builtAt := stats.BuiltAt
			response.Index.BuiltAt = &builtAt
		}
	}
	if h.cache != nil {
		response.Cache = model.CacheStatsDTO{Entries: h.cache.Len()}
	}

	respondOK(c, response)
}
