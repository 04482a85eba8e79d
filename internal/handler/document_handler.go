package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
	"github.com/ridwanfathin/invoice-document-service/internal/model"
	"github.com/ridwanfathin/invoice-document-service/internal/service"
)

// DocumentHandler handles HTTP requests for invoice document lookups
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// ListDocuments handles the GET /api/documentos endpoint
// @Summary List invoice documents
// @Description Lists invoices with their photos per category. Uses the legacy database when available and the image share otherwise.
// @Tags documentos
// @Produce json
// @Param nota query string false "Invoice number, any of SS-NNNNNN, SSNNNNNN or SS.NNNNNN"
// @Param data query string false "Issue date prefix (YYYY-MM-DD)"
// @Success 200 {array} model.DocumentDTO "Matching documents, newest first"
// @Router /api/documentos [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	filter := domain.DocumentFilter{
		Invoice: getQueryAny(c, "nota", "invoice"),
		Date:    getQueryAny(c, "data", "date"),
	}

	records := h.documentService.ListDocuments(c.Request.Context(), filter)
	respondOK(c, model.DocumentsFromDomain(records))
}
