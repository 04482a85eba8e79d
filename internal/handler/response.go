package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
	"github.com/ridwanfathin/invoice-document-service/internal/logger"
	"github.com/ridwanfathin/invoice-document-service/internal/model"
)

// HTTP status codes as constants for consistency
const (
	StatusOK                    = http.StatusOK
	StatusBadRequest            = http.StatusBadRequest
	StatusNotFound              = http.StatusNotFound
	StatusRequestEntityTooLarge = http.StatusRequestEntityTooLarge
	StatusInternalServerError   = http.StatusInternalServerError
)

// Common error messages
const (
	ErrResourceNotFound = "Recurso não encontrado"
	ErrInternalServer   = "Erro interno do servidor"
	ErrUploadFailed     = "Erro interno ao processar o upload. Tente novamente mais tarde."
	ErrUploadTooLarge   = "Arquivos excedem o tamanho máximo permitido."
	ErrInvalidForm      = "Requisição de upload inválida."
	ErrUploadSucceeded  = "Upload concluído com sucesso!"
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, message string, details ...model.ErrorDetail) {
	response := model.ErrorResponse{
		Status:  http.StatusText(statusCode),
		Message: message,
		Details: details,
	}
	c.JSON(statusCode, response)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, StatusNotFound, message)
}

// respondInternalServerError sends a 500 Internal Server Error response
func respondInternalServerError(c *gin.Context, message string) {
	respondWithError(c, StatusInternalServerError, message)
}

// respondSuccess sends a standardized success response with data
func respondSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// respondOK sends a 200 OK response with data
func respondOK(c *gin.Context, data interface{}) {
	respondSuccess(c, StatusOK, data)
}

// respondUpload sends the upload envelope used by every /api/upload reply
func respondUpload(c *gin.Context, statusCode int, message string, data []domain.UploadResult) {
	c.JSON(statusCode, model.UploadResponse{
		Success: statusCode == StatusOK,
		Message: message,
		Data:    data,
	})
}

// NotFound handles unmatched routes
func NotFound(c *gin.Context) {
	respondNotFound(c, ErrResourceNotFound)
}

// Recovery turns panics into a logged 500 response
func Recovery(c *gin.Context, recovered any) {
	logger.FromContext(c.Request.Context(), nil).Error("panic recovered",
		zap.Any("panic", recovered),
		zap.String("path", c.Request.URL.Path),
	)
	respondInternalServerError(c, ErrInternalServer)
	c.Abort()
}
