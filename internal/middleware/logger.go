package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-document-service/internal/logger"
)

// maxLoggedBody caps how much of a request or response body ends up in a log line
const maxLoggedBody = 1000

// sensitiveFields contains patterns for fields that should be redacted
var sensitiveFields = []string{
	"password",
	"token",
	"api_key",
	"apikey",
	"api-key",
	"secret",
	"authorization",
	"auth",
	"bearer",
	"credential",
	"access_token",
	"refresh_token",
	"session",
	"cookie",
}

// sensitiveHeaderPatterns contains regex patterns for sensitive headers
var sensitiveHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)bearer`),
	regexp.MustCompile(`(?i)cookie`),
	regexp.MustCompile(`(?i)session`),
}

// responseWriter is a custom response writer to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.body.Len() < maxLoggedBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// LoggerConfig holds configuration for the logger middleware
type LoggerConfig struct {
	// LogBodies adds redacted request and response bodies to each line.
	// Multipart uploads are never captured.
	LogBodies bool
}

// RequestResponseLogger emits one structured line per request through the
// request-scoped zap logger
func RequestResponseLogger(base *zap.Logger, config LoggerConfig) gin.HandlerFunc {
	if base == nil {
		base = zap.NewNop()
	}

	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if config.LogBodies && c.Request.Body != nil && !isMultipart(c) {
			requestBody, _ = io.ReadAll(c.Request.Body)
			// Restore the body for the next handler
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		var captured *responseWriter
		if config.LogBodies {
			captured = &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
			c.Writer = captured
		}

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("response_bytes", c.Writer.Size()),
			zap.Any("headers", redactHeaders(c.Request.Header)),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(requestBody) > 0 {
			fields = append(fields, zap.Any("request_body", parseAndRedactBody(requestBody)))
		}
		if captured != nil && captured.body.Len() > 0 {
			fields = append(fields, zap.Any("response_body", parseAndRedactBody(captured.body.Bytes())))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		log := logger.FromContext(c.Request.Context(), base)
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("http_request", fields...)
		case status >= 400:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// redactHeaders redacts sensitive headers
func redactHeaders(headers map[string][]string) map[string]string {
	redacted := make(map[string]string)
	for key, values := range headers {
		if isSensitiveHeader(key) {
			redacted[key] = "[REDACTED]"
		} else {
			redacted[key] = strings.Join(values, ", ")
		}
	}
	return redacted
}

// isSensitiveHeader checks if a header name is sensitive
func isSensitiveHeader(headerName string) bool {
	for _, pattern := range sensitiveHeaderPatterns {
		if pattern.MatchString(headerName) {
			return true
		}
	}
	return false
}

// parseAndRedactBody parses JSON body and redacts sensitive fields
func parseAndRedactBody(body []byte) interface{} {
	var jsonBody interface{}
	if err := json.Unmarshal(body, &jsonBody); err != nil {
		// If not JSON, return truncated string
		bodyStr := string(body)
		if len(bodyStr) > maxLoggedBody {
			bodyStr = bodyStr[:maxLoggedBody] + "... (truncated)"
		}
		return bodyStr
	}

	redactSensitiveFields(jsonBody)
	return jsonBody
}

// redactSensitiveFields recursively redacts sensitive fields in JSON data
func redactSensitiveFields(data interface{}) {
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if isSensitiveField(key) {
				v[key] = "[REDACTED]"
			} else {
				redactSensitiveFields(value)
			}
		}
	case []interface{}:
		for _, item := range v {
			redactSensitiveFields(item)
		}
	}
}

// isSensitiveField checks if a field name is sensitive
func isSensitiveField(fieldName string) bool {
	lowerField := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(lowerField, sensitive) {
			return true
		}
	}
	return false
}
