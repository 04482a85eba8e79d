package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
)

// errUploadTooLarge marks a request body that exceeded the configured limit
var errUploadTooLarge = errors.New("upload too large")

// getQueryAny returns the first non-empty query parameter among names
func getQueryAny(c *gin.Context, names ...string) string {
	for _, name := range names {
		if value := strings.TrimSpace(c.Query(name)); value != "" {
			return value
		}
	}
	return ""
}

// parseMultipartForm parses the request body, enforcing maxBytes
func parseMultipartForm(c *gin.Context, maxBytes int64) (*multipart.Form, error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, errUploadTooLarge
		}
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	return c.Request.MultipartForm, nil
}

// collectUploadFiles reads every file of the recognized fields in processing
// order. Unknown fields follow in name order so the service can skip them.
func collectUploadFiles(form *multipart.Form) ([]domain.UploadFile, error) {
	if form == nil {
		return nil, nil
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		oi, oj := fieldOrder(fields[i]), fieldOrder(fields[j])
		if oi != oj {
			return oi < oj
		}
		return fields[i] < fields[j]
	})

	var files []domain.UploadFile
	for _, field := range fields {
		for _, header := range form.File[field] {
			data, err := readFormFile(header)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", field, err)
			}
			files = append(files, domain.UploadFile{
				Field:    field,
				Filename: header.Filename,
				Data:     data,
			})
		}
	}
	return files, nil
}

func fieldOrder(field string) int {
	for i, known := range domain.UploadFields {
		if field == known {
			return i
		}
	}
	return len(domain.UploadFields)
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
