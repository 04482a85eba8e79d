package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
)

// InvoiceRepository defines the interface for reading the unified invoice view
type InvoiceRepository interface {
	// ListInvoices returns the invoices matching the filter, newest first
	ListInvoices(ctx context.Context, filter domain.DocumentFilter) ([]domain.InvoiceRecord, error)
}

// ImageSource provides the current image index
type ImageSource interface {
	Index(ctx context.Context) map[domain.InvoiceKey]domain.ImageIndexEntry
}

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err means the data source could not be reached
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrDatabaseUnavailable)
}
