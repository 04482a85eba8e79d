package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
)

// FilesystemInvoiceRepository builds invoices purely from the image index.
// It is the fallback when the legacy database is disabled or unreachable.
type FilesystemInvoiceRepository struct {
	images ImageSource
	now    func() time.Time
}

// NewFilesystemInvoiceRepository creates a new filesystem-backed reader
func NewFilesystemInvoiceRepository(images ImageSource) *FilesystemInvoiceRepository {
	return &FilesystemInvoiceRepository{
		images: images,
		now:    time.Now,
	}
}

// SetClock replaces the clock used for entries without a modification time
func (r *FilesystemInvoiceRepository) SetClock(now func() time.Time) {
	r.now = now
}

// ListInvoices never fails. An invoice filter keeps only the exact normalized
// key; otherwise a date filter keeps records issued on that day.
func (r *FilesystemInvoiceRepository) ListInvoices(ctx context.Context, filter domain.DocumentFilter) ([]domain.InvoiceRecord, error) {
	index := r.images.Index(ctx)
	today := r.now().Format(domain.ISODate)

	invoice := strings.TrimSpace(filter.Invoice)
	date := strings.TrimSpace(filter.Date)

	if invoice != "" {
		if key, ok := domain.Normalize(invoice); ok {
			entry, found := index[key]
			if !found {
				return []domain.InvoiceRecord{}, nil
			}
			return []domain.InvoiceRecord{recordFromEntry(entry, today)}, nil
		}
	}

	records := make([]domain.InvoiceRecord, 0, len(index))
	for _, entry := range index {
		record := recordFromEntry(entry, today)
		if date != "" && !strings.HasPrefix(record.IssueDate, date) {
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].IssueDate != records[j].IssueDate {
			return records[i].IssueDate > records[j].IssueDate
		}
		return records[i].Key > records[j].Key
	})

	return records, nil
}

func recordFromEntry(entry domain.ImageIndexEntry, today string) domain.InvoiceRecord {
	issueDate := today
	if entry.LastModified != nil {
		issueDate = entry.LastModified.Format(domain.ISODate)
	}
	return domain.InvoiceRecord{
		Key:          entry.Key,
		IssueDate:    issueDate,
		CustomerName: domain.PlaceholderCustomer,
		Images:       entry.Images.Clone(),
	}
}
