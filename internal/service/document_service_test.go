package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
	"github.com/ridwanfathin/invoice-document-service/internal/querycache"
	"github.com/ridwanfathin/invoice-document-service/internal/repository"
)

// fakeRepository is an InvoiceRepository test double that counts calls
type fakeRepository struct {
	records []domain.InvoiceRecord
	err     error
	calls   int
	filters []domain.DocumentFilter
}

func (f *fakeRepository) ListInvoices(ctx context.Context, filter domain.DocumentFilter) ([]domain.InvoiceRecord, error) {
	f.calls++
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

// staticImages is an ImageSource returning a fixed index
type staticImages map[domain.InvoiceKey]domain.ImageIndexEntry

func (s staticImages) Index(ctx context.Context) map[domain.InvoiceKey]domain.ImageIndexEntry {
	return s
}

func record(key domain.InvoiceKey) domain.InvoiceRecord {
	return domain.InvoiceRecord{Key: key, IssueDate: "2024-01-31", CustomerName: "ACME", Images: domain.NewImageSet()}
}

func newCache(now *time.Time) *querycache.Cache {
	c := querycache.New(10 * time.Second)
	c.SetClock(func() time.Time { return *now })
	return c
}

func TestDocumentService_CachesIdenticalQueries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeRepository{records: []domain.InvoiceRecord{record("04-021832")}}
	fs := &fakeRepository{}
	svc := NewDocumentService(db, fs, newCache(&now), true, nil)

	first := svc.ListDocuments(context.Background(), domain.DocumentFilter{Invoice: "04-021832"})
	now = now.Add(5 * time.Second)
	second := svc.ListDocuments(context.Background(), domain.DocumentFilter{Invoice: " 04-021832 "})

	assert.Equal(t, first, second)
	assert.Equal(t, 1, db.calls, "second call within the TTL must not reach the database")
	assert.Equal(t, 0, fs.calls)

	now = now.Add(10 * time.Second)
	svc.ListDocuments(context.Background(), domain.DocumentFilter{Invoice: "04-021832"})
	assert.Equal(t, 2, db.calls, "expired entries are refreshed")
}

func TestDocumentService_DisabledCacheAlwaysQueries(t *testing.T) {
	db := &fakeRepository{records: []domain.InvoiceRecord{record("04-021832")}}
	svc := NewDocumentService(db, &fakeRepository{}, querycache.New(0), true, nil)

	for i := 0; i < 3; i++ {
		assert.Len(t, svc.ListDocuments(context.Background(), domain.DocumentFilter{Invoice: "04-021832"}), 1)
	}
	assert.Equal(t, 3, db.calls)
}

func TestDocumentService_DifferentFiltersAreCachedSeparately(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeRepository{records: []domain.InvoiceRecord{}}
	svc := NewDocumentService(db, &fakeRepository{}, newCache(&now), true, nil)

	svc.ListDocuments(context.Background(), domain.DocumentFilter{Invoice: "04-021832"})
	svc.ListDocuments(context.Background(), domain.DocumentFilter{Date: "2024-01-31"})
	svc.ListDocuments(context.Background(), domain.DocumentFilter{})

	assert.Equal(t, 3, db.calls)
	assert.Equal(t, domain.DocumentFilter{Date: "2024-01-31"}, db.filters[1])
}

func TestDocumentService_FallsBackOnDatabaseFailure(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeRepository{err: &repository.RepositoryError{Op: "connect", Err: domain.ErrDatabaseUnavailable}}

	images := domain.NewImageSet()
	images[domain.CategoryConferencia] = []string{"/api/uploads/conferencia/12-000456_conferencia.jpg"}
	fs := repository.NewFilesystemInvoiceRepository(staticImages{
		"12-000456": {Key: "12-000456", Images: images},
	})

	svc := NewDocumentService(db, fs, newCache(&now), true, nil)
	assert.Equal(t, ModeDatabasePrimary, svc.Mode())

	docs := svc.ListDocuments(context.Background(), domain.DocumentFilter{Invoice: "12000456"})
	require.Len(t, docs, 1)
	assert.Equal(t, domain.InvoiceKey("12-000456"), docs[0].Key)
	assert.Len(t, docs[0].Images[domain.CategoryConferencia], 1)
	assert.Len(t, docs[0].Images[domain.CategoryCarga], 0)
	assert.Len(t, docs[0].Images[domain.CategoryCanhoto], 0)
	assert.Equal(t, domain.PlaceholderCustomer, docs[0].CustomerName)
	assert.Equal(t, 1, db.calls)
}

func TestDocumentService_RetriesDatabaseOnNextCall(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeRepository{err: errors.New("connection refused")}
	fs := &fakeRepository{records: []domain.InvoiceRecord{record("12-000456")}}
	svc := NewDocumentService(db, fs, newCache(&now), true, nil)

	svc.ListDocuments(context.Background(), domain.DocumentFilter{Invoice: "12-000456"})
	svc.ListDocuments(context.Background(), domain.DocumentFilter{Invoice: "12-000457"})

	assert.Equal(t, 2, db.calls, "there is no circuit breaker between calls")
	assert.Equal(t, 2, fs.calls)
}

func TestDocumentService_FilesystemOnly(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db := &fakeRepository{records: []domain.InvoiceRecord{record("04-021832")}}
	fs := &fakeRepository{records: []domain.InvoiceRecord{record("12-000456")}}

	svc := NewDocumentService(db, fs, newCache(&now), false, nil)
	assert.Equal(t, ModeFilesystemOnly, svc.Mode())

	docs := svc.ListDocuments(context.Background(), domain.DocumentFilter{})
	require.Len(t, docs, 1)
	assert.Equal(t, domain.InvoiceKey("12-000456"), docs[0].Key)
	assert.Equal(t, 0, db.calls)

	svc = NewDocumentService(nil, fs, nil, true, nil)
	assert.Equal(t, ModeFilesystemOnly, svc.Mode())
}

func TestDocumentService_FilesystemErrorYieldsEmpty(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fs := &fakeRepository{err: errors.New("boom")}
	svc := NewDocumentService(nil, fs, newCache(&now), false, nil)

	docs := svc.ListDocuments(context.Background(), domain.DocumentFilter{})
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestDocumentServiceError(t *testing.T) {
	err := &DocumentServiceError{Op: "query_database", Err: domain.ErrDatabaseUnavailable}
	assert.Equal(t, "query_database: database unavailable", err.Error())
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), domain.ErrDatabaseUnavailable)
	assert.Equal(t, "noop", (&DocumentServiceError{Op: "noop"}).Error())
}
