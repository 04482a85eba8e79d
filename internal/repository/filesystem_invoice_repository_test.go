package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
)

func entry(key domain.InvoiceKey, modified *time.Time, conferencia ...string) domain.ImageIndexEntry {
	images := domain.NewImageSet()
	images[domain.CategoryConferencia] = append(images[domain.CategoryConferencia], conferencia...)
	return domain.ImageIndexEntry{Key: key, Images: images, LastModified: modified}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newFilesystemRepo(index map[domain.InvoiceKey]domain.ImageIndexEntry) *FilesystemInvoiceRepository {
	repo := NewFilesystemInvoiceRepository(&staticImages{index: index})
	repo.SetClock(func() time.Time { return time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC) })
	return repo
}

func TestFilesystemInvoiceRepository_ListAll(t *testing.T) {
	repo := newFilesystemRepo(map[domain.InvoiceKey]domain.ImageIndexEntry{
		"04-021832": entry("04-021832", timePtr(time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)), "/a.jpg"),
		"12-000456": entry("12-000456", timePtr(time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC))),
		"01-000001": entry("01-000001", nil),
	})

	records, err := repo.ListInvoices(context.Background(), domain.DocumentFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, domain.InvoiceKey("01-000001"), records[0].Key)
	assert.Equal(t, "2024-03-05", records[0].IssueDate, "entries without mtime use today")
	assert.Equal(t, domain.InvoiceKey("12-000456"), records[1].Key)
	assert.Equal(t, domain.InvoiceKey("04-021832"), records[2].Key)

	for _, r := range records {
		assert.Equal(t, domain.PlaceholderCustomer, r.CustomerName)
		assert.Len(t, r.Images, 3)
	}
}

func TestFilesystemInvoiceRepository_InvoiceFilter(t *testing.T) {
	repo := newFilesystemRepo(map[domain.InvoiceKey]domain.ImageIndexEntry{
		"12-000456": entry("12-000456", nil, "/api/uploads/conferencia/12-000456_conferencia.jpg"),
		"12-000457": entry("12-000457", nil),
	})

	records, err := repo.ListInvoices(context.Background(), domain.DocumentFilter{Invoice: "12000456", Date: "1999-01-01"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.InvoiceKey("12-000456"), records[0].Key)
	assert.Len(t, records[0].Images[domain.CategoryConferencia], 1)
	assert.Empty(t, records[0].Images[domain.CategoryCarga])
	assert.Empty(t, records[0].Images[domain.CategoryCanhoto])

	records, err = repo.ListInvoices(context.Background(), domain.DocumentFilter{Invoice: "99-999999"})
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFilesystemInvoiceRepository_DateFilter(t *testing.T) {
	repo := newFilesystemRepo(map[domain.InvoiceKey]domain.ImageIndexEntry{
		"04-021832": entry("04-021832", timePtr(time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC))),
		"12-000456": entry("12-000456", timePtr(time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC))),
	})

	records, err := repo.ListInvoices(context.Background(), domain.DocumentFilter{Date: "2024-01-31"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.InvoiceKey("04-021832"), records[0].Key)

	records, err = repo.ListInvoices(context.Background(), domain.DocumentFilter{Date: "2024-02"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.InvoiceKey("12-000456"), records[0].Key)

	// An invoice too short to normalize does not filter.
	records, err = repo.ListInvoices(context.Background(), domain.DocumentFilter{Invoice: "1", Date: "2024-02-10"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFilesystemInvoiceRepository_RecordsDoNotShareIndexSlices(t *testing.T) {
	index := map[domain.InvoiceKey]domain.ImageIndexEntry{
		"04-021832": entry("04-021832", nil, "/a.jpg"),
	}
	repo := newFilesystemRepo(index)

	records, err := repo.ListInvoices(context.Background(), domain.DocumentFilter{})
	require.NoError(t, err)
	records[0].Images[domain.CategoryConferencia][0] = "/changed.jpg"

	assert.Equal(t, "/a.jpg", index["04-021832"].Images[domain.CategoryConferencia][0])
}
