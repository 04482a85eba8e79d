package domain

import (
	"errors"
	"strings"
	"time"
)

// Category is one of the fixed upload classifications
type Category string

const (
	CategoryConferencia Category = "conferencia"
	CategoryCarga       Category = "carga"
	CategoryCanhoto     Category = "canhoto"
)

// Categories lists every category in display order
var Categories = []Category{CategoryConferencia, CategoryCarga, CategoryCanhoto}

// PlaceholderCustomer is used whenever a customer name is unknown
const PlaceholderCustomer = "Cliente não informado"

// ISODate is the layout of InvoiceRecord.IssueDate
const ISODate = "2006-01-02"

// Errors shared by the readers and the orchestrator
var (
	ErrDatabaseUnavailable  = errors.New("database unavailable")
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	ErrFileStat             = errors.New("file stat failure")
)

// ParseCategory maps a category name to its Category
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// ImageSet holds image URLs per category
type ImageSet map[Category][]string

// NewImageSet returns an ImageSet with an empty list for every category
func NewImageSet() ImageSet {
	set := make(ImageSet, len(Categories))
	for _, c := range Categories {
		set[c] = []string{}
	}
	return set
}

// Clone returns a deep copy of the set that always carries every category
func (s ImageSet) Clone() ImageSet {
	out := NewImageSet()
	for c, urls := range s {
		out[c] = append([]string{}, urls...)
	}
	return out
}

// ImageIndexEntry describes the images found on disk for one invoice
type ImageIndexEntry struct {
	Key          InvoiceKey
	Images       ImageSet
	LastModified *time.Time
}

// InvoiceRecord is the unified per-invoice view returned to callers
type InvoiceRecord struct {
	Key          InvoiceKey `json:"key"`
	IssueDate    string     `json:"issue_date"`
	CustomerName string     `json:"customer_name"`
	Images       ImageSet   `json:"images"`
}

// DocumentFilter holds the optional search filters
type DocumentFilter struct {
	Invoice string
	Date    string
}

// Trimmed returns the filter with surrounding whitespace removed
func (f DocumentFilter) Trimmed() DocumentFilter {
	return DocumentFilter{
		Invoice: strings.TrimSpace(f.Invoice),
		Date:    strings.TrimSpace(f.Date),
	}
}
