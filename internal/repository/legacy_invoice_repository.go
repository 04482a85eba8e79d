package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-document-service/internal/database"
	"github.com/ridwanfathin/invoice-document-service/internal/domain"
)

// identifierPattern restricts configured schema, table and column names
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$#]*$`)

// LegacyTableConfig names the legacy invoice table and its columns
type LegacyTableConfig struct {
	Schema         string
	Table          string
	SeriesColumn   string
	NumberColumn   string
	CustomerColumn string
	DateColumn     string
	// SeriesFilter is the only series value that belongs to this system
	SeriesFilter string
}

// DefaultLegacyTableConfig returns the names used by the legacy invoice schema
func DefaultLegacyTableConfig() LegacyTableConfig {
	return LegacyTableConfig{
		Schema:         "GCFDTA",
		Table:          "GCF030",
		SeriesColumn:   "GCF030SER",
		NumberColumn:   "GCF030NNF",
		CustomerColumn: "GCF030NCL",
		DateColumn:     "GCF030DEM",
		SeriesFilter:   "4",
	}
}

// Validate checks that every identifier is safe to place in a query
func (c LegacyTableConfig) Validate() error {
	names := map[string]string{
		"table":           c.Table,
		"series column":   c.SeriesColumn,
		"number column":   c.NumberColumn,
		"customer column": c.CustomerColumn,
		"date column":     c.DateColumn,
	}
	if c.Schema != "" {
		names["schema"] = c.Schema
	}
	for what, name := range names {
		if !identifierPattern.MatchString(name) {
			return fmt.Errorf("invalid %s name %q", what, name)
		}
	}
	if strings.TrimSpace(c.SeriesFilter) == "" {
		return fmt.Errorf("series filter is required")
	}
	return nil
}

func (c LegacyTableConfig) qualifiedTable() string {
	if c.Schema == "" {
		return c.Table
	}
	return c.Schema + "." + c.Table
}

// LegacyRow is one row of the legacy invoice table with every field as text
type LegacyRow struct {
	Series   string
	Number   string
	Customer string
	Date     string
}

// LegacyInvoiceRepository reads invoices from the legacy database and enriches
// them with the images found on the upload share
type LegacyInvoiceRepository struct {
	db     *database.LegacyDB
	images ImageSource
	table  LegacyTableConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewLegacyInvoiceRepository creates a new legacy database reader
func NewLegacyInvoiceRepository(db *database.LegacyDB, images ImageSource, table LegacyTableConfig, logger *zap.Logger) (*LegacyInvoiceRepository, error) {
	if err := table.Validate(); err != nil {
		return nil, &RepositoryError{Op: "create_repository", Err: err}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LegacyInvoiceRepository{
		db:     db,
		images: images,
		table:  table,
		logger: logger.Named("legacy"),
		now:    time.Now,
	}, nil
}

// SetClock replaces the clock used for rows without a usable date
func (r *LegacyInvoiceRepository) SetClock(now func() time.Time) {
	r.now = now
}

// ListInvoices queries the legacy table. Any connection or query failure is
// reported as domain.ErrDatabaseUnavailable so the caller can fall back.
func (r *LegacyInvoiceRepository) ListInvoices(ctx context.Context, filter domain.DocumentFilter) ([]domain.InvoiceRecord, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, &RepositoryError{Op: "connect", Err: err}
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			r.logger.Warn("failed to close legacy connection", zap.Error(cerr))
		}
	}()

	index := r.images.Index(ctx)

	query, args := r.BuildQuery(filter)
	r.logger.Debug("querying legacy invoices", zap.String("sql", query), zap.Any("args", args))

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &RepositoryError{
			Op:  "query_invoices",
			Err: fmt.Errorf("%w: %v", domain.ErrDatabaseUnavailable, err),
		}
	}
	defer rows.Close()

	today := r.now().Format(domain.ISODate)
	records := make([]domain.InvoiceRecord, 0)
	for rows.Next() {
		row, err := scanLegacyRow(rows)
		if err != nil {
			return nil, &RepositoryError{
				Op:  "scan_invoice",
				Err: fmt.Errorf("%w: %v", domain.ErrDatabaseUnavailable, err),
			}
		}
		if record, ok := MapLegacyRow(row, index, today); ok {
			records = append(records, record)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &RepositoryError{
			Op:  "read_invoices",
			Err: fmt.Errorf("%w: %v", domain.ErrDatabaseUnavailable, err),
		}
	}

	return records, nil
}

// BuildQuery renders the filtered select. An invoice filter with at least three
// digits takes precedence and the date is ignored; otherwise a YYYY-MM-DD date
// filters on the compact YYYYMMDD column. The fixed series predicate is always applied.
func (r *LegacyInvoiceRepository) BuildQuery(filter domain.DocumentFilter) (string, []any) {
	t := r.table
	var (
		predicates []string
		args       []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		predicates = append(predicates, column+" = "+r.db.Placeholder(len(args)))
	}

	if series, number, ok := invoicePredicate(filter.Invoice); ok {
		add(t.SeriesColumn, series)
		add(t.NumberColumn, number)
	} else if compact, ok := compactDate(filter.Date); ok {
		add(t.DateColumn, compact)
	}
	add(t.SeriesColumn, strings.TrimSpace(t.SeriesFilter))

	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s FROM %s WHERE %s ORDER BY %s DESC",
		t.SeriesColumn, t.NumberColumn, t.CustomerColumn, t.DateColumn,
		t.qualifiedTable(),
		strings.Join(predicates, " AND "),
		t.DateColumn,
	)
	return query, args
}

func invoicePredicate(invoice string) (string, string, bool) {
	if strings.TrimSpace(invoice) == "" {
		return "", "", false
	}
	return domain.SplitInvoiceDigits(invoice)
}

// compactDate converts YYYY-MM-DD into YYYYMMDD; anything else is ignored
func compactDate(date string) (string, bool) {
	compact := strings.ReplaceAll(strings.TrimSpace(date), "-", "")
	if len(compact) != 8 || domain.OnlyDigits(compact) != compact {
		return "", false
	}
	return compact, true
}

// isoDate converts a compact YYYYMMDD value into YYYY-MM-DD
func isoDate(compact string) (string, bool) {
	if len(compact) != 8 || domain.OnlyDigits(compact) != compact {
		return "", false
	}
	return compact[:4] + "-" + compact[4:6] + "-" + compact[6:], true
}

// MapLegacyRow turns a legacy row into an InvoiceRecord. Rows without a number
// or date are skipped; dates that are not 8 digits fall back to today.
func MapLegacyRow(row LegacyRow, index map[domain.InvoiceKey]domain.ImageIndexEntry, today string) (domain.InvoiceRecord, bool) {
	series := strings.TrimSpace(row.Series)
	number := strings.TrimSpace(row.Number)
	date := strings.TrimSpace(row.Date)
	customer := strings.TrimSpace(row.Customer)

	if number == "" || date == "" {
		return domain.InvoiceRecord{}, false
	}

	key, ok := domain.FormatKey(series, number)
	if !ok {
		return domain.InvoiceRecord{}, false
	}

	issueDate, ok := isoDate(date)
	if !ok {
		issueDate = today
	}

	if customer == "" {
		customer = domain.PlaceholderCustomer
	}

	images := domain.NewImageSet()
	if entry, found := index[key]; found {
		images = entry.Images.Clone()
	}

	return domain.InvoiceRecord{
		Key:          key,
		IssueDate:    issueDate,
		CustomerName: customer,
		Images:       images,
	}, true
}

func scanLegacyRow(rows *sql.Rows) (LegacyRow, error) {
	var series, number, customer, date any
	if err := rows.Scan(&series, &number, &customer, &date); err != nil {
		return LegacyRow{}, err
	}
	return LegacyRow{
		Series:   columnText(series),
		Number:   columnText(number),
		Customer: columnText(customer),
		Date:     columnText(date),
	}, nil
}

// columnText renders a driver value as text. Legacy numeric columns may come
// back as integers, floats, decimals as bytes, or padded CHAR strings.
func columnText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return trimZeroFraction(strings.TrimSpace(val))
	case []byte:
		return trimZeroFraction(strings.TrimSpace(string(val)))
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("20060102")
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// trimZeroFraction turns "21832.00" into "21832"
func trimZeroFraction(s string) string {
	i := strings.IndexByte(s, '.')
	if i <= 0 || strings.Trim(s[i+1:], "0") != "" {
		return s
	}
	return s[:i]
}
