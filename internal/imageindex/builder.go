// Package imageindex scans the category directories of the upload share and
// groups the images it finds by invoice key.
package imageindex

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
	"github.com/ridwanfathin/invoice-document-service/internal/metrics"
)

// DefaultTTL is how long a built index is reused before the next rebuild
const DefaultTTL = 60 * time.Second

// defaultStatConcurrency bounds concurrent stat calls per directory
const defaultStatConcurrency = 16

// allowedExtensions lists the image extensions that are indexed
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Config holds configuration for the index builder
type Config struct {
	Root            string        // directory holding one sub-directory per category
	BaseURL         string        // public prefix; image URLs are BaseURL/<category>/<filename>
	TTL             time.Duration // reuse window for a built index
	StatConcurrency int           // concurrent stat calls per directory
}

// Stats describes the current index generation
type Stats struct {
	Entries int       `json:"entries"`
	BuiltAt time.Time `json:"built_at"`
	Fresh   bool      `json:"fresh"`
}

// Option customizes a Builder
type Option func(*Builder)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// Builder maintains a TTL-cached mapping from invoice key to the images found for it
type Builder struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	group  singleflight.Group

	mu         sync.RWMutex
	index      map[domain.InvoiceKey]domain.ImageIndexEntry
	builtAt    time.Time
	generation uint64 // bumped by Invalidate; a rebuild started earlier is not published

	// scanned runs between scanning and publishing a rebuild; nil outside tests
	scanned func()
}

// NewBuilder creates a new image index builder
func NewBuilder(cfg Config, logger *zap.Logger, opts ...Option) *Builder {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.StatConcurrency <= 0 {
		cfg.StatConcurrency = defaultStatConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Builder{
		cfg:    cfg,
		logger: logger.Named("imageindex"),
		now:    time.Now,
		index:  map[domain.InvoiceKey]domain.ImageIndexEntry{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Directory returns the on-disk directory of a category
func (b *Builder) Directory(category domain.Category) string {
	return filepath.Join(b.cfg.Root, string(category))
}

// URLFor returns the public URL of a file stored under a category
func (b *Builder) URLFor(category domain.Category, filename string) string {
	return strings.TrimRight(b.cfg.BaseURL, "/") + "/" + string(category) + "/" + url.PathEscape(filename)
}

// Index returns the current index, rebuilding it when the TTL has elapsed.
// The returned map and its entries are shared and must not be modified.
func (b *Builder) Index(ctx context.Context) map[domain.InvoiceKey]domain.ImageIndexEntry {
	b.mu.RLock()
	index, builtAt := b.index, b.builtAt
	b.mu.RUnlock()

	if !builtAt.IsZero() && b.now().Sub(builtAt) < b.cfg.TTL {
		return index
	}

	// Concurrent callers share a single rebuild; it must not die with the first caller's request.
	v, _, _ := b.group.Do("index", func() (interface{}, error) {
		return b.rebuild(context.WithoutCancel(ctx)), nil
	})
	return v.(map[domain.InvoiceKey]domain.ImageIndexEntry)
}

// Lookup returns the index entry of a single invoice
func (b *Builder) Lookup(ctx context.Context, key domain.InvoiceKey) (domain.ImageIndexEntry, bool) {
	entry, ok := b.Index(ctx)[key]
	return entry, ok
}

// Invalidate forces the next Index call to rebuild, even while an older
// rebuild is still running
func (b *Builder) Invalidate() {
	b.mu.Lock()
	b.generation++
	b.builtAt = time.Time{}
	b.mu.Unlock()

	b.group.Forget("index")
}

// Stats reports the size and age of the current generation
func (b *Builder) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Stats{
		Entries: len(b.index),
		BuiltAt: b.builtAt,
		Fresh:   !b.builtAt.IsZero() && b.now().Sub(b.builtAt) < b.cfg.TTL,
	}
}

// rebuild scans every category concurrently and swaps in the merged result
func (b *Builder) rebuild(ctx context.Context) map[domain.InvoiceKey]domain.ImageIndexEntry {
	start := time.Now()

	b.mu.RLock()
	generation := b.generation
	b.mu.RUnlock()

	partials := make([]categoryScan, len(domain.Categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range domain.Categories {
		g.Go(func() error {
			partials[i] = b.scanCategory(gctx, category)
			return nil
		})
	}
	_ = g.Wait()

	index := merge(partials)

	if b.scanned != nil {
		b.scanned()
	}

	b.mu.Lock()
	if b.generation != generation {
		b.mu.Unlock()
		b.logger.Debug("discarding image index invalidated during rebuild", zap.Int("entries", len(index)))
		return index
	}
	b.index = index
	b.builtAt = b.now()
	b.mu.Unlock()

	metrics.IndexBuildDuration.Observe(time.Since(start).Seconds())
	metrics.IndexEntries.Set(float64(len(index)))
	b.logger.Debug("image index rebuilt",
		zap.Int("entries", len(index)),
		zap.Duration("took", time.Since(start)),
	)

	return index
}

// scannedFile is one accepted image of a directory listing
type scannedFile struct {
	key     domain.InvoiceKey
	url     string
	modTime *time.Time
	ok      bool
}

// categoryScan is the partial result of scanning one category directory
type categoryScan struct {
	category domain.Category
	files    []scannedFile
}

func (b *Builder) scanCategory(ctx context.Context, category domain.Category) categoryScan {
	scan := categoryScan{category: category}
	dir := b.Directory(category)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.logger.Debug("category directory missing", zap.String("dir", dir))
			return scan
		}
		metrics.IndexScanErrorsTotal.WithLabelValues("directory").Inc()
		b.logger.Warn("failed to list category directory",
			zap.String("category", string(category)),
			zap.Error(fmt.Errorf("%w: %s: %v", domain.ErrDirectoryUnavailable, dir, err)),
		)
		return scan
	}

	scan.files = make([]scannedFile, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.StatConcurrency)
	for i, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		key, ok := KeyFromFilename(name)
		if !ok {
			continue
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			scan.files[i] = b.statFile(dir, category, key, entry)
			return nil
		})
	}
	_ = g.Wait()

	return scan
}

func (b *Builder) statFile(dir string, category domain.Category, key domain.InvoiceKey, entry os.DirEntry) scannedFile {
	name := entry.Name()
	file := scannedFile{key: key, url: b.URLFor(category, name)}

	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		metrics.IndexScanErrorsTotal.WithLabelValues("stat").Inc()
		b.logger.Warn("failed to stat image",
			zap.String("file", name),
			zap.Error(fmt.Errorf("%w: %v", domain.ErrFileStat, err)),
		)
		return file
	}
	if !info.Mode().IsRegular() {
		return file
	}

	modTime := info.ModTime()
	file.modTime = &modTime
	file.ok = true
	return file
}

// merge combines the per-category scans into one index
func merge(scans []categoryScan) map[domain.InvoiceKey]domain.ImageIndexEntry {
	index := make(map[domain.InvoiceKey]domain.ImageIndexEntry)
	for _, scan := range scans {
		for _, f := range scan.files {
			if !f.ok {
				continue
			}
			entry, exists := index[f.key]
			if !exists {
				entry = domain.ImageIndexEntry{Key: f.key, Images: domain.NewImageSet()}
			}
			entry.Images[scan.category] = append(entry.Images[scan.category], f.url)
			if f.modTime != nil && (entry.LastModified == nil || f.modTime.After(*entry.LastModified)) {
				entry.LastModified = f.modTime
			}
			index[f.key] = entry
		}
	}
	return index
}

// KeyFromFilename extracts the invoice key from a name like 04-021832_conferencia.jpg.
// Only allowed image extensions and strictly formatted keys are accepted.
func KeyFromFilename(name string) (domain.InvoiceKey, bool) {
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
		return "", false
	}

	candidate := name
	if i := strings.Index(candidate, "."); i >= 0 {
		candidate = candidate[:i]
	}
	if i := strings.Index(candidate, "_"); i >= 0 {
		candidate = candidate[:i]
	}
	if !domain.IsStrictKey(candidate) {
		return "", false
	}
	return domain.InvoiceKey(candidate), true
}
