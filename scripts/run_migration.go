package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/ridwanfathin/invoice-document-service/internal/domain"
	"github.com/ridwanfathin/invoice-document-service/internal/imageindex"
)

// Creates the development copy of the legacy invoice table and, when
// SEED_FROM_UPLOADS=true, inserts one row per invoice found on the upload share.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Get database URL
	dbURL := os.Getenv("LEGACY_PG_URL")
	if dbURL == "" {
		log.Fatalf("LEGACY_PG_URL environment variable not set")
	}

	ctx := context.Background()

	// Connect to database
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	// Read migration file
	migrationFile := "scripts/migrations/001_create_legacy_invoice_table.sql"
	migrationSQL, err := os.ReadFile(migrationFile)
	if err != nil {
		log.Fatalf("Unable to read migration file: %v", err)
	}

	// Execute migration
	if _, err := pool.Exec(ctx, string(migrationSQL)); err != nil {
		log.Fatalf("Failed to execute migration: %v", err)
	}
	fmt.Println("Migration successfully executed!")

	if os.Getenv("SEED_FROM_UPLOADS") != "true" {
		return
	}

	root := os.Getenv("BASE_UPLOAD_PATH")
	if root == "" {
		log.Fatalf("BASE_UPLOAD_PATH environment variable not set")
	}

	inserted, err := seedFromUploads(ctx, pool, root)
	if err != nil {
		log.Fatalf("Failed to seed invoices: %v", err)
	}
	fmt.Printf("Seeded %d invoices from %s\n", inserted, root)
}

// seedFromUploads inserts a header row for every invoice that has photos
func seedFromUploads(ctx context.Context, pool *pgxpool.Pool, root string) (int, error) {
	index := imageindex.NewBuilder(imageindex.Config{Root: root}, nil).Index(ctx)

	inserted := 0
	for key, entry := range index {
		series, number, ok := domain.SplitInvoiceDigits(string(key))
		if !ok {
			continue
		}

		issued := time.Now()
		if entry.LastModified != nil {
			issued = *entry.LastModified
		}

		tag, err := pool.Exec(ctx,
			`INSERT INTO "GCFDTA"."GCF030" ("GCF030SER", "GCF030NNF", "GCF030NCL", "GCF030DEM")
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT DO NOTHING`,
			series, number, domain.PlaceholderCustomer, issued.Format("20060102"),
		)
		if err != nil {
			return inserted, fmt.Errorf("insert %s: %w", key, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
