package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedLicense inserts an active license with the given key and returns its id.
func SeedLicense(t *testing.T, pool *pgxpool.Pool, key string) int64 {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO licenses (license_key, status) VALUES ($1, 'active') RETURNING id`,
		key,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: failed to seed license: %v", err)
	}

	return id
}

// SeedTitle inserts a queue title with an explicit creation time and returns its id.
func SeedTitle(t *testing.T, pool *pgxpool.Pool, campaignID string, licenseID int64, text string, createdAt time.Time) int64 {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO queue_titles (campaign_id, license_id, title_text, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		campaignID, licenseID, text, createdAt,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: failed to seed title: %v", err)
	}

	return id
}
