// Command cleanup-titles deletes queued titles older than the TTL across
// all campaigns. Intended for external cron use; the server also sweeps
// periodically on its own.
//
// Usage:
//
//	cleanup-titles [-ttl 24h]
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autoposts/titlegen-backend/internal/adapter/postgres/queuetitle"
)

func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "delete titles older than this")
	flag.Parse()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	repo := queuetitle.New(pool, *ttl)

	deleted, err := repo.DeleteOlderThan(ctx, *ttl)
	if err != nil {
		log.Fatalf("cleanup titles: %v", err)
	}

	fmt.Printf("Deleted %d expired queue titles.\n", deleted)
}
