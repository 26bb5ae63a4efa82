// Package queuetitle implements the per-campaign title queue repository
// using PostgreSQL. The queue is the dedup ledger for bulk generation:
// every accepted title of a campaign is appended here and consulted on the
// next generation request for that campaign.
package queuetitle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autoposts/titlegen-backend/internal/adapter/postgres"
	"github.com/autoposts/titlegen-backend/internal/domain"
)

const table = "queue_titles"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides title queue persistence backed by PostgreSQL.
// The TTL set at construction bounds which records count as active for
// Recent and Exists; expired rows are invisible to both even before the
// sweep physically deletes them.
type Repo struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// New creates a new title queue repository.
func New(pool *pgxpool.Pool, ttl time.Duration) *Repo {
	return &Repo{pool: pool, ttl: ttl}
}

// Append inserts one generated title for a campaign.
// The title text is trimmed before storing.
func (r *Repo) Append(ctx context.Context, campaignID string, licenseID int64, text string) error {
	if campaignID == "" {
		return domain.NewValidationError("campaign_id", "must not be empty")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.NewValidationError("title", "must not be empty")
	}

	sql, args, err := psql.
		Insert(table).
		Columns("campaign_id", "license_id", "title_text", "created_at").
		Values(campaignID, licenseID, text, squirrel.Expr("now()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("build append query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "queue_title", campaignID)
	}

	return nil
}

// Recent returns up to limit active titles for a campaign, most recent
// first. An empty campaign id yields an empty slice, not an error: callers
// without a campaign scope simply have no queue.
func (r *Repo) Recent(ctx context.Context, campaignID string, limit int) ([]string, error) {
	if campaignID == "" || limit <= 0 {
		return []string{}, nil
	}

	sql, args, err := psql.
		Select("title_text").
		From(table).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		Where(squirrel.Gt{"created_at": time.Now().Add(-r.ttl)}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	titles := []string{}
	if err := pgxscan.Select(ctx, q, &titles, sql, args...); err != nil {
		return nil, postgres.MapError(err, "queue_title", campaignID)
	}

	return titles, nil
}

// Exists reports whether an active title with the same text (case-insensitive)
// is already queued for the campaign.
func (r *Repo) Exists(ctx context.Context, campaignID, text string) (bool, error) {
	if campaignID == "" || strings.TrimSpace(text) == "" {
		return false, nil
	}

	sql, args, err := psql.
		Select("count(*)").
		From(table).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		Where(squirrel.Expr("lower(title_text) = lower(?)", strings.TrimSpace(text))).
		Where(squirrel.Gt{"created_at": time.Now().Add(-r.ttl)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var count int
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, postgres.MapError(err, "queue_title", campaignID)
	}

	return count > 0, nil
}

// Clear deletes all titles of one campaign, including expired ones.
func (r *Repo) Clear(ctx context.Context, campaignID string) error {
	if campaignID == "" {
		return domain.NewValidationError("campaign_id", "must not be empty")
	}

	sql, args, err := psql.
		Delete(table).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "queue_title", campaignID)
	}

	return nil
}

// statsRow matches the aggregate stats query columns.
type statsRow struct {
	Count        int        `db:"count"`
	FirstCreated *time.Time `db:"first_created"`
	LastCreated  *time.Time `db:"last_created"`
}

// Stats returns count and first/last creation times for a campaign.
// A campaign with no records yields zero count and nil timestamps.
func (r *Repo) Stats(ctx context.Context, campaignID string) (domain.QueueStats, error) {
	if campaignID == "" {
		return domain.QueueStats{}, nil
	}

	sql, args, err := psql.
		Select(
			"count(*) AS count",
			"min(created_at) AS first_created",
			"max(created_at) AS last_created",
		).
		From(table).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		ToSql()
	if err != nil {
		return domain.QueueStats{}, fmt.Errorf("build stats query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var row statsRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.QueueStats{}, postgres.MapError(err, "queue_title", campaignID)
	}

	return domain.QueueStats{
		Count:        row.Count,
		FirstCreated: row.FirstCreated,
		LastCreated:  row.LastCreated,
	}, nil
}

// DeleteOlderThan removes titles older than ttl across all campaigns.
// Returns the number of deleted rows.
func (r *Repo) DeleteOlderThan(ctx context.Context, ttl time.Duration) (int64, error) {
	sql, args, err := psql.
		Delete(table).
		Where(squirrel.LtOrEq{"created_at": time.Now().Add(-ttl)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sweep query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "queue_title", "sweep")
	}

	return tag.RowsAffected(), nil
}

// TotalCount returns the number of stored titles across all campaigns.
func (r *Repo) TotalCount(ctx context.Context) (int64, error) {
	sql, args, err := psql.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build total count query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var count int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "queue_title", "total")
	}

	return count, nil
}
