// Package usage implements the usage tracking repository using PostgreSQL.
// Every metered generation call is recorded as one row for billing reports.
package usage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autoposts/titlegen-backend/internal/adapter/postgres"
	"github.com/autoposts/titlegen-backend/internal/domain"
)

const table = "usage_tracking"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides usage tracking persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new usage repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Record inserts one usage row. A nil campaign scope is stored as NULL.
func (r *Repo) Record(ctx context.Context, rec domain.UsageRecord) error {
	var campaignID *string
	if rec.CampaignID != "" {
		campaignID = &rec.CampaignID
	}

	sql, args, err := psql.
		Insert(table).
		Columns(
			"license_id", "operation_type", "total_tokens",
			"prompt_tokens", "completion_tokens", "campaign_id", "created_at",
		).
		Values(
			rec.LicenseID, rec.Operation, rec.Usage.TotalTokens,
			rec.Usage.PromptTokens, rec.Usage.CompletionTokens, campaignID,
			squirrel.Expr("now()"),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build usage insert: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "usage", strconv.FormatInt(rec.LicenseID, 10))
	}

	return nil
}
