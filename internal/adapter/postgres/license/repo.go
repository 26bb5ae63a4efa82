// Package license implements the License repository using PostgreSQL.
package license

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/autoposts/titlegen-backend/internal/adapter/postgres"
	"github.com/autoposts/titlegen-backend/internal/domain"
)

const table = "licenses"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Column list aliased to match domain.License field names for scanning.
var columns = []string{
	"id", "license_key AS key", "status", "token_limit", "tokens_used", "expires_at", "created_at",
}

// Repo provides license persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new license repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByKey returns a license by its key.
// Returns domain.ErrNotFound when no such key exists.
func (r *Repo) GetByKey(ctx context.Context, key string) (*domain.License, error) {
	if key == "" {
		return nil, domain.NewValidationError("license_key", "must not be empty")
	}

	sql, args, err := psql.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"license_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var lic domain.License
	if err := pgxscan.Get(ctx, q, &lic, sql, args...); err != nil {
		return nil, postgres.MapError(err, "license", key)
	}

	return &lic, nil
}

// IncrementTokens adds tokens to the lifetime usage counter of a license.
func (r *Repo) IncrementTokens(ctx context.Context, licenseID int64, tokens int) error {
	if tokens <= 0 {
		return nil
	}

	sql, args, err := psql.
		Update(table).
		Set("tokens_used", squirrel.Expr("tokens_used + ?", tokens)).
		Where(squirrel.Eq{"id": licenseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build increment query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "license", strconv.FormatInt(licenseID, 10))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("license %d: %w", licenseID, domain.ErrNotFound)
	}

	return nil
}
