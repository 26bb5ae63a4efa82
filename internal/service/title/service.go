// Package title implements the duplicate-avoidance title generation
// controller. For campaign-scoped requests it consults the campaign's
// queue of prior titles, injects them into the prompt, scores every
// candidate against them, and retries with escalating anti-repetition
// pressure until a sufficiently novel title is produced or the attempt
// budget runs out.
package title

import (
	"context"
	"log/slog"
	"time"

	"github.com/autoposts/titlegen-backend/internal/config"
	"github.com/autoposts/titlegen-backend/internal/domain"
	"github.com/autoposts/titlegen-backend/internal/provider"
)

type queueRepo interface {
	Append(ctx context.Context, campaignID string, licenseID int64, text string) error
	Recent(ctx context.Context, campaignID string, limit int) ([]string, error)
	Exists(ctx context.Context, campaignID, text string) (bool, error)
	Clear(ctx context.Context, campaignID string) error
	Stats(ctx context.Context, campaignID string) (domain.QueueStats, error)
	DeleteOlderThan(ctx context.Context, ttl time.Duration) (int64, error)
	TotalCount(ctx context.Context) (int64, error)
}

type generator interface {
	Generate(ctx context.Context, prompt string, params domain.GenerationParams) (*provider.TextResult, error)
}

type usageRepo interface {
	Record(ctx context.Context, rec domain.UsageRecord) error
}

type licenseRepo interface {
	IncrementTokens(ctx context.Context, licenseID int64, tokens int) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides title generation and queue administration.
type Service struct {
	cfg      config.GenerationConfig
	queue    queueRepo
	gen      generator
	usage    usageRepo
	licenses licenseRepo
	tx       txManager
	locks    *campaignLocks
	log      *slog.Logger
}

// NewService creates a new title Service.
func NewService(
	log *slog.Logger,
	cfg config.GenerationConfig,
	queue queueRepo,
	gen generator,
	usage usageRepo,
	licenses licenseRepo,
	tx txManager,
) *Service {
	return &Service{
		cfg:      cfg,
		queue:    queue,
		gen:      gen,
		usage:    usage,
		licenses: licenses,
		tx:       tx,
		locks:    newCampaignLocks(),
		log:      log.With("service", "title"),
	}
}
