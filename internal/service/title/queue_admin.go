package title

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/autoposts/titlegen-backend/internal/domain"
)

// ClearQueue deletes every stored title of a campaign. Used when an
// operator cancels or restarts a campaign and wants a clean slate.
func (s *Service) ClearQueue(ctx context.Context, campaignID string) error {
	if campaignID == "" {
		return domain.NewValidationError("campaign_id", "must not be empty")
	}

	unlock := s.locks.Lock(campaignID)
	defer unlock()

	if err := s.queue.Clear(ctx, campaignID); err != nil {
		return fmt.Errorf("clear queue: %w", err)
	}

	s.log.InfoContext(ctx, "campaign queue cleared", slog.String("campaign_id", campaignID))
	return nil
}

// QueueStats returns count and first/last creation time for a campaign's
// queue. An unknown campaign yields zero stats, not an error.
func (s *Service) QueueStats(ctx context.Context, campaignID string) (domain.QueueStats, error) {
	if campaignID == "" {
		return domain.QueueStats{}, domain.NewValidationError("campaign_id", "must not be empty")
	}

	stats, err := s.queue.Stats(ctx, campaignID)
	if err != nil {
		return domain.QueueStats{}, fmt.Errorf("queue stats: %w", err)
	}
	return stats, nil
}

// TotalTitles returns the number of stored titles across all campaigns,
// for monitoring.
func (s *Service) TotalTitles(ctx context.Context) (int64, error) {
	count, err := s.queue.TotalCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("total titles: %w", err)
	}
	return count, nil
}

// SweepExpired deletes titles older than the configured TTL across all
// campaigns. Called by the periodic background sweeper and the cleanup
// command; the generation path additionally runs it opportunistically.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.queue.DeleteOlderThan(ctx, s.cfg.QueueTTL)
	if err != nil {
		return 0, fmt.Errorf("sweep expired titles: %w", err)
	}
	if deleted > 0 {
		s.log.InfoContext(ctx, "expired titles swept", slog.Int64("deleted", deleted))
	}
	return deleted, nil
}
