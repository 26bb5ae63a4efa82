package title

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/autoposts/titlegen-backend/internal/domain"
	"github.com/autoposts/titlegen-backend/internal/service/title/similarity"
)

// Escalation constants for the retry loop. Temperature starts at the
// configured base and is capped at 1.0; the frequency penalty grows per
// attempt; the presence penalty stays fixed.
const (
	temperatureStep      = 0.05
	baseFrequencyPenalty = 0.5
	frequencyPenaltyStep = 0.1
	presencePenalty      = 0.4
)

// Generate runs the duplicate-avoidance generation loop for one request.
//
// Without a campaign id the first generated title is accepted verbatim and
// nothing is persisted. With a campaign id, each candidate is scored
// against the campaign's recent titles; candidates at or above the
// similarity threshold are rejected and regenerated with escalating
// parameters and stronger prompt instructions, up to the attempt budget.
// The final attempt is always accepted, similar or not.
//
// Only a generation transport failure aborts the request. Queue reads and
// writes fail open: dedup is a quality feature, not a correctness
// requirement, and the caller still deserves a title.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*domain.GenerationResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	basePrompt := input.basePrompt()

	if input.CampaignID == "" {
		return s.generateSingle(ctx, input, basePrompt)
	}
	return s.generateInCampaign(ctx, input, basePrompt)
}

// generateSingle is the no-dedup path: one call, unconditional acceptance.
func (s *Service) generateSingle(ctx context.Context, input GenerateInput, prompt string) (*domain.GenerationResult, error) {
	params := s.paramsForAttempt(1)

	out, err := s.gen.Generate(ctx, prompt, params)
	if err != nil {
		return nil, fmt.Errorf("generate title: %w", err)
	}

	result := &domain.GenerationResult{
		Title: strings.TrimSpace(out.Content),
		Usage: out.Usage,
	}

	s.meterUsage(ctx, input, result.Usage)
	return result, nil
}

// generateInCampaign runs the full attempt loop under the campaign lock.
func (s *Service) generateInCampaign(ctx context.Context, input GenerateInput, basePrompt string) (*domain.GenerationResult, error) {
	unlock := s.locks.Lock(input.CampaignID)
	defer unlock()

	// Opportunistic sweep; a failure here never blocks generation.
	if _, err := s.queue.DeleteOlderThan(ctx, s.cfg.QueueTTL); err != nil {
		s.log.WarnContext(ctx, "queue sweep failed",
			slog.String("campaign_id", input.CampaignID),
			slog.String("error", err.Error()),
		)
	}

	existing, err := s.queue.Recent(ctx, input.CampaignID, s.cfg.CheckTitles)
	if err != nil {
		// Fail open: behave as if the queue were empty.
		s.log.WarnContext(ctx, "queue read failed",
			slog.String("campaign_id", input.CampaignID),
			slog.String("error", err.Error()),
		)
		existing = nil
	}

	contextTitles := existing
	if len(contextTitles) > s.cfg.ContextTitles {
		contextTitles = contextTitles[:s.cfg.ContextTitles]
	}

	result := &domain.GenerationResult{Deduped: true}
	var lastRejection *domain.Attempt

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		prompt := buildQueueContext(basePrompt, contextTitles)
		if lastRejection != nil {
			prompt += buildEscalationNotice(
				lastRejection.Title, lastRejection.MatchedTitle, lastRejection.Score, attempt,
			)
		}

		params := s.paramsForAttempt(attempt)

		out, err := s.gen.Generate(ctx, prompt, params)
		if err != nil {
			// Transport errors are fatal for the whole request, even
			// mid-loop. No retry: retries exist only for similarity
			// rejection.
			return nil, fmt.Errorf("generate title (attempt %d): %w", attempt, err)
		}

		candidate := strings.TrimSpace(out.Content)
		result.Usage.Add(out.Usage)

		match := s.checkCandidate(ctx, input.CampaignID, candidate, existing)

		trace := domain.Attempt{
			Number:       attempt,
			Title:        candidate,
			Score:        match.Score,
			MatchedTitle: match.Text,
			Params:       params,
		}

		if !match.Similar || attempt == s.cfg.MaxAttempts {
			trace.Status = domain.AttemptAccepted
			result.Attempts = append(result.Attempts, trace)
			result.Title = candidate
			result.Forced = match.Similar
			break
		}

		trace.Status = domain.AttemptRejected
		result.Attempts = append(result.Attempts, trace)
		lastRejection = &trace

		s.log.InfoContext(ctx, "title rejected as too similar",
			slog.String("campaign_id", input.CampaignID),
			slog.Int("attempt", attempt),
			slog.Float64("score", match.Score),
			slog.String("matched", match.Text),
		)
	}

	if result.Forced {
		// Accepted over threshold because the budget ran out. Kept for
		// bounded latency and cost; surfaced in the debug trace for
		// product review.
		s.log.WarnContext(ctx, "similar title force-accepted on final attempt",
			slog.String("campaign_id", input.CampaignID),
			slog.Int("attempts", len(result.Attempts)),
		)
	}

	if err := s.queue.Append(ctx, input.CampaignID, input.LicenseID, result.Title); err != nil {
		// Degraded, not fatal: the caller still gets the title.
		s.log.ErrorContext(ctx, "queue append failed",
			slog.String("campaign_id", input.CampaignID),
			slog.String("error", err.Error()),
		)
	}

	s.meterUsage(ctx, input, result.Usage)
	return result, nil
}

// checkCandidate combines the exact-duplicate lookup with the fuzzy score.
// The exact check hits the queue table directly, so it also covers titles
// beyond the recent window used for fuzzy scoring. Queue errors fail open.
func (s *Service) checkCandidate(ctx context.Context, campaignID, candidate string, existing []string) similarity.Match {
	exact, err := s.queue.Exists(ctx, campaignID, candidate)
	if err != nil {
		s.log.WarnContext(ctx, "exact duplicate check failed",
			slog.String("campaign_id", campaignID),
			slog.String("error", err.Error()),
		)
	} else if exact {
		return similarity.Match{Similar: true, Score: 1.0, Text: candidate}
	}

	return similarity.MostSimilar(candidate, existing, s.cfg.SimilarityThreshold)
}

// paramsForAttempt computes the monotonically escalating sampling
// parameters for the given attempt number (1-based).
func (s *Service) paramsForAttempt(attempt int) domain.GenerationParams {
	temp := s.cfg.BaseTemperature + temperatureStep*float64(attempt-1)
	if temp > 1.0 {
		temp = 1.0
	}
	return domain.GenerationParams{
		Temperature:      temp,
		MaxTokens:        s.cfg.MaxTokens,
		FrequencyPenalty: baseFrequencyPenalty + frequencyPenaltyStep*float64(attempt-1),
		PresencePenalty:  presencePenalty,
	}
}

// meterUsage records token consumption for billing and bumps the license
// counter in one transaction. Metering failures are logged, never surfaced.
func (s *Service) meterUsage(ctx context.Context, input GenerateInput, usage domain.TokenUsage) {
	if input.LicenseID == 0 || usage.TotalTokens == 0 {
		return
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.usage.Record(txCtx, domain.UsageRecord{
			LicenseID:  input.LicenseID,
			Operation:  domain.OperationTitle,
			Usage:      usage,
			CampaignID: input.CampaignID,
		}); err != nil {
			return fmt.Errorf("record usage: %w", err)
		}
		if err := s.licenses.IncrementTokens(txCtx, input.LicenseID, usage.TotalTokens); err != nil {
			return fmt.Errorf("increment license tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.ErrorContext(ctx, "usage metering failed",
			slog.Int64("license_id", input.LicenseID),
			slog.String("error", err.Error()),
		)
	}
}
