// Package license validates the license keys clients present to the API.
package license

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/autoposts/titlegen-backend/internal/domain"
)

type licenseRepo interface {
	GetByKey(ctx context.Context, key string) (*domain.License, error)
}

// Service validates license keys against the license store.
type Service struct {
	repo licenseRepo
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new license Service.
func NewService(log *slog.Logger, repo licenseRepo) *Service {
	return &Service{
		repo: repo,
		log:  log.With("service", "license"),
		now:  time.Now,
	}
}

// Validate checks a license key and returns the license when it is usable:
// existing, active, not expired, and within its token budget. All
// rejections wrap domain.ErrLicense.
func (s *Service) Validate(ctx context.Context, key string) (*domain.License, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("missing license key: %w", domain.ErrLicense)
	}

	lic, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown license key: %w", domain.ErrLicense)
		}
		return nil, fmt.Errorf("lookup license: %w", err)
	}

	if !lic.IsActive(s.now()) {
		reason := "license is " + string(lic.Status)
		if lic.Status == domain.LicenseActive {
			reason = "license expired"
		}
		s.log.InfoContext(ctx, "inactive license rejected",
			slog.Int64("license_id", lic.ID),
			slog.String("status", string(lic.Status)),
		)
		return nil, fmt.Errorf("%s: %w", reason, domain.ErrLicense)
	}

	if lic.OverBudget() {
		s.log.InfoContext(ctx, "license over token budget",
			slog.Int64("license_id", lic.ID),
			slog.Int64("tokens_used", lic.TokensUsed),
			slog.Int64("token_limit", lic.TokenLimit),
		)
		return nil, fmt.Errorf("token limit exhausted: %w", domain.ErrLicense)
	}

	return lic, nil
}
