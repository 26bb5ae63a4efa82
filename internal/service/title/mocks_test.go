package title

import (
	"context"
	"sync"
	"time"

	"github.com/autoposts/titlegen-backend/internal/domain"
	"github.com/autoposts/titlegen-backend/internal/provider"
)

// Hand-written mocks following the moq call-recording convention.

type queueRepoMock struct {
	AppendFunc          func(ctx context.Context, campaignID string, licenseID int64, text string) error
	RecentFunc          func(ctx context.Context, campaignID string, limit int) ([]string, error)
	ExistsFunc          func(ctx context.Context, campaignID, text string) (bool, error)
	ClearFunc           func(ctx context.Context, campaignID string) error
	StatsFunc           func(ctx context.Context, campaignID string) (domain.QueueStats, error)
	DeleteOlderThanFunc func(ctx context.Context, ttl time.Duration) (int64, error)
	TotalCountFunc      func(ctx context.Context) (int64, error)

	mu    sync.Mutex
	calls struct {
		Append []struct {
			CampaignID string
			LicenseID  int64
			Text       string
		}
		Recent []struct {
			CampaignID string
			Limit      int
		}
		Exists []struct {
			CampaignID string
			Text       string
		}
		Clear           []struct{ CampaignID string }
		Stats           []struct{ CampaignID string }
		DeleteOlderThan []struct{ TTL time.Duration }
		TotalCount      []struct{}
	}
}

func (m *queueRepoMock) Append(ctx context.Context, campaignID string, licenseID int64, text string) error {
	m.mu.Lock()
	m.calls.Append = append(m.calls.Append, struct {
		CampaignID string
		LicenseID  int64
		Text       string
	}{campaignID, licenseID, text})
	m.mu.Unlock()
	if m.AppendFunc == nil {
		return nil
	}
	return m.AppendFunc(ctx, campaignID, licenseID, text)
}

func (m *queueRepoMock) Recent(ctx context.Context, campaignID string, limit int) ([]string, error) {
	m.mu.Lock()
	m.calls.Recent = append(m.calls.Recent, struct {
		CampaignID string
		Limit      int
	}{campaignID, limit})
	m.mu.Unlock()
	if m.RecentFunc == nil {
		return nil, nil
	}
	return m.RecentFunc(ctx, campaignID, limit)
}

func (m *queueRepoMock) Exists(ctx context.Context, campaignID, text string) (bool, error) {
	m.mu.Lock()
	m.calls.Exists = append(m.calls.Exists, struct {
		CampaignID string
		Text       string
	}{campaignID, text})
	m.mu.Unlock()
	if m.ExistsFunc == nil {
		return false, nil
	}
	return m.ExistsFunc(ctx, campaignID, text)
}

func (m *queueRepoMock) Clear(ctx context.Context, campaignID string) error {
	m.mu.Lock()
	m.calls.Clear = append(m.calls.Clear, struct{ CampaignID string }{campaignID})
	m.mu.Unlock()
	if m.ClearFunc == nil {
		return nil
	}
	return m.ClearFunc(ctx, campaignID)
}

func (m *queueRepoMock) Stats(ctx context.Context, campaignID string) (domain.QueueStats, error) {
	m.mu.Lock()
	m.calls.Stats = append(m.calls.Stats, struct{ CampaignID string }{campaignID})
	m.mu.Unlock()
	if m.StatsFunc == nil {
		return domain.QueueStats{}, nil
	}
	return m.StatsFunc(ctx, campaignID)
}

func (m *queueRepoMock) DeleteOlderThan(ctx context.Context, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	m.calls.DeleteOlderThan = append(m.calls.DeleteOlderThan, struct{ TTL time.Duration }{ttl})
	m.mu.Unlock()
	if m.DeleteOlderThanFunc == nil {
		return 0, nil
	}
	return m.DeleteOlderThanFunc(ctx, ttl)
}

func (m *queueRepoMock) TotalCount(ctx context.Context) (int64, error) {
	m.mu.Lock()
	m.calls.TotalCount = append(m.calls.TotalCount, struct{}{})
	m.mu.Unlock()
	if m.TotalCountFunc == nil {
		return 0, nil
	}
	return m.TotalCountFunc(ctx)
}

func (m *queueRepoMock) AppendCalls() []struct {
	CampaignID string
	LicenseID  int64
	Text       string
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Append
}

func (m *queueRepoMock) RecentCalls() []struct {
	CampaignID string
	Limit      int
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Recent
}

type generatorMock struct {
	GenerateFunc func(ctx context.Context, prompt string, params domain.GenerationParams) (*provider.TextResult, error)

	mu    sync.Mutex
	calls []struct {
		Prompt string
		Params domain.GenerationParams
	}
}

func (m *generatorMock) Generate(ctx context.Context, prompt string, params domain.GenerationParams) (*provider.TextResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, struct {
		Prompt string
		Params domain.GenerationParams
	}{prompt, params})
	m.mu.Unlock()
	return m.GenerateFunc(ctx, prompt, params)
}

func (m *generatorMock) GenerateCalls() []struct {
	Prompt string
	Params domain.GenerationParams
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type usageRepoMock struct {
	RecordFunc func(ctx context.Context, rec domain.UsageRecord) error

	mu    sync.Mutex
	calls []domain.UsageRecord
}

func (m *usageRepoMock) Record(ctx context.Context, rec domain.UsageRecord) error {
	m.mu.Lock()
	m.calls = append(m.calls, rec)
	m.mu.Unlock()
	if m.RecordFunc == nil {
		return nil
	}
	return m.RecordFunc(ctx, rec)
}

func (m *usageRepoMock) RecordCalls() []domain.UsageRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type licenseRepoMock struct {
	IncrementTokensFunc func(ctx context.Context, licenseID int64, tokens int) error

	mu    sync.Mutex
	calls []struct {
		LicenseID int64
		Tokens    int
	}
}

func (m *licenseRepoMock) IncrementTokens(ctx context.Context, licenseID int64, tokens int) error {
	m.mu.Lock()
	m.calls = append(m.calls, struct {
		LicenseID int64
		Tokens    int
	}{licenseID, tokens})
	m.mu.Unlock()
	if m.IncrementTokensFunc == nil {
		return nil
	}
	return m.IncrementTokensFunc(ctx, licenseID, tokens)
}

func (m *licenseRepoMock) IncrementTokensCalls() []struct {
	LicenseID int64
	Tokens    int
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// txManagerMock runs the callback directly, no transaction semantics.
type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}
