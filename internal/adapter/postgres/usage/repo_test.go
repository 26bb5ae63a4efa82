package usage_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/autoposts/titlegen-backend/internal/adapter/postgres/testhelper"
	"github.com/autoposts/titlegen-backend/internal/adapter/postgres/usage"
	"github.com/autoposts/titlegen-backend/internal/domain"
)

func TestRecord(t *testing.T) {
	t.Parallel()

	pool := testhelper.SetupTestDB(t)
	licenseID := testhelper.SeedLicense(t, pool, uuid.NewString())
	repo := usage.New(pool)
	ctx := context.Background()

	campaign := uuid.NewString()
	err := repo.Record(ctx, domain.UsageRecord{
		LicenseID:  licenseID,
		Operation:  domain.OperationTitle,
		Usage:      domain.TokenUsage{PromptTokens: 40, CompletionTokens: 10, TotalTokens: 50},
		CampaignID: campaign,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	var (
		op                  string
		total, prompt, comp int
		gotCampaign         *string
	)
	err = pool.QueryRow(ctx,
		`SELECT operation_type, total_tokens, prompt_tokens, completion_tokens, campaign_id
		 FROM usage_tracking WHERE license_id = $1`, licenseID,
	).Scan(&op, &total, &prompt, &comp, &gotCampaign)
	if err != nil {
		t.Fatalf("query row: %v", err)
	}

	if op != domain.OperationTitle {
		t.Errorf("operation = %q", op)
	}
	if total != 50 || prompt != 40 || comp != 10 {
		t.Errorf("tokens = %d/%d/%d", total, prompt, comp)
	}
	if gotCampaign == nil || *gotCampaign != campaign {
		t.Errorf("campaign = %v, want %q", gotCampaign, campaign)
	}
}

func TestRecord_WithoutCampaignStoresNull(t *testing.T) {
	t.Parallel()

	pool := testhelper.SetupTestDB(t)
	licenseID := testhelper.SeedLicense(t, pool, uuid.NewString())
	repo := usage.New(pool)
	ctx := context.Background()

	err := repo.Record(ctx, domain.UsageRecord{
		LicenseID: licenseID,
		Operation: domain.OperationTitle,
		Usage:     domain.TokenUsage{TotalTokens: 5},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	var gotCampaign *string
	err = pool.QueryRow(ctx,
		`SELECT campaign_id FROM usage_tracking WHERE license_id = $1`, licenseID,
	).Scan(&gotCampaign)
	if err != nil {
		t.Fatalf("query row: %v", err)
	}
	if gotCampaign != nil {
		t.Errorf("campaign = %v, want NULL", *gotCampaign)
	}
}
