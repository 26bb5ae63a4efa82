package domain

// Operation types recorded for usage metering.
const (
	OperationTitle = "title"
)

// UsageRecord is one metered generation call, attributed to a license and
// optionally to a campaign.
type UsageRecord struct {
	LicenseID  int64
	Operation  string
	Usage      TokenUsage
	CampaignID string
}
