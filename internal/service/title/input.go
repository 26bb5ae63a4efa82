package title

import (
	"strings"

	"github.com/autoposts/titlegen-backend/internal/domain"
)

// GenerateInput holds the parameters for one title generation request.
// Prompt and Topic are alternatives: at least one must be set, Prompt wins
// when both are. CampaignID is optional; without it the request is a
// single-shot generation with no dedup scope.
type GenerateInput struct {
	Prompt             string
	Topic              string
	CampaignID         string
	LicenseID          int64
	CompanyDescription string
	Keywords           []string
	KeywordsSEO        []string
}

// Validate checks required fields.
func (in GenerateInput) Validate() error {
	if strings.TrimSpace(in.Prompt) == "" && strings.TrimSpace(in.Topic) == "" {
		return domain.NewValidationError("prompt", "prompt or topic is required")
	}
	if in.CampaignID != "" && in.LicenseID == 0 {
		return domain.NewValidationError("license_id", "required for campaign requests")
	}
	return nil
}

// instructionPreamble frames every title request for the generation
// service. Context fields from the request are appended below it.
const instructionPreamble = "You are an expert marketing copywriter. " +
	"Write ONE short, catchy article title. " +
	"Return only the title text, without quotes or numbering."

// basePrompt assembles the full generation prompt from the request fields,
// before any queue context is appended.
func (in GenerateInput) basePrompt() string {
	var b strings.Builder
	b.WriteString(instructionPreamble)

	if desc := strings.TrimSpace(in.CompanyDescription); desc != "" {
		b.WriteString("\n\nAbout the company: ")
		b.WriteString(desc)
	}

	intent := strings.TrimSpace(in.Prompt)
	if intent == "" {
		intent = strings.TrimSpace(in.Topic)
	}
	b.WriteString("\n\nTitle request: ")
	b.WriteString(intent)

	if kw := joinKeywords(in.KeywordsSEO, in.Keywords); kw != "" {
		b.WriteString("\n\nKeywords to consider: ")
		b.WriteString(kw)
	}

	return b.String()
}

// joinKeywords merges both keyword lists into one comma-separated string,
// skipping blanks.
func joinKeywords(lists ...[]string) string {
	var all []string
	for _, list := range lists {
		for _, kw := range list {
			if kw = strings.TrimSpace(kw); kw != "" {
				all = append(all, kw)
			}
		}
	}
	return strings.Join(all, ", ")
}
