package domain

// GenerationParams are the sampling parameters sent to the text-generation
// service. FrequencyPenalty and Temperature are escalated across retry
// attempts; PresencePenalty stays fixed.
type GenerationParams struct {
	Temperature      float64
	MaxTokens        int
	FrequencyPenalty float64
	PresencePenalty  float64
}

// TokenUsage is the token accounting reported by the generation service
// for a single call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Add accumulates usage from another call.
func (u *TokenUsage) Add(other TokenUsage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// AttemptStatus tags the outcome of a single generation attempt.
type AttemptStatus string

const (
	AttemptAccepted AttemptStatus = "accepted"
	AttemptRejected AttemptStatus = "rejected"
)

// Attempt records one iteration of the duplicate-avoidance loop.
// For rejected attempts MatchedTitle names the prior title that triggered
// the rejection; for accepted attempts it is empty unless acceptance was
// forced on the final attempt.
type Attempt struct {
	Number       int
	Title        string
	Status       AttemptStatus
	Score        float64
	MatchedTitle string
	Params       GenerationParams
}

// GenerationResult is the final outcome of one title generation request.
type GenerationResult struct {
	Title    string
	Attempts []Attempt
	// Forced is true when the last attempt's title was accepted despite
	// being over the similarity threshold, because the retry budget ran out.
	Forced bool
	Usage  TokenUsage
	// Deduped reports whether the request ran the campaign-scoped
	// duplicate-avoidance loop at all.
	Deduped bool
}
