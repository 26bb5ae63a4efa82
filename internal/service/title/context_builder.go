package title

import (
	"fmt"
	"strings"
)

// buildQueueContext appends the avoid-list block to the base prompt.
// When titles is empty the prompt is returned unchanged: single-shot
// requests and fresh campaigns must never see dedup instructions.
func buildQueueContext(basePrompt string, titles []string) string {
	if len(titles) == 0 {
		return basePrompt
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n---\n\n")
	b.WriteString("IMPORTANT — TITLES ALREADY GENERATED IN THIS CAMPAIGN:\n")
	b.WriteString("Do NOT repeat or paraphrase any of these. Produce something COMPLETELY different:\n\n")

	for _, t := range titles {
		b.WriteString("- ")
		b.WriteString(t)
		b.WriteString("\n")
	}

	b.WriteString("\nThe new title must be UNIQUE and DISTINCT from all of the above.\n")
	b.WriteString("Vary the structure, the angle, the highlighted benefit, or the perspective.\n")

	return b.String()
}

// buildEscalationNotice produces the anti-repetition block appended after a
// rejected attempt. It always names the prior title that triggered the
// rejection, and grows more explicit with each retry.
func buildEscalationNotice(rejectedTitle, matchedTitle string, score float64, attempt int) string {
	var b strings.Builder
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "ATTENTION (attempt %d): your previous suggestion %q was rejected — "+
		"it is %.0f%% similar to the existing title %q.\n",
		attempt, rejectedTitle, score*100, matchedTitle)

	switch {
	case attempt <= 2:
		b.WriteString("Choose a different structure and a different opening word.\n")
	default:
		b.WriteString("This is your LAST chance. Discard every idea from the rejected title. " +
			"Change the topic angle entirely: different benefit, different audience, different tone. " +
			"Do NOT reuse its key nouns or verbs.\n")
	}

	return b.String()
}
