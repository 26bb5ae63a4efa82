// Package provider defines the neutral contracts for external
// text-generation services, decoupled from any concrete vendor API.
package provider

import "github.com/autoposts/titlegen-backend/internal/domain"

// TextResult is the structured result of one generation call.
type TextResult struct {
	Content string
	Usage   domain.TokenUsage
}
