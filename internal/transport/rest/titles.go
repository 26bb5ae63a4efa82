package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/autoposts/titlegen-backend/internal/domain"
	"github.com/autoposts/titlegen-backend/internal/service/title"
	"github.com/autoposts/titlegen-backend/pkg/ctxutil"
)

// titleService defines the minimal interface needed by TitleHandler.
type titleService interface {
	Generate(ctx context.Context, input title.GenerateInput) (*domain.GenerationResult, error)
}

// TitleHandler serves the title generation endpoint.
type TitleHandler struct {
	svc       titleService
	threshold float64
	log       *slog.Logger
}

// NewTitleHandler creates a TitleHandler. The similarity threshold is only
// echoed in the debug block of campaign responses.
func NewTitleHandler(svc titleService, threshold float64, logger *slog.Logger) *TitleHandler {
	return &TitleHandler{svc: svc, threshold: threshold, log: logger.With("handler", "title")}
}

type generateRequest struct {
	Prompt             string   `json:"prompt"`
	Topic              string   `json:"topic"`
	CampaignID         string   `json:"campaign_id"`
	CompanyDescription string   `json:"company_description"`
	Keywords           []string `json:"keywords"`
	KeywordsSEO        []string `json:"keywords_seo"`
}

type generateResponse struct {
	Title string         `json:"title"`
	Debug *debugResponse `json:"debug,omitempty"`
}

type debugResponse struct {
	Attempts       int               `json:"attempts"`
	Threshold      string            `json:"threshold"`
	Forced         bool              `json:"forced"`
	AttemptsDetail []attemptResponse `json:"attempts_detail"`
}

type attemptResponse struct {
	Title            string  `json:"title"`
	Score            float64 `json:"score"`
	MatchedTitle     string  `json:"matched_title,omitempty"`
	Accepted         bool    `json:"accepted"`
	Temperature      float64 `json:"temperature"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
}

// Generate handles POST /v1/titles/generate.
func (h *TitleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	licenseID, _ := ctxutil.LicenseIDFromCtx(r.Context())

	result, err := h.svc.Generate(r.Context(), title.GenerateInput{
		Prompt:             req.Prompt,
		Topic:              req.Topic,
		CampaignID:         req.CampaignID,
		LicenseID:          licenseID,
		CompanyDescription: req.CompanyDescription,
		Keywords:           req.Keywords,
		KeywordsSEO:        req.KeywordsSEO,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGenerateResponse(result, h.threshold))
}

func toGenerateResponse(result *domain.GenerationResult, threshold float64) generateResponse {
	resp := generateResponse{Title: result.Title}

	if !result.Deduped {
		return resp
	}

	debug := &debugResponse{
		Attempts:       len(result.Attempts),
		Threshold:      fmt.Sprintf("%.2f", threshold),
		Forced:         result.Forced,
		AttemptsDetail: make([]attemptResponse, 0, len(result.Attempts)),
	}
	for _, a := range result.Attempts {
		debug.AttemptsDetail = append(debug.AttemptsDetail, attemptResponse{
			Title:            a.Title,
			Score:            a.Score,
			MatchedTitle:     a.MatchedTitle,
			Accepted:         a.Status == domain.AttemptAccepted,
			Temperature:      a.Params.Temperature,
			FrequencyPenalty: a.Params.FrequencyPenalty,
		})
	}
	resp.Debug = debug

	return resp
}

func (h *TitleHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrGeneration):
		h.log.ErrorContext(r.Context(), "generation failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "generation service unavailable")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
