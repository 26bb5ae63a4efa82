package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/autoposts/titlegen-backend/internal/domain"
)

// campaignService defines the minimal interface needed by CampaignHandler.
type campaignService interface {
	ClearQueue(ctx context.Context, campaignID string) error
	QueueStats(ctx context.Context, campaignID string) (domain.QueueStats, error)
}

// CampaignHandler serves campaign queue administration endpoints.
type CampaignHandler struct {
	svc campaignService
	log *slog.Logger
}

// NewCampaignHandler creates a CampaignHandler.
func NewCampaignHandler(svc campaignService, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{svc: svc, log: logger.With("handler", "campaign")}
}

type statsResponse struct {
	Count        int        `json:"count"`
	FirstCreated *time.Time `json:"first_created"`
	LastCreated  *time.Time `json:"last_created"`
}

// Clear handles DELETE /v1/campaigns/{id}/titles.
func (h *CampaignHandler) Clear(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("id")

	if err := h.svc.ClearQueue(r.Context(), campaignID); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

// Stats handles GET /v1/campaigns/{id}/stats.
func (h *CampaignHandler) Stats(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("id")

	stats, err := h.svc.QueueStats(r.Context(), campaignID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Count:        stats.Count,
		FirstCreated: stats.FirstCreated,
		LastCreated:  stats.LastCreated,
	})
}

func (h *CampaignHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
