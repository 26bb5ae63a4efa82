package rest

import (
	"net/http"

	"github.com/autoposts/titlegen-backend/internal/transport/middleware"
)

// RouterDeps bundles the handlers and middleware the router mounts.
type RouterDeps struct {
	Titles    *TitleHandler
	Campaigns *CampaignHandler
	Health    *HealthHandler
	// Auth guards the /v1 API routes; health endpoints stay open.
	Auth middleware.Middleware
	// Base wraps every route (request id, logging, recovery).
	Base middleware.Middleware
}

// NewRouter builds the HTTP route table.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", deps.Health.Health)
	mux.HandleFunc("GET /health/live", deps.Health.Live)
	mux.HandleFunc("GET /health/ready", deps.Health.Ready)

	api := http.NewServeMux()
	api.HandleFunc("POST /v1/titles/generate", deps.Titles.Generate)
	api.HandleFunc("DELETE /v1/campaigns/{id}/titles", deps.Campaigns.Clear)
	api.HandleFunc("GET /v1/campaigns/{id}/stats", deps.Campaigns.Stats)

	mux.Handle("/v1/", deps.Auth(api))

	return deps.Base(mux)
}
