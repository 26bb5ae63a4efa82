//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/autoposts/titlegen-backend/internal/adapter/postgres"
	licenserepo "github.com/autoposts/titlegen-backend/internal/adapter/postgres/license"
	"github.com/autoposts/titlegen-backend/internal/adapter/postgres/queuetitle"
	"github.com/autoposts/titlegen-backend/internal/adapter/postgres/testhelper"
	usagerepo "github.com/autoposts/titlegen-backend/internal/adapter/postgres/usage"
	"github.com/autoposts/titlegen-backend/internal/adapter/provider/openai"
	"github.com/autoposts/titlegen-backend/internal/config"
	licensesvc "github.com/autoposts/titlegen-backend/internal/service/license"
	titlesvc "github.com/autoposts/titlegen-backend/internal/service/title"
	"github.com/autoposts/titlegen-backend/internal/transport/middleware"
	"github.com/autoposts/titlegen-backend/internal/transport/rest"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// scriptedModel is a fake OpenAI-compatible chat completions endpoint.
// It returns queued responses in order; once the queue is exhausted it
// keeps returning the last one.
type scriptedModel struct {
	mu        sync.Mutex
	responses []string
	served    int
}

func (m *scriptedModel) push(titles ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, titles...)
}

func (m *scriptedModel) next() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.responses) == 0 {
		return "Untitled"
	}
	i := m.served
	if i >= len(m.responses) {
		i = len(m.responses) - 1
	}
	m.served++
	return m.responses[i]
}

func (m *scriptedModel) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": m.next()}},
			},
			"usage": map[string]int{
				"prompt_tokens":     30,
				"completion_tokens": 8,
				"total_tokens":      38,
			},
		})
	})
}

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL        string
	Client     *http.Client
	Pool       *pgxpool.Pool
	Model      *scriptedModel
	LicenseKey string
	LicenseID  int64
}

// setupTestServer bootstraps the whole application stack backed by a real
// PostgreSQL container (shared via testhelper) and a scripted generation
// endpoint instead of the real OpenAI API.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	model := &scriptedModel{}
	modelServer := httptest.NewServer(model.handler())
	t.Cleanup(modelServer.Close)

	genCfg := config.GenerationConfig{
		MaxAttempts:         3,
		SimilarityThreshold: 0.75,
		QueueTTL:            24 * time.Hour,
		SweepInterval:       time.Hour,
		ContextTitles:       15,
		CheckTitles:         50,
		BaseTemperature:     0.85,
		MaxTokens:           200,
	}

	queueRepo := queuetitle.New(pool, genCfg.QueueTTL)
	licenseRepo := licenserepo.New(pool)
	usageRepo := usagerepo.New(pool)
	txm := postgres.NewTxManager(pool)

	generator := openai.NewClient(config.OpenAIConfig{
		BaseURL: modelServer.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 10 * time.Second,
	}, logger)

	licenseService := licensesvc.NewService(logger, licenseRepo)
	titleService := titlesvc.NewService(logger, genCfg, queueRepo, generator, usageRepo, licenseRepo, txm)

	router := rest.NewRouter(rest.RouterDeps{
		Titles:    rest.NewTitleHandler(titleService, genCfg.SimilarityThreshold, logger),
		Campaigns: rest.NewCampaignHandler(titleService, logger),
		Health:    rest.NewHealthHandler(pool, "e2e"),
		Auth:      middleware.LicenseAuth(licenseService),
		Base:      middleware.Chain(middleware.RequestID, middleware.Recovery(logger), middleware.Logger(logger)),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	key := uuid.NewString()
	licenseID := testhelper.SeedLicense(t, pool, key)

	return &testServer{
		URL:        server.URL,
		Client:     server.Client(),
		Pool:       pool,
		Model:      model,
		LicenseKey: key,
		LicenseID:  licenseID,
	}
}

// postJSON issues an authenticated POST and decodes the JSON response.
func (ts *testServer) postJSON(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-License-Key", ts.LicenseKey)

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// do issues an authenticated request without a body.
func (ts *testServer) do(t *testing.T, method, path string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("X-License-Key", ts.LicenseKey)

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}
