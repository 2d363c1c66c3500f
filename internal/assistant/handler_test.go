package assistant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(engine *fakeCompleter) *httptest.Server {
	log := zap.NewNop()
	router := NewRouter(
		NewDashboardHandler(engine, log),
		NewSettingsHandler(engine, log),
		NewExtensionHandler(engine, log),
		log,
	)
	h := NewHTTPHandler(router, 500, 5*time.Second, log)

	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return httptest.NewServer(r)
}

func TestUnifiedRejectsOverlongQuery(t *testing.T) {
	engine := &fakeCompleter{reply: `{"response_message": "ok"}`}
	srv := newTestServer(engine)
	defer srv.Close()

	body := `{"query": "` + strings.Repeat("a", 501) + `"}`
	resp, err := http.Post(srv.URL+"/api/chat/unified", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	// The completion engine must never run for a rejected request.
	assert.Empty(t, engine.requests)
}

func TestUnifiedRejectsMissingQuery(t *testing.T) {
	engine := &fakeCompleter{}
	srv := newTestServer(engine)
	defer srv.Close()

	for _, body := range []string{`{}`, `{"metadata": {"page": "settings"}}`, `not json`} {
		resp, err := http.Post(srv.URL+"/api/chat/unified", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
	}
	assert.Empty(t, engine.requests)
}

func TestUnifiedProcessesDashboardQuery(t *testing.T) {
	engine := &fakeCompleter{
		reply: `{"filters": {"categories": ["Electronics"]}, "response_message": "Here are Electronics products."}`,
	}
	srv := newTestServer(engine)
	defer srv.Close()

	body := `{"query": "show me electronics", "metadata": {"page": "dashboard"}, "contextData": {"availableCategories": ["Electronics"]}}`
	resp, err := http.Post(srv.URL+"/api/chat/unified", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.NotNil(t, got.Filters)
	assert.Equal(t, []string{"Electronics"}, got.Filters.Categories)
	assert.Equal(t, "Here are Electronics products.", got.ResponseMessage)
}

func TestUnifiedDegradesOnEngineFailure(t *testing.T) {
	engine := &fakeCompleter{err: assert.AnError}
	srv := newTestServer(engine)
	defer srv.Close()

	body := `{"query": "show me electronics"}`
	resp, err := http.Post(srv.URL+"/api/chat/unified", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	// A broken turn is still a 200 with an apologetic reply.
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, ErrorResponseMessage, got.ResponseMessage)
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(&fakeCompleter{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/chat/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "ok", got["status"])
	assert.NotEmpty(t, got["timestamp"])
}
