package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/Harshitk-cp/voxbridge/internal/api/handlers"
	"github.com/Harshitk-cp/voxbridge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePlatform stands in for both provider APIs and counts every call.
type fakePlatform struct {
	calls     atomic.Int64
	llmStatus int
	llmBody   string
	agentBody map[string]any
}

func (f *fakePlatform) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/assistant", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"asst_1","name":"Support Bot"}`))
	})
	mux.HandleFunc("/create-retell-llm", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.WriteHeader(f.llmStatus)
		_, _ = w.Write([]byte(f.llmBody))
	})
	mux.HandleFunc("/create-agent", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&f.agentBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"agent_id":"agent_9","agent_name":"Support Bot"}`))
	})
	return mux
}

func setupApp(t *testing.T, f *fakePlatform) *App {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	app, err := NewApp(Deps{
		Providers: config.Providers{
			Vapi:   config.ProviderConfig{APIKey: "vapi-key", BaseURL: srv.URL},
			Retell: config.ProviderConfig{APIKey: "retell-key", BaseURL: srv.URL},
		},
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	return app
}

func post(t *testing.T, app *App, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

const retellScenario = `{
	"provider": "retell",
	"name": "Support Bot",
	"model": "gpt-4o-realtime",
	"voice_id": "voiceX",
	"system_prompt": "Be helpful",
	"initial_message": "Hi!"
}`

func TestCreateAgent_RetellEndToEnd(t *testing.T) {
	f := &fakePlatform{llmStatus: http.StatusCreated, llmBody: `{"llm_id":"llm_123","version":2}`}
	app := setupApp(t, f)

	rec := post(t, app, "/create-agent", retellScenario)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "retell", res["provider"])
	assert.Equal(t, "agent_9", res["agent_id"])
	assert.Equal(t, "Support Bot", res["name"])
	assert.Equal(t, "success", res["status"])
	assert.Equal(t, map[string]any{"agent_id": "agent_9", "agent_name": "Support Bot"}, res["raw_response"])
	assert.Equal(t, map[string]any{"llm_id": "llm_123", "version": float64(2)}, res["llm"])

	assert.Equal(t, int64(2), f.calls.Load())
	engine := f.agentBody["response_engine"].(map[string]any)
	assert.Equal(t, "llm_123", engine["llm_id"])
	assert.Equal(t, float64(2), engine["version"])
}

func TestCreateAgent_VapiOnV1Route(t *testing.T) {
	f := &fakePlatform{}
	app := setupApp(t, f)

	rec := post(t, app, "/v1/agents", `{"provider":"vapi","name":"Support Bot","model":"gpt-4o","voice_id":"v","system_prompt":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "asst_1", res["agent_id"])
	assert.NotContains(t, res, "llm")
	assert.Equal(t, int64(1), f.calls.Load())
}

func TestCreateAgent_UnknownProvider(t *testing.T) {
	f := &fakePlatform{}
	app := setupApp(t, f)

	rec := post(t, app, "/create-agent", `{"provider":"acme","name":"n","model":"m","voice_id":"v","system_prompt":"p"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.calls.Load())
}

func TestCreateAgent_MissingFieldsNoCalls(t *testing.T) {
	f := &fakePlatform{}
	app := setupApp(t, f)

	rec := post(t, app, "/create-agent", `{"provider":"retell","name":"n"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res["fields"], "model")
	assert.Zero(t, f.calls.Load())
}

func TestCreateAgent_LLMFailureRelayedVerbatim(t *testing.T) {
	const upstreamBody = `{"error_message":"Invalid API key","status":"error"}`
	f := &fakePlatform{llmStatus: http.StatusUnauthorized, llmBody: upstreamBody}
	app := setupApp(t, f)

	rec := post(t, app, "/create-agent", retellScenario)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, upstreamBody, string(body))
	assert.Equal(t, "create-llm", rec.Header().Get(handlers.UpstreamPhaseHeader))
	assert.Equal(t, "retell", rec.Header().Get(handlers.UpstreamProviderHeader))
	assert.Equal(t, int64(1), f.calls.Load())
	assert.Nil(t, f.agentBody)
}

func TestCreateAgent_UnparseableLLMSuccess(t *testing.T) {
	f := &fakePlatform{llmStatus: http.StatusOK, llmBody: `<html>gateway</html>`}
	app := setupApp(t, f)

	rec := post(t, app, "/create-agent", retellScenario)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error creating agent: malformed provider response")
	assert.Empty(t, rec.Header().Get(handlers.UpstreamPhaseHeader))
	assert.Equal(t, int64(1), f.calls.Load())
	assert.Nil(t, f.agentBody)
}

func TestCreateAgent_InvalidBody(t *testing.T) {
	app := setupApp(t, &fakePlatform{})

	rec := post(t, app, "/create-agent", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewApp_MissingCredential(t *testing.T) {
	_, err := NewApp(Deps{
		Providers: config.Providers{Vapi: config.ProviderConfig{APIKey: "k"}},
		Logger:    zap.NewNop(),
	})

	var mk *config.MissingKeyError
	assert.ErrorAs(t, err, &mk)
}

func TestNewApp_StartsNoBackgroundWork(t *testing.T) {
	before := runtime.NumGoroutine()

	app, err := NewApp(Deps{
		Providers: config.Providers{
			Vapi:   config.ProviderConfig{APIKey: "vapi-key", BaseURL: "http://vapi.invalid"},
			Retell: config.ProviderConfig{APIKey: "retell-key", BaseURL: "http://retell.invalid"},
		},
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)

	ctx, cancel := context.WithCancel(context.Background())
	app.StartCleanup(ctx)
	cancel()
}

func TestHealthAndVersion(t *testing.T) {
	app := setupApp(t, &fakePlatform{})

	for _, path := range []string{"/health", "/version", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), path)
	}
}
