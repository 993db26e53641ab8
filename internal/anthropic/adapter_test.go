package anthropic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanghonghuy/commitagent/internal/ai"
)

func newTestAdapter() *Adapter {
	return NewAdapter(nil, nil, zerolog.Nop())
}

func TestFetchModelsWithoutBaseURL(t *testing.T) {
	models, err := newTestAdapter().FetchModels(context.Background(), ai.Provider{Type: ai.TypeAnthropic})
	require.NoError(t, err)
	assert.Equal(t, KnownModels, models)
	assert.Len(t, models, 5)

	// callers must not be able to mutate the built-in list
	models[0].ID = "changed"
	assert.Equal(t, "claude-sonnet-4-20250514", KnownModels[0].ID)
}

func TestFetchModelsFromProxy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer proxy-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"id":"claude-x","name":"Claude X"}]}`))
	}))
	defer srv.Close()

	models, err := newTestAdapter().FetchModels(context.Background(), ai.Provider{APIKey: "proxy-key", BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, []ai.Model{{ID: "claude-x", Name: "Claude X"}}, models)
}

func TestFetchModelsFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"missing data", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"models":[]}`)) }},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`<html>`)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			models, err := newTestAdapter().FetchModels(context.Background(), ai.Provider{BaseURL: srv.URL})
			require.NoError(t, err)
			assert.Equal(t, KnownModels, models)
		})
	}

	t.Run("unreachable proxy", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		models, err := newTestAdapter().FetchModels(context.Background(), ai.Provider{BaseURL: url})
		require.NoError(t, err)
		assert.Equal(t, KnownModels, models)
	})
}

func TestNewModelHandle(t *testing.T) {
	_, err := newTestAdapter().NewModelHandle(ai.Provider{Name: "claude", Type: ai.TypeAnthropic}, "claude-3-opus-20240229")
	assert.ErrorIs(t, err, ai.ErrMissingBaseURL)

	h, err := newTestAdapter().NewModelHandle(ai.Provider{BaseURL: "http://localhost:4000/v1"}, "claude-3-opus-20240229")
	require.NoError(t, err)
	assert.Equal(t, "claude-3-opus-20240229", h.ModelID())
}
