package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanghonghuy/commitagent/internal/ai"
)

func TestFetchModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models", r.URL.Path)
		assert.Equal(t, "g-key", r.URL.Query().Get("key"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"models":[
			{"name":"models/gemini-1.5-pro","displayName":"Gemini 1.5 Pro"},
			{"name":"models/gemini-1.5-flash"}
		]}`))
	}))
	defer srv.Close()

	models, err := NewAdapter(nil, nil).FetchModels(context.Background(), ai.Provider{APIKey: "g-key", BaseURL: srv.URL + "/v1beta"})
	require.NoError(t, err)
	assert.Equal(t, []ai.Model{
		{ID: "gemini-1.5-pro", Name: "Gemini 1.5 Pro"},
		{ID: "gemini-1.5-flash", Name: "models/gemini-1.5-flash"},
	}, models)
}

func TestFetchModelsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewAdapter(nil, nil).FetchModels(context.Background(), ai.Provider{Name: "g", BaseURL: srv.URL})
	assert.ErrorIs(t, err, ai.ErrModelFetchFailed)
	assert.Contains(t, err.Error(), "400 Bad Request")
}

func TestNewModelHandleWithoutBaseURL(t *testing.T) {
	h, err := NewAdapter(nil, nil).NewModelHandle(ai.Provider{APIKey: "k"}, "models/gemini-pro")
	require.NoError(t, err)
	assert.Equal(t, "models/gemini-pro", h.ModelID())

	c := h.(*Client)
	assert.Equal(t, DefaultBaseURL+"/models/gemini-pro:streamGenerateContent?alt=sse&key=k", c.endpoint())
}

func TestStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/x:streamGenerateContent", r.URL.Path)
		assert.Equal(t, "sse", r.URL.Query().Get("alt"))
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		fmt.Fprint(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"feat: \"},{\"text\":\"add\"}]}}]}\n\n")
		fmt.Fprint(w, "data: {\"candidates\":[]}\n\n")
		fmt.Fprint(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\" feature\"}]}}]}\n\n")
	}))
	defer srv.Close()

	h, err := NewAdapter(nil, nil).NewModelHandle(ai.Provider{APIKey: "k", BaseURL: srv.URL}, "x")
	require.NoError(t, err)

	s, err := h.Stream(context.Background(), "diff")
	require.NoError(t, err)
	defer s.Close()

	var got []string
	for {
		chunk, err := s.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, chunk)
	}
	assert.Equal(t, []string{"feat: add", " feature"}, got)
}

func TestStreamErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"error\":{\"code\":429,\"message\":\"rate limited\",\"status\":\"RESOURCE_EXHAUSTED\"}}\n\n")
	}))
	defer srv.Close()

	h, err := NewAdapter(nil, nil).NewModelHandle(ai.Provider{BaseURL: srv.URL}, "x")
	require.NoError(t, err)
	s, err := h.Stream(context.Background(), "diff")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Recv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestStreamNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	h, err := NewAdapter(nil, nil).NewModelHandle(ai.Provider{Name: "g", BaseURL: srv.URL}, "x")
	require.NoError(t, err)

	_, err = h.Stream(context.Background(), "diff")
	var apiErr *ai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
