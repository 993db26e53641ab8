package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanghonghuy/commitagent/internal/ai"
)

type fakeAdapter struct {
	models map[string][]ai.Model
	err    error
}

func (f *fakeAdapter) NewModelHandle(p ai.Provider, modelID string) (ai.ModelHandle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAdapter) FetchModels(ctx context.Context, p ai.Provider) ([]ai.Model, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.models[p.ID], nil
}

func TestDefaultCoversEveryProviderType(t *testing.T) {
	r := Default(nil, nil, zerolog.Nop())
	for _, pt := range ai.ProviderTypes() {
		a, err := r.Adapter(pt)
		require.NoError(t, err, pt)
		assert.NotNil(t, a, pt)
	}
}

func TestUnsupportedProviderType(t *testing.T) {
	r := Default(nil, nil, zerolog.Nop())

	_, err := r.Adapter("ollama")
	assert.ErrorIs(t, err, ai.ErrUnsupportedProviderType)

	_, err = r.NewModelHandle(ai.Provider{ID: "x", Type: "ollama"}, "llama3")
	assert.ErrorIs(t, err, ai.ErrUnsupportedProviderType)

	_, err = r.FetchModels(context.Background(), ai.Provider{ID: "x", Type: ""})
	assert.ErrorIs(t, err, ai.ErrUnsupportedProviderType)
}

func TestNewModelHandleDelegates(t *testing.T) {
	r := Default(nil, nil, zerolog.Nop())

	h, err := r.NewModelHandle(ai.Provider{Type: ai.TypeOpenAI}, "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", h.ModelID())

	_, err = r.NewModelHandle(ai.Provider{Type: ai.TypeOpenAICompatible}, "m")
	assert.ErrorIs(t, err, ai.ErrMissingBaseURL)
}

func TestNewCopiesAdapters(t *testing.T) {
	adapters := map[ai.ProviderType]ai.Adapter{ai.TypeOpenAI: &fakeAdapter{}}
	r := New(adapters, zerolog.Nop())
	delete(adapters, ai.TypeOpenAI)

	_, err := r.Adapter(ai.TypeOpenAI)
	assert.NoError(t, err)
}

func TestFetchAll(t *testing.T) {
	fetchErr := errors.New("boom")
	r := New(map[ai.ProviderType]ai.Adapter{
		ai.TypeOpenAI: &fakeAdapter{models: map[string][]ai.Model{
			"a": {{ID: "a1"}},
			"c": {{ID: "c1"}, {ID: "c2"}},
		}},
		ai.TypeGemini: &fakeAdapter{err: fetchErr},
	}, zerolog.Nop())

	providers := []ai.Provider{
		{ID: "a", Type: ai.TypeOpenAI},
		{ID: "b", Type: ai.TypeGemini},
		{ID: "c", Type: ai.TypeOpenAI},
		{ID: "d", Type: "unknown"},
	}
	listings := r.FetchAll(context.Background(), providers)
	require.Len(t, listings, 4)

	for i, l := range listings {
		assert.Equal(t, providers[i].ID, l.Provider.ID)
	}
	assert.Equal(t, []ai.Model{{ID: "a1"}}, listings[0].Models)
	assert.NoError(t, listings[0].Err)
	assert.ErrorIs(t, listings[1].Err, fetchErr)
	assert.Nil(t, listings[1].Models)
	assert.Len(t, listings[2].Models, 2)
	assert.ErrorIs(t, listings[3].Err, ai.ErrUnsupportedProviderType)
}
