// Package generation drives one commit message generation end to end:
// provider and model resolution, prompt layering, streaming and cancellation.
package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hoanghonghuy/commitagent/internal/ai"
	"github.com/hoanghonghuy/commitagent/internal/config"
	"github.com/hoanghonghuy/commitagent/internal/prompt"
)

var (
	ErrNoProviderConfigured = errors.New("no AI provider configured, add a provider in settings")
	ErrNoModelSelected      = errors.New("no model selected")
)

// Request is one generation request. Diff may be empty.
type Request struct {
	Diff string

	ProviderID string // optional override, matched by provider id
	ModelID    string // optional override, used verbatim
}

// SnapshotSource yields a fresh configuration snapshot per call.
type SnapshotSource interface {
	Load() (config.Snapshot, error)
}

// HandleFactory creates model handles, normally a *registry.Registry.
type HandleFactory interface {
	NewModelHandle(p ai.Provider, modelID string) (ai.ModelHandle, error)
}

// Orchestrator runs generations. At most one runs at a time per Session.
type Orchestrator struct {
	source  SnapshotSource
	handles HandleFactory
	prompts *prompt.Resolver
	session *Session
	log     zerolog.Logger
}

func NewOrchestrator(source SnapshotSource, handles HandleFactory, prompts *prompt.Resolver, session *Session, log zerolog.Logger) *Orchestrator {
	if session == nil {
		session = &Session{}
	}
	return &Orchestrator{
		source:  source,
		handles: handles,
		prompts: prompts,
		session: session,
		log:     log,
	}
}

// Session exposes the state machine so callers can query or stop the run.
func (o *Orchestrator) Session() *Session { return o.session }

// Stop cancels the running generation, if any.
func (o *Orchestrator) Stop() bool { return o.session.Stop() }

// Generate streams a commit message for req. Each chunk is passed to onChunk
// exactly once, in stream order, before the next one is read.
//
// If a generation is already running the call returns ("", nil) at once.
// When Stop is called the stream is abandoned at the next chunk boundary and
// the text received so far is returned without error.
func (o *Orchestrator) Generate(ctx context.Context, req Request, onChunk func(string)) (string, error) {
	if o.session.IsGenerating() {
		o.log.Debug().Msg("generation already in progress, ignoring request")
		return "", nil
	}
	genCtx, ok := o.session.Start(ctx)
	if !ok {
		return "", nil
	}
	defer o.session.Reset()

	log := o.log.With().Str("session", o.session.ID()).Logger()

	snap, err := o.source.Load()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}

	provider, ok := config.ResolveProvider(snap, req.ProviderID)
	if !ok {
		if req.ProviderID != "" {
			return "", fmt.Errorf("%w: provider %q not found or disabled", ErrNoProviderConfigured, req.ProviderID)
		}
		return "", ErrNoProviderConfigured
	}
	modelID, ok := config.ResolveModel(snap, provider, req.ModelID)
	if !ok {
		return "", fmt.Errorf("%w for provider %s", ErrNoModelSelected, provider.Name)
	}

	log.Info().
		Str("provider", provider.Name).
		Str("model", modelID).
		Str("language", snap.Language).
		Msg("generating commit message")

	text, _ := o.prompts.Build(snap, req.Diff)

	handle, err := o.handles.NewModelHandle(provider, modelID)
	if err != nil {
		return "", err
	}

	stream, err := handle.Stream(genCtx, text)
	if err != nil {
		if o.session.Stopped() {
			log.Info().Msg("generation cancelled by user")
			return "", nil
		}
		log.Error().Err(err).Msg("error calling AI provider")
		return "", err
	}
	defer stream.Close()

	var full strings.Builder
	for {
		if o.session.Stopped() {
			log.Info().Int("chars", full.Len()).Msg("generation cancelled by user")
			return strings.TrimSpace(full.String()), nil
		}

		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if o.session.Stopped() {
				log.Info().Int("chars", full.Len()).Msg("generation cancelled by user")
				return strings.TrimSpace(full.String()), nil
			}
			log.Error().Err(err).Msg("error reading AI stream")
			return "", err
		}
		if o.session.Stopped() {
			continue
		}

		full.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	}

	if o.session.Stopped() {
		return strings.TrimSpace(full.String()), nil
	}
	if full.Len() == 0 {
		return "", ai.ErrEmptyResponse
	}

	log.Debug().Int("chars", full.Len()).Msg("received full response from AI provider")
	return strings.TrimSpace(full.String()), nil
}
