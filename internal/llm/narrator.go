package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/footfit/internal/metrics"
	"github.com/ppiankov/footfit/internal/model"
)

// Narrator produces optional narratives. It runs after the engine and never
// feeds back into the recommendation.
type Narrator struct {
	provider Provider
	config   Config
}

// NewNarrator creates a narrator; an empty provider disables it
func NewNarrator(config Config) (*Narrator, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Narrator{provider: provider, config: config}, nil
}

// NewNarratorWithProvider wraps an existing provider
func NewNarratorWithProvider(provider Provider, config Config) *Narrator {
	return &Narrator{provider: provider, config: config}
}

// IsEnabled reports whether a provider is configured
func (n *Narrator) IsEnabled() bool {
	return n != nil && n.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (n *Narrator) ProviderName() string {
	if !n.IsEnabled() {
		return ""
	}
	return n.provider.Name()
}

// GenerateNarrative explains rec for profile p.
// Returns (nil, nil) when disabled, and a disabled narrative with a warning
// when the provider is unreachable.
func (n *Narrator) GenerateNarrative(ctx context.Context, p model.Profile, rec model.Recommendation) (*model.Narrative, error) {
	if !n.IsEnabled() {
		return nil, nil
	}

	name := n.provider.Name()

	if !n.provider.IsAvailable(ctx) {
		metrics.RecordNarrative(name, "unavailable")
		return &model.Narrative{
			Enabled:         false,
			Provider:        name,
			StrictMaterials: n.config.StrictMaterials,
			Warnings:        []string{fmt.Sprintf("LLM provider %s not available", name)},
		}, nil
	}

	resp, err := n.provider.Narrate(ctx, NarrateRequest{
		Profile:        p,
		Recommendation: rec,
		Model:          n.config.Model,
		MaxTokens:      n.config.MaxTokens,
	})
	if err != nil {
		metrics.RecordNarrative(name, "error")
		return nil, fmt.Errorf("narrate: %w", err)
	}

	metrics.RecordNarrative(name, "ok")

	warnings := []string{fmt.Sprintf("Tokens used: %d", resp.TokensUsed)}
	if n.config.StrictMaterials {
		warnings = append(warnings, fmt.Sprintf("Verified %d material mentions against the recommendation", len(resp.Materials)))
	}

	return &model.Narrative{
		Enabled:         true,
		Provider:        name,
		Model:           resp.Model,
		StrictMaterials: n.config.StrictMaterials,
		Text:            resp.Text,
		Warnings:        warnings,
	}, nil
}
