// Package pipeline runs one profile through validation, the cache, the rule
// engine and optional narration.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/ppiankov/footfit/internal/cache"
	"github.com/ppiankov/footfit/internal/llm"
	"github.com/ppiankov/footfit/internal/logging"
	"github.com/ppiankov/footfit/internal/metrics"
	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/recommend"
	"github.com/ppiankov/footfit/internal/render"
	"github.com/ppiankov/footfit/internal/validate"
)

// RateLimiter throttles narration calls per provider
type RateLimiter interface {
	Wait(ctx context.Context, key string) error
}

// Pipeline orchestrates a single recommendation
type Pipeline struct {
	recommender *recommend.Recommender
	cache       cache.Cache
	narrator    *llm.Narrator // nil if disabled
	limiter     RateLimiter   // nil means unlimited
	renderer    *render.Renderer
	config      *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	log := logging.With("pipeline")

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	var narrator *llm.Narrator
	if cfg.LLM.Provider != "" {
		n, err := llm.NewNarrator(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			log.Warn().Err(err).Str("provider", cfg.LLM.Provider).Msg("failed to initialize LLM provider, narration disabled")
		} else {
			narrator = n
		}
	}

	return &Pipeline{
		recommender: recommend.NewRecommender(),
		cache:       c,
		narrator:    narrator,
		renderer:    render.NewRenderer(cfg.Output.IncludeTips),
		config:      cfg,
	}
}

// SetLimiter installs a narration rate limiter
func (p *Pipeline) SetLimiter(l RateLimiter) {
	p.limiter = l
}

// Result contains one completed recommendation
type Result struct {
	Profile        model.Profile        `json:"profile"`
	Recommendation model.Recommendation `json:"recommendation"`
	Narrative      *model.Narrative     `json:"narrative,omitempty"`
	Cached         bool                 `json:"cached"`
}

// Run validates profile, recommends and optionally narrates.
// Only validation fails the run; narration problems are logged.
func (p *Pipeline) Run(ctx context.Context, profile model.Profile) (*Result, error) {
	log := logging.With("pipeline")

	// 1. Validate
	if err := validate.Profile(profile); err != nil {
		var domainErr *validate.DomainError
		if errors.As(err, &domainErr) {
			for _, f := range domainErr.Fields {
				metrics.RecordValidationError(f.Field)
			}
		}
		return nil, err
	}

	result := &Result{Profile: profile}

	// 2. Cache lookup
	key := cache.Key(profile)
	if rec, ok := p.lookup(key); ok {
		result.Recommendation = rec
		result.Cached = true
		log.Debug().Str("key", key).Msg("cache hit")
	} else {
		// 3. Engine
		rec, err := p.recommender.Recommend(profile)
		if err != nil {
			return nil, fmt.Errorf("recommend: %w", err)
		}
		result.Recommendation = rec

		// 4. Cache store
		p.store(key, rec)
	}

	metrics.RecordRecommendation(string(result.Recommendation.ShoeCategory), string(result.Recommendation.Cushioning))

	// 5. Narrate AFTER the engine; never affects the recommendation
	if p.narrator.IsEnabled() {
		narrative, err := p.narrate(ctx, profile, result.Recommendation)
		if err != nil {
			log.Warn().Err(err).Str("provider", p.narrator.ProviderName()).Msg("narrative generation failed")
		} else if narrative != nil {
			result.Narrative = narrative
		}
	}

	return result, nil
}

func (p *Pipeline) narrate(ctx context.Context, profile model.Profile, rec model.Recommendation) (*model.Narrative, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, p.narrator.ProviderName()); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	return p.narrator.GenerateNarrative(ctx, profile, rec)
}

func (p *Pipeline) lookup(key string) (model.Recommendation, bool) {
	if p.cache == nil {
		return model.Recommendation{}, false
	}

	data, ok := p.cache.Get(key)
	if !ok {
		metrics.RecordCacheMiss()
		return model.Recommendation{}, false
	}

	var rec model.Recommendation
	if err := json.Unmarshal(data, &rec); err != nil {
		logging.With("pipeline").Warn().Err(err).Str("key", key).Msg("dropping undecodable cache entry")
		_ = p.cache.Delete(key)
		metrics.RecordCacheMiss()
		return model.Recommendation{}, false
	}

	metrics.RecordCacheHit()
	return rec, true
}

func (p *Pipeline) store(key string, rec model.Recommendation) {
	if p.cache == nil {
		return
	}

	data, err := json.Marshal(rec)
	if err != nil {
		logging.With("pipeline").Warn().Err(err).Msg("failed to encode recommendation for cache")
		return
	}
	if err := p.cache.Set(key, data, p.config.Cache.TTL); err != nil {
		logging.With("pipeline").Warn().Err(err).Msg("failed to cache recommendation")
	}
}

// RenderReport writes the requested files and prints the summary to w
func (p *Pipeline) RenderReport(w io.Writer, result *Result, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result.Recommendation, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			_, _ = fmt.Fprintf(w, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result.Recommendation, result.Narrative, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			_, _ = fmt.Fprintf(w, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(w, result.Recommendation)

	if n := result.Narrative; n != nil {
		if n.Enabled {
			_, _ = fmt.Fprintf(w, "\n  Narrative (%s/%s):\n  %s\n", n.Provider, n.Model, n.Text)
		}
		if verbose || !n.Enabled {
			for _, warning := range n.Warnings {
				_, _ = fmt.Fprintf(w, "  ! %s\n", warning)
			}
		}
	}

	return nil
}
