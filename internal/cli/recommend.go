package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/pipeline"
	"github.com/ppiankov/footfit/internal/render"
	"github.com/ppiankov/footfit/internal/wizard"
	"github.com/ppiankov/footfit/internal/worker"
)

var (
	flagAge      string
	flagWeight   string
	flagFoot     string
	flagActivity string
	flagPrefer   string

	outJSON     string
	outMD       string
	speak       bool
	noTips      bool
	noCache     bool
	narrate     bool
	llmProvider string
	llmModel    string
	timeout     time.Duration
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend footwear for one profile",
	Long: `Recommend evaluates one questionnaire profile and prints the summary card.

Unset answers take the wizard's starting positions (26-35, 50-70kg,
normal-arch, moderate). --prefer only changes the reported shoe type.

Values:
  --age       under-18, 18-25, 26-35, 36-50, 51-65, over-65
  --weight    under-50kg, 50-70kg, 71-90kg, over-90kg
  --foot      flat-arch, normal-arch, high-arch
  --activity  low, moderate, high
  --prefer    running, cross-training, casual, sandals

Example:
  footfit recommend --age over-65 --weight over-90kg --foot flat-arch --activity high
  footfit recommend --foot high-arch --json rec.json --md rec.md
  footfit recommend --activity high --narrate --llm-provider ollama --llm-model llama3.1`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	defaults := wizard.NewSession().Profile()

	recommendCmd.Flags().StringVar(&flagAge, "age", string(defaults.Age), "age group")
	recommendCmd.Flags().StringVar(&flagWeight, "weight", string(defaults.Weight), "weight category")
	recommendCmd.Flags().StringVar(&flagFoot, "foot", string(defaults.Foot), "foot type")
	recommendCmd.Flags().StringVar(&flagActivity, "activity", string(defaults.Activity), "daily activity level")
	recommendCmd.Flags().StringVar(&flagPrefer, "prefer", "", "preferred shoe type (optional)")

	// Output flags
	recommendCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	recommendCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	recommendCmd.Flags().BoolVar(&speak, "speak", false, "print the spoken summary line")
	recommendCmd.Flags().BoolVar(&noTips, "no-tips", false, "omit the tip of the day")
	recommendCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the recommendation cache")

	// LLM flags
	recommendCmd.Flags().BoolVar(&narrate, "narrate", false, "add an LLM narrative (never changes the recommendation)")
	recommendCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama); overrides config")
	recommendCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name; overrides config")
	recommendCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	applyCommonFlags(cfg)
	if !narrate {
		cfg.LLM.Provider = ""
	} else if err := requireLLM(cfg); err != nil {
		return err
	}

	profile := model.Profile{
		Age:               model.AgeBracket(flagAge),
		Weight:            model.WeightBracket(flagWeight),
		Foot:              model.FootType(flagFoot),
		Activity:          model.ActivityLevel(flagActivity),
		PreferredCategory: model.ShoeCategory(flagPrefer),
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	p := newPipeline(cfg)

	result, err := p.Run(ctx, profile)
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Rules fired: %v\n", result.Recommendation.Rules)
		if result.Narrative != nil && result.Narrative.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated narrative using %s/%s\n", result.Narrative.Provider, result.Narrative.Model)
		}
	}

	out := cmd.OutOrStdout()
	if err := p.RenderReport(out, result, outJSON, outMD, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if cfg.Output.Speak {
		fmt.Fprintf(out, "\n%s\n", render.SpeechText(result.Recommendation))
	}

	return nil
}

// applyCommonFlags lets flags that were set override configuration
func applyCommonFlags(cfg *model.Config) {
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noTips {
		cfg.Output.IncludeTips = false
	}
	if speak {
		cfg.Output.Speak = true
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
}

// newPipeline builds a pipeline with provider rate limiting installed
func newPipeline(cfg *model.Config) *pipeline.Pipeline {
	p := pipeline.NewPipeline(cfg)
	p.SetLimiter(newLimiter(cfg.RateLimiting))
	return p
}

func newLimiter(rl model.RateLimitingConfig) *worker.Limiter {
	limiter := worker.NewLimiter(rl.RequestsPerSecond, rl.BurstSize)
	for provider, rps := range rl.PerProvider {
		limiter.SetRate(provider, rps, rl.BurstSize)
	}
	return limiter
}
