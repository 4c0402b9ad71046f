package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/worker"
)

var (
	concurrency  int
	outputPath   string
	batchTimeout time.Duration
)

// batchEntry is one line of the batch output
type batchEntry struct {
	ID             string                `json:"id"`
	Profile        model.Profile         `json:"profile"`
	Recommendation *model.Recommendation `json:"recommendation,omitempty"`
	Narrative      *model.Narrative      `json:"narrative,omitempty"`
	Error          string                `json:"error,omitempty"`
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Recommend for every profile in a YAML file",
	Long: `Batch evaluates many profiles concurrently and keeps input order.

The input file lists profiles under a top-level key:

  profiles:
    - id: alice
      age: 26-35
      weight: 50-70kg
      foot: normal-arch
      activity: moderate
    - id: bob
      age: over-65
      weight: over-90kg
      foot: flat-arch
      activity: high
      preferred: sandals

Missing ids become profile-1, profile-2, ... Invalid entries are reported
individually and do not stop the batch.

Example:
  footfit batch profiles.yaml
  footfit batch profiles.yaml --concurrency 8 --output results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputPath, "output", "", "write results as JSON to this path (default: stdout)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the recommendation cache")

	// LLM flags
	batchCmd.Flags().BoolVar(&narrate, "narrate", false, "add an LLM narrative to each result")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama); overrides config")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name; overrides config")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCommonFlags(cfg)
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if !narrate {
		cfg.LLM.Provider = ""
	} else if err := requireLLM(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Footfit Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(newPipeline(cfg), cfg.Concurrency.Workers)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	entries := make([]batchEntry, 0, len(results))
	for _, r := range results {
		entry := batchEntry{ID: r.ID, Profile: r.Profile}
		if r.Error != nil {
			entry.Error = r.Error.Error()
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.ID, r.Error)
		} else {
			rec := r.Result.Recommendation
			entry.Recommendation = &rec
			entry.Narrative = r.Result.Narrative
			fmt.Fprintf(os.Stderr, "✓ %s: %s\n", r.ID, rec.ShoeCategory.Label())
		}
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	data = append(data, '\n')

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	succeeded, failed := worker.Summarize(results)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d profiles\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", succeeded)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failed)
	if outputPath != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputPath)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
