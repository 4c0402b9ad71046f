package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/pipeline"
)

// Runner runs one profile through the recommendation pipeline
type Runner interface {
	Run(ctx context.Context, profile model.Profile) (*pipeline.Result, error)
}

// BatchProfile is one entry of a batch file
type BatchProfile struct {
	ID            string `yaml:"id"`
	model.Profile `yaml:",inline"`
}

// BatchFile is the YAML layout read by ProcessFile
type BatchFile struct {
	Profiles []BatchProfile `yaml:"profiles"`
}

// RecommendJob evaluates one batch entry
type RecommendJob struct {
	Index  int
	Entry  BatchProfile
	Runner Runner
}

// Execute executes the recommendation job
func (j *RecommendJob) Execute(ctx context.Context) Result {
	result, err := j.Runner.Run(ctx, j.Entry.Profile)
	return &RecommendResult{
		Index:   j.Index,
		ID:      j.Entry.ID,
		Profile: j.Entry.Profile,
		Result:  result,
		Error:   err,
	}
}

// RecommendResult is the outcome of one batch entry. Profile is the input
// as read, so failed entries still show what was rejected.
type RecommendResult struct {
	Index   int
	ID      string
	Profile model.Profile
	Result  *pipeline.Result
	Error   error
}

// GetError returns the error from the recommendation
func (r *RecommendResult) GetError() error {
	return r.Error
}

// BatchProcessor evaluates many profiles concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessProfiles evaluates entries concurrently and returns results in input order.
// Entries that never ran because ctx was cancelled carry ctx's error.
func (b *BatchProcessor) ProcessProfiles(ctx context.Context, entries []BatchProfile) []*RecommendResult {
	if len(entries) == 0 {
		return []*RecommendResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()
	defer pool.Shutdown()

	go func() {
		defer pool.Close()
		for i, entry := range entries {
			if !pool.Submit(&RecommendJob{Index: i, Entry: entry, Runner: b.runner}) {
				return
			}
		}
	}()

	out := make([]*RecommendResult, len(entries))
	for _, r := range pool.Collect() {
		rr := r.(*RecommendResult)
		out[rr.Index] = rr
	}

	for i, rr := range out {
		if rr == nil {
			err := ctx.Err()
			if err == nil {
				err = errors.New("not processed")
			}
			out[i] = &RecommendResult{Index: i, ID: entries[i].ID, Profile: entries[i].Profile, Error: err}
		}
	}

	return out
}

// ProcessFile reads a YAML batch file and processes it concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*RecommendResult, error) {
	entries, err := ReadProfilesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	return b.ProcessProfiles(ctx, entries), nil
}

// ReadProfilesFromFile reads batch entries from a YAML file.
// Missing IDs become "profile-N" (1-based); duplicate IDs are rejected.
func ReadProfilesFromFile(filePath string) ([]BatchProfile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadProfiles(file)
}

// ReadProfiles decodes batch entries from r
func ReadProfiles(r io.Reader) ([]BatchProfile, error) {
	var batch BatchFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&batch); err != nil {
		if errors.Is(err, io.EOF) {
			return []BatchProfile{}, nil
		}
		return nil, fmt.Errorf("decode YAML: %w", err)
	}

	seen := make(map[string]bool, len(batch.Profiles))
	for i := range batch.Profiles {
		if batch.Profiles[i].ID == "" {
			batch.Profiles[i].ID = fmt.Sprintf("profile-%d", i+1)
		}
		id := batch.Profiles[i].ID
		if seen[id] {
			return nil, fmt.Errorf("duplicate profile id %q", id)
		}
		seen[id] = true
	}

	if batch.Profiles == nil {
		batch.Profiles = []BatchProfile{}
	}
	return batch.Profiles, nil
}

// Summarize counts successful and failed results
func Summarize(results []*RecommendResult) (succeeded, failed int) {
	for _, r := range results {
		if r.Error != nil {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}
