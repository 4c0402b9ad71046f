package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/validate"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()

	// Flag variables are package state shared by every command
	flagPrefer, outJSON, outMD, llmProvider, llmModel, outputPath = "", "", "", "", "", ""
	speak, noTips, noCache, narrate = false, false, false, false
	concurrency = 0

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "footfit "+Version) {
		t.Errorf("Unexpected output: %s", out)
	}
}

func TestRecommendCommand(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "rec.json")

	out, err := execute(t, "recommend",
		"--age", "over-65", "--weight", "over-90kg", "--foot", "flat-arch", "--activity", "high",
		"--json", jsonPath, "--no-tips", "--speak")
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	for _, want := range []string{"Running shoes", "dual-density firm midsole", "Recommended Running shoes."} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read JSON: %v", err)
	}
	if !strings.Contains(string(data), `"arch_support": "high"`) {
		t.Errorf("Unexpected JSON: %s", data)
	}
}

func TestRecommendCommand_InvalidValue(t *testing.T) {
	_, err := execute(t, "recommend", "--foot", "webbed")
	if !errors.Is(err, validate.ErrInvalidDomainValue) {
		t.Fatalf("Expected ErrInvalidDomainValue, got %v", err)
	}
}

func TestRecommendCommand_NarrateWithoutProvider(t *testing.T) {
	t.Setenv("FOOTFIT_LLM_PROVIDER", "")
	_, err := execute(t, "recommend", "--narrate")
	if err == nil || !strings.Contains(err.Error(), "no LLM provider") {
		t.Fatalf("Expected missing provider error, got %v", err)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FOOTFIT_CONCURRENCY_WORKERS", "9")
	t.Setenv("FOOTFIT_LLM_PROVIDER", "ollama")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama.local:11434")

	viper.Reset()
	initConfig()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Concurrency.Workers != 9 {
		t.Errorf("Expected 9 workers from env, got %d", cfg.Concurrency.Workers)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.BaseURL != "http://ollama.local:11434" {
		t.Errorf("Unexpected LLM config: %+v", cfg.LLM)
	}
	if cfg.Cache.TTL != model.DefaultConfig().Cache.TTL {
		t.Errorf("Expected default cache TTL, got %v", cfg.Cache.TTL)
	}
}

func TestNewLimiter_PerProviderRate(t *testing.T) {
	viper.Reset()
	viper.SetConfigType("yaml")
	yamlConfig := `
rate_limiting:
  requests_per_second: 50
  burst_size: 1
  per_provider:
    Ollama: 0.01
`
	if err := viper.ReadConfig(strings.NewReader(yamlConfig)); err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	defer viper.Reset()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	limiter := newLimiter(cfg.RateLimiting)
	ready := func(provider string) bool {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()
		return limiter.Wait(ctx, provider) == nil
	}

	if !ready("ollama") {
		t.Fatal("Expected the first ollama call to pass")
	}
	if ready("ollama") {
		t.Error("Expected ollama to be throttled by its per-provider rate")
	}
	if !ready("openai") {
		t.Error("Expected openai to use the default rate")
	}
}

func TestRequireLLM(t *testing.T) {
	tests := []struct {
		name    string
		llm     model.LLMConfig
		wantErr bool
	}{
		{"none", model.LLMConfig{}, true},
		{"openai without key", model.LLMConfig{Provider: "openai"}, true},
		{"openai with key", model.LLMConfig{Provider: "openai", APIKey: "sk-test"}, false},
		{"ollama without model", model.LLMConfig{Provider: "ollama"}, true},
		{"ollama with model", model.LLMConfig{Provider: "ollama", Model: "llama3.1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireLLM(&model.Config{LLM: tt.llm})
			if (err != nil) != tt.wantErr {
				t.Errorf("requireLLM() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}

	var cfg model.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("config is not valid YAML: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Concurrency.Workers != 4 {
		t.Errorf("Unexpected config contents: %+v", cfg)
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("Expected error when the config file already exists")
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "profiles.yaml")
	output := filepath.Join(dir, "results.json")

	content := `profiles:
  - id: a
    age: 26-35
    weight: 50-70kg
    foot: normal-arch
    activity: moderate
  - id: b
    age: 18-25
    weight: 50-70kg
    foot: webbed
    activity: low
`
	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "batch", input, "--output", output, "--concurrency", "2"); err != nil {
		t.Fatalf("batch failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"shoe_category": "cross-training"`) {
		t.Errorf("Expected cross-training for a, got:\n%s", out)
	}
	if !strings.Contains(out, "invalid-domain-value") {
		t.Errorf("Expected per-entry error for b, got:\n%s", out)
	}
	if !strings.Contains(out, `"foot": "webbed"`) {
		t.Errorf("Expected failed entry to echo its input profile, got:\n%s", out)
	}
	if strings.Index(out, `"id": "a"`) > strings.Index(out, `"id": "b"`) {
		t.Errorf("Expected input order, got:\n%s", out)
	}
}
