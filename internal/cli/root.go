package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/footfit/internal/logging"
	"github.com/ppiankov/footfit/internal/model"
)

// Version is set at build time with -ldflags
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "footfit",
	Short: "Footfit - rule-based footwear recommendations",
	Long: `Footfit turns a short questionnaire (age group, weight category, foot type,
activity level and an optional preferred shoe type) into a footwear
recommendation: shoe type, arch support, cushioning, up to two materials
and the reasons behind them.

The recommendation is deterministic. An optional LLM narrative can explain
it in plain language but never changes it.

Footfit is general guidance, not medical advice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logging.Init(logging.Config{Level: level, Format: cfg.Logging.Format})
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "footfit %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.footfit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.footfit")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// FOOTFIT_LLM_PROVIDER overrides llm.provider, and so on
	viper.SetEnvPrefix("FOOTFIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults(model.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(d *model.Config) {
	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.format", d.Logging.Format)
	viper.SetDefault("output.verbose", d.Output.Verbose)
	viper.SetDefault("output.include_tips", d.Output.IncludeTips)
	viper.SetDefault("output.speak", d.Output.Speak)
	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.ttl", d.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", d.Cache.CleanupInterval)
	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)
	viper.SetDefault("rate_limiting.requests_per_second", d.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", d.RateLimiting.BurstSize)
	viper.SetDefault("llm.provider", d.LLM.Provider)
	viper.SetDefault("llm.model", d.LLM.Model)
	viper.SetDefault("llm.api_key", d.LLM.APIKey)
	viper.SetDefault("llm.base_url", d.LLM.BaseURL)
	viper.SetDefault("llm.timeout", d.LLM.Timeout)
	viper.SetDefault("llm.strict_materials", d.LLM.StrictMaterials)
	viper.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", d.Server.WriteTimeout)
}

// loadConfig merges defaults, config file and environment into a model.Config
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	// Provider-native variables, as their SDKs document them
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.BaseURL == "" && strings.EqualFold(cfg.LLM.Provider, "ollama") {
		cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	return cfg, nil
}

// requireLLM checks the provider has what it needs before any work starts
func requireLLM(cfg *model.Config) error {
	switch strings.ToLower(cfg.LLM.Provider) {
	case "":
		return fmt.Errorf("no LLM provider configured (set llm.provider or FOOTFIT_LLM_PROVIDER)")
	case "openai":
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if cfg.LLM.Model == "" {
			return fmt.Errorf("ollama needs a model (set llm.model or --llm-model)")
		}
	}
	return nil
}
