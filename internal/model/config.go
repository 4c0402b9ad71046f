package model

import "time"

// Config is the complete footfit configuration.
// Field tags serve both viper (mapstructure) and config show/init (yaml).
type Config struct {
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // trace, debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or console
}

type OutputConfig struct {
	Verbose     bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeTips bool `yaml:"include_tips" mapstructure:"include_tips"`
	Speak       bool `yaml:"speak" mapstructure:"speak"`
}

type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
	// PerProvider overrides RequestsPerSecond for a named LLM provider
	PerProvider map[string]float64 `yaml:"per_provider,omitempty" mapstructure:"per_provider"`
}

// LLMConfig configures the optional narrative provider. An empty Provider disables it.
type LLMConfig struct {
	Provider        string `yaml:"provider" mapstructure:"provider"`
	Model           string `yaml:"model" mapstructure:"model"`
	APIKey          string `yaml:"-" mapstructure:"api_key"`
	BaseURL         string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout         int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	StrictMaterials bool   `yaml:"strict_materials" mapstructure:"strict_materials"`
	MaxTokens       int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			IncludeTips: true,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Timeout:         30,
			StrictMaterials: true,
			MaxTokens:       400,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}
