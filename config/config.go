package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/offerlens/backend/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Sources   SourcesConfig
	Matching  MatchingConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Aliases   domain.ColumnAliasSet
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SourceConfig describes one source table. List order is source priority:
// it decides both canonical spelling on registry collisions and which
// source's copy of a republished offer is kept.
type SourceConfig struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
	Kind string `mapstructure:"kind"` // "merchant" or "permanent"
}

// SourcesConfig holds the source table list
type SourcesConfig struct {
	Tables []SourceConfig `mapstructure:"tables"`
}

// BoostRuleConfig is one boosted-keyword rule for the query matcher
type BoostRuleConfig struct {
	Keyword           string `mapstructure:"keyword"`
	QueryDistance     int    `mapstructure:"query_distance"`
	CandidateDistance int    `mapstructure:"candidate_distance"`
}

// MatchingConfig holds configuration for the matching engine
type MatchingConfig struct {
	MinScoreThreshold         float64           `mapstructure:"min_score_threshold"`
	MaxSuggestionsPerCategory int               `mapstructure:"max_suggestions_per_category"`
	StrictVariantMatch        bool              `mapstructure:"strict_variant_match"`
	EnableDebugLogging        bool              `mapstructure:"enable_debug_logging"`
	BoostedKeywords           []BoostRuleConfig `mapstructure:"boosted_keywords"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/offerlens/")

	// Environment variable settings
	v.SetEnvPrefix("OFFERLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	applyDefaults(&config)

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Matching defaults
	v.SetDefault("matching.min_score_threshold", 30.0)
	v.SetDefault("matching.max_suggestions_per_category", 50)
	v.SetDefault("matching.strict_variant_match", false)
	v.SetDefault("matching.enable_debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.ttl", "15m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 300)
}

// applyDefaults fills in structured defaults viper cannot express well:
// the boosted-keyword rules and any alias list the config file left empty
func applyDefaults(config *Config) {
	if config.Matching.BoostedKeywords == nil {
		config.Matching.BoostedKeywords = []BoostRuleConfig{
			{Keyword: "select", QueryDistance: 2, CandidateDistance: 1},
		}
	}

	defaults := domain.DefaultColumnAliases()
	a := &config.Aliases
	if len(a.Credit) == 0 {
		a.Credit = defaults.Credit
	}
	if len(a.Debit) == 0 {
		a.Debit = defaults.Debit
	}
	if len(a.UPI) == 0 {
		a.UPI = defaults.UPI
	}
	if len(a.NetBanking) == 0 {
		a.NetBanking = defaults.NetBanking
	}
	if len(a.Title) == 0 {
		a.Title = defaults.Title
	}
	if len(a.Description) == 0 {
		a.Description = defaults.Description
	}
	if len(a.Image) == 0 {
		a.Image = defaults.Image
	}
	if len(a.Link) == 0 {
		a.Link = defaults.Link
	}
	if len(a.Code) == 0 {
		a.Code = defaults.Code
	}
	if len(a.TypeHint) == 0 {
		a.TypeHint = defaults.TypeHint
	}
	if len(a.PermanentName) == 0 {
		a.PermanentName = defaults.PermanentName
	}

	for i := range config.Sources.Tables {
		if config.Sources.Tables[i].Kind == "" {
			config.Sources.Tables[i].Kind = string(domain.SourceKindMerchant)
		}
	}
}

// validate validates the configuration
func validate(config *Config) error {
	if len(config.Sources.Tables) == 0 {
		return fmt.Errorf("at least one source table is required (set sources.tables)")
	}

	for _, table := range config.Sources.Tables {
		if table.Name == "" || table.URL == "" {
			return fmt.Errorf("every source table needs a name and a url")
		}
		if table.Kind != string(domain.SourceKindMerchant) && table.Kind != string(domain.SourceKindPermanent) {
			return fmt.Errorf("source kind must be 'merchant' or 'permanent', got: %s", table.Kind)
		}
	}

	if config.Matching.MinScoreThreshold < 0 || config.Matching.MinScoreThreshold > 100 {
		return fmt.Errorf("matching.min_score_threshold must be in [0, 100], got: %v", config.Matching.MinScoreThreshold)
	}

	return nil
}
