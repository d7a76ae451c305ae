// Package config loads run settings from flags, environment and an optional
// config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/naka-gawa/reposcore/internal/domain"
	"github.com/naka-gawa/reposcore/internal/export"
	"github.com/naka-gawa/reposcore/internal/scoring"
)

// Activity sources.
const (
	SourceREST    = "rest"
	SourceGraphQL = "graphql"
)

const (
	configName      = ".reposcore"
	configType      = "yaml"
	envPrefix       = "REPOSCORE"
	tokenEnv        = "GITHUB_TOKEN"
	dotenvFile      = ".env"
	dateLayout      = "2006-01-02"
	defaultOutput   = "output"
	defaultParallel = 4
)

var defaultFormats = []string{export.FormatCSV, export.FormatTable}

// ErrInvalidConfig is returned when a setting fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings of one run.
type Config struct {
	Token        string           `mapstructure:"token"`
	Output       string           `mapstructure:"output"`
	Formats      []string         `mapstructure:"formats"`
	Source       string           `mapstructure:"source"`
	Since        string           `mapstructure:"since"`
	Until        string           `mapstructure:"until"`
	Concurrency  int              `mapstructure:"concurrency"`
	ShowAPILimit bool             `mapstructure:"show_api_limit"`
	Labels       scoring.LabelSet `mapstructure:"labels"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"token":          "token",
	"output":         "output",
	"format":         "formats",
	"source":         "source",
	"since":          "since",
	"until":          "until",
	"concurrency":    "concurrency",
	"show-api-limit": "show_api_limit",
}

// Load builds the configuration from defaults, config file, REPOSCORE_* env vars
// and flags, in increasing precedence. If configPath is empty, .reposcore.yaml is
// searched in the working directory and $HOME; a missing file is not an error.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Formats = splitFormats(cfg.Formats)

	if cfg.Token == "" {
		cfg.Token = resolveToken()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("token", "")
	v.SetDefault("output", defaultOutput)
	v.SetDefault("formats", defaultFormats)
	v.SetDefault("source", SourceREST)
	v.SetDefault("concurrency", defaultParallel)
	v.SetDefault("since", "")
	v.SetDefault("until", "")
	v.SetDefault("show_api_limit", false)
	v.SetDefault("labels.feature_bugfix", []string{})
	v.SetDefault("labels.docs", []string{})
	v.SetDefault("labels.typo", []string{})
}

// resolveToken falls back to GITHUB_TOKEN and then to a .env file in the working directory.
func resolveToken() string {
	if token := os.Getenv(tokenEnv); token != "" {
		return token
	}
	env, err := godotenv.Read(dotenvFile)
	if err != nil {
		return ""
	}
	return env[tokenEnv]
}

// splitFormats accepts both repeated and comma separated values.
func splitFormats(raw []string) []string {
	var formats []string
	for _, item := range raw {
		for _, f := range strings.Split(item, ",") {
			f = strings.ToLower(strings.TrimSpace(f))
			if f != "" && !slices.Contains(formats, f) {
				formats = append(formats, f)
			}
		}
	}
	return formats
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Source != SourceREST && c.Source != SourceGraphQL {
		return fmt.Errorf("%w: source must be %q or %q, got %q", ErrInvalidConfig, SourceREST, SourceGraphQL, c.Source)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("%w: at least one output format is required", ErrInvalidConfig)
	}
	for _, f := range c.Formats {
		if _, err := export.Lookup(f); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalidConfig)
	}
	window, err := c.Window()
	if err != nil {
		return err
	}
	if !window.Since.IsZero() && !window.Until.IsZero() && window.Until.Before(window.Since) {
		return fmt.Errorf("%w: until %s is before since %s", ErrInvalidConfig, c.Until, c.Since)
	}
	return nil
}

// Window converts the since/until dates. Until covers the whole given day.
func (c *Config) Window() (domain.DateWindow, error) {
	var w domain.DateWindow
	if c.Since != "" {
		since, err := time.Parse(dateLayout, c.Since)
		if err != nil {
			return w, fmt.Errorf("%w: invalid since date %q, use YYYY-MM-DD", ErrInvalidConfig, c.Since)
		}
		w.Since = since
	}
	if c.Until != "" {
		until, err := time.Parse(dateLayout, c.Until)
		if err != nil {
			return w, fmt.Errorf("%w: invalid until date %q, use YYYY-MM-DD", ErrInvalidConfig, c.Until)
		}
		w.Until = until.Add(24*time.Hour - time.Nanosecond)
	}
	return w, nil
}

// Classifier builds the label classifier from the configured aliases.
func (c *Config) Classifier() *scoring.Classifier {
	return scoring.NewClassifier(c.Labels)
}
