package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".config/swayc"
	DefaultConfigFile = "config.yaml"
)

// Config is the root configuration structure.
type Config struct {
	// Socket overrides SWAYSOCK when set.
	Socket string `yaml:"socket" json:"socket"`

	Retry    RetrySettings    `yaml:"retry" json:"retry"`
	Policies PolicySettings   `yaml:"policies" json:"policies"`
	Maximize MaximizeSettings `yaml:"maximize" json:"maximize"`
}

// RetrySettings bound the re-fetch loop used when a command's effect is
// not yet visible in the tree.
type RetrySettings struct {
	Attempts int      `yaml:"attempts" json:"attempts"`
	Delay    Duration `yaml:"delay" json:"delay"`
	Backoff  float64  `yaml:"backoff" json:"backoff"`
}

// Duration is a time.Duration that config files spell in Go duration
// syntax, "100ms" or "1.5s".
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"100ms\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// PolicySettings are knobs for the window-management policies.
type PolicySettings struct {
	// FallbackWorkspace names the workspace used when a view's PID is
	// unavailable for deriving one.
	FallbackWorkspace string `yaml:"fallbackWorkspace" json:"fallbackWorkspace"`
}

// MaximizeSettings give the rectangle used when the focused workspace
// reports no geometry.
type MaximizeSettings struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Retry: RetrySettings{
			Attempts: 5,
			Delay:    Duration(50 * time.Millisecond),
			Backoff:  2.0,
		},
		Policies: PolicySettings{
			FallbackWorkspace: "unknown",
		},
		Maximize: MaximizeSettings{
			Width:  1920,
			Height: 1080,
		},
	}
}

// Load reads configuration from the given path, or from
// ~/.config/swayc/config.yaml (then config.json) when path is empty.
// A missing default file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadFromBytes(data, ext)
}

// LoadFromBytes parses configuration from raw bytes. format is "yaml" or
// "json". Unset fields fall back to the defaults.
func LoadFromBytes(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be at least 1, got %d", c.Retry.Attempts)
	}
	if c.Retry.Delay < 0 {
		return fmt.Errorf("retry.delay must not be negative")
	}
	if c.Retry.Backoff < 1 {
		return fmt.Errorf("retry.backoff must be at least 1, got %v", c.Retry.Backoff)
	}
	if c.Policies.FallbackWorkspace == "" {
		return fmt.Errorf("policies.fallbackWorkspace must not be empty")
	}
	if c.Maximize.Width <= 0 || c.Maximize.Height <= 0 {
		return fmt.Errorf("maximize dimensions must be positive, got %dx%d", c.Maximize.Width, c.Maximize.Height)
	}
	return nil
}
