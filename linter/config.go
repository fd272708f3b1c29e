package linter

import (
	"fmt"
	"io"
	"os"

	"github.com/speakeasy-api/oasgraph/validation"
	"gopkg.in/yaml.v3"
)

// RulesetRecommended is the ruleset extended by default.
const RulesetRecommended = "recommended"

// Config represents the linter configuration
type Config struct {
	// Extends specifies rulesets to extend (e.g., "recommended", "all")
	Extends []string `yaml:"extends,omitempty" json:"extends,omitempty" mapstructure:"extends"`

	// Rules contains per-rule configuration
	Rules map[string]RuleConfig `yaml:"rules,omitempty" json:"rules,omitempty" mapstructure:"rules"`
}

// RuleConfig configures a specific rule
type RuleConfig struct {
	// Enabled controls whether the rule is active
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty" mapstructure:"enabled"`

	// Severity overrides the default severity
	Severity *validation.Severity `yaml:"severity,omitempty" json:"severity,omitempty" mapstructure:"severity"`

	// Options contains rule-specific configuration
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty" mapstructure:"options"`
}

// GetSeverity returns the effective severity, falling back to default if not overridden
func (c *RuleConfig) GetSeverity(defaultSeverity validation.Severity) validation.Severity {
	if c != nil && c.Severity != nil {
		return *c.Severity
	}
	return defaultSeverity
}

// NewConfig creates a new default configuration
func NewConfig() *Config {
	return &Config{
		Extends: []string{RulesetRecommended},
		Rules:   make(map[string]RuleConfig),
	}
}

// Validate checks that every configured severity is known.
func (c *Config) Validate() error {
	for id, rule := range c.Rules {
		if rule.Severity == nil {
			continue
		}
		switch *rule.Severity {
		case validation.SeverityError, validation.SeverityWarning, validation.SeverityHint:
		default:
			return fmt.Errorf("rule %q: unknown severity %q", id, *rule.Severity)
		}
	}
	return nil
}

// LoadConfig loads lint configuration from a YAML reader.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := NewConfig()
	cfg.Extends = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Extends) == 0 {
		cfg.Extends = []string{RulesetRecommended}
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFromFile loads lint configuration from a YAML file.
func LoadConfigFromFile(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return LoadConfig(f)
}
