package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/speakeasy-api/oasgraph/linter"
	"github.com/speakeasy-api/oasgraph/linter/rules"
	"github.com/spf13/viper"
)

const (
	configName = ".oasgraph"
	envPrefix  = "OASGRAPH"
)

// Config is the CLI configuration.
type Config struct {
	Verbose bool
	Lint    *linter.Config
	// Strict reports references that no resolution pass bound.
	Strict bool
}

// LoadConfig reads the configuration from path, or from .oasgraph.yaml in the working directory
// when path is empty, and from OASGRAPH_* environment variables. A missing default file is not an
// error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("verbose", false)
	v.SetDefault("resolve.strict", false)
	v.SetDefault("lint.extends", []string{linter.RulesetRecommended})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	lint := linter.NewConfig()
	lint.Extends = v.GetStringSlice("lint.extends")
	if err := v.UnmarshalKey("lint.rules", &lint.Rules); err != nil {
		return nil, fmt.Errorf("failed to read lint.rules: %w", err)
	}
	if lint.Rules == nil {
		lint.Rules = map[string]linter.RuleConfig{}
	}
	if err := lint.Validate(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Verbose: v.GetBool("verbose"),
		Lint:    lint,
		Strict:  v.GetBool("resolve.strict"),
	}
	if cfg.Strict {
		enableRule(lint, rules.RuleUnresolvedReference)
	}
	return cfg, nil
}

func enableRule(cfg *linter.Config, id string) {
	rule := cfg.Rules[id]
	enabled := true
	rule.Enabled = &enabled
	cfg.Rules[id] = rule
}

func disableRule(cfg *linter.Config, id string) {
	rule := cfg.Rules[id]
	disabled := false
	rule.Enabled = &disabled
	cfg.Rules[id] = rule
}
