// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config registers configuration defaults, decodes the viper state
// into types.Config, and validates the result.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// EnvPrefix prefixes environment overrides, e.g. ARXIV_DIGEST_API_MAX_RESULTS.
const EnvPrefix = "ARXIV_DIGEST"

const (
	DefaultUserAgent = "arxiv-digest/0.1"
	DefaultBaseURL   = "https://export.arxiv.org/api/query"
)

// defaultSections are the two sections of the standard report: algebraic
// geometry on its own, representation theory and quantum algebra merged.
var defaultSections = []map[string]any{
	{
		"name":              "AG",
		"categories":        []string{"math.AG"},
		"count_macro":       "AGnumber",
		"count_placeholder": "1",
		"sort":              false,
	},
	{
		"name":              "RT&QA",
		"categories":        []string{"math.RT", "math.QA"},
		"count_macro":       "RTQAnumber",
		"count_placeholder": "2",
		"sort":              true,
	},
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", 60*time.Second)
	v.SetDefault("api.user_agent", DefaultUserAgent)
	v.SetDefault("api.max_results", 50)
	v.SetDefault("api.max_attempts", 3)
	v.SetDefault("api.base_delay", 5*time.Second)
	v.SetDefault("api.max_jitter", time.Second)
	v.SetDefault("api.request_delay", 3*time.Second)
	v.SetDefault("api.window_days", 0)

	v.SetDefault("sections", defaultSections)

	v.SetDefault("template.path", "template.tex")
	v.SetDefault("template.date_macro", "NewestDate")
	v.SetDefault("template.date_format", "January 2, 2006")
	v.SetDefault("template.comment_prefix", "%")

	v.SetDefault("format.macro", "arxiv")
	v.SetDefault("format.et_al", " et al.")
	v.SetDefault("format.escape", false)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.dated_subdir", "")
	v.SetDefault("output.latest", "latest.tex")
}

// BindEnv enables ARXIV_DIGEST_* overrides for every registered key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it. Defaults must already be
// registered on v.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints and that section sentinels are unique.
func Validate(cfg types.Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Sections))
	for _, s := range cfg.Sections {
		if seen[s.Name] {
			return fmt.Errorf("invalid configuration: duplicate section %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Default returns the configuration with every default applied.
func Default() types.Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		// The defaults are static; failing to load them is a programming error.
		panic(err)
	}
	return cfg
}
