// Package config loads tool settings from a .glint.yaml file found in
// the working directory or any parent. Every setting has a default, so
// a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/glintjs/glint/js/parser"
)

type Config struct {
	// SourceType is "script" or "module"; "auto" infers module from the
	// file extension (.mjs, .mts) at parse time.
	SourceType string `mapstructure:"sourceType"`
	// JSX enables JSX syntax for .jsx files and, when true here, for
	// every file.
	JSX bool `mapstructure:"jsx"`
	// TriviaPolicy is "same-line-trailing" or "all-leading".
	TriviaPolicy string `mapstructure:"triviaPolicy"`
	// Rules maps rule names to an on/off switch. Rules absent from the
	// map run with their default.
	Rules map[string]bool `mapstructure:"rules"`
	// Exclude lists path globs skipped by the runner.
	Exclude []string `mapstructure:"exclude"`
	// Jobs caps parallel file processing; zero means one per CPU.
	Jobs int `mapstructure:"jobs"`
}

func Default() *Config {
	return &Config{
		SourceType:   "auto",
		TriviaPolicy: "same-line-trailing",
		Rules:        map[string]bool{},
	}
}

// Load reads .glint.yaml starting at dir and walking up. A missing
// file yields the defaults.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".glint")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	for _, parent := range parentDirs(dir) {
		v.AddConfigPath(parent)
	}

	v.SetDefault("sourceType", "auto")
	v.SetDefault("triviaPolicy", "same-line-trailing")
	v.SetDefault("jsx", false)
	v.SetDefault("jobs", 0)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SourceType {
	case "auto", "script", "module":
	default:
		return fmt.Errorf("config: unknown sourceType %q (want auto, script, or module)", c.SourceType)
	}
	switch c.TriviaPolicy {
	case "same-line-trailing", "all-leading":
	default:
		return fmt.Errorf("config: unknown triviaPolicy %q (want same-line-trailing or all-leading)", c.TriviaPolicy)
	}
	return nil
}

// RuleEnabled reports whether the named rule should run. Keys loaded
// from a config file arrive lowercased, so the lookup folds case.
func (c *Config) RuleEnabled(name string) bool {
	if enabled, ok := c.Rules[name]; ok {
		return enabled
	}
	for key, enabled := range c.Rules {
		if strings.EqualFold(key, name) {
			return enabled
		}
	}
	return true
}

// ParserOptions translates the config into parse options for one file.
func (c *Config) ParserOptions(path string) []parser.Option {
	var opts []parser.Option

	sourceType := c.SourceType
	if sourceType == "auto" {
		if strings.HasSuffix(path, ".mjs") || strings.HasSuffix(path, ".mts") {
			sourceType = "module"
		} else {
			sourceType = "script"
		}
	}
	if sourceType == "module" {
		opts = append(opts, parser.WithSourceType(parser.SourceModule))
	}

	if c.JSX || strings.HasSuffix(path, ".jsx") || strings.HasSuffix(path, ".tsx") {
		opts = append(opts, parser.WithJSX())
	}

	if c.TriviaPolicy == "all-leading" {
		opts = append(opts, parser.WithTriviaPolicy(parser.TriviaAllLeading))
	}
	return opts
}

func parentDirs(dir string) []string {
	var parents []string
	for {
		idx := strings.LastIndexByte(dir, '/')
		if idx <= 0 {
			break
		}
		dir = dir[:idx]
		parents = append(parents, dir)
	}
	return parents
}
