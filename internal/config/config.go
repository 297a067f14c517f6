// Package config loads and validates the theshit configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/logger"
	"github.com/AliyaRazyapova/theshit/internal/rules"
	"github.com/AliyaRazyapova/theshit/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

var cfgLog = logger.New("config")

// Config represents the theshit configuration
type Config struct {
	// Shell overrides shell detection ("bash", "zsh", "fish").
	// Empty means detect from SH_SHELL or the process ancestry.
	Shell    string         `yaml:"shell" validate:"omitempty,oneof=bash zsh fish"`
	LogLevel types.LogLevel `yaml:"log_level"`
	NoColor  bool           `yaml:"no_color"`
	Rules    RulesConfig    `yaml:"rules"`
	Rerun    RerunConfig    `yaml:"rerun"`
}

// RulesConfig holds rule selection settings
type RulesConfig struct {
	// Native lists enabled compiled-in rules, tried in this order.
	Native []string `yaml:"native" validate:"dive,nativerule"`
	// ScriptDir is the directory scanned for *.star script rules
	// (default: ~/.theshit/rules.d).
	ScriptDir string `yaml:"script_dir"`
	// Ignore lists glob patterns; script rule files whose base name
	// matches any pattern are skipped during discovery.
	Ignore []string `yaml:"ignore"`
}

// RerunConfig controls re-running the failed command to capture its
// output for rule matching.
type RerunConfig struct {
	Enabled bool `yaml:"enabled"`
	// Timeout in seconds for the capture run.
	Timeout int `yaml:"timeout" validate:"gte=1,lte=300"`
}

// DefaultConfigPath returns the default config file path (~/.theshit/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".theshit", "config.yaml")
}

// DefaultScriptRulesDir returns the default script rules directory.
func DefaultScriptRulesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".theshit/rules.d"
	}
	return filepath.Join(home, ".theshit", "rules.d")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Shell:    "",
		LogLevel: types.LogLevelWarn,
		NoColor:  false,
		Rules: RulesConfig{
			Native: []string{
				"sudo", "to_cd", "unsudo", "mkdir_p",
				"cargo_no_command", "git_not_command",
			},
			ScriptDir: DefaultScriptRulesDir(),
			Ignore:    []string{"_*"},
		},
		Rerun: RerunConfig{
			Enabled: true,
			Timeout: 5,
		},
	}
}

// newValidator builds the struct validator with the custom nativerule
// check wired in.
func newValidator() *validator.Validate {
	v := validator.New()
	// A rule name is valid only when it parses against the closed set.
	_ = v.RegisterValidation("nativerule", func(fl validator.FieldLevel) bool {
		_, err := rules.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks all Config fields and returns a multi-error report.
// Call this AFTER CLI overrides have been applied, not during Load().
func (c *Config) Validate() error {
	var errs []string

	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Tag() {
				case "nativerule":
					errs = append(errs, fmt.Sprintf(
						"rules.native: unknown rule %q (valid: %s)",
						fe.Value(), strings.Join(rules.AllNames(), ", ")))
				case "oneof":
					errs = append(errs, fmt.Sprintf(
						"shell: must be one of bash, zsh, fish (got %q)", fe.Value()))
				default:
					errs = append(errs, fmt.Sprintf("%s: failed %s validation", fe.Namespace(), fe.Tag()))
				}
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if !c.LogLevel.Valid() {
		errs = append(errs, fmt.Sprintf(
			"log_level: unknown log level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	for i, pattern := range c.Rules.Ignore {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Sprintf("rules.ignore[%d]: invalid glob %q: %v", i, pattern, err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for i, e := range errs {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, e)
	}
	return types.NewError(types.KindConfig, "%s", sb.String())
}

// NativeRules parses the configured native rule names. Call after
// Validate(); an unknown name still returns a config error here so the
// pipeline never runs with an unvalidated set.
func (c *Config) NativeRules() ([]rules.NativeRule, error) {
	parsed := make([]rules.NativeRule, 0, len(c.Rules.Native))
	for _, name := range c.Rules.Native {
		r, err := rules.Parse(name)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, r)
	}
	return parsed, nil
}

// IgnoreGlobs compiles the ignore patterns. Invalid patterns were
// rejected by Validate(), so compilation errors are skipped here.
func (c *Config) IgnoreGlobs() []glob.Glob {
	globs := make([]glob.Glob, 0, len(c.Rules.Ignore))
	for _, pattern := range c.Rules.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		globs = append(globs, g)
	}
	return globs
}

// isUnknownFieldError returns true if the error is from yaml.Decoder.KnownFields(true)
// detecting an unrecognized key (e.g. typo like "rulse:").
func isUnknownFieldError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found in type")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Note: Load does NOT call Validate(). Callers should apply
// CLI overrides first, then call cfg.Validate() themselves.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, types.WrapError(types.KindIo, err, "cannot read config %s", path)
	}

	// Try strict decode to warn about unknown fields (typos like "rulse:")
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if isUnknownFieldError(err) {
			cfgLog.Warn("config has unknown fields (ignored): %v", err)
			// Re-parse without strict mode for forward compatibility
			cfg = DefaultConfig()
			if err2 := yaml.Unmarshal(data, cfg); err2 != nil {
				return nil, types.WrapError(types.KindConfig, err2, "config parse error")
			}
		} else {
			return nil, types.WrapError(types.KindConfig, err, "config parse error")
		}
	}

	return cfg, nil
}
