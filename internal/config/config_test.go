package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AliyaRazyapova/theshit/internal/types"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if _, err := cfg.NativeRules(); err != nil {
		t.Fatalf("default native rules should parse: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	if cfg.Rerun.Timeout != 5 {
		t.Errorf("expected default rerun timeout, got %d", cfg.Rerun.Timeout)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
shell: zsh
log_level: debug
rules:
  native: [sudo, to_cd]
  script_dir: /tmp/rules.d
rerun:
  enabled: false
  timeout: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cfg.Shell != "zsh" {
		t.Errorf("shell = %q", cfg.Shell)
	}
	if cfg.LogLevel != types.LogLevelDebug {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
	if len(cfg.Rules.Native) != 2 {
		t.Errorf("native rules = %v", cfg.Rules.Native)
	}
	if cfg.Rerun.Enabled || cfg.Rerun.Timeout != 10 {
		t.Errorf("rerun = %+v", cfg.Rerun)
	}
}

func TestLoadUnknownFieldsTolerated(t *testing.T) {
	path := writeConfig(t, "shelll: zsh\nlog_level: info\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() should tolerate unknown fields: %v", err)
	}
	if cfg.LogLevel != types.LogLevelInfo {
		t.Errorf("log_level = %q, want info", cfg.LogLevel)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "rules: [this is : not yaml\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail on malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown native rule", func(c *Config) { c.Rules.Native = []string{"sudo", "frobnicate"} }, true},
		{"unknown shell", func(c *Config) { c.Shell = "tcsh" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"zero rerun timeout", func(c *Config) { c.Rerun.Timeout = 0 }, true},
		{"huge rerun timeout", func(c *Config) { c.Rerun.Timeout = 4000 }, true},
		{"bad ignore glob", func(c *Config) { c.Rules.Ignore = []string{"[unclosed"} }, true},
		{"valid overrides", func(c *Config) {
			c.Shell = "fish"
			c.Rules.Native = []string{"mkdir_p"}
			c.Rules.Ignore = []string{"*.disabled.star"}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !types.IsConfig(err) {
				t.Errorf("Validate() should return config-class errors, got kind %q", types.KindOf(err))
			}
		})
	}
}

func TestNativeRulesPreservesOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules.Native = []string{"to_cd", "sudo"}
	parsed, err := cfg.NativeRules()
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 2 || string(parsed[0]) != "to_cd" || string(parsed[1]) != "sudo" {
		t.Errorf("NativeRules() = %v, want configured order preserved", parsed)
	}
}

func TestIgnoreGlobs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules.Ignore = []string{"_*", "*.disabled.star"}
	globs := cfg.IgnoreGlobs()
	if len(globs) != 2 {
		t.Fatalf("IgnoreGlobs() returned %d globs", len(globs))
	}
	if !globs[0].Match("_draft.star") {
		t.Error("_* should match _draft.star")
	}
	if globs[1].Match("rule.star") {
		t.Error("*.disabled.star should not match rule.star")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SH_SHELL", "zsh")
	t.Setenv("SH_PREV_CMD", "git psuh")
	t.Setenv("SH_SHELL_ALIASES", "ll='ls -l'\ng=git")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv(): %v", err)
	}
	if env.Shell != "zsh" || env.PrevCmd != "git psuh" {
		t.Errorf("LoadEnv() = %+v", env)
	}
	if env.Aliases != "ll='ls -l'\ng=git" {
		t.Errorf("aliases = %q", env.Aliases)
	}
}
