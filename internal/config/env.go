package config

import (
	"github.com/AliyaRazyapova/theshit/internal/types"
	"github.com/kelseyhightower/envconfig"
)

// Env holds the runtime inputs exported by the shell hook function.
// These arrive through environment variables rather than CLI flags so
// the hook can pass multi-line alias dumps and arbitrarily quoted
// command text without shell re-escaping.
type Env struct {
	// Shell is the explicit shell identifier (e.g. "zsh"), exported
	// by the hook as SH_SHELL. Takes precedence over the process
	// ancestry walk.
	Shell string `envconfig:"SH_SHELL"`

	// PrevCmd is the failed command line, exported as SH_PREV_CMD.
	PrevCmd string `envconfig:"SH_PREV_CMD"`

	// Aliases is the newline-delimited name=value alias dump,
	// exported as SH_SHELL_ALIASES.
	Aliases string `envconfig:"SH_SHELL_ALIASES"`
}

// LoadEnv reads the hook-provided environment variables.
func LoadEnv() (*Env, error) {
	var e Env
	if err := envconfig.Process("", &e); err != nil {
		return nil, types.WrapError(types.KindConfig, err, "cannot read hook environment")
	}
	return &e, nil
}
