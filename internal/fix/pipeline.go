// Package fix drives the correction pipeline: take the last failed
// command, expand its alias, optionally re-run it to capture output,
// and ask the native and script rules for a replacement.
package fix

import (
	"context"
	"strings"
	"time"

	"github.com/AliyaRazyapova/theshit/internal/config"
	"github.com/AliyaRazyapova/theshit/internal/logger"
	"github.com/AliyaRazyapova/theshit/internal/script"
	"github.com/AliyaRazyapova/theshit/internal/shell"
	"github.com/AliyaRazyapova/theshit/internal/types"
)

var log = logger.New("fix")

// Pipeline resolves a failed command to its corrected form. Native
// rules run first, in configured order; script rules run after, in
// lexical file order. The first fix wins.
type Pipeline struct {
	cfg    *config.Config
	env    *config.Env
	loader *script.Loader

	// capture is swappable so tests can feed canned output instead of
	// spawning a shell.
	capture func(ctx context.Context, shellExe, command string, timeout time.Duration) (string, string)
}

// New builds a Pipeline on the process-wide script engine.
func New(cfg *config.Config, env *config.Env) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		env:     env,
		loader:  script.NewLoader(script.DefaultEngine()),
		capture: Capture,
	}
}

// Fix returns the corrected command for the failed one. The command
// comes from args when given, otherwise from the hook's SH_PREV_CMD
// export. The error is a config error when no rule matched or when the
// pipeline could not run at all (no shell, no command, bad rule set).
func (p *Pipeline) Fix(ctx context.Context, args []string) (string, error) {
	explicit := p.cfg.Shell
	if explicit == "" {
		explicit = p.env.Shell
	}
	sh, err := shell.Current(explicit)
	if err != nil {
		return "", err
	}

	raw := strings.TrimSpace(strings.Join(args, " "))
	if raw == "" {
		raw = strings.TrimSpace(p.env.PrevCmd)
	}
	if raw == "" {
		return "", types.NewError(types.KindConfig,
			"no command to fix: pass one as arguments or install the shell hook")
	}

	aliases := shell.ParseAliases(p.env.Aliases)
	expanded := shell.ExpandAlias(raw, aliases)
	if expanded != raw {
		log.Debug("alias-expanded %q to %q", raw, expanded)
	}

	var stdout, stderr string
	if p.cfg.Rerun.Enabled {
		timeout := time.Duration(p.cfg.Rerun.Timeout) * time.Second
		stdout, stderr = p.capture(ctx, string(sh), expanded, timeout)
	}
	cmd := types.NewCommand(expanded, stdout, stderr)

	native, err := p.cfg.NativeRules()
	if err != nil {
		return "", err
	}
	for _, r := range native {
		if fixed, ok := r.Apply(cmd); ok {
			log.Info("rule %s matched", r)
			return fixed, nil
		}
	}

	paths, err := script.Discover(p.cfg.Rules.ScriptDir, p.cfg.IgnoreGlobs())
	if err != nil {
		// Discovery trouble never blocks the "no fix" answer below.
		log.Warn("script rule discovery failed: %v", err)
	}
	if len(paths) > 0 {
		candidates, err := p.loader.Run(cmd, paths)
		if err != nil {
			return "", err
		}
		if len(candidates) > 0 {
			if len(candidates) > 1 {
				log.Debug("%d script rules matched, keeping the first", len(candidates))
			}
			return candidates[0], nil
		}
	}

	return "", types.NewError(types.KindConfig, "no rule matched %q", expanded)
}
