package script

import (
	"github.com/AliyaRazyapova/theshit/internal/types"
)

// Required callables every rule module must expose.
const (
	matchFunc = "match"
	fixFunc   = "fix"
)

// Loader runs a batch of candidate script rule files against a failed
// command and collects the replacement commands produced by the rules
// that matched.
type Loader struct {
	engine    Engine
	validator *Validator
}

// NewLoader creates a Loader on the given engine.
func NewLoader(engine Engine) *Loader {
	return &Loader{engine: engine, validator: NewValidator()}
}

// Run evaluates every candidate rule, in the order received, and
// returns the fixed commands of the rules that matched, in the same
// order. Per-rule failures of any kind (security denial, import
// error, missing functions, bad return types) are logged and skip
// only that rule. The single fatal case is a non-empty batch with no
// common ancestor, which is a configuration error; an empty batch
// yields an empty result immediately.
func (l *Loader) Run(cmd types.Command, candidatePaths []string) ([]string, error) {
	if len(candidatePaths) == 0 {
		return nil, nil
	}

	root, ok := CommonAncestor(candidatePaths)
	if !ok {
		return nil, types.NewError(types.KindConfig,
			"no common ancestor found for the %d configured rule paths", len(candidatePaths))
	}
	l.engine.AddSearchPath(root)

	var fixed []string
	for _, path := range candidatePaths {
		if err := l.validator.Validate(path); err != nil {
			log.Warn("skipping rule: %v", err)
			continue
		}

		name, ok := ModuleName(root, path)
		if !ok {
			continue
		}

		module, err := l.engine.Import(name)
		if err != nil {
			log.Warn("failed to import rule module %q: %v", path, err)
			continue
		}

		match, matchErr := module.Callable(matchFunc)
		fix, fixErr := module.Callable(fixFunc)
		if matchErr != nil || fixErr != nil {
			log.Warn("rule %q is missing required functions (match, fix)", path)
			continue
		}

		matchVal, err := match.Call(cmd.Text(), cmd.Stdout(), cmd.Stderr())
		if err != nil {
			log.Warn("failed to execute 'match' in rule %q: %v", path, err)
			continue
		}
		matched, err := matchVal.Bool()
		if err != nil {
			log.Warn("'match' in rule %q returned a non-boolean: %v", path, err)
			continue
		}
		if !matched {
			continue
		}

		fixVal, err := fix.Call(cmd.Text(), cmd.Stdout(), cmd.Stderr())
		if err != nil {
			log.Warn("failed to execute 'fix' in rule %q: %v", path, err)
			continue
		}
		fixedCmd, err := fixVal.Str()
		if err != nil {
			log.Warn("'fix' in rule %q returned a non-string: %v", path, err)
			continue
		}

		fixed = append(fixed, fixedCmd)
	}
	return fixed, nil
}
