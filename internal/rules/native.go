// Package rules implements the compiled-in correction rules.
//
// Every rule is a pure predicate + transform pair over the failed
// Command. The set of rule names is closed: configuration referring to
// an unknown name is rejected before any rule runs.
package rules

import (
	"sort"
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/logger"
	"github.com/AliyaRazyapova/theshit/internal/types"
)

var log = logger.New("rules")

// NativeRule names one compiled-in rule.
type NativeRule string

const (
	RuleSudo           NativeRule = "sudo"
	RuleToCd           NativeRule = "to_cd"
	RuleUnsudo         NativeRule = "unsudo"
	RuleMkdirP         NativeRule = "mkdir_p"
	RuleCargoNoCommand NativeRule = "cargo_no_command"
	RuleGitNotCommand  NativeRule = "git_not_command"
)

// rule is the uniform contract every compiled-in rule satisfies.
// Fix is only called after IsMatch returned true; a Fix error is
// logged by the dispatcher and treated as "no output", never fatal.
type rule interface {
	IsMatch(cmd types.Command) bool
	Fix(cmd types.Command) (string, error)
}

var registry = map[NativeRule]rule{
	RuleSudo:           sudoRule{},
	RuleToCd:           toCdRule{},
	RuleUnsudo:         unsudoRule{},
	RuleMkdirP:         mkdirPRule{},
	RuleCargoNoCommand: cargoNoCommandRule{},
	RuleGitNotCommand:  gitNotCommandRule{},
}

// AllNames returns the closed set of native rule names, sorted.
func AllNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// Parse validates a configured rule name against the closed set.
// An unknown name is a configuration error, surfaced before any rule
// runs.
func Parse(name string) (NativeRule, error) {
	r := NativeRule(name)
	if _, ok := registry[r]; !ok {
		return "", types.NewError(types.KindConfig,
			"unknown native rule %q (valid: %s)", name, strings.Join(AllNames(), ", "))
	}
	return r, nil
}

// Apply evaluates the rule's predicate and, only on a match, its
// transform. Returns the fixed command and true on success.
func (r NativeRule) Apply(cmd types.Command) (string, bool) {
	impl, ok := registry[r]
	if !ok {
		// Unreachable for rules that went through Parse.
		return "", false
	}
	if !impl.IsMatch(cmd) {
		return "", false
	}
	fixed, err := impl.Fix(cmd)
	if err != nil {
		log.Warn("rule %s failed to produce a fix: %v", r, err)
		return "", false
	}
	return fixed, true
}

// containsAny reports whether s contains any of the needles,
// case-insensitively.
func containsAny(s string, needles ...string) bool {
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
