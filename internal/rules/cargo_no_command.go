package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/types"
)

// Compiled once at init, the same way pattern rules are pre-compiled
// at insert time elsewhere in the engine.
var (
	cargoBadSubRe    = regexp.MustCompile("no such (?:sub)?command: `([^`]+)`")
	cargoSuggestedRe = regexp.MustCompile("Did you mean `([^`]+)`")
)

// cargoNoCommandRule replaces a mistyped cargo subcommand with the
// suggestion cargo itself printed.
type cargoNoCommandRule struct{}

func (cargoNoCommandRule) IsMatch(cmd types.Command) bool {
	return strings.HasPrefix(cmd.Text(), "cargo") &&
		cargoBadSubRe.MatchString(cmd.Stderr()) &&
		cargoSuggestedRe.MatchString(cmd.Stderr())
}

func (cargoNoCommandRule) Fix(cmd types.Command) (string, error) {
	bad := cargoBadSubRe.FindStringSubmatch(cmd.Stderr())
	suggested := cargoSuggestedRe.FindStringSubmatch(cmd.Stderr())
	if bad == nil || suggested == nil {
		return "", fmt.Errorf("cargo output carries no usable suggestion")
	}
	if !strings.Contains(cmd.Text(), bad[1]) {
		return "", fmt.Errorf("mistyped subcommand %q not present in command", bad[1])
	}
	return strings.Replace(cmd.Text(), bad[1], suggested[1], 1), nil
}
