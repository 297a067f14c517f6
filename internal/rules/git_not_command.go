package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/types"
)

var (
	gitBadCmdRe  = regexp.MustCompile(`git: '([^']+)' is not a git command`)
	gitSimilarRe = regexp.MustCompile(`(?s)most similar commands? (?:is|are)\s+(\S+)`)
)

// gitNotCommandRule replaces a mistyped git subcommand with git's own
// "most similar command" suggestion.
type gitNotCommandRule struct{}

func (gitNotCommandRule) IsMatch(cmd types.Command) bool {
	return strings.HasPrefix(cmd.Text(), "git") &&
		gitBadCmdRe.MatchString(cmd.Stderr()) &&
		gitSimilarRe.MatchString(cmd.Stderr())
}

func (gitNotCommandRule) Fix(cmd types.Command) (string, error) {
	bad := gitBadCmdRe.FindStringSubmatch(cmd.Stderr())
	similar := gitSimilarRe.FindStringSubmatch(cmd.Stderr())
	if bad == nil || similar == nil {
		return "", fmt.Errorf("git output carries no usable suggestion")
	}
	if !strings.Contains(cmd.Text(), bad[1]) {
		return "", fmt.Errorf("mistyped subcommand %q not present in command", bad[1])
	}
	return strings.Replace(cmd.Text(), bad[1], similar[1], 1), nil
}
