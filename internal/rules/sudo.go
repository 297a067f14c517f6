package rules

import (
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/types"
)

// sudoRule prepends sudo when the command failed for lack of
// privileges.
type sudoRule struct{}

func (sudoRule) IsMatch(cmd types.Command) bool {
	if strings.HasPrefix(cmd.Text(), "sudo ") {
		return false
	}
	needles := []string{
		"permission denied",
		"eacces",
		"must be root",
		"operation not permitted",
		"root privilege",
	}
	return containsAny(cmd.Stderr(), needles...) || containsAny(cmd.Stdout(), needles...)
}

func (sudoRule) Fix(cmd types.Command) (string, error) {
	return "sudo " + cmd.Text(), nil
}
