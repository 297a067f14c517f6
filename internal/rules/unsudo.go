package rules

import (
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/types"
)

// unsudoRule strips a leading sudo when the command refuses to run as
// root.
type unsudoRule struct{}

func (unsudoRule) IsMatch(cmd types.Command) bool {
	if !strings.HasPrefix(cmd.Text(), "sudo ") {
		return false
	}
	return containsAny(cmd.Stderr(),
		"you cannot perform this operation as root",
		"must not be run as root",
		"do not run this as root",
		"running as root is not supported",
	)
}

func (unsudoRule) Fix(cmd types.Command) (string, error) {
	return strings.TrimPrefix(cmd.Text(), "sudo "), nil
}
