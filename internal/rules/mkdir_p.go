package rules

import (
	"fmt"
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/types"
)

// mkdirPRule adds -p when mkdir failed on a missing parent directory.
type mkdirPRule struct{}

func (mkdirPRule) IsMatch(cmd types.Command) bool {
	return strings.Contains(cmd.Text(), "mkdir ") &&
		!strings.Contains(cmd.Text(), "mkdir -p") &&
		containsAny(cmd.Stderr(), "no such file or directory")
}

func (mkdirPRule) Fix(cmd types.Command) (string, error) {
	if !strings.Contains(cmd.Text(), "mkdir ") {
		return "", fmt.Errorf("no mkdir invocation in %q", cmd.Text())
	}
	return strings.Replace(cmd.Text(), "mkdir ", "mkdir -p ", 1), nil
}
