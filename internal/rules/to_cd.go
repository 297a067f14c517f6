package rules

import (
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/types"
)

// toCdRule fixes the common "cs" typo for "cd".
type toCdRule struct{}

func (toCdRule) IsMatch(cmd types.Command) bool {
	return cmd.Text() == "cs" || strings.HasPrefix(cmd.Text(), "cs ")
}

func (toCdRule) Fix(cmd types.Command) (string, error) {
	return "cd" + strings.TrimPrefix(cmd.Text(), "cs"), nil
}
