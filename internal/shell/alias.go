package shell

import "strings"

// ParseAliases parses a newline-delimited alias dump into a
// name→value map. Both `name=value` (bash, zsh) and `alias name value`
// (fish) layouts are accepted; one matching pair of enclosing single
// or double quotes is stripped from each value.
func ParseAliases(raw string) map[string]string {
	aliases := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "alias "))
		if line == "" {
			continue
		}

		var name, value string
		if i := strings.IndexByte(line, '='); i > 0 {
			name, value = line[:i], line[i+1:]
		} else if i := strings.IndexByte(line, ' '); i > 0 {
			name, value = line[:i], strings.TrimSpace(line[i+1:])
		} else {
			continue
		}

		aliases[name] = stripQuotePair(value)
	}
	return aliases
}

// stripQuotePair removes one matching pair of enclosing single or
// double quotes, if present.
func stripQuotePair(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// ExpandAlias substitutes the leading token of command if it names a
// known alias. A single substitution only; alias values are not
// themselves re-expanded.
func ExpandAlias(command string, aliases map[string]string) string {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return command
	}
	head, rest, found := strings.Cut(trimmed, " ")
	value, ok := aliases[head]
	if !ok {
		return trimmed
	}
	if !found {
		return value
	}
	return value + " " + rest
}
