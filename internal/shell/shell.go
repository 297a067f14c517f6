// Package shell identifies the interactive shell that invoked the tool
// and provides its integration surface: hook functions, alias tables,
// and rc-file installation.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/fileutil"
	"github.com/AliyaRazyapova/theshit/internal/types"
)

// Shell represents a supported interactive shell.
type Shell string

const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
	Fish Shell = "fish"
)

// Parse converts an executable or identifier name to a Shell.
func Parse(name string) (Shell, error) {
	switch strings.ToLower(name) {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "fish":
		return Fish, nil
	}
	return "", types.NewError(types.KindConfig, "unsupported shell %q (valid: bash, zsh, fish)", name)
}

// Valid returns true if the Shell is a known valid value.
func (s Shell) Valid() bool {
	return s == Bash || s == Zsh || s == Fish
}

// HookFunction returns the shell function the user evals into their
// session. The function exports the failed command, the shell
// identifier, and the alias dump, then evals whatever `fix` prints.
func (s Shell) HookFunction(name, programPath string) string {
	switch s {
	case Fish:
		return strings.TrimSpace(fmt.Sprintf(`
function %[1]s
    set -x SH_SHELL fish
    set -x SH_PREV_CMD $history[1]
    set -x SH_SHELL_ALIASES (alias)

    set SH_CMD (%[2]s fix $argv); and eval $SH_CMD

    set -e SH_SHELL_ALIASES
    set -e SH_PREV_CMD
    set -e SH_SHELL
end
`, name, programPath))
	default:
		return strings.TrimSpace(fmt.Sprintf(`
%[1]s() {
    export SH_SHELL=%[3]s;
    SH_PREV_CMD="$(fc -ln -1)";
    export SH_PREV_CMD;
    SH_SHELL_ALIASES=$(alias);
    export SH_SHELL_ALIASES;

    SH_CMD=$(
      %[2]s fix $@
    ) && eval "$SH_CMD";

    unset SH_SHELL_ALIASES;
    unset SH_PREV_CMD;
    unset SH_SHELL;
}
`, name, programPath, s))
	}
}

// RCPath returns the shell's startup file path.
func (s Shell) RCPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", types.WrapError(types.KindIo, err, "cannot locate home directory")
	}
	switch s {
	case Bash:
		return filepath.Join(home, ".bashrc"), nil
	case Zsh:
		return filepath.Join(home, ".zshrc"), nil
	case Fish:
		return filepath.Join(home, ".config", "fish", "config.fish"), nil
	}
	return "", types.NewError(types.KindConfig, "unsupported shell %q", s)
}

// hookLine is the single line appended to the rc file.
func (s Shell) hookLine(name, programPath string) string {
	if s == Fish {
		return fmt.Sprintf("%s alias %s | source", programPath, name)
	}
	return fmt.Sprintf(`eval "$(%s alias %s)"`, programPath, name)
}

// InstallHook appends the eval line for the hook function to the rc
// file. Returns false with a nil error when the line is already
// present (the install is idempotent).
func (s Shell) InstallHook(name, programPath string) (bool, error) {
	rcPath, err := s.RCPath()
	if err != nil {
		return false, err
	}
	return appendLineOnce(rcPath, s.hookLine(name, programPath))
}

// appendLineOnce appends line to path unless an identical line exists.
func appendLineOnce(path, line string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, types.WrapError(types.KindIo, err, "cannot read %s", path)
	}
	for _, existing := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(existing) == line {
			return false, nil
		}
	}

	if err := fileutil.SecureMkdirAll(filepath.Dir(path)); err != nil {
		return false, types.WrapError(types.KindIo, err, "cannot create %s", filepath.Dir(path))
	}
	f, err := fileutil.SecureOpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY)
	if err != nil {
		return false, types.WrapError(types.KindIo, err, "cannot open %s", path)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s\n", line); err != nil {
		return false, types.WrapError(types.KindIo, err, "cannot write %s", path)
	}
	return true, nil
}
