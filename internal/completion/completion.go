// Package completion provides CLI tab-completion for theshit.
//
// The binary itself handles completions: when invoked with COMP_LINE set
// (by the shell), it outputs matching completions and exits.
// Works across bash, zsh, and fish with a one-time install.
package completion

import (
	"os"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/install"
	"github.com/posener/complete/v2/predict"
)

// command defines the full theshit CLI completion tree.
var command = &complete.Command{
	Flags: map[string]complete.Predictor{
		"config":    predict.Files("*.yaml"),
		"log-level": predict.Set{"debug", "info", "warn", "error"},
		"no-color":  predict.Nothing,
	},
	Sub: map[string]*complete.Command{
		"alias": {Args: predict.Something},
		"fix":   {Args: predict.Something},
		"setup": {
			Flags: map[string]complete.Predictor{
				"shell": predict.Set{"bash", "zsh", "fish"},
			},
			Args: predict.Something,
		},
		"version":    {},
		"help":       {},
		"completion": {Flags: map[string]complete.Predictor{"install": predict.Nothing, "uninstall": predict.Nothing}},
	},
}

// Run checks if the binary was invoked for shell completion.
// If COMP_LINE is set, it outputs completions and exits (never returns).
// Otherwise it returns false and the program continues normally.
func Run() bool {
	if os.Getenv("COMP_LINE") != "" || os.Getenv("COMP_INSTALL") != "" || os.Getenv("COMP_UNINSTALL") != "" {
		command.Complete("theshit")
		return true
	}
	return false
}

// Install sets up shell completion for the detected shells.
func Install() error {
	return install.Install("theshit")
}

// Uninstall removes shell completion for the detected shells.
func Uninstall() error {
	return install.Uninstall("theshit")
}

// IsInstalled reports whether shell completion is already set up.
func IsInstalled() bool {
	return install.IsInstalled("theshit")
}
