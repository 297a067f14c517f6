package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AliyaRazyapova/theshit/internal/completion"
	"github.com/AliyaRazyapova/theshit/internal/config"
	"github.com/AliyaRazyapova/theshit/internal/fix"
	"github.com/AliyaRazyapova/theshit/internal/logger"
	"github.com/AliyaRazyapova/theshit/internal/script"
	"github.com/AliyaRazyapova/theshit/internal/shell"
	"github.com/AliyaRazyapova/theshit/internal/types"
	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags: -X main.Version=x.y.z
var Version = "1.0.0"

// defaultAliasName is the shell function users get unless they pick
// their own with `alias <name>` / `setup <name>`.
const defaultAliasName = "shit"

var log = logger.New("main")

func main() {
	// Shell completion requests short-circuit everything else.
	if completion.Run() {
		return
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "alias":
			runAlias(os.Args[2:])
			return
		case "fix":
			runFix(os.Args[2:])
			return
		case "setup":
			runSetup(os.Args[2:])
			return
		case "completion":
			runCompletion(os.Args[2:])
			return
		case "help", "-h", "--help":
			printUsage()
			return
		case "version", "-v", "--version":
			fmt.Printf("theshit version %s\n", Version)
			return
		}
	}

	printUsage()
}

// loadConfig loads the config file, applies CLI overrides, validates,
// and configures the global logger. Exits on a config error: nothing
// downstream can run with a broken configuration.
func loadConfig(path, logLevel string, noColor bool) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if logLevel != "" {
		cfg.LogLevel = types.LogLevel(logLevel)
	}
	if noColor {
		cfg.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger.SetGlobalLevelFromString(string(cfg.LogLevel))
	if cfg.NoColor {
		logger.SetColored(false)
	}
	return cfg
}

// currentShell resolves the shell from the config override, the hook
// environment, or the process ancestry, in that order.
func currentShell(cfg *config.Config, env *config.Env) shell.Shell {
	explicit := cfg.Shell
	if explicit == "" && env != nil {
		explicit = env.Shell
	}
	sh, err := shell.Current(explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	return sh
}

// runAlias prints the hook function for the invoking shell. The output
// is meant for eval in the user's rc file; it is the only subcommand
// whose stdout is shell code rather than a command.
func runAlias(args []string) {
	aliasFlags := flag.NewFlagSet("alias", flag.ExitOnError)
	configPath := aliasFlags.String("config", config.DefaultConfigPath(), "Path to configuration file")
	_ = aliasFlags.Parse(args)

	name := defaultAliasName
	if rest := aliasFlags.Args(); len(rest) > 0 {
		name = rest[0]
	}

	cfg := loadConfig(*configPath, "", false)
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	exe, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot locate own executable: %v\n", err)
		os.Exit(1)
	}

	sh := currentShell(cfg, env)
	fmt.Println(sh.HookFunction(name, exe))
}

// runFix corrects the failed command. Stdout carries exactly the
// replacement command (the hook evals it); everything else goes to
// stderr.
func runFix(args []string) {
	fixFlags := flag.NewFlagSet("fix", flag.ExitOnError)
	configPath := fixFlags.String("config", config.DefaultConfigPath(), "Path to configuration file")
	logLevel := fixFlags.String("log-level", "", "Log level: debug, info, warn, error")
	noColor := fixFlags.Bool("no-color", false, "Disable colored log output")
	_ = fixFlags.Parse(args)

	cfg := loadConfig(*configPath, *logLevel, *noColor)
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fixed, err := fix.New(cfg, env).Fix(ctx, fixFlags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println(fixed)
}

// runSetup wires theshit into the user's shell: appends the hook line
// to the rc file, installs the bundled default script rules, and sets
// up tab completion.
func runSetup(args []string) {
	setupFlags := flag.NewFlagSet("setup", flag.ExitOnError)
	configPath := setupFlags.String("config", config.DefaultConfigPath(), "Path to configuration file")
	shellName := setupFlags.String("shell", "", "Target shell: bash, zsh, fish (default: detect)")
	_ = setupFlags.Parse(args)

	name := defaultAliasName
	if rest := setupFlags.Args(); len(rest) > 0 {
		name = rest[0]
	}

	cfg := loadConfig(*configPath, "", false)
	if *shellName != "" {
		cfg.Shell = *shellName
	}
	sh := currentShell(cfg, nil)

	exe, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot locate own executable: %v\n", err)
		os.Exit(1)
	}

	added, err := sh.InstallHook(name, exe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to install hook: %v\n", err)
		os.Exit(1)
	}
	rcPath, _ := sh.RCPath()
	if added {
		fmt.Printf("✓ Hook for %q added to %s\n", name, rcPath)
	} else {
		fmt.Printf("Hook for %q already installed in %s\n", name, rcPath)
	}

	written, err := script.InstallDefaults(cfg.Rules.ScriptDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to install default rules: %v\n", err)
		os.Exit(1)
	}
	if written > 0 {
		fmt.Printf("✓ Installed %d default script rules in %s\n", written, cfg.Rules.ScriptDir)
	}

	if !completion.IsInstalled() {
		if err := completion.Install(); err != nil {
			log.Warn("could not install shell completion: %v", err)
		} else {
			fmt.Println("✓ Shell completion installed")
		}
	}

	fmt.Printf("\nRestart your shell or run: source %s\n", rcPath)
}

// runCompletion manages shell tab-completion.
func runCompletion(args []string) {
	completionFlags := flag.NewFlagSet("completion", flag.ExitOnError)
	doInstall := completionFlags.Bool("install", false, "Install shell completion")
	doUninstall := completionFlags.Bool("uninstall", false, "Uninstall shell completion")
	_ = completionFlags.Parse(args)

	switch {
	case *doInstall:
		if err := completion.Install(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to install completion: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Shell completion installed")
	case *doUninstall:
		if err := completion.Uninstall(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to uninstall completion: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Shell completion uninstalled")
	default:
		if completion.IsInstalled() {
			fmt.Println("Shell completion is installed")
		} else {
			fmt.Println("Shell completion is not installed (run: theshit completion --install)")
		}
	}
}

func printUsage() {
	fmt.Println(`theshit - corrects your previous console command

Usage:
  theshit setup [name] [--shell sh]   Install the shell hook, default rules, and completion
  theshit alias [name]                Print the hook function (for eval in your rc file)
  theshit fix [command...]            Print the corrected command (normally called by the hook)

  theshit completion [--install|--uninstall]  Manage tab completion
  theshit help                        Show this help message
  theshit version                     Show version

Fix Flags:
  --config string      Path to configuration file (default ~/.theshit/config.yaml)
  --log-level string   Log level: debug, info, warn, error
  --no-color           Disable colored log output

The hook exports SH_SHELL, SH_PREV_CMD and SH_SHELL_ALIASES, calls
'fix', and evals whatever it prints.

Examples:
  theshit setup                       One-time install for the detected shell
  eval "$(theshit alias shit)"        Manual hook for bash/zsh
  shit                                Fix the last failed command`)
}
