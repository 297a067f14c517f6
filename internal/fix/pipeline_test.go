//go:build !windows

package fix

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AliyaRazyapova/theshit/internal/config"
	"github.com/AliyaRazyapova/theshit/internal/types"
)

// testPipeline builds a Pipeline that never spawns a shell: the shell
// is pinned in config and the capture run returns canned output.
func testPipeline(t *testing.T, env *config.Env, stdout, stderr string) (*Pipeline, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Shell = "bash"
	cfg.Rules.ScriptDir = filepath.Join(t.TempDir(), "rules.d")
	if env == nil {
		env = &config.Env{}
	}
	p := New(cfg, env)
	p.capture = func(ctx context.Context, shellExe, command string, timeout time.Duration) (string, string) {
		return stdout, stderr
	}
	return p, cfg
}

func writeScriptRule(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFixNativeRule(t *testing.T) {
	p, _ := testPipeline(t, nil, "", "")

	fixed, err := p.Fix(context.Background(), []string{"cs", "/tmp"})
	if err != nil {
		t.Fatalf("Fix(): %v", err)
	}
	if fixed != "cd /tmp" {
		t.Errorf("Fix() = %q, want %q", fixed, "cd /tmp")
	}
}

func TestFixUsesCapturedOutput(t *testing.T) {
	p, _ := testPipeline(t, nil, "", "touch: cannot touch '/etc/x': Permission denied")

	fixed, err := p.Fix(context.Background(), []string{"touch", "/etc/x"})
	if err != nil {
		t.Fatalf("Fix(): %v", err)
	}
	if fixed != "sudo touch /etc/x" {
		t.Errorf("Fix() = %q, want %q", fixed, "sudo touch /etc/x")
	}
}

func TestFixExpandsAliasBeforeRules(t *testing.T) {
	env := &config.Env{Aliases: "pls='touch'"}
	p, _ := testPipeline(t, env, "", "Permission denied")

	var captured string
	p.capture = func(ctx context.Context, shellExe, command string, timeout time.Duration) (string, string) {
		captured = command
		return "", "Permission denied"
	}

	fixed, err := p.Fix(context.Background(), []string{"pls", "/etc/x"})
	if err != nil {
		t.Fatalf("Fix(): %v", err)
	}
	if captured != "touch /etc/x" {
		t.Errorf("capture ran %q, want the alias-expanded command", captured)
	}
	if fixed != "sudo touch /etc/x" {
		t.Errorf("Fix() = %q, want %q", fixed, "sudo touch /etc/x")
	}
}

func TestFixCommandFromHookEnv(t *testing.T) {
	env := &config.Env{PrevCmd: "cs projects"}
	p, _ := testPipeline(t, env, "", "")

	fixed, err := p.Fix(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fix(): %v", err)
	}
	if fixed != "cd projects" {
		t.Errorf("Fix() = %q, want %q", fixed, "cd projects")
	}
}

func TestFixNoCommand(t *testing.T) {
	p, _ := testPipeline(t, nil, "", "")

	_, err := p.Fix(context.Background(), nil)
	if err == nil {
		t.Fatal("Fix() without a command should fail")
	}
	if !types.IsConfig(err) {
		t.Errorf("error kind = %q, want config", types.KindOf(err))
	}
}

func TestFixNativeBeforeScript(t *testing.T) {
	p, cfg := testPipeline(t, nil, "", "")
	writeScriptRule(t, cfg.Rules.ScriptDir, "precedence_greedy.star",
		"def match(c, o, e):\n    return True\n\ndef fix(c, o, e):\n    return \"from-script\"\n")

	fixed, err := p.Fix(context.Background(), []string{"cs", "x"})
	if err != nil {
		t.Fatalf("Fix(): %v", err)
	}
	if fixed != "cd x" {
		t.Errorf("Fix() = %q, native rules must win over script rules", fixed)
	}
}

func TestFixScriptFallback(t *testing.T) {
	p, cfg := testPipeline(t, nil, "", "")
	writeScriptRule(t, cfg.Rules.ScriptDir, "fallback_typo.star",
		"def match(c, o, e):\n    return c == \"git psuh\"\n\ndef fix(c, o, e):\n    return \"git push\"\n")

	fixed, err := p.Fix(context.Background(), []string{"git", "psuh"})
	if err != nil {
		t.Fatalf("Fix(): %v", err)
	}
	if fixed != "git push" {
		t.Errorf("Fix() = %q, want %q", fixed, "git push")
	}
}

func TestFixScriptFirstCandidateWins(t *testing.T) {
	p, cfg := testPipeline(t, nil, "", "")
	writeScriptRule(t, cfg.Rules.ScriptDir, "order_a.star",
		"def match(c, o, e):\n    return True\n\ndef fix(c, o, e):\n    return \"first\"\n")
	writeScriptRule(t, cfg.Rules.ScriptDir, "order_b.star",
		"def match(c, o, e):\n    return True\n\ndef fix(c, o, e):\n    return \"second\"\n")

	fixed, err := p.Fix(context.Background(), []string{"frobnicate"})
	if err != nil {
		t.Fatalf("Fix(): %v", err)
	}
	if fixed != "first" {
		t.Errorf("Fix() = %q, want the lexically first matching rule", fixed)
	}
}

func TestFixNoRuleMatched(t *testing.T) {
	p, _ := testPipeline(t, nil, "", "")

	_, err := p.Fix(context.Background(), []string{"some", "fine", "command"})
	if err == nil {
		t.Fatal("Fix() with no matching rule should fail")
	}
	if !types.IsConfig(err) {
		t.Errorf("error kind = %q, want config", types.KindOf(err))
	}
}

func TestFixRerunDisabledSkipsCapture(t *testing.T) {
	p, cfg := testPipeline(t, nil, "", "")
	cfg.Rerun.Enabled = false
	p.capture = func(ctx context.Context, shellExe, command string, timeout time.Duration) (string, string) {
		t.Error("capture must not run when rerun is disabled")
		return "", ""
	}

	fixed, err := p.Fix(context.Background(), []string{"cs", "x"})
	if err != nil {
		t.Fatalf("Fix(): %v", err)
	}
	if fixed != "cd x" {
		t.Errorf("Fix() = %q, want %q", fixed, "cd x")
	}
}
