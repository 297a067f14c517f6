package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInstallHookIdempotent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	added, err := Zsh.InstallHook("shit", "/usr/local/bin/theshit")
	if err != nil {
		t.Fatalf("InstallHook(): %v", err)
	}
	if !added {
		t.Fatal("first install should add the hook line")
	}

	rcPath, err := Zsh.RCPath()
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(rcPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `eval "$(/usr/local/bin/theshit alias shit)"`) {
		t.Errorf("rc file missing hook line:\n%s", data)
	}

	added, err = Zsh.InstallHook("shit", "/usr/local/bin/theshit")
	if err != nil {
		t.Fatalf("second InstallHook(): %v", err)
	}
	if added {
		t.Error("second install should report already-present")
	}

	after, err := os.ReadFile(rcPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(data) {
		t.Error("second install must not change the rc file")
	}
}

func TestInstallHookCreatesFishConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	added, err := Fish.InstallHook("shit", "/usr/local/bin/theshit")
	if err != nil {
		t.Fatalf("InstallHook(): %v", err)
	}
	if !added {
		t.Fatal("install into empty home should add the hook line")
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "fish", "config.fish")); err != nil {
		t.Errorf("fish config not created: %v", err)
	}
}

func TestRCPathPerShell(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	tests := []struct {
		shell Shell
		want  string
	}{
		{Bash, "/home/user/.bashrc"},
		{Zsh, "/home/user/.zshrc"},
		{Fish, "/home/user/.config/fish/config.fish"},
	}
	for _, tt := range tests {
		got, err := tt.shell.RCPath()
		if err != nil {
			t.Errorf("RCPath(%s): %v", tt.shell, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RCPath(%s) = %q, want %q", tt.shell, got, tt.want)
		}
	}
}
