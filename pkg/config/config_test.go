package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if *cfg != *def {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
git_bin = "/usr/local/bin/git"
timeout = "2s"
log_level = "debug"

[watch]
debounce = "40ms"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitBin != "/usr/local/bin/git" {
		t.Errorf("GitBin = %q", cfg.GitBin)
	}
	if cfg.Timeout.Duration != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Timeout.Duration)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want default text", cfg.LogFormat)
	}
	if cfg.Watch.Debounce.Duration != 40*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 40ms", cfg.Watch.Debounce.Duration)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad duration":      `timeout = "soon"`,
		"negative duration": `timeout = "-1s"`,
		"unknown key":       `colour = "red"`,
		"syntax":            `timeout = `,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadEmptyGitBinFallsBack(t *testing.T) {
	cfg, err := Load(writeConfig(t, `git_bin = "  "`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitBin != "git" {
		t.Fatalf("GitBin = %q, want git", cfg.GitBin)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	if got := DefaultPath(); got != "" && !strings.HasSuffix(got, filepath.Join("statusline", "config.toml")) {
		t.Fatalf("DefaultPath = %q", got)
	}
}
