package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envBaseURL, envRefreshInterval, envLogLevel, envLogDir, envOffline} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.RefreshInterval != 300*time.Second {
		t.Fatalf("RefreshInterval = %v, want 5m", cfg.RefreshInterval)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	if !cfg.Fallback {
		t.Fatalf("Fallback = false, want true by default")
	}
	if cfg.Offline {
		t.Fatalf("Offline = true, want false by default")
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
	if cfg.LogPath() != filepath.Join(wantLogDir, "batchview.log") {
		t.Fatalf("LogPath = %q, want under %q", cfg.LogPath(), wantLogDir)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
base_url = "  https://api.example.com/api/batch  "
refresh_interval = 60
request_timeout = 5
log_dir = "  ~/.batchview/logs  "
log_level = " DEBUG "
theme = "Slate"
fallback = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://api.example.com/api/batch" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RefreshInterval != time.Minute || cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("intervals = %v/%v, want 1m/5s", cfg.RefreshInterval, cfg.RequestTimeout)
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
	if cfg.LogLevel != "debug" || cfg.Theme != "Slate" || cfg.Fallback {
		t.Fatalf("level/theme/fallback = %q/%q/%v", cfg.LogLevel, cfg.Theme, cfg.Fallback)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := writeConfig(t, `
base_url = "   "
refresh_interval = 0
log_dir = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("RefreshInterval = %v, want %v", cfg.RefreshInterval, defaultRefreshInterval)
	}
	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)
	t.Setenv(envBaseURL, "http://10.0.0.5:9999/batches")
	t.Setenv(envRefreshInterval, "42")
	t.Setenv(envLogLevel, "WARN")
	t.Setenv(envLogDir, "~/env-logs")

	path := writeConfig(t, `base_url = "http://file.example.com"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "http://10.0.0.5:9999/batches" {
		t.Fatalf("BaseURL = %q, want env override", cfg.BaseURL)
	}
	if cfg.RefreshInterval != 42*time.Second {
		t.Fatalf("RefreshInterval = %v, want 42s", cfg.RefreshInterval)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.LogDir != filepath.Join(home, "env-logs") {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, filepath.Join(home, "env-logs"))
	}
}

func TestLoad_Offline(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "offline = true\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Offline {
		t.Fatalf("Offline = false, want true from file")
	}

	t.Setenv(envOffline, "false")
	cfg, err = Load(writeConfig(t, "offline = true\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Offline {
		t.Fatalf("Offline = true, want env override to false")
	}

	t.Setenv(envOffline, "sometimes")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil || !strings.Contains(err.Error(), envOffline) {
		t.Fatalf("Load error = %v, want it to mention %s", err, envOffline)
	}
}

func TestLoad_InvalidEnvInterval(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	t.Setenv(envRefreshInterval, "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), envRefreshInterval) {
		t.Fatalf("Load error = %v, want it to mention %s", err, envRefreshInterval)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `base_url = [`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestLogPath_DefaultsWhenLogDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/batchview.log")) {
		t.Fatalf("LogPath = %q, want it to end with /batchview.log", got)
	}
}
