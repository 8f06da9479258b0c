package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures batchview settings.
type Config struct {
	BaseURL         string
	RefreshInterval time.Duration
	RequestTimeout  time.Duration
	LogDir          string
	LogLevel        string
	Theme           string
	Fallback        bool
	// Offline serves every record from the embedded dataset without contacting
	// BaseURL.
	Offline bool
}

const (
	defaultConfigPath      = "~/.config/batchview/config.toml"
	defaultBaseURL         = "http://127.0.0.1:8080/api/batch"
	defaultLogDir          = "~/.local/share/batchview/logs"
	defaultLogLevel        = "info"
	defaultTheme           = "Dracula"
	defaultRefreshInterval = 300 * time.Second
	defaultRequestTimeout  = 30 * time.Second
)

const (
	envBaseURL         = "BATCHVIEW_BASE_URL"
	envRefreshInterval = "BATCHVIEW_REFRESH_INTERVAL"
	envLogLevel        = "BATCHVIEW_LOG_LEVEL"
	envLogDir          = "BATCHVIEW_LOG_DIR"
	envOffline         = "BATCHVIEW_OFFLINE"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:         defaultBaseURL,
		RefreshInterval: defaultRefreshInterval,
		RequestTimeout:  defaultRequestTimeout,
		LogDir:          mustExpand(defaultLogDir),
		LogLevel:        defaultLogLevel,
		Theme:           defaultTheme,
		Fallback:        true,
	}
}

// Load reads the TOML config at path (or the default location), then applies
// environment overrides. A .env file in the working directory is loaded first
// when present; variables already set in the environment win over it.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := loadFile(resolved)
	if err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LogPath returns the path of the batchview log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/batchview.log")
	}
	return filepath.Join(c.LogDir, "batchview.log")
}

func loadFile(resolved string) (Config, error) {
	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL         string `toml:"base_url"`
		RefreshInterval int    `toml:"refresh_interval"`
		RequestTimeout  int    `toml:"request_timeout"`
		LogDir          string `toml:"log_dir"`
		LogLevel        string `toml:"log_level"`
		Theme           string `toml:"theme"`
		Fallback        *bool  `toml:"fallback"`
		Offline         bool   `toml:"offline"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if raw.RefreshInterval > 0 {
		cfg.RefreshInterval = time.Duration(raw.RefreshInterval) * time.Second
	}
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}
	if raw.Fallback != nil {
		cfg.Fallback = *raw.Fallback
	}
	cfg.Offline = raw.Offline
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envRefreshInterval)); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return fmt.Errorf("%s must be a positive number of seconds, got %q", envRefreshInterval, v)
		}
		cfg.RefreshInterval = time.Duration(secs) * time.Second
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(envLogDir)); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(envOffline)); v != "" {
		offline, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean, got %q", envOffline, v)
		}
		cfg.Offline = offline
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
