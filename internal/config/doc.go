// Package config handles loading batchview configuration.
//
// # Overview
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (see Default)
//  2. The TOML file at ~/.config/batchview/config.toml, or the -config path
//  3. Environment variables, optionally seeded from a .env file in the
//     working directory
//
// A missing config file is not an error; defaults are used. A file that
// exists but fails to parse is.
//
// # Default Values
//
//   - Config file: ~/.config/batchview/config.toml
//   - Batch API base: http://127.0.0.1:8080/api/batch
//   - Refresh interval: 300 seconds
//   - Request timeout: 30 seconds
//   - Log directory: ~/.local/share/batchview/logs
//   - Log level: info
//   - Theme: Dracula
//   - Offline fallback: enabled
//
// # TOML Format
//
//	base_url = "https://api.example.com/api/batch"
//	refresh_interval = 300   # seconds
//	request_timeout = 30     # seconds
//	log_dir = "~/.local/share/batchview/logs"
//	log_level = "info"
//	theme = "Dracula"
//	fallback = true
//
// Every field is optional. Strings are trimmed; blank strings and
// non-positive durations fall back to defaults. Tilde expansion is applied to
// log_dir.
//
// # Environment
//
//	BATCHVIEW_BASE_URL          overrides base_url
//	BATCHVIEW_REFRESH_INTERVAL  overrides refresh_interval (positive seconds)
//	BATCHVIEW_LOG_LEVEL         overrides log_level
//	BATCHVIEW_LOG_DIR           overrides log_dir
//
// A malformed BATCHVIEW_REFRESH_INTERVAL is reported as an error rather than
// silently ignored.
package config
