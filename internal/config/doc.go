// Package config loads shopper's startup configuration.
//
// # Overview
//
// shopper needs very little to run: the origin of the analysis backend and a
// place to write its log. Both have defaults, so no file is required.
//
// # Resolution Order
//
//  1. An optional .env file is read into the environment by LoadEnv
//     (existing variables are never overwritten)
//  2. The TOML file at the given path, or ~/.config/shopper/config.toml
//  3. Missing file or empty fields fall back to defaults
//  4. SHOPPER_API_BASE_URL, when set, replaces api_base_url
//
// # Default Values
//
//   - Config file: ~/.config/shopper/config.toml
//   - Backend: http://127.0.0.1:8000
//   - Log file: ~/.local/state/shopper/shopper.log
//   - Log level: info
//
// # TOML Format
//
//	api_base_url = "http://127.0.0.1:8000"
//	log_file = "~/.local/state/shopper/shopper.log"
//	log_level = "debug"
//
// All fields are optional. Tilde expansion is applied to log_file.
//
// # Error Handling
//
// Load fails on path expansion errors, unreadable files and invalid TOML.
// A missing file is not an error. The base URL is not validated here; the
// backend client rejects malformed values when it is constructed.
package config
