// Package config loads runtime configuration for the PRIZO CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   external API base URL (tried before the origin)
//	-o string   site origin
//	-t int      per-attempt request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "12s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.prizo.app",
//	  "origin": "https://prizo.app",
//	  "request_timeout": "12s",
//	  "state_dir": ".prizo"
//	}
//
// Primary API
//
//   - type Config                     — holds the API bases, timeout and state dir
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
