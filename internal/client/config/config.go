package config

import "time"

// Config holds runtime settings for the PRIZO CLI.
//
// Fields:
//   - APIBaseURL: explicitly configured external API base; tried first.
//   - Origin: the site origin; itself and origin+"/api" are the fallbacks.
//   - RequestTimeout: per-attempt HTTP timeout.
//   - StateDirName: subdirectory holding the local session database.
type Config struct {
	APIBaseURL     string
	Origin         string
	RequestTimeout time.Duration
	StateDirName   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.Origin = "http://localhost:8000"
	c.RequestTimeout = 12 * time.Second
	c.StateDirName = ".prizo"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
