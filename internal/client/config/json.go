package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/prizoapp/prizo-cli/internal/flagx"
	"github.com/prizoapp/prizo-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "12s" or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	Origin         string         `json:"origin"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateDirName   string         `json:"state_dir"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. Absent flags mean no JSON is loaded. Read or
// unmarshal errors panic (caller should recover if desired). Empty JSON
// fields leave the current value untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.Origin != "" {
		cfg.Origin = jc.Origin
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.StateDirName != "" {
		cfg.StateDirName = jc.StateDirName
	}
}
