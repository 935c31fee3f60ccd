package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avolkov/backoffice/internal/flagx"
	"github.com/avolkov/backoffice/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be given either as a string like "3s" or
// as integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when neither is given nothing is
// loaded. Read or unmarshal errors panic, the process cannot do anything
// useful with a broken config file.
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
