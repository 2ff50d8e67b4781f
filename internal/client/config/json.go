package config

import (
	"encoding/json"
	"os"

	"github.com/plannly/guestsync/internal/flagx"
	"github.com/plannly/guestsync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be written either as strings like "30s"
// or as integer nanoseconds.
type JsonConfig struct {
	StoreBaseURL          string         `json:"store_base_url"`
	RequestTimeout        timex.Duration `json:"request_timeout"`
	PollGraceDelay        timex.Duration `json:"poll_grace_delay"`
	PollInterval          timex.Duration `json:"poll_interval"`
	TokenSecret           string         `json:"token_secret"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flags. No file flag means no overlay. Zero values in the file are
// treated as absent so partial configs stay partial.
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

	if jc.StoreBaseURL != "" {
		cfg.StoreBaseURL = jc.StoreBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PollGraceDelay.Duration != 0 {
		cfg.PollGraceDelay = jc.PollGraceDelay.Duration
	}
	if jc.PollInterval.Duration != 0 {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.TokenSecret != "" {
		cfg.TokenSecret = jc.TokenSecret
	}
	if jc.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
}
