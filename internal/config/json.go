package config

import (
	"encoding/json"
	"os"

	"github.com/voyageapp/voyage-client/internal/flagx"
	"github.com/voyageapp/voyage-client/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
//
// Storage credentials can only be supplied here (or via the environment of
// the storage backend itself); they have no flag equivalents.
type JsonConfig struct {
	APIBaseURL           string         `json:"api_base_url"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	RequestRetries       uint64         `json:"request_retries"`
	StorageEndpoint      string         `json:"storage_endpoint"`
	StorageRegion        string         `json:"storage_region"`
	StorageAccessKey     string         `json:"storage_access_key"`
	StorageSecretKey     string         `json:"storage_secret_key"`
	PrivateBucket        string         `json:"private_bucket"`
	PublicBucket         string         `json:"public_bucket"`
	DatabasePath         string         `json:"database_path"`
	Locale               string         `json:"locale"`
	ProgressPollInterval timex.Duration `json:"progress_poll_interval"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c/-config flags. Missing file path means no JSON is loaded. Empty
// fields in the file leave the current value untouched. Read or unmarshal
// errors panic (caller may recover).
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
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RequestRetries != 0 {
		cfg.RequestRetries = jc.RequestRetries
	}
	if jc.StorageEndpoint != "" {
		cfg.StorageEndpoint = jc.StorageEndpoint
	}
	if jc.StorageRegion != "" {
		cfg.StorageRegion = jc.StorageRegion
	}
	if jc.StorageAccessKey != "" {
		cfg.StorageAccessKey = jc.StorageAccessKey
	}
	if jc.StorageSecretKey != "" {
		cfg.StorageSecretKey = jc.StorageSecretKey
	}
	if jc.PrivateBucket != "" {
		cfg.PrivateBucket = jc.PrivateBucket
	}
	if jc.PublicBucket != "" {
		cfg.PublicBucket = jc.PublicBucket
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.Locale != "" {
		cfg.Locale = jc.Locale
	}
	if jc.ProgressPollInterval.Duration != 0 {
		cfg.ProgressPollInterval = jc.ProgressPollInterval.Duration
	}
}
