package config

import "time"

// Config holds runtime settings for the Voyage client.
//
// Fields cover the three external surfaces the core talks to: the REST API,
// the object storage service (S3-compatible), and the local draft database,
// plus a couple of UI-facing knobs (locale, progress poll interval).
type Config struct {
	// APIBaseURL is the root of the backend REST API.
	APIBaseURL string
	// RequestTimeout bounds a single transport attempt, independent of the
	// retry loop's backoff timing.
	RequestTimeout time.Duration
	// RequestRetries is the default retry budget for API calls whose
	// endpoint does not set its own. Zero means a single attempt.
	RequestRetries uint64

	// StorageEndpoint overrides the S3 endpoint (MinIO / Supabase-storage
	// style hosts). Empty means the SDK default.
	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	// PrivateBucket receives access-controlled uploads; PublicBucket serves
	// CDN-style assets such as pet photos.
	PrivateBucket string
	PublicBucket  string

	// DatabasePath is the SQLite file holding the registration draft.
	DatabasePath string

	Locale string

	// ProgressPollInterval is how often the UI layer samples upload progress.
	ProgressPollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/v1"
	c.RequestTimeout = 30 * time.Second
	c.StorageRegion = "us-east-1"
	c.PrivateBucket = "media"
	c.PublicBucket = "media-public"
	c.DatabasePath = "voyage.db"
	c.Locale = "en"
	c.ProgressPollInterval = 500 * time.Millisecond
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
