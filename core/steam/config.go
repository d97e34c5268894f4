package steam

import "time"

// Config holds the remote library integration settings.
type Config struct {
	// APIKey authenticates Web API calls. Without it the integration is disabled.
	APIKey string `mapstructure:"api_key" default:""`
	// APIBaseURL is the Web API root.
	APIBaseURL string `mapstructure:"api_base_url" default:"https://api.steampowered.com"`
	// StoreBaseURL is the public store root used for catalog details.
	StoreBaseURL string `mapstructure:"store_base_url" default:"https://store.steampowered.com"`
	// TimeoutSeconds bounds every remote request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// ImageStyle selects the artwork stored for synced titles (cover, icon).
	ImageStyle string `mapstructure:"image_style" default:"cover"`
	// Concurrency is the number of titles reconciled in parallel.
	Concurrency int `mapstructure:"concurrency" default:"4"`
	// DetailsTTLSeconds is how long catalog details stay cached.
	DetailsTTLSeconds int `mapstructure:"details_ttl_seconds" default:"3600"`
	// SnapshotRetention is the number of library snapshots kept per user. 0 disables them.
	SnapshotRetention int `mapstructure:"snapshot_retention" default:"10"`
}

// Timeout returns the request timeout, defaulting to 10 seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DetailsTTL returns the catalog cache lifetime.
func (c Config) DetailsTTL() time.Duration {
	if c.DetailsTTLSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(c.DetailsTTLSeconds) * time.Second
}
