package backend

// Config holds configuration for the entitlement backend client.
type Config struct {
	// URL is the base URL of the entitlement backend.
	URL string `mapstructure:"url" default:"http://localhost:8080"`
	// APIKey is the secret key sent with every request.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
