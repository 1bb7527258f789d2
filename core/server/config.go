package server

// Config holds configuration for the stub backend server.
type Config struct {
	// Port is the port where the stub server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the stub API.
	ApiKey string `mapstructure:"api_key" default:""`
}
