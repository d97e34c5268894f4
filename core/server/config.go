package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Environment is the deployment environment (development, production).
	Environment string `mapstructure:"environment" default:"development"`
	// BodyLimitKB caps request bodies, in kilobytes.
	BodyLimitKB int `mapstructure:"body_limit_kb" default:"512"`
}

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// IsValidEnvironment checks if the configured environment is valid.
func (c Config) IsValidEnvironment() bool {
	switch c.Environment {
	case EnvironmentDevelopment, EnvironmentProduction:
		return true
	default:
		return false
	}
}

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitKB <= 0 {
		return 512 * 1024
	}
	return c.BodyLimitKB * 1024
}
