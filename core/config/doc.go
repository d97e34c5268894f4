// Package config assembles the application configuration.
//
// Values come from environment variables, optionally seeded from a .env file. Each package
// owns its partial Config and declares defaults through `default` struct tags; LoadConfig
// registers them with Viper and maps nested keys to env names (steam.api_key is read from
// STEAM_API_KEY).
//
// # Sections
//
//   - server: port, environment, request body limit
//   - auth: bearer token secret and issuer
//   - database: driver and connection details
//   - storage: S3/MinIO credentials and bucket
//   - cache: catalog lookup cache backend
//   - steam: remote API key, endpoints, worker pool and snapshot settings
//   - log: level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Steam.Concurrency)
package config
