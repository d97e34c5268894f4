package cache

// Config holds configuration for the lookup cache.
type Config struct {
	// Driver selects the backend (memory, redis).
	Driver string `mapstructure:"driver" default:"memory"`
	// Size is the maximum number of entries kept by the memory backend.
	Size int `mapstructure:"size" default:"1024"`
	// RedisAddr is the host:port of the redis server.
	RedisAddr string `mapstructure:"redis_addr" default:"localhost:6379"`
	// RedisPassword authenticates against redis.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB is the redis logical database.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// Prefix namespaces every key written to redis.
	Prefix string `mapstructure:"prefix" default:"site:"`
}

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)
