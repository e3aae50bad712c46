package config

// Config holds the server's infrastructure settings
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string
}

// Load reads the server config from the environment
func Load() *Config {
	return &Config{
		MongoURI:  getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnvOrDefault("MONGO_DB", "avangrid_apm"),
		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		HTTPPort:  getEnvOrDefault("HTTP_PORT", "8080"),
	}
}
