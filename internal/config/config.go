package config

import (
	"os"
	"strconv"
	"time"
)

// Config is resolved once at startup and read-only afterwards.
type Config struct {
	Port          string
	EngineURL     string
	EngineTimeout time.Duration

	MongoURI string

	RabbitURI      string
	RabbitExchange string
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		EngineURL:     getEnv("ENGINE_URL", "http://localhost:8000"),
		EngineTimeout: time.Duration(getEnvInt("ENGINE_TIMEOUT_SECONDS", 60)) * time.Second,

		MongoURI: os.Getenv("MONGO_URI"),

		RabbitURI:      os.Getenv("RABBITMQ_URI"),
		RabbitExchange: os.Getenv("RABBITMQ_EXCHANGE"),
	}
}
