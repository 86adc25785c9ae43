package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseDSN string

	// RabbitURL may be empty; order events are then dropped.
	RabbitURL string

	ShutdownTimeout time.Duration

	// CORS
	CORSAllowOrigins []string
}

func Load() Config {
	// .env is a local-dev convenience; missing file is fine.
	_ = godotenv.Load()

	return Config{
		Port:             getenv("PORT", "8080"),
		DatabaseDSN:      os.Getenv("STORE_DB_DSN"),
		RabbitURL:        os.Getenv("RABBITMQ_URL"),
		ShutdownTimeout:  parseDuration(getenv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
