package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config collects everything read from the environment at startup.
type Config struct {
	Port           string
	AllowedOrigins []string
	DatabaseURL    string // empty disables the game-history store
	JoinRequestTTL time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}

	cfg := Config{
		Port:           getEnv("PORT", "4000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		JoinRequestTTL: 2 * time.Minute,
	}

	if raw := os.Getenv("JOIN_REQUEST_TTL_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			log.Printf("[WARN] invalid JOIN_REQUEST_TTL_SECONDS %q, keeping %s", raw, cfg.JoinRequestTTL)
		} else {
			cfg.JoinRequestTTL = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
