package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int

	// DatabaseURL selects Postgres when set; otherwise SQLitePath is
	// used as a file DSN.
	DatabaseURL string
	SQLitePath  string

	SessionSecret []byte
	SessionTTL    int // minutes

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string

	LogLevel string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	cfg := &Config{
		ServiceName:   EnvDefault("SERVICE_NAME", "ecommerce-api"),
		ServerPort:    EnvIntDefault("SERVER_PORT", 8080),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    EnvDefault("SQLITE_PATH", "ecommerce.db"),
		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionTTL:    EnvIntDefault("SESSION_TTL_MINUTES", 60),
		KafkaBrokers:  CSV(os.Getenv("KAFKA_BROKERS")),
		ESURL:         os.Getenv("ES_URL"),
		ESUser:        os.Getenv("ES_USER"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		LogLevel:      EnvDefault("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
