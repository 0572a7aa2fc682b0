package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultListenAddr = ":8080"
	defaultKafkaTopic = "envcheck.reports"
	defaultChecksRPS  = 1.0
	defaultLogLevel   = "info"
)

type Config struct {
	ListenAddr   string
	RequiredDeps string // empty means the default dependency set
	KafkaBroker  string // empty disables report publishing
	KafkaTopic   string
	ChecksRPS    float64
	LogLevel     string
}

func LoadConfig() *Config {
	// Load .env file if it exists (for local dev)
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	return &Config{
		ListenAddr:   getenv("ENVCHECK_LISTEN_ADDR", defaultListenAddr),
		RequiredDeps: os.Getenv("ENVCHECK_REQUIRED_DEPS"),
		KafkaBroker:  os.Getenv("ENVCHECK_KAFKA_BROKER"),
		KafkaTopic:   getenv("ENVCHECK_KAFKA_TOPIC", defaultKafkaTopic),
		ChecksRPS:    parseRPS(os.Getenv("ENVCHECK_CHECKS_RPS")),
		LogLevel:     getenv("ENVCHECK_LOG_LEVEL", defaultLogLevel),
	}
}

// PublishEnabled reports whether a Kafka broker is configured.
func (c *Config) PublishEnabled() bool {
	return c.KafkaBroker != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseRPS(raw string) float64 {
	if raw == "" {
		return defaultChecksRPS
	}
	rps, err := strconv.ParseFloat(raw, 64)
	if err != nil || rps <= 0 {
		logrus.Warnf("Invalid ENVCHECK_CHECKS_RPS %q, using %v", raw, defaultChecksRPS)
		return defaultChecksRPS
	}
	return rps
}
