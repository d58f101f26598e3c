package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	UpstreamBaseURL        string
	UpstreamTimeoutSeconds int
	PollIntervalMS         int
	LogFile                string
	CrewmateModel          string
	ImpostorModel          string
}

func Default() Config {
	return Config{
		UpstreamBaseURL:        "http://localhost:8000",
		UpstreamTimeoutSeconds: 8,
		PollIntervalMS:         1500,
		LogFile:                "crewview.log",
		CrewmateModel:          "openrouter/free",
		ImpostorModel:          "openrouter/free",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("UPSTREAM_BASE_URL"); raw != "" {
		cfg.UpstreamBaseURL = raw
	}
	if raw := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.UpstreamTimeoutSeconds = value
		}
	}
	if raw := os.Getenv("POLL_MS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.PollIntervalMS = value
		}
	}
	if raw := os.Getenv("LOG_FILE"); raw != "" {
		cfg.LogFile = raw
	}
	if raw := os.Getenv("CREWMATE_MODEL"); raw != "" {
		cfg.CrewmateModel = raw
	}
	if raw := os.Getenv("IMPOSTOR_MODEL"); raw != "" {
		cfg.ImpostorModel = raw
	}
	return cfg
}

// PollInterval is PollIntervalMS as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// UpstreamTimeout is UpstreamTimeoutSeconds as a duration.
func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}
