package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the intake service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabasePath      string
	UploadRoot        string
	AllowedExtensions []string
	MaxUploadMB       int
	SessionSecret     string
	SessionTTL        time.Duration
	RedisURL          string
	DedupeTTL         time.Duration
	SubmitRateMax     int
	SubmitRateWindow  time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("INTAKE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Interview Intake")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8000")
	v.SetDefault("database.path", "instance/interview.db")
	v.SetDefault("upload.root", "uploads")
	v.SetDefault("upload.allowed_extensions", "pdf,png,jpg,jpeg,doc,docx")
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("dedupe.ttl", "5m")
	v.SetDefault("submit.rate_max", 10)
	v.SetDefault("submit.rate_window", "1m")

	sessionTTL, err := time.ParseDuration(v.GetString("session.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	dedupeTTL, err := time.ParseDuration(v.GetString("dedupe.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dedupe ttl: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("submit.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid submit rate window: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabasePath:      v.GetString("database.path"),
		UploadRoot:        v.GetString("upload.root"),
		AllowedExtensions: splitExtensions(v.GetString("upload.allowed_extensions")),
		MaxUploadMB:       v.GetInt("upload.max_mb"),
		SessionSecret:     v.GetString("session.secret"),
		SessionTTL:        sessionTTL,
		RedisURL:          v.GetString("redis.url"),
		DedupeTTL:         dedupeTTL,
		SubmitRateMax:     v.GetInt("submit.rate_max"),
		SubmitRateWindow:  rateWindow,
	}

	// The session secret signs candidate cookies; it must stay stable across
	// restarts or in-flight sessions become unreadable.
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("session secret must be provided")
	}

	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	return cfg, nil
}

func splitExtensions(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed != "" {
			result = append(result, strings.TrimPrefix(trimmed, "."))
		}
	}
	return result
}
