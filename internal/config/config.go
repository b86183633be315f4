package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the agent router service.
type Config struct {
	BindAddr         string
	MetricsNamespace string
	ShutdownTimeout  time.Duration

	AllowAnyOrigin bool
	FrontendOrigin string

	DatabaseURL string

	OllamaMode      string
	OllamaBaseURL   string
	OllamaModel     string
	OllamaTimeout   time.Duration
	ChatTemperature float64
	SQLTemperature  float64
	CalcTemperature float64

	CalculatorMode string
	WorkerCount    int
	RecallLimit    int
	DefaultSession string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ":8000"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "agents"),
		FrontendOrigin:   envOrDefault("APP_FRONTEND_ORIGIN", "http://localhost:3001"),
		DatabaseURL:      stringsTrimSpace("DATABASE_URL"),
		OllamaMode:       envOrDefault("OLLAMA_MODE", "auto"),
		OllamaBaseURL:    envOrDefault("OLLAMA_BASE_URL", "http://localhost:11434"),
		// Mistral fits in modest local memory; heavier models time out more.
		OllamaModel:     envOrDefault("OLLAMA_MODEL", "mistral"),
		OllamaTimeout:   30 * time.Second,
		ChatTemperature: 0.7,
		// Lower temperatures for the structured agents: SQL generation
		// favors determinism, the calculator wants as little creativity
		// as the sampler allows.
		SQLTemperature:  0.3,
		CalcTemperature: 0.1,
		CalculatorMode:  envOrDefault("CALCULATOR_MODE", "auto"),
		WorkerCount:     3,
		RecallLimit:     3,
		DefaultSession:  envOrDefault("APP_DEFAULT_SESSION", "default"),
		ShutdownTimeout: 15 * time.Second,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.OllamaTimeout, err = durationFromEnv("OLLAMA_TIMEOUT", cfg.OllamaTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.ChatTemperature, err = floatFromEnv("OLLAMA_CHAT_TEMPERATURE", cfg.ChatTemperature)
	if err != nil {
		return Config{}, err
	}
	cfg.SQLTemperature, err = floatFromEnv("OLLAMA_SQL_TEMPERATURE", cfg.SQLTemperature)
	if err != nil {
		return Config{}, err
	}
	cfg.CalcTemperature, err = floatFromEnv("OLLAMA_CALC_TEMPERATURE", cfg.CalcTemperature)
	if err != nil {
		return Config{}, err
	}
	cfg.WorkerCount, err = intFromEnv("APP_WORKER_COUNT", cfg.WorkerCount)
	if err != nil {
		return Config{}, err
	}
	cfg.RecallLimit, err = intFromEnv("APP_RECALL_LIMIT", cfg.RecallLimit)
	if err != nil {
		return Config{}, err
	}

	if cfg.OllamaTimeout < time.Second {
		return Config{}, fmt.Errorf("OLLAMA_TIMEOUT must be at least 1s")
	}
	if cfg.WorkerCount <= 0 {
		return Config{}, fmt.Errorf("APP_WORKER_COUNT must be positive")
	}
	if cfg.RecallLimit <= 0 {
		return Config{}, fmt.Errorf("APP_RECALL_LIMIT must be positive")
	}
	switch strings.ToLower(cfg.CalculatorMode) {
	case "auto", "model", "local":
	default:
		return Config{}, fmt.Errorf("invalid CALCULATOR_MODE: %q (expected auto|model|local)", cfg.CalculatorMode)
	}
	switch strings.ToLower(cfg.OllamaMode) {
	case "auto", "http", "mock":
	default:
		return Config{}, fmt.Errorf("invalid OLLAMA_MODE: %q (expected auto|http|mock)", cfg.OllamaMode)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return f, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
