package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	if cfg.BindAddr != ":8000" {
		t.Errorf("BindAddr = %q, want :8000", cfg.BindAddr)
	}
	if cfg.OllamaModel != "mistral" {
		t.Errorf("OllamaModel = %q, want mistral", cfg.OllamaModel)
	}
	if cfg.OllamaBaseURL != "http://localhost:11434" {
		t.Errorf("OllamaBaseURL = %q", cfg.OllamaBaseURL)
	}
	if cfg.OllamaTimeout != 30*time.Second {
		t.Errorf("OllamaTimeout = %v, want 30s", cfg.OllamaTimeout)
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("WorkerCount = %d, want 3", cfg.WorkerCount)
	}
	if cfg.RecallLimit != 3 {
		t.Errorf("RecallLimit = %d, want 3", cfg.RecallLimit)
	}
	if cfg.DefaultSession != "default" {
		t.Errorf("DefaultSession = %q, want default", cfg.DefaultSession)
	}
	if cfg.CalculatorMode != "auto" {
		t.Errorf("CalculatorMode = %q, want auto", cfg.CalculatorMode)
	}
	if cfg.SQLTemperature >= cfg.ChatTemperature {
		t.Errorf("SQLTemperature %v should be below ChatTemperature %v", cfg.SQLTemperature, cfg.ChatTemperature)
	}
	if cfg.CalcTemperature >= cfg.SQLTemperature {
		t.Errorf("CalcTemperature %v should be below SQLTemperature %v", cfg.CalcTemperature, cfg.SQLTemperature)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_BIND_ADDR", ":9000")
	t.Setenv("OLLAMA_TIMEOUT", "90s")
	t.Setenv("APP_WORKER_COUNT", "5")
	t.Setenv("OLLAMA_CHAT_TEMPERATURE", "0.9")
	t.Setenv("CALCULATOR_MODE", "local")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	if cfg.BindAddr != ":9000" {
		t.Errorf("BindAddr = %q, want :9000", cfg.BindAddr)
	}
	if cfg.OllamaTimeout != 90*time.Second {
		t.Errorf("OllamaTimeout = %v, want 90s", cfg.OllamaTimeout)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("WorkerCount = %d, want 5", cfg.WorkerCount)
	}
	if cfg.ChatTemperature != 0.9 {
		t.Errorf("ChatTemperature = %v, want 0.9", cfg.ChatTemperature)
	}
	if cfg.CalculatorMode != "local" {
		t.Errorf("CalculatorMode = %q, want local", cfg.CalculatorMode)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"APP_WORKER_COUNT", "0"},
		{"APP_WORKER_COUNT", "not-a-number"},
		{"APP_RECALL_LIMIT", "-1"},
		{"OLLAMA_TIMEOUT", "10ms"},
		{"CALCULATOR_MODE", "quantum"},
		{"OLLAMA_MODE", "telepathy"},
		{"APP_ALLOW_ANY_ORIGIN", "maybe"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load accepted %s=%s", tc.key, tc.value)
			}
		})
	}
}
