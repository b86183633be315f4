package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ESWARARAO123/agents/internal/agents"
	"github.com/ESWARARAO123/agents/internal/config"
	"github.com/ESWARARAO123/agents/internal/dispatch"
	"github.com/ESWARARAO123/agents/internal/httpapi"
	"github.com/ESWARARAO123/agents/internal/memory"
	"github.com/ESWARARAO123/agents/internal/observability"
	"github.com/ESWARARAO123/agents/internal/ollama"
)

type BuildResult struct {
	Config     config.Config
	API        *httpapi.Server
	Dispatcher *dispatch.Dispatcher
	Metrics    *observability.Metrics
	StoreMode  string

	// Cleanup should be called on shutdown to release external resources.
	Cleanup func() error
}

// Build constructs the full service graph from config: store, model client,
// the three agents, dispatcher and HTTP surface. No package-level state; the
// caller owns every component's lifecycle.
func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	store, err := memory.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("memory store init failed: %w", err)
	}
	storeMode := "in-memory"
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		storeMode = "postgres"
	}

	llm, err := ollama.NewClient(ollama.Config{
		Mode:    cfg.OllamaMode,
		BaseURL: cfg.OllamaBaseURL,
		Timeout: cfg.OllamaTimeout,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ollama client init failed: %w", err)
	}

	general := agents.NewGeneral(llm, store, cfg.OllamaModel, cfg.ChatTemperature, cfg.RecallLimit)
	sqlgen := agents.NewSQLGenerator(llm, cfg.OllamaModel, cfg.SQLTemperature)
	calculator := agents.NewCalculator(llm, store, cfg.OllamaModel, cfg.CalcTemperature, cfg.RecallLimit, strings.ToLower(cfg.CalculatorMode))

	dispatcher := dispatch.New(store, general, sqlgen, calculator, metrics, cfg.DefaultSession, cfg.WorkerCount)
	api := httpapi.New(cfg, dispatcher, metrics)

	return &BuildResult{
		Config:     cfg,
		API:        api,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		StoreMode:  storeMode,
		Cleanup:    store.Close,
	}, nil
}
