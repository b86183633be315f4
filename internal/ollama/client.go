// Package ollama talks to a locally hosted Ollama text-completion service.
// The service is treated as an opaque dependency: a prompt goes in, a single
// completion string comes out.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// GenerateRequest is a single text-completion call.
type GenerateRequest struct {
	Model       string
	Prompt      string
	Temperature float64
}

// GenerateResponse carries the completion text.
type GenerateResponse struct {
	Response string
}

// Client submits completion requests to the model service.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

// ErrTimeout marks a call that exceeded the configured timeout.
var ErrTimeout = errors.New("ollama call timed out")

// ErrUnreachable marks a connection-level failure reaching the service.
var ErrUnreachable = errors.New("ollama service unreachable")

// Config controls client construction.
type Config struct {
	Mode    string
	BaseURL string
	Timeout time.Duration
}

// NewClient builds a client for the configured mode.
//
// "auto" resolves to the HTTP client when a base URL is set and to the mock
// otherwise, so the service still answers when no Ollama install is present.
func NewClient(cfg Config) (Client, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.BaseURL) != "" {
			return NewHTTPClient(cfg.BaseURL, cfg.Timeout), nil
		}
		return NewMockClient(nil), nil
	case "http":
		if strings.TrimSpace(cfg.BaseURL) == "" {
			return nil, errors.New("ollama base URL is required for http mode")
		}
		return NewHTTPClient(cfg.BaseURL, cfg.Timeout), nil
	case "mock":
		return NewMockClient(nil), nil
	default:
		return nil, fmt.Errorf("unsupported ollama client mode %q", cfg.Mode)
	}
}
