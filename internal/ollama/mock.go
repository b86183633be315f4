package ollama

import (
	"context"
	"fmt"
	"strings"
)

// MockClient provides deterministic local completions when no Ollama service
// is configured, and scripted replies in tests.
type MockClient struct {
	reply func(req GenerateRequest) (string, error)
}

// NewMockClient builds a mock. A nil reply function yields a canned echo.
func NewMockClient(reply func(req GenerateRequest) (string, error)) *MockClient {
	return &MockClient{reply: reply}
}

func (c *MockClient) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	select {
	case <-ctx.Done():
		return GenerateResponse{}, ctx.Err()
	default:
	}

	if c.reply != nil {
		text, err := c.reply(req)
		if err != nil {
			return GenerateResponse{}, err
		}
		return GenerateResponse{Response: text}, nil
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return GenerateResponse{Response: "I am listening."}, nil
	}
	return GenerateResponse{Response: fmt.Sprintf("[%s] %s", req.Model, prompt)}, nil
}
