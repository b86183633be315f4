package agents

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ESWARARAO123/agents/internal/ollama"
)

func TestSQLGeneratorValidQuery(t *testing.T) {
	llm := ollama.NewMockClient(func(req ollama.GenerateRequest) (string, error) {
		if !strings.Contains(req.Prompt, "show users from customers where age > 30") {
			t.Errorf("prompt missing request text: %q", req.Prompt)
		}
		return "SELECT * FROM customers WHERE age > 30\n", nil
	})
	gen := NewSQLGenerator(llm, "mistral", 0.3)

	reply := gen.Respond(context.Background(), "show users from customers where age > 30")
	want := "Generated Query:\nSELECT * FROM customers WHERE age > 30"
	if reply.Text != want {
		t.Fatalf("reply text = %q, want %q", reply.Text, want)
	}
	if reply.Source != SourceModel {
		t.Fatalf("reply source = %q, want %q", reply.Source, SourceModel)
	}
	if reply.AgentID != AgentSQL {
		t.Fatalf("reply agent = %d, want %d", reply.AgentID, AgentSQL)
	}
}

func TestSQLGeneratorLeadingKeywords(t *testing.T) {
	for _, lead := range []string{"select", "INSERT", "Update", "DELETE", "create"} {
		llm := ollama.NewMockClient(func(req ollama.GenerateRequest) (string, error) {
			return lead + " something", nil
		})
		reply := NewSQLGenerator(llm, "mistral", 0.3).Respond(context.Background(), "do the thing")
		if reply.Source != SourceModel {
			t.Errorf("leading keyword %q rejected: %q", lead, reply.Text)
		}
	}
}

func TestSQLGeneratorRejectsNonQueryOutput(t *testing.T) {
	llm := ollama.NewMockClient(func(req ollama.GenerateRequest) (string, error) {
		return "Sure! Here is a query you could use: SELECT ...", nil
	})
	gen := NewSQLGenerator(llm, "mistral", 0.3)

	reply := gen.Respond(context.Background(), "show me the data")
	if reply.Text != invalidQueryMessage {
		t.Fatalf("reply text = %q, want the fixed validation message", reply.Text)
	}
	if reply.Source != SourceValidation {
		t.Fatalf("reply source = %q, want %q", reply.Source, SourceValidation)
	}
}

func TestSQLGeneratorApologizesOnTransportError(t *testing.T) {
	llm := ollama.NewMockClient(func(req ollama.GenerateRequest) (string, error) {
		return "", fmt.Errorf("%w: context deadline exceeded", ollama.ErrTimeout)
	})
	gen := NewSQLGenerator(llm, "mistral", 0.3)

	reply := gen.Respond(context.Background(), "show me the data")
	if !strings.Contains(reply.Text, "took too long") {
		t.Fatalf("reply text = %q, want the timeout apology", reply.Text)
	}
	if reply.Source != SourceFallback {
		t.Fatalf("reply source = %q, want %q", reply.Source, SourceFallback)
	}
}
