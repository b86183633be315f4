package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ESWARARAO123/agents/internal/agents"
	"github.com/ESWARARAO123/agents/internal/memory"
	"github.com/ESWARARAO123/agents/internal/ollama"
)

func newTestDispatcher(store memory.Store, llm ollama.Client) *Dispatcher {
	general := agents.NewGeneral(llm, store, "mistral", 0.7, 3)
	sqlgen := agents.NewSQLGenerator(llm, "mistral", 0.3)
	calculator := agents.NewCalculator(llm, store, "mistral", 0.1, 3, agents.CalcModeLocal)
	return New(store, general, sqlgen, calculator, nil, "default", 3)
}

func TestHandlePersistsUserBeforeAgent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	llm := ollama.NewMockClient(func(req ollama.GenerateRequest) (string, error) {
		return "nice to meet you", nil
	})
	d := newTestDispatcher(store, llm)

	reply, err := d.Handle(ctx, "", "hello there")
	if err != nil {
		t.Fatalf("handle error = %v", err)
	}
	if reply.AgentID != agents.AgentGeneral {
		t.Fatalf("agent = %d, want %d", reply.AgentID, agents.AgentGeneral)
	}

	turns, err := store.History(ctx, "default")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("history len = %d, want 2", len(turns))
	}
	if turns[0].Role != memory.RoleUser || turns[0].Content != "hello there" {
		t.Fatalf("first turn = %+v, want the user message", turns[0])
	}
	if turns[1].Role != memory.RoleAgent || turns[1].Content != reply.Text {
		t.Fatalf("second turn = %+v, want the agent reply", turns[1])
	}
}

func TestHandleCalculatorEndToEnd(t *testing.T) {
	store := memory.NewInMemoryStore()
	llm := ollama.NewMockClient(nil)
	d := newTestDispatcher(store, llm)

	reply, err := d.Handle(context.Background(), "calc-session", "2 + 2")
	if err != nil {
		t.Fatalf("handle error = %v", err)
	}
	if reply.AgentID != agents.AgentCalculator {
		t.Fatalf("agent = %d, want %d", reply.AgentID, agents.AgentCalculator)
	}
	if !strings.Contains(reply.Text, "2.0 + 2.0 = 4.0") {
		t.Fatalf("reply text = %q, want the deterministic result", reply.Text)
	}
}

func TestHandleSentinelNotPersisted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	llm := ollama.NewMockClient(func(req ollama.GenerateRequest) (string, error) {
		return "ok", nil
	})
	d := newTestDispatcher(store, llm)

	for _, msg := range []string{"test", " TEST ", "Test"} {
		if _, err := d.Handle(ctx, "probe", msg); err != nil {
			t.Fatalf("handle(%q) error = %v", msg, err)
		}
	}

	turns, err := store.History(ctx, "probe")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("sentinel exchanges were persisted: %d turns", len(turns))
	}
}

// failingStore refuses writes, simulating an unreachable backing store.
type failingStore struct {
	memory.Store
}

func (failingStore) SaveTurn(context.Context, memory.TurnRecord) error {
	return fmt.Errorf("%w: connection refused", memory.ErrStorageUnavailable)
}

func TestHandleStorageFailureFailsExchange(t *testing.T) {
	llm := ollama.NewMockClient(func(req ollama.GenerateRequest) (string, error) {
		t.Fatal("model must not be called when the user turn cannot be persisted")
		return "", nil
	})
	d := newTestDispatcher(failingStore{Store: memory.NewInMemoryStore()}, llm)

	_, err := d.Handle(context.Background(), "s1", "hello")
	if err == nil {
		t.Fatal("handle succeeded despite storage failure")
	}
	if !errors.Is(err, memory.ErrStorageUnavailable) {
		t.Fatalf("error = %v, want ErrStorageUnavailable", err)
	}
}

func TestHealthCheckDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	llm := ollama.NewMockClient(func(req ollama.GenerateRequest) (string, error) {
		return "operational", nil
	})
	d := newTestDispatcher(store, llm)

	if err := d.HealthCheck(ctx); err != nil {
		t.Fatalf("health check error = %v", err)
	}
	turns, err := store.History(ctx, "default")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("health probe persisted %d turns", len(turns))
	}
}

func TestHealthCheckUnhealthyWhenModelDown(t *testing.T) {
	llm := ollama.NewMockClient(func(req ollama.GenerateRequest) (string, error) {
		return "", fmt.Errorf("%w: dial tcp", ollama.ErrUnreachable)
	})
	d := newTestDispatcher(memory.NewInMemoryStore(), llm)

	if err := d.HealthCheck(context.Background()); err == nil {
		t.Fatal("health check passed with an unreachable model service")
	}
}
