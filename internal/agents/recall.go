package agents

import (
	"context"
	"errors"
	"strings"

	"github.com/ESWARARAO123/agents/internal/memory"
	"github.com/ESWARARAO123/agents/internal/ollama"
)

// renderRecall formats recalled turns as role-labeled lines, most relevant
// first, for splicing into a prompt. Empty string when there is nothing to
// recall.
func renderRecall(turns []memory.TurnRecord) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		role := "Agent"
		if t.Role == memory.RoleUser {
			role = "User"
		}
		lines = append(lines, role+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}

// fetchRecall looks up lexically relevant history, tolerating a nil store
// and swallowing lookup failures: recall is best-effort context, never a
// reason to fail the exchange.
func fetchRecall(ctx context.Context, store memory.Store, sessionID, message string, limit int) []memory.TurnRecord {
	if store == nil {
		return nil
	}
	turns, err := store.RelevantHistory(ctx, sessionID, message, limit)
	if err != nil {
		return nil
	}
	return turns
}

// apology converts a model transport failure into user-facing text. The
// wording identifies the likely cause without leaking a raw fault upstream.
func apology(err error, action string) string {
	switch {
	case errors.Is(err, ollama.ErrUnreachable):
		return "I apologize, but I'm unable to connect to the Ollama service. Please make sure Ollama is running on your system."
	case errors.Is(err, ollama.ErrTimeout):
		return "I apologize, but the model took too long to respond. Please try again."
	default:
		return "I apologize, but I encountered an error while " + action + ": " + err.Error()
	}
}
