package agents

import (
	"context"
	"strings"

	"github.com/ESWARARAO123/agents/internal/memory"
	"github.com/ESWARARAO123/agents/internal/ollama"
)

// General handles open-ended conversation: it forwards the message to the
// model together with any lexically relevant session history and returns the
// completion verbatim.
type General struct {
	llm         ollama.Client
	store       memory.Store
	model       string
	temperature float64
	recallLimit int
}

func NewGeneral(llm ollama.Client, store memory.Store, model string, temperature float64, recallLimit int) *General {
	return &General{
		llm:         llm,
		store:       store,
		model:       model,
		temperature: temperature,
		recallLimit: recallLimit,
	}
}

func (a *General) Respond(ctx context.Context, sessionID, message string) Reply {
	recall := renderRecall(fetchRecall(ctx, a.store, sessionID, message, a.recallLimit))

	var prompt strings.Builder
	prompt.WriteString("You are a friendly, helpful assistant.\n")
	if recall != "" {
		prompt.WriteString("\nRelevant conversation history:\n")
		prompt.WriteString(recall)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\nUser message: ")
	prompt.WriteString(message)
	prompt.WriteString("\n\nResponse:")

	res, err := a.llm.Generate(ctx, ollama.GenerateRequest{
		Model:       a.model,
		Prompt:      prompt.String(),
		Temperature: a.temperature,
	})
	if err != nil {
		return Reply{
			Text:    apology(err, "responding"),
			Source:  SourceFallback,
			AgentID: AgentGeneral,
		}
	}

	return Reply{
		Text:    strings.TrimSpace(res.Response),
		Source:  SourceModel,
		AgentID: AgentGeneral,
	}
}
