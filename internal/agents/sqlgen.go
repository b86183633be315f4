package agents

import (
	"context"
	"strings"

	"github.com/ESWARARAO123/agents/internal/ollama"
)

// Leading keywords a generated query must start with. Anything else is
// treated as hallucinated non-query output and replaced with a fixed message.
var queryLeadingKeywords = []string{"select", "insert", "update", "delete", "create"}

const invalidQueryMessage = "I apologize, but I couldn't generate a valid SQL query. Please try rephrasing your request."

// SQLGenerator converts natural-language requests into SQL query strings.
type SQLGenerator struct {
	llm         ollama.Client
	model       string
	temperature float64
}

func NewSQLGenerator(llm ollama.Client, model string, temperature float64) *SQLGenerator {
	return &SQLGenerator{llm: llm, model: model, temperature: temperature}
}

func (a *SQLGenerator) Respond(ctx context.Context, message string) Reply {
	prompt := "Convert the following natural language request into a SQL query.\n" +
		"Only return the SQL query without any explanation.\n\n" +
		"Request: " + message + "\n\n" +
		"SQL Query:"

	res, err := a.llm.Generate(ctx, ollama.GenerateRequest{
		Model:       a.model,
		Prompt:      prompt,
		Temperature: a.temperature,
	})
	if err != nil {
		return Reply{
			Text:    apology(err, "generating the SQL query"),
			Source:  SourceFallback,
			AgentID: AgentSQL,
		}
	}

	query := strings.TrimSpace(res.Response)
	if !startsWithQueryKeyword(query) {
		return Reply{
			Text:    invalidQueryMessage,
			Source:  SourceValidation,
			AgentID: AgentSQL,
		}
	}

	return Reply{
		Text:    "Generated Query:\n" + query,
		Source:  SourceModel,
		AgentID: AgentSQL,
	}
}

func startsWithQueryKeyword(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range queryLeadingKeywords {
		if strings.HasPrefix(q, kw) {
			return true
		}
	}
	return false
}
