package agents

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ESWARARAO123/agents/internal/memory"
	"github.com/ESWARARAO123/agents/internal/ollama"
)

// Calculator modes. Local never calls the model; model always does and
// apologizes on transport failure; auto tries the model first and falls back
// to the deterministic evaluator when the service cannot answer.
const (
	CalcModeModel = "model"
	CalcModeLocal = "local"
	CalcModeAuto  = "auto"
)

// invalidCalcSentinel is what the directive prompt tells the model to reply
// with when the message holds no valid calculation.
const invalidCalcSentinel = "invalid"

const (
	invalidCalcMessage = "I apologize, but I couldn't perform the calculation. Please provide a valid mathematical expression."
	noCalcFoundMessage = "No valid calculation found in the message."
)

var expressionPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([-+*/^])\s*(\d+(?:\.\d+)?)`)

// Calculator evaluates arithmetic requests, either through the model or with
// a deterministic local expression scanner.
type Calculator struct {
	llm         ollama.Client
	store       memory.Store
	model       string
	temperature float64
	recallLimit int
	mode        string
}

func NewCalculator(llm ollama.Client, store memory.Store, model string, temperature float64, recallLimit int, mode string) *Calculator {
	if mode == "" {
		mode = CalcModeAuto
	}
	return &Calculator{
		llm:         llm,
		store:       store,
		model:       model,
		temperature: temperature,
		recallLimit: recallLimit,
		mode:        mode,
	}
}

func (a *Calculator) Respond(ctx context.Context, sessionID, message string) Reply {
	if a.mode == CalcModeLocal {
		return Reply{
			Text:    EvaluateExpressions(message),
			Source:  SourceFallback,
			AgentID: AgentCalculator,
		}
	}

	recall := renderRecall(fetchRecall(ctx, a.store, sessionID, message, a.recallLimit))

	var prompt strings.Builder
	prompt.WriteString("Solve the following mathematical expression.")
	if recall != "" {
		prompt.WriteString(" Here is some relevant past conversation for context:\n")
		prompt.WriteString(recall)
		prompt.WriteString("\n")
	}
	prompt.WriteString("\nOnly return the final numerical result without any explanation.\n")
	prompt.WriteString(`If the expression is not a valid mathematical calculation, respond with "Invalid calculation".`)
	prompt.WriteString("\n\nExpression: ")
	prompt.WriteString(message)
	prompt.WriteString("\n\nResult:")

	res, err := a.llm.Generate(ctx, ollama.GenerateRequest{
		Model:       a.model,
		Prompt:      prompt.String(),
		Temperature: a.temperature,
	})
	if err != nil {
		if a.mode == CalcModeAuto && (errors.Is(err, ollama.ErrUnreachable) || errors.Is(err, ollama.ErrTimeout)) {
			if expressionPattern.MatchString(message) {
				return Reply{
					Text:    EvaluateExpressions(message),
					Source:  SourceFallback,
					AgentID: AgentCalculator,
				}
			}
		}
		return Reply{
			Text:    apology(err, "performing the calculation"),
			Source:  SourceFallback,
			AgentID: AgentCalculator,
		}
	}

	text := strings.TrimSpace(res.Response)
	if value, err := strconv.ParseFloat(text, 64); err == nil {
		return Reply{
			Text:    "Result: " + formatNumber(value),
			Source:  SourceModel,
			AgentID: AgentCalculator,
		}
	}
	if strings.Contains(strings.ToLower(text), invalidCalcSentinel) {
		return Reply{
			Text:    invalidCalcMessage,
			Source:  SourceValidation,
			AgentID: AgentCalculator,
		}
	}
	// Best-effort passthrough when the model answered with prose.
	return Reply{
		Text:    "Calculation result: " + text,
		Source:  SourceModel,
		AgentID: AgentCalculator,
	}
}

// EvaluateExpressions scans the message for every non-overlapping
// "<number> <op> <number>" occurrence and evaluates each independently.
// Division by zero yields a per-match error line instead of aborting the
// other matches. Malformed substrings are simply not matched.
func EvaluateExpressions(message string) string {
	matches := expressionPattern.FindAllStringSubmatch(message, -1)
	if len(matches) == 0 {
		return noCalcFoundMessage
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		left, _ := strconv.ParseFloat(m[1], 64)
		right, _ := strconv.ParseFloat(m[3], 64)
		op := m[2]

		if op == "/" && right == 0 {
			lines = append(lines, "Error: Division by zero")
			continue
		}

		var result float64
		switch op {
		case "+":
			result = left + right
		case "-":
			result = left - right
		case "*":
			result = left * right
		case "/":
			result = left / right
		case "^":
			result = math.Pow(left, right)
		}

		lines = append(lines, formatNumber(left)+" "+op+" "+formatNumber(right)+" = "+formatNumber(result))
	}
	return strings.Join(lines, "\n")
}

// formatNumber renders a float the way the conversational surface expects:
// integral values keep a trailing ".0" (4 prints as "4.0").
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}
	return s
}
