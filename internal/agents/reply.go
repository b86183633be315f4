// Package agents holds the three message responders and the classifier that
// picks between them. Responders never return errors for model or validation
// failures: every outcome is text, tagged with where it came from.
package agents

// Agent identifiers, stable across the API surface.
const (
	AgentGeneral    = 1
	AgentSQL        = 2
	AgentCalculator = 3
)

// Source tags where a reply's text came from.
type Source string

const (
	// SourceModel marks text derived from a model completion.
	SourceModel Source = "model"
	// SourceFallback marks locally produced text: apologies for transport
	// failures and deterministic calculator output.
	SourceFallback Source = "fallback"
	// SourceValidation marks the fixed message returned when a completion
	// failed its shape check.
	SourceValidation Source = "validation"
)

// Reply is a responder's answer to one message.
type Reply struct {
	Text    string `json:"text"`
	Source  Source `json:"source"`
	AgentID int    `json:"agent_id"`
}
