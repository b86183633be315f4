package memory

import (
	"context"
	"errors"
	"strings"
	"time"
)

// TurnRecord stores a single user or agent conversational turn.
type TurnRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Turn roles. Every record carries exactly one of these.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// ErrStorageUnavailable marks a failed operation against the durable backing
// store. Callers surface it to the request boundary instead of retrying:
// silently losing a turn would break the append-only history contract.
var ErrStorageUnavailable = errors.New("memory store unavailable")

// DefaultRecallLimit bounds RelevantHistory when the caller passes limit <= 0.
const DefaultRecallLimit = 3

// Store persists and retrieves the session-scoped conversation log.
//
// The log is append-only: turns are never mutated or deleted, and within one
// session the user turn of an exchange is saved before its agent turn.
type Store interface {
	// SaveTurn appends a turn, assigning an ID and timestamp when unset.
	SaveTurn(ctx context.Context, record TurnRecord) error
	// History returns every turn of a session in ascending timestamp order.
	// An unknown session yields an empty slice, not an error.
	History(ctx context.Context, sessionID string) ([]TurnRecord, error)
	// RelevantHistory returns at most limit turns of the session whose
	// content contains, case-insensitively, the first whitespace-delimited
	// token of message, most recent first. The match is lexical only: a
	// generic first token (a stopword, say) may recall unrelated turns.
	RelevantHistory(ctx context.Context, sessionID, message string, limit int) ([]TurnRecord, error)
	Close() error
}

// RecallToken extracts the lexical key used by RelevantHistory: the first
// whitespace-delimited token of the message, lowercased. Empty for a blank
// message.
func RecallToken(message string) string {
	fields := strings.Fields(message)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
