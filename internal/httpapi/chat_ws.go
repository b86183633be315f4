package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ESWARARAO123/agents/internal/memory"
)

// handleChatWS serves a websocket variant of /chat: each inbound text frame
// is one chat request, each reply one chat response. Frames run through the
// same dispatcher path, so classification, persistence and the worker pool
// behave identically to the REST endpoint.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		if msgType != websocket.TextMessage {
			continue
		}

		var req chatRequest
		if err := json.Unmarshal(data, &req); err != nil || strings.TrimSpace(req.Message) == "" {
			if werr := writeWS(conn, errorResponse{Error: "message is required", Code: "invalid_request"}); werr != nil {
				return
			}
			continue
		}

		reply, err := s.dispatcher.Handle(r.Context(), req.SessionID, req.Message)
		if err != nil {
			code := "internal_error"
			if errors.Is(err, memory.ErrStorageUnavailable) {
				code = "storage_unavailable"
			}
			if werr := writeWS(conn, errorResponse{Error: "failed to process the message", Code: code}); werr != nil {
				return
			}
			continue
		}

		if err := writeWS(conn, chatResponse{Response: reply.Text, AgentUsed: reply.AgentID}); err != nil {
			return
		}
	}
}

func writeWS(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(v)
}
