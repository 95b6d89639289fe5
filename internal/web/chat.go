package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/grocer/internal/assistant"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	Type     string `json:"type"`      // "message" or "clear"
	ThreadID string `json:"thread_id"` // empty to start a new thread
	Content  string `json:"content"`
}

// chatResponse is the outgoing WebSocket message format. HTML carries the
// rendered answer; Content keeps the raw markdown.
type chatResponse struct {
	Type     string `json:"type"` // "response", "cleared" or "error"
	ThreadID string `json:"thread_id"`
	Content  string `json:"content"`
	HTML     string `json:"html,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("web: websocket read: %v", err)
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError(conn, "", "invalid message format")
			continue
		}

		switch req.Type {
		case "message":
			s.handleChatMessage(conn, r, req)
		case "clear":
			s.handleClear(conn, r, req)
		default:
			s.sendError(conn, req.ThreadID, "unknown message type: "+req.Type)
		}
	}
}

// handleChatMessage runs one full agent turn. Failures become error frames
// in the conversation rather than dropped connections.
func (s *Server) handleChatMessage(conn *websocket.Conn, r *http.Request, req chatRequest) {
	if req.Content == "" {
		s.sendError(conn, req.ThreadID, "content is required")
		return
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = assistant.NewThreadID()
	}

	answer, err := s.assistant.Query(r.Context(), req.Content, threadID)
	if err != nil {
		s.sendError(conn, threadID, "query failed: "+err.Error())
		return
	}

	s.send(conn, chatResponse{
		Type:     "response",
		ThreadID: threadID,
		Content:  answer,
		HTML:     renderMarkdown(answer),
	})
}

// handleClear resets conversational memory and hands the client a fresh
// thread id. The product index is never touched.
func (s *Server) handleClear(conn *websocket.Conn, r *http.Request, req chatRequest) {
	if req.ThreadID != "" {
		if err := s.assistant.Reset(r.Context(), req.ThreadID); err != nil {
			s.sendError(conn, req.ThreadID, "clear failed: "+err.Error())
			return
		}
	}
	s.send(conn, chatResponse{
		Type:     "cleared",
		ThreadID: assistant.NewThreadID(),
	})
}

func (s *Server) send(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("web: websocket write: %v", err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, threadID, message string) {
	s.send(conn, chatResponse{
		Type:     "error",
		ThreadID: threadID,
		Content:  message,
	})
}
