package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	chatHandler "github.com/chasingbytes/resume/backend/internal/handler/chat"
	"github.com/chasingbytes/resume/backend/internal/service/assistant"
	chatService "github.com/chasingbytes/resume/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// Handler WebSocket助手处理器
type Handler struct {
	chatSvc  *chatService.Service
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// AskMessage 提问消息
type AskMessage struct {
	Question string `json:"question"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		status, message := chatHandler.StatusFor(err)
		http.Error(w, message, status)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[websocket] new connection for session: %s", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go pingLoop(ctx, conn)

	// Messages on one connection are handled in arrival order; the session
	// itself serialises against other connections and HTTP callers.
	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[websocket] read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		h.handleMessage(ctx, conn, session, &msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, conn *websocket.Conn, session *assistant.Session, msg *inboundMessage) {
	switch msg.Type {
	case "ask":
		var payload AskMessage
		if len(msg.Data) == 0 || json.Unmarshal(msg.Data, &payload) != nil {
			h.sendError(conn, session.ID(), http.StatusBadRequest, "invalid ask payload")
			return
		}

		// The read deadline would otherwise expire during a slow completion.
		conn.SetReadDeadline(time.Time{})
		entry, err := h.chatSvc.Ask(ctx, session.ID(), payload.Question)
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		if err != nil {
			status, message := chatHandler.StatusFor(err)
			if status >= http.StatusInternalServerError {
				log.Printf("[websocket] ask failed for session=%s: %v", session.ID(), err)
			}
			h.sendError(conn, session.ID(), status, message)
			return
		}
		h.send(conn, session.ID(), "entry", entry)
	case "transcript":
		entries, err := h.chatSvc.LoadTranscript(ctx, session.ID())
		if err != nil {
			status, message := chatHandler.StatusFor(err)
			h.sendError(conn, session.ID(), status, message)
			return
		}
		h.send(conn, session.ID(), "transcript", map[string]any{"entries": entries})
	default:
		h.sendError(conn, session.ID(), http.StatusBadRequest, "unsupported message type: "+msg.Type)
	}
}

func (h *Handler) send(conn *websocket.Conn, sessionID, kind string, data any) {
	msg := outgoingMessage{
		Type:      kind,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[websocket] write %s failed: %v", kind, err)
	}
}

func (h *Handler) sendError(conn *websocket.Conn, sessionID string, status int, message string) {
	h.send(conn, sessionID, "error", map[string]any{
		"status":  status,
		"message": message,
	})
}

// pingLoop 定期发送ping消息
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
