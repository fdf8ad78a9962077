package stream

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	chatHandler "github.com/chasingbytes/resume/backend/internal/handler/chat"
	chatModel "github.com/chasingbytes/resume/backend/internal/model/chat"
	chatService "github.com/chasingbytes/resume/backend/internal/service/chat"
	"github.com/chasingbytes/resume/backend/pkg/utils"
)

const defaultHeartbeat = 8 * time.Second

// Handler delivers one assistant answer over Server-Sent Events, sending
// heartbeats while the completion call is in flight.
type Handler struct {
	chatSvc   *chatService.Service
	heartbeat time.Duration
}

// New creates a new stream handler
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{
		chatSvc:   chatSvc,
		heartbeat: defaultHeartbeat,
	}
}

// RegisterRoutes 注册SSE路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{sessionID}", h.handleStream)
}

// StreamResponse is the data payload of every SSE event.
type StreamResponse struct {
	SessionID string           `json:"sessionId,omitempty"`
	State     string           `json:"state,omitempty"`
	Entry     *chatModel.Entry `json:"entry,omitempty"`
	Time      string           `json:"time,omitempty"`
	Finished  bool             `json:"finished,omitempty"`
	Status    int              `json:"status,omitempty"`
	Error     string           `json:"error,omitempty"`
}

type askResult struct {
	entry chatModel.Entry
	err   error
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")
	question := r.URL.Query().Get("message")

	if strings.TrimSpace(question) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	if _, err := h.chatSvc.GetSession(ctx, sessionID); err != nil {
		status, message := chatHandler.StatusFor(err)
		utils.RespondError(w, status, message)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "start", StreamResponse{SessionID: sessionID, State: "awaiting"})

	result := make(chan askResult, 1)
	go func() {
		entry, err := h.chatSvc.Ask(ctx, sessionID, question)
		result <- askResult{entry: entry, err: err}
	}()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[stream] client left before answer for session=%s", sessionID)
			return
		case t := <-ticker.C:
			utils.SendSSEEvent(w, flusher, "status", StreamResponse{
				SessionID: sessionID,
				State:     "awaiting",
				Time:      t.UTC().Format(time.RFC3339),
			})
		case res := <-result:
			if res.err != nil {
				status, message := chatHandler.StatusFor(res.err)
				if status >= http.StatusInternalServerError {
					log.Printf("[stream] ask failed for session=%s: %v", sessionID, res.err)
				}
				utils.SendSSEEvent(w, flusher, "error", StreamResponse{
					SessionID: sessionID,
					Status:    status,
					Error:     message,
				})
				return
			}

			utils.SendSSEEvent(w, flusher, "message", StreamResponse{SessionID: sessionID, Entry: &res.entry})
			utils.SendSSEEvent(w, flusher, "end", StreamResponse{SessionID: sessionID, Finished: true})
			log.Printf("[stream] completed response for session=%s", sessionID)
			return
		}
	}
}
