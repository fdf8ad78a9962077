package chat

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/chasingbytes/resume/backend/internal/service/assistant"
	chatService "github.com/chasingbytes/resume/backend/internal/service/chat"
	"github.com/chasingbytes/resume/backend/pkg/utils"
)

// Handler 助手会话的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
}

// New 创建助手会话处理器
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Route("/session/{sessionID}", func(sr chi.Router) {
		sr.Delete("/", h.handleEndSession)
		sr.Post("/ask", h.handleAsk)
		sr.Get("/transcript", h.handleTranscript)
	})
}

// handleCreateSession 创建会话
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

// handleEndSession 结束会话并丢弃对话记录
func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		status, message := StatusFor(err)
		utils.RespondError(w, status, message)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAsk 提交问题
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
	}

	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	entry, err := h.chatSvc.Ask(r.Context(), sessionID, payload.Question)
	if err != nil {
		status, message := StatusFor(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[chat] ask failed for session=%s: %v", sessionID, err)
		}
		utils.RespondError(w, status, message)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, entry)
}

// handleTranscript 返回对话记录（最新的在前）
func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	entries, err := h.chatSvc.LoadTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		status, message := StatusFor(err)
		utils.RespondError(w, status, message)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// StatusFor maps assistant and session errors onto an HTTP status and a client-safe message.
func StatusFor(err error) (int, string) {
	var completionErr *assistant.CompletionError

	switch {
	case errors.Is(err, assistant.ErrInvalidQuery):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, chatService.ErrSessionNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, assistant.ErrBusy):
		return http.StatusConflict, err.Error()
	case errors.As(err, &completionErr):
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, "the assistant took too long to answer"
		}
		return http.StatusBadGateway, "the assistant could not answer right now"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "request cancelled before the assistant was free"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
