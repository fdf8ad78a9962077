// Package page renders the résumé page and its form-driven assistant.
package page

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	chatHandler "github.com/chasingbytes/resume/backend/internal/handler/chat"
	chatModel "github.com/chasingbytes/resume/backend/internal/model/chat"
	"github.com/chasingbytes/resume/backend/internal/model/profile"
	"github.com/chasingbytes/resume/backend/internal/service/assets"
	"github.com/chasingbytes/resume/backend/internal/service/assistant"
	chatService "github.com/chasingbytes/resume/backend/internal/service/chat"
)

// SessionCookie binds a browser to its assistant session.
const SessionCookie = "resume_session"

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Handler 简历页面处理器
type Handler struct {
	profiles profile.Store
	assets   *assets.Store
	chatSvc  *chatService.Service
}

// New 创建页面处理器
func New(profiles profile.Store, assetStore *assets.Store, chatSvc *chatService.Service) *Handler {
	return &Handler{
		profiles: profiles,
		assets:   assetStore,
		chatSvc:  chatSvc,
	}
}

// RegisterRoutes 注册页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handlePage)
	r.Post("/ask", h.handleAsk)
}

type download struct {
	Label     string
	URL       string
	Available bool
}

type pageData struct {
	Profile    profile.Profile
	Portrait   string
	Downloads  []download
	Transcript []chatModel.Entry
	Question   string
	Error      string
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	session, err := h.resolveSession(w, r)
	if err != nil {
		http.Error(w, "could not start assistant session", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, h.buildPage(session, "", ""))
}

// handleAsk runs one query from the page form. Blank questions are ignored.
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	session, err := h.resolveSession(w, r)
	if err != nil {
		http.Error(w, "could not start assistant session", http.StatusInternalServerError)
		return
	}

	question := r.PostFormValue("question")
	if strings.TrimSpace(question) == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := h.chatSvc.Ask(r.Context(), session.ID(), question); err != nil {
		if errors.Is(err, assistant.ErrInvalidQuery) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		status, message := chatHandler.StatusFor(err)
		log.Printf("[page] ask failed for session=%s: %v", session.ID(), err)
		h.render(w, status, h.buildPage(session, question, message))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// resolveSession returns the session named by the cookie, creating a fresh one
// when the cookie is missing or the session has expired.
func (h *Handler) resolveSession(w http.ResponseWriter, r *http.Request) (*assistant.Session, error) {
	ctx := r.Context()

	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if session, err := h.chatSvc.GetSession(ctx, cookie.Value); err == nil {
			return session, nil
		}
	}

	info, err := h.chatSvc.CreateSession(ctx)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    info.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return h.chatSvc.GetSession(ctx, info.ID)
}

func (h *Handler) buildPage(session *assistant.Session, question, errMessage string) pageData {
	p := h.profiles.Get()

	data := pageData{
		Profile:    p,
		Transcript: session.Transcript(),
		Question:   question,
		Error:      errMessage,
	}

	if p.Image != "" && h.assets.Has(p.Image) {
		data.Portrait = profile.DocumentPath(p.Image)
	}

	for _, doc := range p.Documents {
		if doc.Name == p.Image {
			continue
		}
		data.Downloads = append(data.Downloads, download{
			Label:     doc.Label,
			URL:       profile.DocumentPath(doc.Name),
			Available: h.assets.Has(doc.Name),
		})
	}
	return data
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	var buf strings.Builder
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("[page] render failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
