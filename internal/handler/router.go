package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/chasingbytes/resume/backend/internal/handler/chat"
	"github.com/chasingbytes/resume/backend/internal/handler/documents"
	"github.com/chasingbytes/resume/backend/internal/handler/page"
	profileHandler "github.com/chasingbytes/resume/backend/internal/handler/profile"
	"github.com/chasingbytes/resume/backend/internal/handler/stream"
	"github.com/chasingbytes/resume/backend/internal/handler/ws"
	middlewarePkg "github.com/chasingbytes/resume/backend/internal/middleware"
	"github.com/chasingbytes/resume/backend/internal/model/profile"
	"github.com/chasingbytes/resume/backend/internal/service/assets"
	chatService "github.com/chasingbytes/resume/backend/internal/service/chat"
	"github.com/chasingbytes/resume/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(profiles profile.Store, assetStore *assets.Store, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.StandardLogger(), NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	// Server-rendered page and its documents
	page.New(profiles, assetStore, chatSvc).RegisterRoutes(r)
	documents.New(assetStore).RegisterRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": chatSvc.Count(),
		})
	})

	r.Route("/api", func(api chi.Router) {
		profileHandler.New(profiles, assetStore).RegisterRoutes(api)
		chat.New(chatSvc).RegisterRoutes(api)
		stream.New(chatSvc).RegisterRoutes(api)
		ws.New(chatSvc).RegisterRoutes(api)
	})

	return r
}
