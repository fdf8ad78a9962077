package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chasingbytes/resume/backend/internal/model/profile"
	"github.com/chasingbytes/resume/backend/internal/service/assets"
	"github.com/chasingbytes/resume/backend/pkg/utils"
)

// Handler 简历资料的HTTP处理器
type Handler struct {
	profiles profile.Store
	assets   *assets.Store
}

// New 创建简历资料处理器
func New(profiles profile.Store, assetStore *assets.Store) *Handler {
	return &Handler{
		profiles: profiles,
		assets:   assetStore,
	}
}

// RegisterRoutes 注册简历资料相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.handleGetProfile)
}

type download struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	URL       string `json:"url"`
	Available bool   `json:"available"`
}

type profileResponse struct {
	profile.Profile
	Downloads []download `json:"downloads"`
}

// handleGetProfile 返回简历资料以及可下载的附件
func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p := h.profiles.Get()

	downloads := make([]download, 0, len(p.Documents))
	for _, doc := range p.Documents {
		downloads = append(downloads, download{
			Name:      doc.Name,
			Label:     doc.Label,
			URL:       profile.DocumentPath(doc.Name),
			Available: h.assets.Has(doc.Name),
		})
	}

	utils.RespondJSON(w, http.StatusOK, profileResponse{Profile: p, Downloads: downloads})
}
