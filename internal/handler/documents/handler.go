package documents

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chasingbytes/resume/backend/internal/service/assets"
	"github.com/chasingbytes/resume/backend/pkg/utils"
)

// Handler 附件下载的HTTP处理器
type Handler struct {
	assets *assets.Store
}

// New 创建附件下载处理器
func New(assetStore *assets.Store) *Handler {
	return &Handler{assets: assetStore}
}

// RegisterRoutes 注册附件相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/documents/{name}", h.handleDownload)
}

// handleDownload 按名称返回附件内容；图片内联展示，其余作为下载
func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	asset, ok := h.assets.Get(chi.URLParam(r, "name"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "document not found")
		return
	}

	disposition := "attachment"
	if strings.HasPrefix(asset.MIME, "image/") {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", asset.MIME)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": asset.FileName}))
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", 3600))
	http.ServeContent(w, r, asset.FileName, asset.ModTime, bytes.NewReader(asset.Data))
}
