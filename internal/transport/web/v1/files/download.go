package files

import (
	"net/http"

	"github.com/EgorLis/file-vault/internal/transport/web/logx"
	"github.com/EgorLis/file-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/file-vault/internal/transport/web/v1"
)

// Download godoc
// @Summary     Download redirect
// @Description 302 на ссылку хранилища; имя сохраняемого файла — originalName
// @Description первой загрузки (после санитизации).
// @Tags        files
// @Param       id  path  string  true  "File ID (uuid)"
// @Success     302
// @Failure     404  {object}  domain.APIEnvelope
// @Failure     500  {object}  domain.APIEnvelope
// @Router      /files/{id}/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "files.download"
	reqID := mw.RequestIDFromCtx(r.Context())

	rec, err := h.recordByID(r, r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	url := h.Store.BuildAccessURL(rec.StorageKey, rec.OriginalName)
	logx.Info(h.Log, reqID, op, "redirect")
	http.Redirect(w, r, url, http.StatusFound)
}
