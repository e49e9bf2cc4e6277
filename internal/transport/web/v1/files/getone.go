package files

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/file-vault/internal/domain"
	"github.com/EgorLis/file-vault/internal/transport/web/logx"
	"github.com/EgorLis/file-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/file-vault/internal/transport/web/v1"
)

// Metadata godoc
// @Summary     File metadata
// @Tags        files
// @Produce     json
// @Param       id  path  string  true  "File ID (uuid)"
// @Success     200  {object}  domain.APIEnvelope
// @Failure     404  {object}  domain.APIEnvelope
// @Failure     500  {object}  domain.APIEnvelope
// @Router      /files/{id}/metadata [get]
func (h *Handler) Metadata(w http.ResponseWriter, r *http.Request) {
	const op = "files.metadata"
	reqID := mw.RequestIDFromCtx(r.Context())

	rec, err := h.recordByID(r, r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteEnvelope(w, r, http.StatusOK, domain.APIEnvelope{Status: http.StatusOK, File: &rec})
}

// recordByID: кеш -> индекс. Неизвестный или невалидный id — ErrNotFound,
// чтобы наружу не утекала разница между «не uuid» и «нет записи».
func (h *Handler) recordByID(r *http.Request, rawID string) (domain.FileRecord, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.FileRecord{}, domain.ErrNotFound
	}

	if h.Cache != nil {
		if b, err := h.Cache.Get(r.Context(), domain.CacheKeyFile(id)); err == nil && len(b) > 0 {
			var rec domain.FileRecord
			if json.Unmarshal(b, &rec) == nil {
				return rec, nil
			}
		}
	}

	rec, found, err := h.Index.FindByID(r.Context(), id)
	if err != nil {
		return domain.FileRecord{}, err
	}
	if !found {
		return domain.FileRecord{}, domain.ErrNotFound
	}
	h.cacheRecord(r, rec)
	return rec, nil
}
