package files

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EgorLis/file-vault/internal/domain"
	"github.com/EgorLis/file-vault/internal/transport/web/logx"
	"github.com/EgorLis/file-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/file-vault/internal/transport/web/v1"
)

// Upload godoc
// @Summary     Upload file
// @Description Принимает файл в multipart/form-data (поле file). Контент дедуплицируется
// @Description по SHA-256: повторная загрузка тех же байт возвращает существующую запись.
// @Tags        files
// @Accept      multipart/form-data
// @Produce     json
// @Param       file  formData  file  true  "Файл для загрузки"
// @Success     201  {object}  domain.APIEnvelope  "новый контент, duplicate=false"
// @Success     200  {object}  domain.APIEnvelope  "известный контент, duplicate=true"
// @Failure     400  {object}  domain.APIEnvelope  "нет файла или превышен лимит"
// @Failure     500  {object}  domain.APIEnvelope
// @Router      /files/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "files.upload"
	reqID := mw.RequestIDFromCtx(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse multipart", err)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			// срезано MaxBytesReader на роутере
			v1.WriteDomainError(w, r, domain.ErrPayloadTooLarge)
			return
		}
		v1.WriteDomainError(w, r, domain.ErrBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "missing file field", err)
		v1.WriteDomainError(w, r, domain.ErrBadRequest)
		return
	}
	defer file.Close()

	res, err := h.Ingestor.Ingest(r.Context(), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "ingest failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.cacheRecord(r, res.Record)

	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteEnvelope(w, r, status, domain.OkFile(status, res.Duplicate, res.Record))
}

// оставляем запись в кеше; ошибки кеша запрос не валят
func (h *Handler) cacheRecord(r *http.Request, rec domain.FileRecord) {
	if h.Cache == nil {
		return
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return
	}
	_ = h.Cache.Set(r.Context(), domain.CacheKeyFile(rec.ID), payload, cacheTTLSeconds)
}
