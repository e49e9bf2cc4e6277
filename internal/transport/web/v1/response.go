package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EgorLis/file-vault/internal/domain"
	"github.com/EgorLis/file-vault/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус и публичный текст для конверта.
// Внутренние детали ошибок наружу не выходят — только в логи.
func MapDomainError(err error) (int, domain.APIEnvelope) {
	switch {
	case errors.Is(err, domain.ErrPayloadTooLarge):
		return http.StatusBadRequest, domain.Fail(http.StatusBadRequest, "File too large")
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, domain.Fail(http.StatusBadRequest, "No file uploaded")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.Fail(http.StatusNotFound, "File not found")
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusInternalServerError, domain.Fail(http.StatusInternalServerError, "Internal Server Error")
	case errors.Is(err, domain.ErrIndexUnavailable):
		return http.StatusInternalServerError, domain.Fail(http.StatusInternalServerError, "Internal Server Error")
	default:
		// Таймауты/отмены — как 500
		return http.StatusInternalServerError, domain.Fail(http.StatusInternalServerError, "Internal Server Error")
	}
}

// WriteEnvelope пишет конверт; для HEAD — без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.APIEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}
