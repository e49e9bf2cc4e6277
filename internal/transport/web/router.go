package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/EgorLis/file-vault/internal/docs"
	"github.com/EgorLis/file-vault/internal/transport/web/mw"
	"github.com/EgorLis/file-vault/internal/transport/web/v1/files"
	"github.com/EgorLis/file-vault/internal/transport/web/v1/health"
)

func newRouter(hh *health.Handler, fh *files.Handler, maxUploadBytes int64, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /health", hh.Liveness)
	mux.HandleFunc("GET /readyz", hh.Readiness)

	// files
	// запас поверх лимита — на multipart-обвязку
	mux.HandleFunc("POST /files/upload", limitBody(maxUploadBytes+1<<20, fh.Upload))
	mux.HandleFunc("GET /files", fh.List)
	mux.HandleFunc("GET /files/{id}/metadata", fh.Metadata)
	mux.HandleFunc("GET /files/{id}/download", fh.Download)

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
