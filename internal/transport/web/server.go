package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/file-vault/internal/config"
	"github.com/EgorLis/file-vault/internal/transport/web/v1/files"
	"github.com/EgorLis/file-vault/internal/transport/web/v1/health"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, deps Deps) *Server {
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	filesLog := log.New(logger.Writer(), logger.Prefix()+"[files] ", logger.Flags())

	healthHandler := &health.Handler{
		Log:     healthLog,
		DB:      deps.Index,
		Cache:   deps.Cache,
		Storage: deps.Store,
	}
	filesHandler := &files.Handler{
		Log:      filesLog,
		Ingestor: deps.Ingestor,
		Index:    deps.Index,
		Store:    deps.Store,
		Cache:    deps.Cache,
	}

	srv := &http.Server{
		Addr:    cfg.AppPort,
		Handler: newRouter(healthHandler, filesHandler, cfg.UploadMaxBytes, logger),
		// загрузки больших файлов живут дольше обычного запроса
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
