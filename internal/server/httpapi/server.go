// Package httpapi exposes the application services over a cookie-based
// JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ansapra/ansapra/internal/logging"
	"github.com/ansapra/ansapra/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address        string
	users          *services.UserService
	readings       *services.ReadingService
	maxUploadBytes int64
	logger         logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, us *services.UserService,
	rs *services.ReadingService, maxUploadBytes int64) *HTTPServer {
	return &HTTPServer{
		address:        address,
		logger:         l.With("module", "http_server"),
		users:          us,
		readings:       rs,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *HTTPServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)

	mux.HandleFunc("GET /api/user/settings", s.requireUser(s.handleGetSettings))
	mux.HandleFunc("PUT /api/user/settings", s.requireUser(s.handleUpdateSettings))
	mux.HandleFunc("POST /api/upload", s.requireUser(s.handleUpload))
	mux.HandleFunc("GET /api/reading-history", s.requireUser(s.handleReadingHistory))
	mux.HandleFunc("POST /api/save-annotation", s.requireUser(s.handleSaveAnnotation))
	mux.HandleFunc("POST /api/delete-account", s.requireUser(s.handleDeleteAccount))

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("/", s.handleIndex)

	return s.recoverPanic(mux)
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "Shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
