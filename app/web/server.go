package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nuclight.org/content-planner-bot/pkg/logger"
)

// Server answers the hosting platform's uptime probe. Nothing else lives
// here, the bot has no other inbound HTTP surface.
type Server struct {
	// Log is a logger
	Log logger.Logger

	// Port is the listen port
	Port int

	srv *http.Server
}

func (s *Server) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Bot is alive!"))
	})

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Port),
		Handler: mux,
	}

	go func() {
		s.Log.Info("liveness endpoint listening", "port", s.Port)

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Log.Error("liveness server", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = s.srv.Shutdown(shutdownCtx)
	}()
}
