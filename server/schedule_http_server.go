package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type ScheduleHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
}

func NewScheduleHttpServer(router *Router, muxRouter *mux.Router, addr string) *ScheduleHttpServer {
	return &ScheduleHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
	}
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *ScheduleHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[ScheduleHttpServer] Starting server on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[ScheduleHttpServer] Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("[ScheduleHttpServer] Server exiting")
	return nil
}
