// Package server exposes the task-list operations over a small JSON API.
//
// Tasks are addressed by their position in the list. The API is
// single-user: concurrent writers can race on the underlying file, and the
// last successful write wins.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/josephgoksu/taskbuddy/internal/task"
)

type Server struct {
	svc     *task.Service
	port    int
	logger  *slog.Logger
	server  *http.Server
	watcher *fileWatcher
}

// New builds a Server around the task service. taskFile is watched for
// external edits while serving; pass an empty string to disable the
// watcher.
func New(svc *task.Service, taskFile string, port int, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		svc:    svc,
		port:   port,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleAddTask)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.handleToggleTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("GET /api/report", s.handleReport)
	mux.HandleFunc("OPTIONS /api/", s.handleCORS)

	handler := requestIDMiddleware(corsMiddleware(s.loggingMiddleware(mux)))

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	if taskFile != "" {
		watcher, err := newFileWatcher(taskFile, logger)
		if err != nil {
			return nil, fmt.Errorf("watch task file: %w", err)
		}
		s.watcher = watcher
	}

	return s, nil
}

// Handler returns the configured HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	if s.watcher != nil {
		s.watcher.start()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()

		s.logger.Info("API server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.stop()
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleCORS(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
