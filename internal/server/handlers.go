package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/josephgoksu/taskbuddy/models"
	"github.com/josephgoksu/taskbuddy/types"
)

// handleListTasks returns the full collection in display order. Array
// position is the index used for toggle/delete; clients must re-fetch
// after every mutation.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.List()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, list)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	created, err := s.svc.Add(req.Title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	index, ok := s.taskIndex(w, r)
	if !ok {
		return
	}

	list, err := s.svc.List()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if index < 0 || index >= len(list) {
		writeAPIError(w, http.StatusNotFound, "not_found", "task not found")
		return
	}
	writeAPIJSON(w, http.StatusOK, list[index])
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	index, ok := s.taskIndex(w, r)
	if !ok {
		return
	}

	updated, err := s.svc.Toggle(index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	index, ok := s.taskIndex(w, r)
	if !ok {
		return
	}

	removed, err := s.svc.Delete(index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, removed)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, s.svc.Report())
}

// taskIndex parses the {id} path segment as a positional index.
func (s *Server) taskIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "task id must be a list position")
		return 0, false
	}
	return index, true
}

// writeError maps service errors onto API responses: validation failures
// are the client's problem, stale indices are not-found, anything else is a
// server error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidTitle):
		writeAPIError(w, http.StatusBadRequest, "invalid_title", err.Error())
	case errors.Is(err, models.ErrIndexOutOfRange):
		writeAPIError(w, http.StatusNotFound, "index_out_of_range", err.Error())
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", requestIDFrom(r.Context()), "error", err)
		writeAPIError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func writeAPIJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeAPIJSON(w, status, types.NewAPIError(code, message, nil))
}
