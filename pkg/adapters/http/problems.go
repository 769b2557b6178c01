package http

import (
	"fmt"
	"net/http"

	"github.com/aretw0/goalstack/pkg/ports"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/go-chi/chi/v5"
)

// ListProblems handles the GET /v1/problems request.
func (s *Server) ListProblems(w http.ResponseWriter, r *http.Request) {
	names, err := s.Catalog.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"problems": names})
}

// GetProblem handles the GET /v1/problems/{name} request.
func (s *Server) GetProblem(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Catalog.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PutProblem handles the PUT /v1/problems/{name} request.
// The path name wins over an empty body name; a different body name is rejected.
func (s *Server) PutProblem(w http.ResponseWriter, r *http.Request) {
	store, ok := s.writable(w)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	var doc problem.Problem
	if !s.decode(w, r, &doc) {
		return
	}
	if doc.Name == "" {
		doc.Name = name
	}
	if doc.Name != name {
		s.writeError(w, fmt.Errorf("%w: body name %q does not match path %q", errBadRequest, doc.Name, name))
		return
	}
	if err := doc.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	unlock, err := s.lock(r, name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer unlock()

	if err := store.Save(r.Context(), &doc); err != nil {
		s.writeError(w, err)
		return
	}
	s.Logger.Info("problem saved", "problem", name)
	writeJSON(w, http.StatusOK, &doc)
}

// DeleteProblem handles the DELETE /v1/problems/{name} request.
func (s *Server) DeleteProblem(w http.ResponseWriter, r *http.Request) {
	store, ok := s.writable(w)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	unlock, err := s.lock(r, name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer unlock()

	if err := store.Delete(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}
	s.Logger.Info("problem deleted", "problem", name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writable(w http.ResponseWriter) (ports.ProblemStore, bool) {
	store, ok := s.Catalog.(ports.ProblemStore)
	if !ok {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "problem catalog is read-only"})
	}
	return store, ok
}

// lock takes the distributed lock for name when a locker is configured.
func (s *Server) lock(r *http.Request, name string) (func(), error) {
	if s.Locker == nil {
		return func() {}, nil
	}
	unlock, err := s.Locker.Lock(r.Context(), "problem:"+name, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock problem %q: %w", name, err)
	}
	return func() {
		if err := unlock(r.Context()); err != nil {
			s.Logger.Warn("failed to release lock", "problem", name, "error", err)
		}
	}, nil
}
