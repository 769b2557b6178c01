package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/aretw0/goalstack"
	"github.com/aretw0/goalstack/internal/dto"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/go-chi/chi/v5"
)

var errSessionNotFound = errors.New("session not found")

// sessionRegistry keeps prepared planners that clients advance one step at a time.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	id      string
	name    string
	planner *goalstack.Planner

	// mu orders step requests so each response sees its own step's diff.
	mu sync.Mutex
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

func (r *sessionRegistry) put(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
}

func (r *sessionRegistry) get(id string) (*session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errSessionNotFound, id)
	}
	return s, nil
}

func (r *sessionRegistry) delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// SessionView is the observable state of a stepwise run.
type SessionView struct {
	ID       string             `json:"id"`
	Problem  string             `json:"problem,omitempty"`
	Steps    int                `json:"steps"`
	MaxSteps int                `json:"max_steps"`
	Done     bool               `json:"done"`
	Agenda   []domain.Entry     `json:"agenda"`
	History  []string           `json:"history"`
	Current  domain.Arrangement `json:"current"`
}

// StepResponse pairs a step record with the session after it.
type StepResponse struct {
	Record  domain.StepRecord    `json:"record"`
	Diff    *domain.SnapshotDiff `json:"diff,omitempty"`
	Session SessionView          `json:"session"`
}

func (s *session) view() (SessionView, error) {
	current, err := s.planner.CurrentArrangement()
	if err != nil {
		return SessionView{}, err
	}
	agenda := s.planner.GoalStack()
	if agenda == nil {
		agenda = []domain.Entry{}
	}
	return SessionView{
		ID:       s.id,
		Problem:  s.name,
		Steps:    s.planner.Steps(),
		MaxSteps: s.planner.MaxSteps(),
		Done:     s.planner.Done(),
		Agenda:   agenda,
		History:  dto.OperatorNames(s.planner.History()),
		Current:  current,
	}, nil
}

// CreateSession handles the POST /v1/sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var doc problem.Problem
	if !s.decode(w, r, &doc) {
		return
	}

	planner, err := goalstack.FromProblem(&doc,
		goalstack.WithLifecycleHooks(s.hooks()),
		goalstack.WithLogger(s.Logger),
	)
	if err != nil {
		s.writeError(w, err)
		return
	}
	planner.Prepare()

	sess := &session{id: s.newID(), name: doc.Name, planner: planner}
	s.sessions.put(sess)
	s.Logger.Info("session created", "session_id", sess.id, "problem", doc.Name)

	view, err := sess.view()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GetSession handles the GET /v1/sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	view, err := sess.view()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DeleteSession handles the DELETE /v1/sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.delete(id) {
		s.writeError(w, fmt.Errorf("%w: %s", errSessionNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StepSession handles the POST /v1/sessions/{id}/step request.
// Once max_steps steps were taken without finishing it answers 409.
func (s *Server) StepSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	p := sess.planner
	before := len(p.History())
	rec, err := p.StepBounded(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrIterationLimitExceeded) {
			s.observe(err)
		}
		s.writeError(w, err)
		return
	}
	if rec.Done {
		s.observe(nil)
	}

	resp := StepResponse{Record: rec}
	if rec.Committed != nil {
		prev, _ := p.Snapshot(before)
		next, _ := p.Snapshot(before + 1)
		resp.Diff = domain.Diff(prev, next)
	}
	if resp.Session, err = sess.view(); err != nil {
		s.writeError(w, err)
		return
	}

	if payload, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(sess.id, string(payload))
	}
	writeJSON(w, http.StatusOK, resp)
}
