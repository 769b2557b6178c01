package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/goalstack"
	"github.com/aretw0/goalstack/internal/dto"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/go-chi/chi/v5"
)

// PlanRequest is a problem document plus run options.
type PlanRequest struct {
	problem.Problem

	// Trace asks for every step record in the response.
	Trace bool `json:"trace,omitempty"`
}

// CreatePlan handles the POST /v1/plans request.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var body PlanRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.respondPlan(w, r.Context(), &body.Problem, body.Trace)
}

// PlanProblem handles the POST /v1/problems/{name}/plan request.
// The optional query parameter trace=true adds step records.
func (s *Server) PlanProblem(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Catalog.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	trace, _ := strconv.ParseBool(r.URL.Query().Get("trace"))
	s.respondPlan(w, r.Context(), doc, trace)
}

// respondPlan answers 200 for finished and bounded runs alike; the response's
// done and error fields tell them apart.
func (s *Server) respondPlan(w http.ResponseWriter, ctx context.Context, doc *problem.Problem, trace bool) {
	resp, err := s.solve(ctx, doc, trace)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) solve(ctx context.Context, doc *problem.Problem, trace bool) (dto.PlanResponse, error) {
	hooks := s.hooks()

	var (
		mu      sync.Mutex
		records []domain.StepRecord
	)
	if trace {
		hooks = hooks.Merge(domain.LifecycleHooks{
			OnStep: func(_ context.Context, e *domain.StepEvent) {
				mu.Lock()
				records = append(records, e.Record)
				mu.Unlock()
			},
		})
	}

	planner, err := goalstack.FromProblem(doc,
		goalstack.WithLifecycleHooks(hooks),
		goalstack.WithLogger(s.Logger),
	)
	if err != nil {
		s.observe(err)
		return dto.PlanResponse{}, err
	}

	res, runErr := planner.Solve(ctx)
	s.observe(runErr)
	if runErr != nil && !errors.Is(runErr, domain.ErrIterationLimitExceeded) {
		return dto.PlanResponse{}, runErr
	}

	id := s.newID()
	s.Logger.Info("plan solved", "plan_id", id, "problem", doc.Name, "done", res.Done, "operators", len(res.Plan))

	resp := dto.NewPlanResponse(id, doc.Name, res, runErr)
	resp.Trace = records
	return resp, nil
}

func (s *Server) hooks() domain.LifecycleHooks {
	if s.Metrics == nil {
		return domain.LifecycleHooks{}
	}
	return s.Metrics.Hooks()
}

func (s *Server) observe(err error) {
	if s.Metrics != nil {
		s.Metrics.ObserveRun(err)
	}
}
