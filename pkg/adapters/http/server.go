package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/goalstack"
	"github.com/aretw0/goalstack/internal/dto"
	"github.com/aretw0/goalstack/pkg/adapters/memory"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/observability"
	"github.com/aretw0/goalstack/pkg/ports"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps request bodies; problems are small documents.
const maxBodyBytes = 1 << 20

// Server exposes the planner, the problem catalog and stepwise sessions over JSON.
type Server struct {
	Catalog  ports.ProblemSource
	Locker   ports.DistributedLocker
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
	Streams  *StreamManager

	sessions *sessionRegistry
	newID    func() string
	lockTTL  time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithCatalog sets the problem catalog. A catalog that also implements
// ports.ProblemStore enables PUT and DELETE.
func WithCatalog(src ports.ProblemSource) Option {
	return func(s *Server) { s.Catalog = src }
}

// WithLocker serialises catalog writes to the same problem across replicas.
func WithLocker(l ports.DistributedLocker) Option {
	return func(s *Server) { s.Locker = l }
}

// WithMetrics feeds planner hooks into m and serves g on /metrics.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Metrics = m
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// WithIDGenerator replaces uuid.NewString for plan and session IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) { s.newID = fn }
}

// NewServer builds a server with an in-memory catalog unless one is given.
func NewServer(opts ...Option) *Server {
	s := &Server{
		Streams:  NewStreamManager(),
		sessions: newSessionRegistry(),
		newID:    uuid.NewString,
		lockTTL:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Catalog == nil {
		s.Catalog = memory.NewStore()
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s.Streams.logger = s.Logger
	return s
}

// NewHandler creates a new HTTP handler for the planner.
func NewHandler(opts ...Option) http.Handler {
	return NewServer(opts...).Routes()
}

// Routes mounts every endpoint on a chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/v1/info", s.GetInfo)
	r.Get("/v1/operators", s.GetOperators)
	r.Post("/v1/conditions/decode", s.DecodeConditions)
	r.Post("/v1/plans", s.CreatePlan)

	r.Route("/v1/problems", func(r chi.Router) {
		r.Get("/", s.ListProblems)
		r.Get("/{name}", s.GetProblem)
		r.Put("/{name}", s.PutProblem)
		r.Delete("/{name}", s.DeleteProblem)
		r.Post("/{name}/plan", s.PlanProblem)
	})

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/{id}", s.GetSession)
		r.Delete("/{id}", s.DeleteSession)
		r.Post("/{id}/step", s.StepSession)
		r.Get("/{id}/events", s.SubscribeEvents)
	})

	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /v1/info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "goalstack-http",
		"version": strings.TrimSpace(goalstack.Version),
	})
}

// GetOperators handles the GET /v1/operators request.
func (s *Server) GetOperators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.Operators())
}

// DecodeConditions handles the POST /v1/conditions/decode request.
func (s *Server) DecodeConditions(w http.ResponseWriter, r *http.Request) {
	var body dto.DecodeRequest
	if !s.decode(w, r, &body) {
		return
	}
	resp, err := dto.Decode(body.Atoms)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// -- Helpers --

type errorBody struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// errBadRequest marks failures caused by the request itself rather than its content.
var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProblemNotFound), errors.Is(err, errSessionNotFound):
		return http.StatusNotFound
	case problem.IsValidation(err),
		errors.Is(err, domain.ErrInvalidShape),
		errors.Is(err, domain.ErrDuplicateBlock),
		errors.Is(err, domain.ErrBlockSetMismatch),
		errors.Is(err, domain.ErrUnknownPredicate),
		errors.Is(err, domain.ErrUnknownOperator),
		errors.Is(err, domain.ErrMalformedAtom),
		errors.Is(err, domain.ErrMalformedConditions):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptyStack), errors.Is(err, domain.ErrIterationLimitExceeded):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	} else {
		s.Logger.Debug("request rejected", "status", status, "error", err)
	}

	body := errorBody{Error: err.Error()}
	for _, fe := range problem.FieldErrors(err) {
		body.Fields = append(body.Fields, fieldError{Field: fe.Field, Reason: fe.Reason})
	}
	writeJSON(w, status, body)
}

// decode reads a JSON body, rejecting unknown fields. It writes the 400 itself.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
