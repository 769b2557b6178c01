// Package dto holds the JSON shapes shared by the HTTP and MCP adapters and
// the CLI's structured output.
package dto

import (
	"github.com/aretw0/goalstack"
	"github.com/aretw0/goalstack/pkg/domain"
)

// OperatorSchema is the textual view of one row of the operator table.
type OperatorSchema struct {
	Name          string   `json:"name" yaml:"name" jsonschema_description:"Operator with numbered parameters, e.g. STACK(1,2)"`
	Preconditions []string `json:"preconditions" yaml:"preconditions"`
	Adds          []string `json:"adds" yaml:"adds"`
	Deletes       []string `json:"deletes" yaml:"deletes"`
}

// Operators renders the operator knowledge base.
func Operators() []OperatorSchema {
	schemas := domain.Schemas()
	out := make([]OperatorSchema, len(schemas))
	for i, s := range schemas {
		params := "(1)"
		if s.Kind.Arity() == 2 {
			params = "(1,2)"
		}
		out[i] = OperatorSchema{
			Name:          string(s.Kind) + params,
			Preconditions: templates(s.P),
			Adds:          templates(s.A),
			Deletes:       templates(s.D),
		}
	}
	return out
}

func templates(ts []domain.Template) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

// PlanResponse is returned for every solve, finished or not.
type PlanResponse struct {
	PlanID  string              `json:"plan_id" yaml:"plan_id" jsonschema_description:"Unique ID of this run"`
	Problem string              `json:"problem,omitempty" yaml:"problem,omitempty"`
	Done    bool                `json:"done" yaml:"done" jsonschema_description:"True when the goal stack emptied within the bound"`
	Steps   int                 `json:"steps" yaml:"steps"`
	Plan    []string            `json:"plan" yaml:"plan" jsonschema_description:"Committed operators in order"`
	Final   domain.Arrangement  `json:"final" yaml:"final"`
	Error   string              `json:"error,omitempty" yaml:"error,omitempty"`
	Trace   []domain.StepRecord `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// NewPlanResponse converts a facade result. runErr is reported in Error so
// callers can tell a bounded stop from success.
func NewPlanResponse(id, name string, res *goalstack.Result, runErr error) PlanResponse {
	resp := PlanResponse{
		PlanID:  id,
		Problem: name,
		Done:    res.Done,
		Steps:   res.Steps,
		Plan:    OperatorNames(res.Plan),
		Final:   res.Final,
	}
	if runErr != nil {
		resp.Error = runErr.Error()
	}
	return resp
}

// OperatorNames renders operators as strings; never nil.
func OperatorNames(ops []domain.Operator) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	return out
}

// DecodeRequest carries condition atoms in their textual form.
type DecodeRequest struct {
	Atoms []string `json:"atoms"`
}

// DecodeResponse is the arrangement rebuilt from a condition set.
type DecodeResponse struct {
	Arrangement domain.Arrangement `json:"arrangement"`
	Rendered    string             `json:"rendered"`
}

// ParseConditions parses every atom; the first failure is returned.
func ParseConditions(atoms []string) (domain.Conditions, error) {
	c := domain.NewConditions()
	for _, s := range atoms {
		a, err := domain.ParseAtom(s)
		if err != nil {
			return nil, err
		}
		c[a] = struct{}{}
	}
	return c, nil
}

// Decode parses atoms and rebuilds the arrangement they describe.
func Decode(atoms []string) (DecodeResponse, error) {
	c, err := ParseConditions(atoms)
	if err != nil {
		return DecodeResponse{}, err
	}
	a, err := domain.FromConditions(c)
	if err != nil {
		return DecodeResponse{}, err
	}
	return DecodeResponse{Arrangement: a, Rendered: a.String()}, nil
}
