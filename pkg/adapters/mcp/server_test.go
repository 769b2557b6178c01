package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/goalstack/internal/dto"
	"github.com/aretw0/goalstack/pkg/adapters/memory"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/observability"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlePlan(t *testing.T) {
	metrics := observability.NewMetrics(nil)
	s := NewServer(WithMetrics(metrics))

	resp, err := s.handlePlan(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"name":      "reverse",
		"start":     `{"table":[["C","B","A"]]}`,
		"goal":      `{"table":[["A","C"],["B"]]}`,
		"max_steps": float64(36),
		"trace":     true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.PlanID)
	assert.Equal(t, "reverse", resp.Problem)
	assert.True(t, resp.Done)
	assert.Equal(t, []string{"UNSTACK(A,B)", "PUTDOWN(A)", "UNSTACK(B,C)", "PUTDOWN(B)", "PICKUP(C)", "STACK(C,A)"}, resp.Plan)
	assert.Len(t, resp.Trace, resp.Steps)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Runs.WithLabelValues(observability.OutcomeComplete)))
}

func TestHandlePlan_Bounded(t *testing.T) {
	s := NewServer()

	resp, err := s.handlePlan(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"start":     `{"table":[["A","B","C"]]}`,
		"goal":      `{"table":[["B"],["A"],["C"]]}`,
		"max_steps": float64(5),
	})
	require.NoError(t, err)
	assert.False(t, resp.Done)
	assert.Equal(t, 5, resp.Steps)
	assert.Contains(t, resp.Error, "iteration limit exceeded")
}

func TestHandlePlan_Invalid(t *testing.T) {
	s := NewServer()
	ctx := context.Background()

	_, err := s.handlePlan(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"start": `not json`,
		"goal":  `{"table":[["A"]]}`,
	})
	assert.ErrorContains(t, err, "start must be a JSON arrangement")

	_, err = s.handlePlan(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"start": `{"table":[["A"]]}`,
		"goal":  `{"table":[["B"]]}`,
	})
	assert.True(t, problem.IsValidation(err))
	assert.ErrorIs(t, err, domain.ErrBlockSetMismatch)

	_, err = s.handlePlan(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"start": `{"table":[["A"]],"colour":"red"}`,
		"goal":  `{"table":[["A"]]}`,
	})
	assert.ErrorContains(t, err, "invalid problem")
}

func TestHandlePlanProblem(t *testing.T) {
	doc := &problem.Problem{
		Name:  "pair",
		Start: domain.NewArrangement("", []string{"A"}, []string{"B"}),
		Goal:  domain.NewArrangement("", []string{"B", "A"}),
	}
	store, err := memory.NewFromProblems(doc)
	require.NoError(t, err)
	s := NewServer(WithCatalog(store))

	resp, err := s.handlePlanProblem(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"name": "pair"})
	require.NoError(t, err)
	assert.Equal(t, []string{"PICKUP(A)", "STACK(A,B)"}, resp.Plan)
	assert.Empty(t, resp.Trace)

	_, err = s.handlePlanProblem(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"name": "missing"})
	assert.ErrorIs(t, err, domain.ErrProblemNotFound)

	contents, err := s.readProblems(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.JSONEq(t, `["pair"]`, contents[0].(mcp.TextResourceContents).Text)
}

func TestHandleDecode(t *testing.T) {
	s := NewServer()

	resp, err := s.handleDecode(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"atoms": `["ONTABLE(A)","ON(B,A)","CLEAR(B)","HOLDING(C)"]`,
	})
	require.NoError(t, err)
	assert.Equal(t, "[A B] arm=C", resp.Rendered)

	_, err = s.handleDecode(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"atoms": `"ON(A,B)"`})
	assert.ErrorContains(t, err, "JSON array")

	_, err = s.handleDecode(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"atoms": `["ON(A,B)"]`})
	assert.ErrorIs(t, err, domain.ErrMalformedConditions)
}

func TestReadOperators(t *testing.T) {
	s := NewServer()

	contents, err := s.readOperators(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, "goalstack://operators", text.URI)

	var ops []dto.OperatorSchema
	require.NoError(t, json.Unmarshal([]byte(text.Text), &ops))
	assert.Len(t, ops, 4)
}
