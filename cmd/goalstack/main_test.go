package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/goalstack/internal/dto"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_Version(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "goalstack version ")
}

func TestCLI_SolveJSON(t *testing.T) {
	out, err := execute(t, "solve", "swap-top", "--format", "json", "--plain")
	require.NoError(t, err)

	var resp dto.PlanResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Done)
	assert.Equal(t, 26, resp.Steps)
	assert.Equal(t, []string{"UNSTACK(A,B)", "PUTDOWN(A)", "UNSTACK(B,C)", "PUTDOWN(B)", "PICKUP(C)", "STACK(C,A)"}, resp.Plan)
}

func TestCLI_Problems(t *testing.T) {
	out, err := execute(t, "problems", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "full-reversal\npair\nsplit-tower\nswap-top\n", out)
}

func TestCLI_UnknownFormat(t *testing.T) {
	_, err := execute(t, "operators", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}
