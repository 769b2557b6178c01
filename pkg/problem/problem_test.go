package problem_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/aretw0/goalstack/pkg/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProblem() *problem.Problem {
	return &problem.Problem{
		Name:  "split-tower",
		Start: domain.NewArrangement("", []string{"A", "B", "C"}),
		Goal:  domain.NewArrangement("", []string{"B"}, []string{"A"}, []string{"C"}),
	}
}

func TestLoad_YAML(t *testing.T) {
	p, err := problem.Load("testdata/split-tower.yaml")
	require.NoError(t, err)

	assert.Equal(t, "split-tower", p.Name, "name defaults to the file name")
	assert.Equal(t, "Split a three-block tower into singletons.", p.Description)
	assert.Equal(t, domain.NewArrangement("", []string{"A", "B", "C"}), p.Start)
	assert.Equal(t, domain.NewArrangement("", []string{"B"}, []string{"A"}, []string{"C"}), p.Goal)
	assert.Equal(t, 36, p.Bound())
	assert.NoError(t, p.Validate())
}

func TestLoad_JSON(t *testing.T) {
	p, err := problem.Load("testdata/two-stacks.json")
	require.NoError(t, err)

	assert.Equal(t, "two-stacks", p.Name)
	assert.Nil(t, p.MaxSteps)
	assert.Equal(t, problem.DefaultMaxSteps, p.Bound())
	assert.NoError(t, p.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := problem.Load("testdata/unknown-field.yaml")
	assert.ErrorContains(t, err, "invalid yaml")

	_, err = problem.Load("testdata/missing.yaml")
	assert.ErrorContains(t, err, "failed to read problem")

	_, err = problem.Load("testdata/problem.toml")
	assert.ErrorContains(t, err, "unsupported problem file")
}

func TestParse_RejectsUnknownJSONFields(t *testing.T) {
	_, err := problem.Parse([]byte(`{"start":{"table":[["A"]]},"goal":{"table":[["A"]]},"bogus":1}`), problem.FormatJSON)
	assert.ErrorContains(t, err, "invalid json")
}

func TestEncode_RoundTrip(t *testing.T) {
	p := validProblem().WithMaxSteps(12)

	for _, format := range []problem.Format{problem.FormatYAML, problem.FormatJSON} {
		data, err := problem.Encode(p, format)
		require.NoError(t, err)

		back, err := problem.Parse(data, format)
		require.NoError(t, err, string(data))
		assert.Equal(t, p, back, string(format))
	}
}

func TestDecode_Map(t *testing.T) {
	var args map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "decoded",
		"start": {"table": [["A"], ["B"]]},
		"goal": {"table": [["B", "A"]]},
		"max_steps": 20
	}`), &args))

	p, err := problem.Decode(args)
	require.NoError(t, err)

	assert.Equal(t, "decoded", p.Name)
	assert.Equal(t, domain.NewArrangement("", []string{"A"}, []string{"B"}), p.Start)
	assert.Equal(t, domain.NewArrangement("", []string{"B", "A"}), p.Goal)
	assert.Equal(t, 20, p.Bound())
}

func TestDecode_CommaSeparatedStacks(t *testing.T) {
	p, err := problem.Decode(map[string]any{
		"start": map[string]any{"table": []any{"A,B"}, "arm": "C"},
		"goal":  map[string]any{"table": []any{"C,B,A"}},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.NewArrangement("C", []string{"A", "B"}), p.Start)
	assert.Equal(t, domain.NewArrangement("", []string{"C", "B", "A"}), p.Goal)
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	_, err := problem.Decode(map[string]any{"start": map[string]any{}, "steps": 3})
	assert.ErrorContains(t, err, "invalid problem")
}

func TestValidate(t *testing.T) {
	t.Run("zero bound is allowed", func(t *testing.T) {
		p := validProblem().WithMaxSteps(0)
		assert.NoError(t, p.Validate())
		assert.Equal(t, 0, p.Bound())
	})

	t.Run("negative bound", func(t *testing.T) {
		err := validProblem().WithMaxSteps(-1).Validate()
		require.Error(t, err)
		assert.True(t, problem.IsValidation(err))

		fields := problem.FieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "max_steps", fields[0].Field)
		assert.Equal(t, "must be at least 0", fields[0].Reason)
	})

	t.Run("bound over the limit", func(t *testing.T) {
		err := validProblem().WithMaxSteps(problem.MaxStepsLimit + 1).Validate()
		fields := problem.FieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "max_steps", fields[0].Field)
	})

	t.Run("bad name", func(t *testing.T) {
		p := validProblem()
		p.Name = "../etc/passwd"
		fields := problem.FieldErrors(p.Validate())
		require.Len(t, fields, 1)
		assert.Equal(t, "name", fields[0].Field)
	})

	t.Run("domain errors are wrapped", func(t *testing.T) {
		p := validProblem()
		p.Goal = domain.NewArrangement("", []string{"A", "B"}, []string{"D"})

		err := p.Validate()
		assert.ErrorIs(t, err, domain.ErrBlockSetMismatch)
	})

	t.Run("all failures are reported", func(t *testing.T) {
		p := validProblem().WithMaxSteps(-5)
		p.Start = domain.NewArrangement("A", []string{"A"})
		p.Goal = domain.Arrangement{Table: [][]domain.Block{{}}}

		err := p.Validate()
		assert.ErrorIs(t, err, domain.ErrDuplicateBlock)
		assert.ErrorIs(t, err, domain.ErrInvalidShape)
		assert.Len(t, problem.FieldErrors(err), 3)
		assert.Contains(t, err.Error(), "3 validation errors")
	})
}

func TestClone(t *testing.T) {
	p := validProblem().WithMaxSteps(7)
	c := p.Clone()

	c.Start.Table[0][0] = "Z"
	*c.MaxSteps = 1

	assert.Equal(t, domain.Block("A"), p.Start.Table[0][0])
	assert.Equal(t, 7, p.Bound())
}
