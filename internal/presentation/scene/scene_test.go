package scene_test

import (
	"testing"

	"github.com/aretw0/goalstack/internal/presentation/scene"
	"github.com/aretw0/goalstack/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	got := scene.Render(domain.NewArrangement("", []string{"A", "B", "C"}, []string{"D"}))
	want := "ARM: -\n" +
		"| C |\n" +
		"| B |\n" +
		"| A | | D |\n" +
		"-----------\n"
	assert.Equal(t, want, got)
}

func TestRender_HeldBlockAndGaps(t *testing.T) {
	got := scene.Render(domain.NewArrangement("B", []string{"A"}, []string{"C", "D"}))
	want := "ARM: B\n" +
		"      | D |\n" +
		"| A | | C |\n" +
		"-----------\n"
	assert.Equal(t, want, got)
}

func TestRender_WideLabels(t *testing.T) {
	got := scene.Render(domain.NewArrangement("", []string{"red", "A"}))
	want := "ARM: -\n" +
		"| A   |\n" +
		"| red |\n" +
		"-------\n"
	assert.Equal(t, want, got)
}

func TestRender_OnlyArm(t *testing.T) {
	assert.Equal(t, "ARM: A\n", scene.Render(domain.Arrangement{Arm: "A"}))
}

func TestAgenda(t *testing.T) {
	assert.Equal(t, "(empty)\n", scene.Agenda(nil))

	entries := []domain.Entry{
		domain.OperatorEntry(domain.Stack("A", "B")),
		domain.AtomEntry(domain.Clear("B")),
	}
	assert.Equal(t, "2) CLEAR(B)\n1) STACK(A,B)\n", scene.Agenda(entries))
}

func TestPlan(t *testing.T) {
	assert.Equal(t, "(no operators)\n", scene.Plan(nil))
	assert.Equal(t, "1. PICKUP(A)\n2. STACK(A,B)\n",
		scene.Plan([]domain.Operator{domain.Pickup("A"), domain.Stack("A", "B")}))
}

func TestStep(t *testing.T) {
	op := domain.Pickup("A")
	rec := domain.StepRecord{
		Index:     8,
		Rule:      domain.RuleApply,
		Current:   domain.OperatorEntry(op),
		Committed: &op,
	}
	assert.Equal(t, "#8 apply PICKUP(A) -> committed PICKUP(A)", scene.Step(rec))

	rec = domain.StepRecord{
		Index:   3,
		Rule:    domain.RuleExpand,
		Current: domain.AtomEntry(domain.Clear("A")),
		Pushed:  []domain.Entry{domain.OperatorEntry(domain.Pickup("A"))},
		Done:    true,
	}
	assert.Equal(t, "#3 expand CLEAR(A) -> push [PICKUP(A)] (done)", scene.Step(rec))
}
