package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	before := NewConditions(OnTable("A"), Clear("A"), Holding("B"))

	tests := []struct {
		name     string
		old      Conditions
		new      Conditions
		wantDiff *SnapshotDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  NewConditions(OnTable("A"), ArmEmpty()),
			wantDiff: &SnapshotDiff{
				Added: []Atom{ArmEmpty(), OnTable("A")},
			},
		},
		{
			name:     "No Changes",
			old:      before,
			new:      before.Clone(),
			wantDiff: nil,
		},
		{
			name: "Operator Applied",
			old:  before,
			new:  Stack("B", "A").Apply(before),
			wantDiff: &SnapshotDiff{
				Added:   []Atom{ArmEmpty(), Clear("B"), On("B", "A")},
				Removed: []Atom{Clear("A"), Holding("B")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.wantDiff) {
				t.Errorf("Diff() = %+v, want %+v", got, tt.wantDiff)
			}
		})
	}
}

func TestDiff_JSON(t *testing.T) {
	diff := Diff(nil, NewConditions(On("A", "B")))
	data, err := json.Marshal(diff)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"added":["ON(A,B)"]`) {
		t.Errorf("unexpected JSON: %s", data)
	}
	if strings.Contains(string(data), "removed") {
		t.Errorf("empty removed should be omitted: %s", data)
	}
}
