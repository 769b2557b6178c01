package domain

// SnapshotDiff represents the atoms that changed between two snapshots.
// It is designed to be serialized to JSON for partial updates on a client.
type SnapshotDiff struct {
	// Added contains atoms present only in the newer snapshot.
	Added []Atom `json:"added,omitempty"`

	// Removed contains atoms present only in the older snapshot.
	Removed []Atom `json:"removed,omitempty"`
}

// Diff calculates the difference between an older and a newer snapshot.
// If old is nil, every atom of newer counts as added (initial load).
// Returns nil when nothing changed.
func Diff(old, newer Conditions) *SnapshotDiff {
	diff := &SnapshotDiff{}

	for _, a := range newer.Sorted() {
		if !old.Has(a) {
			diff.Added = append(diff.Added, a)
		}
	}
	for _, a := range old.Sorted() {
		if !newer.Has(a) {
			diff.Removed = append(diff.Removed, a)
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d == nil || (len(d.Added) == 0 && len(d.Removed) == 0)
}
