package weavetest

import "testing"

// Snapshotter is implemented by state holders that can take a snapshot of
// their state and restore it later.
type Snapshotter interface {
	// Snapshot returns an identifier of the current state.
	Snapshot() int
	// RevertTo restores the state identified by given snapshot. All
	// snapshots taken after it become invalid.
	RevertTo(id int) error
}

// Reverter restores the state of a Snapshotter to the moment it was created.
// It is used to isolate test cases that share one application instance.
//
//    r := weavetest.NewReverter(app)
//    defer r.Revert(t)
type Reverter struct {
	s  Snapshotter
	id int
}

// NewReverter takes a snapshot of the current state.
func NewReverter(s Snapshotter) *Reverter {
	return &Reverter{s: s, id: s.Snapshot()}
}

// Revert restores the state saved when this reverter was created and takes
// a new snapshot of it, so that the reverter can be used again. It fails the
// test if the state cannot be restored.
func (r *Reverter) Revert(t testing.TB) {
	t.Helper()
	if err := r.s.RevertTo(r.id); err != nil {
		t.Fatalf("cannot revert to snapshot %d: %s", r.id, err)
	}
	r.id = r.s.Snapshot()
}

// Run executes fn within a snapshot and reverts the state afterwards.
func (r *Reverter) Run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		inner := NewReverter(r.s)
		defer inner.Revert(t)
		fn(t)
	})
}
