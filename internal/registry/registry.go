// Package registry owns the single shared "current model" reference. The
// snapshot pointer is swapped atomically, so any number of concurrent
// readers see either the whole old model or the whole new one, never a
// partially replaced state. Writers (bootstrap, retrain) serialize on a
// mutex and keep serving the previous snapshot until the swap.
package registry

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Debottam1234567890/Scam-Detector/internal/forest"
)

// State is the model lifecycle state. Predictions are served only in Ready
// and Retraining (the latter against the previous snapshot).
type State int32

const (
	Uninitialized State = iota
	Loading
	Ready
	Retraining
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Retraining:
		return "retraining"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is one immutable generation of the model.
type Snapshot struct {
	Forest    *forest.Forest
	TrainedAt time.Time
	// Degraded marks the single-example placeholder model fit when no
	// usable artifact or dataset was available. Health checks surface it
	// so a degraded process is distinguishable from a trained one.
	Degraded bool
	// Source records where this generation came from: "artifact",
	// "trained" or "fallback".
	Source string
}

var (
	// ErrNotReady is returned for transitions that require a served model.
	ErrNotReady = errors.New("registry: model not ready")
	// ErrBadTransition is returned for out-of-order lifecycle transitions.
	ErrBadTransition = errors.New("registry: invalid state transition")
)

// Registry is the explicit handle replacing a process-global model variable.
type Registry struct {
	mu      sync.Mutex // serializes writers
	state   atomic.Int32
	current atomic.Pointer[Snapshot]
}

func New() *Registry {
	r := &Registry{}
	r.state.Store(int32(Uninitialized))
	return r
}

// State reports the current lifecycle state.
func (r *Registry) State() State {
	return State(r.state.Load())
}

// Snapshot returns the model generation predictions should run against.
// ok is false outside Ready/Retraining, or before any snapshot was set.
func (r *Registry) Snapshot() (*Snapshot, bool) {
	s := r.State()
	if s != Ready && s != Retraining {
		return nil, false
	}
	snap := r.current.Load()
	return snap, snap != nil
}

// BeginLoading moves Uninitialized -> Loading.
func (r *Registry) BeginLoading() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.State() != Uninitialized {
		return ErrBadTransition
	}
	r.state.Store(int32(Loading))
	return nil
}

// BeginRetraining moves Ready -> Retraining. The previous snapshot keeps
// serving until SetReady swaps in the new one.
func (r *Registry) BeginRetraining() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.State() != Ready {
		return ErrNotReady
	}
	r.state.Store(int32(Retraining))
	return nil
}

// SetReady publishes a new snapshot and moves to Ready. Valid from Loading
// and Retraining.
func (r *Registry) SetReady(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.State()
	if s != Loading && s != Retraining {
		return ErrBadTransition
	}
	r.current.Store(snap)
	r.state.Store(int32(Ready))
	return nil
}

// Fail marks the lifecycle Failed. From Retraining the previous snapshot is
// kept in place but no longer served; callers decide whether to keep it by
// calling AbortRetraining instead.
func (r *Registry) Fail() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Store(int32(Failed))
}

// AbortRetraining returns from Retraining to Ready without swapping,
// keeping the previous snapshot in service after a failed retrain.
func (r *Registry) AbortRetraining() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.State() != Retraining {
		return ErrBadTransition
	}
	r.state.Store(int32(Ready))
	return nil
}
