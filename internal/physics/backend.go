package physics

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// ShapeHandle identifies a native shape created by a Backend. Zero is invalid.
type ShapeHandle uint64

// Backend creates and updates native collision shapes.
// Colliders receive it explicitly at construction.
type Backend interface {
	CreateShape(shape CollisionShape) (ShapeHandle, error)
	UpdateShape(handle ShapeHandle, shape CollisionShape) error
	ReleaseShape(handle ShapeHandle)
}

// NullBackend accepts every request and simulates nothing.
// It is safe for concurrent use.
type NullBackend struct {
	next atomic.Uint64
}

// CreateShape returns a fresh handle.
func (b *NullBackend) CreateShape(CollisionShape) (ShapeHandle, error) {
	return ShapeHandle(b.next.Add(1)), nil
}

// UpdateShape does nothing.
func (b *NullBackend) UpdateShape(ShapeHandle, CollisionShape) error { return nil }

// ReleaseShape does nothing.
func (b *NullBackend) ReleaseShape(ShapeHandle) {}

// NewBackend returns the backend named by the configuration: "null" (or
// empty) and "recorder".
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", "null":
		return &NullBackend{}, nil
	case "recorder":
		return NewRecorder(), nil
	default:
		return nil, fmt.Errorf("unknown physics backend %q", name)
	}
}

// Op is the kind of backend request captured by a Recorder.
type Op uint8

const (
	OpCreate Op = iota
	OpUpdate
	OpRelease
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	default:
		return "release"
	}
}

// Call is one recorded backend request.
type Call struct {
	Op     Op
	Handle ShapeHandle
	Shape  CollisionShape
}

// Recorder is a Backend that records every request in order.
// Optional error hooks let callers simulate backend failures.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	next  ShapeHandle
	live  map[ShapeHandle]CollisionShape

	// CreateErr and UpdateErr, when set, are returned instead of succeeding.
	CreateErr error
	UpdateErr error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{live: make(map[ShapeHandle]CollisionShape)}
}

// CreateShape records the descriptor and returns a new handle.
func (r *Recorder) CreateShape(shape CollisionShape) (ShapeHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return 0, r.CreateErr
	}
	r.next++
	r.live[r.next] = shape
	r.calls = append(r.calls, Call{Op: OpCreate, Handle: r.next, Shape: shape})
	return r.next, nil
}

// UpdateShape records the new descriptor for handle.
func (r *Recorder) UpdateShape(handle ShapeHandle, shape CollisionShape) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.live[handle] = shape
	r.calls = append(r.calls, Call{Op: OpUpdate, Handle: handle, Shape: shape})
	return nil
}

// ReleaseShape records the release and forgets the handle.
func (r *Recorder) ReleaseShape(handle ShapeHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.live, handle)
	r.calls = append(r.calls, Call{Op: OpRelease, Handle: handle})
}

// Calls returns a copy of all recorded requests.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Shape returns the current descriptor for a live handle.
func (r *Recorder) Shape(handle ShapeHandle) (CollisionShape, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.live[handle]
	return s, ok
}

// Live returns the number of shapes not yet released.
func (r *Recorder) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Reset clears the recorded calls, keeping live shapes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
