// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package refs

import "reflect"

// Marker distinguishes a fresh inline payload from a back-reference on
// the wire, per spec.md §3 and §4.F.
type Marker byte

const (
	// MarkerNewObject precedes an id followed by the object's inline
	// payload: this is the first time the writer has seen this identity.
	MarkerNewObject Marker = 0x01
	// MarkerBackReference precedes an id with no payload: the object was
	// already emitted earlier in this call.
	MarkerBackReference Marker = 0x02
)

// Tracker tracks object identity during a single serialize or
// deserialize call. It is created fresh per call by chunkcodec.Context
// and must never be reused across calls or shared across goroutines.
// Reference tracking coexists with string deduplication (chunkcodec's
// string table) by using a disjoint id space and a dedicated marker byte,
// per spec.md §4.F.
type Tracker struct {
	idsByPointer map[uintptr]uint32
	nextWriteID  uint32

	slots map[uint32]*slot
}

// slot holds the identity a decoder has committed to for one id. value
// is set as soon as the id's pointer is known — before its payload has
// even started decoding — so a cyclic back-reference to an object still
// under construction resolves to the exact same pointer the finished
// object will be returned through, not a copy. ready distinguishes
// "identity known" from "construction complete".
type slot struct {
	value  any
	ready  bool
	onFill []func(any)
}

// New returns a Tracker with empty write and read state.
func New() *Tracker {
	return &Tracker{
		idsByPointer: make(map[uintptr]uint32),
		slots:        make(map[uint32]*slot),
	}
}

// PointerIdentity extracts the identity chunkcodec tracks for a
// reference-tracked value. p must be a pointer, map, channel, function,
// or unsafe pointer — any Go kind reflect.Value.Pointer accepts.
// Value-typed fields (structs, scalars) have no identity of their own
// and must not be passed here; reference tracking is opt-in per codec
// and value types never use it (spec.md §4.F).
func PointerIdentity(p any) uintptr {
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.Pointer()
	default:
		panic("refs: value has no pointer identity: " + v.Kind().String())
	}
}

// CheckWrite looks up p's identity in the write-side table. On a miss it
// allocates the next id (starting at 1; 0 is reserved for "none") and
// records it before returning, so a self-referential payload encoded
// while the isNew payload is being written still resolves to the same
// id.
func (t *Tracker) CheckWrite(p any) (id uint32, isNew bool) {
	key := PointerIdentity(p)
	if existing, ok := t.idsByPointer[key]; ok {
		return existing, false
	}
	t.nextWriteID++
	id = t.nextWriteID
	t.idsByPointer[key] = id
	return id, true
}

// ReserveRead commits id's identity to value before its payload has been
// decoded. A cycle-aware codec calls this immediately after allocating
// the pointer it intends to return, so a nested back-reference to the
// same id — encountered while decoding that very payload — resolves to
// the identical pointer.
func (t *Tracker) ReserveRead(id uint32, value any) {
	if _, ok := t.slots[id]; !ok {
		t.slots[id] = &slot{value: value}
	}
}

// CompleteRead marks id's construction finished and runs any callbacks
// registered via OnFill while it was pending. The identity (and thus the
// value returned by GetRead) does not change; only the ready flag does.
func (t *Tracker) CompleteRead(id uint32) {
	s, ok := t.slots[id]
	if !ok {
		return
	}
	s.ready = true
	callbacks := s.onFill
	s.onFill = nil
	for _, cb := range callbacks {
		cb(s.value)
	}
}

// GetRead returns id's committed identity, if any — regardless of
// whether construction has finished. This is what makes cyclic
// self-reference correct: the pointer is stable from the moment
// ReserveRead runs.
func (t *Tracker) GetRead(id uint32) (any, bool) {
	s, ok := t.slots[id]
	if !ok {
		return nil, false
	}
	return s.value, true
}

// OnFill registers cb to run once id's construction is complete. If
// already complete, cb runs immediately. A no-op if id has no committed
// identity yet, which should not happen given the wire's invariant that
// a MarkerNewObject for an id always precedes any back-reference to it.
func (t *Tracker) OnFill(id uint32, cb func(any)) {
	s, ok := t.slots[id]
	if !ok {
		return
	}
	if s.ready {
		cb(s.value)
		return
	}
	s.onFill = append(s.onFill, cb)
}

// Unresolved returns the ids of every slot whose construction never
// completed. A non-empty result at the end of a deserialize call means
// the caller must fail with chunkcodec.KindUnresolvedReference.
func (t *Tracker) Unresolved() []uint32 {
	var ids []uint32
	for id, s := range t.slots {
		if !s.ready {
			ids = append(ids, id)
		}
	}
	return ids
}

// Promise is a fillable indirection a codec can hand out for an id
// before its construction completes, for callers that need a completion
// callback rather than (or in addition to) the stable pointer GetRead
// already provides. It stands in for the "handle/promise pattern"
// spec.md §9 recommends for languages without cycle-tolerant
// construction.
type Promise[T any] struct {
	tracker *Tracker
	id      uint32
}

// NewPromise returns a Promise bound to id in tracker's read-side state.
func NewPromise[T any](tracker *Tracker, id uint32) *Promise[T] {
	return &Promise[T]{tracker: tracker, id: id}
}

// Get returns the committed value and true, or the zero value and false
// if id has no committed identity yet.
func (p *Promise[T]) Get() (T, bool) {
	v, ok := p.tracker.GetRead(p.id)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// OnResolve registers cb to run with the value once its construction is
// complete.
func (p *Promise[T]) OnResolve(cb func(T)) {
	p.tracker.OnFill(p.id, func(v any) {
		cb(v.(T))
	})
}
