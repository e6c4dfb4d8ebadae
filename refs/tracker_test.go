// Copyright 2026 The Chunkcodec Authors
// SPDX-License-Identifier: Apache-2.0

package refs

import "testing"

func TestCheckWriteAssignsIdsInFirstAppearanceOrder(t *testing.T) {
	tracker := New()

	a := &struct{ X int }{X: 1}
	b := &struct{ X int }{X: 2}

	id, isNew := tracker.CheckWrite(a)
	if id != 1 || !isNew {
		t.Fatalf("first CheckWrite(a) = (%d, %v), want (1, true)", id, isNew)
	}

	id, isNew = tracker.CheckWrite(b)
	if id != 2 || !isNew {
		t.Fatalf("first CheckWrite(b) = (%d, %v), want (2, true)", id, isNew)
	}

	id, isNew = tracker.CheckWrite(a)
	if id != 1 || isNew {
		t.Fatalf("second CheckWrite(a) = (%d, %v), want (1, false)", id, isNew)
	}
}

func TestReadSideCycleResolution(t *testing.T) {
	tracker := New()

	v := new(int)
	tracker.ReserveRead(1, v)

	resolved := false
	promise := NewPromise[*int](tracker, 1)
	promise.OnResolve(func(got *int) {
		resolved = true
		if *got != 42 {
			t.Fatalf("resolved value = %d, want 42", *got)
		}
	})

	// The pointer identity is available immediately, even before
	// construction completes — this is what lets a cyclic
	// self-reference resolve to the exact same pointer.
	got, ok := promise.Get()
	if !ok || got != v {
		t.Fatalf("Get() before completion = (%v, %v), want (%v, true)", got, ok, v)
	}

	*v = 42
	tracker.CompleteRead(1)

	if !resolved {
		t.Fatal("OnResolve callback never ran")
	}
}

func TestUnresolvedReportsIncompleteSlots(t *testing.T) {
	tracker := New()
	tracker.ReserveRead(1, new(int))
	tracker.ReserveRead(2, new(int))
	tracker.CompleteRead(1)

	unresolved := tracker.Unresolved()
	if len(unresolved) != 1 || unresolved[0] != 2 {
		t.Fatalf("Unresolved() = %v, want [2]", unresolved)
	}
}
