// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package arena

import (
	"testing"
)

func TestAllocForZeroesAndReturnsDistinctPointers(t *testing.T) {
	a := New("t", 64, Hooks{})

	type pair struct{ x, y int64 }
	p1 := AllocFor[pair](a)
	p2 := AllocFor[pair](a)

	if p1 == p2 {
		t.Fatalf("expected distinct pointers, got the same address twice")
	}
	if p1.x != 0 || p1.y != 0 {
		t.Fatalf("expected zeroed memory, got %+v", p1)
	}
}

func TestAllocGrowsWithoutInvalidatingPriorPointers(t *testing.T) {
	a := New("t", 16, Hooks{})

	type block struct{ data [8]byte }
	first := AllocFor[block](a)
	first.data[0] = 0xAB

	for i := 0; i < 100; i++ {
		AllocFor[block](a)
	}

	if first.data[0] != 0xAB {
		t.Fatalf("growth invalidated a previously issued pointer")
	}
}

func TestResetReclaimsSpaceForReuse(t *testing.T) {
	var grows, resets int
	a := New("t", 64, Hooks{
		OnGrow:  func(string, int, int) { grows++ },
		OnReset: func(string, int) { resets++ },
	})

	for i := 0; i < 4; i++ {
		AllocFor[int64](a)
	}
	usedBefore := a.Used()
	if usedBefore == 0 {
		t.Fatalf("expected nonzero usage before reset")
	}

	a.Reset()
	if a.Used() != 0 {
		t.Fatalf("Used() = %d after Reset, want 0", a.Used())
	}
	if resets != 1 {
		t.Fatalf("OnReset hook fired %d times, want 1", resets)
	}

	capBefore := a.Cap()
	AllocFor[int64](a)
	if a.Cap() != capBefore {
		t.Fatalf("Cap() grew after reset+single small alloc, want chunk reuse")
	}
}

func TestAllocBytesReturnsRequestedLength(t *testing.T) {
	a := New("t", 64, Hooks{})
	b := a.AllocBytes(10)
	if len(b) != 10 {
		t.Fatalf("AllocBytes(10) returned slice of len %d", len(b))
	}
}

func TestAllocFatalOnOverflow(t *testing.T) {
	origFatal := OnFatal
	defer func() { OnFatal = origFatal }()

	var firedWith string
	OnFatal = func(msg string) { firedWith = msg }

	a := New("t", 16, Hooks{})
	a.Alloc(MaxArenaSize + 1)

	if firedWith == "" {
		t.Fatalf("expected OnFatal to fire on an allocation exceeding MaxArenaSize")
	}
}

func TestAlignment(t *testing.T) {
	a := New("t", 64, Hooks{})
	p := a.Alloc(3)
	if uintptr(p)%align != 0 {
		t.Fatalf("Alloc(3) returned unaligned pointer")
	}
}
