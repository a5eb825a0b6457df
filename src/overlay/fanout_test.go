package overlay

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"liveboard/src/base"
)

func mv(uci string, t *testing.T) base.Move {
	t.Helper()
	m, err := base.MoveFromUCI(uci)
	if err != nil {
		t.Fatalf("move %q: %v", uci, err)
	}
	return m
}

func cand(uci string, ply int, t *testing.T) Candidate {
	return Candidate{Spec: &ArrowSpec{Move: mv(uci, t)}, Ply: ply}
}

func TestAllocateSharedLane(t *testing.T) {
	// three arrows from e2 with the same rounded direction: one lane,
	// offsets handed out in supply order
	cands := []Candidate{
		cand("e2e4", 0, t),
		cand("e2e4", 0, t),
		cand("e2e4", 0, t),
	}
	AllocateOffsets(cands)
	for i, c := range cands {
		if c.Spec.Offset != i {
			t.Errorf("cand %d: offset %d, want %d", i, c.Spec.Offset, i)
		}
		if c.Spec.TotalOffsets != 3 {
			t.Errorf("cand %d: total %d, want 3", i, c.Spec.TotalOffsets)
		}
		if c.Spec.OffsetDirection != 90 {
			t.Errorf("cand %d: direction %d, want 90", i, c.Spec.OffsetDirection)
		}
	}
}

func TestAllocateDistinctLanes(t *testing.T) {
	// e2e4 is 90 degrees, e2d4 rounds to 117: different lanes even
	// though the origin square matches
	cands := []Candidate{
		cand("e2e4", 0, t),
		cand("e2d4", 0, t),
	}
	AllocateOffsets(cands)
	for i, c := range cands {
		if c.Spec.Offset != 0 || c.Spec.TotalOffsets != 1 {
			t.Errorf("cand %d: %d of %d, want 0 of 1", i, c.Spec.Offset, c.Spec.TotalOffsets)
		}
	}
	if cands[0].Spec.OffsetDirection == cands[1].Spec.OffsetDirection {
		t.Error("lanes collapsed: same direction bucket")
	}
}

func TestAllocateDensePermutation(t *testing.T) {
	// mixed lanes: per lane, offsets must be exactly {0..N-1}
	cands := []Candidate{
		cand("e2e4", 0, t),
		cand("g1f3", 0, t),
		cand("e2e4", 0, t),
		cand("e2d4", 0, t),
		cand("e2e4", 1, t),
	}
	AllocateOffsets(cands)

	seen := map[int]map[int]bool{}
	for _, c := range cands {
		key := c.Spec.OffsetDirection
		if c.Spec.Move.From != (base.Square{File: 4, Row: 1}) {
			continue
		}
		if seen[key] == nil {
			seen[key] = map[int]bool{}
		}
		if seen[key][c.Spec.Offset] {
			t.Errorf("duplicate offset %d in lane %d", c.Spec.Offset, key)
		}
		seen[key][c.Spec.Offset] = true
	}
	for dir, offs := range seen {
		for i := 0; i < len(offs); i++ {
			if !offs[i] {
				t.Errorf("lane %d: offset %d missing from 0..%d", dir, i, len(offs)-1)
			}
		}
	}
}

func TestAllocateDeterministic(t *testing.T) {
	build := func() []Candidate {
		return []Candidate{
			cand("e2e4", 0, t),
			cand("e2e4", 0, t),
			cand("g1f3", 0, t),
			cand("e7e5", 1, t),
			cand("e7e5", 1, t),
		}
	}
	a, b := build(), build()
	AllocateOffsets(a)
	AllocateOffsets(b)
	for i := range a {
		if diff := cmp.Diff(a[i].Spec, b[i].Spec); diff != "" {
			t.Errorf("cand %d differs between runs (-first +second):\n%s", i, diff)
		}
	}
}

func TestAllocateDeepPliesNeverFanned(t *testing.T) {
	// ply >= 2 arrows share squares and directions with the laned ones
	// but always stand alone
	cands := []Candidate{
		cand("e2e4", 0, t),
		cand("e2e4", 0, t),
		cand("e2e4", 2, t),
		cand("e2e4", 5, t),
	}
	AllocateOffsets(cands)
	if cands[0].Spec.TotalOffsets != 2 || cands[1].Spec.TotalOffsets != 2 {
		t.Errorf("laned totals = %d,%d, want 2,2", cands[0].Spec.TotalOffsets, cands[1].Spec.TotalOffsets)
	}
	for _, c := range cands[2:] {
		if c.Spec.Offset != 0 || c.Spec.TotalOffsets != 1 {
			t.Errorf("deep ply: %d of %d, want 0 of 1", c.Spec.Offset, c.Spec.TotalOffsets)
		}
	}
}

func TestLateralShift(t *testing.T) {
	// single-member lane sits on the move line
	dx, dy := LateralShift(0, 1, 90)
	if math.Abs(dx) > 1e-9 || math.Abs(dy) > 1e-9 {
		t.Errorf("solo lane shift = (%v,%v), want (0,0)", dx, dy)
	}

	// three members spread symmetrically around zero
	d0x, d0y := LateralShift(0, 3, 90)
	d1x, d1y := LateralShift(1, 3, 90)
	d2x, d2y := LateralShift(2, 3, 90)
	if math.Abs(d1x) > 1e-9 || math.Abs(d1y) > 1e-9 {
		t.Errorf("middle of three shifted: (%v,%v)", d1x, d1y)
	}
	if math.Abs(d0x+d2x) > 1e-9 || math.Abs(d0y+d2y) > 1e-9 {
		t.Errorf("outer offsets not symmetric: (%v,%v) vs (%v,%v)", d0x, d0y, d2x, d2y)
	}

	// the displacement tracks sin/cos of the travel angle itself
	dx, dy = LateralShift(0, 2, 0)
	want := (1.0/3 - 0.5) * MaxFanSpread
	if math.Abs(dx) > 1e-9 || math.Abs(dy-want) > 1e-9 {
		t.Errorf("dir 0: (%v,%v), want (0,%v)", dx, dy, want)
	}
}
