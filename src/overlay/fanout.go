package overlay

import (
	"math"

	"liveboard/src/base"
	"liveboard/src/geom"
)

// Arrows that leave the same square in the same rounded direction would
// draw on top of each other. They are grouped into lanes and fanned
// apart laterally; only ply 0 and ply 1 arrows take part, deeper arrows
// always stand alone.

// MaxFanSpread is the total lateral spread of a lane, in square units.
const MaxFanSpread = 0.8

// Candidate ties an arrow to its ply within the originating variation.
// Callers supply candidates in variation-rank order, ply 0 before
// ply 1, and keep that order stable across updates so a move keeps its
// offset and the fan does not jitter.
type Candidate struct {
	Spec *ArrowSpec
	Ply  int
}

type laneKey struct {
	origin base.Square
	dir    int
}

// AllocateOffsets assigns Offset, TotalOffsets and OffsetDirection on
// every candidate's spec. Two passes: first count each lane, then hand
// out running indices in supply order, giving a dense 0..N-1 fan.
func AllocateOffsets(cands []Candidate) {
	totals := make(map[laneKey]int)
	for _, c := range cands {
		if c.Ply >= 2 {
			continue
		}
		totals[laneOf(c)]++
	}

	running := make(map[laneKey]int)
	for _, c := range cands {
		c.Spec.OffsetDirection = geom.Direction(c.Spec.Move.From, c.Spec.Move.To)
		if c.Ply >= 2 {
			c.Spec.Offset = 0
			c.Spec.TotalOffsets = 1
			continue
		}
		k := laneOf(c)
		c.Spec.Offset = running[k]
		c.Spec.TotalOffsets = totals[k]
		running[k]++
	}
}

func laneOf(c Candidate) laneKey {
	return laneKey{
		origin: c.Spec.Move.From,
		dir:    geom.Direction(c.Spec.Move.From, c.Spec.Move.To),
	}
}

// LateralShift converts an allocated offset into a board-unit
// displacement applied to both endpoints of the arrow. The sin/cos of
// the lane's own travel angle is used here, not that angle rotated a
// quarter turn, so the shift is not strictly perpendicular to the
// shaft; the fan this produces is the rendering this feed always had.
func LateralShift(offset, total, dirDegrees int) (dx, dy float64) {
	t := (float64(offset+1)/float64(total+1) - 0.5) * MaxFanSpread
	rad := float64(dirDegrees) * math.Pi / 180
	return math.Sin(rad) * t, math.Cos(rad) * t
}
