package render

import (
	"math"

	"liveboard/src/geom"
	"liveboard/src/overlay"
)

// RenderArrow turns an arrow spec with an allocated fan offset into
// concrete shaft and head geometry. The returned flag is the stacking
// bucket: true means the arrow draws above the pieces.
func RenderArrow(spec *overlay.ArrowSpec, flipped bool, squareSize, border float64) (Shaft, Head, bool) {
	// lane displacement shifts the whole arrow as a unit, applied in
	// board coordinates before the pixel transform
	dx, dy := overlay.LateralShift(spec.Offset, spec.TotalOffsets, spec.OffsetDirection)

	half := squareSize / 2
	fx, fy := geom.ToPixelF(float64(spec.Move.From.File)+dx, float64(spec.Move.From.Row)+dy, flipped, squareSize, border)
	tx, ty := geom.ToPixelF(float64(spec.Move.To.File)+dx, float64(spec.Move.To.Row)+dy, flipped, squareSize, border)
	fx, fy = fx+half, fy+half
	tx, ty = tx+half, ty+half

	ang := math.Atan2(ty-fy, tx-fx)
	ux, uy := math.Cos(ang), math.Sin(ang)

	// pull the shaft back so it does not poke through the head
	bx := tx - ux*spec.HeadLength
	by := ty - uy*spec.HeadLength

	sh := Shaft{
		FromX: fx, FromY: fy,
		ToX: bx, ToY: by,
		Width:      spec.Width,
		DashLength: spec.DashLength,
		DashSpace:  spec.DashSpace,
	}
	hd := Head{
		TipX:   tx,
		TipY:   ty,
		LeftX:  bx - uy*spec.HeadWidth/2,
		LeftY:  by + ux*spec.HeadWidth/2,
		RightX: bx + uy*spec.HeadWidth/2,
		RightY: by - ux*spec.HeadWidth/2,
	}
	return sh, hd, spec.RenderAfterPieces
}
