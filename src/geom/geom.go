package geom

import (
	"math"

	"liveboard/src/base"
)

// Square <-> pixel mapping. Screen y grows downward, so the white
// perspective (flipped == false) puts Row 7 at the top of the board.
// All functions are pure; they run per square/arrow on every redraw.

// ToPixel returns the top-left pixel corner of a square.
func ToPixel(sq base.Square, flipped bool, squareSize, border float64) (float64, float64) {
	return ToPixelF(float64(sq.File), float64(sq.Row), flipped, squareSize, border)
}

// ToPixelCenter returns the center pixel of a square.
func ToPixelCenter(sq base.Square, flipped bool, squareSize, border float64) (float64, float64) {
	x, y := ToPixel(sq, flipped, squareSize, border)
	return x + squareSize/2, y + squareSize/2
}

// ToPixelF is the float variant used for laterally displaced arrow
// endpoints: file/row need not be integral.
func ToPixelF(file, row float64, flipped bool, squareSize, border float64) (float64, float64) {
	var x, y float64
	if flipped {
		x = (7-file)*squareSize + border
		y = row*squareSize + border
	} else {
		x = file*squareSize + border
		y = (7-row)*squareSize + border
	}
	return x, y
}

// Direction returns the travel angle of a move in whole degrees,
// measured in board coordinates (not screen pixels). Orientation is
// applied only at the pixel stage, so the value is stable across flips.
func Direction(from, to base.Square) int {
	dRow := float64(to.Row - from.Row)
	dFile := float64(to.File - from.File)
	return int(math.Round(math.Atan2(dRow, dFile) * 180 / math.Pi))
}
