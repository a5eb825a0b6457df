package render

import "liveboard/src/base"

// Surface is the abstract 2D drawing target the board renders onto.
// Coordinates are pixels, origin top-left. Style tags are resolved by
// the implementation (raster color, SVG class, ...).
type Surface interface {
	// FillSquare fills one board cell given its top-left corner.
	FillSquare(x, y, size float64, tag string)
	// StrokeSquare strokes a cell border pulled in by inset.
	StrokeSquare(x, y, size, inset, width float64, tag string)
	// DrawPiece places the sprite for a piece symbol into a cell.
	DrawPiece(p base.Piece, x, y, size float64)
	// DrawArrow draws a shaft plus head as one silhouette.
	DrawArrow(sh Shaft, hd Head, tag string, outlineOnly bool)
	// FillRect and Text serve the clock/player/score widgets.
	FillRect(x, y, w, h float64, tag string)
	Text(s string, x, y float64, tag string)
}

// Shaft is a variable-width line between two pixel points, optionally
// dashed along its length.
type Shaft struct {
	FromX, FromY float64
	ToX, ToY     float64
	Width        float64
	DashLength   float64 // 0 = solid
	DashSpace    float64
}

// Head is the triangular cap at the arrow tip.
type Head struct {
	TipX, TipY     float64
	LeftX, LeftY   float64
	RightX, RightY float64
}
