package svgsurface

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"liveboard/src/base"
	"liveboard/src/render"
)

var defaultStyles = map[string]string{
	"light":              "#eee2c8",
	"dark":               "#8ca26c",
	render.TagLastMove:   "#f2d26a",
	render.TagArrowBest:  "#15781b",
	render.TagArrowAlt:   "#15781b",
	render.TagArrowReply: "#3a5fcd",
	render.TagArrowDeep:  "#666666",
	"selected":           "#2288cc",
	"check":              "#cc3322",
	"panel":              "#202020",
	"panel-active":       "#2a3a4a",
	"panel-text":         "#eeeeee",
	"wdl-win":            "#f0f0f0",
	"wdl-draw":           "#808080",
	"wdl-loss":           "#303030",
}

var tagOpacity = map[string]string{
	render.TagArrowBest:  "0.8",
	render.TagArrowAlt:   "0.45",
	render.TagArrowReply: "0.55",
	render.TagArrowDeep:  "0.55",
}

// Surface emits board primitives as an SVG document. Start/Close wrap a
// full redraw.
type Surface struct {
	canvas     *svg.SVG
	squareSize float64
}

func NewSurface(w io.Writer, widthPx, heightPx int, squareSize float64) *Surface {
	canvas := svg.New(w)
	canvas.Start(widthPx, heightPx)
	canvas.Rect(0, 0, widthPx, heightPx, "fill:#181818")
	return &Surface{canvas: canvas, squareSize: squareSize}
}

// Close finishes the document. Nothing may draw after it.
func (s *Surface) Close() {
	s.canvas.End()
}

func fill(tag string) string {
	c, ok := defaultStyles[tag]
	if !ok {
		c = "#ff00ff"
	}
	style := "fill:" + c
	if op, ok := tagOpacity[tag]; ok {
		style += ";fill-opacity:" + op
	}
	return style
}

func stroke(tag string, width float64) string {
	c, ok := defaultStyles[tag]
	if !ok {
		c = "#ff00ff"
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", c, width)
	if op, ok := tagOpacity[tag]; ok {
		style += ";stroke-opacity:" + op
	}
	return style
}

// ---- render.Surface ----

func (s *Surface) FillSquare(x, y, size float64, tag string) {
	s.canvas.Rect(int(x), int(y), int(size), int(size), fill(tag))
}

func (s *Surface) StrokeSquare(x, y, size, inset, width float64, tag string) {
	s.canvas.Rect(int(x+inset), int(y+inset), int(size-inset*2), int(size-inset*2), stroke(tag, width))
}

func (s *Surface) DrawPiece(p base.Piece, x, y, size float64) {
	cx, cy := int(x+size/2), int(y+size/2)
	disc, letter := "#fafafa", "#202020"
	if base.PieceIsBlack(p) {
		disc, letter = "#1c1c1c", "#ececec"
	}
	s.canvas.Circle(cx, cy, int(size*0.38), "fill:"+disc+";stroke:#505050;stroke-width:1.5")

	glyph := base.ConvertRuneFromPiece(p)
	if base.PieceIsBlack(p) {
		glyph = glyph - 'a' + 'A'
	}
	style := fmt.Sprintf("fill:%s;font-size:%.0fpx;font-family:sans-serif;text-anchor:middle;dominant-baseline:central", letter, size*0.52)
	s.canvas.Text(cx, cy, string(glyph), style)
}

func (s *Surface) DrawArrow(sh render.Shaft, hd render.Head, tag string, outlineOnly bool) {
	shaft := stroke(tag, sh.Width) + ";stroke-linecap:round"
	if sh.DashLength > 0 {
		shaft += fmt.Sprintf(";stroke-dasharray:%.1f %.1f", sh.DashLength, sh.DashSpace)
	}
	s.canvas.Line(int(sh.FromX), int(sh.FromY), int(sh.ToX), int(sh.ToY), shaft)

	xs := []int{int(hd.TipX), int(hd.LeftX), int(hd.RightX)}
	ys := []int{int(hd.TipY), int(hd.LeftY), int(hd.RightY)}
	if outlineOnly {
		s.canvas.Polygon(xs, ys, stroke(tag, 1.5))
	} else {
		s.canvas.Polygon(xs, ys, fill(tag))
	}
}

func (s *Surface) FillRect(x, y, w, h float64, tag string) {
	s.canvas.Rect(int(x), int(y), int(w), int(h), fill(tag))
}

func (s *Surface) Text(str string, x, y float64, tag string) {
	s.canvas.Text(int(x), int(y), str, fill(tag)+";font-size:14px;font-family:sans-serif")
}
