package ggsurface

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"liveboard/src/base"
	"liveboard/src/render"
)

// ---- Styles (palette) ----

var defaultColors = map[string]color.RGBA{
	"light":              {0xee, 0xe2, 0xc8, 0xff},
	"dark":               {0x8c, 0xa2, 0x6c, 0xff},
	render.TagLastMove:   {0xf2, 0xd2, 0x6a, 0xff},
	render.TagArrowBest:  {0x15, 0x78, 0x1b, 0xd0},
	render.TagArrowAlt:   {0x15, 0x78, 0x1b, 0x70},
	render.TagArrowReply: {0x3a, 0x5f, 0xcd, 0x90},
	render.TagArrowDeep:  {0x66, 0x66, 0x66, 0x90},
	"selected":           {0x22, 0x88, 0xcc, 0xff},
	"check":              {0xcc, 0x33, 0x22, 0xff},
	"panel":              {0x20, 0x20, 0x20, 0xff},
	"panel-active":       {0x2a, 0x3a, 0x4a, 0xff},
	"panel-text":         {0xee, 0xee, 0xee, 0xff},
	"wdl-win":            {0xf0, 0xf0, 0xf0, 0xff},
	"wdl-draw":           {0x80, 0x80, 0x80, 0xff},
	"wdl-loss":           {0x30, 0x30, 0x30, 0xff},
}

// Surface rasterizes board primitives onto an anti-aliased gg context.
type Surface struct {
	dc        *gg.Context
	colors    map[string]color.RGBA
	textFace  font.Face
	pieceFace font.Face
}

func NewSurface(w, h int, squareSize float64) (*Surface, error) {
	textFace, err := newFace(goregular.TTF, 14)
	if err != nil {
		return nil, err
	}
	pieceFace, err := newFace(gobold.TTF, squareSize*0.52)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(w, h)
	dc.SetRGBA255(0x18, 0x18, 0x18, 0xff)
	dc.Clear()
	return &Surface{
		dc:        dc,
		colors:    defaultColors,
		textFace:  textFace,
		pieceFace: pieceFace,
	}, nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func (s *Surface) color(tag string) color.RGBA {
	if c, ok := s.colors[tag]; ok {
		return c
	}
	return color.RGBA{0xff, 0x00, 0xff, 0xff} // unknown tag: loud magenta
}

func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

func (s *Surface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}

// ---- render.Surface ----

func (s *Surface) FillSquare(x, y, size float64, tag string) {
	s.dc.SetColor(s.color(tag))
	s.dc.DrawRectangle(x, y, size, size)
	s.dc.Fill()
}

func (s *Surface) StrokeSquare(x, y, size, inset, width float64, tag string) {
	s.dc.SetColor(s.color(tag))
	s.dc.SetLineWidth(width)
	s.dc.DrawRectangle(x+inset, y+inset, size-inset*2, size-inset*2)
	s.dc.Stroke()
}

func (s *Surface) DrawPiece(p base.Piece, x, y, size float64) {
	cx, cy := x+size/2, y+size/2

	// disc behind the letter stands in for a sprite set
	if base.PieceIsWhite(p) {
		s.dc.SetRGBA255(0xfa, 0xfa, 0xfa, 0xff)
	} else {
		s.dc.SetRGBA255(0x1c, 0x1c, 0x1c, 0xff)
	}
	s.dc.DrawCircle(cx, cy, size*0.38)
	s.dc.FillPreserve()
	s.dc.SetRGBA255(0x50, 0x50, 0x50, 0xff)
	s.dc.SetLineWidth(1.5)
	s.dc.Stroke()

	if base.PieceIsWhite(p) {
		s.dc.SetRGBA255(0x20, 0x20, 0x20, 0xff)
	} else {
		s.dc.SetRGBA255(0xec, 0xec, 0xec, 0xff)
	}
	glyph := string(base.ConvertRuneFromPiece(p))
	if base.PieceIsBlack(p) {
		glyph = string(base.ConvertRuneFromPiece(p) - 'a' + 'A')
	}
	s.dc.SetFontFace(s.pieceFace)
	s.dc.DrawStringAnchored(glyph, cx, cy, 0.5, 0.5)
}

func (s *Surface) DrawArrow(sh render.Shaft, hd render.Head, tag string, outlineOnly bool) {
	s.dc.SetColor(s.color(tag))

	if sh.DashLength > 0 {
		s.dc.SetDash(sh.DashLength, sh.DashSpace)
	}
	s.dc.SetLineCapRound()
	s.dc.SetLineWidth(sh.Width)
	s.dc.DrawLine(sh.FromX, sh.FromY, sh.ToX, sh.ToY)
	s.dc.Stroke()
	s.dc.SetDash()

	s.dc.MoveTo(hd.TipX, hd.TipY)
	s.dc.LineTo(hd.LeftX, hd.LeftY)
	s.dc.LineTo(hd.RightX, hd.RightY)
	s.dc.ClosePath()
	if outlineOnly {
		s.dc.SetLineWidth(1.5)
		s.dc.Stroke()
	} else {
		s.dc.Fill()
	}
}

func (s *Surface) FillRect(x, y, w, h float64, tag string) {
	s.dc.SetColor(s.color(tag))
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
}

func (s *Surface) Text(str string, x, y float64, tag string) {
	s.dc.SetColor(s.color(tag))
	s.dc.SetFontFace(s.textFace)
	s.dc.DrawString(str, x, y)
}
