package render

import (
	"math"

	"liveboard/src/base"
	"liveboard/src/convert/convfen"
	"liveboard/src/geom"
	"liveboard/src/logx"
	"liveboard/src/overlay"
)

// Arrow style tags handed to the surface.
const (
	TagArrowBest  = "best"  // ply 0 of the top variation
	TagArrowAlt   = "alt"   // ply 0 of the others
	TagArrowReply = "reply" // ply 1
	TagArrowDeep  = "deep"  // ply >= 2
	TagLastMove   = "lastmove"
)

type Config struct {
	SquareSize float64
	Border     float64
	// BaseArrowWidth is the shaft width the best variation gets;
	// weaker lines shrink from it. 0 derives from SquareSize.
	BaseArrowWidth float64
	// MaxPlies is how many moves of each variation become arrows.
	MaxPlies int
}

func (c *Config) fill() {
	if c.SquareSize <= 0 {
		c.SquareSize = 80
	}
	if c.BaseArrowWidth <= 0 {
		c.BaseArrowWidth = c.SquareSize * 0.18
	}
	if c.MaxPlies <= 0 {
		c.MaxPlies = 2
	}
}

// BoardDrawer owns one board instance: position, orientation, overlays
// and candidate variations. Every update discards the overlay state and
// the next Redraw rebuilds it from scratch; there are no incremental
// states. Multiple drawers can coexist (main board plus preview).
type BoardDrawer struct {
	conf   Config
	logger logx.Logger

	pos        *convfen.Position
	flipped    bool
	lastMove   *base.Move
	variations []overlay.Variation
	highlights []overlay.Highlight
	outlines   []overlay.Outline

	state      *overlay.State
	rebuilding bool
	dirty      bool
}

func NewBoardDrawer(conf Config, logger logx.Logger) *BoardDrawer {
	conf.fill()
	return &BoardDrawer{
		conf:   conf,
		logger: logger,
		pos:    &convfen.Position{Pieces: map[base.Square]base.Piece{}, WhiteToMove: true},
		state:  overlay.NewState(),
		dirty:  true,
	}
}

// SetPositionFEN replaces the piece set. A malformed position is
// rejected whole: the previous valid state stays on the board and the
// error goes back to the caller.
func (bd *BoardDrawer) SetPositionFEN(fen string) error {
	pos, err := convfen.ParseFEN(fen)
	if err != nil {
		bd.logger.Warnf("rejecting position update: %v", err)
		return err
	}
	bd.logger.Debugf("position update: %s", fen)
	bd.pos = pos
	bd.dirty = true
	return nil
}

// SetLastMove marks the origin and destination of the move that led to
// the current position. Pass nil to clear.
func (bd *BoardDrawer) SetLastMove(mv *base.Move) {
	bd.lastMove = mv
	bd.dirty = true
}

// SetVariations replaces the candidate-arrow source. Order is the feed
// rank: index 0 is the best line.
func (bd *BoardDrawer) SetVariations(vs []overlay.Variation) {
	bd.variations = vs
	bd.dirty = true
}

func (bd *BoardDrawer) AddHighlight(h overlay.Highlight) {
	bd.highlights = append(bd.highlights, h)
	bd.dirty = true
}

func (bd *BoardDrawer) AddOutline(o overlay.Outline) {
	bd.outlines = append(bd.outlines, o)
	bd.dirty = true
}

func (bd *BoardDrawer) Flip() {
	bd.flipped = !bd.flipped
	bd.dirty = true
}

func (bd *BoardDrawer) SetFlipped(f bool) {
	if bd.flipped != f {
		bd.flipped = f
		bd.dirty = true
	}
}

func (bd *BoardDrawer) Flipped() bool { return bd.flipped }
func (bd *BoardDrawer) Dirty() bool   { return bd.dirty }

// Rebuilding reports whether a redraw is in flight; the drawer is
// otherwise idle, there are no partial states.
func (bd *BoardDrawer) Rebuilding() bool { return bd.rebuilding }
func (bd *BoardDrawer) WhiteToMove() bool { return bd.pos.WhiteToMove }

// PixelSize returns the full drawing extent including both borders.
func (bd *BoardDrawer) PixelSize() float64 {
	return bd.conf.SquareSize*8 + bd.conf.Border*2
}

// Redraw rebuilds the overlay state and performs the full fixed-order
// draw: squares, outlines, waiting side's pieces, under-piece arrows,
// moving side's pieces, over-piece arrows. The order keeps the side to
// move and the deep annotation arrows on top while the primary arrows
// stay legible beneath the pieces.
func (bd *BoardDrawer) Redraw(s Surface) {
	bd.rebuilding = true
	bd.rebuildState()

	sq, border := bd.conf.SquareSize, bd.conf.Border

	// 1: all 64 squares, highlight fill winning over the base shade
	for row := 0; row < 8; row++ {
		for file := 0; file < 8; file++ {
			cell := base.Square{File: file, Row: row}
			x, y := geom.ToPixel(cell, bd.flipped, sq, border)
			tag := "dark"
			if (file+row)%2 == 1 {
				tag = "light"
			}
			if h, ok := bd.state.HighlightAt(cell); ok {
				tag = h.Tag
			}
			s.FillSquare(x, y, sq, tag)
		}
	}

	// 2: outlines
	for _, o := range bd.state.Outlines() {
		x, y := geom.ToPixel(o.Square, bd.flipped, sq, border)
		s.StrokeSquare(x, y, sq, o.Inset, 2, o.Tag)
	}

	// 3: pieces of the side not to move
	bd.drawPieces(s, !bd.pos.WhiteToMove)

	// 4: arrows under the pieces
	bd.drawArrows(s, false)

	// 5: pieces of the side to move
	bd.drawPieces(s, bd.pos.WhiteToMove)

	// 6: arrows above the pieces
	bd.drawArrows(s, true)

	bd.rebuilding = false
	bd.dirty = false
}

func (bd *BoardDrawer) drawPieces(s Surface, white bool) {
	sq, border := bd.conf.SquareSize, bd.conf.Border
	for row := 0; row < 8; row++ {
		for file := 0; file < 8; file++ {
			cell := base.Square{File: file, Row: row}
			pc, ok := bd.pos.Pieces[cell]
			if !ok || base.PieceIsWhite(pc) != white {
				continue
			}
			x, y := geom.ToPixel(cell, bd.flipped, sq, border)
			s.DrawPiece(pc, x, y, sq)
		}
	}
}

func (bd *BoardDrawer) drawArrows(s Surface, after bool) {
	for _, spec := range bd.state.Arrows() {
		sh, hd, bucket := RenderArrow(spec, bd.flipped, bd.conf.SquareSize, bd.conf.Border)
		if bucket != after {
			continue
		}
		s.DrawArrow(sh, hd, spec.Tag, spec.OutlineOnly)
	}
}

func (bd *BoardDrawer) rebuildState() {
	st := overlay.NewState()
	if bd.lastMove != nil {
		st.AddHighlight(overlay.Highlight{Square: bd.lastMove.From, Tag: TagLastMove})
		st.AddHighlight(overlay.Highlight{Square: bd.lastMove.To, Tag: TagLastMove})
	}
	for _, h := range bd.highlights {
		st.AddHighlight(h)
	}
	for _, o := range bd.outlines {
		st.AddOutline(o)
	}

	cands := bd.buildCandidates()
	overlay.AllocateOffsets(cands)
	for _, c := range cands {
		st.AddArrow(c.Spec)
	}
	bd.state = st
}

// buildCandidates flattens the ranked variations into arrow specs:
// every ply-0 arrow first in rank order, then the ply-1 replies, then
// anything deeper. The allocator depends on this order being the same
// on every rebuild of an unchanged feed.
func (bd *BoardDrawer) buildCandidates() []overlay.Candidate {
	var best int64
	if len(bd.variations) > 0 {
		best = bd.variations[0].Nodes
	}

	var cands []overlay.Candidate
	for ply := 0; ply < bd.conf.MaxPlies; ply++ {
		for rank, v := range bd.variations {
			if ply >= len(v.Moves) {
				// evaluation reported fewer moves than we draw plies
				continue
			}
			cands = append(cands, overlay.Candidate{
				Spec: bd.arrowSpec(rank, ply, v, best),
				Ply:  ply,
			})
		}
	}
	return cands
}

func (bd *BoardDrawer) arrowSpec(rank, ply int, v overlay.Variation, bestNodes int64) *overlay.ArrowSpec {
	mv := v.Moves[ply]
	sq := bd.conf.SquareSize
	width := WidthScale(v.Nodes, bestNodes) * bd.conf.BaseArrowWidth

	spec := &overlay.ArrowSpec{
		Move:       mv,
		Width:      width,
		Angle:      geom.Direction(mv.From, mv.To),
		HeadLength: sq * 0.3,
		HeadWidth:  width * 2.2,
		Tag:        TagArrowAlt,
	}
	if spec.HeadWidth < sq*0.15 {
		spec.HeadWidth = sq * 0.15
	}

	switch {
	case ply == 0 && rank == 0:
		spec.Tag = TagArrowBest
	case ply == 0:
	case ply == 1:
		spec.Tag = TagArrowReply
		spec.Width = width * 0.6
		spec.DashLength = sq * 0.15
		spec.DashSpace = sq * 0.1
		spec.RenderAfterPieces = true
	default:
		spec.Tag = TagArrowDeep
		spec.Width = bd.conf.BaseArrowWidth * 0.35
		spec.DashLength = sq * 0.1
		spec.DashSpace = sq * 0.1
		spec.RenderAfterPieces = true
		spec.OutlineOnly = true
	}
	return spec
}

// WidthScale compresses the node-count ratio sub-linearly so weaker
// lines stay visible without dwarfing by the best one.
func WidthScale(nodes, bestNodes int64) float64 {
	if bestNodes == 0 {
		return 0
	}
	return math.Pow(float64(nodes)/float64(bestNodes), 1/1.7)
}
