package render

import (
	"testing"

	"liveboard/src/base"
	"liveboard/src/logx"
	"liveboard/src/overlay"
)

// recordSurface captures draw calls in order so tests can check the
// stacking phases without a real raster target.
type surfOp struct {
	kind  string
	tag   string
	piece base.Piece
	x, y  float64
	w, h  float64
	shaft Shaft
	head  Head
}

type recordSurface struct {
	ops []surfOp
}

func (r *recordSurface) FillSquare(x, y, size float64, tag string) {
	r.ops = append(r.ops, surfOp{kind: "fillsquare", tag: tag, x: x, y: y, w: size, h: size})
}

func (r *recordSurface) StrokeSquare(x, y, size, inset, width float64, tag string) {
	r.ops = append(r.ops, surfOp{kind: "strokesquare", tag: tag, x: x, y: y, w: size, h: size})
}

func (r *recordSurface) DrawPiece(p base.Piece, x, y, size float64) {
	r.ops = append(r.ops, surfOp{kind: "piece", piece: p, x: x, y: y, w: size, h: size})
}

func (r *recordSurface) DrawArrow(sh Shaft, hd Head, tag string, outlineOnly bool) {
	r.ops = append(r.ops, surfOp{kind: "arrow", tag: tag, shaft: sh, head: hd})
}

func (r *recordSurface) FillRect(x, y, w, h float64, tag string) {
	r.ops = append(r.ops, surfOp{kind: "fillrect", tag: tag, x: x, y: y, w: w, h: h})
}

func (r *recordSurface) Text(s string, x, y float64, tag string) {
	r.ops = append(r.ops, surfOp{kind: "text", tag: tag, x: x, y: y})
}

func (r *recordSurface) kinds() []string {
	res := make([]string, len(r.ops))
	for i, op := range r.ops {
		res[i] = op.kind
	}
	return res
}

func mustMove(uci string, t *testing.T) base.Move {
	t.Helper()
	mv, err := base.MoveFromUCI(uci)
	if err != nil {
		t.Fatalf("move %q: %v", uci, err)
	}
	return mv
}

func newTestDrawer(t *testing.T) *BoardDrawer {
	t.Helper()
	bd := NewBoardDrawer(Config{SquareSize: 80, Border: 16}, logx.NewNop())
	if err := bd.SetPositionFEN(base.FEN_START_GAME); err != nil {
		t.Fatalf("startpos: %v", err)
	}
	return bd
}

func TestRedrawPhaseOrder(t *testing.T) {
	bd := newTestDrawer(t)
	bd.SetVariations([]overlay.Variation{
		{Moves: []base.Move{mustMove("e2e4", t), mustMove("e7e5", t)}, Nodes: 1000},
	})

	var surf recordSurface
	bd.Redraw(&surf)

	kinds := surf.kinds()
	// 64 squares, 16 waiting-side pieces, the ply-0 arrow, 16 moving
	// side pieces, the ply-1 reply arrow
	if len(kinds) != 64+16+1+16+1 {
		t.Fatalf("op count = %d: %v", len(kinds), kinds)
	}
	for i := 0; i < 64; i++ {
		if kinds[i] != "fillsquare" {
			t.Fatalf("op %d = %s, want fillsquare", i, kinds[i])
		}
	}
	for i := 64; i < 80; i++ {
		if kinds[i] != "piece" || !base.PieceIsBlack(surf.ops[i].piece) {
			t.Fatalf("op %d = %s/%v, want waiting-side (black) piece", i, kinds[i], surf.ops[i].piece)
		}
	}
	if kinds[80] != "arrow" || surf.ops[80].tag != TagArrowBest {
		t.Fatalf("op 80 = %s/%s, want best arrow under the pieces", kinds[80], surf.ops[80].tag)
	}
	for i := 81; i < 97; i++ {
		if kinds[i] != "piece" || !base.PieceIsWhite(surf.ops[i].piece) {
			t.Fatalf("op %d = %s/%v, want moving-side (white) piece", i, kinds[i], surf.ops[i].piece)
		}
	}
	if kinds[97] != "arrow" || surf.ops[97].tag != TagArrowReply {
		t.Fatalf("op 97 = %s/%s, want reply arrow above the pieces", kinds[97], surf.ops[97].tag)
	}
}

func TestRedrawBlackToMove(t *testing.T) {
	bd := newTestDrawer(t)
	if err := bd.SetPositionFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"); err != nil {
		t.Fatal(err)
	}

	var surf recordSurface
	bd.Redraw(&surf)

	// with black to move, white pieces draw first
	first := surf.ops[64]
	if first.kind != "piece" || !base.PieceIsWhite(first.piece) {
		t.Errorf("first piece op = %s/%v, want white", first.kind, first.piece)
	}
}

func TestMalformedUpdateKeepsState(t *testing.T) {
	bd := newTestDrawer(t)
	if err := bd.SetPositionFEN("rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"); err == nil {
		t.Fatal("want parse error")
	}

	var surf recordSurface
	bd.Redraw(&surf)

	pieces := 0
	for _, op := range surf.ops {
		if op.kind == "piece" {
			pieces++
		}
	}
	if pieces != 32 {
		t.Errorf("pieces after rejected update = %d, want 32", pieces)
	}
	if !bd.WhiteToMove() {
		t.Error("side to move changed by rejected update")
	}
}

func TestPlyBeyondVariationSkipped(t *testing.T) {
	bd := newTestDrawer(t)
	// one-move line while the drawer wants two plies of arrows
	bd.SetVariations([]overlay.Variation{
		{Moves: []base.Move{mustMove("e2e4", t)}, Nodes: 500},
	})

	var surf recordSurface
	bd.Redraw(&surf)

	arrows := 0
	for _, op := range surf.ops {
		if op.kind == "arrow" {
			arrows++
		}
	}
	if arrows != 1 {
		t.Errorf("arrows = %d, want 1", arrows)
	}
}

func TestLastMoveHighlight(t *testing.T) {
	bd := newTestDrawer(t)
	mv := mustMove("e2e4", t)
	bd.SetLastMove(&mv)

	var surf recordSurface
	bd.Redraw(&surf)

	marked := 0
	for _, op := range surf.ops[:64] {
		if op.tag == TagLastMove {
			marked++
		}
	}
	if marked != 2 {
		t.Errorf("lastmove squares = %d, want 2", marked)
	}
}

func TestOutlinesDrawBetweenSquaresAndPieces(t *testing.T) {
	bd := newTestDrawer(t)
	bd.AddOutline(overlay.Outline{Square: base.Square{File: 4, Row: 0}, Tag: "check", Inset: 2})

	var surf recordSurface
	bd.Redraw(&surf)

	kinds := surf.kinds()
	if kinds[64] != "strokesquare" {
		t.Errorf("op 64 = %s, want strokesquare", kinds[64])
	}
	if kinds[65] != "piece" {
		t.Errorf("op 65 = %s, want piece", kinds[65])
	}
}

func TestVariationWidthsShrinkByNodes(t *testing.T) {
	bd := newTestDrawer(t)
	bd.SetVariations([]overlay.Variation{
		{Moves: []base.Move{mustMove("e2e4", t)}, Nodes: 1000},
		{Moves: []base.Move{mustMove("g1f3", t)}, Nodes: 100},
	})

	var surf recordSurface
	bd.Redraw(&surf)

	var widths []float64
	for _, op := range surf.ops {
		if op.kind == "arrow" {
			widths = append(widths, op.shaft.Width)
		}
	}
	if len(widths) != 2 {
		t.Fatalf("arrows = %d, want 2", len(widths))
	}
	if widths[1] >= widths[0] {
		t.Errorf("weaker line width %v >= best %v", widths[1], widths[0])
	}
}

func TestWidthScale(t *testing.T) {
	if got := WidthScale(100, 100); got != 1 {
		t.Errorf("equal nodes scale = %v, want 1", got)
	}
	if got := WidthScale(500, 0); got != 0 {
		t.Errorf("zero best scale = %v, want 0", got)
	}

	// monotonically non-decreasing in the node ratio
	prev := -1.0
	for _, n := range []int64{0, 1, 10, 250, 500, 999, 1000} {
		got := WidthScale(n, 1000)
		if got < prev {
			t.Errorf("WidthScale(%d) = %v < %v", n, got, prev)
		}
		prev = got
	}
}

func TestRedrawDeterministic(t *testing.T) {
	build := func() *recordSurface {
		bd := newTestDrawer(t)
		bd.SetVariations([]overlay.Variation{
			{Moves: []base.Move{mustMove("e2e4", t), mustMove("e7e5", t)}, Nodes: 900},
			{Moves: []base.Move{mustMove("d2d4", t), mustMove("g8f6", t)}, Nodes: 400},
		})
		var surf recordSurface
		bd.Redraw(&surf)
		bd.Redraw(&surf) // second rebuild of unchanged state
		return &surf
	}
	surf := build()
	half := len(surf.ops) / 2
	for i := 0; i < half; i++ {
		if surf.ops[i] != surf.ops[i+half] {
			t.Fatalf("op %d differs between redraws: %+v vs %+v", i, surf.ops[i], surf.ops[i+half])
		}
	}
}
