package gui

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"liveboard/src/base"
	"liveboard/src/feed"
	"liveboard/src/logx"
	"liveboard/src/render"
	"liveboard/src/render/ggsurface"
	"liveboard/ui/gui/gconf"
)

const (
	barH = 36 // player bar height
	wdlH = 8  // win/draw/loss strip height
)

// Viewer is the live window: a board drawer fed by the analysis stream,
// player bars with countdown clocks above and below, and the score
// strip. Board geometry is recomputed only on feed updates or a flip;
// the per-second tick refreshes nothing but the clock text.
type Viewer struct {
	conf   *gconf.Config
	logger logx.Logger
	drawer *render.BoardDrawer
	frames <-chan *feed.Frame

	white, black           render.Player
	whiteClock, blackClock *render.Countdown
	wdl                    [3]int

	boardImg   *ebiten.Image
	panelImg   *ebiten.Image
	panelDirty bool
	shownWhite int
	shownBlack int

	prevFlipKey bool
}

func NewViewer(conf *gconf.Config, frames <-chan *feed.Frame, logger logx.Logger) (*Viewer, error) {
	drawer := render.NewBoardDrawer(render.Config{
		SquareSize: float64(conf.SquareSize),
		Border:     float64(conf.Border),
		MaxPlies:   conf.MaxPlies,
	}, logger)
	drawer.SetFlipped(conf.Flipped)
	if err := drawer.SetPositionFEN(base.FEN_START_GAME); err != nil {
		return nil, err
	}

	return &Viewer{
		conf:       conf,
		logger:     logger,
		drawer:     drawer,
		frames:     frames,
		whiteClock: render.NewCountdown(nil),
		blackClock: render.NewCountdown(nil),
		panelDirty: true,
		shownWhite: -1,
		shownBlack: -1,
	}, nil
}

func (v *Viewer) SetPlayers(white, black render.Player) {
	v.white, v.black = white, black
	v.panelDirty = true
}

// SetPosition seeds the board before the feed speaks (or instead of it).
func (v *Viewer) SetPosition(fen string) error {
	return v.drawer.SetPositionFEN(fen)
}

func (v *Viewer) windowSize() (int, int) {
	board := int(v.drawer.PixelSize())
	return board, barH + board + wdlH + barH
}

func (v *Viewer) Run() error {
	w, h := v.windowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("liveboard")
	return ebiten.RunGame(v)
}

func (v *Viewer) Update() error {
	v.drainFrames()

	// flip on F
	fk := ebiten.IsKeyPressed(ebiten.KeyF)
	if fk && !v.prevFlipKey {
		v.drawer.Flip()
		v.panelDirty = true
	}
	v.prevFlipKey = fk

	// clock text refresh only; no geometry runs from here
	if wc, bc := v.whiteClock.Remaining(), v.blackClock.Remaining(); wc != v.shownWhite || bc != v.shownBlack {
		v.shownWhite, v.shownBlack = wc, bc
		v.panelDirty = true
	}

	if v.drawer.Dirty() {
		if err := v.renderBoard(); err != nil {
			return err
		}
	}
	if v.panelDirty {
		if err := v.renderPanels(); err != nil {
			return err
		}
	}
	return nil
}

func (v *Viewer) drainFrames() {
	if v.frames == nil {
		return
	}
	for {
		select {
		case frame, ok := <-v.frames:
			if !ok {
				v.frames = nil
				return
			}
			v.applyFrame(frame)
		default:
			return
		}
	}
}

func (v *Viewer) applyFrame(frame *feed.Frame) {
	for _, p := range frame.Positions {
		if err := v.drawer.SetPositionFEN(p.FEN); err != nil {
			continue
		}
		if p.MoveUCI != nil {
			if mv, err := base.MoveFromUCI(*p.MoveUCI); err == nil {
				v.drawer.SetLastMove(&mv)
			}
		} else {
			v.drawer.SetLastMove(nil)
		}
		if p.WhiteClock != nil {
			v.whiteClock.Set(*p.WhiteClock, v.drawer.WhiteToMove())
		}
		if p.BlackClock != nil {
			v.blackClock.Set(*p.BlackClock, !v.drawer.WhiteToMove())
		}
		if p.ScoreW != nil && p.ScoreD != nil && p.ScoreB != nil {
			v.wdl = [3]int{*p.ScoreW, *p.ScoreD, *p.ScoreB}
			v.panelDirty = true
		}
	}
	if n := len(frame.Thinkings); n > 0 {
		t := frame.Thinkings[n-1]
		v.drawer.SetVariations(t.Variations(v.logger))
	}
}

func (v *Viewer) renderBoard() error {
	size := int(v.drawer.PixelSize())
	surf, err := ggsurface.NewSurface(size, size, float64(v.conf.SquareSize))
	if err != nil {
		return err
	}
	v.drawer.Redraw(surf)
	v.boardImg = ebiten.NewImageFromImage(surf.Image())
	return nil
}

// renderPanels draws [top bar | wdl strip | bottom bar] stacked into
// one image; Draw slices it around the board.
func (v *Viewer) renderPanels() error {
	w, _ := v.windowSize()
	surf, err := ggsurface.NewSurface(w, barH*2+wdlH, float64(v.conf.SquareSize))
	if err != nil {
		return err
	}

	top, topClock := v.black, render.FormatClock(v.shownBlack)
	bottom, bottomClock := v.white, render.FormatClock(v.shownWhite)
	topActive, bottomActive := !v.drawer.WhiteToMove(), v.drawer.WhiteToMove()
	if v.drawer.Flipped() {
		top, bottom = bottom, top
		topClock, bottomClock = bottomClock, topClock
		topActive, bottomActive = bottomActive, topActive
	}

	render.DrawPlayerBar(surf, top, topClock, 0, 0, float64(w), barH, topActive)
	render.DrawWDLBar(surf, v.wdl[0], v.wdl[1], v.wdl[2], 0, barH, float64(w), wdlH)
	render.DrawPlayerBar(surf, bottom, bottomClock, 0, barH+wdlH, float64(w), barH, bottomActive)

	v.panelImg = ebiten.NewImageFromImage(surf.Image())
	v.panelDirty = false
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	w, _ := v.windowSize()
	board := int(v.drawer.PixelSize())

	if v.panelImg != nil {
		topOp := &ebiten.DrawImageOptions{}
		screen.DrawImage(v.panelImg.SubImage(image.Rect(0, 0, w, barH)).(*ebiten.Image), topOp)

		wdlOp := &ebiten.DrawImageOptions{}
		wdlOp.GeoM.Translate(0, float64(barH+board))
		screen.DrawImage(v.panelImg.SubImage(image.Rect(0, barH, w, barH+wdlH)).(*ebiten.Image), wdlOp)

		bottomOp := &ebiten.DrawImageOptions{}
		bottomOp.GeoM.Translate(0, float64(barH+board+wdlH))
		screen.DrawImage(v.panelImg.SubImage(image.Rect(0, barH+wdlH, w, barH*2+wdlH)).(*ebiten.Image), bottomOp)
	}
	if v.boardImg != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, barH)
		screen.DrawImage(v.boardImg, op)
	}

	if v.conf.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.2f", ebiten.ActualTPS()))
	}
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.windowSize()
}
