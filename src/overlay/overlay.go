package overlay

import (
	"sort"

	"liveboard/src/base"
)

// ArrowSpec is one drawable arrow. Offset/TotalOffsets/OffsetDirection
// are filled by AllocateOffsets before rendering.
type ArrowSpec struct {
	Move              base.Move
	Tag               string  // style class
	Width             float64 // shaft width, px
	Angle             int     // travel direction, degrees, board coords
	HeadLength        float64 // px
	HeadWidth         float64 // px
	DashLength        float64 // px, 0 = solid
	DashSpace         float64 // px
	RenderAfterPieces bool    // stacking bucket
	Offset            int
	TotalOffsets      int
	OffsetDirection   int  // degrees, shared by the whole lane
	OutlineOnly       bool // stroke the silhouette, no fill
}

// Variation is one candidate continuation from the analysis feed.
// Rank is implicit: index in the slice handed to the drawer (0 = best).
type Variation struct {
	Moves []base.Move
	Nodes int64
}

type Highlight struct {
	Square base.Square
	Tag    string
}

type Outline struct {
	Square base.Square
	Tag    string
	Inset  float64 // px
}

type overlayKey struct {
	sq  base.Square
	tag string
}

// State holds the current highlights, outlines and arrows. It is
// discarded and rebuilt on every position or evaluation update; there
// is no incremental mutation.
type State struct {
	highlights map[overlayKey]Highlight
	outlines   map[overlayKey]Outline
	arrows     []*ArrowSpec
}

func NewState() *State {
	return &State{
		highlights: make(map[overlayKey]Highlight),
		outlines:   make(map[overlayKey]Outline),
	}
}

func (s *State) AddHighlight(h Highlight) {
	s.highlights[overlayKey{h.Square, h.Tag}] = h
}

func (s *State) AddOutline(o Outline) {
	s.outlines[overlayKey{o.Square, o.Tag}] = o
}

func (s *State) AddArrow(a *ArrowSpec) {
	s.arrows = append(s.arrows, a)
}

func (s *State) Arrows() []*ArrowSpec {
	return s.arrows
}

// Highlights returns the set in square/tag order so redraws are stable.
func (s *State) Highlights() []Highlight {
	res := make([]Highlight, 0, len(s.highlights))
	for _, h := range s.highlights {
		res = append(res, h)
	}
	sort.Slice(res, func(i, j int) bool { return lessOverlay(res[i].Square, res[i].Tag, res[j].Square, res[j].Tag) })
	return res
}

func (s *State) Outlines() []Outline {
	res := make([]Outline, 0, len(s.outlines))
	for _, o := range s.outlines {
		res = append(res, o)
	}
	sort.Slice(res, func(i, j int) bool { return lessOverlay(res[i].Square, res[i].Tag, res[j].Square, res[j].Tag) })
	return res
}

func (s *State) HighlightAt(sq base.Square) (Highlight, bool) {
	for _, h := range s.Highlights() {
		if h.Square == sq {
			return h, true
		}
	}
	return Highlight{}, false
}

func lessOverlay(a base.Square, at string, b base.Square, bt string) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	if a.File != b.File {
		return a.File < b.File
	}
	return at < bt
}
