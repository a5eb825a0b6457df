package convfen

import (
	"fmt"
	"strconv"
	"strings"

	"liveboard/src/base"
)

// Position is the decoded board: an explicit square -> piece mapping
// plus the side to move. It is replaced wholesale on every parse.
type Position struct {
	Pieces      map[base.Square]base.Piece
	WhiteToMove bool
}

// ParseError reports malformed placement notation. The caller must not
// apply a position that produced one.
type ParseError struct {
	Placement string
	Reason    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad placement %q: %s", e.Placement, e.Reason)
}

// ParsePosition decodes a FEN piece-placement field and an active-color
// field. Rows are '/'-separated, top row first; digits are empty-file
// run lengths; every row must cover exactly 8 files. Any active color
// other than "w" means black to move.
func ParsePosition(placement, activeColor string) (*Position, error) {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return nil, &ParseError{Placement: placement, Reason: fmt.Sprintf("must be 8 rows, but there are %d", len(rows))}
	}

	pos := &Position{
		Pieces:      make(map[base.Square]base.Piece, 32),
		WhiteToMove: activeColor == "w",
	}
	for r := 0; r < 8; r++ {
		file := 0
		for _, ch := range rows[r] {
			if file >= 8 {
				return nil, &ParseError{Placement: placement, Reason: fmt.Sprintf("row %d overflows 8 files", r+1)}
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc := base.ConvertPieceFromRune(ch)
			if pc == base.InvalidPiece {
				return nil, &ParseError{Placement: placement, Reason: fmt.Sprintf("unknown piece %q in row %d", ch, r+1)}
			}
			// rows arrive top first: parse row 0 is board Row 7
			pos.Pieces[base.Square{File: file, Row: 7 - r}] = pc
			file++
		}
		if file != 8 {
			return nil, &ParseError{Placement: placement, Reason: fmt.Sprintf("row %d sums to %d files, want 8", r+1, file)}
		}
	}
	return pos, nil
}

// ParseFEN decodes a full FEN string, using only the placement and
// active-color fields. Castling, en passant and move counters are feed
// metadata this renderer never draws.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, &ParseError{Placement: fen, Reason: fmt.Sprintf("must be >= 2 fields, but there are %d", len(parts))}
	}
	return ParsePosition(parts[0], parts[1])
}

// EncodePlacement re-derives the run-length placement rows from a
// position, top row first.
func EncodePlacement(pos *Position) string {
	var b strings.Builder
	for row := 7; row >= 0; row-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc, ok := pos.Pieces[base.Square{File: file, Row: row}]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteRune(base.ConvertRuneFromPiece(pc))
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if row > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
