package base

import "fmt"

// Forsyth–Edwards Notation
const FEN_START_GAME string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Piece uint8

const (
	InvalidPiece Piece = iota
	WKing
	WQueen
	WRook
	WBishop
	WKnight
	WPawn
	BKing
	BQueen
	BRook
	BBishop
	BKnight
	BPawn
)

// Square is one board cell: File 0..7 == 'a'..'h', Row 0..7 == ranks 1..8.
type Square struct {
	File int
	Row  int
}

type Move struct {
	From Square
	To   Square
}

func (m Move) String() string {
	return AlgebraicFromSquare(m.From) + AlgebraicFromSquare(m.To)
}

func IsValidSquare(sq Square) bool {
	return sq.File >= 0 && sq.File <= 7 && sq.Row >= 0 && sq.Row <= 7
}

func PieceIsWhite(p Piece) bool {
	return p >= WKing && p <= WPawn
}

func PieceIsBlack(p Piece) bool {
	return p >= BKing && p <= BPawn
}

func SquareFromAlgebraic(pos string) (Square, error) {
	// 'a' ~ 'h' to 0-7
	// '1' ~ '8' to 0-7
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return Square{}, fmt.Errorf("invalid position: %q", pos)
	}
	return Square{File: int(pos[0] - 'a'), Row: int(pos[1] - '1')}, nil
}

func AlgebraicFromSquare(sq Square) string {
	if !IsValidSquare(sq) {
		return "-"
	}
	return string([]rune{rune(sq.File + 'a'), rune(sq.Row + '1')})
}

// MoveFromUCI slices a 4+ character UCI move ("e2e4", "e7e8q") in half
// to recover origin and destination. Promotion suffix is ignored.
func MoveFromUCI(uci string) (Move, error) {
	if len(uci) < 4 {
		return Move{}, fmt.Errorf("invalid uci move: %q", uci)
	}
	from, err := SquareFromAlgebraic(uci[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := SquareFromAlgebraic(uci[2:4])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

func ConvertPieceFromRune(p rune) Piece {
	switch p {
	case 'P':
		return WPawn
	case 'R':
		return WRook
	case 'N':
		return WKnight
	case 'B':
		return WBishop
	case 'Q':
		return WQueen
	case 'K':
		return WKing
	case 'p':
		return BPawn
	case 'r':
		return BRook
	case 'n':
		return BKnight
	case 'b':
		return BBishop
	case 'q':
		return BQueen
	case 'k':
		return BKing
	default:
		return InvalidPiece
	}
}

func ConvertRuneFromPiece(p Piece) rune {
	switch p {
	case WPawn:
		return 'P'
	case WKnight:
		return 'N'
	case WBishop:
		return 'B'
	case WRook:
		return 'R'
	case WQueen:
		return 'Q'
	case WKing:
		return 'K'
	case BPawn:
		return 'p'
	case BKnight:
		return 'n'
	case BBishop:
		return 'b'
	case BRook:
		return 'r'
	case BQueen:
		return 'q'
	case BKing:
		return 'k'
	default:
		return '.'
	}
}
