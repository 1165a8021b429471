package board

import (
	"fmt"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Position is a mutable chess position. The zero value is not usable;
// construct one with NewPosition or ParseFEN.
type Position struct {
	raw   dragontoothmg.Board
	undos []func()
}

// StartposFEN returns the standard chess starting position in FEN.
func StartposFEN() string { return dragontoothmg.Startpos }

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p, err := ParseFEN(dragontoothmg.Startpos)
	if err != nil {
		panic("board: startpos FEN must parse: " + err.Error())
	}
	return p
}

// ParseFEN builds a Position from a FEN string.
func ParseFEN(fen string) (pos *Position, err error) {
	defer func() {
		if r := recover(); r != nil {
			pos, err = nil, fmt.Errorf("board: invalid FEN %q: %v", fen, r)
		}
	}()
	b := dragontoothmg.ParseFen(fen)
	return &Position{raw: b}, nil
}

// FEN renders the current position in Forsyth-Edwards notation.
func (p *Position) FEN() string { return p.raw.ToFen() }

func (p *Position) SideToMove() Color {
	if p.raw.Wtomove {
		return White
	}
	return Black
}

// LegalMoves returns every legal move for the side to move.
func (p *Position) LegalMoves() []Move {
	raw := p.raw.GenerateLegalMoves()
	moves := make([]Move, len(raw))
	for i, m := range raw {
		moves[i] = Move{raw: m}
	}
	return moves
}

// CheckState classifies the position for the side to move.
func (p *Position) CheckState() CheckState {
	inCheck := p.raw.OurKingInCheck()
	hasMoves := len(p.raw.GenerateLegalMoves()) > 0
	switch {
	case !hasMoves && inCheck:
		return Checkmate
	case !hasMoves:
		return Stalemate
	case inCheck:
		return Check
	default:
		return Normal
	}
}

// IsCapture reports whether m captures a piece in the current position.
func (p *Position) IsCapture(m Move) bool {
	return dragontoothmg.IsCapture(m.raw, &p.raw)
}

// MakeMove applies m to the position. Every MakeMove must be matched by
// exactly one UnmakeMove, in reverse order, to restore the position
// bit-for-bit; callers should express this with a deferred UnmakeMove so
// the pairing holds on every exit path, including an aborted search.
func (p *Position) MakeMove(m Move) {
	undo := p.raw.Apply(m.raw)
	p.undos = append(p.undos, undo)
}

// UnmakeMove reverses the most recent MakeMove.
func (p *Position) UnmakeMove() {
	n := len(p.undos)
	if n == 0 {
		panic("board: UnmakeMove called with no matching MakeMove")
	}
	undo := p.undos[n-1]
	p.undos = p.undos[:n-1]
	undo()
}

// PieceCount counts pieces of the given type and color on the board.
func (p *Position) PieceCount(pt PieceType, c Color) int {
	bb := p.bitboardFor(pt, c)
	return bits.OnesCount64(bb)
}

// PieceAt reports the piece occupying sq, if any.
func (p *Position) PieceAt(sq Square) (PieceType, Color, bool) {
	mask := uint64(1) << uint(sq)
	for _, c := range [...]Color{White, Black} {
		for _, pt := range [...]PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
			if p.bitboardFor(pt, c)&mask != 0 {
				return pt, c, true
			}
		}
	}
	return NoPiece, White, false
}

func (p *Position) bitboardFor(pt PieceType, c Color) uint64 {
	bbs := p.raw.White
	if c == Black {
		bbs = p.raw.Black
	}
	switch pt {
	case Pawn:
		return bbs.Pawns
	case Knight:
		return bbs.Knights
	case Bishop:
		return bbs.Bishops
	case Rook:
		return bbs.Rooks
	case Queen:
		return bbs.Queens
	case King:
		return bbs.Kings
	default:
		return 0
	}
}

// Clone returns an independent copy of the position, with no pending undos.
// The engine facade uses this to hand the search a position it can mutate
// freely while set_position/play_move keep acting on the caller's own copy.
func (p *Position) Clone() *Position {
	return &Position{raw: p.raw}
}
