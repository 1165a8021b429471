package board

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
)

// Move is an opaque legal move produced by LegalMoves. Its zero value is
// the null move used to report "no move" from the engine facade.
type Move struct {
	raw dragontoothmg.Move
}

func (m Move) From() Square { return Square(m.raw.From()) }
func (m Move) To() Square   { return Square(m.raw.To()) }

// Promotion returns the piece type a pawn promotes to, or NoPiece.
func (m Move) Promotion() PieceType {
	return fromDragontoothPiece(m.raw.Promote())
}

func (m Move) IsNull() bool { return m.raw == 0 }

func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.raw.String()
	return s
}

func fromDragontoothPiece(p dragontoothmg.Piece) PieceType {
	switch p {
	case dragontoothmg.Pawn:
		return Pawn
	case dragontoothmg.Knight:
		return Knight
	case dragontoothmg.Bishop:
		return Bishop
	case dragontoothmg.Rook:
		return Rook
	case dragontoothmg.Queen:
		return Queen
	case dragontoothmg.King:
		return King
	default:
		return NoPiece
	}
}

// ParseUCIMove matches a UCI long-algebraic move string (e.g. "e2e4",
// "e7e8q") against the position's legal moves.
func ParseUCIMove(p *Position, s string) (Move, error) {
	for _, m := range p.LegalMoves() {
		if m.String() == s {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("move %q is not legal in the current position", s)
}
