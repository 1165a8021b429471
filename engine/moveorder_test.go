package engine

import (
	"testing"

	"github.com/FGiesemann/MaatChessEngine/internal/board"
)

func TestMoveOrdererPromotesPVMoveToFront(t *testing.T) {
	pos := board.NewPosition()
	eval := NewEvaluator(DefaultConfig().Evaluator)
	orderer := NewMoveOrderer(eval)

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		t.Fatal("expected legal moves at the start position")
	}
	pv := moves[len(moves)-1]

	ordered := orderer.Order(pos, moves, pv, true, true)
	if ordered[0] != pv {
		t.Errorf("expected pv move %v at the front, got %v", pv, ordered[0])
	}
}

func TestMoveOrdererUnchangedWhenDisabled(t *testing.T) {
	pos := board.NewPosition()
	eval := NewEvaluator(DefaultConfig().Evaluator)
	orderer := NewMoveOrderer(eval)

	moves := pos.LegalMoves()
	original := append([]board.Move(nil), moves...)

	ordered := orderer.Order(pos, moves, board.Move{}, false, true)
	for i := range ordered {
		if ordered[i] != original[i] {
			t.Fatalf("expected move order to be unchanged when use_move_ordering is false")
		}
	}
}
