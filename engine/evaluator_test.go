package engine

import (
	"testing"

	"github.com/FGiesemann/MaatChessEngine/internal/board"
)

// Symmetry property from spec.md §8 invariant 5: evaluating a position
// from Black's perspective is the negation of evaluating it from
// White's.
func TestEvaluateSymmetry(t *testing.T) {
	pos := board.NewPosition()
	eval := NewEvaluator(DefaultConfig().Evaluator)

	white := eval.Evaluate(pos, board.White)
	black := eval.Evaluate(pos, board.Black)
	if white != -black {
		t.Errorf("Evaluate(white)=%d, Evaluate(black)=%d, want negatives of each other", white, black)
	}
}

func TestMaterialBalanceZeroAtStart(t *testing.T) {
	pos := board.NewPosition()
	cfg := DefaultConfig().Evaluator
	cfg.UsePieceSquareTables = false
	eval := NewEvaluator(cfg)

	if got := eval.Evaluate(pos, board.White); got != 0 {
		t.Errorf("expected balanced material at the start position, got %d", got)
	}
}

func TestCaptureScoreModelsMVVLVA(t *testing.T) {
	// A white pawn takes a black knight: capturing a more valuable piece
	// with a less valuable one scores positively.
	pos, err := board.ParseFEN("4k3/8/8/8/3n4/4P3/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	eval := NewEvaluator(DefaultConfig().Evaluator)

	var capture board.Move
	found := false
	for _, m := range pos.LegalMoves() {
		if pos.IsCapture(m) {
			capture = m
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected a capture move to be available")
	}
	if got := eval.captureScore(pos, capture); got <= 0 {
		t.Errorf("captureScore for pawn-takes-knight = %d, want positive", got)
	}
}
