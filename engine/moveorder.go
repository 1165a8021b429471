package engine

import (
	"sort"

	"github.com/FGiesemann/MaatChessEngine/internal/board"
)

// MoveOrderer sorts legal moves by the evaluator's move heuristic and,
// when configured, promotes a supplied PV move to the front.
type MoveOrderer struct {
	eval Evaluator
}

func NewMoveOrderer(eval Evaluator) MoveOrderer {
	return MoveOrderer{eval: eval}
}

// Order returns moves ordered by descending heuristic score, with pvMove
// (if non-null and present in moves) rotated to the front. moves is
// sorted in place and returned for convenience.
func (o MoveOrderer) Order(pos *board.Position, moves []board.Move, pvMove board.Move, useMoveOrdering, searchPVFirst bool) []board.Move {
	if !useMoveOrdering {
		return moves
	}

	type scoredMove struct {
		move  board.Move
		score Score
	}
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: o.eval.EvaluateMove(pos, m)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	for i, sm := range scored {
		moves[i] = sm.move
	}

	if searchPVFirst && !pvMove.IsNull() {
		promotePVMove(moves, pvMove)
	}
	return moves
}

// promotePVMove rotates pvMove to the front of moves, preserving the
// relative order of everything else, the way spec.md §4.3 requires.
func promotePVMove(moves []board.Move, pvMove board.Move) {
	for i, m := range moves {
		if m == pvMove {
			if i == 0 {
				return
			}
			copy(moves[1:i+1], moves[0:i])
			moves[0] = pvMove
			return
		}
	}
}
