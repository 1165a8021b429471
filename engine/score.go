package engine

import "github.com/FGiesemann/MaatChessEngine/internal/board"

// Score is a fixed-point evaluation from the perspective of the side to
// move. It mirrors the StrongType<int16_t> wrapper the reference design
// uses for Score/Depth, kept here as plain named integer types since Go
// has no zero-cost strong-typedef facility.
type Score int32

// Depth is a remaining search horizon, not an elapsed ply count.
type Depth int32

const (
	// Inf bounds every Score computed by the search; pruning keeps
	// working values within [-Inf, Inf] so arithmetic never saturates.
	Inf Score = 30001
	// Mate is the terminal score magnitude emitted only by the
	// evaluator's checkmate detection.
	Mate Score = 30000
	// MaxMateDepth is the largest ply-distance encodable as a mate score.
	MaxMateDepth Depth = 1000

	// NegInf is -Inf.
	NegInf Score = -Inf

	// Step is the unit of search-depth advancement.
	Step Depth = 1
	// ZeroDepth is the depth at which the search stops recursing.
	ZeroDepth Depth = 0
)

// IsWinningScore reports whether s encodes "mate in Mate-s plies for the side
// whose perspective s is computed from".
func IsWinningScore(s Score) bool {
	return s >= Mate-Score(MaxMateDepth)
}

// IsLosingScore is the mirror of IsWinningScore.
func IsLosingScore(s Score) bool {
	return s <= -(Mate - Score(MaxMateDepth))
}

// IsDecisiveScore reports whether s is a forced win or loss.
func IsDecisiveScore(s Score) bool {
	return IsWinningScore(s) || IsLosingScore(s)
}

// PlyToMate converts a decisive score into the number of plies to mate.
func PlyToMate(s Score) Depth {
	if s < 0 {
		return Depth(Mate + s)
	}
	return Depth(Mate - s)
}

// adjustMateDistance is applied immediately after negating a child's
// score on the way back up the recursion. Without it, alpha-beta cannot
// distinguish a faster mate from a slower mate of equal score and may
// prune the faster one away.
func adjustMateDistance(s Score) Score {
	switch {
	case IsWinningScore(s):
		return s - Score(Step)
	case IsLosingScore(s):
		return s + Score(Step)
	default:
		return s
	}
}

// Bounds is an alpha-beta window. Swap produces the window the child
// negamax call sees: (-beta, -alpha).
type Bounds struct {
	Alpha, Beta Score
}

func (b Bounds) Swap() Bounds {
	return Bounds{Alpha: -b.Beta, Beta: -b.Alpha}
}

// EvaluatedMove pairs a move with the score it was assigned.
type EvaluatedMove struct {
	Move  board.Move
	Score Score
}
