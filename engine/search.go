package engine

import (
	"sync/atomic"
	"time"

	"github.com/FGiesemann/MaatChessEngine/internal/board"
)

// StopCheckInterval bounds how often the time criterion reads the clock;
// the stop flag and node-count criteria are cheap enough to check on
// every call.
const StopCheckInterval = 1024

// searcher holds everything one search run needs: it is created fresh by
// Engine.search for each call and never outlives it.
type searcher struct {
	pos     *board.Position
	eval    Evaluator
	orderer MoveOrderer
	cfg     Config
	stats   *SearchStats

	stopFlag   *atomic.Bool
	stopParams StopParameters
	startTime  time.Time

	nodesSinceTimeCheck uint64
}

// checkStop is the should_stop/check_stop contract of spec.md §4.4.6: the
// stop flag and node-count criteria are checked unconditionally (cheap
// path); the time criterion is only sampled every StopCheckInterval
// calls so the hot recursive path does not read the clock on every node.
func (s *searcher) checkStop() bool {
	if s.stopFlag.Load() {
		return true
	}
	if s.stopParams.MaxSearchDepth > 0 && s.stats.Depth > s.stopParams.MaxSearchDepth {
		return true
	}
	if s.stopParams.MaxSearchNodes > 0 && s.stats.Nodes() > s.stopParams.MaxSearchNodes {
		return true
	}
	s.nodesSinceTimeCheck++
	if s.nodesSinceTimeCheck < StopCheckInterval {
		return false
	}
	s.nodesSinceTimeCheck = 0
	if s.stopParams.MaxSearchTime > 0 && time.Since(s.startTime) > s.stopParams.MaxSearchTime {
		return true
	}
	return false
}

// negamax implements spec.md §4.4.1/§4.4.2: f(depth, bounds) -> Score,
// the value of the position from the perspective of the side to move.
// The bool result reports whether the recursion was aborted by a stop
// request; when true the returned score is "last known best at this
// node", not a final value, and callers must not trust it as anything
// more than that.
func (s *searcher) negamax(depth Depth, bounds Bounds) (Score, bool) {
	if depth == ZeroDepth {
		s.stats.addNode()
		return s.eval.Evaluate(s.pos, s.pos.SideToMove()), false
	}

	moves := s.pos.LegalMoves()
	if len(moves) == 0 {
		s.stats.addNode()
		return s.eval.Evaluate(s.pos, s.pos.SideToMove()), false
	}
	moves = s.orderer.Order(s.pos, moves, board.Move{}, s.cfg.Minimax.UseMoveOrdering, false)

	best := NegInf
	for _, m := range moves {
		if s.checkStop() {
			return best, true
		}

		value, aborted := s.makeAndSearch(m, depth, bounds)
		if aborted {
			return best, true
		}

		if value > best {
			best = value
		}
		if best > bounds.Alpha {
			bounds.Alpha = best
		}
		if s.cfg.Minimax.UseAlphaBetaPruning && bounds.Beta <= bounds.Alpha {
			s.stats.addCutoff()
			break
		}
	}
	s.stats.addNode()
	return best, false
}

// makeAndSearch applies m, recurses, and guarantees the matching
// unmake_move runs on every exit path - including an aborted child -
// before returning, which is the position-stack invariant spec.md
// §4.4.4 requires of cooperative cancellation.
func (s *searcher) makeAndSearch(m board.Move, depth Depth, bounds Bounds) (value Score, aborted bool) {
	s.pos.MakeMove(m)
	defer s.pos.UnmakeMove()

	childValue, childAborted := s.negamax(depth-Step, bounds.Swap())
	return adjustMateDistance(-childValue), childAborted
}

// searchRoot implements spec.md §4.4.3: identical to an interior node
// except it returns the best move alongside its score, starts from the
// full (-Inf, Inf) window, and consults the previous iteration's PV move
// for ordering.
func (s *searcher) searchRoot(depth Depth, pvMove board.Move) (EvaluatedMove, bool) {
	bounds := Bounds{Alpha: NegInf, Beta: Inf}

	moves := s.pos.LegalMoves()
	if len(moves) == 0 {
		return EvaluatedMove{Score: s.eval.Evaluate(s.pos, s.pos.SideToMove())}, false
	}
	moves = s.orderer.Order(s.pos, moves, pvMove, s.cfg.Minimax.UseMoveOrdering, s.cfg.Search.SearchPVFirst)

	best := EvaluatedMove{Move: moves[0], Score: NegInf}
	for _, m := range moves {
		if s.checkStop() {
			return best, true
		}

		value, aborted := s.makeAndSearch(m, depth, bounds)
		if aborted {
			return best, true
		}

		if value > best.Score {
			best = EvaluatedMove{Move: m, Score: value}
		}
		if value > bounds.Alpha {
			bounds.Alpha = value
		}
	}
	s.stats.addNode()
	return best, false
}
