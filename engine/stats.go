package engine

import (
	"sync/atomic"
	"time"
)

// SearchStats is the facade's published progress snapshot: monotonically
// increasing node/cutoff counts plus the most recent best move and depth.
// nodes and cutoffs are atomic so a control-thread reader never tears a
// concurrently-updated word; best_move and depth are written under the
// engine mutex at iteration boundaries and reach other code through the
// progress/ended callbacks or Engine.SearchStatsSnapshot (see engine.go),
// rather than through a seqlock over the whole struct.
type SearchStats struct {
	nodes   atomic.Uint64
	cutoffs atomic.Uint64

	Depth       Depth
	BestMove    EvaluatedMove
	ElapsedTime time.Duration
}

func (s *SearchStats) reset() {
	s.nodes.Store(0)
	s.cutoffs.Store(0)
	s.Depth = 0
	s.BestMove = EvaluatedMove{}
	s.ElapsedTime = 0
}

func (s *SearchStats) addNode()   { s.nodes.Add(1) }
func (s *SearchStats) addCutoff() { s.cutoffs.Add(1) }

func (s *SearchStats) Nodes() uint64   { return s.nodes.Load() }
func (s *SearchStats) Cutoffs() uint64 { return s.cutoffs.Load() }

// NPS is the derived nodes-per-second figure, zero while elapsed is zero.
func (s *SearchStats) NPS() uint64 {
	ms := s.ElapsedTime.Milliseconds()
	if ms <= 0 {
		return 0
	}
	return s.Nodes() * 1000 / uint64(ms)
}

// Snapshot copies the fields safe to read from another goroutine once a
// search has ended (is_searching() == false).
func (s *SearchStats) Snapshot() SearchStats {
	var out SearchStats
	out.nodes.Store(s.Nodes())
	out.cutoffs.Store(s.Cutoffs())
	out.Depth = s.Depth
	out.BestMove = s.BestMove
	out.ElapsedTime = s.ElapsedTime
	return out
}
