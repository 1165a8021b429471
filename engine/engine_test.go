package engine

import (
	"context"
	"testing"
	"time"

	"github.com/FGiesemann/MaatChessEngine/internal/board"
)

func newTestEngine(t *testing.T, fen string) *Engine {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	e := New(DefaultConfig(), testLogger())
	e.SetPosition(pos)
	return e
}

// E1: Qa7-g7# is mate in 1 (the queen lands on a square the king
// guards, covering every flight square around the cornered black
// king); depth 2 must find a winning score with ply_to_mate == 1.
func TestMateInOne(t *testing.T) {
	e := newTestEngine(t, "7k/Q7/6K1/8/8/8/8/8 w - - 0 1")
	best := e.Search(context.Background(), StopParameters{MaxSearchDepth: 2})

	if !IsWinningScore(best.Score) {
		t.Fatalf("expected a winning score, got %d", best.Score)
	}
	if got := PlyToMate(best.Score); got != 1 {
		t.Errorf("PlyToMate = %d, want 1", got)
	}
}

// E2: side to move is already checkmated; static evaluation is -Mate
// from White's perspective (White is the side to move and the loser).
func TestStaticEvalOfCheckmate(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/8/6n1/8/6PP/1r4K1 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.CheckState() != board.Checkmate {
		t.Fatalf("expected checkmate, got %v", pos.CheckState())
	}
	eval := NewEvaluator(DefaultConfig().Evaluator)
	if got := eval.Evaluate(pos, board.White); got != -Mate {
		t.Errorf("Evaluate(white) = %d, want %d", got, -Mate)
	}
}

// E3: from the start position at depth 1, there are 20 legal moves and
// the search visits at least that many nodes with a finite (non-mate)
// score.
func TestStartPositionDepthOne(t *testing.T) {
	e := newTestEngine(t, board.StartposFEN())
	moves := e.Position().LegalMoves()
	if len(moves) != 20 {
		t.Fatalf("expected 20 legal moves at start position, got %d", len(moves))
	}

	best := e.Search(context.Background(), StopParameters{MaxSearchDepth: 1})
	if IsDecisiveScore(best.Score) {
		t.Errorf("expected a non-mate score, got %d", best.Score)
	}
	snapshot := e.SearchStatsSnapshot()
	if got := snapshot.Nodes(); got < 20 {
		t.Errorf("expected at least 20 nodes searched, got %d", got)
	}
}

// E4: mate-in-1 with iterative deepening enabled must break out right
// after the first iteration that discovers the mate.
func TestIterativeDeepeningBreaksOnMate(t *testing.T) {
	e := newTestEngine(t, "7k/5Q2/6K1/8/8/8/8/8 w - - 0 1")
	var depths []Depth
	e.OnSearchProgress(func(s SearchStats) { depths = append(depths, s.Depth) })

	best := e.Search(context.Background(), StopParameters{MaxSearchDepth: 3})
	if !IsWinningScore(best.Score) {
		t.Fatalf("expected winning score, got %d", best.Score)
	}
	if len(depths) == 0 {
		t.Fatal("expected at least one progress callback")
	}
	if last := depths[len(depths)-1]; last != 1 {
		t.Errorf("expected search to stop at depth 1 on finding mate, stopped at depth %d", last)
	}
}

// E5: stop_search makes is_searching() become false promptly, and
// on_search_ended fires exactly once.
func TestStopSearchIsResponsive(t *testing.T) {
	e := newTestEngine(t, board.StartposFEN())
	ended := make(chan EvaluatedMove, 1)
	e.OnSearchEnded(func(m EvaluatedMove) { ended <- m })

	e.StartSearch(StopParameters{MaxSearchTime: 50 * time.Millisecond})
	time.Sleep(5 * time.Millisecond)
	e.StopSearch()

	select {
	case <-ended:
	case <-time.After(time.Second):
		t.Fatal("on_search_ended did not fire within 1s of stop_search")
	}
	if e.IsSearching() {
		t.Error("expected IsSearching() to be false after the ended callback fired")
	}
	select {
	case <-ended:
		t.Error("on_search_ended fired more than once")
	case <-time.After(100 * time.Millisecond):
	}
}

// E6: calling start_search twice without waiting leaves only one worker
// running; the second call is a no-op.
func TestStartSearchIsIdempotentWhileRunning(t *testing.T) {
	e := newTestEngine(t, board.StartposFEN())
	e.StartSearch(StopParameters{MaxSearchTime: 100 * time.Millisecond})
	firstRunning := e.IsSearching()
	e.StartSearch(StopParameters{MaxSearchTime: 100 * time.Millisecond})

	if !firstRunning {
		t.Fatal("expected the engine to be searching after the first start_search")
	}
	e.StopSearch()
	time.Sleep(50 * time.Millisecond)
	if e.IsSearching() {
		t.Error("expected search to have ended")
	}
}

func TestConfigurationErrorOnFixedDepthZero(t *testing.T) {
	e := newTestEngine(t, board.StartposFEN())
	cfg := DefaultConfig()
	cfg.Search.IterativeDeepening = false
	e.SetConfig(cfg)

	ended := make(chan EvaluatedMove, 1)
	e.OnSearchEnded(func(m EvaluatedMove) { ended <- m })
	e.StartSearch(StopParameters{MaxSearchDepth: 0})

	select {
	case m := <-ended:
		if !m.Move.IsNull() {
			t.Errorf("expected a null move for the configuration-error case, got %v", m.Move)
		}
	case <-time.After(time.Second):
		t.Fatal("expected on_search_ended to fire for the configuration-error case")
	}
}
