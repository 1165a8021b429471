package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/FGiesemann/MaatChessEngine/internal/board"
)

// ProgressCallback is fired once per completed iteration of a search.
type ProgressCallback func(SearchStats)

// EndedCallback is fired exactly once at the end of a search, whether it
// ended by natural termination, a found mate, or an external stop.
type EndedCallback func(EvaluatedMove)

// Engine is the C5 facade: it owns the position, configuration and a
// single search worker, and exposes the start/stop/progress contract
// spec.md §4.1 and §5 describe. The worker lifecycle is guarded by a
// weighted semaphore of size 1 rather than a second boolean flag, so
// start_search's "idempotent when running, otherwise join-then-spawn"
// behaviour is a single try-acquire instead of a race between two
// independently-read/written atomics - the same technique CounterGo
// uses golang.org/x/sync for elsewhere to bound concurrency.
type Engine struct {
	log zerolog.Logger

	mu       sync.Mutex
	cfg      Config
	pos      *board.Position
	bestMove EvaluatedMove
	stats    SearchStats

	running    *semaphore.Weighted
	searching  atomic.Bool
	stopFlag   atomic.Bool
	workerDone chan struct{}

	progressCb EndedCallbackHolder
	endedCb    EndedCallbackHolder
}

// EndedCallbackHolder lets callbacks be installed and invoked without
// exposing the underlying field to a data race; it is intentionally
// tiny, matching spec.md §9's "avoid global state" guidance by keeping
// callback storage a plain per-engine value rather than a singleton.
type EndedCallbackHolder struct {
	mu sync.Mutex
	fn any
}

func (h *EndedCallbackHolder) setProgress(fn ProgressCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fn = fn
}

func (h *EndedCallbackHolder) setEnded(fn EndedCallback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fn = fn
}

func (h *EndedCallbackHolder) callProgress(s SearchStats) {
	h.mu.Lock()
	fn, _ := h.fn.(ProgressCallback)
	h.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

func (h *EndedCallbackHolder) callEnded(m EvaluatedMove) {
	h.mu.Lock()
	fn, _ := h.fn.(EndedCallback)
	h.mu.Unlock()
	if fn != nil {
		fn(m)
	}
}

// New builds an Engine at the standard starting position with cfg. log's
// zero value is a valid, silent logger.
func New(cfg Config, log zerolog.Logger) *Engine {
	e := &Engine{
		log:     log,
		cfg:     cfg,
		pos:     board.NewPosition(),
		running: semaphore.NewWeighted(1),
	}
	return e
}

// SetPosition replaces the current position. Calling this while a search
// is running disturbs that search; the caller is responsible for
// avoiding that, per spec.md §4.1.
func (e *Engine) SetPosition(p *board.Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos = p
}

// PlayMove applies m to the current position.
func (e *Engine) PlayMove(m board.Move) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos.MakeMove(m)
}

// NewGame resets the position to the standard starting position.
func (e *Engine) NewGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos = board.NewPosition()
}

// Position returns the engine's current position. Not safe to mutate
// concurrently with a running search.
func (e *Engine) Position() *board.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// SetConfig replaces the configuration. Disturbs a running search; the
// caller's responsibility, per spec.md §4.1.
func (e *Engine) SetConfig(cfg Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
}

// LoadConfigFile loads and installs configuration from a YAML file.
func (e *Engine) LoadConfigFile(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	e.SetConfig(cfg)
	return nil
}

func (e *Engine) OnSearchProgress(cb ProgressCallback) { e.progressCb.setProgress(cb) }
func (e *Engine) OnSearchEnded(cb EndedCallback)       { e.endedCb.setEnded(cb) }

// IsSearching reports the current worker status.
func (e *Engine) IsSearching() bool { return e.searching.Load() }

// BestMove returns the last completed best move. Not safe to call while
// IsSearching() is true.
func (e *Engine) BestMove() EvaluatedMove {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bestMove
}

// SearchStatsSnapshot returns a snapshot of the current search statistics.
func (e *Engine) SearchStatsSnapshot() SearchStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.Snapshot()
}

// StartSearch is idempotent while a search is running: if one is already
// active it returns immediately with no effect. Otherwise it joins any
// previous worker, clears the stop flag, and spawns a new worker running
// search(stopParams).
func (e *Engine) StartSearch(stopParams StopParameters) {
	if !e.running.TryAcquire(1) {
		e.log.Debug().Msg("start_search ignored: a search is already running")
		return
	}

	if e.workerDone != nil {
		<-e.workerDone
	}

	e.stopFlag.Store(false)
	e.searching.Store(true)
	done := make(chan struct{})
	e.workerDone = done

	go func() {
		defer close(done)
		defer e.running.Release(1)

		e.runSearchRecovering(stopParams)

		// is_searching() must already read false by the time
		// on_search_ended fires (spec.md §5's ordering guarantee), so
		// the flag is cleared before the callback fires.
		e.searching.Store(false)

		e.mu.Lock()
		final := e.bestMove
		e.mu.Unlock()
		e.endedCb.callEnded(final)
	}()
}

// runSearchRecovering runs search and turns an internal-inconsistency
// panic (spec.md §7's "internal inconsistency" taxonomy entry) into a
// logged failure instead of crashing the process; either way the caller
// fires on_search_ended with whatever best move is on record.
func (e *Engine) runSearchRecovering(stopParams StopParameters) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("search worker recovered from panic")
		}
	}()
	e.search(stopParams)
}

// StopSearch requests cancellation. Has no effect if idle. Does not
// block; the worker observes the flag cooperatively.
func (e *Engine) StopSearch() {
	e.stopFlag.Store(true)
}

// Search runs the blocking variant described in spec.md §4.1/§4.4: it
// drives iterative deepening to completion (or cancellation) and returns
// the final best move, without going through the worker-goroutine
// machinery StartSearch uses.
func (e *Engine) Search(ctx context.Context, stopParams StopParameters) EvaluatedMove {
	if !e.running.TryAcquire(1) {
		return e.BestMove()
	}
	e.stopFlag.Store(false)
	e.searching.Store(true)
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.runSearchRecovering(stopParams)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		e.stopFlag.Store(true)
		<-done
	}
	e.searching.Store(false)
	e.running.Release(1)

	final := e.BestMove()
	e.endedCb.callEnded(final)
	return final
}

// search is the iterative-deepening driver of spec.md §4.4.5, invoked by
// the facade on the worker goroutine (or on the goroutine Search starts
// and waits on).
func (e *Engine) search(stopParams StopParameters) {
	e.mu.Lock()
	cfg := e.cfg
	pos := e.pos.Clone()
	e.stats.reset()
	e.bestMove = EvaluatedMove{}
	e.mu.Unlock()

	eval := NewEvaluator(cfg.Evaluator)
	s := &searcher{
		pos:        pos,
		eval:       eval,
		orderer:    NewMoveOrderer(eval),
		cfg:        cfg,
		stats:      &e.stats,
		stopFlag:   &e.stopFlag,
		stopParams: stopParams,
		startTime:  time.Now(),
	}

	startDepth := Depth(1)
	if !cfg.Search.IterativeDeepening {
		if stopParams.MaxSearchDepth <= 0 {
			// spec.md §9's open question: iterative_deepening=false with
			// no fixed depth is a configuration error, not "search depth
			// zero". Report it and end the search with no move found.
			e.log.Error().Msg("search: iterative_deepening is false but max_search_depth is unset")
			e.mu.Lock()
			e.bestMove = EvaluatedMove{}
			e.mu.Unlock()
			return
		}
		startDepth = stopParams.MaxSearchDepth
	}

	var last EvaluatedMove
	depth := startDepth
	for {
		if s.checkStop() {
			break
		}

		candidate, aborted := s.searchRoot(depth, last.Move)
		if aborted && depth == startDepth {
			// Not even the first iteration finished: report an empty
			// best move, per the policy spec.md §4.4.6 asks
			// implementations to document.
			break
		}
		if aborted {
			break
		}

		last = candidate
		e.mu.Lock()
		e.stats.Depth = depth
		e.stats.BestMove = last
		e.stats.ElapsedTime = time.Since(s.startTime)
		e.bestMove = last
		snapshot := e.stats.Snapshot()
		e.mu.Unlock()

		e.log.Debug().
			Int("depth", int(depth)).
			Uint64("nodes", snapshot.Nodes()).
			Int("score", int(candidate.Score)).
			Msg("search iteration complete")
		e.progressCb.callProgress(snapshot)

		if IsWinningScore(candidate.Score) {
			break
		}
		if !cfg.Search.IterativeDeepening {
			break
		}
		depth += Step
	}
}
