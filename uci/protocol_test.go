package uci

import (
	"testing"
	"time"
)

func TestComputeTargetMovetimeMovetimeFastPath(t *testing.T) {
	got := computeTargetMovetime(goParams{movetime: 500 * time.Millisecond}, true)
	if got != 500*time.Millisecond {
		t.Errorf("got %v, want 500ms", got)
	}
}

func TestComputeTargetMovetimeInfiniteWhenNoClock(t *testing.T) {
	got := computeTargetMovetime(goParams{}, true)
	if got != 0 {
		t.Errorf("got %v, want 0 (infinite)", got)
	}
}

func TestComputeTargetMovetimeSuddenDeath(t *testing.T) {
	got := computeTargetMovetime(goParams{wtime: 40 * time.Second}, true)
	want := 40*time.Second/suddenDeathMoves - searchStopBuffer
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeTargetMovetimeNeverExceedsHalfClock(t *testing.T) {
	got := computeTargetMovetime(goParams{wtime: 2 * time.Second, movestogo: 1}, true)
	if got > time.Second {
		t.Errorf("got %v, want at most half the remaining clock", got)
	}
}
