package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "maat.yaml")
	contents := `
minimax:
  use_alpha_beta_pruning: false
  use_move_ordering: true
search:
  iterative_deepening: false
  search_pv_first: true
evaluator:
  use_capture_bonus: false
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Minimax.UseAlphaBetaPruning {
		t.Error("expected use_alpha_beta_pruning to be overridden to false")
	}
	if cfg.Search.IterativeDeepening {
		t.Error("expected iterative_deepening to be overridden to false")
	}
	if cfg.Evaluator.UseCaptureBonus {
		t.Error("expected use_capture_bonus to be overridden to false")
	}
	// Untouched defaults must still come through, including the
	// piece values the YAML document never mentions.
	if cfg.Evaluator.PieceValues[3] == 0 {
		t.Error("expected default piece values to survive a partial override")
	}
}

func TestDefaultConfigMatchesScenarioValues(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Evaluator.PieceValues[1] != 100 {
		t.Errorf("pawn value = %d, want 100", cfg.Evaluator.PieceValues[1])
	}
	if cfg.Evaluator.PieceValues[5] != 900 {
		t.Errorf("queen value = %d, want 900", cfg.Evaluator.PieceValues[5])
	}
}
