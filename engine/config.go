package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/FGiesemann/MaatChessEngine/internal/board"
)

// MinimaxConfig toggles the recursion's core pruning behaviour.
type MinimaxConfig struct {
	UseAlphaBetaPruning bool `yaml:"use_alpha_beta_pruning"`
	UseMoveOrdering     bool `yaml:"use_move_ordering"`
}

// SearchConfig toggles the iterative-deepening driver.
type SearchConfig struct {
	IterativeDeepening bool `yaml:"iterative_deepening"`
	SearchPVFirst      bool `yaml:"search_pv_first"`
}

// EvaluatorConfig carries every tunable of the static evaluator: piece
// values, piece-square tables (White-oriented, mirrored for Black), and
// the feature flags that let any term be switched off.
type EvaluatorConfig struct {
	PieceValues [board.King + 1]Score `yaml:"-"`

	// PST holds one 64-entry table per piece type, indexed [PieceType][Square].
	// The king has separate middle-game and end-game tables.
	PST       [board.King + 1][64]Score `yaml:"-"`
	KingPSTEg [64]Score                `yaml:"-"`
	// KingPhase interpolates between KingPSTEg (0.0) and PST[King] (1.0).
	// spec.md §9 notes the source never updates this during a game;
	// a constant value is a faithful choice.
	KingPhase float64 `yaml:"king_phase"`

	PawnPromotionBonus Score `yaml:"pawn_promotion_bonus"`
	EmptyBoardValue    Score `yaml:"empty_board_value"`

	UseMaterialBalance    bool `yaml:"use_material_balance"`
	UsePieceSquareTables  bool `yaml:"use_piece_square_tables"`
	UsePromotionBonus     bool `yaml:"use_promotion_bonus"`
	UseCaptureBonus       bool `yaml:"use_capture_bonus"`
}

// Config is the full engine configuration.
type Config struct {
	Minimax   MinimaxConfig    `yaml:"minimax"`
	Search    SearchConfig     `yaml:"search"`
	Evaluator EvaluatorConfig  `yaml:"evaluator"`
}

// yamlConfig mirrors Config but with plain fields yaml.v3 can populate;
// the PieceValues/PST arrays are filled in from DefaultConfig defaults
// after decoding rather than round-tripped through YAML, matching the
// reference design's in-memory-only piece-square tables.
type yamlConfig struct {
	Minimax   MinimaxConfig `yaml:"minimax"`
	Search    SearchConfig  `yaml:"search"`
	Evaluator struct {
		PawnPromotionBonus   Score   `yaml:"pawn_promotion_bonus"`
		EmptyBoardValue      Score   `yaml:"empty_board_value"`
		KingPhase            float64 `yaml:"king_phase"`
		UseMaterialBalance   bool    `yaml:"use_material_balance"`
		UsePieceSquareTables bool    `yaml:"use_piece_square_tables"`
		UsePromotionBonus    bool    `yaml:"use_promotion_bonus"`
		UseCaptureBonus      bool    `yaml:"use_capture_bonus"`
	} `yaml:"evaluator"`
}

// DefaultConfig returns the configuration spec.md's E1-E6 scenarios are
// defined against: pawn=100, knight/bishop=300, rook=500, queen=900,
// king=0, every feature flag on, iterative deepening and alpha-beta on.
func DefaultConfig() Config {
	c := Config{
		Minimax: MinimaxConfig{UseAlphaBetaPruning: true, UseMoveOrdering: true},
		Search:  SearchConfig{IterativeDeepening: true, SearchPVFirst: true},
		Evaluator: EvaluatorConfig{
			KingPhase:            1.0,
			PawnPromotionBonus:   800,
			EmptyBoardValue:      0,
			UseMaterialBalance:   true,
			UsePieceSquareTables: true,
			UsePromotionBonus:    true,
			UseCaptureBonus:      true,
		},
	}
	c.Evaluator.PieceValues = defaultPieceValues()
	c.Evaluator.PST = defaultPST()
	c.Evaluator.KingPSTEg = defaultKingEndgamePST()
	return c
}

// LoadConfig reads a YAML config file, overlaying it onto DefaultConfig
// so piece values and piece-square tables - which are not meant to be
// hand-edited in the common case - are always present.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: reading config %q: %w", path, err)
	}
	var raw yamlConfig
	cfg := DefaultConfig()
	raw.Minimax = cfg.Minimax
	raw.Search = cfg.Search
	raw.Evaluator.PawnPromotionBonus = cfg.Evaluator.PawnPromotionBonus
	raw.Evaluator.EmptyBoardValue = cfg.Evaluator.EmptyBoardValue
	raw.Evaluator.KingPhase = cfg.Evaluator.KingPhase
	raw.Evaluator.UseMaterialBalance = cfg.Evaluator.UseMaterialBalance
	raw.Evaluator.UsePieceSquareTables = cfg.Evaluator.UsePieceSquareTables
	raw.Evaluator.UsePromotionBonus = cfg.Evaluator.UsePromotionBonus
	raw.Evaluator.UseCaptureBonus = cfg.Evaluator.UseCaptureBonus

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("engine: parsing config %q: %w", path, err)
	}

	cfg.Minimax = raw.Minimax
	cfg.Search = raw.Search
	cfg.Evaluator.PawnPromotionBonus = raw.Evaluator.PawnPromotionBonus
	cfg.Evaluator.EmptyBoardValue = raw.Evaluator.EmptyBoardValue
	cfg.Evaluator.KingPhase = raw.Evaluator.KingPhase
	cfg.Evaluator.UseMaterialBalance = raw.Evaluator.UseMaterialBalance
	cfg.Evaluator.UsePieceSquareTables = raw.Evaluator.UsePieceSquareTables
	cfg.Evaluator.UsePromotionBonus = raw.Evaluator.UsePromotionBonus
	cfg.Evaluator.UseCaptureBonus = raw.Evaluator.UseCaptureBonus
	return cfg, nil
}

// StopParameters bounds a single search run. Zero in any field means
// "unlimited" for that criterion.
type StopParameters struct {
	MaxSearchTime  time.Duration
	MaxSearchDepth Depth
	MaxSearchNodes uint64
}
