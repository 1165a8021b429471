package engine

import "github.com/FGiesemann/MaatChessEngine/internal/board"

// Evaluator maps a position to a Score from one side's perspective. It
// is the only place the terminal Mate value is emitted. Structurally it
// follows the material-plus-piece-square-table shape of CounterGo's
// pesto evaluator (pkg/eval/pesto), generalized to the feature-flag and
// mirrored-table contract named in the reference evaluator design.
type Evaluator struct {
	cfg EvaluatorConfig
}

func NewEvaluator(cfg EvaluatorConfig) Evaluator {
	return Evaluator{cfg: cfg}
}

// Evaluate scores pos from evaluatingSide's perspective.
func (e Evaluator) Evaluate(pos *board.Position, evaluatingSide board.Color) Score {
	switch pos.CheckState() {
	case board.Checkmate:
		if evaluatingSide == pos.SideToMove() {
			return -Mate
		}
		return Mate
	case board.Stalemate:
		return e.cfg.EmptyBoardValue
	}

	var score Score
	if e.cfg.UseMaterialBalance {
		score += e.materialBalance(pos, evaluatingSide)
	}
	if e.cfg.UsePieceSquareTables {
		score += e.pieceSquareBalance(pos, evaluatingSide)
	}
	return score
}

func (e Evaluator) materialBalance(pos *board.Position, side board.Color) Score {
	var total Score
	for pt := board.Pawn; pt <= board.King; pt++ {
		v := e.cfg.PieceValues[pt]
		total += v * Score(pos.PieceCount(pt, side))
		total -= v * Score(pos.PieceCount(pt, side.Other()))
	}
	return total
}

func (e Evaluator) pieceSquareBalance(pos *board.Position, side board.Color) Score {
	var total Score
	total += e.pieceSquareForSide(pos, side)
	total -= e.pieceSquareForSide(pos, side.Other())
	return total
}

func (e Evaluator) pieceSquareForSide(pos *board.Position, side board.Color) Score {
	var total Score
	for sq := board.Square(0); sq < 64; sq++ {
		pt, color, ok := pos.PieceAt(sq)
		if !ok || color != side || pt == board.NoPiece {
			continue
		}
		total += e.pieceOnSquareValue(pt, sq, color)
	}
	return total
}

// pieceOnSquareValue looks up a piece-square table entry, mirroring the
// square along ranks for Black since every table is written from
// White's side. The king interpolates between its middle-game and
// end-game tables by cfg.KingPhase.
func (e Evaluator) pieceOnSquareValue(pt board.PieceType, sq board.Square, color board.Color) Score {
	lookup := sq
	if color == board.Black {
		lookup = sq.Mirror()
	}
	if pt == board.King {
		mg := e.cfg.PST[board.King][lookup]
		eg := e.cfg.KingPSTEg[lookup]
		phase := e.cfg.KingPhase
		return Score(float64(mg)*phase + float64(eg)*(1-phase))
	}
	return e.cfg.PST[pt][lookup]
}

// captureScore models MVV-LVA: the value of the captured piece minus the
// value of the attacker, zero for non-captures.
func (e Evaluator) captureScore(pos *board.Position, m board.Move) Score {
	if !pos.IsCapture(m) {
		return 0
	}
	capturedType, _, ok := pos.PieceAt(m.To())
	if !ok {
		// En-passant: the captured pawn is not on the destination square.
		capturedType = board.Pawn
	}
	moverType, _, _ := pos.PieceAt(m.From())
	return e.cfg.PieceValues[capturedType] - e.cfg.PieceValues[moverType]
}

// promotionScore rewards promotions beyond the pawn's own value.
func (e Evaluator) promotionScore(m board.Move) Score {
	promoted := m.Promotion()
	if promoted == board.NoPiece {
		return 0
	}
	return e.cfg.PawnPromotionBonus + e.cfg.PieceValues[promoted] - e.cfg.PieceValues[board.Pawn]
}

// pieceMovementScore rewards moving into a better piece-square slot.
func (e Evaluator) pieceMovementScore(pos *board.Position, m board.Move) Score {
	moverType, color, ok := pos.PieceAt(m.From())
	if !ok {
		return 0
	}
	return e.pieceOnSquareValue(moverType, m.To(), color) - e.pieceOnSquareValue(moverType, m.From(), color)
}

// EvaluateMove is the move-ordering heuristic. It is used by the move
// orderer only, never by the search recursion directly.
func (e Evaluator) EvaluateMove(pos *board.Position, m board.Move) Score {
	var score Score
	if e.cfg.UseCaptureBonus {
		score += e.captureScore(pos, m)
	}
	if e.cfg.UsePromotionBonus {
		score += e.promotionScore(m)
	}
	score += e.pieceMovementScore(pos, m)
	return score
}
