package engine

import "github.com/FGiesemann/MaatChessEngine/internal/board"

// defaultPieceValues returns the classical material values spec.md's
// test scenarios are written against.
func defaultPieceValues() [board.King + 1]Score {
	var v [board.King + 1]Score
	v[board.Pawn] = 100
	v[board.Knight] = 300
	v[board.Bishop] = 300
	v[board.Rook] = 500
	v[board.Queen] = 900
	v[board.King] = 0
	return v
}

// tableFromRanks lays out a hand-written 8x8 table given rank 8 first
// (the top row of a board printed from White's side) down to rank 1, the
// conventional way piece-square tables are written in engine source.
func tableFromRanks(ranks [8][8]int) [64]Score {
	var t [64]Score
	for i := 0; i < 8; i++ {
		rank := 7 - i // ranks[0] is rank 8
		for file := 0; file < 8; file++ {
			t[rank*8+file] = Score(ranks[i][file])
		}
	}
	return t
}

func defaultPST() [board.King + 1][64]Score {
	var t [board.King + 1][64]Score
	t[board.Pawn] = tableFromRanks([8][8]int{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{50, 50, 50, 50, 50, 50, 50, 50},
		{10, 10, 20, 30, 30, 20, 10, 10},
		{5, 5, 10, 25, 25, 10, 5, 5},
		{0, 0, 0, 20, 20, 0, 0, 0},
		{5, -5, -10, 0, 0, -10, -5, 5},
		{5, 10, 10, -20, -20, 10, 10, 5},
		{0, 0, 0, 0, 0, 0, 0, 0},
	})
	t[board.Knight] = tableFromRanks([8][8]int{
		{-50, -40, -30, -30, -30, -30, -40, -50},
		{-40, -20, 0, 0, 0, 0, -20, -40},
		{-30, 0, 10, 15, 15, 10, 0, -30},
		{-30, 5, 15, 20, 20, 15, 5, -30},
		{-30, 0, 15, 20, 20, 15, 0, -30},
		{-30, 5, 10, 15, 15, 10, 5, -30},
		{-40, -20, 0, 5, 5, 0, -20, -40},
		{-50, -40, -30, -30, -30, -30, -40, -50},
	})
	t[board.Bishop] = tableFromRanks([8][8]int{
		{-20, -10, -10, -10, -10, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 5, 10, 10, 5, 0, -10},
		{-10, 5, 5, 10, 10, 5, 5, -10},
		{-10, 0, 10, 10, 10, 10, 0, -10},
		{-10, 10, 10, 10, 10, 10, 10, -10},
		{-10, 5, 0, 0, 0, 0, 5, -10},
		{-20, -10, -10, -10, -10, -10, -10, -20},
	})
	t[board.Rook] = tableFromRanks([8][8]int{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{5, 10, 10, 10, 10, 10, 10, 5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{-5, 0, 0, 0, 0, 0, 0, -5},
		{0, 0, 0, 5, 5, 0, 0, 0},
	})
	t[board.Queen] = tableFromRanks([8][8]int{
		{-20, -10, -10, -5, -5, -10, -10, -20},
		{-10, 0, 0, 0, 0, 0, 0, -10},
		{-10, 0, 5, 5, 5, 5, 0, -10},
		{-5, 0, 5, 5, 5, 5, 0, -5},
		{0, 0, 5, 5, 5, 5, 0, -5},
		{-10, 5, 5, 5, 5, 5, 0, -10},
		{-10, 0, 5, 0, 0, 0, 0, -10},
		{-20, -10, -10, -5, -5, -10, -10, -20},
	})
	t[board.King] = tableFromRanks([8][8]int{
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-30, -40, -40, -50, -50, -40, -40, -30},
		{-20, -30, -30, -40, -40, -30, -30, -20},
		{-10, -20, -20, -20, -20, -20, -20, -10},
		{20, 20, 0, 0, 0, 0, 20, 20},
		{20, 30, 10, 0, 0, 10, 30, 20},
	})
	return t
}

func defaultKingEndgamePST() [64]Score {
	return tableFromRanks([8][8]int{
		{-50, -40, -30, -20, -20, -30, -40, -50},
		{-30, -20, -10, 0, 0, -10, -20, -30},
		{-30, -10, 20, 30, 30, 20, -10, -30},
		{-30, -10, 30, 40, 40, 30, -10, -30},
		{-30, -10, 30, 40, 40, 30, -10, -30},
		{-30, -10, 20, 30, 30, 20, -10, -30},
		{-30, -30, 0, 0, 0, 0, -30, -30},
		{-50, -30, -30, -30, -30, -30, -30, -50},
	})
}
