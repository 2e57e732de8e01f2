package xiangqi

// 马 8 种“日”字：终点 + 马腿
var horseLegMoves = [8]struct {
	Dr, Dc int // 终点
	Br, Bc int // 马腿
}{
	{-2, -1, -1, 0},
	{-2, +1, -1, 0},
	{-1, -2, 0, -1},
	{-1, +2, 0, +1},
	{+1, -2, 0, -1},
	{+1, +2, 0, +1},
	{+2, -1, +1, 0},
	{+2, +1, +1, 0},
}

func genHorseMoves(b *Board, pc Piece, moves *[]Square) {
	row, col := pc.Square.Row(), pc.Square.Col()
	for _, m := range horseLegMoves {
		r, c := row+m.Dr, col+m.Dc
		if !onBoard(r, c) {
			continue
		}
		if b.cells[indexOf(row+m.Br, col+m.Bc)] != 0 {
			continue // 憋马腿
		}
		to := Square(indexOf(r, c))
		if b.canLand(pc.Side, to) {
			*moves = append(*moves, to)
		}
	}
}
