package xiangqi

// 兵：向前一格；过河后可左右一格；永不后退
func genSoldierMoves(b *Board, pc Piece, moves *[]Square) {
	row, col := pc.Square.Row(), pc.Square.Col()

	if r := row + soldierDir(pc.Side); onBoard(r, col) {
		to := Square(indexOf(r, col))
		if b.canLand(pc.Side, to) {
			*moves = append(*moves, to)
		}
	}

	if !crossedRiver(pc.Side, row) {
		return
	}
	for _, dc := range [2]int{-1, +1} {
		c := col + dc
		if !onBoard(row, c) {
			continue
		}
		to := Square(indexOf(row, c))
		if b.canLand(pc.Side, to) {
			*moves = append(*moves, to)
		}
	}
}
