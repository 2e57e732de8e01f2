package xiangqi

// 落点是空格或敌子即可走
func (b *Board) canLand(side Side, to Square) bool {
	id := b.cells[to]
	return id == 0 || b.pieces[id].Side != side
}

// 车：横竖随便走，遇子停，敌子可吃
func genChariotMoves(b *Board, pc Piece, moves *[]Square) {
	row, col := pc.Square.Row(), pc.Square.Col()
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			to := Square(indexOf(r, c))
			id := b.cells[to]
			if id == 0 {
				*moves = append(*moves, to)
			} else {
				if b.pieces[id].Side != pc.Side {
					*moves = append(*moves, to)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：不吃子时同车；吃子必须隔且只隔一个炮架
func genCannonMoves(b *Board, pc Piece, moves *[]Square) {
	row, col := pc.Square.Row(), pc.Square.Col()
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]

		// 走子阶段：直到第一个棋子（炮架）
		for onBoard(r, c) {
			to := Square(indexOf(r, c))
			if b.cells[to] == 0 {
				*moves = append(*moves, to)
				r += d[0]
				c += d[1]
				continue
			}
			r += d[0]
			c += d[1]
			break
		}

		// 吃子阶段：越过炮架后的第一个子，敌子可吃
		for onBoard(r, c) {
			to := Square(indexOf(r, c))
			if id := b.cells[to]; id != 0 {
				if b.pieces[id].Side != pc.Side {
					*moves = append(*moves, to)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 相：田字，塞象眼不能走，不过河
func genElephantMoves(b *Board, pc Piece, moves *[]Square) {
	row, col := pc.Square.Row(), pc.Square.Col()
	for _, d := range bishopDirs {
		r, c := row+2*d[0], col+2*d[1]
		if !onBoard(r, c) || !inHomeHalf(pc.Side, r) {
			continue
		}
		if b.cells[indexOf(row+d[0], col+d[1])] != 0 {
			continue // 塞象眼
		}
		to := Square(indexOf(r, c))
		if b.canLand(pc.Side, to) {
			*moves = append(*moves, to)
		}
	}
}

// 士：九宫内斜走一格
func genAdvisorMoves(b *Board, pc Piece, moves *[]Square) {
	row, col := pc.Square.Row(), pc.Square.Col()
	for _, d := range bishopDirs {
		r, c := row+d[0], col+d[1]
		if !inPalace(pc.Side, r, c) {
			continue
		}
		to := Square(indexOf(r, c))
		if b.canLand(pc.Side, to) {
			*moves = append(*moves, to)
		}
	}
}

// 将：九宫内上下左右一格。飞将由合法性过滤处理
func genLordMoves(b *Board, pc Piece, moves *[]Square) {
	row, col := pc.Square.Row(), pc.Square.Col()
	for _, d := range rookDirs {
		r, c := row+d[0], col+d[1]
		if !inPalace(pc.Side, r, c) {
			continue
		}
		to := Square(indexOf(r, c))
		if b.canLand(pc.Side, to) {
			*moves = append(*moves, to)
		}
	}
}
