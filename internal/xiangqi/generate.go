package xiangqi

// 按棋子类型分派走法生成，结果追加到 moves
func genPieceMoves(b *Board, pc Piece, moves *[]Square) {
	switch pc.Kind {
	case Chariot:
		genChariotMoves(b, pc, moves)
	case Cannon:
		genCannonMoves(b, pc, moves)
	case Horse:
		genHorseMoves(b, pc, moves)
	case Elephant:
		genElephantMoves(b, pc, moves)
	case Advisor:
		genAdvisorMoves(b, pc, moves)
	case Lord:
		genLordMoves(b, pc, moves)
	case Soldier:
		genSoldierMoves(b, pc, moves)
	}
}

// PseudoLegalMoves 伪合法落点（不考虑自己将帅被将军）；棋子不存在返回 nil
func (b *Board) PseudoLegalMoves(id PieceID) []Square {
	pc, ok := b.Piece(id)
	if !ok {
		return nil
	}
	var moves []Square
	genPieceMoves(b, pc, &moves)
	return moves
}

// PseudoLegalMovesForSide 生成指定一方的伪合法走法
func (b *Board) PseudoLegalMovesForSide(side Side) []Move {
	var out []Move
	var targets []Square
	for _, pc := range b.PiecesOf(side) {
		targets = targets[:0]
		genPieceMoves(b, pc, &targets)
		for _, to := range targets {
			out = append(out, Move{From: pc.Square, To: to})
		}
	}
	return out
}
