package xiangqi

// AttackMap 对方全部伪合法落点的并集
func (b *Board) AttackMap(bySide Side) [NumSquares]bool {
	var attacked [NumSquares]bool
	var targets []Square
	for id := 1; id <= b.n; id++ {
		if !b.alive[id] || b.pieces[id].Side != bySide {
			continue
		}
		targets = targets[:0]
		genPieceMoves(b, b.pieces[id], &targets)
		for _, to := range targets {
			attacked[to] = true
		}
	}
	return attacked
}

// IsAttacked 判断 sq 是否被 bySide 攻击：只要对方任何一个子能伪合法地走到这里
func (b *Board) IsAttacked(sq Square, bySide Side) bool {
	if !sq.Valid() {
		return false
	}
	var targets []Square
	for id := 1; id <= b.n; id++ {
		if !b.alive[id] || b.pieces[id].Side != bySide {
			continue
		}
		targets = targets[:0]
		genPieceMoves(b, b.pieces[id], &targets)
		for _, to := range targets {
			if to == sq {
				return true
			}
		}
	}
	return false
}

// InCheck 判断 side 的将帅是否被将军
func (b *Board) InCheck(side Side) bool {
	lord := b.mustLord(side)
	return b.IsAttacked(lord.Square, side.Opponent())
}

// Checkers 正在将军的敌子，按 ID 顺序
func (b *Board) Checkers(side Side) []Piece {
	lord := b.mustLord(side)
	var out []Piece
	var targets []Square
	for _, pc := range b.PiecesOf(side.Opponent()) {
		targets = targets[:0]
		genPieceMoves(b, pc, &targets)
		for _, to := range targets {
			if to == lord.Square {
				out = append(out, pc)
				break
			}
		}
	}
	return out
}
