package xiangqi

type Status int8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// LegalMoves 过滤掉送将、飞将、吃将帅的伪合法落点。
// 每个候选都在克隆盘上模拟一遍，再看己方将帅是否被攻击。
func (b *Board) LegalMoves(id PieceID) []Square {
	pc, ok := b.Piece(id)
	if !ok {
		return nil
	}
	var pseudo []Square
	genPieceMoves(b, pc, &pseudo)
	out := make([]Square, 0, len(pseudo))
	for _, to := range pseudo {
		if b.isLegal(pc, to) {
			out = append(out, to)
		}
	}
	return out
}

func (b *Board) isLegal(pc Piece, to Square) bool {
	// 将帅永远不会被吃，能吃将的走法不提供给玩家
	if target, ok := b.PieceAt(to); ok && target.Kind == Lord {
		return false
	}

	sim := b.Clone()
	sim.ApplyMove(Move{From: pc.Square, To: to})
	if sim.LordFacingLord() {
		return false
	}
	lord := sim.mustLord(pc.Side)
	return !sim.IsAttacked(lord.Square, pc.Side.Opponent())
}

// IsLegalMove 判断一步具体走法对轮走方是否合法
func (b *Board) IsLegalMove(m Move) bool {
	pc, ok := b.PieceAt(m.From)
	if !ok || pc.Side != b.turn {
		return false
	}
	for _, to := range b.LegalMoves(pc.ID) {
		if to == m.To {
			return true
		}
	}
	return false
}

// LegalMovesForSide 一方全部合法走法，按棋子 ID、生成顺序排列
func (b *Board) LegalMovesForSide(side Side) []Move {
	var out []Move
	for _, pc := range b.PiecesOf(side) {
		for _, to := range b.LegalMoves(pc.ID) {
			out = append(out, Move{From: pc.Square, To: to})
		}
	}
	return out
}

func (b *Board) LegalMoveCount(side Side) int {
	count := 0
	for _, pc := range b.PiecesOf(side) {
		count += len(b.LegalMoves(pc.ID))
	}
	return count
}

// HasLegalMove 找到一步就返回，判终局时用
func (b *Board) HasLegalMove(side Side) bool {
	var pseudo []Square
	for _, pc := range b.PiecesOf(side) {
		pseudo = pseudo[:0]
		genPieceMoves(b, pc, &pseudo)
		for _, to := range pseudo {
			if b.isLegal(pc, to) {
				return true
			}
		}
	}
	return false
}

// Status 轮走方无子可动时：被将军为将死，否则为困毙
func (b *Board) Status() Status {
	if b.HasLegalMove(b.turn) {
		return Ongoing
	}
	if b.InCheck(b.turn) {
		return Checkmate
	}
	return Stalemate
}
