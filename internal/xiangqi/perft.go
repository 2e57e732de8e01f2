package xiangqi

// Perft 数出 depth 层内的合法走法叶子数，用来核对走法生成
func (b *Board) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMovesForSide(b.turn)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := b.Clone()
		next.ApplyMove(m)
		nodes += next.Perft(depth - 1)
	}
	return nodes
}
