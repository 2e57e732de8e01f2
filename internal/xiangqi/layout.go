package xiangqi

var backRank = [Cols]Kind{Chariot, Horse, Elephant, Advisor, Lord, Advisor, Elephant, Horse, Chariot}

// StandardLayout 标准开局 32 子：黑方在上（0..3 行），红方在下（6..9 行）
func StandardLayout() []Placement {
	out := make([]Placement, 0, MaxPieces)
	for _, s := range []struct {
		side               Side
		back, cannon, pawn int
	}{
		{Black, 0, 2, 3},
		{Red, 9, 7, 6},
	} {
		for c, k := range backRank {
			out = append(out, Placement{Kind: k, Row: s.back, Col: c, Side: s.side})
		}
		for _, c := range []int{1, 7} {
			out = append(out, Placement{Kind: Cannon, Row: s.cannon, Col: c, Side: s.side})
		}
		for _, c := range []int{0, 2, 4, 6, 8} {
			out = append(out, Placement{Kind: Soldier, Row: s.pawn, Col: c, Side: s.side})
		}
	}
	return out
}
