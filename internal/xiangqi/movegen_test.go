package xiangqi

import (
	"testing"

	"xiangqi/internal/testutil"
)

func TestStandardOpeningMoves(t *testing.T) {
	b := NewStandardBoard()

	tests := []struct {
		name     string
		row, col int
		want     []Square
	}{
		{"red chariot", 9, 0, squares([2]int{8, 0}, [2]int{7, 0})},
		{"red horse", 9, 1, squares([2]int{7, 0}, [2]int{7, 2})},
		{"red elephant", 9, 2, squares([2]int{7, 0}, [2]int{7, 4})},
		{"red advisor", 9, 3, squares([2]int{8, 4})},
		{"red lord", 9, 4, squares([2]int{8, 4})},
		{"red cannon", 7, 1, squares(
			[2]int{6, 1}, [2]int{5, 1}, [2]int{4, 1}, [2]int{3, 1}, [2]int{0, 1},
			[2]int{8, 1},
			[2]int{7, 0}, [2]int{7, 2}, [2]int{7, 3}, [2]int{7, 4}, [2]int{7, 5}, [2]int{7, 6},
		)},
		{"red soldier", 6, 4, squares([2]int{5, 4})},
		{"black horse", 0, 7, squares([2]int{2, 6}, [2]int{2, 8})},
		{"black soldier", 3, 0, squares([2]int{4, 0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := pieceAt(t, b, tt.row, tt.col)
			testutil.AssertSameSet(t, b.PseudoLegalMoves(pc.ID), tt.want, "pseudo-legal")
			testutil.AssertSameSet(t, b.LegalMoves(pc.ID), tt.want, "legal")
		})
	}

	if got := len(b.LegalMovesForSide(Red)); got != 44 {
		t.Errorf("red has %d legal moves; want 44", got)
	}
}

func TestChariotStopsAtFirstPiece(t *testing.T) {
	b := bareBoard(t, Red)
	id := mustPlace(t, b, Chariot, 5, 4, Red)
	mustPlace(t, b, Soldier, 5, 6, Red)
	mustPlace(t, b, Horse, 2, 4, Black)

	want := squares(
		[2]int{4, 4}, [2]int{3, 4}, [2]int{2, 4}, // 吃到黑马为止
		[2]int{6, 4}, [2]int{7, 4}, [2]int{8, 4}, [2]int{9, 4},
		[2]int{5, 3}, [2]int{5, 2}, [2]int{5, 1}, [2]int{5, 0},
		[2]int{5, 5},
	)
	testutil.AssertSameSet(t, b.PseudoLegalMoves(id), want)
}

func TestCannonNeedsExactlyOneScreen(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, b *Board)
		want  []Square
	}{
		{
			name:  "no screen cannot capture",
			setup: func(t *testing.T, b *Board) { mustPlace(t, b, Horse, 2, 0, Black) },
			want:  squares([2]int{4, 0}, [2]int{3, 0}, [2]int{6, 0}, [2]int{7, 0}, [2]int{8, 0}, [2]int{9, 0}),
		},
		{
			name: "one screen captures",
			setup: func(t *testing.T, b *Board) {
				mustPlace(t, b, Soldier, 3, 0, Red)
				mustPlace(t, b, Horse, 1, 0, Black)
			},
			want: squares([2]int{4, 0}, [2]int{1, 0}, [2]int{6, 0}, [2]int{7, 0}, [2]int{8, 0}, [2]int{9, 0}),
		},
		{
			name: "two screens block",
			setup: func(t *testing.T, b *Board) {
				mustPlace(t, b, Soldier, 3, 0, Red)
				mustPlace(t, b, Soldier, 2, 0, Black)
				mustPlace(t, b, Horse, 0, 0, Black)
			},
			want: squares([2]int{4, 0}, [2]int{2, 0}, [2]int{6, 0}, [2]int{7, 0}, [2]int{8, 0}, [2]int{9, 0}),
		},
		{
			name: "friendly behind screen",
			setup: func(t *testing.T, b *Board) {
				mustPlace(t, b, Soldier, 3, 0, Black)
				mustPlace(t, b, Chariot, 1, 0, Red)
			},
			want: squares([2]int{4, 0}, [2]int{6, 0}, [2]int{7, 0}, [2]int{8, 0}, [2]int{9, 0}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bareBoard(t, Red)
			id := mustPlace(t, b, Cannon, 5, 0, Red)
			tt.setup(t, b)

			// 横向只有 (5,1)..(5,8)，和各用例无关
			var want []Square
			want = append(want, tt.want...)
			for c := 1; c < Cols; c++ {
				want = append(want, sq(5, c))
			}
			testutil.AssertSameSet(t, b.PseudoLegalMoves(id), want)
		})
	}
}

func TestHorseLegBlocked(t *testing.T) {
	b := bareBoard(t, Red)
	id := mustPlace(t, b, Horse, 5, 4, Red)
	mustPlace(t, b, Soldier, 4, 4, Red)   // 堵住向上两格
	mustPlace(t, b, Soldier, 5, 5, Black) // 堵住向右两格
	mustPlace(t, b, Advisor, 7, 3, Red)   // 友军落点

	want := squares(
		[2]int{4, 2}, [2]int{6, 2},
		[2]int{7, 5},
	)
	testutil.AssertSameSet(t, b.PseudoLegalMoves(id), want)
}

func TestElephantRules(t *testing.T) {
	t.Run("eye blocked", func(t *testing.T) {
		b := bareBoard(t, Red)
		id := mustPlace(t, b, Elephant, 7, 4, Red)
		mustPlace(t, b, Soldier, 6, 3, Black)
		testutil.AssertSameSet(t, b.PseudoLegalMoves(id),
			squares([2]int{5, 6}, [2]int{9, 2}, [2]int{9, 6}))
	})
	t.Run("cannot cross river", func(t *testing.T) {
		b := bareBoard(t, Red)
		id := mustPlace(t, b, Elephant, 5, 2, Red)
		testutil.AssertSameSet(t, b.PseudoLegalMoves(id),
			squares([2]int{7, 0}, [2]int{7, 4}))

		bid := mustPlace(t, b, Elephant, 4, 6, Black)
		testutil.AssertSameSet(t, b.PseudoLegalMoves(bid),
			squares([2]int{2, 4}, [2]int{2, 8}))
	})
}

func TestAdvisorAndLordStayInPalace(t *testing.T) {
	b := NewBoard(Red)
	lord := mustPlace(t, b, Lord, 7, 3, Red)
	adv := mustPlace(t, b, Advisor, 8, 4, Red)
	mustPlace(t, b, Lord, 0, 5, Black)
	badv := mustPlace(t, b, Advisor, 0, 3, Black)

	testutil.AssertSameSet(t, b.PseudoLegalMoves(lord), squares([2]int{8, 3}, [2]int{7, 4}))
	testutil.AssertSameSet(t, b.PseudoLegalMoves(adv),
		squares([2]int{7, 5}, [2]int{9, 3}, [2]int{9, 5}))
	testutil.AssertSameSet(t, b.PseudoLegalMoves(badv), squares([2]int{1, 4}))
}

func TestSoldierMoves(t *testing.T) {
	tests := []struct {
		name     string
		side     Side
		row, col int
		want     []Square
	}{
		{"red before river", Red, 6, 4, squares([2]int{5, 4})},
		{"red on river bank", Red, 5, 4, squares([2]int{4, 4})},
		{"red crossed", Red, 4, 4, squares([2]int{3, 4}, [2]int{4, 3}, [2]int{4, 5})},
		{"red last rank", Red, 0, 0, squares([2]int{0, 1})},
		{"black before river", Black, 3, 4, squares([2]int{4, 4})},
		{"black crossed", Black, 5, 4, squares([2]int{6, 4}, [2]int{5, 3}, [2]int{5, 5})},
		{"black last rank", Black, 9, 8, squares([2]int{9, 7})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(tt.side)
			mustPlace(t, b, Lord, 8, 5, Red)
			mustPlace(t, b, Lord, 1, 3, Black)
			id := mustPlace(t, b, Soldier, tt.row, tt.col, tt.side)
			testutil.AssertSameSet(t, b.PseudoLegalMoves(id), tt.want)
		})
	}
}

// 任何位置的兵都不能后退
func TestSoldierNeverRetreats(t *testing.T) {
	for _, side := range []Side{Red, Black} {
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				if inPalace(Red, r, c) || inPalace(Black, r, c) {
					continue
				}
				b := NewBoard(side)
				mustPlace(t, b, Lord, 9, 4, Red)
				mustPlace(t, b, Lord, 0, 4, Black)
				id := mustPlace(t, b, Soldier, r, c, side)
				for _, to := range b.PseudoLegalMoves(id) {
					if (to.Row()-r)*soldierDir(side) < 0 {
						t.Errorf("%s soldier at (%d,%d) retreats to %s", side, r, c, to)
					}
					if to.Row() == r && !crossedRiver(side, r) {
						t.Errorf("%s soldier at (%d,%d) moves sideways before river", side, r, c)
					}
				}
			}
		}
	}
}

func TestPseudoLegalMovesUnknownPiece(t *testing.T) {
	b := bareBoard(t, Red)
	if got := b.PseudoLegalMoves(PieceID(30)); got != nil {
		t.Errorf("PseudoLegalMoves(30) = %v; want nil", got)
	}
	if got := b.LegalMoves(PieceID(0)); got != nil {
		t.Errorf("LegalMoves(0) = %v; want nil", got)
	}
}

func TestHorseBlockedAtHome(t *testing.T) {
	// 标准开局，黑卒挪到 (8,1) 憋住马腿
	b := mustFEN(t, "rnbakabnr/9/1c5c1/p1p1p3p/9/9/P1P1P1P1P/1C5C1/1p7/RNBAKABNR w")
	horse := pieceAt(t, b, 9, 1)
	if got := b.PseudoLegalMoves(horse.ID); len(got) != 0 {
		t.Errorf("horse with blocked leg moves to %v", got)
	}
}
