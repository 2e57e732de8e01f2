package xiangqi

import (
	"math/rand/v2"
	"slices"
	"testing"

	"xiangqi/internal/testutil"
)

const (
	checkFEN     = "9/R3k4/9/9/9/9/9/9/9/3K5 b"
	mateFEN      = "R3k4/8R/9/9/9/9/9/9/9/3K5 b"
	stalemateFEN = "4k1P2/8R/9/9/9/9/9/9/9/3K5 b"
)

func TestLordInCheckHasOnlyEscapes(t *testing.T) {
	b := mustFEN(t, checkFEN)
	lord := pieceAt(t, b, 1, 4)

	if !b.InCheck(Black) {
		t.Fatal("black should be in check")
	}
	if b.InCheck(Red) {
		t.Error("red should not be in check")
	}
	testutil.AssertSameSet(t, b.LegalMoves(lord.ID), squares([2]int{0, 4}, [2]int{2, 4}))

	checkers := b.Checkers(Black)
	if len(checkers) != 1 || checkers[0].Kind != Chariot || checkers[0].Square != sq(1, 0) {
		t.Errorf("Checkers(black) = %+v; want red chariot at (1,0)", checkers)
	}
	if b.Status() != Ongoing {
		t.Errorf("Status() = %v; want ongoing", b.Status())
	}
}

func TestFlyingLordIsIllegal(t *testing.T) {
	// 红帅走到 (9,4) 会和黑将照面
	b := mustFEN(t, "4k4/9/9/9/9/9/9/9/9/3K5 w")
	lord := pieceAt(t, b, 9, 3)
	testutil.AssertSameSet(t, b.LegalMoves(lord.ID), squares([2]int{8, 3}))

	// 挡在两将之间的子不能离开这一列
	b = mustFEN(t, "4k4/9/9/9/4R4/9/9/9/9/4K4 w")
	rook := pieceAt(t, b, 4, 4)
	for _, to := range b.LegalMoves(rook.ID) {
		if to.Col() != 4 {
			t.Errorf("pinned chariot may leave the file to %s", to)
		}
	}
	if len(b.LegalMoves(rook.ID)) == 0 {
		t.Error("pinned chariot should still move along the file")
	}
}

func TestCaptureOfLordIsNeverOffered(t *testing.T) {
	// 红车正对黑将：吃将只出现在伪合法集合里
	b := mustFEN(t, "4k4/9/9/9/4R4/9/9/9/9/3K5 w")
	rook := pieceAt(t, b, 4, 4)
	if !slices.Contains(b.PseudoLegalMoves(rook.ID), sq(0, 4)) {
		t.Fatal("pseudo-legal set should reach the lord")
	}
	if slices.Contains(b.LegalMoves(rook.ID), sq(0, 4)) {
		t.Error("legal set offers capturing the lord")
	}
	if b.IsLegalMove(Move{From: sq(4, 4), To: sq(0, 4)}) {
		t.Error("IsLegalMove accepts capturing the lord")
	}
}

func TestIsLegalMoveChecksTurn(t *testing.T) {
	b := NewStandardBoard()
	if !b.IsLegalMove(Move{From: sq(9, 1), To: sq(7, 2)}) {
		t.Error("red horse move should be legal")
	}
	if b.IsLegalMove(Move{From: sq(0, 1), To: sq(2, 2)}) {
		t.Error("black moved on red's turn")
	}
	if b.IsLegalMove(Move{From: sq(4, 4), To: sq(3, 4)}) {
		t.Error("move from empty square accepted")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Status
	}{
		{"opening", StandardFEN, Ongoing},
		{"check", checkFEN, Ongoing},
		{"checkmate", mateFEN, Checkmate},
		{"stalemate", stalemateFEN, Stalemate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen)
			if got := b.Status(); got != tt.want {
				t.Errorf("Status() = %v; want %v", got, tt.want)
			}
			if tt.want != Ongoing {
				if b.HasLegalMove(Black) || b.LegalMoveCount(Black) != 0 {
					t.Error("side to move still has legal moves")
				}
			}
		})
	}
}

func TestPerft(t *testing.T) {
	b := NewStandardBoard()
	tests := []struct {
		depth int
		want  uint64
	}{
		{0, 1},
		{1, 44},
		{2, 1920},
		{3, 79666},
	}
	for _, tt := range tests {
		if tt.depth >= 3 && testing.Short() {
			continue
		}
		if got := b.Perft(tt.depth); got != tt.want {
			t.Errorf("Perft(%d) = %d; want %d", tt.depth, got, tt.want)
		}
	}
	if got := b.Encode(); got != StandardFEN {
		t.Errorf("Perft mutated the board: %s", got)
	}
}

// 随机对局里逐步检查走法生成的各项约束
func TestRandomPlayoutInvariants(t *testing.T) {
	plies := 80
	if testing.Short() {
		plies = 20
	}
	for seed := uint64(1); seed <= 4; seed++ {
		rng := rand.New(rand.NewPCG(seed, 0x5eed))
		b := NewStandardBoard()
		for ply := 0; ply < plies; ply++ {
			if err := b.Validate(); err != nil {
				t.Fatalf("seed %d ply %d: %v", seed, ply, err)
			}
			side := b.SideToMove()
			legal := b.LegalMovesForSide(side)
			pseudo := b.PseudoLegalMovesForSide(side)
			if len(legal) > len(pseudo) {
				t.Fatalf("seed %d ply %d: %d legal > %d pseudo", seed, ply, len(legal), len(pseudo))
			}
			testutil.AssertEqual(t, b.LegalMovesForSide(side), legal, "repeated generation")

			for _, m := range legal {
				if !slices.Contains(pseudo, m) {
					t.Errorf("seed %d ply %d: legal %v not pseudo-legal", seed, ply, m)
				}
				checkCannonScreen(t, b, m)

				next := b.Clone()
				next.ApplyMove(m)
				if next.LordFacingLord() {
					t.Errorf("seed %d ply %d: %v leaves lords facing", seed, ply, m)
				}
				if next.InCheck(side) {
					t.Errorf("seed %d ply %d: %v leaves own lord in check", seed, ply, m)
				}
			}

			if len(legal) == 0 {
				if b.Status() == Ongoing {
					t.Errorf("seed %d ply %d: no moves but status ongoing", seed, ply)
				}
				break
			}
			b.ApplyMove(legal[rng.IntN(len(legal))])
		}
	}
}

// 炮吃子时两点之间恰好一个子；不吃子时一个都没有
func checkCannonScreen(t *testing.T, b *Board, m Move) {
	t.Helper()
	pc, _ := b.PieceAt(m.From)
	if pc.Kind != Cannon {
		return
	}
	between := 0
	dr, dc := sign(m.To.Row()-m.From.Row()), sign(m.To.Col()-m.From.Col())
	for r, c := m.From.Row()+dr, m.From.Col()+dc; SquareAt(r, c) != m.To; r, c = r+dr, c+dc {
		if _, ok := b.PieceAt(SquareAt(r, c)); ok {
			between++
		}
	}
	_, capture := b.PieceAt(m.To)
	want := 0
	if capture {
		want = 1
	}
	if between != want {
		t.Errorf("cannon %v: %d pieces between, capture=%v", m, between, capture)
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
