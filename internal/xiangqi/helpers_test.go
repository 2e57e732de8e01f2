package xiangqi

import "testing"

func sq(row, col int) Square { return SquareAt(row, col) }

func mustFEN(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := DecodeFEN(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return b
}

func mustPlace(t *testing.T, b *Board, kind Kind, row, col int, side Side) PieceID {
	t.Helper()
	id, err := b.PlacePiece(kind, sq(row, col), side)
	if err != nil {
		t.Fatalf("place %s %s at (%d,%d): %v", side, kind, row, col, err)
	}
	return id
}

// 只有两个将帅、不在同一列的空盘
func bareBoard(t *testing.T, turn Side) *Board {
	t.Helper()
	b := NewBoard(turn)
	mustPlace(t, b, Lord, 9, 3, Red)
	mustPlace(t, b, Lord, 0, 5, Black)
	return b
}

func pieceAt(t *testing.T, b *Board, row, col int) Piece {
	t.Helper()
	pc, ok := b.PieceAt(sq(row, col))
	if !ok {
		t.Fatalf("no piece at (%d,%d)", row, col)
	}
	return pc
}

func squares(rc ...[2]int) []Square {
	out := make([]Square, 0, len(rc))
	for _, p := range rc {
		out = append(out, sq(p[0], p[1]))
	}
	return out
}

func expectPanic(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
	return nil
}
