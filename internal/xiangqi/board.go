package xiangqi

import "fmt"

// MaxPieces 名册容量，标准开局正好 32 子
const MaxPieces = 32

// Board 棋盘 = 格子数组 + 棋子名册 + 轮到谁走。
// 全部是定长数组，值拷贝就是深拷贝，模拟走子时不会和原盘共享状态。
type Board struct {
	cells  [NumSquares]PieceID
	pieces [MaxPieces + 1]Piece // 下标即 PieceID，0 号不用
	alive  [MaxPieces + 1]bool
	n      int // 已分配的 ID 数
	lords  [2]PieceID
	turn   Side
}

func NewBoard(turn Side) *Board {
	if !turn.valid() {
		turn = Red
	}
	return &Board{turn: turn}
}

// NewBoardFromLayout 按顺序摆放所有记录，摆完要求双方各有一个将帅
func NewBoardFromLayout(layout []Placement, turn Side) (*Board, error) {
	b := NewBoard(turn)
	for _, pl := range layout {
		if _, err := b.PlacePiece(pl.Kind, SquareAt(pl.Row, pl.Col), pl.Side); err != nil {
			return nil, err
		}
	}
	for _, side := range []Side{Red, Black} {
		if b.lords[side] == 0 {
			return nil, &PlacementError{Kind: Lord, Square: NoSquare, Side: side, Reason: "missing lord"}
		}
	}
	return b, nil
}

// NewStandardBoard 标准开局，红先
func NewStandardBoard() *Board {
	b, err := NewBoardFromLayout(StandardLayout(), Red)
	if err != nil {
		panic("standard layout: " + err.Error())
	}
	return b
}

// PlacePiece 只在摆局阶段使用
func (b *Board) PlacePiece(kind Kind, sq Square, side Side) (PieceID, error) {
	fail := func(reason string) (PieceID, error) {
		return 0, &PlacementError{Kind: kind, Square: sq, Side: side, Reason: reason}
	}
	if !kind.valid() {
		return fail("unknown kind")
	}
	if !side.valid() {
		return fail("unknown side")
	}
	if !sq.Valid() {
		return fail("out of range")
	}
	if b.cells[sq] != 0 {
		return fail("square occupied")
	}
	if b.n >= MaxPieces {
		return fail("roster full")
	}
	if kind == Lord && b.lords[side] != 0 {
		return fail("side already has a lord")
	}

	b.n++
	id := PieceID(b.n)
	b.pieces[id] = Piece{ID: id, Kind: kind, Side: side, Square: sq}
	b.alive[id] = true
	b.cells[sq] = id
	if kind == Lord {
		b.lords[side] = id
	}
	return id, nil
}

// PieceAt 越界或空格返回 false
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	id := b.cells[sq]
	if id == 0 {
		return Piece{}, false
	}
	return b.pieces[id], true
}

func (b *Board) Piece(id PieceID) (Piece, bool) {
	if id <= 0 || int(id) > b.n || !b.alive[id] {
		return Piece{}, false
	}
	return b.pieces[id], true
}

// Pieces 按 ID 顺序返回所有活子
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, b.n)
	for id := 1; id <= b.n; id++ {
		if b.alive[id] {
			out = append(out, b.pieces[id])
		}
	}
	return out
}

func (b *Board) PiecesOf(side Side) []Piece {
	out := make([]Piece, 0, b.n/2+1)
	for id := 1; id <= b.n; id++ {
		if b.alive[id] && b.pieces[id].Side == side {
			out = append(out, b.pieces[id])
		}
	}
	return out
}

// Len 活子数
func (b *Board) Len() int {
	count := 0
	for id := 1; id <= b.n; id++ {
		if b.alive[id] {
			count++
		}
	}
	return count
}

func (b *Board) Lord(side Side) (Piece, bool) {
	if !side.valid() {
		return Piece{}, false
	}
	return b.Piece(b.lords[side])
}

// mustLord 对局中将帅一定在，不在就是 bug
func (b *Board) mustLord(side Side) Piece {
	pc, ok := b.Lord(side)
	if !ok {
		invariant("%s lord missing from roster", side)
	}
	return pc
}

func (b *Board) SideToMove() Side { return b.turn }

func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// ApplyMove 提子 + 落子 + 换边，返回被吃的子（没吃子返回零值）。
// 调用方负责只传合法走法；吃将帅说明合法性过滤漏了，直接 panic。
func (b *Board) ApplyMove(m Move) Piece {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		invariant("move %s -> %s out of range", m.From, m.To)
	}
	id := b.cells[m.From]
	if id == 0 {
		invariant("no piece at %s", m.From)
	}
	mover := b.pieces[id]

	var captured Piece
	if cid := b.cells[m.To]; cid != 0 {
		captured = b.pieces[cid]
		if captured.Side == mover.Side {
			invariant("%s %s captures friendly %s at %s", mover.Side, mover.Kind, captured.Kind, m.To)
		}
		if captured.Kind == Lord {
			invariant("%s lord captured at %s", captured.Side, m.To)
		}
		b.alive[cid] = false
	}

	b.cells[m.From] = 0
	b.cells[m.To] = id
	b.pieces[id].Square = m.To
	b.turn = b.turn.Opponent()
	return captured
}

// LordFacingLord 两将同列且中间无子（飞将）
func (b *Board) LordFacingLord() bool {
	red, ok1 := b.Lord(Red)
	black, ok2 := b.Lord(Black)
	if !ok1 || !ok2 {
		return false
	}
	if red.Square.Col() != black.Square.Col() {
		return false
	}
	lo, hi := black.Square.Row(), red.Square.Row()
	if lo > hi {
		lo, hi = hi, lo
	}
	col := red.Square.Col()
	for r := lo + 1; r < hi; r++ {
		if b.cells[indexOf(r, col)] != 0 {
			return false
		}
	}
	return true
}

// Validate 检查格子和名册是否一一对应，以及双方各一个将帅
func (b *Board) Validate() error {
	fail := func(format string, args ...any) error {
		return &InvariantError{Reason: fmt.Sprintf(format, args...)}
	}
	seen := 0
	for sq, id := range b.cells {
		if id == 0 {
			continue
		}
		if int(id) > b.n || !b.alive[id] {
			return fail("cell %s references dead piece %d", Square(sq), id)
		}
		if b.pieces[id].Square != Square(sq) {
			return fail("piece %d thinks it is at %s, cell says %s", id, b.pieces[id].Square, Square(sq))
		}
		seen++
	}
	if seen != b.Len() {
		return fail("grid holds %d pieces, roster %d", seen, b.Len())
	}
	for _, side := range []Side{Red, Black} {
		pc, ok := b.Lord(side)
		if !ok || pc.Kind != Lord || pc.Side != side {
			return fail("%s lord missing", side)
		}
	}
	return nil
}
