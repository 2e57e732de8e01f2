package xiangqi

import (
	"log/slog"
	"slices"
)

type State int8

const (
	InProgress State = iota
	GameOver
)

func (s State) String() string {
	if s == GameOver {
		return "game_over"
	}
	return "in_progress"
}

// ReselectPolicy 选中状态下点到非法落点时怎么处理
type ReselectPolicy int8

const (
	// DropSelection 只取消选中
	DropSelection ReselectPolicy = iota
	// ReselectOnIllegalClick 取消选中后，把这次点击当成一次新的选子
	ReselectOnIllegalClick
)

type ClickResult int8

const (
	ClickIgnored ClickResult = iota
	ClickSelected
	ClickDeselected
	ClickMoved
	ClickRejected
)

func (r ClickResult) String() string {
	switch r {
	case ClickSelected:
		return "selected"
	case ClickDeselected:
		return "deselected"
	case ClickMoved:
		return "moved"
	case ClickRejected:
		return "rejected"
	default:
		return "ignored"
	}
}

// GameOverInfo 终局信息：无子可动的一方判负
type GameOverInfo struct {
	Winner  Side
	Outcome Status
}

// Game 一局棋：轮次、选子、合法性过滤、将军标记、终局、一步悔棋
type Game struct {
	board  *Board
	prev   *Board // 只保留一步悔棋
	start  *Board // 没有 start 时按 layout 重新摆
	layout []Placement
	policy ReselectPolicy
	logger *slog.Logger

	state    State
	outcome  Status
	winner   Side
	selected PieceID
	targets  []Square
	inCheck  [2]bool
	plies    int
	last     Move
}

type Option func(*Game)

func WithLayout(layout []Placement) Option {
	return func(g *Game) { g.layout = slices.Clone(layout) }
}

// WithBoard 从任意局面开始，Reset 也回到这个局面
func WithBoard(b *Board) Option {
	return func(g *Game) { g.start = b.Clone() }
}

func WithReselect(p ReselectPolicy) Option {
	return func(g *Game) { g.policy = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGame(opts ...Option) (*Game, error) {
	g := &Game{
		layout: StandardLayout(),
		logger: slog.Default().With("component", "game"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Restore 用持久化的当前局面和悔棋快照重建对局
func Restore(cur, prev *Board, plies int, opts ...Option) (*Game, error) {
	if err := cur.Validate(); err != nil {
		return nil, err
	}
	if prev != nil {
		if err := prev.Validate(); err != nil {
			return nil, err
		}
	}
	g, err := NewGame(opts...)
	if err != nil {
		return nil, err
	}
	g.board = cur.Clone()
	if prev != nil {
		g.prev = prev.Clone()
	}
	g.plies = plies
	g.refresh()
	return g, nil
}

func (g *Game) newBoard() (*Board, error) {
	if g.start != nil {
		return g.start.Clone(), nil
	}
	return NewBoardFromLayout(g.layout, Red)
}

// Reset 换一副新棋盘，回到 InProgress
func (g *Game) Reset() error {
	b, err := g.newBoard()
	if err != nil {
		return err
	}
	g.board = b
	g.prev = nil
	g.state = InProgress
	g.outcome = Ongoing
	g.winner = NoSide
	g.plies = 0
	g.last = Move{From: NoSquare, To: NoSquare}
	g.clearSelection()
	g.refresh()
	return nil
}

// Click 处理一次点击（格子坐标）。盘外点击传 NoSquare
func (g *Game) Click(sq Square) ClickResult {
	if g.state == GameOver {
		return ClickIgnored
	}
	if !sq.Valid() {
		return g.ClickOutside()
	}
	if g.selected == 0 {
		return g.trySelect(sq)
	}

	sel := g.selectedPiece()
	if sq == sel.Square {
		g.clearSelection()
		return ClickDeselected
	}
	if slices.Contains(g.targets, sq) {
		g.commit(Move{From: sel.Square, To: sq})
		return ClickMoved
	}

	g.clearSelection()
	if g.policy == ReselectOnIllegalClick && g.trySelect(sq) == ClickSelected {
		return ClickSelected
	}
	return ClickRejected
}

func (g *Game) ClickOutside() ClickResult {
	if g.selected == 0 {
		return ClickIgnored
	}
	g.clearSelection()
	return ClickDeselected
}

func (g *Game) trySelect(sq Square) ClickResult {
	pc, ok := g.board.PieceAt(sq)
	if !ok || pc.Side != g.board.SideToMove() {
		return ClickIgnored
	}
	g.selected = pc.ID
	g.targets = g.board.LegalMoves(pc.ID)
	return ClickSelected
}

func (g *Game) selectedPiece() Piece {
	pc, ok := g.board.Piece(g.selected)
	if !ok {
		invariant("selected piece %d not on board", g.selected)
	}
	return pc
}

func (g *Game) clearSelection() {
	g.selected = 0
	g.targets = nil
}

// Move 直接走一步（不经过选子）。非法走法不改动任何状态，包括当前选中
func (g *Game) Move(from, to Square) error {
	if g.state == GameOver {
		return ErrGameOver
	}
	m := Move{From: from, To: to}
	pc, ok := g.board.PieceAt(from)
	if !ok {
		return &MoveError{Move: m, Reason: "no piece at origin"}
	}
	if pc.Side != g.board.SideToMove() {
		return &MoveError{Move: m, Reason: "not " + pc.Side.String() + "'s turn"}
	}
	if !slices.Contains(g.board.LegalMoves(pc.ID), to) {
		return &MoveError{Move: m, Reason: "not a legal destination for " + pc.Kind.String()}
	}
	g.commit(m)
	return nil
}

func (g *Game) commit(m Move) {
	g.prev = g.board.Clone()
	captured := g.board.ApplyMove(m)
	g.plies++
	g.last = m
	g.clearSelection()
	g.refresh()

	g.logger.Debug("move committed",
		"ply", g.plies,
		"from", m.From.String(),
		"to", m.To.String(),
		"captured", captured.Kind.String(),
		"turn", g.board.SideToMove().String(),
	)
	if g.state == GameOver {
		g.logger.Info("game over", "winner", g.winner.String(), "outcome", g.outcome.String(), "plies", g.plies)
	}
}

// refresh 每半步之后：校验棋盘、刷新将军标记、判断终局
func (g *Game) refresh() {
	if err := g.board.Validate(); err != nil {
		panic(err)
	}
	for _, s := range []Side{Red, Black} {
		g.inCheck[s] = g.board.InCheck(s)
	}
	switch st := g.board.Status(); st {
	case Checkmate, Stalemate:
		g.state = GameOver
		g.outcome = st
		g.winner = g.board.SideToMove().Opponent()
	default:
		g.state = InProgress
		g.outcome = Ongoing
		g.winner = NoSide
	}
}

// Undo 回到上一步的快照，只支持一层
func (g *Game) Undo() error {
	if g.state == GameOver {
		return ErrGameOver
	}
	if g.prev == nil {
		return ErrNoUndo
	}
	g.board = g.prev
	g.prev = nil
	if g.plies > 0 {
		g.plies--
	}
	g.last = Move{From: NoSquare, To: NoSquare}
	g.clearSelection()
	g.refresh()
	return nil
}

func (g *Game) CanUndo() bool { return g.state == InProgress && g.prev != nil }

// Board 返回当前局面的拷贝
func (g *Game) Board() *Board { return g.board.Clone() }

// PrevBoard 悔棋快照的拷贝，没有时返回 nil
func (g *Game) PrevBoard() *Board {
	if g.prev == nil {
		return nil
	}
	return g.prev.Clone()
}

func (g *Game) Pieces() []Piece { return g.board.Pieces() }

func (g *Game) Turn() Side { return g.board.SideToMove() }

func (g *Game) State() State { return g.state }

func (g *Game) Outcome() Status { return g.outcome }

func (g *Game) Winner() Side { return g.winner }

func (g *Game) Result() (GameOverInfo, bool) {
	if g.state != GameOver {
		return GameOverInfo{}, false
	}
	return GameOverInfo{Winner: g.winner, Outcome: g.outcome}, true
}

// InCheck 将帅被将军的显示标记
func (g *Game) InCheck(side Side) bool {
	if !side.valid() {
		return false
	}
	return g.inCheck[side]
}

func (g *Game) Selected() (Piece, bool) {
	if g.selected == 0 {
		return Piece{}, false
	}
	return g.selectedPiece(), true
}

// Highlights 选中棋子的合法落点
func (g *Game) Highlights() []Square { return slices.Clone(g.targets) }

// LegalMovesAt 某格棋子的合法落点，供前端预览
func (g *Game) LegalMovesAt(sq Square) []Square {
	pc, ok := g.board.PieceAt(sq)
	if !ok {
		return nil
	}
	return g.board.LegalMoves(pc.ID)
}

// MoveCount 已走的半步数
func (g *Game) MoveCount() int { return g.plies }

// LastMove 最近一步；刚开局或悔棋后返回 false
func (g *Game) LastMove() (Move, bool) {
	return g.last, g.last.From.Valid()
}

func (g *Game) Policy() ReselectPolicy { return g.policy }
