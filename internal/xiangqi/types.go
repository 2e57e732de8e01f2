package xiangqi

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1 // .cfg 开局文件里写作 blue
)

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Opponent 返回对方；NoSide 返回 NoSide
func (s Side) Opponent() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	default:
		return NoSide
	}
}

func (s Side) valid() bool { return s == Red || s == Black }

type Kind int8

const (
	KindNone Kind = iota
	Chariot       // 车
	Horse         // 马
	Elephant      // 相 / 象
	Advisor       // 仕 / 士
	Lord          // 帅 / 将
	Cannon        // 炮
	Soldier       // 兵 / 卒
)

var kindNames = [...]string{
	KindNone: "none",
	Chariot:  "chariot",
	Horse:    "horse",
	Elephant: "elephant",
	Advisor:  "advisor",
	Lord:     "lord",
	Cannon:   "cannon",
	Soldier:  "soldier",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) valid() bool { return k > KindNone && k <= Soldier }

// ParseKind 按名字解析棋子类型，兼容开局文件里的几种叫法
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "chariot", "rook", "car":
		return Chariot, true
	case "horse", "knight":
		return Horse, true
	case "elephant", "bishop":
		return Elephant, true
	case "advisor", "guard", "bodyguard":
		return Advisor, true
	case "lord", "king", "general":
		return Lord, true
	case "cannon":
		return Cannon, true
	case "soldier", "pawn":
		return Soldier, true
	}
	return KindNone, false
}

// ParseSide 解析 red / black / blue
func ParseSide(name string) (Side, bool) {
	switch name {
	case "red", "r", "w":
		return Red, true
	case "black", "blue", "b":
		return Black, true
	}
	return NoSide, false
}

// PieceID 是棋子在 Board 名册里的下标；0 表示空格
type PieceID int8

type Piece struct {
	ID     PieceID
	Kind   Kind
	Side   Side
	Square Square
}

// IsZero 空棋子（没找到 / 没吃子）
func (p Piece) IsZero() bool { return p.ID == 0 }

func (p Piece) IsEnemy(o Piece) bool {
	return p.Side.valid() && o.Side.valid() && p.Side != o.Side
}

// Crossed 兵是否已过河
func (p Piece) Crossed() bool {
	return p.Kind == Soldier && crossedRiver(p.Side, p.Square.Row())
}

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string { return m.From.String() + "-" + m.To.String() }

// Placement 开局摆放记录：(kind, row, col, side)
type Placement struct {
	Kind Kind
	Row  int
	Col  int
	Side Side
}
