package xiangqi

import (
	"fmt"
	"math"
)

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// 河界：0..4 为黑方半场，5..9 为红方半场
	RiverRow = 5
)

// Square = row*Cols + col
type Square int

const NoSquare Square = -1

func SquareAt(row, col int) Square {
	if !onBoard(row, col) {
		return NoSquare
	}
	return Square(indexOf(row, col))
}

func (s Square) Row() int   { return int(s) / Cols }
func (s Square) Col() int   { return int(s) % Cols }
func (s Square) Valid() bool { return s >= 0 && s < NumSquares }

func (s Square) String() string {
	if !s.Valid() {
		return "(-)"
	}
	return fmt.Sprintf("(%d,%d)", s.Row(), s.Col())
}

// SquareFromPoint 把屏幕坐标换成格子：col = round((x-ox)/cell)，row 同理。盘外返回 NoSquare。
func SquareFromPoint(x, y, originX, originY, cell float64) Square {
	if cell <= 0 {
		return NoSquare
	}
	col := int(math.Round((x - originX) / cell))
	row := int(math.Round((y - originY) / cell))
	return SquareAt(row, col)
}

func indexOf(row, col int) int { return row*Cols + col }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

var (
	rookDirs   = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

// 兵的前进方向：红向上(-1)，黑向下(+1)
func soldierDir(side Side) int {
	switch side {
	case Red:
		return -1
	case Black:
		return +1
	}
	return 0
}

func crossedRiver(side Side, row int) bool {
	switch side {
	case Red:
		return row < RiverRow
	case Black:
		return row >= RiverRow
	}
	return false
}

// 己方半场（象不能过河）
func inHomeHalf(side Side, row int) bool {
	switch side {
	case Red:
		return row >= RiverRow && row < Rows
	case Black:
		return row >= 0 && row < RiverRow
	}
	return false
}

// 是否在九宫
func inPalace(side Side, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	switch side {
	case Black:
		return row >= 0 && row <= 2
	case Red:
		return row >= Rows-3 && row <= Rows-1
	}
	return false
}
