package xiangqi

import (
	"fmt"
	"strings"
	"unicode"
)

// StandardFEN 标准开局
const StandardFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"

var letterToKind = map[rune]Kind{
	'r': Chariot,
	'n': Horse,
	'b': Elephant,
	'a': Advisor,
	'k': Lord,
	'c': Cannon,
	'p': Soldier,
}

var kindToLetter = [...]rune{
	Chariot:  'r',
	Horse:    'n',
	Elephant: 'b',
	Advisor:  'a',
	Lord:     'k',
	Cannon:   'c',
	Soldier:  'p',
}

func pieceToChar(pc Piece) rune {
	if !pc.Kind.valid() {
		return '.'
	}
	ch := kindToLetter[pc.Kind]
	if pc.Side == Red {
		return unicode.ToUpper(ch)
	}
	return ch
}

// Encode 10 行用“/”隔开，空位用数字压缩；空格后 w/b 表示轮到谁
func (b *Board) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc, ok := b.PieceAt(SquareAt(r, c))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if b.turn == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// DecodeFEN 解析 FEN；摆子规则同 PlacePiece，且要求双方各有一个将帅
func DecodeFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, ErrInvalidFEN
	}
	turn := Red
	if len(parts) > 1 {
		s, ok := ParseSide(parts[1])
		if !ok {
			return nil, fmt.Errorf("%w: side %q", ErrInvalidFEN, parts[1])
		}
		turn = s
	}

	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: %d rows", ErrInvalidFEN, len(rows))
	}
	var layout []Placement
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, fmt.Errorf("%w: row %d too long", ErrInvalidFEN, r)
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			kind, ok := letterToKind[unicode.ToLower(ch)]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = Red
			}
			layout = append(layout, Placement{Kind: kind, Row: r, Col: c, Side: side})
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrInvalidFEN, r, c)
		}
	}

	b, err := NewBoardFromLayout(layout, turn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return b, nil
}
