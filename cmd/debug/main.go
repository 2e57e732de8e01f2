package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/logrusorgru/aurora"

	"xiangqi/internal/preset"
	"xiangqi/internal/xiangqi"
)

var glyphs = map[xiangqi.Side]map[xiangqi.Kind]string{
	xiangqi.Red: {
		xiangqi.Lord: "帅", xiangqi.Advisor: "仕", xiangqi.Elephant: "相",
		xiangqi.Horse: "马", xiangqi.Chariot: "车", xiangqi.Cannon: "炮", xiangqi.Soldier: "兵",
	},
	xiangqi.Black: {
		xiangqi.Lord: "将", xiangqi.Advisor: "士", xiangqi.Elephant: "象",
		xiangqi.Horse: "马", xiangqi.Chariot: "车", xiangqi.Cannon: "炮", xiangqi.Soldier: "卒",
	},
}

func main() {
	fen := flag.String("fen", "", "position in FEN")
	layout := flag.String("layout", "", "layout file (.cfg / .yaml)")
	depth := flag.Int("perft", 0, "run perft to this depth")
	flag.Parse()

	b, err := loadBoard(*fen, *layout)
	if err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}

	printBoard(b)
	side := b.SideToMove()
	fmt.Println("FEN:", b.Encode())
	fmt.Println("Side to move:", side)
	fmt.Println("Pseudo legal moves:", len(b.PseudoLegalMovesForSide(side)))
	fmt.Println("Legal moves:", b.LegalMoveCount(side))
	if b.InCheck(side) {
		for _, pc := range b.Checkers(side) {
			fmt.Println(aurora.Yellow(fmt.Sprintf("Check from %s %s at %s", pc.Side, pc.Kind, pc.Square)))
		}
	}
	fmt.Println("Status:", b.Status())

	for d := 1; d <= *depth; d++ {
		fmt.Printf("perft(%d) = %d\n", d, b.Perft(d))
	}
}

func loadBoard(fen, layout string) (*xiangqi.Board, error) {
	if fen != "" {
		return xiangqi.DecodeFEN(fen)
	}
	placements, err := preset.Load(layout)
	if err != nil {
		return nil, err
	}
	return xiangqi.NewBoardFromLayout(placements, xiangqi.Red)
}

// printBoard 黑方在上，河界画在第 4、5 行之间
func printBoard(b *xiangqi.Board) {
	fmt.Println("   0 1 2 3 4 5 6 7 8")
	for r := 0; r < xiangqi.Rows; r++ {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d ", r)
		for c := 0; c < xiangqi.Cols; c++ {
			pc, ok := b.PieceAt(xiangqi.SquareAt(r, c))
			switch {
			case !ok:
				sb.WriteString(" ·")
			case pc.Side == xiangqi.Red:
				sb.WriteString(aurora.Red(glyphs[pc.Side][pc.Kind]).Bold().String())
			default:
				sb.WriteString(aurora.Cyan(glyphs[pc.Side][pc.Kind]).String())
			}
		}
		fmt.Println(sb.String())
		if r == xiangqi.RiverRow-1 {
			fmt.Println("  ~~~~~~~~~~~~~~~~~~")
		}
	}
}
