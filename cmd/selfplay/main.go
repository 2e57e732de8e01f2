package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/logrusorgru/aurora"

	"xiangqi/internal/logging"
	"xiangqi/internal/preset"
	"xiangqi/internal/xiangqi"
)

// Record 每半步一条，可作为其它实现的走法生成对照数据
type Record struct {
	Game  int      `json:"game"`
	Ply   int      `json:"ply"`
	FEN   string   `json:"fen"`
	Legal []string `json:"legal"`
	Move  string   `json:"move,omitempty"`
}

type tally struct {
	redWins, blackWins int
	checkmates         int
	stalemates         int
	unfinished         int
	plies              int
}

func main() {
	games := flag.Int("games", 100, "number of games to play")
	maxPlies := flag.Int("max-plies", 300, "stop a game after this many plies")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	layoutPath := flag.String("layout", "", "layout file; empty means standard")
	out := flag.String("out", "", "write per-ply JSON lines to this file")
	flag.Parse()

	logger := logging.New("info", "text", os.Stderr)

	layout, err := preset.Load(*layoutPath)
	if err != nil {
		logger.Error("Failed to load layout", "error", err)
		os.Exit(1)
	}

	var w *bufio.Writer
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("Failed to create output", "path", *out, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		w = bufio.NewWriter(f)
		defer w.Flush()
	}

	rng := rand.New(rand.NewPCG(*seed, 0))
	bar := newBar(*games, "selfplay")
	var t tally
	start := time.Now()

	for g := 0; g < *games; g++ {
		if err := playGame(g, layout, *maxPlies, rng, w, &t); err != nil {
			logger.Error("Game failed", "game", g, "error", err)
			os.Exit(1)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Println()

	report(logger, t, *games, *seed, time.Since(start))
}

// playGame 双方都随机走合法着法，直到终局或步数上限
func playGame(n int, layout []xiangqi.Placement, maxPlies int, rng *rand.Rand, w *bufio.Writer, t *tally) error {
	game, err := xiangqi.NewGame(xiangqi.WithLayout(layout), xiangqi.WithLogger(logging.Discard()))
	if err != nil {
		return err
	}
	for ply := 0; ply < maxPlies; ply++ {
		if game.State() == xiangqi.GameOver {
			break
		}
		b := game.Board()
		legal := b.LegalMovesForSide(b.SideToMove())
		m := legal[rng.IntN(len(legal))]
		if w != nil {
			if err := writeRecord(w, Record{Game: n, Ply: ply, FEN: b.Encode(), Legal: moveStrings(legal), Move: m.String()}); err != nil {
				return err
			}
		}
		if err := game.Move(m.From, m.To); err != nil {
			return err
		}
	}

	t.plies += game.MoveCount()
	info, over := game.Result()
	if !over {
		t.unfinished++
		return nil
	}
	if w != nil {
		b := game.Board()
		if err := writeRecord(w, Record{Game: n, Ply: game.MoveCount(), FEN: b.Encode(), Legal: []string{}}); err != nil {
			return err
		}
	}
	switch info.Winner {
	case xiangqi.Red:
		t.redWins++
	case xiangqi.Black:
		t.blackWins++
	}
	if info.Outcome == xiangqi.Checkmate {
		t.checkmates++
	} else {
		t.stalemates++
	}
	return nil
}

func moveStrings(ms []xiangqi.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

func writeRecord(w *bufio.Writer, r Record) error {
	data, err := sonic.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

func report(logger *slog.Logger, t tally, games int, seed uint64, elapsed time.Duration) {
	fmt.Println(aurora.Bold("=== Selfplay ==="))
	fmt.Printf("Games:      %d (seed %d)\n", games, seed)
	fmt.Printf("Red wins:   %v\n", aurora.Red(t.redWins))
	fmt.Printf("Black wins: %v\n", aurora.Cyan(t.blackWins))
	fmt.Printf("Checkmate:  %d  Stalemate: %d  Unfinished: %d\n", t.checkmates, t.stalemates, t.unfinished)
	if games > 0 {
		fmt.Printf("Avg plies:  %.1f\n", float64(t.plies)/float64(games))
	}
	logger.Info("Selfplay finished", "games", games, "elapsed", elapsed.String())
}
