package game

import (
	"sync"
	"time"

	"xiangqi/internal/server/store"
	"xiangqi/internal/xiangqi"
)

// Session 一局棋 + 元数据。同一时刻只有一个调用方能动 game
type Session struct {
	id        string
	createdAt time.Time

	mu        sync.Mutex
	game      *xiangqi.Game
	startFEN  string
	updatedAt time.Time
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// FEN 当前局面
func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Board().Encode()
}

// 调用方持有 s.mu
func (s *Session) snapshot() store.Snapshot {
	snap := store.Snapshot{
		ID:        s.id,
		FEN:       s.game.Board().Encode(),
		StartFEN:  s.startFEN,
		Plies:     s.game.MoveCount(),
		Reselect:  s.game.Policy() == xiangqi.ReselectOnIllegalClick,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
	if prev := s.game.PrevBoard(); prev != nil {
		snap.PrevFEN = prev.Encode()
	}
	return snap
}

// 用于判断一次操作改变了什么
type mark struct {
	fen     string
	prevFEN string
	plies   int
	over    bool
}

func markOf(g *xiangqi.Game) mark {
	m := mark{
		fen:   g.Board().Encode(),
		plies: g.MoveCount(),
		over:  g.State() == xiangqi.GameOver,
	}
	if prev := g.PrevBoard(); prev != nil {
		m.prevFEN = prev.Encode()
	}
	return m
}
