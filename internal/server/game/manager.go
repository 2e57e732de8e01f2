package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"xiangqi/internal/server/events"
	"xiangqi/internal/server/store"
	"xiangqi/internal/xiangqi"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Session

	store  store.Store
	pub    events.Publisher
	layout []xiangqi.Placement
	policy xiangqi.ReselectPolicy
	logger *slog.Logger
	gameLg *slog.Logger
	now    func() time.Time
}

type Option func(*Manager)

func WithStore(s store.Store) Option {
	return func(m *Manager) { m.store = s }
}

func WithPublisher(p events.Publisher) Option {
	return func(m *Manager) { m.pub = p }
}

// WithLayout 新对局的开局摆法，默认标准开局
func WithLayout(layout []xiangqi.Placement) Option {
	return func(m *Manager) { m.layout = layout }
}

func WithReselect(p xiangqi.ReselectPolicy) Option {
	return func(m *Manager) { m.policy = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		games:  make(map[string]*Session),
		store:  store.NewMemoryStore(),
		pub:    events.Nop{},
		layout: xiangqi.StandardLayout(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.gameLg = m.logger.With("component", "game")
	m.logger = m.logger.With("component", "manager")
	return m
}

func (m *Manager) gameOptions(start *xiangqi.Board, policy xiangqi.ReselectPolicy) []xiangqi.Option {
	return []xiangqi.Option{
		xiangqi.WithBoard(start),
		xiangqi.WithReselect(policy),
		xiangqi.WithLogger(m.gameLg),
	}
}

// NewGame 按配置的开局建一局新棋，保存并广播
func (m *Manager) NewGame(ctx context.Context) (*Session, error) {
	start, err := xiangqi.NewBoardFromLayout(m.layout, xiangqi.Red)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	g, err := xiangqi.NewGame(m.gameOptions(start, m.policy)...)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	now := m.now()
	s := &Session{
		id:        uuid.NewString(),
		createdAt: now,
		game:      g,
		startFEN:  start.Encode(),
		updatedAt: now,
	}
	if err := m.store.Save(ctx, s.snapshot()); err != nil {
		return nil, fmt.Errorf("save game %s: %w", s.id, err)
	}

	m.mu.Lock()
	m.games[s.id] = s
	m.mu.Unlock()

	m.publish(ctx, s, events.GameCreated, nil)
	m.logger.Info("Game created", "id", s.id)
	return s, nil
}

// Get 先查内存，再查存储（服务重启后从快照恢复）
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.games[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	snap, err := m.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	restored, err := m.restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.games[id]; ok {
		return s, nil // 并发恢复时以先放进去的为准
	}
	m.games[id] = restored
	m.logger.Info("Game restored", "id", id, "plies", snap.Plies)
	return restored, nil
}

func (m *Manager) restore(snap store.Snapshot) (*Session, error) {
	cur, err := xiangqi.DecodeFEN(snap.FEN)
	if err != nil {
		return nil, err
	}
	start, err := xiangqi.DecodeFEN(snap.StartFEN)
	if err != nil {
		return nil, err
	}
	var prev *xiangqi.Board
	if snap.PrevFEN != "" {
		if prev, err = xiangqi.DecodeFEN(snap.PrevFEN); err != nil {
			return nil, err
		}
	}
	policy := xiangqi.DropSelection
	if snap.Reselect {
		policy = xiangqi.ReselectOnIllegalClick
	}
	g, err := xiangqi.Restore(cur, prev, snap.Plies, m.gameOptions(start, policy)...)
	if err != nil {
		return nil, err
	}
	return &Session{
		id:        snap.ID,
		createdAt: snap.CreatedAt,
		game:      g,
		startFEN:  snap.StartFEN,
		updatedAt: snap.UpdatedAt,
	}, nil
}

// Do 在会话锁内执行 fn。局面有变化时保存快照并广播对应事件；
// fn 返回错误时不保存也不广播。
func (m *Manager) Do(ctx context.Context, id string, fn func(g *xiangqi.Game) error) error {
	return m.do(ctx, id, "", fn)
}

// Undo 悔一步；view 在同一把锁内读取悔棋后的状态，可以为 nil
func (m *Manager) Undo(ctx context.Context, id string, view func(g *xiangqi.Game)) error {
	return m.do(ctx, id, events.MoveUndone, func(g *xiangqi.Game) error {
		if err := g.Undo(); err != nil {
			return err
		}
		if view != nil {
			view(g)
		}
		return nil
	})
}

// Reset 重开；终局后也可以调用
func (m *Manager) Reset(ctx context.Context, id string, view func(g *xiangqi.Game)) error {
	return m.do(ctx, id, events.GameReset, func(g *xiangqi.Game) error {
		if err := g.Reset(); err != nil {
			return err
		}
		if view != nil {
			view(g)
		}
		return nil
	})
}

// kind 为空时按前后变化推断事件类型
func (m *Manager) do(ctx context.Context, id string, kind events.Type, fn func(g *xiangqi.Game) error) error {
	s, err := m.Get(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := markOf(s.game)
	if err := fn(s.game); err != nil {
		return err
	}
	after := markOf(s.game)
	if after == before {
		return nil
	}

	s.updatedAt = m.now()
	if err := m.store.Save(ctx, s.snapshot()); err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}

	if kind == "" {
		kind = classify(before, after, s.startFEN)
	}
	var last *xiangqi.Move
	if mv, ok := s.game.LastMove(); ok && kind == events.MoveMade {
		last = &mv
	}
	m.publish(ctx, s, kind, last)
	if after.over && !before.over {
		m.publish(ctx, s, events.GameEnded, nil)
		m.logger.Info("Game over", "id", id, "winner", s.game.Winner().String(), "outcome", s.game.Outcome().String())
	}
	return nil
}

// classify 根据前后两个标记推断是走子、悔棋还是重开
func classify(before, after mark, startFEN string) events.Type {
	switch {
	case after.plies == before.plies+1:
		return events.MoveMade
	case after.plies == before.plies-1 && after.fen == before.prevFEN:
		return events.MoveUndone
	case after.plies == 0 && after.fen == startFEN:
		return events.GameReset
	default:
		return events.MoveMade
	}
}

// Remove 从内存和存储里删掉一局
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	_, inMemory := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()

	if !inMemory {
		if _, err := m.store.Load(ctx, id); errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	m.publishEvent(ctx, events.Event{Type: events.GameRemoved, GameID: id, At: m.now()})
	m.logger.Info("Game removed", "id", id)
	return nil
}

// Len 内存中的对局数
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Ping 检查存储是否可用
func (m *Manager) Ping(ctx context.Context) error { return m.store.Ping(ctx) }

// 调用方持有 s.mu（NewGame 时 s 还没有公开）
func (m *Manager) publish(ctx context.Context, s *Session, t events.Type, mv *xiangqi.Move) {
	g := s.game
	e := events.Event{
		Type:   t,
		GameID: s.id,
		FEN:    g.Board().Encode(),
		Turn:   g.Turn().String(),
		Plies:  g.MoveCount(),
		At:     m.now(),
	}
	if mv != nil {
		e.From = []int{mv.From.Row(), mv.From.Col()}
		e.To = []int{mv.To.Row(), mv.To.Col()}
	}
	if info, over := g.Result(); over {
		e.Winner = info.Winner.String()
		e.Outcome = info.Outcome.String()
	}
	m.publishEvent(ctx, e)
}

// 广播失败只记日志，不影响对局
func (m *Manager) publishEvent(ctx context.Context, e events.Event) {
	if err := m.pub.Publish(ctx, e); err != nil {
		m.logger.Warn("Failed to publish event", "id", e.GameID, "type", string(e.Type), "error", err)
	}
}
