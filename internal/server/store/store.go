// Package store 持久化对局快照。快照只存 FEN 和少量元数据，
// 服务重启或多实例时可以用它重建对局。
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot 一局棋的可恢复状态
type Snapshot struct {
	ID        string    `json:"id"`
	FEN       string    `json:"fen"`
	PrevFEN   string    `json:"prev_fen,omitempty"` // 悔棋快照，空表示不能悔棋
	StartFEN  string    `json:"start_fen"`          // Reset 回到的局面
	Plies     int       `json:"plies"`
	Reselect  bool      `json:"reselect"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store interface {
	Save(ctx context.Context, s Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

func encode(s Snapshot) ([]byte, error) {
	data, err := sonic.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot %s: %w", s.ID, err)
	}
	return data, nil
}

func decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := sonic.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
