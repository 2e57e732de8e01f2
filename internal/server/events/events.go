// Package events 对外广播对局变化（建局、走子、悔棋、重开、终局）
package events

import (
	"context"
	"time"
)

type Type string

const (
	GameCreated Type = "created"
	MoveMade    Type = "moved"
	MoveUndone  Type = "undone"
	GameReset   Type = "reset"
	GameEnded   Type = "game_over"
	GameRemoved Type = "removed"
)

type Event struct {
	Type    Type      `json:"type"`
	GameID  string    `json:"game_id"`
	FEN     string    `json:"fen,omitempty"`
	Turn    string    `json:"turn,omitempty"`
	From    []int     `json:"from,omitempty"` // [row, col]
	To      []int     `json:"to,omitempty"`
	Plies   int       `json:"plies"`
	Winner  string    `json:"winner,omitempty"`
	Outcome string    `json:"outcome,omitempty"`
	At      time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop 不广播
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
