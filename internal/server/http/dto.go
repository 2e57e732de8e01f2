package httpserver

import (
	"xiangqi/internal/xiangqi"
)

// 前端用 (row, col) 表示格子
type PointDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MoveDTO struct {
	From PointDTO `json:"from"`
	To   PointDTO `json:"to"`
}

type PieceDTO struct {
	Kind string `json:"kind"`
	Side string `json:"side"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type CheckDTO struct {
	Red   bool `json:"red"`
	Black bool `json:"black"`
}

// GameRequest state / undo / reset 共用
type GameRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

// ClickRequest Outside 为 true 时表示点在棋盘外，忽略 Row/Col
type ClickRequest struct {
	GameID  string `json:"game_id" binding:"required"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Outside bool   `json:"outside"`
}

type PlayRequest struct {
	GameID string  `json:"game_id" binding:"required"`
	Move   MoveDTO `json:"move"`
}

// StateResponse 每次操作后前端重绘需要的全部信息
type StateResponse struct {
	GameID     string     `json:"game_id"`
	Position   string     `json:"position"` // FEN
	ToMove     string     `json:"to_move"`  // "red" / "black"
	State      string     `json:"state"`    // "in_progress" / "game_over"
	Status     string     `json:"status"`   // "ongoing" / "checkmate" / "stalemate"
	Winner     string     `json:"winner,omitempty"`
	InCheck    CheckDTO   `json:"in_check"`
	Pieces     []PieceDTO `json:"pieces"`
	Selected   *PointDTO  `json:"selected,omitempty"`
	Highlights []PointDTO `json:"highlights"`
	LegalMoves []MoveDTO  `json:"legal_moves"`
	LastMove   *MoveDTO   `json:"last_move,omitempty"`
	Plies      int        `json:"plies"`
	CanUndo    bool       `json:"can_undo"`
}

type ClickResponse struct {
	Result string `json:"result"` // selected / deselected / moved / rejected / ignored
	StateResponse
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Store string `json:"store"`
	Games int    `json:"games"`
}

func pointOf(sq xiangqi.Square) PointDTO {
	return PointDTO{Row: sq.Row(), Col: sq.Col()}
}

func (p PointDTO) square() xiangqi.Square {
	return xiangqi.SquareAt(p.Row, p.Col)
}

func moveToDTO(m xiangqi.Move) MoveDTO {
	return MoveDTO{From: pointOf(m.From), To: pointOf(m.To)}
}

func movesToDTO(ms []xiangqi.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func pointsToDTO(sqs []xiangqi.Square) []PointDTO {
	out := make([]PointDTO, len(sqs))
	for i, sq := range sqs {
		out[i] = pointOf(sq)
	}
	return out
}

// buildState 调用方持有会话锁
func buildState(id string, g *xiangqi.Game) StateResponse {
	b := g.Board()
	resp := StateResponse{
		GameID:     id,
		Position:   b.Encode(),
		ToMove:     g.Turn().String(),
		State:      g.State().String(),
		Status:     g.Outcome().String(),
		InCheck:    CheckDTO{Red: g.InCheck(xiangqi.Red), Black: g.InCheck(xiangqi.Black)},
		Highlights: pointsToDTO(g.Highlights()),
		Plies:      g.MoveCount(),
		CanUndo:    g.CanUndo(),
	}
	if info, over := g.Result(); over {
		resp.Winner = info.Winner.String()
		resp.LegalMoves = []MoveDTO{}
	} else {
		resp.LegalMoves = movesToDTO(b.LegalMovesForSide(b.SideToMove()))
	}
	for _, pc := range g.Pieces() {
		resp.Pieces = append(resp.Pieces, PieceDTO{
			Kind: pc.Kind.String(),
			Side: pc.Side.String(),
			Row:  pc.Square.Row(),
			Col:  pc.Square.Col(),
		})
	}
	if pc, ok := g.Selected(); ok {
		p := pointOf(pc.Square)
		resp.Selected = &p
	}
	if m, ok := g.LastMove(); ok {
		dto := moveToDTO(m)
		resp.LastMove = &dto
	}
	return resp
}
