package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// Handler /api/* 的处理函数
type Handler struct {
	mgr    *game.Manager
	logger *slog.Logger
}

func NewHandler(mgr *game.Manager, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mgr: mgr, logger: logger.With("component", "http")}
}

func (h *Handler) NewGame(c *gin.Context) {
	s, err := h.mgr.NewGame(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	var resp StateResponse
	err = h.mgr.Do(c.Request.Context(), s.ID(), func(g *xiangqi.Game) error {
		resp = buildState(s.ID(), g)
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) State(c *gin.Context) {
	var req GameRequest
	if !bind(c, &req) {
		return
	}
	var resp StateResponse
	err := h.mgr.Do(c.Request.Context(), req.GameID, func(g *xiangqi.Game) error {
		resp = buildState(req.GameID, g)
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Click(c *gin.Context) {
	var req ClickRequest
	if !bind(c, &req) {
		return
	}
	sq := xiangqi.NoSquare
	if !req.Outside {
		sq = xiangqi.SquareAt(req.Row, req.Col)
	}
	var resp ClickResponse
	err := h.mgr.Do(c.Request.Context(), req.GameID, func(g *xiangqi.Game) error {
		resp.Result = g.Click(sq).String()
		resp.StateResponse = buildState(req.GameID, g)
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Play 直接提交一步，不经过选子
func (h *Handler) Play(c *gin.Context) {
	var req PlayRequest
	if !bind(c, &req) {
		return
	}
	var resp StateResponse
	err := h.mgr.Do(c.Request.Context(), req.GameID, func(g *xiangqi.Game) error {
		if err := g.Move(req.Move.From.square(), req.Move.To.square()); err != nil {
			return err
		}
		resp = buildState(req.GameID, g)
		return nil
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Undo(c *gin.Context) {
	var req GameRequest
	if !bind(c, &req) {
		return
	}
	var resp StateResponse
	err := h.mgr.Undo(c.Request.Context(), req.GameID, func(g *xiangqi.Game) {
		resp = buildState(req.GameID, g)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Reset(c *gin.Context) {
	var req GameRequest
	if !bind(c, &req) {
		return
	}
	var resp StateResponse
	err := h.mgr.Reset(c.Request.Context(), req.GameID, func(g *xiangqi.Game) {
		resp = buildState(req.GameID, g)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Store: "connected", Games: h.mgr.Len()}
	if err := h.mgr.Ping(ctx); err != nil {
		resp.Store = "disconnected"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad json: " + err.Error()})
		return false
	}
	return true
}

// statusOf 把领域错误映射成 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, xiangqi.ErrIllegalMove):
		return http.StatusBadRequest
	case errors.Is(err, xiangqi.ErrGameOver), errors.Is(err, xiangqi.ErrNoUndo):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(code, ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}
