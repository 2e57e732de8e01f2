package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nats-io/nats.go"

	"xiangqi/internal/config"
)

// Connect 按配置连 NATS，断线自动重连
func Connect(cfg config.NATSConfig) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("xiangqi"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.Warn("Disconnected from NATS", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.Info("NATS connection closed")
		}),
		nats.Timeout(10 * time.Second),
	}
	return nats.Connect(cfg.URL, opts...)
}

// Subject {prefix}.game.{id}.{type}
func Subject(prefix, gameID string, t Type) string {
	return fmt.Sprintf("%s.game.%s.%s", prefix, gameID, t)
}

// NATSPublisher 事件以 JSON 发到 NATS
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
	logger *slog.Logger
}

func NewNATSPublisher(nc *nats.Conn, prefix string) *NATSPublisher {
	if prefix == "" {
		prefix = "xiangqi"
	}
	return &NATSPublisher{
		nc:     nc,
		prefix: prefix,
		logger: slog.Default().With("component", "nats_publisher"),
	}
}

func (p *NATSPublisher) Publish(_ context.Context, e Event) error {
	data, err := sonic.Marshal(e)
	if err != nil {
		p.logger.Error("Failed to marshal event", "error", err)
		return err
	}
	subject := Subject(p.prefix, e.GameID, e.Type)
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish event", "subject", subject, "error", err)
		return err
	}
	p.logger.Debug("Published event", "subject", subject)
	return nil
}

// Connected 给健康检查用
func (p *NATSPublisher) Connected() bool {
	return p.nc != nil && p.nc.IsConnected()
}
