package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiangqi/internal/config"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "xiangqi.game.abc.moved", Subject("xiangqi", "abc", MoveMade))
	assert.Equal(t, "dev.xq.game.1.game_over", Subject("dev.xq", "1", GameEnded))
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), Event{Type: GameCreated}))
}

func TestEventJSON(t *testing.T) {
	e := Event{Type: MoveMade, GameID: "g", From: []int{9, 1}, To: []int{7, 2}, Plies: 1}
	data, err := sonic.Marshal(e)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"type":"moved"`)
	assert.Contains(t, s, `"from":[9,1]`)
	assert.NotContains(t, s, `"winner"`)
}

// 需要本地 NATS：INTEGRATION_TEST=1
func TestNATSPublisher(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("跳过集成测试，设置 INTEGRATION_TEST=1 来运行")
	}
	nc, err := Connect(config.NATSConfig{
		URL:           "nats://localhost:4222",
		MaxReconnects: 1,
		ReconnectWait: time.Second,
	})
	require.NoError(t, err)
	defer nc.Close()

	sub, err := nc.SubscribeSync("test.game.*.>")
	require.NoError(t, err)

	p := NewNATSPublisher(nc, "test")
	assert.True(t, p.Connected())
	require.NoError(t, p.Publish(context.Background(), Event{Type: GameReset, GameID: "g1"}))

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "test.game.g1.reset", msg.Subject)

	var got Event
	require.NoError(t, sonic.Unmarshal(msg.Data, &got))
	assert.Equal(t, GameReset, got.Type)
}
