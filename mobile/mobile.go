// Package mobile 给 gomobile bind 用的入口：在本机起一个只带内存存储的服务，
// 安卓 / iOS 外壳用 WebView 打开 /web/。
package mobile

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"xiangqi/internal/logging"
	"xiangqi/internal/preset"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
)

var (
	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
)

// StartServer 在 127.0.0.1:port 上启动服务。
// webDir: 解压后的前端文件目录
// layoutPath: 开局文件，空表示标准开局
// port: 例如 "2888"；"0" 表示随机端口，用 Addr 取实际地址
func StartServer(webDir, layoutPath, port string) error {
	mu.Lock()
	defer mu.Unlock()
	if srv != nil {
		return errors.New("server already running")
	}

	layout, err := preset.Load(layoutPath)
	if err != nil {
		return err
	}
	logger := logging.New("info", "text", nil)
	mgr := game.NewManager(game.WithLayout(layout), game.WithLogger(logger))

	ln, err := net.Listen("tcp", "127.0.0.1:"+port)
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)
	s := &http.Server{Handler: httpserver.NewRouter(mgr, logger, webDir)}
	srv, listener = s, ln

	// 放到后台，不阻塞 UI 线程
	go func() {
		if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Mobile server started", "addr", ln.Addr().String(), "web_dir", webDir)
	return nil
}

// Addr 当前监听地址；未启动时为空
func Addr() string {
	mu.Lock()
	defer mu.Unlock()
	if listener == nil {
		return ""
	}
	return listener.Addr().String()
}

func StopServer() error {
	mu.Lock()
	defer mu.Unlock()
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	srv, listener = nil, nil
	return err
}
