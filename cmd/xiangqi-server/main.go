package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"xiangqi/internal/config"
	"xiangqi/internal/logging"
	"xiangqi/internal/preset"
	"xiangqi/internal/server/events"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/server/store"
	"xiangqi/internal/xiangqi"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 无图形界面时会失败，忽略
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file")
	open := flag.Bool("open", false, "open the board in a browser")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := logging.New(cfg.App.LogLevel, cfg.App.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	layout, err := preset.Load(cfg.Game.Layout)
	if err != nil {
		logger.Error("Failed to load layout", "layout", cfg.Game.Layout, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 存储：Redis 或内存
	var st store.Store = store.NewMemoryStore()
	if cfg.Redis.Enabled {
		rs, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Error("Failed to connect to Redis", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}
		defer rs.Close()
		st = rs
		logger.Info("Connected to Redis", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	}

	// 事件：NATS 或丢弃
	var pub events.Publisher = events.Nop{}
	if cfg.NATS.Enabled {
		nc, err := events.Connect(cfg.NATS)
		if err != nil {
			logger.Error("Failed to connect to NATS", "url", cfg.NATS.URL, "error", err)
			os.Exit(1)
		}
		defer drain(nc)
		pub = events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix)
	}

	policy := xiangqi.DropSelection
	if cfg.Game.ReselectOnIllegalClick {
		policy = xiangqi.ReselectOnIllegalClick
	}
	mgr := game.NewManager(
		game.WithStore(st),
		game.WithPublisher(pub),
		game.WithLayout(layout),
		game.WithReselect(policy),
		game.WithLogger(logger),
	)

	if cfg.App.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: httpserver.NewRouter(mgr, logger, cfg.Server.WebDir),
	}

	go func() {
		logger.Info("Xiangqi server started",
			"addr", cfg.Server.Addr,
			"web_dir", cfg.Server.WebDir,
			"layout", cfg.Game.Layout,
			"reselect", cfg.Game.ReselectOnIllegalClick,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	if *open && cfg.Server.WebDir != "" {
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + cfg.Server.Addr)
		}()
	}

	// 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	cancel()
	logger.Info("Server stopped", "games", mgr.Len())
}

// connectRedis 连接 Redis 并 Ping 一次
func connectRedis(ctx context.Context, cfg config.RedisConfig) (*store.RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return store.NewRedisStore(client, cfg.TTL), nil
}

func drain(nc *nats.Conn) {
	if err := nc.Drain(); err != nil {
		nc.Close()
	}
}
