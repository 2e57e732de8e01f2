package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Game   GameConfig   `mapstructure:"game"`
	Redis  RedisConfig  `mapstructure:"redis"`
	NATS   NATSConfig   `mapstructure:"nats"`
}

type AppConfig struct {
	Name      string `mapstructure:"name"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// WebDir 前端静态文件目录，空表示只提供 /api
	WebDir          string        `mapstructure:"web_dir"`
}

type GameConfig struct {
	// Layout 开局文件路径；空或 "standard" 表示标准开局
	Layout                 string `mapstructure:"layout"`
	ReselectOnIllegalClick bool   `mapstructure:"reselect_on_illegal_click"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type NATSConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
	SubjectPrefix string        `mapstructure:"subject_prefix"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "xiangqi")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.web_dir", "")

	v.SetDefault("game.layout", "standard")
	v.SetDefault("game.reselect_on_illegal_click", false)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", 2*time.Second)
	v.SetDefault("nats.subject_prefix", "xiangqi")
}

// Load 从指定路径加载配置；configPath 为空时只用默认值和环境变量。
// 环境变量形如 XIANGQI_SERVER_ADDR、XIANGQI_REDIS_ENABLED。
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("XIANGQI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch strings.ToLower(c.App.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fail("app.log_level %q", c.App.LogLevel)
	}
	switch strings.ToLower(c.App.LogFormat) {
	case "json", "text":
	default:
		return fail("app.log_format %q", c.App.LogFormat)
	}
	if c.Server.Addr == "" {
		return fail("server.addr is empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fail("server.shutdown_timeout must be positive")
	}
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fail("redis.addr is empty")
		}
		if c.Redis.DB < 0 {
			return fail("redis.db %d", c.Redis.DB)
		}
		if c.Redis.TTL < 0 {
			return fail("redis.ttl must not be negative")
		}
	}
	if c.NATS.Enabled {
		if c.NATS.URL == "" {
			return fail("nats.url is empty")
		}
		if c.NATS.SubjectPrefix == "" || strings.ContainsAny(c.NATS.SubjectPrefix, " *>") {
			return fail("nats.subject_prefix %q", c.NATS.SubjectPrefix)
		}
	}
	return nil
}
