// Package config loads the server configuration from YAML with environment overrides.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 1780
	defaultMaxConnections = 10000
	defaultRedisAddr      = "localhost:6379"

	defaultPlayers          = 2
	defaultTarget           = 24
	defaultTurnTimeout      = 60
	defaultRoomTimeout      = 10
	defaultAnswerWidth      = 32
	defaultJokers           = "zero"
	defaultShutdownTimeout  = 10
	defaultShutdownCheck    = 5
	defaultRoomCleanupDelay = 10

	defaultRatePerSecond    = 10
	defaultRatePerMinute    = 100
	defaultBanDuration      = 60
	defaultMessagePerSecond = 20
)

// Config is the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig is the websocket listener.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig holds the table rules and timeouts.
type GameConfig struct {
	Players     int    `yaml:"players"`
	Target      int    `yaml:"target"`
	TurnTimeout int    `yaml:"turn_timeout"` // seconds, a negative value disables the timer
	RoomTimeout int    `yaml:"room_timeout"` // minutes
	AnswerWidth int    `yaml:"answer_width"` // bytes
	Jokers      string `yaml:"jokers"`       // zero | excluded

	ShutdownTimeout       int `yaml:"shutdown_timeout"`        // minutes
	ShutdownCheckInterval int `yaml:"shutdown_check_interval"` // seconds
	RoomCleanupDelay      int `yaml:"room_cleanup_delay"`      // seconds
}

// TurnTimeoutDuration returns zero when turns are not timed.
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	if c.TurnTimeout <= 0 {
		return 0
	}
	return time.Duration(c.TurnTimeout) * time.Second
}

func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Minute
}

func (c *GameConfig) ShutdownCheckIntervalDuration() time.Duration {
	return time.Duration(c.ShutdownCheckInterval) * time.Second
}

func (c *GameConfig) RoomCleanupDelayDuration() time.Duration {
	return time.Duration(c.RoomCleanupDelay) * time.Second
}

// SecurityConfig groups the connection guards.
type SecurityConfig struct {
	AllowedOrigins []string           `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig    `yaml:"rate_limit"`
	MessageLimit   MessageLimitConfig `yaml:"message_limit"`
}

// RateLimitConfig limits new connections per IP.
type RateLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
	MaxPerMinute int `yaml:"max_per_minute"`
	BanDuration  int `yaml:"ban_duration"` // seconds
}

func (c *RateLimitConfig) BanDurationTime() time.Duration {
	return time.Duration(c.BanDuration) * time.Second
}

// MessageLimitConfig limits messages per client.
type MessageLimitConfig struct {
	MaxPerSecond int `yaml:"max_per_second"`
}

// Load reads the YAML file at path, applies environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
// Environment overrides still apply.
func Default() *Config {
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.Host, defaultHost)
	setDefault(&c.Server.Port, defaultPort)
	setDefault(&c.Server.MaxConnections, defaultMaxConnections)
	setDefault(&c.Redis.Addr, defaultRedisAddr)

	setDefault(&c.Game.Players, defaultPlayers)
	setDefault(&c.Game.Target, defaultTarget)
	setDefault(&c.Game.TurnTimeout, defaultTurnTimeout)
	setDefault(&c.Game.RoomTimeout, defaultRoomTimeout)
	setDefault(&c.Game.AnswerWidth, defaultAnswerWidth)
	setDefault(&c.Game.Jokers, defaultJokers)
	setDefault(&c.Game.ShutdownTimeout, defaultShutdownTimeout)
	setDefault(&c.Game.ShutdownCheckInterval, defaultShutdownCheck)
	setDefault(&c.Game.RoomCleanupDelay, defaultRoomCleanupDelay)

	if len(c.Security.AllowedOrigins) == 0 {
		c.Security.AllowedOrigins = []string{"*"}
	}
	setDefault(&c.Security.RateLimit.MaxPerSecond, defaultRatePerSecond)
	setDefault(&c.Security.RateLimit.MaxPerMinute, defaultRatePerMinute)
	setDefault(&c.Security.RateLimit.BanDuration, defaultBanDuration)
	setDefault(&c.Security.MessageLimit.MaxPerSecond, defaultMessagePerSecond)
}

func setDefault[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}

func (c *Config) applyEnv() {
	envString("SERVER_HOST", &c.Server.Host)
	envInt("SERVER_PORT", &c.Server.Port)
	envInt("SERVER_MAX_CONNECTIONS", &c.Server.MaxConnections)
	envString("REDIS_ADDR", &c.Redis.Addr)
	envString("REDIS_PASSWORD", &c.Redis.Password)
	envInt("REDIS_DB", &c.Redis.DB)
	envInt("GAME_PLAYERS", &c.Game.Players)
	envInt("GAME_TARGET", &c.Game.Target)
	envInt("GAME_TURN_TIMEOUT", &c.Game.TurnTimeout)
	envString("GAME_JOKERS", &c.Game.Jokers)
	if v := os.Getenv("SECURITY_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for o := range strings.SplitSeq(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Security.AllowedOrigins = origins
	}
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
