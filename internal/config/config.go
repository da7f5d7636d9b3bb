package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App     App
	Log     Log
	API     API
	Poll    Poll
	Notify  Notify
	HTTP    HTTP
	Probe   Probe
	Metrics Metrics
	Bot     Bot
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"auction-client"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Log struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"text"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"7"`
}

// API сервер аукциона.
type API struct {
	BaseURL        string        `env:"API_BASE_URL,required,notEmpty"`
	Timeout        time.Duration `env:"API_TIMEOUT" envDefault:"5s"`
	PlayerID       string        `env:"API_PLAYER_ID" envDefault:"human"`
	DealsLimit     int           `env:"API_DEALS_LIMIT" envDefault:"5"`
	LogFieldMaxLen int           `env:"API_LOG_MAX_LEN" envDefault:"2048"`
}

type Poll struct {
	// Screens экраны, которые опрашиваются постоянно.
	Screens            []string      `env:"POLL_SCREENS" envDefault:"auction,game,statistics" envSeparator:","`
	AuctionInterval    time.Duration `env:"POLL_AUCTION_INTERVAL" envDefault:"1s"`
	GameInterval       time.Duration `env:"POLL_GAME_INTERVAL" envDefault:"5s"`
	StatisticsInterval time.Duration `env:"POLL_STATISTICS_INTERVAL" envDefault:"10s"`
	PatchMaxCycles     int           `env:"POLL_PATCH_MAX_CYCLES" envDefault:"1"`
}

type Notify struct {
	TTL time.Duration `env:"NOTIFY_TTL" envDefault:"3s"`
}

type HTTP struct {
	ListenAddress   string        `env:"HTTP_LISTEN_ADDRESS" envDefault:"127.0.0.1:8090"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	AllowedOrigins  []string      `env:"HTTP_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogFieldMaxLen  int           `env:"HTTP_LOG_MAX_LEN" envDefault:"2048"`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS"`
}

// Bot чат Telegram для уведомлений. Без токена бот не запускается.
type Bot struct {
	Token  string `env:"BOT_TOKEN" json:"-"`
	ChatID int64  `env:"BOT_CHAT_ID"`
}

func (b Bot) Enabled() bool {
	return b.Token != "" && b.ChatID != 0
}

func Load() (Config, error) {
	_ = godotenv.Load()

	return Parse()
}

// Parse читает конфигурацию только из окружения процесса.
func Parse() (Config, error) {
	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.API.BaseURL = strings.TrimRight(correctNewlines(config.API.BaseURL), "/")

	return config, nil
}

func correctNewlines(s string) string {
	return strings.NewReplacer(`"`, "", `\n`, "\n").Replace(s)
}
