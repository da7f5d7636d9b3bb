package api

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"auction_client/pkg/httpx"
	"auction_client/pkg/logx"
)

const (
	DefaultTimeout    = 5 * time.Second
	DefaultDealsLimit = 5
	DefaultPlayerID   = "human"
)

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	PlayerID       string
	DealsLimit     int
	LogFieldMaxLen int
}

// Client ходит в HTTP API сервера аукциона. Повторов нет: следующая попытка
// случится на следующем такте опроса.
type Client struct {
	baseURL    string
	playerID   string
	dealsLimit int
	httpClient *http.Client
}

type ClientOption func(*http.Client)

// WithTransport подменяет нижний транспорт (до логирования и trace id).
func WithTransport(next http.RoundTripper) ClientOption {
	return func(c *http.Client) {
		c.Transport = next
	}
}

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q: scheme and host are required", cfg.BaseURL)
	}

	// Сессия пользователя на сервере живёт в cookie.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookiejar.New: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.DealsLimit <= 0 {
		cfg.DealsLimit = DefaultDealsLimit
	}

	if cfg.PlayerID == "" {
		cfg.PlayerID = DefaultPlayerID
	}

	httpClient := &http.Client{
		Transport: http.DefaultTransport,
		Jar:       jar,
		Timeout:   cfg.Timeout,
	}

	for _, opt := range opts {
		opt(httpClient)
	}

	httpClient.Transport = httpx.NewTraceIDRoundTripper(
		httpx.NewLoggingRoundTripper(
			httpClient.Transport,
			httpx.WithLogFieldMaxLen(cfg.LogFieldMaxLen),
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		),
	)

	return &Client{
		baseURL:    strings.TrimRight(base.String(), "/"),
		playerID:   cfg.PlayerID,
		dealsLimit: cfg.DealsLimit,
		httpClient: httpClient,
	}, nil
}

// PlayerID идентификатор пользователя в аукционе.
func (c *Client) PlayerID() string {
	return c.playerID
}
