package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/xid"
	"github.com/samber/lo"

	"auction_client/internal/infrastructure/notifier"
	"auction_client/internal/render"
	"auction_client/pkg/logx"
	"auction_client/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	EventFrame        = "frame"
	EventMutations    = "mutations"
	EventNotification = "notification"
)

type HubConfig struct {
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	SendBuffer     int
	// CheckOrigin nil означает проверку на тот же origin.
	CheckOrigin    func(r *http.Request) bool
}

func DefaultHubConfig() HubConfig {
	return HubConfig{
		WriteTimeout:   10 * time.Second,
		ReadTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 1024,
		SendBuffer:     256,
	}
}

// AllowOrigins пропускает websocket-клиентов с Origin из списка. "*"
// разрешает всех, запрос без Origin приходит не из браузера и тоже
// разрешён.
func AllowOrigins(origins []string) func(r *http.Request) bool {
	allowAll := lo.Contains(origins, "*")

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}

		return lo.ContainsBy(origins, func(allowed string) bool {
			return strings.EqualFold(allowed, origin)
		})
	}
}

// Hub рассылает кадры, изменения элементов и уведомления всем
// подключённым websocket-клиентам.
type Hub struct {
	config   HubConfig
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[*connection]struct{}

	broadcast chan []byte
}

type connection struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

func NewHub(config HubConfig) *Hub {
	defaults := DefaultHubConfig()

	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}

	if config.ReadTimeout <= 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}

	if config.PingInterval <= 0 {
		config.PingInterval = defaults.PingInterval
	}

	if config.MaxMessageSize <= 0 {
		config.MaxMessageSize = defaults.MaxMessageSize
	}

	if config.SendBuffer <= 0 {
		config.SendBuffer = defaults.SendBuffer
	}

	return &Hub{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		conns:     make(map[*connection]struct{}),
		broadcast: make(chan []byte, config.SendBuffer),
	}
}

// Run раздаёт сообщения, пока жив контекст. При остановке закрывает все
// соединения.
func (h *Hub) Run(ctx context.Context) error {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return nil
		case message := <-h.broadcast:
			h.fanOut(ctx, message)
		}
	}
}

// PublishFrame отправляет клиентам изменения экрана. Кадр без изменений не
// отправляется.
func (h *Hub) PublishFrame(ctx context.Context, frame render.Frame, mutations []render.Mutation) {
	if len(mutations) == 0 {
		return
	}

	h.enqueue(ctx, EventMutations, mutations)
}

// Notify реализует notifier.Sink.
func (h *Hub) Notify(ctx context.Context, notification notifier.Notification) {
	h.enqueue(ctx, EventNotification, notification)
}

// Connections число подключённых клиентов.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.conns)
}

// Upgrade переводит запрос в websocket. initial уходят клиенту первыми,
// до общих рассылок.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request, initial ...[]byte) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrader.Upgrade: %w", err)
	}

	c := &connection{
		id:   xid.New().String(),
		conn: conn,
		send: make(chan []byte, max(h.config.SendBuffer, len(initial))),
		hub:  h,
	}

	for _, message := range initial {
		c.send <- message
	}

	h.register(c)

	ctx := context.WithoutCancel(r.Context())
	go c.writePump(ctx)
	go c.readPump(ctx)

	logger(ctx).Info("websocket connected", slog.String(logx.FieldConnectionID, c.id))

	return nil
}

func (h *Hub) enqueue(ctx context.Context, event string, data any) {
	message, err := encodeEvent(event, data)
	if err != nil {
		logger(ctx).Error("encodeEvent", logx.Error(err))
		return
	}

	select {
	case h.broadcast <- message:
	default:
		logger(ctx).Warn("broadcast channel full, dropping message", slog.String("event", event))
	}
}

func (h *Hub) fanOut(ctx context.Context, message []byte) {
	var slow []*connection

	// send закрывается только под записывающей блокировкой.
	h.mu.RLock()
	for c := range h.conns {
		select {
		case c.send <- message:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		logger(ctx).Warn("connection send buffer full, closing", slog.String(logx.FieldConnectionID, c.id))
		h.unregister(c)
		_ = c.conn.Close()
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		close(c.send)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.conns {
		delete(h.conns, c)
		close(c.send)
	}
}

func (c *connection) writePump(ctx context.Context) {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))

			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger(ctx).Warn("websocket write", slog.String(logx.FieldConnectionID, c.id), logx.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump нужен для pong и обнаружения закрытия. Сообщения клиента
// игнорируются: действия приходят через HTTP.
func (c *connection) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()

		logger(ctx).Info("websocket disconnected", slog.String(logx.FieldConnectionID, c.id))
	}()

	c.conn.SetReadLimit(c.hub.config.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger(ctx).Warn("websocket closed", slog.String(logx.FieldConnectionID, c.id), logx.Error(err))
			}

			return
		}
	}
}

func encodeEvent(event string, data any) ([]byte, error) {
	b, err := json.Marshal(rest.Event{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return b, nil
}
