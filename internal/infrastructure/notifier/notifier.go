// Package notifier показывает пользователю короткие уведомления, которые
// сами исчезают через заданное время.
package notifier

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/xid"

	"auction_client/internal/domain/value"
	"auction_client/pkg/logx"
)

const DefaultTTL = 3 * time.Second

type State string

const (
	StateShown     State = "shown"
	StateDismissed State = "dismissed"
)

type Notification struct {
	ID        string         `json:"id"`
	Message   string         `json:"message"`
	Severity  value.Severity `json:"severity"`
	State     State          `json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Sink получает каждое уведомление при показе и при скрытии. Notify не
// должен блокироваться.
type Sink interface {
	Notify(ctx context.Context, n Notification)
}

// Notifier без дедупликации и очереди: каждое уведомление живёт своим
// таймером.
type Notifier struct {
	clock  clockwork.Clock
	ttl    time.Duration
	active *gocache.Cache

	mu     sync.Mutex
	timers map[string]clockwork.Timer
	sinks  []Sink
}

type Option func(*Notifier)

func WithClock(clock clockwork.Clock) Option {
	return func(n *Notifier) {
		n.clock = clock
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(n *Notifier) {
		if ttl > 0 {
			n.ttl = ttl
		}
	}
}

func WithSink(sink Sink) Option {
	return func(n *Notifier) {
		n.sinks = append(n.sinks, sink)
	}
}

func New(opts ...Option) *Notifier {
	n := &Notifier{
		clock:  clockwork.NewRealClock(),
		ttl:    DefaultTTL,
		timers: make(map[string]clockwork.Timer),
	}

	for _, opt := range opts {
		opt(n)
	}

	// Запасной срок жизни на случай потерянного таймера.
	n.active = gocache.New(2*n.ttl, 4*n.ttl)

	return n
}

// AddSink подключает получателя после создания, например websocket-хаб.
func (n *Notifier) AddSink(sink Sink) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sinks = append(n.sinks, sink)
}

// Notify показывает сообщение. Пустое сообщение не показывается. Ошибки
// получателей не выходят наружу.
func (n *Notifier) Notify(ctx context.Context, message string, severity value.Severity) Notification {
	message = strings.TrimSpace(message)
	if message == "" {
		return Notification{}
	}

	now := n.clock.Now()
	notification := Notification{
		ID:        xid.New().String(),
		Message:   message,
		Severity:  severity,
		State:     StateShown,
		CreatedAt: now,
		ExpiresAt: now.Add(n.ttl),
	}

	n.active.SetDefault(notification.ID, notification)

	n.mu.Lock()
	n.timers[notification.ID] = n.clock.AfterFunc(n.ttl, func() {
		n.dismiss(context.WithoutCancel(ctx), notification)
	})
	n.mu.Unlock()

	logger(ctx).Info(
		"notification",
		slog.String(logx.FieldNotificationID, notification.ID),
		slog.String(logx.FieldSeverity, severity.String()),
		slog.String("message", message),
	)

	n.publish(ctx, notification)

	return notification
}

func (n *Notifier) dismiss(ctx context.Context, notification Notification) {
	n.active.Delete(notification.ID)

	n.mu.Lock()
	delete(n.timers, notification.ID)
	n.mu.Unlock()

	notification.State = StateDismissed
	n.publish(ctx, notification)
}

func (n *Notifier) publish(ctx context.Context, notification Notification) {
	n.mu.Lock()
	sinks := slices.Clone(n.sinks)
	n.mu.Unlock()

	for _, sink := range sinks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger(ctx).Error("notification sink panic", slog.Any("panic", r))
				}
			}()

			sink.Notify(ctx, notification)
		}()
	}
}

// Active видимые сейчас уведомления от старых к новым.
func (n *Notifier) Active() []Notification {
	items := n.active.Items()

	active := make([]Notification, 0, len(items))
	for _, item := range items {
		if notification, ok := item.Object.(Notification); ok {
			active = append(active, notification)
		}
	}

	// xid упорядочен по времени создания.
	slices.SortFunc(active, func(a, b Notification) int {
		return strings.Compare(a.ID, b.ID)
	})

	return active
}

// Close останавливает таймеры. Видимые уведомления остаются в списке.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
}
