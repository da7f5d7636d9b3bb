package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"auction_client/internal/domain"
	"auction_client/internal/domain/entity"
	"auction_client/internal/domain/value"
	"auction_client/internal/infrastructure/notifier"
	"auction_client/internal/render"
	"auction_client/internal/store"
	"auction_client/pkg/contextx"
	"auction_client/pkg/logx"
)

const (
	DefaultAuctionInterval    = time.Second
	DefaultGameInterval       = 5 * time.Second
	DefaultStatisticsInterval = 10 * time.Second
)

// AuctionAPI HTTP API сервера аукциона.
type AuctionAPI interface {
	PlayerID() string

	State(ctx context.Context) (entity.AuctionState, error)
	Balances(ctx context.Context) (entity.PlayerBalances, error)
	Deals(ctx context.Context, limit int) (entity.Deals, error)
	HumanAction(ctx context.Context, action value.HumanAction) (entity.ActionAck, error)
	ResetAuction(ctx context.Context) error

	GameStatus(ctx context.Context) (entity.GameStatus, error)
	StartGame(ctx context.Context) (entity.GameAck, error)
	NextRound(ctx context.Context) (entity.RoundResult, error)
	ResetGame(ctx context.Context) (entity.GameAck, error)
	UserData(ctx context.Context) (entity.UserEnvelope, error)
	BuyProduct(ctx context.Context, productID int) (entity.UserEnvelope, error)
	SetPlayerName(ctx context.Context, name string) (string, error)

	Statistics(ctx context.Context) (entity.Statistics, error)
}

type Notifier interface {
	Notify(ctx context.Context, message string, severity value.Severity) notifier.Notification
}

// FramePublisher получает каждый отрисованный кадр и изменения элементов.
type FramePublisher interface {
	PublishFrame(ctx context.Context, frame render.Frame, mutations []render.Mutation)
}

// Reconciler опрашивает сервер по экранам, складывает ответы в Store и
// перерисовывает экран.
type Reconciler struct {
	api      AuctionAPI
	store    *store.Store
	renderer *render.Renderer
	document *render.Document
	notifier Notifier
	metrics  *Metrics
	clock    clockwork.Clock
	guard    *Guard

	intervals  map[value.Screen]time.Duration
	screens    []value.Screen
	publishers []FramePublisher

	dealsMu     sync.Mutex
	lastDealID  int
	dealsPrimed bool

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

type Option func(*Reconciler)

func WithClock(clock clockwork.Clock) Option {
	return func(r *Reconciler) {
		r.clock = clock
	}
}

func WithInterval(screen value.Screen, interval time.Duration) Option {
	return func(r *Reconciler) {
		if interval > 0 {
			r.intervals[screen] = interval
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = metrics
	}
}

func WithPublisher(publisher FramePublisher) Option {
	return func(r *Reconciler) {
		r.publishers = append(r.publishers, publisher)
	}
}

func NewReconciler(
	api AuctionAPI,
	st *store.Store,
	renderer *render.Renderer,
	document *render.Document,
	n Notifier,
	opts ...Option,
) *Reconciler {
	r := &Reconciler{
		api:      api,
		store:    st,
		renderer: renderer,
		document: document,
		notifier: n,
		clock:    clockwork.NewRealClock(),
		guard:    NewGuard(),
		intervals: map[value.Screen]time.Duration{
			value.ScreenAuction:    DefaultAuctionInterval,
			value.ScreenGame:       DefaultGameInterval,
			value.ScreenStatistics: DefaultStatisticsInterval,
		},
		screens: value.Screens(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.metrics == nil {
		r.metrics = NewMetrics(prometheus.NewRegistry())
	}

	return r
}

func (r *Reconciler) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return errors.New("reconciler is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancelFunc = cancel
	r.isRunning = true

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			r.mu.Lock()
			r.isRunning = false
			r.cancelFunc = nil
			r.mu.Unlock()
		}()

		if err := r.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("reconciler stopped", logx.Error(err))
		}
	}()

	return nil
}

func (r *Reconciler) Stop() {
	r.mu.Lock()

	if !r.isRunning {
		r.mu.Unlock()
		return
	}

	if r.cancelFunc != nil {
		r.cancelFunc()
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// IsRunning возвращает текущий статус
func (r *Reconciler) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isRunning
}

// Run опрашивает все экраны из списка до отмены контекста. У каждого экрана
// свой тикер.
func (r *Reconciler) Run(ctx context.Context) error {
	screens := r.Screens()

	logger(ctx).Info("reconciler started", slog.Int("screens", len(screens)))

	g, ctx := errgroup.WithContext(ctx)
	for _, screen := range screens {
		g.Go(func() error {
			screenCtx := contextx.WithScreen(ctx, contextx.Screen(screen))
			screenCtx = contextx.WithLogger(screenCtx, logger(ctx).With(slog.String(logx.FieldScreen, screen.String())))

			return r.poll(screenCtx, screen)
		})
	}

	err := g.Wait()

	logger(ctx).Info("reconciler stopped")

	return err
}

func (r *Reconciler) poll(ctx context.Context, screen value.Screen) error {
	ticker := r.clock.NewTicker(r.interval(screen))
	defer ticker.Stop()

	_ = r.Refresh(ctx, screen)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			_ = r.Refresh(ctx, screen)
		}
	}
}

func (r *Reconciler) interval(screen value.Screen) time.Duration {
	return r.intervals[screen]
}

// Refresh выполняет один цикл опроса экрана. Ошибка цикла уже показана
// пользователю, наружу она возвращается для вызывающего кода.
func (r *Reconciler) Refresh(ctx context.Context, screen value.Screen) error {
	start := r.clock.Now()

	err := r.cycle(ctx, screen)

	r.metrics.cycleSeconds.WithLabelValues(screen.String()).Observe(r.clock.Since(start).Seconds())

	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	r.metrics.cycles.WithLabelValues(screen.String(), outcome).Inc()

	return err
}

type fetchResult struct {
	kind    value.SnapshotKind
	seq     uint64
	data    any
	err     error
	skipped bool
}

func (r *Reconciler) cycle(ctx context.Context, screen value.Screen) error {
	resources := r.resources(screen)
	results := make([]fetchResult, len(resources))

	var g errgroup.Group

	for i, res := range resources {
		results[i].kind = res.kind

		if !r.guard.TryAcquire(res.kind.String()) {
			results[i].skipped = true
			r.metrics.skipped.WithLabelValues(res.kind.String()).Inc()

			continue
		}

		results[i].seq = r.store.Begin(res.kind)

		g.Go(func() error {
			defer r.guard.Release(res.kind.String())

			data, err := res.fetch(ctx)
			if err == nil {
				err = render.Validate(data)
			}

			results[i].data, results[i].err = data, err

			return nil
		})
	}

	_ = g.Wait()

	var cycleErr error

	for i, result := range results {
		if result.skipped {
			continue
		}

		if result.err != nil {
			if resources[i].optional && domain.IsServerError(result.err) {
				r.store.Forget(result.kind)
				continue
			}

			logger(ctx).Warn(
				"fetch failed",
				slog.String(logx.FieldResource, result.kind.String()),
				logx.Error(result.err),
			)

			if cycleErr == nil {
				cycleErr = fmt.Errorf("fetch %s: %w", result.kind, result.err)
			}

			continue
		}

		data := resources[i].unwrap(result.data)
		if !r.store.Commit(result.kind, result.seq, data) {
			r.metrics.stale.WithLabelValues(result.kind.String()).Inc()
			logger(ctx).Debug(
				"stale response discarded",
				slog.String(logx.FieldResource, result.kind.String()),
				slog.Uint64(logx.FieldSeq, result.seq),
			)

			continue
		}

		if result.kind == value.KindDeals {
			r.watchDeals(ctx, data)
		}
	}

	if err := r.render(ctx, screen); err != nil && cycleErr == nil {
		cycleErr = err
	}

	pending := r.store.PendingPatches()
	for _, res := range resources {
		r.store.Settle(res.kind)
	}

	if r.store.PendingPatches() != pending {
		_ = r.render(ctx, screen)
	}

	if cycleErr != nil && ctx.Err() == nil {
		r.notifier.Notify(ctx, domain.UserMessage(cycleErr), value.SeverityError)
	}

	return cycleErr
}

// render рисует экран из текущего Store и рассылает изменения.
func (r *Reconciler) render(ctx context.Context, screen value.Screen) error {
	frame, err := r.renderer.Render(screen, r.store.Read())
	if err != nil {
		logger(ctx).Warn("render skipped", slog.String(logx.FieldScreen, screen.String()), logx.Error(err))
		return fmt.Errorf("renderer.Render: %w", err)
	}

	mutations := r.document.Apply(frame)

	for _, publisher := range r.publishers {
		publisher.PublishFrame(ctx, frame, mutations)
	}

	return nil
}

// Frame текущий кадр экрана без обращения к серверу.
func (r *Reconciler) Frame(screen value.Screen) (render.Frame, error) {
	frame, err := r.renderer.Render(screen, r.store.Read())
	if err != nil {
		return render.Frame{}, fmt.Errorf("renderer.Render: %w", err)
	}

	return frame, nil
}

// watchDeals сообщает пользователю о его выигрыше, когда в начале списка
// сделок появляется новая сделка. Первый увиденный список, в том числе
// пустой, только запоминается.
func (r *Reconciler) watchDeals(ctx context.Context, data any) {
	deals, ok := data.(entity.Deals)
	if !ok {
		return
	}

	r.dealsMu.Lock()
	primed := r.dealsPrimed
	r.dealsPrimed = true

	if len(deals) == 0 {
		r.dealsMu.Unlock()
		return
	}

	latest := deals[0]
	isNew := latest.ID != r.lastDealID
	r.lastDealID = latest.ID
	r.dealsMu.Unlock()

	if !primed || !isNew || latest.WinnerID != r.api.PlayerID() {
		return
	}

	r.notifier.Notify(ctx, dealWonMessage(latest), value.SeveritySuccess)
}
