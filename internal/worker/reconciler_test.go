package worker_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction_client/internal/domain"
	"auction_client/internal/domain/value"
	"auction_client/internal/infrastructure/api"
	"auction_client/internal/infrastructure/notifier"
	"auction_client/internal/render"
	"auction_client/internal/store"
	"auction_client/internal/worker"
)

const (
	stateRunning = `{"running": true, "current_price": 55, "round_id": 1,
		"product": {"name": "Тюльпаны", "starting_price": 100, "min_price": 10,
		"retail_demand_index": 0.5, "wholesale_colors": ["red"]}}`
	stateSold = `{"running": false, "current_price": 55, "round_id": 1, "reason": "sold",
		"winner_id": "bot1", "winner_name": "Бот Анна",
		"product": {"name": "Тюльпаны", "starting_price": 100, "min_price": 10}}`
	gamePlaying = `{"success": true, "game": {"status": "playing", "current_round": 1},
		"players": [{"id": 1, "name": "Вы", "balance": 100}],
		"products": [{"id": 3, "name": "Розы", "current_price": 500, "quantity": 2}]}`
	userData = `{"success": true, "user_data": {"id": 1, "name": "Вы", "balance": 100}}`
)

type response struct {
	status int
	body   string
}

// fakeServer сервер аукциона с настраиваемыми ответами.
type fakeServer struct {
	mu        sync.Mutex
	responses map[string]response
	hits      map[string]int
	blocks    map[string]chan struct{}
}

func newFakeServer(t *testing.T) (*fakeServer, *api.Client) {
	t.Helper()

	fs := &fakeServer{
		responses: map[string]response{
			"/api/state":     {status: http.StatusOK, body: stateRunning},
			"/api/balances":  {status: http.StatusOK, body: `{"human": 1000}`},
			"/api/deals":     {status: http.StatusOK, body: `[]`},
			"/api/user/data": {status: http.StatusOK, body: `{"success": false, "message": "Сессия пользователя не найдена"}`},
		},
		hits:   map[string]int{},
		blocks: map[string]chan struct{}{},
	}

	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)
	t.Cleanup(fs.releaseAll)

	client, err := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	return fs, client
}

func (fs *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	fs.hits[r.URL.Path]++
	resp, ok := fs.responses[r.URL.Path]
	block := fs.blocks[r.URL.Path]
	fs.mu.Unlock()

	if block != nil {
		<-block
	}

	if !ok {
		resp = response{status: http.StatusNotFound, body: `{"detail": "Not Found"}`}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

func (fs *fakeServer) set(path string, status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.responses[path] = response{status: status, body: body}
}

func (fs *fakeServer) hitCount(path string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.hits[path]
}

func (fs *fakeServer) block(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.blocks[path] = make(chan struct{})
}

func (fs *fakeServer) release(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if ch, ok := fs.blocks[path]; ok {
		close(ch)
		delete(fs.blocks, path)
	}
}

func (fs *fakeServer) releaseAll() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for path, ch := range fs.blocks {
		close(ch)
		delete(fs.blocks, path)
	}
}

type harness struct {
	server     *fakeServer
	clock      *clockwork.FakeClock
	store      *store.Store
	document   *render.Document
	notifier   *notifier.Notifier
	reconciler *worker.Reconciler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fs, client := newFakeServer(t)
	clock := clockwork.NewFakeClock()
	st := store.New(store.WithClock(clock))
	doc := render.NewDocument()
	n := notifier.New(notifier.WithClock(clock))
	t.Cleanup(n.Close)

	r := worker.NewReconciler(
		client,
		st,
		render.NewRenderer(client.PlayerID()),
		doc,
		n,
		worker.WithClock(clock),
		worker.WithMetrics(worker.NewMetrics(prometheus.NewRegistry())),
	)

	return &harness{
		server:     fs,
		clock:      clock,
		store:      st,
		document:   doc,
		notifier:   n,
		reconciler: r,
	}
}

func (h *harness) messages() []string {
	active := h.notifier.Active()

	messages := make([]string, 0, len(active))
	for _, n := range active {
		messages = append(messages, n.Message)
	}

	return messages
}

func normalize(s string) string {
	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}

func TestReconciler_RefreshAuction(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)

	rq.NoError(h.reconciler.Refresh(context.Background(), value.ScreenAuction))

	bar, ok := h.document.Element(value.ScreenAuction, render.IDProgressBar)
	rq.True(ok)
	rq.Equal("50%", bar.Width)

	status, _ := h.document.Element(value.ScreenAuction, render.IDStatusText)
	rq.Equal("Аукцион идёт… Ждите снижения или покупайте!", status.Text)

	balance, _ := h.document.Element(value.ScreenAuction, render.IDBalance)
	rq.Equal("Баланс: 1 000 ₽", normalize(balance.Text))

	rq.Empty(h.messages())
	rq.Equal(1, h.server.hitCount("/api/deals"))
}

func TestReconciler_FailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))

	h.server.set("/api/state", http.StatusInternalServerError, `{"message": "Ошибка сервера: boom"}`)

	err := h.reconciler.Refresh(ctx, value.ScreenAuction)
	rq.Error(err)
	rq.True(domain.IsServerError(err))
	rq.Equal([]string{"Ошибка сервера: boom"}, h.messages())

	view := h.store.Read()
	rq.NotNil(view.Auction)
	rq.True(decimal.NewFromInt(55).Equal(view.Auction.CurrentPrice))

	// Следующий такт снова успешен.
	h.server.set("/api/state", http.StatusOK, stateRunning)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))
}

func TestReconciler_MalformedSnapshotIsRenderError(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)

	h.server.set("/api/state", http.StatusOK, `{"running": true, "current_price": 50}`)

	err := h.reconciler.Refresh(context.Background(), value.ScreenAuction)
	rq.Error(err)
	rq.True(domain.IsRenderError(err))
	rq.Equal([]string{"Некорректные данные от сервера"}, h.messages())
	rq.Nil(h.store.Read().Auction)
}

func TestReconciler_SkipsResourceInFlight(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.block("/api/state")

	done := make(chan error, 1)
	go func() {
		done <- h.reconciler.Refresh(ctx, value.ScreenAuction)
	}()

	rq.Eventually(func() bool { return h.server.hitCount("/api/state") == 1 }, time.Second, 5*time.Millisecond)

	// Второй цикл не ждёт и не повторяет запрос состояния.
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))
	rq.Equal(1, h.server.hitCount("/api/state"))
	rq.Equal(2, h.server.hitCount("/api/balances"))

	h.server.release("/api/state")
	rq.NoError(<-done)
	rq.NotNil(h.store.Read().Auction)
}

func TestReconciler_OptionalUserData(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)

	h.server.set("/api/game/status", http.StatusOK, `{"success": true, "game": null, "players": [], "products": []}`)

	rq.NoError(h.reconciler.Refresh(context.Background(), value.ScreenGame))
	rq.Empty(h.messages())
	rq.Nil(h.store.Read().User)

	status, _ := h.document.Element(value.ScreenGame, render.IDGameStatus)
	rq.Equal("Ожидание начала", status.Text)
}

func TestReconciler_ResetDiscardsUserInFlight(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.set("/api/game/status", http.StatusOK, gamePlaying)
	h.server.set("/api/user/data", http.StatusOK, userData)
	h.server.set("/api/game/reset", http.StatusOK, `{"success": true, "message": "Игра сброшена"}`)

	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenGame))
	rq.NotNil(h.store.Read().User)

	h.server.block("/api/user/data")

	done := make(chan error, 1)
	go func() {
		done <- h.reconciler.Refresh(ctx, value.ScreenGame)
	}()

	rq.Eventually(func() bool { return h.server.hitCount("/api/user/data") == 2 }, time.Second, 5*time.Millisecond)

	rq.NoError(h.reconciler.Perform(ctx, value.ActionReset, worker.ActionParams{}))
	rq.Nil(h.store.Read().User)

	// Ответ, начатый до сброса, не возвращает старого игрока.
	h.server.release("/api/user/data")
	rq.NoError(<-done)
	rq.Nil(h.store.Read().User)
}

func TestReconciler_EmptyDealsPrimeDetector(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))
	rq.Empty(h.messages())

	h.server.set("/api/deals", http.StatusOK, `[{"id": 1, "product_name": "Лилии", "winner_id": "human", "price": 30}]`)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))
	rq.Equal([]string{"Вы купили Лилии за 30 ₽"}, mapNormalize(h.messages()))
}

func TestNewReconciler_DefaultMetrics(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	_, client := newFakeServer(t)

	rq.NotPanics(func() {
		for range 2 {
			worker.NewReconciler(client, store.New(), render.NewRenderer(client.PlayerID()), render.NewDocument(), notifier.New())
		}
	})
}

func TestReconciler_NotifiesWonDeal(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.set("/api/deals", http.StatusOK, `[{"id": 1, "product_name": "Лилии", "winner_id": "human", "price": 30}]`)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))
	rq.Empty(h.messages())

	h.server.set("/api/deals", http.StatusOK, `[
		{"id": 2, "product_name": "Розы", "winner_id": "human", "winner_name": "You", "price": 42},
		{"id": 1, "product_name": "Лилии", "winner_id": "human", "price": 30}]`)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))
	rq.Equal([]string{"Вы купили Розы за 42 ₽"}, mapNormalize(h.messages()))

	// Та же сделка второй раз не объявляется.
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))
	rq.Len(h.messages(), 1)
}

func TestReconciler_StartStop(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	h.reconciler.SetScreens(value.ScreenAuction)
	h.reconciler.AddScreen(value.ScreenAuction)
	rq.Equal([]value.Screen{value.ScreenAuction}, h.reconciler.Screens())

	rq.NoError(h.reconciler.Start(context.Background()))
	rq.Error(h.reconciler.Start(context.Background()))
	rq.True(h.reconciler.IsRunning())

	rq.Eventually(func() bool { return h.server.hitCount("/api/state") == 1 }, time.Second, 5*time.Millisecond)

	rq.NoError(h.clock.BlockUntilContext(context.Background(), 1))
	h.clock.Advance(worker.DefaultAuctionInterval)

	rq.Eventually(func() bool { return h.server.hitCount("/api/state") == 2 }, time.Second, 5*time.Millisecond)
	rq.Zero(h.server.hitCount("/api/game/status"))

	h.reconciler.Stop()
	rq.False(h.reconciler.IsRunning())
	h.reconciler.Stop()
}

func mapNormalize(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, normalize(item))
	}

	return out
}
