package worker_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction_client/internal/domain"
	"auction_client/internal/domain/value"
	"auction_client/internal/render"
	"auction_client/internal/worker"
	"auction_client/pkg/errcodes"
)

func TestPerform_BuyWhenSoldSendsNothing(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.set("/api/state", http.StatusOK, stateSold)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))

	buy, _ := h.document.Element(value.ScreenAuction, value.ControlBuy.String())
	wait, _ := h.document.Element(value.ScreenAuction, value.ControlWait.String())
	rq.True(buy.Disabled)
	rq.True(wait.Disabled)

	status, _ := h.document.Element(value.ScreenAuction, render.IDStatusText)
	rq.Equal("Лот продан: Бот Анна за 55 ₽", normalize(status.Text))

	err := h.reconciler.Perform(ctx, value.ActionBuy, worker.ActionParams{})
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.ControlDisabled))
	rq.Zero(h.server.hitCount("/api/human/action"))
	rq.Zero(h.store.PendingPatches())
}

func TestPerform_BuyWhileRunning(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.set("/api/human/action", http.StatusOK, `{"status": "ok", "message": "Purchased", "price": 55}`)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenAuction))

	h.server.set("/api/state", http.StatusOK, stateSold)
	rq.NoError(h.reconciler.Perform(ctx, value.ActionBuy, worker.ActionParams{}))

	rq.Equal(1, h.server.hitCount("/api/human/action"))
	rq.Equal(2, h.server.hitCount("/api/state"))
	rq.Zero(h.store.PendingPatches())
	rq.False(h.store.Read().Auction.Running)
}

func TestPerform_ServerRefusalReachesNotifier(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.set("/api/game/status", http.StatusOK, gamePlaying)
	h.server.set("/api/user/data", http.StatusOK, userData)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenGame))

	h.server.set("/api/user/buy", http.StatusBadRequest, `{"success": false, "message": "Недостаточно средств"}`)

	err := h.reconciler.Perform(ctx, value.ActionBuyProduct, worker.ActionParams{ProductID: 3})
	rq.Error(err)
	rq.True(domain.IsServerError(err))

	active := h.notifier.Active()
	rq.Len(active, 1)
	rq.Equal("Недостаточно средств", active[0].Message)
	rq.Equal(value.SeverityError, active[0].Severity)

	user := h.store.Read().User
	rq.NotNil(user)
	rq.True(decimal.NewFromInt(100).Equal(user.Balance))

	// Кнопка снова включена.
	rq.Zero(h.store.PendingPatches())
	buy, _ := h.document.Element(value.ScreenGame, value.ControlBuyProduct.String())
	rq.False(buy.Disabled)
}

func TestPerform_BuyProductUpdatesUser(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.set("/api/game/status", http.StatusOK, gamePlaying)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenGame))

	h.server.set("/api/user/buy", http.StatusOK, `{"success": true, "message": "Товар Розы куплен за 500 ₽",
		"user_data": {"id": 1, "name": "Вы", "balance": 9500, "purchases": 1}, "profit": 0}`)
	h.server.set("/api/user/data", http.StatusOK, `{"success": true,
		"user_data": {"id": 1, "name": "Вы", "balance": 9500, "purchases": 1}}`)

	rq.NoError(h.reconciler.Perform(ctx, value.ActionBuyProduct, worker.ActionParams{ProductID: 3}))
	rq.Equal([]string{"Товар Розы куплен за 500 ₽"}, h.messages())

	user := h.store.Read().User
	rq.NotNil(user)
	rq.Equal(1, user.Purchases)
}

func TestPerform_ValidatesParams(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	err := h.reconciler.Perform(ctx, value.ActionBuyProduct, worker.ActionParams{})
	rq.True(domain.HasCode(err, errcodes.InvalidProduct))

	err = h.reconciler.Perform(ctx, value.ActionSetName, worker.ActionParams{Name: "  "})
	rq.True(domain.HasCode(err, errcodes.InvalidName))

	err = h.reconciler.Perform(ctx, value.Action("sell"), worker.ActionParams{})
	rq.True(domain.HasCode(err, errcodes.UnknownAction))

	rq.Zero(h.server.hitCount("/api/user/buy"))
}

func TestPerform_OneActionAtATime(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.set("/api/game/start", http.StatusOK, `{"success": true, "message": "Игра успешно начата!"}`)
	h.server.set("/api/game/status", http.StatusOK, `{"success": true, "game": {"status": "waiting"}}`)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenGame))

	h.server.block("/api/game/start")

	done := make(chan error, 1)
	go func() {
		done <- h.reconciler.Perform(ctx, value.ActionStart, worker.ActionParams{})
	}()

	rq.Eventually(func() bool { return h.server.hitCount("/api/game/start") == 1 }, time.Second, 5*time.Millisecond)

	start, _ := h.document.Element(value.ScreenGame, value.ControlStartGame.String())
	rq.True(start.Disabled)

	err := h.reconciler.Perform(ctx, value.ActionStart, worker.ActionParams{})
	rq.True(domain.HasCode(err, errcodes.ActionInFlight))

	h.server.set("/api/game/status", http.StatusOK, gamePlaying)
	h.server.release("/api/game/start")
	rq.NoError(<-done)

	rq.Equal(1, h.server.hitCount("/api/game/start"))
	rq.Contains(h.messages(), "Игра начата!")

	// Игра идёт: старт выключен уже по состоянию сервера.
	start, _ = h.document.Element(value.ScreenGame, value.ControlStartGame.String())
	rq.True(start.Disabled)
	rq.Zero(h.store.PendingPatches())
}

func TestPerform_NextRound(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.set("/api/game/status", http.StatusOK, gamePlaying)
	h.server.set("/api/game/next-round", http.StatusOK, `{"success": true, "round": 1,
		"message": "Раунд 1 завершен", "game_over": false,
		"bids": {"1": {"player_name": "Анна", "amount": 450}}}`)
	rq.NoError(h.reconciler.Refresh(ctx, value.ScreenGame))

	rq.NoError(h.reconciler.Perform(ctx, value.ActionNextRound, worker.ActionParams{}))

	rq.Equal([]string{"Раунд 1 завершен"}, h.messages())
	rq.NotNil(h.store.Read().Round)

	bids, _ := h.document.Element(value.ScreenGame, render.IDBidsList)
	rq.Equal([]string{"Анна — 450 ₽"}, mapNormalize(bids.Items))
}

func TestPerform_RefreshStatistics(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	h := newHarness(t)
	ctx := context.Background()

	h.server.set("/api/statistics", http.StatusOK, `{"players": [], "total_profit": 0, "total_purchases": 0,
		"best_player": "Нет данных", "game_info": null}`)

	rq.NoError(h.reconciler.Perform(ctx, value.ActionRefresh, worker.ActionParams{}))
	rq.Equal([]string{"Статистика обновлена!"}, h.messages())

	h.server.set("/api/statistics", http.StatusOK, `{"players": [`)

	err := h.reconciler.Perform(ctx, value.ActionRefresh, worker.ActionParams{})
	rq.Error(err)
	rq.True(domain.IsRenderError(err))
	rq.Equal([]string{"Статистика обновлена!", "Некорректные данные от сервера"}, h.messages())
}
