package store_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction_client/internal/domain/entity"
	"auction_client/internal/domain/value"
	"auction_client/internal/store"
)

func auctionState(price int64) entity.AuctionState {
	return entity.AuctionState{
		Product:      entity.Product{Name: "Тюльпаны", StartingPrice: decimal.NewFromInt(100)},
		CurrentPrice: decimal.NewFromInt(price),
		Running:      true,
	}
}

func TestStore_CommitDiscardsStale(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	s := store.New()

	older := s.Begin(value.KindAuction)
	newer := s.Begin(value.KindAuction)

	rq.True(s.Commit(value.KindAuction, newer, auctionState(55)))
	rq.False(s.Commit(value.KindAuction, older, auctionState(90)))

	view := s.Read()
	rq.NotNil(view.Auction)
	rq.True(decimal.NewFromInt(55).Equal(view.Auction.CurrentPrice))
	rq.Equal(newer, view.Versions[value.KindAuction])
}

func TestStore_ForgetKeepsSequence(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	s := store.New()

	older := s.Begin(value.KindUser)
	s.Replace(value.KindUser, entity.UserProfile{ID: 1, Name: "Вы"})
	s.Forget(value.KindUser)

	rq.False(s.Commit(value.KindUser, older, entity.UserProfile{ID: 1, Name: "Старый"}))

	view := s.Read()
	rq.Nil(view.User)
	rq.NotContains(view.Versions, value.KindUser)

	rq.True(s.Commit(value.KindUser, s.Begin(value.KindUser), entity.UserProfile{ID: 2, Name: "Новый"}))
	rq.Equal("Новый", s.Read().User.Name)
}

func TestStore_ReplaceClearsSameKindPatch(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	s := store.New()

	s.ApplyOptimistic(store.Patch{
		Kind:    value.KindAuction,
		Disable: []value.Control{value.ControlBuy, value.ControlWait},
	})
	s.ApplyOptimistic(store.Patch{
		Kind:    value.KindGame,
		Disable: []value.Control{value.ControlStartGame},
	})

	view := s.Read()
	rq.True(view.IsDisabled(value.ControlBuy))
	rq.True(view.IsDisabled(value.ControlWait))
	rq.True(view.IsDisabled(value.ControlStartGame))

	s.Replace(value.KindAuction, auctionState(80))

	view = s.Read()
	rq.False(view.IsDisabled(value.ControlBuy))
	rq.False(view.IsDisabled(value.ControlWait))
	rq.True(view.IsDisabled(value.ControlStartGame))
	rq.Equal(1, s.PendingPatches())
}

func TestStore_SettleDropsPatchAfterCycles(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		maxCycles int
		settles   int
		wantAlive bool
	}{
		{name: "Default policy drops after one cycle", maxCycles: 0, settles: 1, wantAlive: false},
		{name: "Two cycles, one settle", maxCycles: 2, settles: 1, wantAlive: true},
		{name: "Two cycles, two settles", maxCycles: 2, settles: 2, wantAlive: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)
			s := store.New(store.WithPatchMaxCycles(tc.maxCycles))

			s.ApplyOptimistic(store.Patch{Kind: value.KindGame, Disable: []value.Control{value.ControlNextRound}})

			// Цикл другого вида правку не трогает.
			s.Settle(value.KindStatistics)

			for range tc.settles {
				s.Settle(value.KindGame)
			}

			rq.Equal(tc.wantAlive, s.Read().IsDisabled(value.ControlNextRound))
		})
	}
}

func TestStore_Revert(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	s := store.New()

	first := s.ApplyOptimistic(store.Patch{Kind: value.KindGame, Disable: []value.Control{value.ControlBuyProduct}})
	second := s.ApplyOptimistic(store.Patch{Kind: value.KindGame, Disable: []value.Control{value.ControlBuyProduct}})
	rq.NotEqual(first.ID, second.ID)

	s.Revert(first)
	rq.True(s.Read().IsDisabled(value.ControlBuyProduct))

	s.Revert(second)
	s.Revert(second)
	rq.False(s.Read().IsDisabled(value.ControlBuyProduct))
	rq.Zero(s.PendingPatches())
}

func TestStore_ReadIsDeterministic(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s := store.New(store.WithClock(clock))

	s.Replace(value.KindAuction, auctionState(70))
	s.Replace(value.KindBalances, entity.PlayerBalances{"human": decimal.NewFromInt(500)})
	s.Replace(value.KindDeals, entity.Deals{{ID: 1, ProductName: "Розы", Price: decimal.NewFromInt(40)}})
	s.Replace(value.KindGame, entity.GameStatus{Players: []entity.Player{{Name: "Вы"}}})
	s.Replace(value.KindUser, entity.UserProfile{Name: "Вы"})
	s.Replace(value.KindStatistics, entity.Statistics{BestPlayer: "Бот 1"})
	s.Replace(value.KindRound, entity.RoundResult{Round: 2})

	first := s.Read()
	second := s.Read()
	rq.Equal(first, second)

	rq.NotNil(first.Game)
	rq.NotNil(first.User)
	rq.NotNil(first.Round)
	rq.Equal("Бот 1", first.Statistics.BestPlayer)
	rq.Equal(clock.Now(), first.UpdatedAt[value.KindDeals])

	// View не связан с хранилищем.
	first.Balances["human"] = decimal.Zero
	rq.True(decimal.NewFromInt(500).Equal(s.Read().Balances["human"]))

	s.Forget(value.KindRound)
	rq.Nil(s.Read().Round)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := store.New()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			seq := s.Begin(value.KindAuction)
			s.Commit(value.KindAuction, seq, auctionState(int64(100-i)))
			patch := s.ApplyOptimistic(store.Patch{Kind: value.KindAuction, Disable: []value.Control{value.ControlBuy}})
			_ = s.Read()
			s.Revert(patch)
		}()
	}
	wg.Wait()

	require.Zero(t, s.PendingPatches())
	require.NotNil(t, s.Read().Auction)
}
