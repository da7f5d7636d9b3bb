package store

import (
	"time"

	"auction_client/internal/domain/entity"
	"auction_client/internal/domain/value"
)

// View срез состояния клиента для отрисовки. Своего состояния не имеет,
// целиком собирается из снимков и правок.
type View struct {
	Auction    *entity.AuctionState
	Balances   entity.PlayerBalances
	Deals      entity.Deals
	Game       *entity.GameStatus
	Round      *entity.RoundResult
	User       *entity.UserProfile
	Statistics *entity.Statistics

	// Disabled кнопки, выключенные оптимистичными правками.
	Disabled map[value.Control]bool

	Versions  map[value.SnapshotKind]uint64
	UpdatedAt map[value.SnapshotKind]time.Time
}

func (v View) IsDisabled(control value.Control) bool {
	return v.Disabled[control]
}
