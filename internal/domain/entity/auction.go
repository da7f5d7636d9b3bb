package entity

import (
	"github.com/shopspring/decimal"

	"auction_client/internal/domain/value"
)

// Product лот голландского аукциона.
type Product struct {
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	StartingPrice     decimal.Decimal `json:"starting_price"`
	MinPrice          decimal.Decimal `json:"min_price"`
	PriceStep         decimal.Decimal `json:"price_step"`
	TickSeconds       float64         `json:"tick_seconds" validate:"gte=0"`
	RetailDemandIndex float64         `json:"retail_demand_index" validate:"gte=0,lte=1"`
	WholesaleColors   []string        `json:"wholesale_colors"`
}

// AuctionState снимок GET /api/state. Принадлежит серверу, клиент только
// отображает его.
type AuctionState struct {
	Product      Product          `json:"product" validate:"required"`
	CurrentPrice decimal.Decimal  `json:"current_price"`
	Running      bool             `json:"running"`
	StartedAt    string           `json:"started_at"`
	LastTickAt   string           `json:"last_tick_at"`
	WinnerID     string           `json:"winner_id"`
	WinnerName   string           `json:"winner_name"`
	Reason       value.StopReason `json:"reason"`
	RoundID      int              `json:"round_id" validate:"gte=0"`
}

// PlayerBalances снимок GET /api/balances: id игрока -> баланс.
type PlayerBalances map[string]decimal.Decimal

// Deal запись из GET /api/deals, от новой к старой.
type Deal struct {
	ID          int             `json:"id"`
	RoundID     int             `json:"round_id"`
	ProductName string          `json:"product_name" validate:"required"`
	WinnerID    string          `json:"winner_id"`
	WinnerName  string          `json:"winner_name"`
	Price       decimal.Decimal `json:"price"`
	Ts          string          `json:"ts"`
}

// Deals снимок последних сделок.
type Deals []Deal

// ActionAck ответ POST /api/human/action.
type ActionAck struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Price   decimal.Decimal `json:"price"`
}
