package entity

import (
	"cmp"

	"github.com/shopspring/decimal"

	"auction_client/internal/domain/value"
)

// Lot товар игрового режима.
type Lot struct {
	ID              int             `json:"id"`
	Name            string          `json:"name" validate:"required"`
	Cost            decimal.Decimal `json:"cost"`
	Price           decimal.Decimal `json:"price"`
	InitialPrice    decimal.Decimal `json:"initial_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	Quantity        int             `json:"quantity" validate:"gte=0"`
	InitialQuantity int             `json:"initial_quantity"`
}

// DisplayPrice цена, которую показывает сервер: price в старом формате
// ответа, current_price в новом.
func (l Lot) DisplayPrice() decimal.Decimal {
	if !l.Price.IsZero() {
		return l.Price
	}

	return l.CurrentPrice
}

type Bid struct {
	PlayerName string          `json:"player_name"`
	Amount     decimal.Decimal `json:"amount"`
}

type LotResult struct {
	WinnerName        string          `json:"winner_name"`
	WinningBid        decimal.Decimal `json:"winning_bid"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	Profit            decimal.Decimal `json:"profit"`
	RemainingQuantity int             `json:"remaining_quantity"`
}

type Game struct {
	ID               int              `json:"id"`
	Status           value.GameStatus `json:"status"`
	Round            int              `json:"round"`
	CurrentRound     int              `json:"current_round"`
	CurrentProductID int              `json:"current_product_id"`
	CurrentLot       *Lot             `json:"current_lot"`
	Bids             map[string]Bid   `json:"bids"`
	Result           *LotResult       `json:"result"`
	WinnerID         string           `json:"winner_id"`
	StartTime        string           `json:"start_time"`
	EndTime          string           `json:"end_time"`
}

// RoundNumber номер раунда: сервер отдаёт его либо как round, либо как
// current_round.
func (g Game) RoundNumber() int {
	return cmp.Or(g.Round, g.CurrentRound)
}

// Player игрок (в том числе пользователь) с серверной бухгалтерией.
type Player struct {
	ID             int             `json:"id"`
	Name           string          `json:"name" validate:"required"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Wants          string          `json:"wants"`
	NoWants        string          `json:"no_wants"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	Purchases      int             `json:"purchases"`
	Sales          int             `json:"sales"`
}

// GameStatus снимок GET /api/game/status. Game равен nil, пока игра не
// создана.
type GameStatus struct {
	Game     *Game    `json:"game"`
	Players  []Player `json:"players" validate:"dive"`
	Products []Lot    `json:"products" validate:"dive"`
	Message  string   `json:"message"`
}

type RoundWinner struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Profit        decimal.Decimal `json:"profit"`
}

// RoundResult ответ POST /api/game/next-round.
type RoundResult struct {
	Round           int            `json:"round"`
	CurrentLot      *Lot           `json:"current_lot"`
	Winner          *RoundWinner   `json:"winner"`
	Bids            map[string]Bid `json:"bids"`
	Result          *LotResult     `json:"result"`
	Message         string         `json:"message"`
	GameOver        bool           `json:"game_over"`
	GameOverMessage string         `json:"game_over_message"`
}

// GameAck ответ POST /api/game/start и /api/game/reset.
type GameAck struct {
	Message  string       `json:"message"`
	UserData *UserProfile `json:"user_data"`
}
