package entity

import "github.com/shopspring/decimal"

// Statistics снимок GET /api/statistics. Игроки уже отсортированы сервером.
type Statistics struct {
	Players        []Player        `json:"players" validate:"dive"`
	Products       []Lot           `json:"products" validate:"dive"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	TotalPurchases int             `json:"total_purchases" validate:"gte=0"`
	BestPlayer     string          `json:"best_player"`
	GameInfo       *Game           `json:"game_info"`
}
