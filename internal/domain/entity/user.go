package entity

import "github.com/shopspring/decimal"

// UserProfile данные пользователя-игрока. Обновляются после каждой покупки.
type UserProfile = Player

// UserEnvelope ответ GET /api/user/data и POST /api/user/buy.
type UserEnvelope struct {
	Message  string           `json:"message"`
	UserData *UserProfile     `json:"user_data" validate:"required"`
	Profit   *decimal.Decimal `json:"profit,omitempty"`
}
