package render

import (
	"auction_client/internal/domain/value"
)

const (
	textAuctionRunning = "Аукцион идёт… Ждите снижения или покупайте!"
	textMinReached     = "Минимальная цена достигнута. Лот не продан."
	textStopped        = "Аукцион остановлен."
	textAuctionLoading = "Загрузка аукциона…"
	textDefaultBuyer   = "Покупатель"
	textNoValue        = "—"

	textGameWaiting  = "Ожидание начала"
	textGamePlaying  = "Игра идет"
	textGameFinished = "Игра завершена"
	textGameUnknown  = "Неизвестный статус"

	textNoLot      = "Выберите лот для торгов"
	textNoPlayers  = "Загрузка игроков..."
	textNoBids     = "Ставки появятся здесь"
	textNoResult   = "Результат торгов появится здесь"
	textNoUser     = "Начните игру, чтобы получить своего игрока"
	textNoProducts = "Нет товаров"

	textNoData         = "Нет данных"
	textNoPlayersStats = "Нет данных об игроках"
	textNoProductStats = "Нет данных о товарах"
)

// GameStatusText текст статуса игры.
func GameStatusText(status value.GameStatus) string {
	switch status {
	case value.GameStatusWaiting:
		return textGameWaiting
	case value.GameStatusPlaying:
		return textGamePlaying
	case value.GameStatusFinished:
		return textGameFinished
	default:
		return textGameUnknown
	}
}
