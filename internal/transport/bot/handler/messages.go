package handler

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/samber/lo"

	"auction_client/internal/domain/value"
	"auction_client/internal/render"
)

func statusText(running bool, screens []value.Screen, auction render.AuctionView) string {
	pollStatus := "🔴 остановлен"
	if running {
		pollStatus = "🟢 работает"
	}

	screenList := "нет"
	if len(screens) > 0 {
		screenList = strings.Join(lo.Map(screens, func(s value.Screen, _ int) string {
			return s.String()
		}), ", ")
	}

	return fmt.Sprintf(`📊 <b>Статус клиента</b>

🔄 <b>Опрос:</b> %s
🖥 <b>Экраны:</b> %s
🔨 <b>Аукцион:</b> %s
💰 <b>Цена:</b> %s
`,
		pollStatus,
		screenList,
		html.EscapeString(auction.Status),
		html.EscapeString(auction.Price),
	)
}

func auctionText(v render.AuctionView) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🔨 <b>%s</b>\n", html.EscapeString(v.ProductName)))

	if v.Description != "" {
		sb.WriteString(html.EscapeString(v.Description) + "\n")
	}

	sb.WriteString(fmt.Sprintf("\n💰 Цена: <b>%s</b> (%s)\n", html.EscapeString(v.Price), v.Progress))
	sb.WriteString(fmt.Sprintf("📌 %s\n", html.EscapeString(v.Status)))
	sb.WriteString(fmt.Sprintf("👛 %s\n", html.EscapeString(v.Balance)))

	if len(v.Deals) > 0 {
		sb.WriteString("\n<b>Последние сделки:</b>\n")

		for _, deal := range v.Deals {
			sb.WriteString("• " + html.EscapeString(deal.String()) + "\n")
		}
	}

	return sb.String()
}

func gameText(v render.GameView) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🎲 <b>%s</b>", html.EscapeString(v.StatusText)))

	if v.Round != "" {
		sb.WriteString(" • " + html.EscapeString(v.Round))
	}

	sb.WriteString("\n")

	if v.CurrentLot != nil {
		sb.WriteString(fmt.Sprintf("\n📦 Лот: %s — %s\n", html.EscapeString(v.CurrentLot.Name), html.EscapeString(v.CurrentLot.Price)))
	}

	for _, line := range v.Result {
		sb.WriteString(html.EscapeString(line) + "\n")
	}

	if v.User != nil {
		sb.WriteString(fmt.Sprintf("\n👤 %s — %s\n", html.EscapeString(v.User.Name), html.EscapeString(v.User.Balance)))
	}

	if len(v.Products) > 0 {
		sb.WriteString("\n<b>Товары:</b>\n")

		for _, product := range v.Products {
			sb.WriteString(fmt.Sprintf("<code>%d</code> %s — %s (%d шт.)\n",
				product.ID, html.EscapeString(product.Name), html.EscapeString(product.Price), product.Quantity))
		}
	}

	return sb.String()
}

func statisticsText(v render.StatisticsView) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📈 <b>Статистика</b> (%s)\n\n", html.EscapeString(v.StatusText)))
	sb.WriteString(fmt.Sprintf("Общая прибыль: %s\n", html.EscapeString(v.TotalProfit)))
	sb.WriteString(fmt.Sprintf("Покупок: %s\n", html.EscapeString(v.TotalPurchases)))
	sb.WriteString(fmt.Sprintf("Лучший игрок: %s\n", html.EscapeString(v.BestPlayer)))

	for _, row := range v.Ranking {
		sb.WriteString(fmt.Sprintf("%d. %s — %s\n", row.Place, html.EscapeString(row.Name), html.EscapeString(row.Balance)))
	}

	return sb.String()
}

// auctionKeyboard кнопки аукциона. Выключенные кнопки не показываются.
func auctionKeyboard(v render.AuctionView) *telego.InlineKeyboardMarkup {
	var buttons []telego.InlineKeyboardButton

	if !v.BuyDisabled {
		buttons = append(buttons, tu.InlineKeyboardButton("💰 Купить").
			WithCallbackData(callbackActionPrefix+value.ActionBuy.String()))
	}

	if !v.WaitDisabled {
		buttons = append(buttons, tu.InlineKeyboardButton("⏳ Ждать").
			WithCallbackData(callbackActionPrefix+value.ActionWait.String()))
	}

	buttons = append(buttons, tu.InlineKeyboardButton("🔄 Обновить").
		WithCallbackData(callbackActionPrefix+"show"))

	return tu.InlineKeyboard(tu.InlineKeyboardRow(buttons...))
}

// commandArgs аргументы команды без самой команды.
func commandArgs(text string) []string {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return nil
	}

	return parts[1:]
}

func parseProductID(text string) (int, bool) {
	args := commandArgs(text)
	if len(args) == 0 {
		return 0, false
	}

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
