package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"auction_client/internal/domain/entity"
	"auction_client/internal/domain/value"
	"auction_client/internal/format"
	"auction_client/internal/store"
)

// Элементы экрана аукциона.
const (
	IDStatusText  = "status-text"
	IDPrice       = "price"
	IDProductName = "p-name"
	IDProductDesc = "p-desc"
	IDColors      = "colors"
	IDDemand      = "demand"
	IDProgressBar = "progress-bar"
	IDBalance     = "balance"
	IDDealsList   = "deals-list"
)

type DealRow struct {
	ProductName string `json:"product_name"`
	WinnerName  string `json:"winner_name"`
	Price       string `json:"price"`
}

func (r DealRow) String() string {
	return r.ProductName + " — " + r.WinnerName + " — " + r.Price
}

// AuctionView модель экрана голландского аукциона.
type AuctionView struct {
	Loaded       bool      `json:"loaded"`
	Running      bool      `json:"running"`
	ProductName  string    `json:"product_name"`
	Description  string    `json:"description"`
	Colors       string    `json:"colors"`
	Demand       string    `json:"demand"`
	Price        string    `json:"price"`
	Progress     string    `json:"progress"`
	Status       string    `json:"status"`
	Balance      string    `json:"balance"`
	Deals        []DealRow `json:"deals"`
	BuyDisabled  bool      `json:"buy_disabled"`
	WaitDisabled bool      `json:"wait_disabled"`
	// ResetDisabled перезапуск раунда доступен всегда, кроме времени
	// выполнения самого перезапуска.
	ResetDisabled bool `json:"reset_disabled"`
}

// Progress ширина полосы: доля пройденного пути от стартовой цены к
// минимальной, в процентах от 0 до 100.
func Progress(product entity.Product, current decimal.Decimal) string {
	span := product.StartingPrice.Sub(product.MinPrice)
	if span.IsZero() {
		span = decimal.NewFromInt(1)
	}

	fraction := product.StartingPrice.Sub(current).Div(span)
	fraction = decimal.Max(decimal.Zero, decimal.Min(decimal.NewFromInt(1), fraction))

	return format.Percent(fraction.InexactFloat64())
}

// AuctionStatus строка состояния аукциона для игрока playerID.
func AuctionStatus(state entity.AuctionState, playerID string) string {
	if state.Running {
		return textAuctionRunning
	}

	price := format.Money(state.CurrentPrice)

	switch state.Reason {
	case value.StopReasonSold:
		if state.WinnerID != "" && state.WinnerID == playerID {
			return "Вы купили лот по цене " + price + " 🎉"
		}

		winner := state.WinnerName
		if winner == "" {
			winner = textDefaultBuyer
		}

		return "Лот продан: " + winner + " за " + price
	case value.StopReasonMinReached:
		return textMinReached
	default:
		return textStopped
	}
}

func renderAuction(view store.View, playerID string) (AuctionView, error) {
	model := AuctionView{
		Status:       textAuctionLoading,
		Balance:      balanceText(view.Balances, playerID),
		Deals:        make([]DealRow, 0, len(view.Deals)),
		BuyDisabled:  true,
		WaitDisabled: true,
	}

	for _, deal := range view.Deals {
		if err := Validate(deal); err != nil {
			return AuctionView{}, fmt.Errorf("deal %d: %w", deal.ID, err)
		}

		winner := deal.WinnerName
		if winner == "" {
			winner = textNoValue
		}

		model.Deals = append(model.Deals, DealRow{
			ProductName: deal.ProductName,
			WinnerName:  winner,
			Price:       format.Money(deal.Price),
		})
	}

	model.ResetDisabled = view.IsDisabled(value.ControlResetAuction)

	if view.Auction == nil {
		return model, nil
	}

	state := *view.Auction
	if err := Validate(state); err != nil {
		return AuctionView{}, fmt.Errorf("auction state: %w", err)
	}

	model.Loaded = true
	model.Running = state.Running
	model.ProductName = state.Product.Name
	model.Description = state.Product.Description
	model.Colors = "Цвета оптом: " + strings.Join(state.Product.WholesaleColors, ", ")
	model.Demand = "Спрос (розница): " + format.Percent(state.Product.RetailDemandIndex)
	model.Price = format.Money(state.CurrentPrice)
	model.Progress = Progress(state.Product, state.CurrentPrice)
	model.Status = AuctionStatus(state, playerID)
	model.BuyDisabled = !state.Running || view.IsDisabled(value.ControlBuy)
	model.WaitDisabled = !state.Running || view.IsDisabled(value.ControlWait)

	return model, nil
}

func balanceText(balances entity.PlayerBalances, playerID string) string {
	balance, ok := balances[playerID]
	if !ok {
		return "Баланс: " + textNoValue
	}

	return "Баланс: " + format.Money(balance)
}

func (m AuctionView) elements() []Element {
	deals := make([]string, 0, len(m.Deals))
	for _, deal := range m.Deals {
		deals = append(deals, deal.String())
	}

	return []Element{
		text(IDStatusText, m.Status),
		text(IDPrice, m.Price),
		text(IDProductName, m.ProductName),
		text(IDProductDesc, m.Description),
		text(IDColors, m.Colors),
		text(IDDemand, m.Demand),
		bar(IDProgressBar, m.Progress),
		text(IDBalance, m.Balance),
		list(IDDealsList, deals),
		button(value.ControlBuy.String(), m.BuyDisabled),
		button(value.ControlWait.String(), m.WaitDisabled),
		button(value.ControlResetAuction.String(), m.ResetDisabled),
	}
}
