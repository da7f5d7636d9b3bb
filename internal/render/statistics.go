package render

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"auction_client/internal/domain/value"
	"auction_client/internal/format"
	"auction_client/internal/store"
)

// Элементы экрана статистики. Статус игры выводится в тот же gameStatus,
// что и на экране игры.
const (
	IDTotalProfit    = "totalProfit"
	IDTotalPurchases = "totalPurchases"
	IDBestPlayer     = "bestPlayer"
	IDPlayersRanking = "playersRanking"
	IDProductsStats  = "productsStats"
)

type RankRow struct {
	Place       int    `json:"place"`
	Name        string `json:"name"`
	Balance     string `json:"balance"`
	TotalProfit string `json:"total_profit"`
	Positive    bool   `json:"positive"`
	Purchases   int    `json:"purchases"`
	Sales       int    `json:"sales"`
}

type StatisticsView struct {
	Loaded          bool          `json:"loaded"`
	StatusText      string        `json:"status_text"`
	TotalProfit     string        `json:"total_profit"`
	TotalPurchases  string        `json:"total_purchases"`
	BestPlayer      string        `json:"best_player"`
	Ranking         []RankRow     `json:"ranking"`
	Products        []ProductCard `json:"products"`
	RefreshDisabled bool          `json:"refresh_disabled"`
}

func renderStatistics(view store.View) (StatisticsView, error) {
	model := StatisticsView{
		StatusText:      GameStatusText(value.GameStatusWaiting),
		TotalProfit:     textNoValue,
		TotalPurchases:  textNoValue,
		BestPlayer:      textNoData,
		Ranking:         []RankRow{},
		Products:        []ProductCard{},
		RefreshDisabled: view.IsDisabled(value.ControlRefreshStats),
	}

	if view.Statistics == nil {
		return model, nil
	}

	stats := *view.Statistics
	if err := Validate(stats); err != nil {
		return StatisticsView{}, fmt.Errorf("statistics: %w", err)
	}

	model.Loaded = true
	model.TotalProfit = format.Money(stats.TotalProfit)
	model.TotalPurchases = format.Int(stats.TotalPurchases)
	model.BestPlayer = cmp.Or(stats.BestPlayer, textNoData)

	if stats.GameInfo != nil {
		model.StatusText = GameStatusText(stats.GameInfo.Status)
	}

	for i, player := range stats.Players {
		model.Ranking = append(model.Ranking, RankRow{
			Place:       i + 1,
			Name:        player.Name,
			Balance:     format.Money(player.Balance),
			TotalProfit: format.SignedMoney(player.TotalProfit),
			Positive:    !player.TotalProfit.IsNegative(),
			Purchases:   player.Purchases,
			Sales:       player.Sales,
		})
	}

	for _, product := range stats.Products {
		model.Products = append(model.Products, productCard(product))
	}

	return model, nil
}

func (m StatisticsView) elements() []Element {
	ranking := lo.Map(m.Ranking, func(r RankRow, _ int) string {
		return strconv.Itoa(r.Place) + ". " + r.Name +
			" — Баланс: " + r.Balance +
			" — Прибыль: " + r.TotalProfit +
			" — Покупки: " + strconv.Itoa(r.Purchases) +
			" — Продажи: " + strconv.Itoa(r.Sales)
	})
	if len(ranking) == 0 {
		ranking = []string{textNoPlayersStats}
	}

	products := lo.Map(m.Products, func(p ProductCard, _ int) string {
		return p.Name + " — Цена: " + p.Price + " — Количество: " + strconv.Itoa(p.Quantity) + " шт. — Себестоимость: " + p.Cost
	})
	if len(products) == 0 {
		products = []string{textNoProductStats}
	}

	return []Element{
		text(IDGameStatus, m.StatusText),
		text(IDTotalProfit, m.TotalProfit),
		text(IDTotalPurchases, m.TotalPurchases),
		text(IDBestPlayer, m.BestPlayer),
		list(IDPlayersRanking, ranking),
		list(IDProductsStats, products),
		button(value.ControlRefreshStats.String(), m.RefreshDisabled),
	}
}
