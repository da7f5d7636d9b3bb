package render

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/samber/lo"

	"auction_client/internal/domain/entity"
	"auction_client/internal/domain/value"
	"auction_client/internal/format"
	"auction_client/internal/store"
)

// Элементы экрана игры.
const (
	IDGameStatus    = "gameStatus"
	IDGameRound     = "gameRound"
	IDCurrentLot    = "currentLot"
	IDPlayersList   = "playersList"
	IDBidsList      = "bidsList"
	IDAuctionResult = "auctionResult"
	IDRoundMessage  = "roundMessage"
	IDUserPanel     = "userPanel"
	IDProductsList  = "productsList"
)

type BidRow struct {
	PlayerName string `json:"player_name"`
	Amount     string `json:"amount"`
	Winner     bool   `json:"winner"`
}

type PlayerCard struct {
	Initial     string `json:"initial"`
	Name        string `json:"name"`
	Balance     string `json:"balance"`
	TotalProfit string `json:"total_profit"`
	Purchases   int    `json:"purchases"`
}

type ProductCard struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Cost     string `json:"cost"`
	Quantity int    `json:"quantity"`
}

// UserCard пользователь-игрок. Данные считает сервер.
type UserCard struct {
	Name        string `json:"name"`
	Balance     string `json:"balance"`
	Wants       string `json:"wants"`
	NoWants     string `json:"no_wants"`
	TotalProfit string `json:"total_profit"`
	Purchases   int    `json:"purchases"`
}

type GameView struct {
	Status       value.GameStatus `json:"status"`
	StatusText   string           `json:"status_text"`
	Round        string           `json:"round"`
	CurrentLot   *ProductCard     `json:"current_lot"`
	Players      []PlayerCard     `json:"players"`
	Bids         []BidRow         `json:"bids"`
	Result       []string         `json:"result"`
	RoundMessage string           `json:"round_message"`
	User         *UserCard        `json:"user"`
	Products     []ProductCard    `json:"products"`

	StartDisabled      bool `json:"start_disabled"`
	NextRoundDisabled  bool `json:"next_round_disabled"`
	ResetDisabled      bool `json:"reset_disabled"`
	BuyProductDisabled bool `json:"buy_product_disabled"`
	SetNameDisabled    bool `json:"set_name_disabled"`
}

func renderGame(view store.View) (GameView, error) {
	status := entity.GameStatus{}
	if view.Game != nil {
		status = *view.Game
	}

	if err := Validate(status); err != nil {
		return GameView{}, fmt.Errorf("game status: %w", err)
	}

	// Пока игра не создана, экран показывает ожидание начала.
	game := entity.Game{Status: value.GameStatusWaiting}
	if status.Game != nil {
		game = *status.Game
	}

	if view.Round != nil && view.Round.Round == game.RoundNumber() {
		if len(game.Bids) == 0 {
			game.Bids = view.Round.Bids
		}

		game.Result = cmp.Or(game.Result, view.Round.Result)
		game.CurrentLot = cmp.Or(game.CurrentLot, view.Round.CurrentLot)
	}

	isPlaying := game.Status == value.GameStatusPlaying
	isFinished := game.Status == value.GameStatusFinished

	model := GameView{
		Status:     game.Status,
		StatusText: GameStatusText(game.Status),
		Round:      "Раунд: " + strconv.Itoa(game.RoundNumber()),
		Players:    make([]PlayerCard, 0, len(status.Players)),
		Bids:       bidRows(game.Bids),
		Result:     resultLines(game.Result),
		Products:   make([]ProductCard, 0, len(status.Products)),

		StartDisabled:      isPlaying || view.IsDisabled(value.ControlStartGame),
		NextRoundDisabled:  !isPlaying || isFinished || view.IsDisabled(value.ControlNextRound),
		ResetDisabled:      view.IsDisabled(value.ControlResetGame),
		BuyProductDisabled: !isPlaying || view.IsDisabled(value.ControlBuyProduct),
		SetNameDisabled:    view.IsDisabled(value.ControlSetName),
	}

	if game.CurrentLot != nil {
		if err := Validate(*game.CurrentLot); err != nil {
			return GameView{}, fmt.Errorf("current lot: %w", err)
		}

		card := productCard(*game.CurrentLot)
		model.CurrentLot = &card
	}

	for _, player := range status.Players {
		model.Players = append(model.Players, PlayerCard{
			Initial:     lo.Substring(player.Name, 0, 1),
			Name:        player.Name,
			Balance:     format.Money(player.Balance),
			TotalProfit: format.Money(player.TotalProfit),
			Purchases:   player.Purchases,
		})
	}

	for _, product := range status.Products {
		model.Products = append(model.Products, productCard(product))
	}

	if view.Round != nil {
		model.RoundMessage = view.Round.Message
		if view.Round.GameOver && view.Round.GameOverMessage != "" {
			model.RoundMessage = view.Round.GameOverMessage
		}
	}

	if view.User != nil {
		if err := Validate(*view.User); err != nil {
			return GameView{}, fmt.Errorf("user data: %w", err)
		}

		model.User = &UserCard{
			Name:        view.User.Name,
			Balance:     format.Money(view.User.Balance),
			Wants:       cmp.Or(view.User.Wants, textNoValue),
			NoWants:     cmp.Or(view.User.NoWants, textNoValue),
			TotalProfit: format.SignedMoney(view.User.TotalProfit),
			Purchases:   view.User.Purchases,
		}
	}

	return model, nil
}

func productCard(lot entity.Lot) ProductCard {
	return ProductCard{
		ID:       lot.ID,
		Name:     lot.Name,
		Price:    format.Money(lot.DisplayPrice()),
		Cost:     format.Money(lot.Cost),
		Quantity: lot.Quantity,
	}
}

// bidRows ставки от большей к меньшей, первая выигрывает.
func bidRows(bids map[string]entity.Bid) []BidRow {
	sorted := lo.Values(bids)
	slices.SortStableFunc(sorted, func(a, b entity.Bid) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}

		return cmp.Compare(a.PlayerName, b.PlayerName)
	})

	rows := make([]BidRow, 0, len(sorted))
	for i, bid := range sorted {
		rows = append(rows, BidRow{
			PlayerName: bid.PlayerName,
			Amount:     format.Money(bid.Amount),
			Winner:     i == 0,
		})
	}

	return rows
}

func resultLines(result *entity.LotResult) []string {
	if result == nil {
		return nil
	}

	return []string{
		"🏆 " + result.WinnerName,
		"Ставка: " + format.Money(result.WinningBid),
		"Продажа: " + format.Money(result.SellingPrice),
		"Прибыль: " + format.Money(result.Profit),
		"Осталось: " + strconv.Itoa(result.RemainingQuantity) + " шт.",
	}
}

func (m GameView) elements() []Element {
	lot := []string{textNoLot}
	if m.CurrentLot != nil {
		lot = []string{
			m.CurrentLot.Name,
			"Количество: " + strconv.Itoa(m.CurrentLot.Quantity) + " шт.",
			"Цена: " + m.CurrentLot.Price,
			"Себестоимость: " + m.CurrentLot.Cost,
		}
	}

	players := lo.Map(m.Players, func(p PlayerCard, _ int) string {
		return p.Name + " — Баланс: " + p.Balance + " — Прибыль: " + p.TotalProfit + " — Покупки: " + strconv.Itoa(p.Purchases)
	})
	if len(players) == 0 {
		players = []string{textNoPlayers}
	}

	bids := lo.Map(m.Bids, func(b BidRow, _ int) string {
		return b.PlayerName + " — " + b.Amount
	})
	if len(bids) == 0 {
		bids = []string{textNoBids}
	}

	result := m.Result
	if len(result) == 0 {
		result = []string{textNoResult}
	}

	user := []string{textNoUser}
	if m.User != nil {
		user = []string{
			"Игрок: " + m.User.Name,
			"Баланс: " + m.User.Balance,
			"Хочет купить: " + m.User.Wants,
			"Не хочет: " + m.User.NoWants,
			"Прибыль: " + m.User.TotalProfit,
			"Покупки: " + strconv.Itoa(m.User.Purchases),
		}
	}

	products := lo.Map(m.Products, func(p ProductCard, _ int) string {
		return p.Name + " — " + p.Price + " — " + strconv.Itoa(p.Quantity) + " шт."
	})
	if len(products) == 0 {
		products = []string{textNoProducts}
	}

	return []Element{
		text(IDGameStatus, m.StatusText),
		text(IDGameRound, m.Round),
		list(IDCurrentLot, lot),
		list(IDPlayersList, players),
		list(IDBidsList, bids),
		list(IDAuctionResult, result),
		text(IDRoundMessage, m.RoundMessage),
		list(IDUserPanel, user),
		list(IDProductsList, products),
		button(value.ControlStartGame.String(), m.StartDisabled),
		button(value.ControlNextRound.String(), m.NextRoundDisabled),
		button(value.ControlResetGame.String(), m.ResetDisabled),
		button(value.ControlBuyProduct.String(), m.BuyProductDisabled),
		button(value.ControlSetName.String(), m.SetNameDisabled),
	}
}
