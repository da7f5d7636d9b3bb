package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"auction_client/internal/domain/entity"
	"auction_client/internal/domain/value"
)

const (
	endpointState         = "/api/state"
	endpointBalances      = "/api/balances"
	endpointDeals         = "/api/deals"
	endpointHumanAction   = "/api/human/action"
	endpointResetAuction  = "/api/reset"
	endpointGameStatus    = "/api/game/status"
	endpointGameStart     = "/api/game/start"
	endpointGameNextRound = "/api/game/next-round"
	endpointGameReset     = "/api/game/reset"
	endpointUserData      = "/api/user/data"
	endpointUserBuy       = "/api/user/buy"
	endpointStatistics    = "/api/statistics"
	endpointSetPlayerName = "/api/set-player-name"
)

type humanActionRequest struct {
	Action   value.HumanAction `json:"action"`
	PlayerID string            `json:"player_id"`
}

type buyProductRequest struct {
	ProductID int `json:"product_id"`
}

type setPlayerNameRequest struct {
	Name string `json:"name"`
}

func (c *Client) State(ctx context.Context) (entity.AuctionState, error) {
	var state entity.AuctionState
	if err := c.Get(ctx, endpointState, &state); err != nil {
		return entity.AuctionState{}, fmt.Errorf("c.Get: %w", err)
	}

	return state, nil
}

func (c *Client) Balances(ctx context.Context) (entity.PlayerBalances, error) {
	balances := entity.PlayerBalances{}
	if err := c.Get(ctx, endpointBalances, &balances); err != nil {
		return nil, fmt.Errorf("c.Get: %w", err)
	}

	return balances, nil
}

// Deals последние сделки, limit <= 0 означает лимит из конфигурации.
func (c *Client) Deals(ctx context.Context, limit int) (entity.Deals, error) {
	if limit <= 0 {
		limit = c.dealsLimit
	}

	query := url.Values{"limit": []string{strconv.Itoa(limit)}}

	deals := entity.Deals{}
	if err := c.Get(ctx, endpointDeals+"?"+query.Encode(), &deals); err != nil {
		return nil, fmt.Errorf("c.Get: %w", err)
	}

	return deals, nil
}

func (c *Client) HumanAction(ctx context.Context, action value.HumanAction) (entity.ActionAck, error) {
	var ack entity.ActionAck

	req := humanActionRequest{Action: action, PlayerID: c.playerID}
	if err := c.Post(ctx, endpointHumanAction, req, &ack); err != nil {
		return entity.ActionAck{}, fmt.Errorf("c.Post: %w", err)
	}

	return ack, nil
}

func (c *Client) ResetAuction(ctx context.Context) error {
	if err := c.Post(ctx, endpointResetAuction, nil, nil); err != nil {
		return fmt.Errorf("c.Post: %w", err)
	}

	return nil
}

func (c *Client) GameStatus(ctx context.Context) (entity.GameStatus, error) {
	var status entity.GameStatus
	if err := c.Get(ctx, endpointGameStatus, &status); err != nil {
		return entity.GameStatus{}, fmt.Errorf("c.Get: %w", err)
	}

	return status, nil
}

func (c *Client) StartGame(ctx context.Context) (entity.GameAck, error) {
	var ack entity.GameAck
	if err := c.Post(ctx, endpointGameStart, nil, &ack); err != nil {
		return entity.GameAck{}, fmt.Errorf("c.Post: %w", err)
	}

	return ack, nil
}

func (c *Client) NextRound(ctx context.Context) (entity.RoundResult, error) {
	var result entity.RoundResult
	if err := c.Post(ctx, endpointGameNextRound, nil, &result); err != nil {
		return entity.RoundResult{}, fmt.Errorf("c.Post: %w", err)
	}

	return result, nil
}

func (c *Client) ResetGame(ctx context.Context) (entity.GameAck, error) {
	var ack entity.GameAck
	if err := c.Post(ctx, endpointGameReset, nil, &ack); err != nil {
		return entity.GameAck{}, fmt.Errorf("c.Post: %w", err)
	}

	return ack, nil
}

func (c *Client) UserData(ctx context.Context) (entity.UserEnvelope, error) {
	var user entity.UserEnvelope
	if err := c.Get(ctx, endpointUserData, &user); err != nil {
		return entity.UserEnvelope{}, fmt.Errorf("c.Get: %w", err)
	}

	return user, nil
}

func (c *Client) BuyProduct(ctx context.Context, productID int) (entity.UserEnvelope, error) {
	var user entity.UserEnvelope
	if err := c.Post(ctx, endpointUserBuy, buyProductRequest{ProductID: productID}, &user); err != nil {
		return entity.UserEnvelope{}, fmt.Errorf("c.Post: %w", err)
	}

	return user, nil
}

func (c *Client) Statistics(ctx context.Context) (entity.Statistics, error) {
	var stats entity.Statistics
	if err := c.Get(ctx, endpointStatistics, &stats); err != nil {
		return entity.Statistics{}, fmt.Errorf("c.Get: %w", err)
	}

	return stats, nil
}

// SetPlayerName возвращает сообщение сервера об успехе.
func (c *Client) SetPlayerName(ctx context.Context, name string) (string, error) {
	var ack entity.GameAck
	if err := c.Post(ctx, endpointSetPlayerName, setPlayerNameRequest{Name: name}, &ack); err != nil {
		return "", fmt.Errorf("c.Post: %w", err)
	}

	return ack.Message, nil
}
