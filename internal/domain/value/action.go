package value

import (
	"fmt"
)

// Action действие пользователя.
type Action string

const (
	ActionBuy        Action = "buy"
	ActionWait       Action = "wait"
	ActionStart      Action = "start"
	ActionNextRound  Action = "next-round"
	ActionReset      Action = "reset"
	ActionBuyProduct Action = "buy-product"
	ActionSetName    Action = "set-name"
	ActionRefresh    Action = "refresh"
	// ActionResetAuction перезапуск раунда голландского аукциона.
	ActionResetAuction Action = "reset-auction"
)

func (a Action) String() string {
	return string(a)
}

func ParseAction(s string) (Action, error) {
	switch action := Action(s); action {
	case ActionBuy, ActionWait, ActionStart, ActionNextRound,
		ActionReset, ActionBuyProduct, ActionSetName, ActionRefresh, ActionResetAuction:
		return action, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// HumanAction действие игрока в голландском аукционе (POST /api/human/action).
type HumanAction string

const (
	HumanActionBuy  HumanAction = "buy"
	HumanActionWait HumanAction = "wait"
)

// Screen экран, которому принадлежит действие.
func (a Action) Screen() Screen {
	switch a {
	case ActionBuy, ActionWait, ActionResetAuction:
		return ScreenAuction
	case ActionRefresh:
		return ScreenStatistics
	default:
		return ScreenGame
	}
}

// Control кнопка, которой пользователь запускает действие.
func (a Action) Control() Control {
	switch a {
	case ActionBuy:
		return ControlBuy
	case ActionWait:
		return ControlWait
	case ActionStart:
		return ControlStartGame
	case ActionNextRound:
		return ControlNextRound
	case ActionReset:
		return ControlResetGame
	case ActionBuyProduct:
		return ControlBuyProduct
	case ActionSetName:
		return ControlSetName
	case ActionRefresh:
		return ControlRefreshStats
	case ActionResetAuction:
		return ControlResetAuction
	default:
		return ""
	}
}
