package value

// Control элемент управления, который может быть выключен. Значения
// совпадают с id элементов страницы.
type Control string

const (
	ControlBuy          Control = "buy-btn"
	ControlWait         Control = "wait-btn"
	ControlStartGame    Control = "startGame"
	ControlNextRound    Control = "nextRound"
	ControlResetGame    Control = "resetGame"
	ControlBuyProduct   Control = "buyProduct"
	ControlSetName      Control = "setName"
	ControlRefreshStats Control = "refreshStats"
	ControlResetAuction Control = "reset-btn"
)

func (c Control) String() string {
	return string(c)
}
