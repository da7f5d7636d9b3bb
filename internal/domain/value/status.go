package value

// GameStatus статус игры на сервере.
type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"
	GameStatusPlaying  GameStatus = "playing"
	GameStatusFinished GameStatus = "finished"
)

// StopReason причина остановки аукциона.
type StopReason string

const (
	StopReasonSold       StopReason = "sold"
	StopReasonMinReached StopReason = "min_reached"
	StopReasonStopped    StopReason = "stopped"
)
