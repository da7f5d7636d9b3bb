package value

import (
	"fmt"
)

// Screen экран клиента. У каждого экрана свой набор снимков и свой
// интервал опроса.
type Screen string

const (
	ScreenAuction    Screen = "auction"
	ScreenGame       Screen = "game"
	ScreenStatistics Screen = "statistics"
)

func (s Screen) String() string {
	return string(s)
}

func ParseScreen(s string) (Screen, error) {
	switch screen := Screen(s); screen {
	case ScreenAuction, ScreenGame, ScreenStatistics:
		return screen, nil
	default:
		return "", fmt.Errorf("unknown screen %q", s)
	}
}

func Screens() []Screen {
	return []Screen{ScreenAuction, ScreenGame, ScreenStatistics}
}
