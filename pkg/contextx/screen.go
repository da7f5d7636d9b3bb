package contextx

import (
	"context"
	"fmt"
)

// Screen имя экрана клиента (auction, game, statistics), к которому
// относится текущая операция.
type Screen string

type contextKeyScreen struct{}

func (s Screen) String() string {
	return string(s)
}

func WithScreen(ctx context.Context, screen Screen) context.Context {
	return context.WithValue(ctx, contextKeyScreen{}, screen)
}

func ScreenFromContext(ctx context.Context) (Screen, error) {
	screen, ok := ctx.Value(contextKeyScreen{}).(Screen)
	if !ok {
		return "", fmt.Errorf("screen: %w", ErrNoValue)
	}

	return screen, nil
}
