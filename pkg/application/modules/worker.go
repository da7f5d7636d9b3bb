package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Worker модуль для фоновых циклов (опрос сервера, рассылка в websocket,
// бот уведомлений), которые живут, пока жив контекст.
type Worker struct {
	Name string
}

func (w Worker) Run(
	ctx context.Context,
	g *errgroup.Group,
	run func(context.Context) error,
) {
	g.Go(func() error {
		logger(ctx).Info("worker started", slog.String("name", w.Name))

		if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s: %w", w.Name, err)
		}

		logger(ctx).Info("worker stopped", slog.String("name", w.Name))

		return nil
	})
}
