package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"auction_client/internal/domain"
	"auction_client/internal/domain/value"
	"auction_client/internal/store"
	"auction_client/pkg/contextx"
	"auction_client/pkg/errcodes"
	"auction_client/pkg/logx"
)

const (
	messageGameStarted   = "Игра начата!"
	messageGameReset     = "Игра сброшена!"
	messageStatsUpdated  = "Статистика обновлена!"
	messageAuctionReset  = "Аукцион перезапущен"
	messageActionBusy    = "Действие уже выполняется"
	messageControlOff    = "Кнопка сейчас недоступна"
	messageNameRequired  = "Имя не может быть пустым"
	messageNoProductID   = "ID товара не указан"
	actionGuardKeyPrefix = "action:"
)

// ActionParams параметры действия пользователя.
type ActionParams struct {
	ProductID int
	Name      string
}

// Perform выполняет действие пользователя: проверяет, что кнопка
// включена, выключает её до ответа, отправляет запрос, показывает результат
// и обновляет экран. Кнопка включается обратно при любом исходе.
func (r *Reconciler) Perform(ctx context.Context, action value.Action, params ActionParams) error {
	screen := action.Screen()

	control := action.Control()
	if control == "" {
		return domain.NewError(errcodes.UnknownAction, fmt.Sprintf("unknown action %q", action))
	}

	ctx = contextx.WithScreen(ctx, contextx.Screen(screen))
	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldAction, action.String()),
		slog.String(logx.FieldScreen, screen.String()),
	))

	if err := validateParams(action, params); err != nil {
		r.metrics.actions.WithLabelValues(action.String(), outcomeFailure).Inc()
		return err
	}

	key := actionGuardKeyPrefix + action.String()
	if !r.guard.TryAcquire(key) {
		r.metrics.actions.WithLabelValues(action.String(), outcomeBusy).Inc()
		return domain.NewError(errcodes.ActionInFlight, messageActionBusy)
	}
	defer r.guard.Release(key)

	enabled, err := r.renderer.Enabled(screen, r.store.Read(), control)
	if err != nil {
		return fmt.Errorf("renderer.Enabled: %w", err)
	}

	if !enabled {
		r.metrics.actions.WithLabelValues(action.String(), outcomeDisabled).Inc()
		logger(ctx).Debug("control is disabled")

		return domain.NewError(errcodes.ControlDisabled, messageControlOff)
	}

	patch := r.store.ApplyOptimistic(store.Patch{
		Kind:    primaryKind(screen),
		Disable: []value.Control{control},
	})
	defer func() {
		r.store.Revert(patch)
		_ = r.render(ctx, screen)
	}()

	_ = r.render(ctx, screen)

	message, severity, err := r.send(ctx, action, params)
	if err != nil {
		r.metrics.actions.WithLabelValues(action.String(), outcomeFailure).Inc()
		logger(ctx).Warn("action failed", logx.Error(err))

		if ctx.Err() == nil {
			r.notifier.Notify(ctx, domain.UserMessage(err), value.SeverityError)
		}

		return err
	}

	r.metrics.actions.WithLabelValues(action.String(), outcomeSuccess).Inc()

	// Ошибку обновления Refresh уже показал сам.
	refreshErr := r.Refresh(ctx, screen)

	if message != "" && (refreshErr == nil || action != value.ActionRefresh) {
		r.notifier.Notify(ctx, message, severity)
	}

	if refreshErr != nil && action == value.ActionRefresh {
		return fmt.Errorf("r.Refresh: %w", refreshErr)
	}

	return nil
}

// send отправляет действие и применяет снимок из ответа, если он есть.
// Возвращает текст уведомления об успехе.
func (r *Reconciler) send(ctx context.Context, action value.Action, params ActionParams) (string, value.Severity, error) {
	switch action {
	case value.ActionBuy:
		if _, err := r.api.HumanAction(ctx, value.HumanActionBuy); err != nil {
			return "", "", fmt.Errorf("api.HumanAction: %w", err)
		}

		// Итог покупки виден в строке состояния аукциона.
		return "", "", nil
	case value.ActionWait:
		if _, err := r.api.HumanAction(ctx, value.HumanActionWait); err != nil {
			return "", "", fmt.Errorf("api.HumanAction: %w", err)
		}

		return "", "", nil
	case value.ActionResetAuction:
		if err := r.api.ResetAuction(ctx); err != nil {
			return "", "", fmt.Errorf("api.ResetAuction: %w", err)
		}

		return messageAuctionReset, value.SeveritySuccess, nil
	case value.ActionStart:
		ack, err := r.api.StartGame(ctx)
		if err != nil {
			return "", "", fmt.Errorf("api.StartGame: %w", err)
		}

		if ack.UserData != nil {
			r.store.Replace(value.KindUser, *ack.UserData)
		}

		r.store.Forget(value.KindRound)

		return messageGameStarted, value.SeveritySuccess, nil
	case value.ActionNextRound:
		result, err := r.api.NextRound(ctx)
		if err != nil {
			return "", "", fmt.Errorf("api.NextRound: %w", err)
		}

		r.store.Replace(value.KindRound, result)

		if result.GameOver && result.GameOverMessage != "" {
			return result.GameOverMessage, value.SeverityInfo, nil
		}

		return result.Message, value.SeverityInfo, nil
	case value.ActionReset:
		if _, err := r.api.ResetGame(ctx); err != nil {
			return "", "", fmt.Errorf("api.ResetGame: %w", err)
		}

		r.store.Forget(value.KindRound)
		r.store.Forget(value.KindUser)

		return messageGameReset, value.SeveritySuccess, nil
	case value.ActionBuyProduct:
		user, err := r.api.BuyProduct(ctx, params.ProductID)
		if err != nil {
			return "", "", fmt.Errorf("api.BuyProduct: %w", err)
		}

		if user.UserData != nil {
			r.store.Replace(value.KindUser, *user.UserData)
		}

		return user.Message, value.SeveritySuccess, nil
	case value.ActionSetName:
		message, err := r.api.SetPlayerName(ctx, strings.TrimSpace(params.Name))
		if err != nil {
			return "", "", fmt.Errorf("api.SetPlayerName: %w", err)
		}

		return message, value.SeveritySuccess, nil
	case value.ActionRefresh:
		// Запрос статистики делает Refresh в Perform.
		return messageStatsUpdated, value.SeveritySuccess, nil
	default:
		return "", "", domain.NewError(errcodes.UnknownAction, fmt.Sprintf("unknown action %q", action))
	}
}

func validateParams(action value.Action, params ActionParams) error {
	switch action {
	case value.ActionBuyProduct:
		if params.ProductID <= 0 {
			return domain.NewError(errcodes.InvalidProduct, messageNoProductID)
		}
	case value.ActionSetName:
		if strings.TrimSpace(params.Name) == "" {
			return domain.NewError(errcodes.InvalidName, messageNameRequired)
		}
	}

	return nil
}

// primaryKind снимок, свежая версия которого снимает правку экрана.
func primaryKind(screen value.Screen) value.SnapshotKind {
	switch screen {
	case value.ScreenAuction:
		return value.KindAuction
	case value.ScreenStatistics:
		return value.KindStatistics
	default:
		return value.KindGame
	}
}
