package worker

import (
	"context"
	"slices"

	"auction_client/internal/domain/entity"
	"auction_client/internal/domain/value"
	"auction_client/internal/format"
)

// resource один запрос цикла опроса.
type resource struct {
	kind  value.SnapshotKind
	fetch func(ctx context.Context) (any, error)
	// unwrap достаёт снимок из ответа, если сервер заворачивает его в
	// конверт.
	unwrap func(data any) any
	// optional ресурс может законно отсутствовать: отказ сервера убирает
	// снимок без уведомления.
	optional bool
}

func identity(data any) any {
	return data
}

func (r *Reconciler) resources(screen value.Screen) []resource {
	switch screen {
	case value.ScreenAuction:
		return []resource{
			{
				kind:   value.KindAuction,
				fetch:  func(ctx context.Context) (any, error) { return r.api.State(ctx) },
				unwrap: identity,
			},
			{
				kind:   value.KindBalances,
				fetch:  func(ctx context.Context) (any, error) { return r.api.Balances(ctx) },
				unwrap: identity,
			},
			{
				kind:   value.KindDeals,
				fetch:  func(ctx context.Context) (any, error) { return r.api.Deals(ctx, 0) },
				unwrap: identity,
			},
		}
	case value.ScreenGame:
		return []resource{
			{
				kind:   value.KindGame,
				fetch:  func(ctx context.Context) (any, error) { return r.api.GameStatus(ctx) },
				unwrap: identity,
			},
			{
				// До начала игры у сессии нет игрока, сервер отвечает
				// success:false.
				kind:     value.KindUser,
				fetch:    func(ctx context.Context) (any, error) { return r.api.UserData(ctx) },
				unwrap:   unwrapUser,
				optional: true,
			},
		}
	case value.ScreenStatistics:
		return []resource{
			{
				kind:   value.KindStatistics,
				fetch:  func(ctx context.Context) (any, error) { return r.api.Statistics(ctx) },
				unwrap: identity,
			},
		}
	default:
		return nil
	}
}

func unwrapUser(data any) any {
	if envelope, ok := data.(entity.UserEnvelope); ok && envelope.UserData != nil {
		return *envelope.UserData
	}

	return data
}

func dealWonMessage(deal entity.Deal) string {
	return "Вы купили " + deal.ProductName + " за " + format.Money(deal.Price)
}

// Screens экраны, которые опрашиваются при следующем запуске.
func (r *Reconciler) Screens() []value.Screen {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.screens)
}

// AddScreen добавляет экран в опрос (если ещё нет).
func (r *Reconciler) AddScreen(screen value.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.screens, screen) {
		return
	}

	r.screens = append(r.screens, screen)
}

// SetScreens заменяет список опрашиваемых экранов.
func (r *Reconciler) SetScreens(screens ...value.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screens = r.screens[:0]
	for _, screen := range screens {
		if !slices.Contains(r.screens, screen) {
			r.screens = append(r.screens, screen)
		}
	}
}

// RemoveScreen убирает экран из опроса.
func (r *Reconciler) RemoveScreen(screen value.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screens = slices.DeleteFunc(r.screens, func(s value.Screen) bool {
		return s == screen
	})
}
