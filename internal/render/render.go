// Package render проецирует состояние клиента в модели экранов и дерево
// элементов. Функции пакета чистые: одинаковый View даёт одинаковый Frame.
package render

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"auction_client/internal/domain"
	"auction_client/internal/domain/entity"
	"auction_client/internal/domain/value"
	"auction_client/internal/store"
	"auction_client/pkg/errcodes"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

// Frame отрисованный экран.
type Frame struct {
	Screen   value.Screen `json:"screen"`
	Model    any          `json:"model"`
	Elements []Element    `json:"elements"`
}

// Renderer знает только id игрока, чтобы отличать свою покупку от чужой.
type Renderer struct {
	playerID string
}

func NewRenderer(playerID string) *Renderer {
	return &Renderer{
		playerID: playerID,
	}
}

// Validate проверяет форму снимка. Ошибка всегда RenderError.
func Validate(snapshot any) error {
	var err error

	switch s := snapshot.(type) {
	case entity.PlayerBalances:
		return nil
	case entity.Deals:
		for _, deal := range s {
			if err = validate.Struct(deal); err != nil {
				break
			}
		}
	default:
		err = validate.Struct(snapshot)
	}

	if err != nil {
		return domain.NewRenderError(err)
	}

	return nil
}

func (r *Renderer) Render(screen value.Screen, view store.View) (Frame, error) {
	var (
		model    any
		elements []Element
	)

	switch screen {
	case value.ScreenAuction:
		m, err := renderAuction(view, r.playerID)
		if err != nil {
			return Frame{}, fmt.Errorf("renderAuction: %w", err)
		}

		model, elements = m, m.elements()
	case value.ScreenGame:
		m, err := renderGame(view)
		if err != nil {
			return Frame{}, fmt.Errorf("renderGame: %w", err)
		}

		model, elements = m, m.elements()
	case value.ScreenStatistics:
		m, err := renderStatistics(view)
		if err != nil {
			return Frame{}, fmt.Errorf("renderStatistics: %w", err)
		}

		model, elements = m, m.elements()
	default:
		return Frame{}, domain.NewError(errcodes.InvalidScreen, fmt.Sprintf("unknown screen %q", screen))
	}

	return Frame{
		Screen:   screen,
		Model:    model,
		Elements: elements,
	}, nil
}

// Enabled включена ли кнопка в текущем состоянии. Выключенная кнопка
// не отправляет запрос.
func (r *Renderer) Enabled(screen value.Screen, view store.View, control value.Control) (bool, error) {
	frame, err := r.Render(screen, view)
	if err != nil {
		return false, err
	}

	for _, element := range frame.Elements {
		if element.Kind == KindButton && element.ID == control.String() {
			return !element.Disabled, nil
		}
	}

	return false, nil
}
