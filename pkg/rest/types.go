// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// ActionRequest Тело запроса на действие пользователя
type ActionRequest struct {
	// ProductID Идентификатор товара (для buy-product)
	ProductID int `json:"product_id,omitempty" validate:"omitempty,gt=0"`

	// Name Имя игрока (для set-name)
	Name string `json:"name,omitempty" validate:"omitempty,max=64"`
}

// ActionResponse Результат действия
type ActionResponse struct {
	Action string `json:"action"`
	Screen string `json:"screen"`
}

// Event Сообщение websocket-потока
type Event struct {
	// Event Тип события: frame, mutations, notification
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI)
	Message string `json:"message"`

	// SupportID Trace id запроса
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string

// View Текущее состояние экрана
type View struct {
	Screen   string `json:"screen"`
	Model    any    `json:"model"`
	Elements any    `json:"elements"`
}

// Notifications Видимые уведомления
type Notifications struct {
	Items any `json:"items"`
}
