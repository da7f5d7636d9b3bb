package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"auction_client/pkg/errcodes"
)

// Тексты, которые видит пользователь, когда у ошибки нет собственного
// сообщения от сервера.
const (
	MessageRequestFailed  = "Ошибка запроса"
	MessageNetworkFailure = "Ошибка соединения с сервером"
	MessageBadSnapshot    = "Некорректные данные от сервера"
)

// AppError представляет доменную ошибку приложения.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	// Status HTTP-статус ответа сервера для ServerError, иначе 0.
	Status int
	cause  error
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap возвращает обёрнутую ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewError создаёт новую доменную ошибку.
func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// NewNetworkError запрос не дошёл до сервера или не дождался ответа.
func NewNetworkError(err error) *AppError {
	return WrapError(err, errcodes.NetworkError, MessageNetworkFailure)
}

// NewServerError сервер ответил, но отказал. message показывается
// пользователю как есть.
func NewServerError(status int, message string) *AppError {
	if message == "" {
		message = MessageRequestFailed
	}

	return &AppError{
		Code:    errcodes.ServerError,
		Message: message,
		Status:  status,
	}
}

// NewRenderError снимок не прошёл проверку формы.
func NewRenderError(err error) *AppError {
	return WrapError(err, errcodes.RenderError, MessageBadSnapshot)
}

// IsAppError проверяет, является ли ошибка доменной.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError извлекает AppError из цепочки.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetCode извлекает код ошибки, если это AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code, true
	}
	return "", false
}

// HasCode true, если в цепочке есть AppError с кодом code.
func HasCode(err error, code failure.ErrorCode) bool {
	got, ok := GetCode(err)
	return ok && got == code
}

func IsNetworkError(err error) bool { return HasCode(err, errcodes.NetworkError) }

func IsServerError(err error) bool { return HasCode(err, errcodes.ServerError) }

func IsRenderError(err error) bool { return HasCode(err, errcodes.RenderError) }

// UserMessage текст для уведомления пользователя.
func UserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return MessageRequestFailed
	}

	return appErr.Message
}
