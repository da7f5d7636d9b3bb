package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	// Ошибки клиента аукциона
	NetworkError    failure.ErrorCode = "NetworkError"    // Запрос к серверу не завершился
	ServerError     failure.ErrorCode = "ServerError"     // Не-2xx или success:false
	RenderError     failure.ErrorCode = "RenderError"     // Снимок состояния некорректной формы
	ControlDisabled failure.ErrorCode = "ControlDisabled" // Кнопка сейчас неактивна
	ActionInFlight  failure.ErrorCode = "ActionInFlight"  // Такое же действие ещё выполняется
	UnknownAction   failure.ErrorCode = "UnknownAction"
	InvalidScreen   failure.ErrorCode = "InvalidScreen"
	InvalidProduct  failure.ErrorCode = "InvalidProduct"
	InvalidName     failure.ErrorCode = "InvalidName"
)
