package logx

const (
	FieldAction          = "action"
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldConnectionID    = "connection-id"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldMessageID       = "message-id"
	FieldNotificationID  = "notification-id"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResource        = "resource"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldScreen          = "screen"
	FieldSeq             = "seq"
	FieldSeverity        = "severity"
	FieldStack           = "stack"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
