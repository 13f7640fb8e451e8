package logger

import (
	"context"

	"github.com/google/uuid"
)

// requestIDKeyType - ключ контекста для хранения request_id.
type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// Предельная длина идентификатора, приходящего из внешнего заголовка.
const maxRequestIDLength = 64

// NewRequestIDContext возвращает контекст с идентификатором запроса.
// Пустой requestID заменяется новым uuid, слишком длинные внешние
// значения обрезаются. Контекст с тем же идентификатором не оборачивается
// повторно.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	if len(requestID) > maxRequestIDLength {
		requestID = requestID[:maxRequestIDLength]
	}
	if existing, ok := GetRequestID(ctx); ok && existing == requestID {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}
