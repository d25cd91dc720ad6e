package logger

import (
	"context"

	"github.com/google/uuid"
)

// MaxRequestIDLength ограничивает идентификатор, принятый от клиента.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext сохраняет идентификатор запроса в контексте.
// Пустой идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

// AcceptRequestID возвращает идентификатор клиента, если он непустой, не длиннее
// MaxRequestIDLength и состоит из видимых ASCII символов, иначе новый.
func AcceptRequestID(candidate string) string {
	if candidate == "" || len(candidate) > MaxRequestIDLength {
		return GenerateRequestID()
	}
	for i := 0; i < len(candidate); i++ {
		if candidate[i] < 0x21 || candidate[i] > 0x7e {
			return GenerateRequestID()
		}
	}
	return candidate
}
