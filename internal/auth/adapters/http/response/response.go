// Package response формирует единый конверт ответа и сопоставляет виды ошибок со статусами HTTP.
package response

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"authapi/internal/auth/domain/apperr"
	"authapi/pkg/logger"
)

// TimestampLayout - RFC3339 с миллисекундами.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Публичные сообщения об ошибках.
const (
	MsgValidationFailed   = "Validation failed"
	MsgEmailTaken         = "Email already registered"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthenticated    = "Authentication required"
	MsgRateLimited        = "Too many requests from this IP, please try again after 15 minutes"
	MsgNotFound           = "Route not found"
	MsgPayloadTooLarge    = "Request body is too large"
	MsgInternal           = "Internal server error"
)

const (
	msgServerError     = "request failed with server error"
	msgClientError     = "request rejected"
	errCtxSendResponse = "sending response"
)

type mapping struct {
	status  int
	message string
}

var kindMapping = map[apperr.Kind]mapping{
	apperr.ValidationFailed:   {fiber.StatusBadRequest, MsgValidationFailed},
	apperr.EmailTaken:         {fiber.StatusConflict, MsgEmailTaken},
	apperr.InvalidCredentials: {fiber.StatusUnauthorized, MsgInvalidCredentials},
	apperr.Unauthenticated:    {fiber.StatusUnauthorized, MsgUnauthenticated},
	apperr.RateLimited:        {fiber.StatusTooManyRequests, MsgRateLimited},
	apperr.NotFound:           {fiber.StatusNotFound, MsgNotFound},
	apperr.PayloadTooLarge:    {fiber.StatusRequestEntityTooLarge, MsgPayloadTooLarge},
	apperr.ConfigurationError: {fiber.StatusInternalServerError, MsgInternal},
	apperr.HashingError:       {fiber.StatusInternalServerError, MsgInternal},
	apperr.StorageUnavailable: {fiber.StatusServiceUnavailable, MsgInternal},
	apperr.Internal:           {fiber.StatusInternalServerError, MsgInternal},
}

// StatusOf возвращает статус HTTP и публичное сообщение для вида ошибки.
func StatusOf(kind apperr.Kind) (int, string) {
	m, ok := kindMapping[kind]
	if !ok {
		m = kindMapping[apperr.Internal]
	}
	return m.status, m.message
}

// Detail - нарушение правила проверки в теле ответа.
type Detail struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Envelope - конверт любого ответа API.
type Envelope struct {
	Success   bool     `json:"success"`
	Data      any      `json:"data,omitempty"`
	Error     string   `json:"error,omitempty"`
	Details   []Detail `json:"details,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// Shaper формирует ответы. Подробности серверных ошибок показываются клиенту
// только при включенном exposeErrors.
type Shaper struct {
	now          func() time.Time
	exposeErrors bool
}

// Option настраивает Shaper.
type Option func(*Shaper)

// WithClock подменяет источник времени для поля timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Shaper) {
		s.now = now
	}
}

// WithErrorDetails включает показ текста серверных ошибок (режим development).
func WithErrorDetails(expose bool) Option {
	return func(s *Shaper) {
		s.exposeErrors = expose
	}
}

// NewShaper создает Shaper.
func NewShaper(opts ...Option) *Shaper {
	s := &Shaper{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Shaper) timestamp() string {
	return s.now().UTC().Format(TimestampLayout)
}

// Success строит успешный конверт.
func (s *Shaper) Success(data any) Envelope {
	return Envelope{Success: true, Data: data, Timestamp: s.timestamp()}
}

// Failure строит конверт ошибки и возвращает статус.
func (s *Shaper) Failure(err error) (int, Envelope) {
	kind := apperr.KindOf(err)
	status, message := StatusOf(kind)

	if !kind.ClientError() && s.exposeErrors && err != nil {
		message = err.Error()
	}

	env := Envelope{Success: false, Error: message, Timestamp: s.timestamp()}
	for _, v := range apperr.ViolationsOf(err) {
		env.Details = append(env.Details, Detail{Field: v.Field, Kind: v.Kind, Message: v.Message})
	}
	return status, env
}

// Send отправляет успешный ответ.
func (s *Shaper) Send(c fiber.Ctx, status int, data any) error {
	if err := c.Status(status).JSON(s.Success(data)); err != nil {
		return fmt.Errorf("%s: %w", errCtxSendResponse, err)
	}
	return nil
}

// SendError логирует ошибку и отправляет конверт ошибки. Серверные ошибки
// логируются целиком на уровне error.
func (s *Shaper) SendError(c fiber.Ctx, err error) error {
	ctx := c.Context()
	status, env := s.Failure(err)

	log := logger.Log(ctx).With(
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Stringer("kind", apperr.KindOf(err)),
	)
	if status >= fiber.StatusInternalServerError {
		log.Error(ctx, msgServerError, zap.Error(err))
	} else {
		log.Debug(ctx, msgClientError, zap.Error(err))
	}

	if sendErr := c.Status(status).JSON(env); sendErr != nil {
		return fmt.Errorf("%s: %w", errCtxSendResponse, sendErr)
	}
	return nil
}

// ErrorHandler - обработчик ошибок fiber: ошибки фреймворка переводятся в виды apperr.
func (s *Shaper) ErrorHandler(c fiber.Ctx, err error) error {
	var ae *apperr.Error
	var fe *fiber.Error
	if !errors.As(err, &ae) && errors.As(err, &fe) {
		err = apperr.E(kindOfStatus(fe.Code), "", err)
	}
	return s.SendError(c, err)
}

// StatusOfError возвращает статус, с которым ErrorHandler ответит на err.
func StatusOfError(err error) int {
	status, _ := StatusOf(kindOfError(err))
	return status
}

func kindOfError(err error) apperr.Kind {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return kindOfStatus(fe.Code)
	}
	return apperr.Internal
}

func kindOfStatus(status int) apperr.Kind {
	switch status {
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return apperr.NotFound
	case fiber.StatusRequestEntityTooLarge:
		return apperr.PayloadTooLarge
	case fiber.StatusTooManyRequests:
		return apperr.RateLimited
	case fiber.StatusUnauthorized:
		return apperr.Unauthenticated
	case fiber.StatusBadRequest:
		return apperr.ValidationFailed
	default:
		return apperr.Internal
	}
}
