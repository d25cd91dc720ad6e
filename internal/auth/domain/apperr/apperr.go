// Package apperr описывает закрытый набор видов ошибок сервиса.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind - вид ошибки.
type Kind uint8

// Виды ошибок. Internal - значение по умолчанию для ошибок без вида.
const (
	Internal Kind = iota
	ValidationFailed
	EmailTaken
	InvalidCredentials
	Unauthenticated
	RateLimited
	NotFound
	PayloadTooLarge
	ConfigurationError
	StorageUnavailable
	HashingError
)

var kindNames = [...]string{
	Internal:           "Internal",
	ValidationFailed:   "ValidationFailed",
	EmailTaken:         "EmailTaken",
	InvalidCredentials: "InvalidCredentials",
	Unauthenticated:    "Unauthenticated",
	RateLimited:        "RateLimited",
	NotFound:           "NotFound",
	PayloadTooLarge:    "PayloadTooLarge",
	ConfigurationError: "ConfigurationError",
	StorageUnavailable: "StorageUnavailable",
	HashingError:       "HashingError",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ClientError сообщает, вызвана ли ошибка данными клиента.
func (k Kind) ClientError() bool {
	switch k {
	case ValidationFailed, EmailTaken, InvalidCredentials, Unauthenticated, RateLimited, NotFound, PayloadTooLarge:
		return true
	default:
		return false
	}
}

// Violation - нарушение правила проверки поля.
type Violation struct {
	Field   string
	Kind    string
	Message string
}

// Error - ошибка с видом, операцией и причиной.
type Error struct {
	Kind       Kind
	Op         string
	Violations []Violation
	Err        error
}

// E создает ошибку вида kind для операции op.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Validation создает ошибку ValidationFailed со списком нарушений.
func Validation(op string, violations []Violation) *Error {
	return &Error{Kind: ValidationFailed, Op: op, Violations: violations}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if len(e.Violations) > 0 {
		fmt.Fprintf(&b, " (%d violations)", len(e.Violations))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по виду, что позволяет писать errors.Is(err, &Error{Kind: EmailTaken}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// KindOf возвращает вид первой ошибки *Error в цепочке или Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// ViolationsOf возвращает нарушения из цепочки ошибок.
func ViolationsOf(err error) []Violation {
	var e *Error
	if errors.As(err, &e) {
		return e.Violations
	}
	return nil
}
