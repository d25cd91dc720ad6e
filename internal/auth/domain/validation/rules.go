// Package validation проверяет входные данные регистрации и входа по декларативным таблицам правил.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Kind - вид нарушения.
type Kind string

// Виды нарушений.
const (
	InvalidEmail     Kind = "InvalidEmail"
	WeakPassword     Kind = "WeakPassword"
	MissingPassword  Kind = "MissingPassword"
	InvalidName      Kind = "InvalidName"
	UnexpectedField  Kind = "UnexpectedField"
	MalformedPayload Kind = "MalformedPayload"
)

// PasswordSymbols - допустимый набор спецсимволов, один из которых обязателен в пароле.
const PasswordSymbols = "@$!%*?&"

// Ограничения полей.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
	MinNameLength     = 2
	MaxNameLength     = 255
	MaxEmailLength    = 255
)

// Rule - предикат над значением поля и вид нарушения при его ложности.
type Rule struct {
	Kind    Kind
	Message string
	Valid   func(string) bool
}

// Field - поле формы и его правила. Отсутствующее или нестроковое значение
// дает нарушение вида первого правила.
type Field struct {
	Name  string
	Rules []Rule
}

// Shape - допустимый набор полей формы.
type Shape struct {
	Name   string
	Fields []Field
}

var validate = validator.New()

func isEmail(v string) bool {
	return validate.Var(v, "required,email") == nil
}

func containsAny(chars string) func(string) bool {
	return func(v string) bool {
		return strings.ContainsAny(v, chars)
	}
}

func containsRune(pred func(rune) bool) func(string) bool {
	return func(v string) bool {
		return strings.IndexFunc(v, pred) >= 0
	}
}

// Классы символов пароля - только ASCII.
func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIILower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

var emailField = Field{
	Name: "email",
	Rules: []Rule{
		{Kind: InvalidEmail, Message: "Please provide a valid email address", Valid: isEmail},
		{Kind: InvalidEmail, Message: "Email must be at most 255 characters long", Valid: func(v string) bool {
			return utf8.RuneCountInString(v) <= MaxEmailLength
		}},
	},
}

// SignupShape - правила формы регистрации.
var SignupShape = Shape{
	Name: "signup",
	Fields: []Field{
		emailField,
		{
			Name: "password",
			Rules: []Rule{
				{Kind: WeakPassword, Message: "Password must be at least 8 characters long", Valid: func(v string) bool {
					return utf8.RuneCountInString(v) >= MinPasswordLength
				}},
				{Kind: WeakPassword, Message: "Password must be at most 72 bytes long", Valid: func(v string) bool {
					return len(v) <= MaxPasswordBytes
				}},
				{Kind: WeakPassword, Message: "Password must contain at least one lowercase letter", Valid: containsRune(isASCIILower)},
				{Kind: WeakPassword, Message: "Password must contain at least one uppercase letter", Valid: containsRune(isASCIIUpper)},
				{Kind: WeakPassword, Message: "Password must contain at least one number", Valid: containsRune(isASCIIDigit)},
				{Kind: WeakPassword, Message: "Password must contain at least one special character (" + PasswordSymbols + ")", Valid: containsAny(PasswordSymbols)},
			},
		},
		{
			Name: "name",
			Rules: []Rule{
				{Kind: InvalidName, Message: "Name must be at least 2 characters long", Valid: func(v string) bool {
					return utf8.RuneCountInString(strings.TrimSpace(v)) >= MinNameLength
				}},
				{Kind: InvalidName, Message: "Name must be at most 255 characters long", Valid: func(v string) bool {
					return utf8.RuneCountInString(strings.TrimSpace(v)) <= MaxNameLength
				}},
			},
		},
	},
}

// LoginShape - правила формы входа.
var LoginShape = Shape{
	Name: "login",
	Fields: []Field{
		emailField,
		{
			Name: "password",
			Rules: []Rule{
				{Kind: MissingPassword, Message: "Password is required", Valid: func(v string) bool {
					return v != ""
				}},
			},
		},
	},
}
