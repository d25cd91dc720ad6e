package validation

import (
	"sort"
	"strings"

	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/domain/entities"
)

const (
	msgFieldRequired   = " is required"
	msgFieldNotString  = " must be a string"
	msgUnexpectedField = "Property is not allowed"
	msgMalformedBody   = "Request body must be a JSON object"
)

// Validate проверяет payload по форме shape и возвращает строковые значения полей
// и все найденные нарушения. Значения возвращаются только при отсутствии нарушений.
func Validate(shape Shape, payload map[string]any) (map[string]string, []apperr.Violation) {
	var violations []apperr.Violation
	values := make(map[string]string, len(shape.Fields))
	known := make(map[string]struct{}, len(shape.Fields))

	for _, field := range shape.Fields {
		known[field.Name] = struct{}{}
		if len(field.Rules) == 0 {
			continue
		}

		raw, present := payload[field.Name]
		if !present || raw == nil {
			violations = append(violations, violation(field.Name, field.Rules[0].Kind, field.Name+msgFieldRequired))
			continue
		}

		value, ok := raw.(string)
		if !ok {
			violations = append(violations, violation(field.Name, field.Rules[0].Kind, field.Name+msgFieldNotString))
			continue
		}

		for _, rule := range field.Rules {
			if !rule.Valid(value) {
				violations = append(violations, violation(field.Name, rule.Kind, rule.Message))
			}
		}
		values[field.Name] = value
	}

	unexpected := make([]string, 0)
	for name := range payload {
		if _, ok := known[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}
	sort.Strings(unexpected)
	for _, name := range unexpected {
		violations = append(violations, violation(name, UnexpectedField, msgUnexpectedField))
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return values, nil
}

// Signup проверяет данные регистрации.
func Signup(payload map[string]any) (*entities.SignupRequest, []apperr.Violation) {
	values, violations := Validate(SignupShape, payload)
	if violations != nil {
		return nil, violations
	}
	return &entities.SignupRequest{
		Email:    values["email"],
		Password: values["password"],
		Name:     strings.TrimSpace(values["name"]),
	}, nil
}

// Login проверяет данные входа.
func Login(payload map[string]any) (*entities.LoginRequest, []apperr.Violation) {
	values, violations := Validate(LoginShape, payload)
	if violations != nil {
		return nil, violations
	}
	return &entities.LoginRequest{
		Email:    values["email"],
		Password: values["password"],
	}, nil
}

// Malformed возвращает нарушение для тела, которое не является JSON-объектом.
func Malformed() []apperr.Violation {
	return []apperr.Violation{violation("body", MalformedPayload, msgMalformedBody)}
}

func violation(field string, kind Kind, message string) apperr.Violation {
	return apperr.Violation{Field: field, Kind: string(kind), Message: message}
}
