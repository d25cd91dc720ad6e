package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/domain/validation"
)

func kinds(violations []apperr.Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Kind)
	}
	return out
}

func fields(violations []apperr.Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Field)
	}
	return out
}

func TestSignup(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"email":    "jane@example.com",
			"password": "Str0ng!Pass",
			"name":     "Jane",
		}
	}

	t.Run("accepts a valid payload", func(t *testing.T) {
		req, violations := validation.Signup(valid())
		require.Empty(t, violations)
		require.NotNil(t, req)
		assert.Equal(t, "jane@example.com", req.Email)
		assert.Equal(t, "Str0ng!Pass", req.Password)
		assert.Equal(t, "Jane", req.Name)
	})

	t.Run("trims the name", func(t *testing.T) {
		payload := valid()
		payload["name"] = "  Jo  "

		req, violations := validation.Signup(payload)
		require.Empty(t, violations)
		assert.Equal(t, "Jo", req.Name)
	})

	tests := []struct {
		name       string
		mutate     func(map[string]any)
		wantKinds  []string
		wantFields []string
	}{
		{
			name:       "password without symbol and too short",
			mutate:     func(p map[string]any) { p["password"] = "Weak1" },
			wantKinds:  []string{"WeakPassword", "WeakPassword"},
			wantFields: []string{"password", "password"},
		},
		{
			name:       "password without uppercase",
			mutate:     func(p map[string]any) { p["password"] = "str0ng!pass" },
			wantKinds:  []string{"WeakPassword"},
			wantFields: []string{"password"},
		},
		{
			name:       "password without digit",
			mutate:     func(p map[string]any) { p["password"] = "Strong!Pass" },
			wantKinds:  []string{"WeakPassword"},
			wantFields: []string{"password"},
		},
		{
			name:       "password with a symbol outside the allowed set",
			mutate:     func(p map[string]any) { p["password"] = "Str0ng#Pass" },
			wantKinds:  []string{"WeakPassword"},
			wantFields: []string{"password"},
		},
		{
			name:       "non-ascii letters count as neither case",
			mutate:     func(p map[string]any) { p["password"] = "ÄÖÜßéé1!" },
			wantKinds:  []string{"WeakPassword", "WeakPassword"},
			wantFields: []string{"password", "password"},
		},
		{
			name:       "cyrillic capitals do not satisfy the uppercase rule",
			mutate:     func(p map[string]any) { p["password"] = "ПАРОЛЬ1!a" },
			wantKinds:  []string{"WeakPassword"},
			wantFields: []string{"password"},
		},
		{
			name:       "cyrillic lowercase does not satisfy the lowercase rule",
			mutate:     func(p map[string]any) { p["password"] = "пароль1!A" },
			wantKinds:  []string{"WeakPassword"},
			wantFields: []string{"password"},
		},
		{
			name:       "password longer than bcrypt input",
			mutate:     func(p map[string]any) { p["password"] = "Aa1!" + strings.Repeat("x", 69) },
			wantKinds:  []string{"WeakPassword"},
			wantFields: []string{"password"},
		},
		{
			name:       "invalid email",
			mutate:     func(p map[string]any) { p["email"] = "not-an-email" },
			wantKinds:  []string{"InvalidEmail"},
			wantFields: []string{"email"},
		},
		{
			name:       "short name",
			mutate:     func(p map[string]any) { p["name"] = "J" },
			wantKinds:  []string{"InvalidName"},
			wantFields: []string{"name"},
		},
		{
			name:       "missing email",
			mutate:     func(p map[string]any) { delete(p, "email") },
			wantKinds:  []string{"InvalidEmail"},
			wantFields: []string{"email"},
		},
		{
			name:       "null name",
			mutate:     func(p map[string]any) { p["name"] = nil },
			wantKinds:  []string{"InvalidName"},
			wantFields: []string{"name"},
		},
		{
			name:       "non-string password",
			mutate:     func(p map[string]any) { p["password"] = 12345678 },
			wantKinds:  []string{"WeakPassword"},
			wantFields: []string{"password"},
		},
		{
			name:       "extra fields are rejected",
			mutate:     func(p map[string]any) { p["role"] = "admin"; p["isAdmin"] = true },
			wantKinds:  []string{"UnexpectedField", "UnexpectedField"},
			wantFields: []string{"isAdmin", "role"},
		},
		{
			name: "all problems are reported together",
			mutate: func(p map[string]any) {
				p["email"] = "bad"
				p["password"] = "Weak1"
				delete(p, "name")
				p["extra"] = 1
			},
			wantKinds:  []string{"InvalidEmail", "WeakPassword", "WeakPassword", "InvalidName", "UnexpectedField"},
			wantFields: []string{"email", "password", "password", "name", "extra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := valid()
			tt.mutate(payload)

			req, violations := validation.Signup(payload)
			assert.Nil(t, req)
			assert.Equal(t, tt.wantKinds, kinds(violations))
			assert.Equal(t, tt.wantFields, fields(violations))
		})
	}

	t.Run("empty payload", func(t *testing.T) {
		req, violations := validation.Signup(nil)
		assert.Nil(t, req)
		assert.Equal(t, []string{"InvalidEmail", "WeakPassword", "InvalidName"}, kinds(violations))
	})
}

func TestLogin(t *testing.T) {
	t.Run("accepts any non-empty password", func(t *testing.T) {
		req, violations := validation.Login(map[string]any{"email": "jane@example.com", "password": "x"})
		require.Empty(t, violations)
		assert.Equal(t, "jane@example.com", req.Email)
		assert.Equal(t, "x", req.Password)
	})

	t.Run("empty password", func(t *testing.T) {
		req, violations := validation.Login(map[string]any{"email": "jane@example.com", "password": ""})
		assert.Nil(t, req)
		assert.Equal(t, []string{"MissingPassword"}, kinds(violations))
	})

	t.Run("missing password and bad email", func(t *testing.T) {
		req, violations := validation.Login(map[string]any{"email": "jane"})
		assert.Nil(t, req)
		assert.Equal(t, []string{"InvalidEmail", "MissingPassword"}, kinds(violations))
	})

	t.Run("name is not part of login", func(t *testing.T) {
		_, violations := validation.Login(map[string]any{"email": "jane@example.com", "password": "x", "name": "Jane"})
		assert.Equal(t, []string{"UnexpectedField"}, kinds(violations))
		assert.Equal(t, []string{"name"}, fields(violations))
	})
}

func TestMalformed(t *testing.T) {
	violations := validation.Malformed()
	require.Len(t, violations, 1)
	assert.Equal(t, "body", violations[0].Field)
	assert.Equal(t, string(validation.MalformedPayload), violations[0].Kind)
}
