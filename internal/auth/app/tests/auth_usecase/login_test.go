package authusecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"authapi/internal/auth/app"
	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/domain/entities"
)

func loginPayload(password string) map[string]any {
	return map[string]any{"email": testEmail, "password": password}
}

func TestLoginSuccess(t *testing.T) {
	m := newMocks()
	m.repo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(), nil)
	m.password.On("Verify", mock.Anything, testPassword, testHash).Return(true, nil)
	m.token.On("Issue", mock.Anything, testUserID, testEmail).Return(testToken, nil)

	result, err := app.NewAuthUseCase(m.repo, m.password, m.token).Login(testContext(), loginPayload(testPassword))

	require.NoError(t, err)
	assert.Equal(t, testToken, result.Token)
	assert.Equal(t, testUserID, result.User.ID)
	assert.Equal(t, testName, result.User.Name)
	m.assertExpectations(t)
}

func TestLoginUnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	unknown := newMocks()
	unknown.repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound)
	unknown.password.On("Hash", mock.Anything, mock.AnythingOfType("string")).Return(timingHash, nil)
	unknown.password.On("Verify", mock.Anything, testPassword, timingHash).Return(false, nil)
	_, errUnknown := app.NewAuthUseCase(unknown.repo, unknown.password, unknown.token).
		Login(testContext(), loginPayload(testPassword))

	wrong := newMocks()
	wrong.repo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(), nil)
	wrong.password.On("Verify", mock.Anything, "Wr0ng!Pass", testHash).Return(false, nil)
	_, errWrong := app.NewAuthUseCase(wrong.repo, wrong.password, wrong.token).
		Login(testContext(), loginPayload("Wr0ng!Pass"))

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, apperr.InvalidCredentials, apperr.KindOf(errUnknown))
	assert.Equal(t, apperr.InvalidCredentials, apperr.KindOf(errWrong))
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	unknown.password.AssertExpectations(t)
	unknown.token.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
	wrong.token.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}

const timingHash = "$2a$10$timinghash"

func TestLoginUnknownEmailSpendsOneComparison(t *testing.T) {
	m := newMocks()
	m.repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound)
	m.password.On("Hash", mock.Anything, mock.AnythingOfType("string")).Return(timingHash, nil).Once()
	m.password.On("Verify", mock.Anything, testPassword, timingHash).Return(false, nil).Twice()

	uc := app.NewAuthUseCase(m.repo, m.password, m.token)
	for i := 0; i < 2; i++ {
		_, err := uc.Login(testContext(), loginPayload(testPassword))
		require.Error(t, err)
		assert.Equal(t, apperr.InvalidCredentials, apperr.KindOf(err))
	}

	m.password.AssertNumberOfCalls(t, "Hash", 1)
	m.password.AssertNumberOfCalls(t, "Verify", 2)
	m.assertExpectations(t)
}

func TestLoginUnknownEmailWithoutTimingHash(t *testing.T) {
	m := newMocks()
	m.repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound)
	m.password.On("Hash", mock.Anything, mock.AnythingOfType("string")).Return("", errors.New("bcrypt unavailable"))

	_, err := app.NewAuthUseCase(m.repo, m.password, m.token).Login(testContext(), loginPayload(testPassword))

	require.Error(t, err)
	assert.Equal(t, apperr.InvalidCredentials, apperr.KindOf(err))
	m.password.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]any
		setupMocks func(m *mocks)
		wantKind   apperr.Kind
	}{
		{
			name:       "empty password",
			payload:    loginPayload(""),
			setupMocks: func(*mocks) {},
			wantKind:   apperr.ValidationFailed,
		},
		{
			name:       "unexpected field",
			payload:    map[string]any{"email": testEmail, "password": "x", "remember": true},
			setupMocks: func(*mocks) {},
			wantKind:   apperr.ValidationFailed,
		},
		{
			name: "store unavailable",
			setupMocks: func(m *mocks) {
				m.repo.On("FindByEmail", mock.Anything, testEmail).Return(nil, errDatabaseConnection)
			},
			wantKind: apperr.StorageUnavailable,
		},
		{
			name: "corrupt stored hash",
			setupMocks: func(m *mocks) {
				m.repo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(), nil)
				m.password.On("Verify", mock.Anything, testPassword, testHash).Return(false, errors.New("hash too short"))
			},
			wantKind: apperr.HashingError,
		},
		{
			name: "token cannot be issued",
			setupMocks: func(m *mocks) {
				m.repo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser(), nil)
				m.password.On("Verify", mock.Anything, testPassword, testHash).Return(true, nil)
				m.token.On("Issue", mock.Anything, testUserID, testEmail).Return("", errors.New("no key"))
			},
			wantKind: apperr.ConfigurationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)

			payload := tt.payload
			if payload == nil {
				payload = loginPayload(testPassword)
			}

			result, err := app.NewAuthUseCase(m.repo, m.password, m.token).Login(testContext(), payload)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			m.assertExpectations(t)
		})
	}
}
