// Package app содержит сценарии регистрации, входа и получения профиля.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/domain/entities"
	"authapi/internal/auth/domain/validation"
	"authapi/internal/auth/ports/api"
	"authapi/internal/auth/ports/repositories"
	svc "authapi/internal/auth/ports/services"
	"authapi/pkg/logger"
)

// Этапы сценариев. Имена попадают в поля span.
const (
	StageValidating         = "validating"
	StageCheckingUniqueness = "checking_uniqueness"
	StageHashing            = "hashing"
	StagePersisting         = "persisting"
	StageLookingUp          = "looking_up"
	StageVerifyingPassword  = "verifying_password"
	StageIssuingToken       = "issuing_token"
)

const (
	methodSignup = "Signup"
	methodLogin  = "Login"

	opSignup = "signup"
	opLogin  = "login"

	msgStartSignup       = "starting user signup"
	msgValidationFailed  = "payload rejected by validator"
	msgEmailExists       = "user with this email already exists"
	msgUserRegistered    = "user registered successfully"
	msgLoginAttempt      = "login attempt"
	msgLoginNonExistent  = "login attempt with non-existent email"
	msgInvalidPassword   = "invalid password provided"
	msgUserLoggedIn      = "user logged in successfully"
	msgErrCheckExisting  = "failed to check existing user"
	msgErrHashPassword   = "failed to hash password"
	msgErrCreateUser     = "failed to create user"
	msgErrIssueToken     = "failed to issue token"
	msgErrFindingUser    = "error finding user by email"
	msgErrVerifyPassword = "error verifying password"
	msgErrTimingHash     = "failed to prepare timing hash"

	errCtxCheckingUser      = "checking existing user"
	errCtxHashingPassword   = "hashing password"
	errCtxCreatingUser      = "creating user"
	errCtxIssuingToken      = "issuing token"
	errCtxFindingUser       = "finding user"
	errCtxVerifyingPassword = "verifying password"
)

// timingPassword хэшируется один раз; с этим хэшем сравнивается пароль при
// неизвестном email, чтобы вход занимал столько же времени, сколько при неверном пароле.
const timingPassword = "timing-equalizer-Aa1!"

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService

	timingOnce sync.Once
	timingHash string
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Signup проверяет данные, создает пользователя и выдает ему токен.
func (a *AuthUseCaseImpl) Signup(ctx context.Context, payload map[string]any) (result *entities.AuthResult, err error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignup))
	span := logger.StartSpan(ctx, opSignup)
	defer func() { span.End(ctx, err) }()

	span.Stage(ctx, StageValidating)
	req, violations := validation.Signup(payload)
	if violations != nil {
		log.Debug(ctx, msgValidationFailed, zap.Int("violations", len(violations)))
		return nil, apperr.Validation(opSignup, violations)
	}
	log = log.With(zap.String("email", req.Email))
	log.Debug(ctx, msgStartSignup)

	span.Stage(ctx, StageCheckingUniqueness)
	existing, err := a.userRepo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		log.Debug(ctx, msgEmailExists)
		return nil, apperr.E(apperr.EmailTaken, opSignup, entities.ErrDuplicateEmail)
	case err != nil && !errors.Is(err, entities.ErrUserNotFound):
		log.Error(ctx, msgErrCheckExisting, zap.Error(err))
		return nil, apperr.E(apperr.StorageUnavailable, opSignup, fmt.Errorf("%s: %w", errCtxCheckingUser, err))
	}

	span.Stage(ctx, StageHashing)
	hash, err := a.passwordSvc.Hash(ctx, req.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, apperr.E(apperr.HashingError, opSignup, fmt.Errorf("%s: %w", errCtxHashingPassword, err))
	}

	span.Stage(ctx, StagePersisting)
	// Запись не прерывается отменой запроса: клиент может уйти, строка должна сохраниться целиком.
	user, err := a.userRepo.Create(context.WithoutCancel(ctx), &entities.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	})
	if err != nil {
		if errors.Is(err, entities.ErrDuplicateEmail) {
			log.Debug(ctx, msgEmailExists)
			return nil, apperr.E(apperr.EmailTaken, opSignup, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, apperr.E(apperr.StorageUnavailable, opSignup, fmt.Errorf("%s: %w", errCtxCreatingUser, err))
	}

	span.Stage(ctx, StageIssuingToken)
	token, err := a.tokenSvc.Issue(ctx, user.ID, user.Email)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err))
		return nil, apperr.E(apperr.ConfigurationError, opSignup, fmt.Errorf("%s: %w", errCtxIssuingToken, err))
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", user.ID))
	return &entities.AuthResult{Token: token, User: user.Public()}, nil
}

// Login проверяет учетные данные и выдает токен. Неизвестный email и неверный
// пароль дают одну и ту же ошибку InvalidCredentials.
func (a *AuthUseCaseImpl) Login(ctx context.Context, payload map[string]any) (result *entities.AuthResult, err error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin))
	span := logger.StartSpan(ctx, opLogin)
	defer func() { span.End(ctx, err) }()

	span.Stage(ctx, StageValidating)
	req, violations := validation.Login(payload)
	if violations != nil {
		log.Debug(ctx, msgValidationFailed, zap.Int("violations", len(violations)))
		return nil, apperr.Validation(opLogin, violations)
	}
	log = log.With(zap.String("email", req.Email))
	log.Debug(ctx, msgLoginAttempt)

	span.Stage(ctx, StageLookingUp)
	user, err := a.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			span.Stage(ctx, StageVerifyingPassword)
			a.verifyAgainstTimingHash(ctx, req.Password)
			return nil, apperr.E(apperr.InvalidCredentials, opLogin, nil)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, apperr.E(apperr.StorageUnavailable, opLogin, fmt.Errorf("%s: %w", errCtxFindingUser, err))
	}

	span.Stage(ctx, StageVerifyingPassword)
	ok, err := a.passwordSvc.Verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err))
		return nil, apperr.E(apperr.HashingError, opLogin, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err))
	}
	if !ok {
		log.Debug(ctx, msgInvalidPassword)
		return nil, apperr.E(apperr.InvalidCredentials, opLogin, nil)
	}

	span.Stage(ctx, StageIssuingToken)
	token, err := a.tokenSvc.Issue(ctx, user.ID, user.Email)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err))
		return nil, apperr.E(apperr.ConfigurationError, opLogin, fmt.Errorf("%s: %w", errCtxIssuingToken, err))
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return &entities.AuthResult{Token: token, User: user.Public()}, nil
}

// verifyAgainstTimingHash выполняет сравнение, результат которого не важен.
func (a *AuthUseCaseImpl) verifyAgainstTimingHash(ctx context.Context, password string) {
	a.timingOnce.Do(func() {
		hash, err := a.passwordSvc.Hash(ctx, timingPassword)
		if err != nil {
			logger.Log(ctx).Warn(ctx, msgErrTimingHash, zap.Error(err))
			return
		}
		a.timingHash = hash
	})
	if a.timingHash == "" {
		return
	}
	_, _ = a.passwordSvc.Verify(ctx, password, a.timingHash)
}
