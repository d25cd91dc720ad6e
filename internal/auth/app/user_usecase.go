package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/domain/entities"
	"authapi/internal/auth/domain/services"
	"authapi/internal/auth/ports/api"
	"authapi/internal/auth/ports/repositories"
	svc "authapi/internal/auth/ports/services"
	"authapi/pkg/logger"
)

const (
	methodAuthenticate   = "Authenticate"
	methodGetUserProfile = "GetUserProfile"

	opAuthenticate = "authenticate"
	opProfile      = "profile"

	msgTokenRejected       = "bearer token rejected"
	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileUserMissing  = "token subject no longer exists"
	msgProfileRetrieved    = "user profile successfully retrieved"
	msgErrFindingUserByID  = "failed to find user by ID"

	errCtxFetchingProfile = "fetching user profile"
)

// ErrEmptyToken возвращается, если токен не передан.
var ErrEmptyToken = errors.New("bearer token is empty")

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
	tokenSvc svc.TokenService
}

// NewUserUseCase создает новый экземпляр сервиса пользователя.
func NewUserUseCase(userRepo repositories.UserRepository, tokenSvc svc.TokenService) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

// Authenticate проверяет bearer-токен. Любая ошибка проверки - Unauthenticated.
func (u *UserUseCaseImpl) Authenticate(ctx context.Context, token string) (*services.Claims, error) {
	if token == "" {
		return nil, apperr.E(apperr.Unauthenticated, opAuthenticate, ErrEmptyToken)
	}

	claims, err := u.tokenSvc.Verify(ctx, token)
	if err != nil {
		logger.Log(ctx).Debug(ctx, msgTokenRejected, zap.String("method", methodAuthenticate), zap.Error(err))
		return nil, apperr.E(apperr.Unauthenticated, opAuthenticate, err)
	}
	return claims, nil
}

// GetUserProfile получает профиль пользователя по ID.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.PublicUser, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, apperr.E(apperr.Unauthenticated, opProfile, entities.ErrUserNotFound)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgProfileUserMissing)
			return nil, apperr.E(apperr.Unauthenticated, opProfile, err)
		}
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, apperr.E(apperr.StorageUnavailable, opProfile, fmt.Errorf("%s: %w", errCtxFetchingProfile, err))
	}

	log.Debug(ctx, msgProfileRetrieved)
	public := user.Public()
	return &public, nil
}
