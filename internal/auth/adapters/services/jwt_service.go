package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/domain/services"
	svc "authapi/internal/auth/ports/services"
	"authapi/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssue       = "Issue"
	methodVerify      = "Verify"
	msgIssuingToken   = "issuing token"
	msgTokenIssued    = "token issued successfully"
	msgTokenValidated = "token validated successfully"
	msgTokenRejected  = "token rejected"
	//nolint:gosec
	errSigningToken       = "error signing token"
	errCtxNewJWT          = "creating jwt service"
	errCtxIssuingToken    = "issuing token"
	errCtxValidatingToken = "validating token"
)

// ErrEmptySecret возвращается при создании сервиса без ключа подписи.
var ErrEmptySecret = errors.New("jwt secret key is empty")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService поверх HS256.
type ServiceJWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// JWTOption настраивает ServiceJWT.
type JWTOption func(*ServiceJWT)

// WithClock подменяет источник времени для выдачи и проверки токенов.
func WithClock(now func() time.Time) JWTOption {
	return func(s *ServiceJWT) {
		s.now = now
	}
}

// NewJWT создает новый экземпляр сервиса JWT. Пустой ключ - ошибка конфигурации.
func NewJWT(secretKey string, ttl time.Duration, opts ...JWTOption) (*ServiceJWT, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, apperr.E(apperr.ConfigurationError, errCtxNewJWT, ErrEmptySecret)
	}
	if ttl <= 0 {
		ttl = services.TokenTTL
	}

	s := &ServiceJWT{
		secret: []byte(secretKey),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var _ svc.TokenService = (*ServiceJWT)(nil)

// Issue подписывает токен для пользователя.
func (s *ServiceJWT) Issue(ctx context.Context, userID, email string) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssue),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgIssuingToken)

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrTokenGeneration, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return tokenString, nil
}

// Verify проверяет подпись и срок действия токена и возвращает его данные.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (*services.Claims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		mapped := mapParseError(err)
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, mapped)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		log.Debug(ctx, msgTokenRejected)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrTokenMalformed)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.UserID))
	return toDomainClaims(claims), nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return services.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return services.ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return services.ErrTokenExpired
	default:
		return services.ErrTokenMalformed
	}
}

func toDomainClaims(claims *Claims) *services.Claims {
	out := &services.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out
}
