// Package memory содержит хранилище пользователей в памяти процесса для локального запуска и тестов.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"authapi/internal/auth/domain/entities"
	"authapi/internal/auth/ports/repositories"
	"authapi/pkg/logger"
)

const (
	repositoryName    = "user_memory"
	msgUserCreated    = "user created"
	msgDuplicateEmail = "email already registered"
)

// UserRepository хранит пользователей в map под мьютексом. Уникальность email
// обеспечивается индексом byEmail.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]entities.User
	byEmail map[string]string
	now     func() time.Time
}

// NewUserRepository создает пустое хранилище.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]entities.User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return &u, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

// Create сохраняет пользователя и назначает ему ID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "Create"))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		log.Debug(ctx, msgDuplicateEmail)
		return nil, entities.ErrDuplicateEmail
	}

	now := r.now().UTC()
	u := entities.User{
		ID:           uuid.NewString(),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID

	log.Debug(ctx, msgUserCreated, zap.String("userID", u.ID))
	return &u, nil
}

// Ping всегда успешен.
func (r *UserRepository) Ping(context.Context) error {
	return nil
}

// Len возвращает число сохраненных пользователей.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
