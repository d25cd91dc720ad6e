package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"authapi/internal/auth/domain/apperr"
	"authapi/internal/auth/domain/entities"
	"authapi/internal/auth/ports/repositories"
	"authapi/pkg/logger"
)

// SQLSTATE коды, которые репозиторий различает.
const (
	uniqueViolation      = "23505"
	invalidTextRepresent = "22P02"
)

const (
	repositoryName    = "user"
	msgUserNotFound   = "user not found"
	msgDuplicateEmail = "email already registered"
	errCtxFindByID    = "error querying user by id"
	errCtxFindByEmail = "error querying user by email"
	errCtxCreate      = "error creating user"
	errCtxPing        = "error pinging database"
	opFindByID        = "FindByID"
	opFindByEmail     = "FindByEmail"
	opCreate          = "Create"
)

const (
	selectUserColumns    = `id, email, password, name, created_at, updated_at`
	queryFindUserByID    = `SELECT ` + selectUserColumns + ` FROM users WHERE id = $1`
	queryFindUserByEmail = `SELECT ` + selectUserColumns + ` FROM users WHERE email = $1`
	queryInsertUser      = `INSERT INTO users (email, password, name) VALUES ($1, $2, $3) RETURNING ` + selectUserColumns
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", opFindByID))

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindUserByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound, zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresent {
			// id не является UUID, такой пользователь существовать не может.
			log.Debug(ctx, msgUserNotFound, zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, errCtxFindByID, zap.Error(err))
		return nil, apperr.E(apperr.StorageUnavailable, opFindByID, fmt.Errorf("%s: %w", errCtxFindByID, err))
	}

	return user, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", opFindByEmail))

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindUserByEmail, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound, zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, errCtxFindByEmail, zap.Error(err))
		return nil, apperr.E(apperr.StorageUnavailable, opFindByEmail, fmt.Errorf("%s: %w", errCtxFindByEmail, err))
	}

	return user, nil
}

// Create создает нового пользователя. Нарушение уникальности email
// возвращается как entities.ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", opCreate))

	created, err := scanUser(r.pool.QueryRow(ctx, queryInsertUser, user.Email, user.PasswordHash, user.Name))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			log.Debug(ctx, msgDuplicateEmail, zap.String("constraint", pgErr.ConstraintName))
			return nil, entities.ErrDuplicateEmail
		}
		log.Error(ctx, errCtxCreate, zap.Error(err))
		return nil, apperr.E(apperr.StorageUnavailable, opCreate, fmt.Errorf("%s: %w", errCtxCreate, err))
	}

	return created, nil
}

// Ping проверяет доступность базы данных.
func (r *UserRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtxPing, err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
