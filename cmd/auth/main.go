// Package main реализует точку входа службы аутентификации.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	authhttp "authapi/internal/auth/adapters/http"
	"authapi/internal/auth/adapters/http/handlers"
	"authapi/internal/auth/adapters/http/response"
	"authapi/internal/auth/adapters/memory"
	"authapi/internal/auth/adapters/postgres"
	"authapi/internal/auth/adapters/ratelimit"
	"authapi/internal/auth/adapters/services"
	"authapi/internal/auth/app"
	"authapi/internal/auth/config"
	"authapi/internal/auth/db"
	"authapi/internal/auth/ports/repositories"
	"authapi/pkg/db/redis"
	"authapi/pkg/logger"
	"authapi/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvMode        = "AUTH_ENV"
	EnvLoggerLevel = "AUTH_LOGGER_LEVEL"
	EnvFile        = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitServices         = "failed to initialize services"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to initialize redis"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "authentication service started"
	LogServiceShutdownDone = "authentication service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing redis connections"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitLimiter         = "initializing rate limiter"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogMemoryStorage       = "using in-memory user storage, data is lost on restart"
)

// Имена правил лимита и проверок готовности.
const (
	ruleAPI       = "api"
	ruleAuth      = "auth"
	checkPostgres = "postgres"
	checkMemory   = "memory"
	checkRedis    = "redis"
)

func main() {
	env := logger.Development
	if strings.EqualFold(os.Getenv(EnvMode), string(logger.Production)) {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		if err := run(ctx, log); err != nil {
			exitCode = 1
		}
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// run собирает сервис и блокируется до сигнала завершения.
func run(ctx context.Context, log *logger.Logger) error {
	cfg, err := config.Load(ctx, EnvFile)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return err
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return err
	}
	logger.SetGlobalLogger(finalLogger)
	log = finalLogger

	log.Info(ctx, LogInitServices)
	serviceFactory, err := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)
	if err != nil {
		log.Error(ctx, ErrInitServices, zap.Error(err))
		return err
	}

	var hooks []shutdown.Hook
	var readyChecks []handlers.ReadyCheck

	log.Info(ctx, LogInitRepo, zap.String("driver", cfg.Storage.Driver))
	var userRepo repositories.UserRepository
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn(ctx, LogMemoryStorage)
		userRepo = memory.NewUserRepository()
		readyChecks = append(readyChecks, handlers.ReadyCheck{Name: checkMemory, Ping: userRepo.Ping})
	default:
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			return err
		}
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogClosingDB)
			database.Close(ctx)
			return nil
		})
		userRepo = postgres.NewRepositoryFactory(database.Pool()).UserRepository()
		readyChecks = append(readyChecks, handlers.ReadyCheck{Name: checkPostgres, Ping: userRepo.Ping})
	}

	log.Info(ctx, LogInitLimiter, zap.Bool("redis", cfg.Redis.Enabled))
	var limiter ratelimit.Limiter
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			log.Error(ctx, ErrInitRedis, zap.Error(err))
			runHooks(ctx, cfg.Shutdown.GetTimeout(), hooks)
			return err
		}
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogClosingRedis)
			return client.Close(ctx)
		})
		limiter = ratelimit.NewRedisLimiter(client.RawClient())
		readyChecks = append(readyChecks, handlers.ReadyCheck{Name: checkRedis, Ping: client.Ping})
	} else {
		limiter = ratelimit.NewMemoryLimiter()
	}

	log.Info(ctx, LogInitUseCases)
	authUseCase := app.NewAuthUseCase(userRepo, serviceFactory.PasswordService(), serviceFactory.TokenService())
	userUseCase := app.NewUserUseCase(userRepo, serviceFactory.TokenService())

	log.Info(ctx, LogInitHTTPServer)
	shaper := response.NewShaper(response.WithErrorDetails(cfg.Logging.IsDevelopment()))
	httpApp := authhttp.NewApp(authhttp.ServerConfig{
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		ProxyHeader:  cfg.HTTP.ProxyHeader,
	}, shaper)
	authhttp.SetupRouter(httpApp, authhttp.Dependencies{
		Auth:         authUseCase,
		Users:        userUseCase,
		Shaper:       shaper,
		Limiter:      limiter,
		APIRule:      ratelimit.Rule{Name: ruleAPI, Limit: cfg.RateLimit.APILimit, Window: cfg.RateLimit.Window},
		AuthRule:     ratelimit.Rule{Name: ruleAuth, Limit: cfg.RateLimit.AuthLimit, Window: cfg.RateLimit.Window},
		CORSOrigin:   cfg.CORS.Origin,
		ReadyChecks:  readyChecks,
		ReadyTimeout: cfg.HTTP.ReadyTimeout,
	})

	// Сервер должен остановиться раньше, чем закроются хранилища.
	stopHTTP := func(ctx context.Context) error {
		log.Info(ctx, LogStoppingHTTP)
		err := httpApp.ShutdownWithContext(ctx)
		runHooks(ctx, cfg.Shutdown.GetTimeout(), hooks)
		return err
	}

	serveCtx, stop := context.WithCancel(ctx)
	defer stop()

	listenErr := make(chan error, 1)
	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		err := httpApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true})
		if err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			listenErr <- err
			stop()
		}
	}()

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(), stopHTTP)

	log.Info(ctx, LogServiceShutdownDone)

	select {
	case err := <-listenErr:
		return err
	default:
		return nil
	}
}

// runHooks закрывает ресурсы, открытые до сбоя или остановки сервера.
func runHooks(ctx context.Context, timeout time.Duration, hooks []shutdown.Hook) {
	if len(hooks) == 0 {
		return
	}
	shutdown.Run(ctx, timeout, hooks...)
}
