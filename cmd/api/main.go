// Package main запускает HTTP API сервиса back-office.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/backoffice/adapters/cache"
	httpServer "finledger/internal/backoffice/adapters/http"
	"finledger/internal/backoffice/adapters/postgres"
	"finledger/internal/backoffice/adapters/services"
	"finledger/internal/backoffice/app"
	"finledger/internal/backoffice/config"
	"finledger/internal/backoffice/db"
	"finledger/pkg/logger"
	"finledger/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "LEDGER_LOGGER_MODE"
	EnvLoggerLevel = "LEDGER_LOGGER_LEVEL"
)

// Каталог с миграциями базы данных.
const defaultMigrationsDir = "migrations/backoffice"

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrSeedAdminUser        = "failed to seed initial admin user"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "back-office service started"
	LogServiceShutdownDone = "back-office service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
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

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres, defaultMigrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitUseCases)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		serviceFactory := services.NewServiceFactory(
			cfg.JWT.SecretKey,
			cfg.JWT.GetAccessTokenTTL(),
			cfg.JWT.GetRefreshTokenTTL(),
			cfg.JWT.BCryptCost,
		)

		if err := app.EnsureAdminUser(ctx, repoFactory.UserRepository(), serviceFactory.PasswordService(), &cfg.Admin); err != nil {
			log.Error(ctx, ErrSeedAdminUser, zap.Error(err))
			redisCache.Close()
			database.Close(ctx)
			exitCode = 1
			return
		}

		useCases := &httpServer.UseCases{
			Auth: app.NewAuthUseCase(
				repoFactory.UserRepository(),
				serviceFactory.PasswordService(),
				serviceFactory.TokenService(),
			),
			User: app.NewUserUseCase(
				repoFactory.UserRepository(),
				serviceFactory.PasswordService(),
			),
			Client: app.NewClientUseCase(repoFactory.ClientRepository()),
			Transaction: app.NewTransactionUseCase(
				repoFactory.TransactionRepository(),
				repoFactory.ClientRepository(),
			),
			Report: app.NewReportUseCase(repoFactory.TransactionRepository(), redisCache),
		}

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, useCases, serviceFactory.TokenService())

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// Порядок хуков важен: сервер перестает принимать запросы до
		// закрытия хранилищ, которыми пользуются его обработчики.
		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			shutdown.Hook{
				Name: "http_server",
				Stop: func(ctx context.Context) error {
					return fiberApp.Shutdown()
				},
			},
			shutdown.Hook{
				Name: "redis_cache",
				Stop: func(ctx context.Context) error {
					return redisCache.Close()
				},
			},
			shutdown.Hook{
				Name: "postgres_pool",
				Stop: func(ctx context.Context) error {
					database.Close(ctx)
					return nil
				},
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
