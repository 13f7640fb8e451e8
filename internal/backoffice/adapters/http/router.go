// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"finledger/internal/backoffice/adapters/http/auth"
	"finledger/internal/backoffice/adapters/http/clients"
	"finledger/internal/backoffice/adapters/http/middleware"
	"finledger/internal/backoffice/adapters/http/reports"
	"finledger/internal/backoffice/adapters/http/transactions"
	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/ports/api"
	svc "finledger/internal/backoffice/ports/services"
)

// UseCases собирает входные порты, необходимые маршрутизатору.
type UseCases struct {
	Auth        api.AuthUseCase
	User        api.UserUseCase
	Client      api.ClientUseCase
	Transaction api.TransactionUseCase
	Report      api.ReportUseCase
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// Требуемые роли объявляются на группах маршрутов; guard без ролей
// проверяет только аутентификацию.
func SetupRouter(app *fiber.App, useCases *UseCases, tokenSvc svc.TokenService) {
	authHandler := auth.NewHandler(useCases.Auth, useCases.User)
	clientHandler := clients.NewHandler(useCases.Client)
	transactionHandler := transactions.NewHandler(useCases.Transaction)
	reportHandler := reports.NewHandler(useCases.Report)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes. Вход и обмен токенов публичные, создание учетных
	// записей доступно только администраторам.
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Post("/register", authHandler.Register,
		middleware.NewAuthMiddleware(tokenSvc, entities.RoleAdmin))
	authRoutes.Get("/profile", authHandler.GetProfile,
		middleware.NewAuthMiddleware(tokenSvc))

	// Маршруты клиентов (требуют авторизации).
	clientRoutes := apiV1.Group("/clients")
	clientRoutes.Use(middleware.NewAuthMiddleware(tokenSvc))
	clientRoutes.Post("/", clientHandler.CreateClient)
	clientRoutes.Get("/", clientHandler.ListClients)
	clientRoutes.Get("/:client_id", clientHandler.GetClient)
	clientRoutes.Put("/:client_id", clientHandler.UpdateClient)
	clientRoutes.Delete("/:client_id", clientHandler.DeleteClient)

	// Маршруты финансовых операций (требуют авторизации).
	transactionRoutes := apiV1.Group("/transactions")
	transactionRoutes.Use(middleware.NewAuthMiddleware(tokenSvc))
	transactionRoutes.Post("/", transactionHandler.CreateTransaction)
	transactionRoutes.Get("/", transactionHandler.ListTransactions)
	transactionRoutes.Get("/:transaction_id", transactionHandler.GetTransaction)
	transactionRoutes.Put("/:transaction_id", transactionHandler.UpdateTransaction)
	transactionRoutes.Post("/:transaction_id/pay", transactionHandler.PayTransaction)
	transactionRoutes.Delete("/:transaction_id", transactionHandler.DeleteTransaction)

	// Маршруты отчетов (требуют авторизации).
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.NewAuthMiddleware(tokenSvc))
	reportRoutes.Get("/cashflow", reportHandler.Cashflow)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
