// Package httperr сопоставляет доменные ошибки с HTTP-статусами.
package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"finledger/internal/backoffice/domain/cpfcnpj"
	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/domain/services"
)

// Status возвращает HTTP-статус для доменной ошибки.
// Неопознанные ошибки считаются внутренними.
func Status(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefreshToken),
		errors.Is(err, services.ErrMissingCredential):
		return http.StatusUnauthorized

	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrClientNotFound),
		errors.Is(err, entities.ErrTransactionNotFound):
		return http.StatusNotFound

	case errors.Is(err, entities.ErrEmailAlreadyExists),
		errors.Is(err, entities.ErrUsernameAlreadyExists),
		errors.Is(err, entities.ErrClientEmailAlreadyExists),
		errors.Is(err, entities.ErrCpfCnpjAlreadyExists):
		return http.StatusConflict

	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyUsername),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, entities.ErrPasswordTooWeak),
		errors.Is(err, entities.ErrInvalidRole),
		errors.Is(err, entities.ErrEmptyClientName),
		errors.Is(err, entities.ErrInvalidKind),
		errors.Is(err, entities.ErrInvalidStatus),
		errors.Is(err, entities.ErrInvalidAmount),
		errors.Is(err, entities.ErrInvalidDueDate),
		errors.Is(err, entities.ErrTransactionPaid),
		errors.Is(err, entities.ErrTransactionCancelled),
		errors.Is(err, cpfcnpj.ErrInvalid):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// Send отправляет ошибку клиенту в виде {"error": msg}.
// Для внутренних ошибок текст заменяется обезличенным сообщением.
func Send(ctx fiber.Ctx, err error) error {
	status := Status(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	return SendMessage(ctx, status, message)
}

// SendMessage отправляет произвольное сообщение об ошибке с заданным статусом.
func SendMessage(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
