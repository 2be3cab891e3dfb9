package serverutils

import (
	"errors"

	"legal-intake-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates the error taxonomy into HTTP responses.
//
//	ConnectionError / ProcessingError -> 502 (session is dead, user restarts)
//	ValidationError                   -> 422 with the blocking field list
//	GenerationError                   -> 503 (transient, retryable)
//	*fiber.Error                      -> passed through
//	anything else                     -> 500
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if ve, ok := apperror.AsValidation(err); ok {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"code":    fiber.StatusUnprocessableEntity,
				"message": "Campos obligatorios incompletos",
				"detail": fiber.Map{
					"bloqueantes_faltantes": ve.BlockingMissingFields,
					"advertencias":          ve.Warnings,
				},
			})
		}

		var ge *apperror.GenerationError
		if errors.As(err, &ge) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(fiber.StatusServiceUnavailable, "Error al generar el documento. Intenta de nuevo."))
		}

		if apperror.IsFatal(err) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, "Error de sesión. Por favor reinicia la sesión."))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
