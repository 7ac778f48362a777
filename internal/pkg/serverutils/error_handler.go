package serverutils

import (
	"errors"

	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/m-mizutani/goerr/v2"
)

// StatusFor maps an error to its HTTP status and the message shown to the client.
// Server-side failures get a fixed message; client errors carry their detail.
func StatusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, apperror.ErrArtifactNotGenerated):
		return fiber.StatusNotFound, "artifact not generated yet"
	case errors.Is(err, apperror.ErrNotReady):
		return fiber.StatusBadRequest, apperror.ErrNotReady.Error()
	case errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrConfiguration),
		errors.Is(err, apperror.ErrDocumentParse):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, apperror.ErrTimeout):
		return fiber.StatusGatewayTimeout, "request timed out"
	case errors.Is(err, apperror.ErrUpstream):
		return fiber.StatusBadGateway, "upstream service failure"
	}
	return fiber.StatusInternalServerError, "internal server error"
}

// ErrorHandlerMiddleware converts handler errors into {"message": ...} responses.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, message := StatusFor(err)

		details := map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": status,
			"error":  err.Error(),
		}
		var ge *goerr.Error
		if errors.As(err, &ge) {
			details["values"] = ge.Values()
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", details)
		} else {
			log.Warn("HTTP", "Request rejected", details)
		}

		return ctx.Status(status).JSON(ErrorResponse(message))
	}
}
