package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"reviewio/dto"
	"reviewio/internal/apperr"
	"reviewio/internal/logging"
	"reviewio/internal/repository"
	"reviewio/internal/validation"
)

// ErrorHandler renders every error a handler returns. In development the
// raw error text of unexpected failures is passed to the client.
func ErrorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := Render(err, development)
		if status >= fiber.StatusInternalServerError {
			logging.Ctx(c.UserContext()).Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("unhandled error")
		}
		return c.Status(status).JSON(body)
	}
}

// Render maps err to a status code and response body.
func Render(err error, development bool) (int, dto.ErrorResponse) {
	var (
		appErr   *apperr.Error
		fiberErr *fiber.Error
		verrs    validation.Errors
	)
	switch {
	case errors.As(err, &appErr):
		return body(appErr.Kind.Status(), appErr.Message, nil)
	case errors.As(err, &verrs):
		return body(fiber.StatusBadRequest, "Invalid input data", verrs)
	case errors.As(err, &fiberErr):
		return body(fiberErr.Code, fiberErr.Message, nil)
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return body(fiber.StatusNotFound, "No document found", nil)
	case errors.Is(err, repository.ErrDuplicate), mongo.IsDuplicateKeyError(err):
		return body(fiber.StatusBadRequest, "Duplicate field value, please use another value", nil)
	}

	if development {
		return body(fiber.StatusInternalServerError, err.Error(), nil)
	}
	return body(fiber.StatusInternalServerError, "Something went wrong", nil)
}

func body(status int, msg string, details any) (int, dto.ErrorResponse) {
	s := dto.StatusFail
	if status >= fiber.StatusInternalServerError {
		s = dto.StatusError
	}
	return status, dto.ErrorResponse{Status: s, Message: msg, Errors: details}
}
