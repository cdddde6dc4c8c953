package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/namhkse/recomending-system/pkg/recsys"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) Response[any] {
	return Response[any]{
		Success: false,
		Message: message,
	}
}

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into a
// 422 the error handler can render.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				"validation failed on field '"+field.Field()+"' ("+field.Tag()+")")
		}
		return fiber.NewError(fiber.StatusUnprocessableEntity, "validation failed")
	}
	return nil
}

// ErrorHandlerMiddleware turns domain errors into consistent JSON error
// payloads. Engine sentinels map to their HTTP equivalents; anything
// unrecognized is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := err.Error()

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case errors.Is(err, recsys.ErrInvalidConstraint):
			status = fiber.StatusBadRequest
		case errors.Is(err, recsys.ErrIndexUnavailable),
			errors.Is(err, recsys.ErrProviderUnavailable):
			status = fiber.StatusServiceUnavailable
		case errors.Is(err, recsys.ErrSessionNotFound):
			status = fiber.StatusNotFound
		}

		return ctx.Status(status).JSON(ErrorResponse(message))
	}
}
