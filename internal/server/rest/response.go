package rest

import (
	"errors"

	"github.com/dmitrijs2005/placementportal/internal/common"
	"github.com/gofiber/fiber/v2"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

var errBadBody = common.NewError(common.ErrorValidation, "invalid request body")

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Message: message, Data: data})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrorConflict):
		return fiber.StatusConflict
	case errors.Is(err, common.ErrorUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *HTTPServer) fail(c *fiber.Ctx, err error) error {
	return s.failWithStatus(c, statusFor(err), err)
}

func (s *HTTPServer) failWithStatus(c *fiber.Ctx, status int, err error) error {
	if status >= fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(envelope{Success: false, Message: common.Message(err)})
}

// errorHandler renders errors that escape handlers, such as recovered panics
// and framework errors.
func (s *HTTPServer) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
			return c.Status(fe.Code).JSON(envelope{Success: false, Message: common.ErrorInternal.Error()})
		}
		return c.Status(fe.Code).JSON(envelope{Success: false, Message: fe.Message})
	}
	return s.fail(c, err)
}

func (s *HTTPServer) notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(envelope{Success: false, Message: "route not found"})
}
