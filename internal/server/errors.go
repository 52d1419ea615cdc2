package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"booknotes/internal/database/repositories"
	"booknotes/internal/logger"
	"booknotes/internal/notepolicy"
	"booknotes/internal/partner"
)

// errorHandler turns errors returned by handlers into JSON responses.
func (s *FiberServer) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	var fiberErr *fiber.Error
	var statusErr *partner.StatusError

	switch {
	case errors.As(err, &fiberErr):
		code, message = fiberErr.Code, fiberErr.Message
	case errors.Is(err, repositories.ErrNotFound):
		code, message = fiber.StatusNotFound, "not found"
	case errors.Is(err, notepolicy.ErrUnknownUtility):
		code, message = fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, partner.ErrUnsupportedUtility):
		code, message = fiber.StatusNotImplemented, err.Error()
	case errors.As(err, &statusErr),
		errors.Is(err, partner.ErrMalformedPayload),
		errors.Is(err, partner.ErrUnavailable):
		code, message = fiber.StatusBadGateway, err.Error()
	}

	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed",
			logger.String("method", c.Method()),
			logger.String("path", c.Path()),
			logger.Int("status", code),
			logger.Error(err),
		)
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
