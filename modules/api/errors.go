package api

import (
	"errors"
	"log"

	"github.com/example/studenthustle/modules/application"
	"github.com/example/studenthustle/modules/auth"
	"github.com/example/studenthustle/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Error codes returned in ErrorResponse.Error.
const (
	codeValidation         = "validation_error"
	codeConflict           = "conflict"
	codeInvalidCredentials = "invalid_credentials"
	codeNotFound           = "not_found"
	codeUnauthorized       = "unauthorized"
	codeInternal           = "internal_error"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// errorMappings translates domain errors into responses. Conflicts and bad
// credentials are reported as 400 like other client mistakes.
var errorMappings = []errorMapping{
	{auth.ErrRegistrationFieldsRequired, fiber.StatusBadRequest, codeValidation, "Name, email and password are required."},
	{auth.ErrLoginFieldsRequired, fiber.StatusBadRequest, codeValidation, "Email and password are required."},
	{auth.ErrPasswordTooLong, fiber.StatusBadRequest, codeValidation, "Password must be at most 72 bytes."},
	{auth.ErrEmailTaken, fiber.StatusBadRequest, codeConflict, "Email is already registered."},
	{auth.ErrInvalidCredentials, fiber.StatusBadRequest, codeInvalidCredentials, "Invalid email or password."},
	{task.ErrTaskFieldsRequired, fiber.StatusBadRequest, codeValidation, "Title and budget are required."},
	{task.ErrInvalidBudget, fiber.StatusBadRequest, codeValidation, "Budget must be a number."},
	{application.ErrApplicationFieldsRequired, fiber.StatusBadRequest, codeValidation, "Name and message are required to apply."},
	{application.ErrInvalidOffer, fiber.StatusBadRequest, codeValidation, "Offer budget must be a number."},
	{task.ErrTaskNotFound, fiber.StatusNotFound, codeNotFound, "Task not found."},
}

// respondError writes the response for err. Unrecognised errors are logged
// and answered with a 500 carrying fallback.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(ErrorResponse{
				Error:   m.code,
				Message: m.message,
			})
		}
	}

	log.Printf("[api] Internal error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   codeInternal,
		Message: fallback,
	})
}

// customErrorHandler handles errors returned by Fiber itself.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
