package api

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gravida/internal/services"
)

var errInvalidPayload = errors.New("invalid payload")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps the service error classes onto HTTP statuses.
// Anything unclassified is logged and reported as an internal error.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusConflict, err.Error())
	}

	subject, _ := currentSubject(c)
	handler.logger.Error().
		Err(err).
		Uint("subject_id", subject.UserID).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

// parsePayload decodes the JSON body into payload and runs its validate tags.
func (handler *Handler) parsePayload(c *fiber.Ctx, payload any) error {
	if err := c.BodyParser(payload); err != nil {
		return errInvalidPayload
	}
	return handler.validatePayload(payload)
}

func (handler *Handler) parseQuery(c *fiber.Ctx, payload any) error {
	if err := c.QueryParser(payload); err != nil {
		return errInvalidPayload
	}
	return handler.validatePayload(payload)
}

// newPayloadValidator reports fields by their json names.
func newPayloadValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return validate
}

func (handler *Handler) validatePayload(payload any) error {
	err := handler.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fields := make([]string, 0, len(fieldErrors))
		for _, fieldError := range fieldErrors {
			fields = append(fields, fieldError.Field())
		}
		return errors.New(errInvalidPayload.Error() + ": " + strings.Join(fields, ", "))
	}
	return errInvalidPayload
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(value), nil
}
