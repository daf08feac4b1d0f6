package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var Validate = validator.New()

// ValidateStruct runs the shared validator and renders a 422 with a
// field→tags map when validation fails. Returns nil when valid.
func ValidateStruct(c *fiber.Ctx, in any) error {
	if err := Validate.Struct(in); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return JsonError(c, fiber.StatusBadRequest, "invalid input")
		}
		fieldErrors := make(map[string][]string, len(ve))
		for _, fe := range ve {
			key := strings.ToLower(fe.Field())
			fieldErrors[key] = append(fieldErrors[key], fe.Tag())
		}
		return JsonValidationError(c, fieldErrors)
	}
	return nil
}

// ParseUUIDParam reads a :param as UUID, 400 on garbage.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
