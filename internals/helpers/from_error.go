// file: internals/helpers/from_error.go
package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skuli_backend/internals/helpers/errs"
)

// FromError converts a service-layer error (errs.Error, validator errors, or a
// plain *fiber.Error out of a Transaction closure) into a consistent JSON
// response. Anything unrecognized falls back to 500.
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return JsonOK(c, "", nil)
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fieldErrors := make(map[string][]string, len(ve))
		for _, fe := range ve {
			fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], fe.Tag())
		}
		return JsonValidationError(c, fieldErrors)
	}

	var ae *errs.Error
	if errors.As(err, &ae) {
		return JsonError(c, statusForKind(ae.Kind), ae.Message)
	}

	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}

	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return fiber.StatusUnprocessableEntity
	case errs.KindNotFound:
		return fiber.StatusNotFound
	case errs.KindConfiguration:
		return fiber.StatusBadRequest
	case errs.KindConflict:
		return fiber.StatusConflict
	case errs.KindState:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
