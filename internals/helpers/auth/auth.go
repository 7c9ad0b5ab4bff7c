// file: internals/helpers/auth/auth.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"skuli_backend/internals/helpers/errs"
)

// Locals keys hydrated by the JWT middleware.
const (
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocSchoolID = "school_id"
	LocRoles    = "roles"
)

// GetUserIDFromToken returns the authenticated user id, or an error when the
// request carries no usable identity.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	if v, ok := c.Locals(LocUserID).(string); ok {
		if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil && id != uuid.Nil {
			return id, nil
		}
	}
	if v, ok := c.Locals(LocUserID).(uuid.UUID); ok && v != uuid.Nil {
		return v, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
}

// SchoolIDFromPath parses the tenant id from the :school_id path segment and
// cross-checks it against the token scope when one is present.
func SchoolIDFromPath(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("school_id"))
	if raw == "" {
		return uuid.Nil, errs.Validation("school_id missing in path")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Validation("school_id is not a valid uuid")
	}
	if scoped, ok := c.Locals(LocSchoolID).(string); ok && scoped != "" && scoped != id.String() {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "school scope mismatch")
	}
	return id, nil
}
