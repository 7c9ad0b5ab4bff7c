// file: internals/middlewares/role_guard.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "skuli_backend/internals/helpers/auth"
)

// OnlyRoles allows the request through when the token carries at least one of
// the given roles. Runs after AuthJWT; a request with no roles claim is
// rejected.
func OnlyRoles(allowed ...string) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		for _, role := range rolesFromLocals(c) {
			if _, ok := allowedSet[role]; ok {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Insufficient role")
	}
}

// rolesFromLocals normalizes the roles claim, which arrives as []any from the
// JWT decoder or as []string from tests.
func rolesFromLocals(c *fiber.Ctx) []string {
	switch v := c.Locals(helperAuth.LocRoles).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}
