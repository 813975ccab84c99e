// file: internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"kampusku_backend/internals/constants"
	helper "kampusku_backend/internals/helpers"
)

// RequireRoles gates a route group to the given roles. Admin always passes.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := map[string]struct{}{constants.RoleAdmin: {}}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if _, ok := allowed[role]; !ok {
			return helper.JsonError(c, fiber.StatusForbidden, "Role not allowed for this resource")
		}
		return c.Next()
	}
}
