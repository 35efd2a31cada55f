package auth

import (
	"absensiku_backend/internals/constants"
	helper "absensiku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

// IsAdmin hanya meloloskan role admin/owner.
func IsAdmin(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetRoleFromToken(c)
		if role != constants.RoleAdmin && role != constants.RoleOwner {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		return c.Next()
	}
}

// IsOwner hanya meloloskan role owner.
func IsOwner(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helper.GetRoleFromToken(c) != constants.RoleOwner {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorOwner(feature))
		}
		return c.Next()
	}
}
