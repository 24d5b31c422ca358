package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quswhddbs/mall/internal/apperr"
	"github.com/quswhddbs/mall/internal/domain"
	applog "github.com/quswhddbs/mall/internal/log"
	"github.com/quswhddbs/mall/internal/services"
)

// RequireRoles resolves the bearer credential and, when roles are given,
// demands at least one of them. The resolved member lands in
// c.Locals("member") for the handler behind it.
func RequireRoles(auth *services.AuthService, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := auth.Resolve(c.Get("Authorization"))
		if err != nil {
			applog.Security(c, "auth.denied", map[string]any{"reason": apperr.From(err).Code})
			return errJSON(c, "auth.denied", err)
		}
		if len(roles) > 0 {
			ok := false
			for _, need := range roles {
				if m.HasRole(need) {
					ok = true
					break
				}
			}
			if !ok {
				applog.Security(c, "access.denied", map[string]any{"user": m.ID})
				return errJSON(c, "access.denied", apperr.Forbidden("ERROR_ACCESSDENIED", "insufficient role"))
			}
		}
		c.Locals("member", m)
		return c.Next()
	}
}

func currentMember(c *fiber.Ctx) *domain.AuthMember {
	m, _ := c.Locals("member").(*domain.AuthMember)
	return m
}
