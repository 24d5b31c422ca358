package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quswhddbs/mall/internal/apperr"
	applog "github.com/quswhddbs/mall/internal/log"
)

// errJSON writes the classified error as {msg, code}. Unclassified errors
// surface as 500 SERVER_ERROR and get logged with the original cause.
func errJSON(c *fiber.Ctx, action string, err error) error {
	ae := apperr.From(err)
	if ae.Status >= 500 {
		applog.Error(c, action, err, nil)
	}
	return c.Status(ae.Status).JSON(fiber.Map{"msg": ae.Msg, "code": ae.Code})
}
