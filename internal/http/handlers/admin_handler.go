package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quswhddbs/mall/internal/apperr"
	applog "github.com/quswhddbs/mall/internal/log"
	"github.com/quswhddbs/mall/internal/repos"
)

type AdminHandler struct {
	Members *repos.MemberRepo
}

// GET /api/admin/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.Members.ListWithRoles()
	if err != nil {
		return errJSON(c, "admin.users.list", err)
	}
	return c.JSON(fiber.Map{"users": users})
}

type adminToggleBody struct {
	Enabled bool `json:"enabled"`
}

// PUT /api/admin/users/:userId/admin
func (h *AdminHandler) SetAdmin(c *fiber.Ctx) error {
	me := currentMember(c)
	userID := c.Params("userId")
	if userID == "" {
		return errJSON(c, "admin.users.role", apperr.New(400, "MISSING_USER_ID", "missing user id"))
	}
	// an operator must not change their own role
	if me.ID == userID {
		return errJSON(c, "admin.users.role", apperr.New(400, "CANNOT_CHANGE_SELF_ROLE", "cannot change own role"))
	}

	var body adminToggleBody
	if err := c.BodyParser(&body); err != nil {
		return errJSON(c, "admin.users.role", apperr.Validation("invalid payload"))
	}

	if body.Enabled {
		if err := h.Members.GrantRole(userID, "ADMIN"); err != nil {
			return errJSON(c, "admin.users.role", err)
		}
	} else {
		if err := h.Members.RevokeRole(userID, "ADMIN"); err != nil {
			return errJSON(c, "admin.users.role", err)
		}
	}

	roles, err := h.Members.Roles(userID)
	if err != nil {
		return errJSON(c, "admin.users.role", err)
	}
	isAdmin := false
	for _, r := range roles {
		if r == "ADMIN" {
			isAdmin = true
		}
	}
	applog.Audit(c, "admin.users.role", map[string]any{"user_id": userID, "enabled": body.Enabled})
	return c.JSON(fiber.Map{"result": "SUCCESS", "userId": userID, "roles": roles, "isAdmin": isAdmin})
}
