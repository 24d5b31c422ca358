package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quswhddbs/mall/internal/apperr"
	applog "github.com/quswhddbs/mall/internal/log"
	"github.com/quswhddbs/mall/internal/services"
	"github.com/quswhddbs/mall/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type joinBody struct {
	Email    string `json:"email"`
	Pw       string `json:"pw"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

func (b joinBody) password() string {
	if b.Pw != "" {
		return b.Pw
	}
	return b.Password
}

// POST /api/member/join
func (h *AuthHandler) Join(c *fiber.Ctx) error {
	var body joinBody
	if err := c.BodyParser(&body); err != nil {
		return errJSON(c, "member.join", apperr.Validation("invalid join payload"))
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		return errJSON(c, "member.join", apperr.Validation("invalid email"))
	}
	if !validate.Password(body.password()) {
		return errJSON(c, "member.join", apperr.Validation("invalid password"))
	}
	nickname, ok := validate.Nickname(body.Nickname)
	if !ok {
		nickname = "USER"
	}

	id, err := h.Auth.Join(email, body.password(), nickname)
	if err != nil {
		return errJSON(c, "member.join", err)
	}
	applog.Audit(c, "member.join", map[string]any{"email": email})
	return c.JSON(fiber.Map{"result": "SUCCESS", "id": id, "email": email})
}

type loginBody struct {
	Email    string `json:"email"`
	Pw       string `json:"pw"`
	Password string `json:"password"`
}

// POST /api/member/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return errJSON(c, "member.login", apperr.Validation("invalid login payload"))
	}
	pw := body.Pw
	if pw == "" {
		pw = body.Password
	}
	if body.Email == "" || pw == "" {
		return errJSON(c, "member.login", apperr.Validation("email and pw are required"))
	}

	pair, err := h.Auth.Login(body.Email, pw)
	if err != nil {
		applog.Security(c, "member.login.fail", map[string]any{"email": body.Email})
		return errJSON(c, "member.login", err)
	}
	applog.Audit(c, "member.login", map[string]any{"email": body.Email})
	return c.JSON(pair)
}

type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

// POST /api/member/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var body refreshBody
	if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return errJSON(c, "member.refresh", apperr.New(400, "NULL_REFRESH", "refreshToken is required"))
	}
	pair, err := h.Auth.Refresh(body.RefreshToken)
	if err != nil {
		return errJSON(c, "member.refresh", err)
	}
	return c.JSON(pair)
}

// GET /api/member/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentMember(c))
}
