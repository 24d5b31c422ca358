package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quswhddbs/mall/internal/apperr"
	applog "github.com/quswhddbs/mall/internal/log"
	"github.com/quswhddbs/mall/internal/services"
	"github.com/quswhddbs/mall/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /api/cart/items
func (h *CartHandler) List(c *fiber.Ctx) error {
	m := currentMember(c)
	items, err := h.Cart.ListItems(m.ID)
	if err != nil {
		return errJSON(c, "cart.list", err)
	}
	return c.JSON(items)
}

type changeBody struct {
	Pno  *int64   `json:"pno"`
	Cino *int64   `json:"cino"`
	Qty  *float64 `json:"qty"`
}

// POST /api/cart/change
func (h *CartHandler) Change(c *fiber.Ctx) error {
	m := currentMember(c)

	var body changeBody
	if err := c.BodyParser(&body); err != nil {
		return errJSON(c, "cart.change", apperr.Validation("invalid change payload"))
	}
	if body.Qty == nil {
		return errJSON(c, "cart.change", apperr.Validation("qty must be a number"))
	}
	if body.Cino != nil && *body.Cino <= 0 {
		return errJSON(c, "cart.change", apperr.Validation("invalid cino"))
	}
	if body.Pno != nil && *body.Pno <= 0 {
		return errJSON(c, "cart.change", apperr.Validation("invalid pno"))
	}

	items, err := h.Cart.ChangeItem(m.ID, services.ChangeRequest{
		Pno: body.Pno, Cino: body.Cino, Qty: int(*body.Qty),
	})
	if err != nil {
		return errJSON(c, "cart.change", err)
	}
	applog.Audit(c, "cart.change", map[string]any{"user": m.ID, "qty": *body.Qty})
	return c.JSON(items)
}

// DELETE /api/cart/:cino
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	m := currentMember(c)

	cino, ok := validate.PositiveID(c.Params("cino"))
	if !ok {
		return errJSON(c, "cart.remove", apperr.Validation("invalid cino"))
	}
	items, err := h.Cart.RemoveItem(m.ID, cino)
	if err != nil {
		return errJSON(c, "cart.remove", err)
	}
	applog.Audit(c, "cart.remove", map[string]any{"user": m.ID, "cino": cino})
	return c.JSON(items)
}
