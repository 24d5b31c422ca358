package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/quswhddbs/mall/internal/apperr"
	"github.com/quswhddbs/mall/internal/domain"
	"github.com/quswhddbs/mall/internal/services"
	"github.com/quswhddbs/mall/internal/validate"
)

type TodoHandler struct {
	Todos *services.TodoService
}

type todoBody struct {
	Title    string `json:"title"`
	Writer   string `json:"writer"`
	Complete bool   `json:"complete"`
	DueDate  string `json:"dueDate"`
}

func (b todoBody) valid() error {
	if strings.TrimSpace(b.Title) == "" {
		return apperr.Validation("title is required")
	}
	if strings.TrimSpace(b.Writer) == "" {
		return apperr.Validation("writer is required")
	}
	if _, ok := validate.Date(b.DueDate); !ok {
		return apperr.Validation("dueDate must be yyyy-MM-dd")
	}
	return nil
}

// GET /api/todo?page=&size=
func (h *TodoHandler) List(c *fiber.Ctx) error {
	page, size := validate.Page(c.Query("page"), c.Query("size"))
	res, err := h.Todos.List(page, size)
	if err != nil {
		return errJSON(c, "todo.list", err)
	}
	return c.JSON(res)
}

// POST /api/todo
func (h *TodoHandler) Register(c *fiber.Ctx) error {
	var body todoBody
	if err := c.BodyParser(&body); err != nil {
		return errJSON(c, "todo.register", apperr.Validation("invalid todo payload"))
	}
	if err := body.valid(); err != nil {
		return errJSON(c, "todo.register", err)
	}
	tno, err := h.Todos.Register(domain.Todo{
		Title: body.Title, Writer: body.Writer, Complete: false, DueDate: body.DueDate,
	})
	if err != nil {
		return errJSON(c, "todo.register", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tno": tno})
}

// GET /api/todo/:tno
func (h *TodoHandler) Get(c *fiber.Ctx) error {
	tno, ok := validate.PositiveID(c.Params("tno"))
	if !ok {
		return errJSON(c, "todo.get", apperr.Validation("invalid tno"))
	}
	t, err := h.Todos.Get(tno)
	if err != nil {
		return errJSON(c, "todo.get", err)
	}
	return c.JSON(t)
}

// PUT /api/todo/:tno
func (h *TodoHandler) Modify(c *fiber.Ctx) error {
	tno, ok := validate.PositiveID(c.Params("tno"))
	if !ok {
		return errJSON(c, "todo.modify", apperr.Validation("invalid tno"))
	}
	var body todoBody
	if err := c.BodyParser(&body); err != nil {
		return errJSON(c, "todo.modify", apperr.Validation("invalid todo payload"))
	}
	if err := body.valid(); err != nil {
		return errJSON(c, "todo.modify", err)
	}
	err := h.Todos.Modify(domain.Todo{
		Tno: tno, Title: body.Title, Writer: body.Writer,
		Complete: body.Complete, DueDate: body.DueDate,
	})
	if err != nil {
		return errJSON(c, "todo.modify", err)
	}
	return c.JSON(fiber.Map{"RESULT": "SUCCESS"})
}

// DELETE /api/todo/:tno
func (h *TodoHandler) Remove(c *fiber.Ctx) error {
	tno, ok := validate.PositiveID(c.Params("tno"))
	if !ok {
		return errJSON(c, "todo.remove", apperr.Validation("invalid tno"))
	}
	if err := h.Todos.Remove(tno); err != nil {
		return errJSON(c, "todo.remove", err)
	}
	return c.JSON(fiber.Map{"RESULT": "SUCCESS"})
}
