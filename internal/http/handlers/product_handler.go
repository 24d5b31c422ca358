package handlers

import (
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/quswhddbs/mall/internal/apperr"
	"github.com/quswhddbs/mall/internal/domain"
	applog "github.com/quswhddbs/mall/internal/log"
	"github.com/quswhddbs/mall/internal/services"
	"github.com/quswhddbs/mall/internal/validate"
)

const maxProductFiles = 5

type ProductHandler struct {
	Products *services.ProductService
}

// POST /api/product (multipart: pname, price, pdesc, files...)
func (h *ProductHandler) Register(c *fiber.Ctx) error {
	pname := strings.TrimSpace(c.FormValue("pname"))
	if pname == "" {
		return errJSON(c, "product.register", apperr.Validation("pname is required"))
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price", "0")), 64)
	if err != nil || price < 0 {
		return errJSON(c, "product.register", apperr.Validation("price must be a number >= 0"))
	}
	pdesc := c.FormValue("pdesc")

	var uploads []services.Upload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["files"]
		if len(files) > maxProductFiles {
			return errJSON(c, "product.register", apperr.Validation("max 5 files allowed"))
		}
		for _, fh := range files {
			ct := fh.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "image/") {
				return errJSON(c, "product.register", apperr.Validation("only image files are allowed"))
			}
			f, err := fh.Open()
			if err != nil {
				return errJSON(c, "product.register", err)
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return errJSON(c, "product.register", err)
			}
			uploads = append(uploads, services.Upload{FileName: fh.Filename, Data: data})
		}
	}

	pno, err := h.Products.Register(domain.ProductDTO{Pname: pname, Price: price, Pdesc: pdesc}, uploads)
	if err != nil {
		return errJSON(c, "product.register", err)
	}
	applog.Audit(c, "product.register", map[string]any{"pno": pno, "files": len(uploads)})
	return c.JSON(fiber.Map{"result": pno})
}

// GET /api/product/:pno
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	pno, ok := validate.PositiveID(c.Params("pno"))
	if !ok {
		return errJSON(c, "product.get", apperr.Validation("invalid pno"))
	}
	dto, err := h.Products.Get(pno)
	if err != nil {
		return errJSON(c, "product.get", err)
	}
	return c.JSON(dto)
}

type modifyProductBody struct {
	Pname           string   `json:"pname"`
	Price           float64  `json:"price"`
	Pdesc           string   `json:"pdesc"`
	UploadFileNames []string `json:"uploadFileNames"`
}

// PUT /api/product/:pno
func (h *ProductHandler) Modify(c *fiber.Ctx) error {
	pno, ok := validate.PositiveID(c.Params("pno"))
	if !ok {
		return errJSON(c, "product.modify", apperr.Validation("invalid pno"))
	}
	var body modifyProductBody
	if err := c.BodyParser(&body); err != nil {
		return errJSON(c, "product.modify", apperr.Validation("invalid product payload"))
	}
	if strings.TrimSpace(body.Pname) == "" {
		return errJSON(c, "product.modify", apperr.Validation("pname is required"))
	}
	if body.Price < 0 {
		return errJSON(c, "product.modify", apperr.Validation("price must be a number >= 0"))
	}

	err := h.Products.Modify(domain.ProductDTO{
		Pno: pno, Pname: body.Pname, Price: body.Price, Pdesc: body.Pdesc,
		UploadFileNames: body.UploadFileNames,
	})
	if err != nil {
		return errJSON(c, "product.modify", err)
	}
	applog.Audit(c, "product.modify", map[string]any{"pno": pno})
	return c.JSON(fiber.Map{"RESULT": "SUCCESS"})
}

// DELETE /api/product/:pno
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	pno, ok := validate.PositiveID(c.Params("pno"))
	if !ok {
		return errJSON(c, "product.remove", apperr.Validation("invalid pno"))
	}
	if err := h.Products.Remove(pno); err != nil {
		return errJSON(c, "product.remove", err)
	}
	applog.Audit(c, "product.remove", map[string]any{"pno": pno})
	return c.JSON(fiber.Map{"RESULT": "SUCCESS"})
}

// GET /api/product/list?page=&size=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, size := validate.Page(c.Query("page"), c.Query("size"))
	res, err := h.Products.List(page, size)
	if err != nil {
		return errJSON(c, "product.list", err)
	}
	return c.JSON(res)
}
