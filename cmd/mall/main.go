package main

import (
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/quswhddbs/mall/internal/config"
	"github.com/quswhddbs/mall/internal/http/handlers"
	applog "github.com/quswhddbs/mall/internal/log"
	"github.com/quswhddbs/mall/internal/repos"
	"github.com/quswhddbs/mall/internal/services"
	"github.com/quswhddbs/mall/internal/storage"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	files, err := storage.New(cfg.MediaDir)
	if err != nil {
		log.Fatal(err)
	}

	memberRepo := repos.NewMemberRepo(db)
	authSvc := services.NewAuthService(memberRepo, cfg.JWTSecret,
		time.Duration(cfg.AccessTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTTLMin)*time.Minute)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"msg": "Something went wrong. Please try again.", "code": "SERVER_ERROR",
			})
		},
	})
	// Global body size guard (multipart uploads included)
	app.Server().MaxRequestBodySize = 10 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
	}))

	// ---------- Media (guarded against traversal) ----------
	log.Printf("[static] /media -> %s", files.Root())
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(files.Root(), clean), true)
	})

	// ---------- API routes ----------
	deps := handlers.NewDeps(db, authSvc, files)
	api := app.Group("/api")

	// Member (login throttled)
	member := api.Group("/member")
	member.Post("/join", deps.AuthHandler.Join)
	member.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"msg": "too many attempts, retry later", "code": "RATE_LIMITED",
			})
		},
	}), deps.AuthHandler.Login)
	member.Post("/refresh", deps.AuthHandler.Refresh)
	member.Get("/me", handlers.RequireRoles(authSvc), deps.AuthHandler.Me)

	// Product: reads are public, mutations are ADMIN-only
	product := api.Group("/product")
	product.Get("/list", deps.ProductHandler.List)
	product.Get("/:pno<int>", deps.ProductHandler.Get)
	product.Post("/", handlers.RequireRoles(authSvc, "ADMIN"), deps.ProductHandler.Register)
	product.Put("/:pno<int>", handlers.RequireRoles(authSvc, "ADMIN"), deps.ProductHandler.Modify)
	product.Delete("/:pno<int>", handlers.RequireRoles(authSvc, "ADMIN"), deps.ProductHandler.Remove)

	// Cart
	cart := api.Group("/cart", handlers.RequireRoles(authSvc, "USER"))
	cart.Get("/items", deps.CartHandler.List)
	cart.Post("/change", deps.CartHandler.Change)
	cart.Delete("/:cino<int>", deps.CartHandler.Remove)

	// Todo
	todo := api.Group("/todo")
	todo.Get("/", deps.TodoHandler.List)
	todo.Post("/", deps.TodoHandler.Register)
	todo.Get("/:tno<int>", deps.TodoHandler.Get)
	todo.Put("/:tno<int>", deps.TodoHandler.Modify)
	todo.Delete("/:tno<int>", deps.TodoHandler.Remove)

	// Admin (SUPER_ADMIN only)
	admin := api.Group("/admin", handlers.RequireRoles(authSvc, "SUPER_ADMIN"))
	admin.Get("/users", deps.AdminHandler.Users)
	admin.Put("/users/:userId/admin", deps.AdminHandler.SetAdmin)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "not found", "code": "NOT_FOUND"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
