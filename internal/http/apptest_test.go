package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"github.com/quswhddbs/mall/internal/http/handlers"
	"github.com/quswhddbs/mall/internal/repos"
	"github.com/quswhddbs/mall/internal/services"
	"github.com/quswhddbs/mall/internal/storage"
)

// newTestApp wires the API the way cmd/mall does, minus rate limiting,
// against an in-memory database and a temp-dir object store.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *services.AuthService) {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	files, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	authSvc := services.NewAuthService(repos.NewMemberRepo(db), "test-secret", 15*time.Minute, 24*time.Hour)

	app := fiber.New()
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, authSvc, files)
	api := app.Group("/api")

	member := api.Group("/member")
	member.Post("/join", deps.AuthHandler.Join)
	member.Post("/login", deps.AuthHandler.Login)
	member.Post("/refresh", deps.AuthHandler.Refresh)
	member.Get("/me", handlers.RequireRoles(authSvc), deps.AuthHandler.Me)

	product := api.Group("/product")
	product.Get("/list", deps.ProductHandler.List)
	product.Get("/:pno<int>", deps.ProductHandler.Get)
	product.Post("/", handlers.RequireRoles(authSvc, "ADMIN"), deps.ProductHandler.Register)
	product.Put("/:pno<int>", handlers.RequireRoles(authSvc, "ADMIN"), deps.ProductHandler.Modify)
	product.Delete("/:pno<int>", handlers.RequireRoles(authSvc, "ADMIN"), deps.ProductHandler.Remove)

	cart := api.Group("/cart", handlers.RequireRoles(authSvc, "USER"))
	cart.Get("/items", deps.CartHandler.List)
	cart.Post("/change", deps.CartHandler.Change)
	cart.Delete("/:cino<int>", deps.CartHandler.Remove)

	todo := api.Group("/todo")
	todo.Get("/", deps.TodoHandler.List)
	todo.Post("/", deps.TodoHandler.Register)
	todo.Get("/:tno<int>", deps.TodoHandler.Get)
	todo.Put("/:tno<int>", deps.TodoHandler.Modify)
	todo.Delete("/:tno<int>", deps.TodoHandler.Remove)

	admin := api.Group("/admin", handlers.RequireRoles(authSvc, "SUPER_ADMIN"))
	admin.Get("/users", deps.AdminHandler.Users)
	admin.Put("/users/:userId/admin", deps.AdminHandler.SetAdmin)

	return app, db, authSvc
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

// loginToken signs in a seeded account and returns its access token.
func loginToken(t *testing.T, svc *services.AuthService, email string) string {
	t.Helper()
	pair, err := svc.Login(email, "Passw0rd!")
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return pair.AccessToken
}
