package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/quswhddbs/mall/internal/repos"
	"github.com/quswhddbs/mall/internal/services"
	"github.com/quswhddbs/mall/internal/storage"
)

type Deps struct {
	AuthHandler    *AuthHandler
	CartHandler    *CartHandler
	ProductHandler *ProductHandler
	TodoHandler    *TodoHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService, files *storage.Store) *Deps {
	memberRepo := repos.NewMemberRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	todoRepo := repos.NewTodoRepo(db)

	cartSvc := services.NewCartService(cartRepo, prodRepo)
	prodSvc := services.NewProductService(prodRepo, files)
	todoSvc := services.NewTodoService(todoRepo)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: auth},
		CartHandler:    &CartHandler{Cart: cartSvc},
		ProductHandler: &ProductHandler{Products: prodSvc},
		TodoHandler:    &TodoHandler{Todos: todoSvc},
		AdminHandler:   &AdminHandler{Members: memberRepo},
	}
}
