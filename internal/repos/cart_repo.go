package repos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/quswhddbs/mall/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// ByOwner returns the member's cart, or nil when none exists yet.
func (r *CartRepo) ByOwner(userID string) (*domain.Cart, error) {
	var c domain.Cart
	err := r.db.Get(&c, `SELECT cno, owner_id FROM cart WHERE owner_id=?`, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// EnsureCart creates the member's cart on first use. Two concurrent creates
// race on the owner_id UNIQUE constraint; the loser falls back to a lookup.
func (r *CartRepo) EnsureCart(userID string) (*domain.Cart, error) {
	if c, err := r.ByOwner(userID); err != nil || c != nil {
		return c, err
	}
	_, err := r.db.Exec(`INSERT INTO cart(owner_id) VALUES(?)`, userID)
	if err != nil && !isUniqueViolation(err) {
		return nil, err
	}
	return r.ByOwner(userID)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

// ItemByID returns a cart item row regardless of owner, or nil when absent.
func (r *CartRepo) ItemByID(cino int64) (*domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.Get(&it, `SELECT cino, cart_cno, product_pno, qty FROM cart_item WHERE cino=?`, cino)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepo) ByCno(cno int64) (*domain.Cart, error) {
	var c domain.Cart
	err := r.db.Get(&c, `SELECT cno, owner_id FROM cart WHERE cno=?`, cno)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ItemByProduct finds the (cart, product) line if one exists.
func (r *CartRepo) ItemByProduct(cno, pno int64) (*domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.Get(&it, `SELECT cino, cart_cno, product_pno, qty FROM cart_item WHERE cart_cno=? AND product_pno=?`, cno, pno)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepo) InsertItem(cno, pno int64, qty int) error {
	_, err := r.db.Exec(`INSERT INTO cart_item(cart_cno, product_pno, qty) VALUES(?,?,?)`, cno, pno, qty)
	return err
}

// UpdateItemQty sets the line's quantity to the given absolute value.
func (r *CartRepo) UpdateItemQty(cino, cno int64, qty int) error {
	_, err := r.db.Exec(`UPDATE cart_item SET qty=? WHERE cino=? AND cart_cno=?`, qty, cino, cno)
	return err
}

func (r *CartRepo) DeleteItem(cino, cno int64) error {
	_, err := r.db.Exec(`DELETE FROM cart_item WHERE cino=? AND cart_cno=?`, cino, cno)
	return err
}

// Items lists the cart's rows, most recently added first.
func (r *CartRepo) Items(cno int64) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	err := r.db.Select(&items, `SELECT cino, cart_cno, product_pno, qty FROM cart_item WHERE cart_cno=? ORDER BY cino DESC`, cno)
	return items, err
}

// DeleteItems removes the given cart lines, scoped to the cart.
func (r *CartRepo) DeleteItems(cno int64, cinos []int64) error {
	if len(cinos) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM cart_item WHERE cart_cno=? AND cino IN (?)`, cno, cinos)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(query, args...)
	return err
}
