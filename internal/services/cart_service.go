package services

import (
	"github.com/quswhddbs/mall/internal/apperr"
	"github.com/quswhddbs/mall/internal/domain"
	"github.com/quswhddbs/mall/internal/repos"
)

// CartService applies quantity-change requests to a member's cart and always
// answers with the reconciled line list. Each call is a self-contained
// read-modify-read pass over the store; concurrent quantity sets for the same
// line are last-write-wins.
type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// ChangeRequest carries one quantity change. Qty is an absolute value:
// qty <= 0 deletes the line named by Cino; qty > 0 with Cino sets that line,
// qty > 0 with only Pno upserts the (cart, pno) line.
type ChangeRequest struct {
	Pno  *int64 `json:"pno"`
	Cino *int64 `json:"cino"`
	Qty  int    `json:"qty"`
}

// assertOwner is the ownership guard: the item lookup runs before the parent
// cart lookup so a missing item reads as 404 and someone else's item as 403,
// never the other way around.
func (s *CartService) assertOwner(userID string, cino int64) (*domain.CartItem, error) {
	item, err := s.Carts.ItemByID(cino)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("CART_ITEM_NOT_FOUND", "cart item not found")
	}
	cart, err := s.Carts.ByCno(item.CartCno)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperr.NotFound("CART_NOT_FOUND", "cart not found for item")
	}
	if cart.OwnerID != userID {
		return nil, apperr.Forbidden("NOT_OWNER_OF_CART_ITEM", "not owner of cart item")
	}
	return item, nil
}

func (s *CartService) ChangeItem(userID string, req ChangeRequest) ([]domain.CartItemView, error) {
	// delete branch
	if req.Qty <= 0 {
		if req.Cino == nil {
			return nil, apperr.Validation("cino is required when qty <= 0")
		}
		item, err := s.assertOwner(userID, *req.Cino)
		if err != nil {
			return nil, err
		}
		if err := s.Carts.DeleteItem(item.Cino, item.CartCno); err != nil {
			return nil, err
		}
		return s.ListItems(userID)
	}

	// absolute set on an existing line
	if req.Cino != nil {
		item, err := s.assertOwner(userID, *req.Cino)
		if err != nil {
			return nil, err
		}
		if err := s.Carts.UpdateItemQty(item.Cino, item.CartCno, req.Qty); err != nil {
			return nil, err
		}
		return s.ListItems(userID)
	}

	if req.Pno == nil {
		return nil, apperr.Validation("pno is required when cino is not provided")
	}

	cart, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return nil, err
	}

	// upsert by (cart, pno) so the unique line invariant holds
	exist, err := s.Carts.ItemByProduct(cart.Cno, *req.Pno)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		if err := s.Carts.UpdateItemQty(exist.Cino, cart.Cno, req.Qty); err != nil {
			return nil, err
		}
	} else {
		if err := s.Carts.InsertItem(cart.Cno, *req.Pno, req.Qty); err != nil {
			return nil, err
		}
	}
	return s.ListItems(userID)
}

func (s *CartService) RemoveItem(userID string, cino int64) ([]domain.CartItemView, error) {
	item, err := s.assertOwner(userID, cino)
	if err != nil {
		return nil, err
	}
	if err := s.Carts.DeleteItem(item.Cino, item.CartCno); err != nil {
		return nil, err
	}
	return s.ListItems(userID)
}

// ListItems is the reconciling read path. Lines referencing soft-deleted
// products are purged from the store as a side effect and never appear in the
// returned list; a member with no cart gets an empty list without a cart row
// being created.
func (s *CartService) ListItems(userID string) ([]domain.CartItemView, error) {
	cart, err := s.Carts.ByOwner(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return []domain.CartItemView{}, nil
	}

	items, err := s.Carts.Items(cart.Cno)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.CartItemView{}, nil
	}

	pnos := make([]int64, 0, len(items))
	seen := map[int64]bool{}
	for _, it := range items {
		if !seen[it.ProductPno] {
			seen[it.ProductPno] = true
			pnos = append(pnos, it.ProductPno)
		}
	}

	products, err := s.Prods.ByPnos(pnos)
	if err != nil {
		return nil, err
	}
	live := map[int64]domain.Product{}
	deleted := map[int64]bool{}
	for _, p := range products {
		if p.DelFlag {
			deleted[p.Pno] = true
			continue
		}
		live[p.Pno] = p
	}

	// purge lines whose product has been retracted
	var stale []int64
	for _, it := range items {
		if deleted[it.ProductPno] {
			stale = append(stale, it.Cino)
		}
	}
	if len(stale) > 0 {
		if err := s.Carts.DeleteItems(cart.Cno, stale); err != nil {
			return nil, err
		}
	}

	alive := make([]int64, 0, len(pnos))
	for _, pno := range pnos {
		if !deleted[pno] {
			alive = append(alive, pno)
		}
	}
	thumbs, err := s.Prods.Thumbnails(alive)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CartItemView, 0, len(items))
	for _, it := range items {
		if deleted[it.ProductPno] {
			continue
		}
		p := live[it.ProductPno]
		views = append(views, domain.CartItemView{
			Cino:      it.Cino,
			Qty:       it.Qty,
			Pno:       it.ProductPno,
			Pname:     p.Pname,
			Price:     p.Price,
			ImageFile: thumbs[it.ProductPno],
		})
	}
	return views, nil
}
