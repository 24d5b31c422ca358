package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/quswhddbs/mall/internal/apperr"
	"github.com/quswhddbs/mall/internal/repos"
	"github.com/quswhddbs/mall/internal/services"
)

func cartFixture(t *testing.T) (*sqlx.DB, *services.CartService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// a second member for ownership tests
	db.MustExec(`INSERT INTO member_profile(id,email,nickname,social,password_hash)
	             VALUES('m-user2','user2@mall.test','User2',0,'x')`)
	db.MustExec(`INSERT INTO member_role(user_id,role) VALUES('m-user2','USER')`)

	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	return db, svc
}

func intp(n int64) *int64 { return &n }

func TestListItemsEmptyDoesNotCreateCart(t *testing.T) {
	db, svc := cartFixture(t)

	items, err := svc.ListItems("m-user1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(items))
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM cart WHERE owner_id='m-user1'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("read path must not create a cart, found %d rows", n)
	}
}

func TestFirstAddCreatesExactlyOneCart(t *testing.T) {
	db, svc := cartFixture(t)

	if _, err := svc.ChangeItem("m-user1", services.ChangeRequest{Pno: intp(1), Qty: 1}); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, err := svc.ChangeItem("m-user1", services.ChangeRequest{Pno: intp(2), Qty: 1}); err != nil {
		t.Fatalf("change: %v", err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM cart WHERE owner_id='m-user1'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected one cart, got %d", n)
	}
}

func TestAbsoluteSetAndDeleteScenario(t *testing.T) {
	db, svc := cartFixture(t)

	items, err := svc.ChangeItem("m-user1", services.ChangeRequest{Pno: intp(1), Qty: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(items) != 1 || items[0].Pno != 1 || items[0].Qty != 2 {
		t.Fatalf("unexpected list after add: %+v", items)
	}
	if items[0].Pname == "" || items[0].Price == 0 {
		t.Fatalf("view not joined with product data: %+v", items[0])
	}

	// set again by pno: absolute quantity, still a single line
	items, err = svc.ChangeItem("m-user1", services.ChangeRequest{Pno: intp(1), Qty: 5})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(items) != 1 || items[0].Qty != 5 {
		t.Fatalf("expected one line with qty 5, got %+v", items)
	}
	var rows int
	if err := db.Get(&rows, `SELECT COUNT(*) FROM cart_item WHERE product_pno=1`); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Fatalf("duplicate lines for same product: %d", rows)
	}

	// qty 0 against the cino deletes the line
	items, err = svc.ChangeItem("m-user1", services.ChangeRequest{Cino: intp(items[0].Cino), Qty: 0})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", items)
	}
}

func TestSetQuantityByCino(t *testing.T) {
	_, svc := cartFixture(t)

	items, err := svc.ChangeItem("m-user1", services.ChangeRequest{Pno: intp(2), Qty: 1})
	if err != nil {
		t.Fatal(err)
	}
	items, err = svc.ChangeItem("m-user1", services.ChangeRequest{Cino: intp(items[0].Cino), Qty: 7})
	if err != nil {
		t.Fatalf("set by cino: %v", err)
	}
	if len(items) != 1 || items[0].Qty != 7 {
		t.Fatalf("expected qty 7, got %+v", items)
	}
}

func TestDeleteWithoutTargetIsValidationError(t *testing.T) {
	_, svc := cartFixture(t)

	_, err := svc.ChangeItem("m-user1", services.ChangeRequest{Qty: 0})
	if err == nil {
		t.Fatal("expected error")
	}
	if ae := apperr.From(err); ae.Status != 400 || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected 400 VALIDATION_ERROR, got %d %s", ae.Status, ae.Code)
	}
}

func TestAddWithoutPnoOrCinoIsValidationError(t *testing.T) {
	_, svc := cartFixture(t)

	_, err := svc.ChangeItem("m-user1", services.ChangeRequest{Qty: 3})
	if err == nil {
		t.Fatal("expected error")
	}
	if ae := apperr.From(err); ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %s", ae.Code)
	}
}

func TestForeignItemIsForbiddenAndUnchanged(t *testing.T) {
	db, svc := cartFixture(t)

	items, err := svc.ChangeItem("m-user2", services.ChangeRequest{Pno: intp(1), Qty: 2})
	if err != nil {
		t.Fatal(err)
	}
	cino := items[0].Cino

	_, err = svc.ChangeItem("m-user1", services.ChangeRequest{Cino: intp(cino), Qty: 5})
	if err == nil {
		t.Fatal("expected error")
	}
	if ae := apperr.From(err); ae.Status != 403 || ae.Code != "NOT_OWNER_OF_CART_ITEM" {
		t.Fatalf("expected 403 NOT_OWNER_OF_CART_ITEM, got %d %s", ae.Status, ae.Code)
	}

	var qty int
	if err := db.Get(&qty, `SELECT qty FROM cart_item WHERE cino=?`, cino); err != nil {
		t.Fatal(err)
	}
	if qty != 2 {
		t.Fatalf("victim's quantity changed: %d", qty)
	}

	// removal attempts by a non-owner fail the same way
	if _, err := svc.RemoveItem("m-user1", cino); err == nil {
		t.Fatal("expected forbidden on remove")
	}
}

func TestMissingItemIsNotFound(t *testing.T) {
	_, svc := cartFixture(t)

	_, err := svc.ChangeItem("m-user1", services.ChangeRequest{Cino: intp(9999), Qty: 5})
	if ae := apperr.From(err); ae.Status != 404 || ae.Code != "CART_ITEM_NOT_FOUND" {
		t.Fatalf("expected 404 CART_ITEM_NOT_FOUND, got %d %s", ae.Status, ae.Code)
	}

	_, err = svc.ChangeItem("m-user1", services.ChangeRequest{Cino: intp(9999), Qty: 0})
	if ae := apperr.From(err); ae.Status != 404 {
		t.Fatalf("expected 404 on delete of missing item, got %d", ae.Status)
	}
}

func TestSoftDeletedProductPrunedOnRead(t *testing.T) {
	db, svc := cartFixture(t)

	if _, err := svc.ChangeItem("m-user1", services.ChangeRequest{Pno: intp(1), Qty: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ChangeItem("m-user1", services.ChangeRequest{Pno: intp(2), Qty: 1}); err != nil {
		t.Fatal(err)
	}

	db.MustExec(`UPDATE tbl_product SET del_flag=1 WHERE pno=1`)

	items, err := svc.ListItems("m-user1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Pno != 2 {
		t.Fatalf("retracted product still visible: %+v", items)
	}

	// the purge is persisted, not just filtered from the response
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM cart_item WHERE product_pno=1`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("stale line survived in storage: %d rows", n)
	}
}

func TestListOrderIsNewestFirst(t *testing.T) {
	_, svc := cartFixture(t)

	if _, err := svc.ChangeItem("m-user1", services.ChangeRequest{Pno: intp(1), Qty: 1}); err != nil {
		t.Fatal(err)
	}
	items, err := svc.ChangeItem("m-user1", services.ChangeRequest{Pno: intp(3), Qty: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Pno != 3 || items[1].Pno != 1 {
		t.Fatalf("expected most-recently-added first, got %+v", items)
	}
}
