package handlers_test

import (
	"net/http"
	"testing"

	"github.com/quswhddbs/mall/internal/repos"
)

func TestAdminUsersRequiresSuperAdmin(t *testing.T) {
	app, _, auth := newTestApp(t)

	userTok := loginToken(t, auth, "user1@mall.test")
	resp := doJSON(t, app, "GET", "/api/admin/users", userTok, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for plain USER, got %d", resp.StatusCode)
	}
	if body := decode[map[string]string](t, resp); body["code"] != "ERROR_ACCESSDENIED" {
		t.Fatalf("expected ERROR_ACCESSDENIED, got %s", body["code"])
	}

	adminTok := loginToken(t, auth, "admin@mall.test")
	resp = doJSON(t, app, "GET", "/api/admin/users", adminTok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for SUPER_ADMIN, got %d", resp.StatusCode)
	}
	body := decode[map[string][]repos.MemberWithRoles](t, resp)
	users := body["users"]
	if len(users) < 2 {
		t.Fatalf("expected seeded users in listing, got %d", len(users))
	}
	// ordered by email; admin account is flagged
	if users[0].Email > users[1].Email {
		t.Fatal("expected email ordering")
	}
	for _, u := range users {
		if u.Email == "admin@mall.test" && !u.IsAdmin {
			t.Fatal("admin account should carry isAdmin=true")
		}
	}
}

func TestAdminGrantAndRevoke(t *testing.T) {
	app, db, auth := newTestApp(t)
	adminTok := loginToken(t, auth, "admin@mall.test")

	resp := doJSON(t, app, "PUT", "/api/admin/users/m-user1/admin", adminTok, map[string]any{"enabled": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("grant: %d", resp.StatusCode)
	}
	out := decode[map[string]any](t, resp)
	if out["isAdmin"] != true {
		t.Fatalf("expected isAdmin=true, got %+v", out)
	}

	// the freshly granted role is live for authorization immediately
	userTok := loginToken(t, auth, "user1@mall.test")
	resp = doJSON(t, app, "POST", "/api/product/", userTok, nil)
	if resp.StatusCode == http.StatusForbidden {
		t.Fatal("granted ADMIN should pass the product gate")
	}

	resp = doJSON(t, app, "PUT", "/api/admin/users/m-user1/admin", adminTok, map[string]any{"enabled": false})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("revoke: %d", resp.StatusCode)
	}
	out = decode[map[string]any](t, resp)
	if out["isAdmin"] != false {
		t.Fatalf("expected isAdmin=false, got %+v", out)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM member_role WHERE user_id='m-user1' AND role='ADMIN'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("ADMIN role row survived revoke")
	}
}

func TestAdminCannotChangeOwnRole(t *testing.T) {
	app, _, auth := newTestApp(t)
	adminTok := loginToken(t, auth, "admin@mall.test")

	resp := doJSON(t, app, "PUT", "/api/admin/users/m-admin/admin", adminTok, map[string]any{"enabled": false})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if body := decode[map[string]string](t, resp); body["code"] != "CANNOT_CHANGE_SELF_ROLE" {
		t.Fatalf("expected CANNOT_CHANGE_SELF_ROLE, got %s", body["code"])
	}
}
