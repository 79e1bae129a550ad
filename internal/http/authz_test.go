package handlers_test

import (
	"net/http"
	"testing"
)

func TestAdOwnershipGuard(t *testing.T) {
	app, db := newTestApp(t)
	registerUser(t, app, "alice", "p@ss1")
	registerUser(t, app, "bob", "p@ss2")
	adminID := registerUser(t, app, "root", "p@ss3")
	promote(t, db, adminID)

	aliceTok := loginUser(t, app, "alice", "p@ss1")
	bobTok := loginUser(t, app, "bob", "p@ss2")
	adminTok := loginUser(t, app, "root", "p@ss3")

	adID := createAd(t, app, aliceTok, `{"title":"Philco 1939","description":"tube radio","price":349.5}`)

	// non-owner: denied, nothing mutated
	resp, err := app.Test(jsonReq("PATCH", "/api/v1/advertisement/1", `{"title":"stolen"}`, bobTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign patch: want 403, got %d", resp.StatusCode)
	}
	resp, err = app.Test(jsonReq("DELETE", "/api/v1/advertisement/1", "", bobTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign delete: want 403, got %d", resp.StatusCode)
	}

	var title string
	if err := db.Get(&title, `SELECT title FROM advertisements WHERE id=?`, adID); err != nil {
		t.Fatal(err)
	}
	if title != "Philco 1939" {
		t.Fatalf("denied request mutated the ad: %q", title)
	}

	// owner: allowed
	resp, err = app.Test(jsonReq("PATCH", "/api/v1/advertisement/1", `{"price":299,"status_open":false}`, aliceTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner patch: %d", resp.StatusCode)
	}

	// admin on someone else's resource: allowed
	resp, err = app.Test(jsonReq("DELETE", "/api/v1/advertisement/1", "", adminTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin delete: %d", resp.StatusCode)
	}
	resp, err = app.Test(jsonReq("GET", "/api/v1/advertisement/1", "", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted ad still served: %d", resp.StatusCode)
	}
}

func TestUserAccountGuard(t *testing.T) {
	app, db := newTestApp(t)
	aliceID := registerUser(t, app, "alice", "p@ss1")
	registerUser(t, app, "bob", "p@ss2")
	adminID := registerUser(t, app, "root", "p@ss3")
	promote(t, db, adminID)

	aliceTok := loginUser(t, app, "alice", "p@ss1")
	bobTok := loginUser(t, app, "bob", "p@ss2")
	adminTok := loginUser(t, app, "root", "p@ss3")

	// foreign account update
	resp, err := app.Test(jsonReq("PATCH", "/api/v1/user/1", `{"name":"hijacked"}`, bobTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign user patch: want 403, got %d", resp.StatusCode)
	}

	// self-promotion to admin
	resp, err = app.Test(jsonReq("PATCH", "/api/v1/user/1", `{"role":"admin"}`, aliceTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("self-promotion: want 403, got %d", resp.StatusCode)
	}

	// unknown role value is rejected before the guard even runs
	resp, err = app.Test(jsonReq("PATCH", "/api/v1/user/1", `{"role":"superuser"}`, adminTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus role: want 400, got %d", resp.StatusCode)
	}

	// admin changes someone's role
	resp, err = app.Test(jsonReq("PATCH", "/api/v1/user/1", `{"role":"admin"}`, adminTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin role change: %d", resp.StatusCode)
	}

	// self-service rename and password change
	resp, err = app.Test(jsonReq("PATCH", "/api/v1/user/2", `{"name":"bobby","password":"n3w-p@ss"}`, bobTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("self update: %d", resp.StatusCode)
	}
	loginUser(t, app, "bobby", "n3w-p@ss")

	// deleting an account takes its ads and tokens with it
	adID := createAd(t, app, aliceTok, `{"title":"NES","price":199}`)
	resp, err = app.Test(jsonReq("DELETE", "/api/v1/user/1", "", aliceTok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("self delete: %d", resp.StatusCode)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM advertisements WHERE id=?`, adID); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("ads outlived their owner")
	}
	if err := db.Get(&n, `SELECT COUNT(*) FROM tokens WHERE user_id=?`, aliceID); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("tokens outlived their owner")
	}
}
