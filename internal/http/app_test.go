package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"adboard/internal/config"
	"adboard/internal/http/handlers"
	"adboard/internal/repos"
)

func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// A pool of in-memory sqlite connections would each see a different DB.
	db.SetMaxOpenConns(1)

	cfg := config.Config{TokenTTL: 24 * time.Hour, BcryptCost: bcrypt.MinCost}
	deps := handlers.NewDeps(db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	handlers.Routes(app, deps)
	return app, db
}

func jsonReq(method, target, body, token string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(handlers.TokenHeader, token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func registerUser(t *testing.T, app *fiber.App, name, password string) int64 {
	t.Helper()
	resp, err := app.Test(jsonReq("POST", "/api/v1/user", `{"name":"`+name+`","password":"`+password+`"}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", name, resp.StatusCode)
	}
	var out struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &out)
	return out.ID
}

func loginUser(t *testing.T, app *fiber.App, name, password string) string {
	t.Helper()
	resp, err := app.Test(jsonReq("POST", "/api/v1/login", `{"name":"`+name+`","password":"`+password+`"}`, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", name, resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &out)
	if out.Token == "" {
		t.Fatal("empty token")
	}
	return out.Token
}

func createAd(t *testing.T, app *fiber.App, token, body string) int64 {
	t.Helper()
	resp, err := app.Test(jsonReq("POST", "/api/v1/advertisement", body, token))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create ad: status %d", resp.StatusCode)
	}
	var out struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &out)
	return out.ID
}

// promote flips a user to the admin role directly in the store; tests need an
// admin without going through the API.
func promote(t *testing.T, db *sqlx.DB, id int64) {
	t.Helper()
	if _, err := db.Exec(`UPDATE users SET role='admin' WHERE id=?`, id); err != nil {
		t.Fatal(err)
	}
}
