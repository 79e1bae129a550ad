package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"adboard/internal/auth"
	"adboard/internal/config"
	"adboard/internal/repos"
	"adboard/internal/services"
)

type Deps struct {
	AuthSvc *services.AuthService

	Auth *AuthHandler
	User *UserHandler
	Ad   *AdHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	adRepo := repos.NewAdRepo(db)

	hasher := auth.NewHasher(cfg.BcryptCost)
	authSvc := services.NewAuthService(userRepo, hasher, cfg.TokenTTL)
	adSvc := services.NewAdService(adRepo)

	return &Deps{
		AuthSvc: authSvc,
		Auth:    &AuthHandler{Auth: authSvc},
		User:    &UserHandler{Auth: authSvc},
		Ad:      &AdHandler{Ads: adSvc},
	}
}

// Routes wires the /api/v1 surface. Reads are public; every mutating route
// runs behind the token middleware, and ownership is enforced in the
// services. Rate limiting is layered on in main, not here, so tests hit the
// raw routes.
func Routes(app *fiber.App, d *Deps) {
	requireToken := RequireToken(d.AuthSvc)

	api := app.Group("/api/v1")

	api.Post("/user", d.Auth.Register)
	api.Post("/login", d.Auth.Login)
	api.Post("/logout", requireToken, d.Auth.Logout)

	api.Get("/user/:id", d.User.Get)
	api.Patch("/user/:id", requireToken, d.User.Update)
	api.Delete("/user/:id", requireToken, d.User.Delete)

	api.Post("/advertisement", requireToken, d.Ad.Create)
	api.Get("/advertisement", d.Ad.Search)
	api.Get("/advertisement/:id", d.Ad.Get)
	api.Patch("/advertisement/:id", requireToken, d.Ad.Update)
	api.Delete("/advertisement/:id", requireToken, d.Ad.Delete)
}
