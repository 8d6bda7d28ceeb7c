package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/features/users/auth/controller"
	"escuelasegura_backend/internals/middlewares"
)

// AuthPublicRoutes: register/login + halaman auth (redirect idempoten
// kalau sudah login).
func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	api.Post("/auth/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	api.Post("/auth/login", middlewares.LoginRateLimiter(), ctrl.Login)
	api.Get("/login", ctrl.AuthPage)
	api.Get("/register", ctrl.AuthPage)
}

// AuthUserRoutes: butuh token.
func AuthUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	user.Post("/auth/logout", ctrl.Logout)
	user.Get("/auth/me", ctrl.Me)
}
