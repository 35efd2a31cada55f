package route

import (
	authController "absensiku_backend/internals/features/users/auth/controller"
	"absensiku_backend/internals/middlewares"
	authMiddleware "absensiku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	r := app.Group("/api/auth")
	r.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	r.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	r.Get("/me", authMiddleware.AuthMiddleware(db), ctrl.Me)
}
