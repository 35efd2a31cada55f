package route

import (
	projectController "absensiku_backend/internals/features/company/projects/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ProjectAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := projectController.NewProjectController(db)

	r := api.Group("/projects")
	r.Post("/", ctrl.Create)
	r.Get("/", ctrl.List)
	r.Put("/:id", ctrl.Update)
}
