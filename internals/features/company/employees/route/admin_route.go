package route

import (
	employeeController "absensiku_backend/internals/features/company/employees/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EmployeeAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := employeeController.NewEmployeeController(db)

	r := api.Group("/employees")
	r.Post("/", ctrl.Create)
	r.Get("/", ctrl.List)
	r.Get("/:id", ctrl.Get)
	r.Put("/:id", ctrl.Update)
}
