package route

import (
	companyController "absensiku_backend/internals/features/company/companies/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CompanyOwnerRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := companyController.NewCompanyController(db)

	r := api.Group("/companies")
	r.Post("/", ctrl.Create)
	r.Get("/:id", ctrl.Get)
}
