package route

import (
	syncController "absensiku_backend/internals/features/erpsync/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErpSyncAdminRoutes: konfigurasi integrasi ERP, hanya untuk admin company.
func ErpSyncAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := syncController.NewSyncConfigController(db)

	r := api.Group("/erp-sync")
	r.Put("/config", ctrl.Upsert)
	r.Get("/config", ctrl.Get)
	r.Post("/config/disable", ctrl.Disable)
}
