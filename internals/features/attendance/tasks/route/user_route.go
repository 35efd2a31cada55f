package route

import (
	taskController "absensiku_backend/internals/features/attendance/tasks/controller"
	taskService "absensiku_backend/internals/features/attendance/tasks/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TaskUserRoutes: endpoint task untuk karyawan (group sudah ber-JWT).
func TaskUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := taskController.NewTaskController(db, taskService.NewTaskService(db))

	r := api.Group("/tasks")
	r.Post("/", ctrl.Create)
	r.Get("/", ctrl.List)
	r.Get("/:id", ctrl.Get)
	r.Post("/:id/actions", ctrl.ApplyAction) // body: {"action": "iniciar|detener|finalizar"}
}
