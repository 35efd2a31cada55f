package route

import (
	attendanceController "absensiku_backend/internals/features/attendance/attendance/controller"
	attendanceService "absensiku_backend/internals/features/attendance/attendance/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AttendanceUserRoutes: endpoint absen untuk karyawan (group sudah ber-JWT).
func AttendanceUserRoutes(api fiber.Router, db *gorm.DB, svc *attendanceService.AttendanceService) {
	ctrl := attendanceController.NewAttendanceController(db, svc)

	r := api.Group("/attendances")
	r.Post("/check-in", ctrl.CheckIn)   // buka sesi
	r.Post("/check-out", ctrl.CheckOut) // tutup sesi
	r.Get("/active", ctrl.GetActive)    // sesi terbuka saat ini
	r.Get("/", ctrl.List)               // riwayat
}
