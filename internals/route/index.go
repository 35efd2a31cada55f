package routes

import (
	"log"

	"absensiku_backend/internals/configs"
	attendanceRoute "absensiku_backend/internals/features/attendance/attendance/route"
	attendanceService "absensiku_backend/internals/features/attendance/attendance/service"
	taskRoute "absensiku_backend/internals/features/attendance/tasks/route"
	companyRoute "absensiku_backend/internals/features/company/companies/route"
	employeeRoute "absensiku_backend/internals/features/company/employees/route"
	projectRoute "absensiku_backend/internals/features/company/projects/route"
	erpClient "absensiku_backend/internals/features/erpsync/client"
	erpsyncRoute "absensiku_backend/internals/features/erpsync/route"
	erpService "absensiku_backend/internals/features/erpsync/service"
	authRoute "absensiku_backend/internals/features/users/auth/route"
	authMiddleware "absensiku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== CORE SERVICES =====================
	rpc := erpClient.NewRpc(configs.ErpRequestTimeout())
	erp := erpService.NewErpService(db, rpc)
	attendanceSvc := attendanceService.NewAttendanceService(db, erp, configs.ErpSyncTimeout())

	// Sync yang masih jalan ikut ditunggu saat shutdown
	app.Hooks().OnShutdown(func() error {
		attendanceSvc.Wait()
		return nil
	})

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	attendanceRoute.AttendanceUserRoutes(private, db, attendanceSvc)
	taskRoute.TaskUserRoutes(private, db)

	// ===================== ADMIN (per company) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.IsAdmin("manajemen perusahaan"),
	)

	employeeRoute.EmployeeAdminRoutes(admin, db)
	projectRoute.ProjectAdminRoutes(admin, db)
	erpsyncRoute.ErpSyncAdminRoutes(admin, db)

	// ===================== OWNER (GLOBAL) =====================
	log.Println("[INFO] Setting up OWNER group...")
	owner := app.Group("/api/o",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.IsOwner("manajemen company"),
	)

	companyRoute.CompanyOwnerRoutes(owner, db)
}
