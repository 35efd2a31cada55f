package controller

import (
	"errors"

	helper "absensiku_backend/internals/helpers"

	"absensiku_backend/internals/features/attendance/attendance/dto"
	attendanceService "absensiku_backend/internals/features/attendance/attendance/service"
	employeeModel "absensiku_backend/internals/features/company/employees/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceController struct {
	DB      *gorm.DB
	Service *attendanceService.AttendanceService
}

func NewAttendanceController(db *gorm.DB, svc *attendanceService.AttendanceService) *AttendanceController {
	return &AttendanceController{DB: db, Service: svc}
}

// 🟢 CHECK-IN: buka sesi absen baru untuk karyawan yang login
func (ctrl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	emp, err := ctrl.currentEmployee(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctrl.Service.CheckIn(c.UserContext(), emp.EmployeeCompanyID, emp.EmployeeID)
	if err != nil {
		return ctrl.mapServiceError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Check-in berhasil", dto.ToAttendanceResponse(row))
}

// 🟢 CHECK-OUT: tutup sesi absen yang masih terbuka
func (ctrl *AttendanceController) CheckOut(c *fiber.Ctx) error {
	emp, err := ctrl.currentEmployee(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctrl.Service.CheckOut(c.UserContext(), emp.EmployeeCompanyID, emp.EmployeeID)
	if err != nil {
		return ctrl.mapServiceError(c, err)
	}

	return helper.Success(c, "Check-out berhasil", dto.ToAttendanceResponse(row))
}

// 🟢 GET ACTIVE: sesi terbuka saat ini (data=null jika tidak ada)
func (ctrl *AttendanceController) GetActive(c *fiber.Ctx) error {
	emp, err := ctrl.currentEmployee(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctrl.Service.GetActive(c.UserContext(), emp.EmployeeID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat sesi absen")
	}
	if row == nil {
		return helper.Success(c, "Tidak ada sesi absen terbuka", nil)
	}
	return helper.Success(c, "OK", dto.ToAttendanceResponse(row))
}

// 🟢 LIST: riwayat absen karyawan yang login
func (ctrl *AttendanceController) List(c *fiber.Ctx) error {
	emp, err := ctrl.currentEmployee(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParsePagination(c)
	rows, total, err := ctrl.Service.List(c.UserContext(), emp.EmployeeID, p.Limit(), p.Offset())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat riwayat absen")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "OK",
		"data":    dto.ToAttendanceResponses(rows),
		"meta":    helper.BuildMeta(p, total),
	})
}

// currentEmployee mencari baris karyawan milik user di token.
func (ctrl *AttendanceController) currentEmployee(c *fiber.Ctx) (*employeeModel.EmployeeModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	return findEmployeeByUser(ctrl.DB, c, userID)
}

func findEmployeeByUser(db *gorm.DB, c *fiber.Ctx, userID uuid.UUID) (*employeeModel.EmployeeModel, error) {
	var emp employeeModel.EmployeeModel
	err := db.WithContext(c.UserContext()).
		Where("employee_user_id = ? AND employee_is_active = ?", userID, true).
		Take(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Akun Anda tidak terhubung ke data karyawan")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat data karyawan")
	}
	return &emp, nil
}

func (ctrl *AttendanceController) mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, attendanceService.ErrAlreadyCheckedIn),
		errors.Is(err, attendanceService.ErrNoActiveSession):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses absen")
	}
}
