package controller

import (
	"errors"

	helper "absensiku_backend/internals/helpers"

	"absensiku_backend/internals/features/company/employees/dto"
	"absensiku_backend/internals/features/company/employees/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// 🟢 CREATE: tambah karyawan baru ke company admin
func (ctrl *EmployeeController) Create(c *fiber.Ctx) error {
	var body dto.CreateEmployeeRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row := model.EmployeeModel{
		EmployeeCompanyID:  companyID,
		EmployeeName:       body.EmployeeName,
		EmployeeEmail:      body.EmployeeEmail,
		EmployeeNationalID: body.EmployeeNationalID,
		EmployeeCode:       body.EmployeeCode,
		EmployeePosition:   body.EmployeePosition,
		EmployeeIsActive:   true,
	}
	if body.EmployeeUserID != nil && *body.EmployeeUserID != "" {
		uid, err := uuid.Parse(*body.EmployeeUserID)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "employee_user_id tidak valid")
		}
		row.EmployeeUserID = &uid
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusConflict, "User tersebut sudah terhubung ke karyawan lain")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan karyawan")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Karyawan berhasil dibuat", row)
}

// 🟢 LIST: semua karyawan company
func (ctrl *EmployeeController) List(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParsePagination(c)
	var rows []model.EmployeeModel
	var total int64

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.EmployeeModel{}).
		Where("employee_company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat karyawan")
	}
	if err := q.Order("employee_name asc").Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat karyawan")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "OK",
		"data":    rows,
		"meta":    helper.BuildMeta(p, total),
	})
}

// 🟢 GET: detail karyawan company
func (ctrl *EmployeeController) Get(c *fiber.Ctx) error {
	row, err := ctrl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "OK", row)
}

// 🟢 UPDATE: perbarui sebagian field karyawan
func (ctrl *EmployeeController) Update(c *fiber.Ctx) error {
	var body dto.UpdateEmployeeRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.findScoped(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	updates := map[string]interface{}{}
	if body.EmployeeName != nil {
		updates["employee_name"] = *body.EmployeeName
	}
	if body.EmployeeEmail != nil {
		updates["employee_email"] = *body.EmployeeEmail
	}
	if body.EmployeeNationalID != nil {
		updates["employee_national_id"] = *body.EmployeeNationalID
	}
	if body.EmployeeCode != nil {
		updates["employee_code"] = *body.EmployeeCode
	}
	if body.EmployeePosition != nil {
		updates["employee_position"] = *body.EmployeePosition
	}
	if body.EmployeeIsActive != nil {
		updates["employee_is_active"] = *body.EmployeeIsActive
	}
	if len(updates) == 0 {
		return helper.Success(c, "Tidak ada perubahan", row)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Model(row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui karyawan")
	}
	return helper.Success(c, "Karyawan berhasil diperbarui", row)
}

func (ctrl *EmployeeController) findScoped(c *fiber.Ctx) (*model.EmployeeModel, error) {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "id karyawan tidak valid")
	}

	var row model.EmployeeModel
	dbErr := ctrl.DB.WithContext(c.UserContext()).
		Where("employee_id = ? AND employee_company_id = ?", id, companyID).
		Take(&row).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Karyawan tidak ditemukan")
	}
	if dbErr != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat karyawan")
	}
	return &row, nil
}
