package controller

import (
	"errors"

	helper "absensiku_backend/internals/helpers"

	"absensiku_backend/internals/features/company/companies/dto"
	"absensiku_backend/internals/features/company/companies/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

type CompanyController struct {
	DB *gorm.DB
}

func NewCompanyController(db *gorm.DB) *CompanyController {
	return &CompanyController{DB: db}
}

// 🟢 CREATE COMPANY (owner global)
func (ctrl *CompanyController) Create(c *fiber.Ctx) error {
	var body dto.CreateCompanyRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	row := model.CompanyModel{
		CompanyName:    body.CompanyName,
		CompanyAddress: body.CompanyAddress,
		CompanyPhone:   body.CompanyPhone,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan company")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Company berhasil dibuat", row)
}

// 🟢 GET COMPANY
func (ctrl *CompanyController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id company tidak valid")
	}

	var row model.CompanyModel
	dbErr := ctrl.DB.WithContext(c.UserContext()).Where("company_id = ?", id).Take(&row).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Company tidak ditemukan")
	}
	if dbErr != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat company")
	}
	return helper.Success(c, "OK", row)
}
