package controller

import (
	"errors"

	helper "absensiku_backend/internals/helpers"

	"absensiku_backend/internals/features/company/projects/dto"
	"absensiku_backend/internals/features/company/projects/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

type ProjectController struct {
	DB *gorm.DB
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db}
}

// 🟢 CREATE PROJECT
func (ctrl *ProjectController) Create(c *fiber.Ctx) error {
	var body dto.CreateProjectRequest
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

	row := model.ProjectModel{
		ProjectCompanyID:   companyID,
		ProjectName:        body.ProjectName,
		ProjectDescription: body.ProjectDescription,
		ProjectIsActive:    true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan project")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Project berhasil dibuat", row)
}

// 🟢 LIST PROJECT company
func (ctrl *ProjectController) List(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParsePagination(c)
	var rows []model.ProjectModel
	var total int64

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.ProjectModel{}).
		Where("project_company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat project")
	}
	if err := q.Order("project_name asc").Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat project")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "OK",
		"data":    rows,
		"meta":    helper.BuildMeta(p, total),
	})
}

// 🟢 UPDATE PROJECT
func (ctrl *ProjectController) Update(c *fiber.Ctx) error {
	var body dto.UpdateProjectRequest
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
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id project tidak valid")
	}

	var row model.ProjectModel
	dbErr := ctrl.DB.WithContext(c.UserContext()).
		Where("project_id = ? AND project_company_id = ?", id, companyID).
		Take(&row).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Project tidak ditemukan")
	}
	if dbErr != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat project")
	}

	updates := map[string]interface{}{}
	if body.ProjectName != nil {
		updates["project_name"] = *body.ProjectName
	}
	if body.ProjectDescription != nil {
		updates["project_description"] = *body.ProjectDescription
	}
	if body.ProjectIsActive != nil {
		updates["project_is_active"] = *body.ProjectIsActive
	}
	if len(updates) == 0 {
		return helper.Success(c, "Tidak ada perubahan", row)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Model(&row).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui project")
	}
	return helper.Success(c, "Project berhasil diperbarui", row)
}
