package controller

import (
	"errors"

	helper "absensiku_backend/internals/helpers"

	"absensiku_backend/internals/features/erpsync/dto"
	"absensiku_backend/internals/features/erpsync/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

// SyncConfigController: CRUD konfigurasi integrasi ERP, scoped ke company admin.
type SyncConfigController struct {
	DB *gorm.DB
}

func NewSyncConfigController(db *gorm.DB) *SyncConfigController {
	return &SyncConfigController{DB: db}
}

// 🟢 UPSERT: buat atau perbarui konfigurasi company
func (ctrl *SyncConfigController) Upsert(c *fiber.Ctx) error {
	var body dto.UpsertSyncConfigRequest
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

	enabled := true
	if body.Enabled != nil {
		enabled = *body.Enabled
	}

	var row model.SyncConfigModel
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("sync_config_company_id = ?", companyID).Take(&row).Error
		if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		row.SyncConfigCompanyID = companyID
		row.SyncConfigEndpointURL = body.EndpointURL
		row.SyncConfigDatabase = body.Database
		row.SyncConfigUsername = body.Username
		row.SyncConfigPassword = body.Password
		row.SyncConfigLookupField = body.LookupField
		row.SyncConfigRemoteCompanyID = body.RemoteCompanyID
		row.SyncConfigEnabled = enabled
		row.SyncConfigExtra = body.Extra

		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return tx.Create(&row).Error
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan konfigurasi ERP")
	}

	return helper.Success(c, "Konfigurasi ERP tersimpan", dto.ToSyncConfigResponse(&row))
}

// 🟢 GET: konfigurasi company (404 bila belum pernah diset)
func (ctrl *SyncConfigController) Get(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var row model.SyncConfigModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("sync_config_company_id = ?", companyID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Integrasi ERP belum dikonfigurasi")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat konfigurasi ERP")
	}
	return helper.Success(c, "OK", dto.ToSyncConfigResponse(&row))
}

// 🟢 DISABLE: matikan integrasi tanpa menghapus kredensial
func (ctrl *SyncConfigController) Disable(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.SyncConfigModel{}).
		Where("sync_config_company_id = ?", companyID).
		Update("sync_config_enabled", false)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menonaktifkan integrasi")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Integrasi ERP belum dikonfigurasi")
	}
	return helper.Success(c, "Integrasi ERP dinonaktifkan", nil)
}
