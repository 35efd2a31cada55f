package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Field lookup yang dipakai mencari karyawan di ERP
const (
	LookupEmail      = "email"
	LookupNationalID = "national_id"
	LookupCode       = "code"
)

// SyncConfigModel: konfigurasi integrasi ERP per company.
// Password disimpan apa adanya (kredensial API ERP, bukan password user portal).
type SyncConfigModel struct {
	SyncConfigID        uuid.UUID `gorm:"type:uuid;primaryKey;column:sync_config_id" json:"sync_config_id"`
	SyncConfigCompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:sync_config_company_id" json:"sync_config_company_id"`

	SyncConfigEndpointURL string `gorm:"size:255;not null;column:sync_config_endpoint_url" json:"sync_config_endpoint_url"`
	SyncConfigDatabase    string `gorm:"size:100;not null;column:sync_config_database" json:"sync_config_database"`
	SyncConfigUsername    string `gorm:"size:100;not null;column:sync_config_username" json:"sync_config_username"`
	SyncConfigPassword    string `gorm:"size:255;not null;column:sync_config_password" json:"-"`

	SyncConfigLookupField     string `gorm:"type:varchar(20);not null;default:'email';column:sync_config_lookup_field" json:"sync_config_lookup_field"`
	SyncConfigRemoteCompanyID int64  `gorm:"not null;column:sync_config_remote_company_id" json:"sync_config_remote_company_id"`

	SyncConfigEnabled bool `gorm:"not null;default:true;column:sync_config_enabled" json:"sync_config_enabled"`

	// Setting tambahan (JSON), mis. {"code_field": "x_employee_code"}
	SyncConfigExtra datatypes.JSON `gorm:"column:sync_config_extra" json:"sync_config_extra,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (SyncConfigModel) TableName() string { return "sync_configs" }

func (m *SyncConfigModel) BeforeCreate(tx *gorm.DB) error {
	if m.SyncConfigID == uuid.Nil {
		m.SyncConfigID = uuid.New()
	}
	return nil
}
