package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeModel: data karyawan. Field email / national_id / code dipakai
// EmployeeResolver untuk mencari padanan karyawan di ERP.
type EmployeeModel struct {
	EmployeeID        uuid.UUID  `gorm:"type:uuid;primaryKey;column:employee_id" json:"employee_id"`
	EmployeeCompanyID uuid.UUID  `gorm:"type:uuid;not null;index;column:employee_company_id" json:"employee_company_id"`
	EmployeeUserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex;column:employee_user_id" json:"employee_user_id,omitempty"`

	EmployeeName       string  `gorm:"size:100;not null;column:employee_name" json:"employee_name"`
	EmployeeEmail      *string `gorm:"size:255;column:employee_email" json:"employee_email,omitempty"`
	EmployeeNationalID *string `gorm:"size:50;column:employee_national_id" json:"employee_national_id,omitempty"`
	EmployeeCode       *string `gorm:"size:50;column:employee_code" json:"employee_code,omitempty"`
	EmployeePosition   *string `gorm:"size:100;column:employee_position" json:"employee_position,omitempty"`

	EmployeeIsActive bool `gorm:"not null;default:true;column:employee_is_active" json:"employee_is_active"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (EmployeeModel) TableName() string { return "employees" }

func (m *EmployeeModel) BeforeCreate(tx *gorm.DB) error {
	if m.EmployeeID == uuid.Nil {
		m.EmployeeID = uuid.New()
	}
	return nil
}
