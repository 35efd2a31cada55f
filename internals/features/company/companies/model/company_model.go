package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyModel struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey;column:company_id" json:"company_id"`

	CompanyName    string  `gorm:"size:100;not null;column:company_name" json:"company_name"`
	CompanyAddress *string `gorm:"type:text;column:company_address" json:"company_address,omitempty"`
	CompanyPhone   *string `gorm:"size:30;column:company_phone" json:"company_phone,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (CompanyModel) TableName() string { return "companies" }

func (m *CompanyModel) BeforeCreate(tx *gorm.DB) error {
	if m.CompanyID == uuid.Nil {
		m.CompanyID = uuid.New()
	}
	return nil
}
