package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectModel struct {
	ProjectID        uuid.UUID `gorm:"type:uuid;primaryKey;column:project_id" json:"project_id"`
	ProjectCompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:project_company_id" json:"project_company_id"`

	ProjectName        string  `gorm:"size:100;not null;column:project_name" json:"project_name"`
	ProjectDescription *string `gorm:"type:text;column:project_description" json:"project_description,omitempty"`
	ProjectIsActive    bool    `gorm:"not null;default:true;column:project_is_active" json:"project_is_active"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (ProjectModel) TableName() string { return "projects" }

func (m *ProjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProjectID == uuid.Nil {
		m.ProjectID = uuid.New()
	}
	return nil
}
