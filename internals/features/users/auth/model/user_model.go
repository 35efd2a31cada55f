package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users (akun login portal)
type UserModel struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	UserCompanyID uuid.UUID `gorm:"type:uuid;not null;column:user_company_id" json:"user_company_id"`

	UserName     string `gorm:"size:100;not null;column:user_name" json:"user_name"`
	UserEmail    string `gorm:"size:255;unique;not null;column:user_email" json:"user_email"`
	UserPassword string `gorm:"not null;column:user_password" json:"-"`
	UserRole     string `gorm:"type:varchar(20);not null;default:'employee';column:user_role" json:"user_role"`

	UserIsActive bool `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// BeforeCreate mengisi PK di aplikasi, portable untuk Postgres maupun SQLite (test)
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
