package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status task (graph maju saja: DRAFT/ASSIGNED → WORKING → DONE)
const (
	TaskStatusDraft    = "DRAFT"
	TaskStatusAssigned = "ASSIGNED"
	TaskStatusWorking  = "WORKING"
	TaskStatusDone     = "DONE"
)

// Token aksi yang dikirim client (warisan aplikasi mobile lama)
const (
	TaskActionStart  = "iniciar"
	TaskActionStop   = "detener"
	TaskActionFinish = "finalizar"
)

// TaskModel: pekerjaan yang dilacak per karyawan.
// task_total_hours hanya terisi saat status DONE dan tidak pernah dihitung ulang.
type TaskModel struct {
	TaskID        uuid.UUID `gorm:"type:uuid;primaryKey;column:task_id" json:"task_id"`
	TaskCompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:task_company_id" json:"task_company_id"`

	// Nomor urut per company, mis. TSK-00012
	TaskNumber string `gorm:"size:20;not null;column:task_number" json:"task_number"`

	TaskEmployeeID *uuid.UUID `gorm:"type:uuid;index;column:task_employee_id" json:"task_employee_id,omitempty"`
	TaskProjectID  uuid.UUID  `gorm:"type:uuid;not null;index;column:task_project_id" json:"task_project_id"`

	TaskTitle       string  `gorm:"size:200;not null;column:task_title" json:"task_title"`
	TaskDescription *string `gorm:"type:text;column:task_description" json:"task_description,omitempty"`

	TaskStatus     string     `gorm:"type:varchar(20);not null;default:'DRAFT';column:task_status" json:"task_status"`
	TaskStartedAt  *time.Time `gorm:"column:task_started_at" json:"task_started_at,omitempty"`
	TaskFinishedAt *time.Time `gorm:"column:task_finished_at" json:"task_finished_at,omitempty"`
	TaskTotalHours *float64   `gorm:"type:decimal(10,2);column:task_total_hours" json:"task_total_hours,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (TaskModel) TableName() string { return "tasks" }

func (m *TaskModel) BeforeCreate(tx *gorm.DB) error {
	if m.TaskID == uuid.Nil {
		m.TaskID = uuid.New()
	}
	return nil
}
