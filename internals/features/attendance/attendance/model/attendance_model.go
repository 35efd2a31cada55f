package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceModel: satu baris = satu sesi absen (check-in .. check-out).
// Invariant: per karyawan maksimal SATU baris dengan attendance_check_out IS NULL
// (dijaga oleh index unik parsial uq_attendances_open_session + cek transaksional
// di service).
//
// attendance_erp_id & attendance_sync_error diisi asinkron oleh hasil sinkronisasi
// ERP, terpisah dari transaksi check-in/check-out itu sendiri.
type AttendanceModel struct {
	AttendanceID         uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_id" json:"attendance_id"`
	AttendanceCompanyID  uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_company_id" json:"attendance_company_id"`
	AttendanceEmployeeID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_employee_id" json:"attendance_employee_id"`

	AttendanceCheckIn  time.Time  `gorm:"not null;column:attendance_check_in" json:"attendance_check_in"`
	AttendanceCheckOut *time.Time `gorm:"column:attendance_check_out" json:"attendance_check_out,omitempty"`

	AttendanceErpID     *int64  `gorm:"column:attendance_erp_id" json:"attendance_erp_id,omitempty"`
	AttendanceSyncError *string `gorm:"type:text;column:attendance_sync_error" json:"attendance_sync_error,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AttendanceModel) TableName() string { return "attendances" }

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
