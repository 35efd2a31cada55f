package dto

import (
	"time"

	"absensiku_backend/internals/features/attendance/attendance/model"

	"github.com/google/uuid"
)

type AttendanceResponse struct {
	AttendanceID uuid.UUID  `json:"attendance_id"`
	EmployeeID   uuid.UUID  `json:"employee_id"`
	CheckIn      time.Time  `json:"check_in"`
	CheckOut     *time.Time `json:"check_out,omitempty"`
	ErpID        *int64     `json:"erp_id,omitempty"`
	SyncError    *string    `json:"sync_error,omitempty"`
}

func ToAttendanceResponse(m *model.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID: m.AttendanceID,
		EmployeeID:   m.AttendanceEmployeeID,
		CheckIn:      m.AttendanceCheckIn,
		CheckOut:     m.AttendanceCheckOut,
		ErpID:        m.AttendanceErpID,
		SyncError:    m.AttendanceSyncError,
	}
}

func ToAttendanceResponses(rows []model.AttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToAttendanceResponse(&rows[i]))
	}
	return out
}
