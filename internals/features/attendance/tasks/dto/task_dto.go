package dto

import (
	"time"

	"absensiku_backend/internals/features/attendance/tasks/model"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	TaskProjectID   string  `json:"task_project_id" validate:"required,uuid"`
	TaskEmployeeID  *string `json:"task_employee_id" validate:"omitempty,uuid"`
	TaskTitle       string  `json:"task_title" validate:"required,min=3,max=200"`
	TaskDescription *string `json:"task_description"`
}

type TaskActionRequest struct {
	Action string `json:"action" validate:"required"`
}

type TaskResponse struct {
	TaskID      uuid.UUID  `json:"task_id"`
	TaskNumber  string     `json:"task_number"`
	EmployeeID  *uuid.UUID `json:"employee_id,omitempty"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	TotalHours  *float64   `json:"total_hours,omitempty"`
}

func ToTaskResponse(m *model.TaskModel) TaskResponse {
	return TaskResponse{
		TaskID:      m.TaskID,
		TaskNumber:  m.TaskNumber,
		EmployeeID:  m.TaskEmployeeID,
		ProjectID:   m.TaskProjectID,
		Title:       m.TaskTitle,
		Description: m.TaskDescription,
		Status:      m.TaskStatus,
		StartedAt:   m.TaskStartedAt,
		FinishedAt:  m.TaskFinishedAt,
		TotalHours:  m.TaskTotalHours,
	}
}

func ToTaskResponses(rows []model.TaskModel) []TaskResponse {
	out := make([]TaskResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToTaskResponse(&rows[i]))
	}
	return out
}
