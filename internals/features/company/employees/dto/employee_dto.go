package dto

type CreateEmployeeRequest struct {
	EmployeeUserID     *string `json:"employee_user_id" validate:"omitempty,uuid"`
	EmployeeName       string  `json:"employee_name" validate:"required,min=3,max=100"`
	EmployeeEmail      *string `json:"employee_email" validate:"omitempty,email"`
	EmployeeNationalID *string `json:"employee_national_id" validate:"omitempty,max=50"`
	EmployeeCode       *string `json:"employee_code" validate:"omitempty,max=50"`
	EmployeePosition   *string `json:"employee_position" validate:"omitempty,max=100"`
}

type UpdateEmployeeRequest struct {
	EmployeeName       *string `json:"employee_name" validate:"omitempty,min=3,max=100"`
	EmployeeEmail      *string `json:"employee_email" validate:"omitempty,email"`
	EmployeeNationalID *string `json:"employee_national_id" validate:"omitempty,max=50"`
	EmployeeCode       *string `json:"employee_code" validate:"omitempty,max=50"`
	EmployeePosition   *string `json:"employee_position" validate:"omitempty,max=100"`
	EmployeeIsActive   *bool   `json:"employee_is_active"`
}
