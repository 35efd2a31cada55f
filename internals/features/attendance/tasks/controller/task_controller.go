package controller

import (
	"errors"

	helper "absensiku_backend/internals/helpers"

	"absensiku_backend/internals/features/attendance/tasks/dto"
	taskService "absensiku_backend/internals/features/attendance/tasks/service"
	employeeModel "absensiku_backend/internals/features/company/employees/model"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

type TaskController struct {
	DB      *gorm.DB
	Service *taskService.TaskService
}

func NewTaskController(db *gorm.DB, svc *taskService.TaskService) *TaskController {
	return &TaskController{DB: db, Service: svc}
}

// 🟢 CREATE TASK: draft (tanpa karyawan) atau assigned (dengan karyawan)
func (ctrl *TaskController) Create(c *fiber.Ctx) error {
	var body dto.CreateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	projectID, err := uuid.Parse(body.TaskProjectID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "task_project_id tidak valid")
	}

	var employeeID *uuid.UUID
	if body.TaskEmployeeID != nil && *body.TaskEmployeeID != "" {
		id, err := uuid.Parse(*body.TaskEmployeeID)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "task_employee_id tidak valid")
		}
		employeeID = &id
	}

	row, err := ctrl.Service.Create(c.UserContext(), taskService.CreateTaskInput{
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		ProjectID:   projectID,
		Title:       body.TaskTitle,
		Description: body.TaskDescription,
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat task")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Task berhasil dibuat", dto.ToTaskResponse(row))
}

// 🟢 APPLY ACTION: iniciar / detener / finalizar pada task milik caller
func (ctrl *TaskController) ApplyAction(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id task tidak valid")
	}

	var body dto.TaskActionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	emp, err := ctrl.currentEmployee(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctrl.Service.ApplyAction(c.UserContext(), taskID, emp.EmployeeID, body.Action)
	if err != nil {
		switch {
		case errors.Is(err, taskService.ErrTaskNotFound):
			return helper.Error(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, taskService.ErrInvalidAction):
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		default:
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses aksi task")
		}
	}

	return helper.Success(c, "Aksi task berhasil", dto.ToTaskResponse(row))
}

// 🟢 GET: detail task milik caller
func (ctrl *TaskController) Get(c *fiber.Ctx) error {
	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id task tidak valid")
	}

	emp, err := ctrl.currentEmployee(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	row, err := ctrl.Service.Get(c.UserContext(), taskID, emp.EmployeeID)
	if err != nil {
		if errors.Is(err, taskService.ErrTaskNotFound) {
			return helper.Error(c, fiber.StatusNotFound, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat task")
	}
	return helper.Success(c, "OK", dto.ToTaskResponse(row))
}

// 🟢 LIST: task milik caller
func (ctrl *TaskController) List(c *fiber.Ctx) error {
	emp, err := ctrl.currentEmployee(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParsePagination(c)
	rows, total, err := ctrl.Service.ListByEmployee(c.UserContext(), emp.EmployeeID, p.Limit(), p.Offset())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memuat task")
	}

	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": "OK",
		"data":    dto.ToTaskResponses(rows),
		"meta":    helper.BuildMeta(p, total),
	})
}

func (ctrl *TaskController) currentEmployee(c *fiber.Ctx) (*employeeModel.EmployeeModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	var emp employeeModel.EmployeeModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("employee_user_id = ? AND employee_is_active = ?", userID, true).
		Take(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Akun Anda tidak terhubung ke data karyawan")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat data karyawan")
	}
	return &emp, nil
}
