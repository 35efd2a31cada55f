package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"absensiku_backend/internals/features/attendance/tasks/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound dipakai juga saat task milik karyawan lain, sengaja
	// bukan 403 supaya tidak membocorkan keberadaan task orang lain.
	ErrTaskNotFound  = errors.New("task tidak ditemukan")
	ErrInvalidAction = errors.New("aksi task tidak dikenal atau tidak diizinkan")
)

type TaskService struct {
	DB *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{DB: db}
}

// =======================
// CREATE / READ
// =======================

type CreateTaskInput struct {
	CompanyID   uuid.UUID
	EmployeeID  *uuid.UUID
	ProjectID   uuid.UUID
	Title       string
	Description *string
}

// Penomoran bisa kalah race saat dua create berjalan bersamaan di company yang
// sama; index unik uq_tasks_company_number menolak yang kalah dan kita coba ulang.
const maxNumberAttempts = 3

// Create membuat task DRAFT (tanpa karyawan) atau ASSIGNED (dengan karyawan).
// Nomor task monoton per company: MAX(nomor) + 1, dihitung di dalam transaksi
// create. Baris soft-delete ikut dihitung supaya nomor tidak pernah dipakai ulang.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*model.TaskModel, error) {
	row := model.TaskModel{
		TaskCompanyID:   in.CompanyID,
		TaskEmployeeID:  in.EmployeeID,
		TaskProjectID:   in.ProjectID,
		TaskTitle:       in.Title,
		TaskDescription: in.Description,
		TaskStatus:      model.TaskStatusDraft,
	}
	if in.EmployeeID != nil {
		row.TaskStatus = model.TaskStatusAssigned
	}

	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var last int64
			if err := tx.Unscoped().Model(&model.TaskModel{}).
				Where("task_company_id = ?", in.CompanyID).
				Select("COALESCE(MAX(CAST(SUBSTR(task_number, 5) AS INTEGER)), 0)").
				Scan(&last).Error; err != nil {
				return err
			}
			row.TaskNumber = fmt.Sprintf("TSK-%05d", last+1)
			return tx.Create(&row).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Get mengembalikan task milik karyawan; milik orang lain = tidak ditemukan.
func (s *TaskService) Get(ctx context.Context, taskID, callerID uuid.UUID) (*model.TaskModel, error) {
	var row model.TaskModel
	err := s.DB.WithContext(ctx).
		Where("task_id = ? AND task_employee_id = ?", taskID, callerID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *TaskService) ListByEmployee(ctx context.Context, callerID uuid.UUID, limit, offset int) ([]model.TaskModel, int64, error) {
	var rows []model.TaskModel
	var total int64

	q := s.DB.WithContext(ctx).Model(&model.TaskModel{}).
		Where("task_employee_id = ?", callerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

// =======================
// STATE MACHINE
// =======================

// ApplyAction menjalankan satu token aksi pada task milik caller.
//
//	DRAFT/ASSIGNED --iniciar--> WORKING (started_at diisi sekali)
//	WORKING --detener--> WORKING (no-op terdokumentasi, tanpa mutasi)
//	* (selain DONE) --finalizar--> DONE (finished_at + total_hours, sekali saja)
func (s *TaskService) ApplyAction(ctx context.Context, taskID, callerID uuid.UUID, action string) (*model.TaskModel, error) {
	var row model.TaskModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("task_id = ? AND task_employee_id = ?", taskID, callerID).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}

		switch action {
		case model.TaskActionStart:
			return s.applyStart(tx, &row)
		case model.TaskActionStop:
			// perilaku lama: pause tidak mengubah apa pun
			if row.TaskStatus != model.TaskStatusWorking {
				return ErrInvalidAction
			}
			return nil
		case model.TaskActionFinish:
			return s.applyFinish(tx, &row)
		default:
			return ErrInvalidAction
		}
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *TaskService) applyStart(tx *gorm.DB, row *model.TaskModel) error {
	switch row.TaskStatus {
	case model.TaskStatusDraft, model.TaskStatusAssigned:
		// lanjut ke WORKING
	case model.TaskStatusWorking:
		if row.TaskStartedAt != nil {
			return nil // idempoten
		}
	default:
		return ErrInvalidAction
	}

	updates := map[string]interface{}{"task_status": model.TaskStatusWorking}
	row.TaskStatus = model.TaskStatusWorking
	if row.TaskStartedAt == nil {
		now := time.Now()
		row.TaskStartedAt = &now
		updates["task_started_at"] = now
	}
	return tx.Model(&model.TaskModel{}).
		Where("task_id = ?", row.TaskID).
		Updates(updates).Error
}

func (s *TaskService) applyFinish(tx *gorm.DB, row *model.TaskModel) error {
	if row.TaskStatus == model.TaskStatusDone {
		return nil // idempoten: total_hours tidak dihitung ulang
	}

	now := time.Now()
	effectiveStart := now
	if row.TaskStartedAt != nil {
		effectiveStart = *row.TaskStartedAt
	}
	total := roundHours(now.Sub(effectiveStart))

	row.TaskStatus = model.TaskStatusDone
	row.TaskFinishedAt = &now
	row.TaskTotalHours = &total

	return tx.Model(&model.TaskModel{}).
		Where("task_id = ?", row.TaskID).
		Updates(map[string]interface{}{
			"task_status":      model.TaskStatusDone,
			"task_finished_at": now,
			"task_total_hours": total,
		}).Error
}

// roundHours: durasi → jam desimal, 2 angka di belakang koma.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
