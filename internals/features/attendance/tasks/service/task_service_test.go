package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	database "absensiku_backend/internals/databases"
	"absensiku_backend/internals/features/attendance/tasks/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createAssignedTask(t *testing.T, svc *TaskService, companyID, employeeID uuid.UUID) *model.TaskModel {
	t.Helper()
	row, err := svc.Create(context.Background(), CreateTaskInput{
		CompanyID:  companyID,
		EmployeeID: &employeeID,
		ProjectID:  uuid.New(),
		Title:      "Pasang rak gudang",
	})
	require.NoError(t, err)
	return row
}

// backdateStart menggeser task_started_at ke masa lalu supaya durasi bisa diuji.
func backdateStart(t *testing.T, db *gorm.DB, taskID uuid.UUID, d time.Duration) {
	t.Helper()
	require.NoError(t, db.Model(&model.TaskModel{}).
		Where("task_id = ?", taskID).
		Update("task_started_at", time.Now().Add(-d)).Error)
}

// =======================
// CREATE
// =======================

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	companyID := uuid.New()
	employeeID := uuid.New()

	first := createAssignedTask(t, svc, companyID, employeeID)
	second := createAssignedTask(t, svc, companyID, employeeID)

	assert.Equal(t, "TSK-00001", first.TaskNumber)
	assert.Equal(t, "TSK-00002", second.TaskNumber)

	// penomoran per company, bukan global
	other := createAssignedTask(t, svc, uuid.New(), employeeID)
	assert.Equal(t, "TSK-00001", other.TaskNumber)
}

func TestTaskNumberContinuesFromMax(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	companyID := uuid.New()
	employeeID := uuid.New()

	seeded := &model.TaskModel{
		TaskCompanyID: companyID,
		TaskNumber:    "TSK-00005",
		TaskProjectID: uuid.New(),
		TaskTitle:     "Task lama hasil import",
		TaskStatus:    model.TaskStatusDraft,
	}
	require.NoError(t, db.Create(seeded).Error)

	// lanjut dari nomor tertinggi, bukan dari jumlah baris
	next := createAssignedTask(t, svc, companyID, employeeID)
	assert.Equal(t, "TSK-00006", next.TaskNumber)

	// soft-delete tidak membuat nomor dipakai ulang
	require.NoError(t, db.Delete(next).Error)
	after, err := svc.Create(context.Background(), CreateTaskInput{
		CompanyID: companyID,
		ProjectID: uuid.New(),
		Title:     "Task setelah penghapusan",
	})
	require.NoError(t, err)
	assert.Equal(t, "TSK-00007", after.TaskNumber)
}

func TestDuplicateTaskNumberRejected(t *testing.T) {
	db := newTestDB(t)
	companyID := uuid.New()

	mk := func() *model.TaskModel {
		return &model.TaskModel{
			TaskCompanyID: companyID,
			TaskNumber:    "TSK-00001",
			TaskProjectID: uuid.New(),
			TaskTitle:     "Nomor kembar",
			TaskStatus:    model.TaskStatusDraft,
		}
	}
	require.NoError(t, db.Create(mk()).Error)

	// index unik per (company, nomor) menolak duplikat; pemenang race di
	// Create mengandalkan error ini untuk retry
	err := db.Create(mk()).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// company lain boleh memakai nomor yang sama
	other := mk()
	other.TaskCompanyID = uuid.New()
	assert.NoError(t, db.Create(other).Error)
}

func TestCreateDraftWithoutEmployee(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)

	row, err := svc.Create(context.Background(), CreateTaskInput{
		CompanyID: uuid.New(),
		ProjectID: uuid.New(),
		Title:     "Backlog tanpa penanggung jawab",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusDraft, row.TaskStatus)
	assert.Nil(t, row.TaskEmployeeID)
}

// =======================
// STATE MACHINE
// =======================

func TestApplyActionLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	companyID := uuid.New()
	employeeID := uuid.New()
	ctx := context.Background()

	task := createAssignedTask(t, svc, companyID, employeeID)
	assert.Equal(t, model.TaskStatusAssigned, task.TaskStatus)

	// iniciar: ASSIGNED → WORKING, started_at terisi
	started, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionStart)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusWorking, started.TaskStatus)
	require.NotNil(t, started.TaskStartedAt)

	// iniciar ulang: idempoten, started_at tidak berubah
	again, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionStart)
	require.NoError(t, err)
	assert.Equal(t, started.TaskStartedAt.Unix(), again.TaskStartedAt.Unix())

	// detener: no-op terdokumentasi selama WORKING
	paused, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionStop)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusWorking, paused.TaskStatus)

	// finalizar: WORKING → DONE
	done, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionFinish)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusDone, done.TaskStatus)
	require.NotNil(t, done.TaskFinishedAt)
	require.NotNil(t, done.TaskTotalHours)
}

func TestTotalHoursTwoDecimals(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	companyID := uuid.New()
	employeeID := uuid.New()
	ctx := context.Background()

	cases := []struct {
		elapsed time.Duration
		want    float64
	}{
		{2*time.Hour + 30*time.Minute, 2.50},
		{90 * time.Minute, 1.50},
		{15 * time.Minute, 0.25},
	}

	for _, tc := range cases {
		task := createAssignedTask(t, svc, companyID, employeeID)
		_, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionStart)
		require.NoError(t, err)
		backdateStart(t, db, task.TaskID, tc.elapsed)

		done, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionFinish)
		require.NoError(t, err)
		require.NotNil(t, done.TaskTotalHours)
		assert.InDelta(t, tc.want, *done.TaskTotalHours, 0.011, "elapsed=%s", tc.elapsed)
	}
}

func TestFinalizarIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	companyID := uuid.New()
	employeeID := uuid.New()
	ctx := context.Background()

	task := createAssignedTask(t, svc, companyID, employeeID)
	_, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionStart)
	require.NoError(t, err)
	backdateStart(t, db, task.TaskID, 90*time.Minute)

	first, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionFinish)
	require.NoError(t, err)

	// finalizar kedua: DONE tetap DONE, total_hours tidak dihitung ulang
	second, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionFinish)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusDone, second.TaskStatus)
	require.NotNil(t, second.TaskTotalHours)
	assert.Equal(t, *first.TaskTotalHours, *second.TaskTotalHours)
	assert.Equal(t, first.TaskFinishedAt.Unix(), second.TaskFinishedAt.Unix())
}

func TestFinalizarWithoutStart(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	employeeID := uuid.New()
	ctx := context.Background()

	task := createAssignedTask(t, svc, uuid.New(), employeeID)

	// langsung selesai tanpa pernah iniciar: durasi nol
	done, err := svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionFinish)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusDone, done.TaskStatus)
	require.NotNil(t, done.TaskTotalHours)
	assert.Equal(t, 0.0, *done.TaskTotalHours)
}

func TestInvalidActions(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	employeeID := uuid.New()
	ctx := context.Background()

	task := createAssignedTask(t, svc, uuid.New(), employeeID)

	// token tak dikenal
	_, err := svc.ApplyAction(ctx, task.TaskID, employeeID, "empezar")
	assert.ErrorIs(t, err, ErrInvalidAction)

	// detener sebelum iniciar
	_, err = svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionStop)
	assert.ErrorIs(t, err, ErrInvalidAction)

	// iniciar setelah DONE
	_, err = svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionFinish)
	require.NoError(t, err)
	_, err = svc.ApplyAction(ctx, task.TaskID, employeeID, model.TaskActionStart)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestTaskOwnedByOtherEmployeeNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	owner := uuid.New()
	intruder := uuid.New()
	ctx := context.Background()

	task := createAssignedTask(t, svc, uuid.New(), owner)

	_, err := svc.ApplyAction(ctx, task.TaskID, intruder, model.TaskActionStart)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.Get(ctx, task.TaskID, intruder)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestListScopedToEmployee(t *testing.T) {
	db := newTestDB(t)
	svc := NewTaskService(db)
	companyID := uuid.New()
	mine := uuid.New()
	theirs := uuid.New()
	ctx := context.Background()

	createAssignedTask(t, svc, companyID, mine)
	createAssignedTask(t, svc, companyID, mine)
	createAssignedTask(t, svc, companyID, theirs)

	rows, total, err := svc.ListByEmployee(ctx, mine, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)
}
