package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	database "absensiku_backend/internals/databases"
	"absensiku_backend/internals/features/attendance/attendance/model"
	employeeModel "absensiku_backend/internals/features/company/employees/model"
	erpClient "absensiku_backend/internals/features/erpsync/client"
	syncModel "absensiku_backend/internals/features/erpsync/model"
	erpService "absensiku_backend/internals/features/erpsync/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// =======================
// TEST FIXTURES
// =======================

// _txlock=immediate: transaksi langsung ambil write lock, jadi dua check-in
// paralel terserialisasi oleh SQLite (di Postgres peran ini dipegang index
// unik parsial).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000&_txlock=immediate",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, companyID uuid.UUID) *employeeModel.EmployeeModel {
	t.Helper()
	email := "dina@example.com"
	emp := &employeeModel.EmployeeModel{
		EmployeeCompanyID: companyID,
		EmployeeName:      "Dina",
		EmployeeEmail:     &email,
	}
	require.NoError(t, db.Create(emp).Error)
	return emp
}

func seedSyncConfig(t *testing.T, db *gorm.DB, companyID uuid.UUID, endpoint string) {
	t.Helper()
	cfg := &syncModel.SyncConfigModel{
		SyncConfigCompanyID:       companyID,
		SyncConfigEndpointURL:     endpoint,
		SyncConfigDatabase:        "odoo",
		SyncConfigUsername:        "api@absensiku.id",
		SyncConfigPassword:        "rahasia",
		SyncConfigLookupField:     syncModel.LookupEmail,
		SyncConfigRemoteCompanyID: 3,
		SyncConfigEnabled:         true,
	}
	require.NoError(t, db.Create(cfg).Error)
}

// fakeOdoo minimal: authenticate → uid, resolve karyawan → id 42,
// create absen → 101, tutup absen terbuka → write ok.
type fakeOdoo struct {
	srv *httptest.Server

	mu            sync.Mutex
	wroteCheckOut bool
}

func newFakeOdoo(t *testing.T) *fakeOdoo {
	t.Helper()
	f := &fakeOdoo{}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeOdoo) handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Params struct {
			Service string        `json:"service"`
			Args    []interface{} `json:"args"`
		} `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reply := func(result interface{}) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"jsonrpc": "2.0", "id": 1, "result": result})
	}

	if req.Params.Service == "common" {
		reply(7)
		return
	}

	args := req.Params.Args
	erpModel, _ := args[3].(string)
	action, _ := args[4].(string)

	switch {
	case erpModel == "hr.employee" && action == "search_read":
		reply([]map[string]interface{}{{"id": 42}})
	case erpModel == "hr.attendance" && action == "create":
		reply(101)
	case erpModel == "hr.attendance" && action == "search_read":
		reply([]map[string]interface{}{{"id": 101}})
	case erpModel == "hr.attendance" && action == "write":
		f.mu.Lock()
		f.wroteCheckOut = true
		f.mu.Unlock()
		reply(true)
	default:
		reply(nil)
	}
}

func (f *fakeOdoo) sawCheckOut() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wroteCheckOut
}

func newSvcWithErp(db *gorm.DB) *AttendanceService {
	erp := erpService.NewErpService(db, erpClient.NewRpc(2*time.Second))
	return NewAttendanceService(db, erp, 5*time.Second)
}

func reload(t *testing.T, db *gorm.DB, id uuid.UUID) *model.AttendanceModel {
	t.Helper()
	var row model.AttendanceModel
	require.NoError(t, db.Where("attendance_id = ?", id).Take(&row).Error)
	return &row
}

// =======================
// LIFECYCLE LOKAL
// =======================

func TestCheckInCheckOutLifecycle(t *testing.T) {
	db := newTestDB(t)
	companyID := uuid.New()
	emp := seedEmployee(t, db, companyID)
	svc := NewAttendanceService(db, nil, 0)
	ctx := context.Background()

	// check-in membuka sesi
	opened, err := svc.CheckIn(ctx, companyID, emp.EmployeeID)
	require.NoError(t, err)
	assert.Nil(t, opened.AttendanceCheckOut)

	active, err := svc.GetActive(ctx, emp.EmployeeID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, opened.AttendanceID, active.AttendanceID)

	// check-in kedua ditolak selama sesi masih terbuka
	_, err = svc.CheckIn(ctx, companyID, emp.EmployeeID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	// check-out menutup sesi
	closed, err := svc.CheckOut(ctx, companyID, emp.EmployeeID)
	require.NoError(t, err)
	assert.Equal(t, opened.AttendanceID, closed.AttendanceID)
	require.NotNil(t, closed.AttendanceCheckOut)
	assert.False(t, closed.AttendanceCheckOut.Before(closed.AttendanceCheckIn))

	active, err = svc.GetActive(ctx, emp.EmployeeID)
	require.NoError(t, err)
	assert.Nil(t, active)

	// check-out tanpa sesi terbuka
	_, err = svc.CheckOut(ctx, companyID, emp.EmployeeID)
	assert.ErrorIs(t, err, ErrNoActiveSession)

	rows, total, err := svc.List(ctx, emp.EmployeeID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, rows, 1)
}

func TestCheckInAfterCheckOutOpensNewSession(t *testing.T) {
	db := newTestDB(t)
	companyID := uuid.New()
	emp := seedEmployee(t, db, companyID)
	svc := NewAttendanceService(db, nil, 0)
	ctx := context.Background()

	first, err := svc.CheckIn(ctx, companyID, emp.EmployeeID)
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, companyID, emp.EmployeeID)
	require.NoError(t, err)

	second, err := svc.CheckIn(ctx, companyID, emp.EmployeeID)
	require.NoError(t, err)
	assert.NotEqual(t, first.AttendanceID, second.AttendanceID)

	_, total, err := svc.List(ctx, emp.EmployeeID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestConcurrentCheckInSingleWinner(t *testing.T) {
	db := newTestDB(t)
	companyID := uuid.New()
	emp := seedEmployee(t, db, companyID)
	svc := NewAttendanceService(db, nil, 0)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(context.Background(), companyID, emp.EmployeeID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, conflictCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, ErrAlreadyCheckedIn):
			conflictCount++
		default:
			t.Fatalf("error tak terduga: %v", err)
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, conflictCount)

	var open int64
	require.NoError(t, db.Model(&model.AttendanceModel{}).
		Where("attendance_employee_id = ? AND attendance_check_out IS NULL", emp.EmployeeID).
		Count(&open).Error)
	assert.Equal(t, int64(1), open)
}

// =======================
// SINKRONISASI ERP
// =======================

func TestSyncSkippedWhenNotConfigured(t *testing.T) {
	db := newTestDB(t)
	companyID := uuid.New()
	emp := seedEmployee(t, db, companyID)
	svc := newSvcWithErp(db)
	ctx := context.Background()

	row, err := svc.CheckIn(ctx, companyID, emp.EmployeeID)
	require.NoError(t, err)
	svc.Wait()

	got := reload(t, db, row.AttendanceID)
	assert.Nil(t, got.AttendanceErpID)
	assert.Nil(t, got.AttendanceSyncError)
}

func TestSyncFailureRecordedLocallySucceeds(t *testing.T) {
	db := newTestDB(t)
	companyID := uuid.New()
	emp := seedEmployee(t, db, companyID)
	seedSyncConfig(t, db, companyID, "http://127.0.0.1:1") // endpoint mati

	svc := newSvcWithErp(db)
	ctx := context.Background()

	// check-in lokal tetap sukses walau ERP tidak bisa dihubungi
	row, err := svc.CheckIn(ctx, companyID, emp.EmployeeID)
	require.NoError(t, err)
	svc.Wait()

	got := reload(t, db, row.AttendanceID)
	assert.Nil(t, got.AttendanceErpID)
	require.NotNil(t, got.AttendanceSyncError)
	assert.NotEmpty(t, *got.AttendanceSyncError)
	assert.Nil(t, got.AttendanceCheckOut) // sesi lokal tidak tersentuh
}

func TestSyncRecordsRemoteID(t *testing.T) {
	db := newTestDB(t)
	odoo := newFakeOdoo(t)
	companyID := uuid.New()
	emp := seedEmployee(t, db, companyID)
	seedSyncConfig(t, db, companyID, odoo.srv.URL)

	svc := newSvcWithErp(db)
	ctx := context.Background()

	row, err := svc.CheckIn(ctx, companyID, emp.EmployeeID)
	require.NoError(t, err)
	svc.Wait()

	got := reload(t, db, row.AttendanceID)
	require.NotNil(t, got.AttendanceErpID)
	assert.Equal(t, int64(101), *got.AttendanceErpID)
	assert.Nil(t, got.AttendanceSyncError)

	// check-out ikut diproyeksikan ke ERP
	_, err = svc.CheckOut(ctx, companyID, emp.EmployeeID)
	require.NoError(t, err)
	svc.Wait()

	got = reload(t, db, row.AttendanceID)
	require.NotNil(t, got.AttendanceCheckOut)
	assert.Nil(t, got.AttendanceSyncError)
	assert.True(t, odoo.sawCheckOut())
}
