package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	employeeModel "absensiku_backend/internals/features/company/employees/model"
	"absensiku_backend/internals/features/erpsync/client"
	"absensiku_backend/internals/features/erpsync/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Arah sinkronisasi
const (
	DirectionCheckIn  = "check_in"
	DirectionCheckOut = "check_out"
)

// Format timestamp yang diharapkan Odoo: naive, tanpa timezone.
const erpTimeLayout = "2006-01-02 15:04:05"

const defaultCodeField = "x_employee_code"

// RemoteSession: identitas hasil authenticate. Tidak pernah di-cache; tiap
// attempt sinkronisasi selalu authenticate ulang (aman saat rotasi kredensial).
type RemoteSession struct {
	UID int64
}

// ErpService memproyeksikan event absen lokal ke ERP via JSON-RPC.
// Stateless selain *gorm.DB (baca config & karyawan) dan transport.
type ErpService struct {
	DB  *gorm.DB
	Rpc *client.Rpc
}

func NewErpService(db *gorm.DB, rpc *client.Rpc) *ErpService {
	return &ErpService{DB: db, Rpc: rpc}
}

// =======================
// TOP-LEVEL ENTRY
// =======================

// SyncAttendance: entry point dipanggil AttendanceService setelah commit lokal.
// Return (remoteID, nil) untuk check-in sukses, (nil, nil) untuk check-out
// sukses, dan ErrNotConfigured bila company tidak punya config aktif.
func (s *ErpService) SyncAttendance(ctx context.Context, companyID, employeeID uuid.UUID, direction string, ts time.Time) (*int64, error) {
	cfg, err := s.activeConfig(ctx, companyID)
	if err != nil {
		return nil, err
	}

	emp, err := s.localEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	switch direction {
	case DirectionCheckIn:
		remoteID, err := s.SyncCheckIn(ctx, cfg, emp, ts)
		if err != nil {
			return nil, err
		}
		return &remoteID, nil
	case DirectionCheckOut:
		return nil, s.SyncCheckOut(ctx, cfg, emp, ts)
	default:
		return nil, &ConfigError{Message: "arah sinkronisasi tidak dikenal: " + direction}
	}
}

func (s *ErpService) activeConfig(ctx context.Context, companyID uuid.UUID) (*model.SyncConfigModel, error) {
	var cfg model.SyncConfigModel
	err := s.DB.WithContext(ctx).
		Where("sync_config_company_id = ? AND sync_config_enabled = ?", companyID, true).
		Take(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *ErpService) localEmployee(ctx context.Context, employeeID uuid.UUID) (*employeeModel.EmployeeModel, error) {
	var emp employeeModel.EmployeeModel
	err := s.DB.WithContext(ctx).Where("employee_id = ?", employeeID).Take(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{What: "karyawan lokal tidak ditemukan"}
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// =======================
// AUTHENTICATE
// =======================

// Authenticate memanggil common.authenticate. ERP menjawab uid (angka) atau
// false bila kredensial salah; payload error JSON-RPC dari authenticate juga
// diklasifikasikan sebagai kegagalan auth, bukan error remote generik.
func (s *ErpService) Authenticate(ctx context.Context, cfg *model.SyncConfigModel) (*RemoteSession, error) {
	args := []interface{}{cfg.SyncConfigDatabase, cfg.SyncConfigUsername, cfg.SyncConfigPassword, map[string]interface{}{}}

	var result interface{}
	if err := s.Rpc.Call(ctx, cfg.SyncConfigEndpointURL, "common", "authenticate", args, &result); err != nil {
		var remoteErr *client.RemoteError
		if errors.As(err, &remoteErr) {
			return nil, &AuthError{Message: remoteErr.Message}
		}
		return nil, err
	}

	uid, ok := result.(float64)
	if !ok || uid <= 0 {
		return nil, &AuthError{Message: "invalid credentials"}
	}
	return &RemoteSession{UID: int64(uid)}, nil
}

// =======================
// EMPLOYEE RESOLVER
// =======================

// lookupValue memetakan field lookup yang dikonfigurasi ke (field ERP, nilai lokal).
func (s *ErpService) lookupValue(cfg *model.SyncConfigModel, emp *employeeModel.EmployeeModel) (string, string, error) {
	var field string
	var value *string

	switch cfg.SyncConfigLookupField {
	case model.LookupEmail:
		field, value = "work_email", emp.EmployeeEmail
	case model.LookupNationalID:
		field, value = "identification_id", emp.EmployeeNationalID
	case model.LookupCode:
		field, value = s.codeField(cfg), emp.EmployeeCode
	default:
		return "", "", &ConfigError{Message: "lookup field tidak dikenal: " + cfg.SyncConfigLookupField}
	}

	if value == nil || *value == "" {
		return "", "", &ConfigError{Message: "karyawan tidak punya nilai untuk lookup field " + cfg.SyncConfigLookupField}
	}
	return field, *value, nil
}

// codeField membaca nama custom field dari sync_config_extra, default x_employee_code.
func (s *ErpService) codeField(cfg *model.SyncConfigModel) string {
	if len(cfg.SyncConfigExtra) > 0 {
		var extra struct {
			CodeField string `json:"code_field"`
		}
		if err := json.Unmarshal(cfg.SyncConfigExtra, &extra); err == nil && extra.CodeField != "" {
			return extra.CodeField
		}
	}
	return defaultCodeField
}

// ResolveEmployee mencari id karyawan di ERP berdasarkan lookup field,
// dibatasi ke company remote + karyawan aktif.
func (s *ErpService) ResolveEmployee(ctx context.Context, cfg *model.SyncConfigModel, session *RemoteSession, emp *employeeModel.EmployeeModel) (int64, error) {
	field, value, err := s.lookupValue(cfg, emp)
	if err != nil {
		return 0, err
	}

	domain := []interface{}{
		[]interface{}{field, "=", value},
		[]interface{}{"company_id", "=", cfg.SyncConfigRemoteCompanyID},
		[]interface{}{"active", "=", true},
	}
	kwargs := map[string]interface{}{
		"fields": []string{"id"},
		"limit":  1,
	}

	var rows []struct {
		ID int64 `json:"id"`
	}
	if err := s.executeKw(ctx, cfg, session, "hr.employee", "search_read", []interface{}{domain}, kwargs, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, &NotFoundError{
			What:            "karyawan tidak ditemukan di ERP",
			LookupField:     field,
			LookupValue:     value,
			RemoteCompanyID: cfg.SyncConfigRemoteCompanyID,
		}
	}
	return rows[0].ID, nil
}

// =======================
// CHECK-IN / CHECK-OUT
// =======================

// SyncCheckIn: authenticate → resolve → create hr.attendance. Return id remote.
func (s *ErpService) SyncCheckIn(ctx context.Context, cfg *model.SyncConfigModel, emp *employeeModel.EmployeeModel, ts time.Time) (int64, error) {
	session, err := s.Authenticate(ctx, cfg)
	if err != nil {
		return 0, err
	}

	remoteEmpID, err := s.ResolveEmployee(ctx, cfg, session, emp)
	if err != nil {
		return 0, err
	}

	values := map[string]interface{}{
		"employee_id": remoteEmpID,
		"check_in":    erpTime(ts),
	}
	var remoteID int64
	if err := s.executeKw(ctx, cfg, session, "hr.attendance", "create", []interface{}{values}, nil, &remoteID); err != nil {
		return 0, err
	}
	return remoteID, nil
}

// SyncCheckOut: authenticate → resolve → cari baris absen remote yang masih
// terbuka → write check_out. Tidak adanya baris terbuka adalah drift yang sah
// (mis. integrasi baru aktif setelah check-in) dan dilaporkan sebagai NotFoundError.
func (s *ErpService) SyncCheckOut(ctx context.Context, cfg *model.SyncConfigModel, emp *employeeModel.EmployeeModel, ts time.Time) error {
	session, err := s.Authenticate(ctx, cfg)
	if err != nil {
		return err
	}

	remoteEmpID, err := s.ResolveEmployee(ctx, cfg, session, emp)
	if err != nil {
		return err
	}

	domain := []interface{}{
		[]interface{}{"employee_id", "=", remoteEmpID},
		[]interface{}{"check_out", "=", false},
	}
	kwargs := map[string]interface{}{
		"fields": []string{"id"},
		"limit":  1,
		"order":  "check_in desc",
	}
	var rows []struct {
		ID int64 `json:"id"`
	}
	if err := s.executeKw(ctx, cfg, session, "hr.attendance", "search_read", []interface{}{domain}, kwargs, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return &NotFoundError{What: "tidak ada absen ERP yang masih terbuka"}
	}

	writeArgs := []interface{}{
		[]int64{rows[0].ID},
		map[string]interface{}{"check_out": erpTime(ts)},
	}
	var ok bool
	return s.executeKw(ctx, cfg, session, "hr.attendance", "write", writeArgs, nil, &ok)
}

// executeKw membungkus object.execute_kw(db, uid, pass, model, action, args, kwargs).
func (s *ErpService) executeKw(ctx context.Context, cfg *model.SyncConfigModel, session *RemoteSession, erpModel, action string, args []interface{}, kwargs map[string]interface{}, out interface{}) error {
	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}
	callArgs := []interface{}{
		cfg.SyncConfigDatabase,
		session.UID,
		cfg.SyncConfigPassword,
		erpModel,
		action,
		args,
		kwargs,
	}
	return s.Rpc.Call(ctx, cfg.SyncConfigEndpointURL, "object", "execute_kw", callArgs, out)
}

func erpTime(ts time.Time) string {
	return ts.UTC().Format(erpTimeLayout)
}
