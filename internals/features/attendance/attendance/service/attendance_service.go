package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"absensiku_backend/internals/features/attendance/attendance/model"
	erpService "absensiku_backend/internals/features/erpsync/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error invariant lokal (409 di controller)
var (
	ErrAlreadyCheckedIn = errors.New("already checked in")
	ErrNoActiveSession  = errors.New("no active session")
)

// AttendanceService memegang lifecycle absen lokal.
// Kebenaran lokal TIDAK pernah bergantung pada ERP: commit dulu, response
// jalan, lalu sinkronisasi ERP berjalan sebagai task terpisah yang hanya
// boleh menulis balik attendance_erp_id / attendance_sync_error.
type AttendanceService struct {
	DB  *gorm.DB
	Erp *erpService.ErpService

	SyncTimeout time.Duration

	wg sync.WaitGroup
}

func NewAttendanceService(db *gorm.DB, erp *erpService.ErpService, syncTimeout time.Duration) *AttendanceService {
	if syncTimeout <= 0 {
		syncTimeout = 30 * time.Second
	}
	return &AttendanceService{DB: db, Erp: erp, SyncTimeout: syncTimeout}
}

// =======================
// CHECK-IN
// =======================

// CheckIn membuat sesi absen baru. Gagal dengan ErrAlreadyCheckedIn bila masih
// ada sesi terbuka (cek transaksional + index unik parsial sebagai jaring
// pengaman saat race).
func (s *AttendanceService) CheckIn(ctx context.Context, companyID, employeeID uuid.UUID) (*model.AttendanceModel, error) {
	row := model.AttendanceModel{
		AttendanceCompanyID:  companyID,
		AttendanceEmployeeID: employeeID,
		AttendanceCheckIn:    time.Now(),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open model.AttendanceModel
		err := tx.Where("attendance_employee_id = ? AND attendance_check_out IS NULL", employeeID).
			Take(&open).Error
		if err == nil {
			return ErrAlreadyCheckedIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&row).Error; err != nil {
			// race dua check-in bersamaan → index unik parsial menolak yang kalah
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyCheckedIn
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.spawnSync(row.AttendanceID, companyID, employeeID, erpService.DirectionCheckIn, row.AttendanceCheckIn)
	return &row, nil
}

// =======================
// CHECK-OUT
// =======================

// CheckOut menutup sesi terbuka. Gagal sinkronisasi ERP tidak pernah membuka
// kembali sesi lokal.
func (s *AttendanceService) CheckOut(ctx context.Context, companyID, employeeID uuid.UUID) (*model.AttendanceModel, error) {
	var row model.AttendanceModel
	now := time.Now()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("attendance_employee_id = ? AND attendance_check_out IS NULL", employeeID).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveSession
		}
		if err != nil {
			return err
		}

		row.AttendanceCheckOut = &now
		return tx.Model(&model.AttendanceModel{}).
			Where("attendance_id = ?", row.AttendanceID).
			Update("attendance_check_out", now).Error
	})
	if err != nil {
		return nil, err
	}

	s.spawnSync(row.AttendanceID, companyID, employeeID, erpService.DirectionCheckOut, now)
	return &row, nil
}

// GetActive mengembalikan sesi terbuka milik karyawan, atau nil.
func (s *AttendanceService) GetActive(ctx context.Context, employeeID uuid.UUID) (*model.AttendanceModel, error) {
	var row model.AttendanceModel
	err := s.DB.WithContext(ctx).
		Where("attendance_employee_id = ? AND attendance_check_out IS NULL", employeeID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List riwayat absen karyawan (terbaru dulu).
func (s *AttendanceService) List(ctx context.Context, employeeID uuid.UUID, limit, offset int) ([]model.AttendanceModel, int64, error) {
	var rows []model.AttendanceModel
	var total int64

	q := s.DB.WithContext(ctx).Model(&model.AttendanceModel{}).
		Where("attendance_employee_id = ?", employeeID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("attendance_check_in desc").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

// =======================
// SIDE-CHANNEL SYNC
// =======================

// spawnSync menjalankan satu attempt sinkronisasi sebagai goroutine terpisah.
// Hasilnya HANYA update kedua yang bounded pada baris yang sama; tidak ada
// retry otomatis di layer ini.
func (s *AttendanceService) spawnSync(attendanceID, companyID, employeeID uuid.UUID, direction string, ts time.Time) {
	if s.Erp == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.SyncTimeout)
		defer cancel()

		remoteID, err := s.Erp.SyncAttendance(ctx, companyID, employeeID, direction, ts)

		switch {
		case err == nil:
			updates := map[string]interface{}{"attendance_sync_error": nil}
			if remoteID != nil {
				updates["attendance_erp_id"] = *remoteID
			}
			s.recordSyncResult(attendanceID, updates)

		case errors.Is(err, erpService.ErrNotConfigured):
			// bukan error: company memang tidak mengaktifkan integrasi

		default:
			log.Printf("[WARNING] Sync ERP gagal (attendance=%s, arah=%s): %v", attendanceID, direction, err)
			s.recordSyncResult(attendanceID, map[string]interface{}{
				"attendance_sync_error": err.Error(),
			})
		}
	}()
}

// recordSyncResult memakai context sendiri: timeout attempt sync boleh saja
// sudah habis, tapi hasilnya tetap harus tercatat.
func (s *AttendanceService) recordSyncResult(attendanceID uuid.UUID, updates map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.DB.WithContext(ctx).Model(&model.AttendanceModel{}).
		Where("attendance_id = ?", attendanceID).
		Updates(updates).Error; err != nil {
		log.Printf("[ERROR] Gagal menyimpan status sync (attendance=%s): %v", attendanceID, err)
	}
}

// Wait menunggu semua goroutine sync selesai (dipakai graceful shutdown & test).
func (s *AttendanceService) Wait() {
	s.wg.Wait()
}
