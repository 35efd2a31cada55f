package database

import (
	"fmt"
	"log"
	"os"
	"time"

	attendanceModel "absensiku_backend/internals/features/attendance/attendance/model"
	taskModel "absensiku_backend/internals/features/attendance/tasks/model"
	companyModel "absensiku_backend/internals/features/company/companies/model"
	employeeModel "absensiku_backend/internals/features/company/employees/model"
	projectModel "absensiku_backend/internals/features/company/projects/model"
	syncModel "absensiku_backend/internals/features/erpsync/model"
	userModel "absensiku_backend/internals/features/users/auth/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=absensiku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		TranslateError: true, // duplicate key → gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARNING] Tidak bisa akses pool: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// Migrate menjalankan AutoMigrate semua model + index unik parsial yang
// menjaga invariant "satu sesi absen terbuka per karyawan".
// Dipakai juga oleh test (SQLite in-memory), jadi SQL-nya harus portable.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&companyModel.CompanyModel{},
		&userModel.UserModel{},
		&employeeModel.EmployeeModel{},
		&projectModel.ProjectModel{},
		&attendanceModel.AttendanceModel{},
		&taskModel.TaskModel{},
		&syncModel.SyncConfigModel{},
	); err != nil {
		return err
	}

	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendances_open_session
		ON attendances (attendance_employee_id)
		WHERE attendance_check_out IS NULL`).Error; err != nil {
		return err
	}

	// Nomor task unik per company; penomoran di service retry saat kalah race.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_tasks_company_number
		ON tasks (task_company_id, task_number)`).Error
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
