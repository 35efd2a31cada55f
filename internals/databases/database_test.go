package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Migrate dipakai lintas dialek: Postgres di produksi, SQLite di test.
// Skema (termasuk PK uuid tanpa default DB) harus bisa dibuat di keduanya.
func TestMigrateOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate_test?mode=memory&cache=shared"),
		&gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var n int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'index'
		AND name IN ('uq_attendances_open_session', 'uq_tasks_company_number')`).
		Scan(&n).Error)
	assert.Equal(t, int64(2), n)

	// idempoten: migrasi ulang di DB yang sama tidak boleh gagal
	require.NoError(t, Migrate(db))
}
