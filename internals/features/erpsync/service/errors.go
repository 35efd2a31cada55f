package service

import (
	"errors"
	"fmt"
)

// ErrNotConfigured: company belum mengaktifkan integrasi ERP.
// Ini BUKAN kondisi error bagi check-in/check-out lokal; caller wajib swallow.
var ErrNotConfigured = errors.New("integrasi ERP tidak dikonfigurasi")

// AuthError: kredensial ERP ditolak (uid kosong/false dari common.authenticate).
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return "ERP auth gagal: " + e.Message }

// ConfigError: konfigurasi lookup tidak bisa dipakai, mis. karyawan lokal
// tidak punya field yang dijadikan kunci pencarian.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return "konfigurasi sync tidak valid: " + e.Message }

// NotFoundError: pencarian di ERP tidak menemukan baris yang diharapkan.
// Membawa field/value/company supaya operator bisa diagnosa salah konfigurasi.
type NotFoundError struct {
	What            string
	LookupField     string
	LookupValue     string
	RemoteCompanyID int64
}

func (e *NotFoundError) Error() string {
	if e.LookupField != "" {
		return fmt.Sprintf("%s (lookup %s=%q, company=%d)", e.What, e.LookupField, e.LookupValue, e.RemoteCompanyID)
	}
	return e.What
}
