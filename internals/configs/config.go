package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var JWTSecret string

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// GetEnvInt membaca env sebagai integer, fallback ke default jika kosong/invalid.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// ErpRequestTimeout: batas waktu satu panggilan JSON-RPC ke ERP.
func ErpRequestTimeout() time.Duration {
	return time.Duration(GetEnvInt("ERP_REQUEST_TIMEOUT_SECONDS", 10)) * time.Second
}

// ErpSyncTimeout: batas waktu total satu attempt sinkronisasi (auth + resolve + write).
func ErpSyncTimeout() time.Duration {
	return time.Duration(GetEnvInt("ERP_SYNC_TIMEOUT_SECONDS", 30)) * time.Second
}
