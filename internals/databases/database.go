package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"absensiwajah_backend/internals/configs"
)

var DB *gorm.DB

// ConnectDB buka koneksi sesuai DB_DRIVER. Hanya dipanggil kalau STUDENT_STORE=db.
func ConnectDB(cfg configs.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: configs.NewGormLogger(cfg.DBLogLevel)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "postgres", "postgresql":
		log.Println("🔌 Koneksi ke PostgreSQL...")
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  postgresDSN(cfg),
			PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
		}), gcfg)
	default:
		path := cfg.DBDSN
		if path == "" {
			path = cfg.SQLitePath()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir sqlite dir: %w", err)
		}
		log.Printf("🔌 Koneksi ke SQLite %s...", path)
		db, err = gorm.Open(sqlite.Open(path), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB (%s): %w", cfg.DBDriver, err)
	}
	DB = db
	log.Println("✅ DB connected.")
	return db, nil
}

func postgresDSN(cfg configs.Config) string {
	if cfg.DBDSN != "" {
		return cfg.DBDSN
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=absensiwajah&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		os.Getenv("DB_NAME"),
		getenv("DB_SSLMODE", "require"),
	)
}

func TunePool(db *gorm.DB, driver string) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	if driver != "postgres" && driver != "postgresql" {
		// sqlite: satu writer
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
