package configs

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret string
)

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
		log.Println("⚠️ JWT_SECRET belum diset, endpoint admin TANPA auth!")
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

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[CONFIG] %s=%q bukan angka, pakai default %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

// =======================
// TYPED CONFIG
// =======================

type Config struct {
	Port        string
	DataDir     string
	Timezone    string
	BodyLimitMB int

	StudentStore string // csv | db
	DBDriver     string // sqlite | postgres
	DBDSN        string
	DBLogLevel   string

	JWTSecret            string
	JWTTTL               time.Duration
	OperatorUsername     string
	OperatorPasswordHash string

	SummaryRefreshCron string

	OSSPrefix            string
	ArchiveRetentionDays int
	ArchiveReaperCron    string
	ArchiveReaperDryRun  bool
}

// Path turunan DATA_DIR.
func (c Config) AttendanceDir() string     { return filepath.Join(c.DataDir, "Attendance") }
func (c Config) StudentCSVPath() string    { return filepath.Join(c.DataDir, "StudentDetails", "studentdetails.csv") }
func (c Config) TrainingImageDir() string  { return filepath.Join(c.DataDir, "TrainingImage") }
func (c Config) TrainingModelPath() string { return filepath.Join(c.DataDir, "TrainingImageLabel", "Trainner.yml") }
func (c Config) SQLitePath() string        { return filepath.Join(c.DataDir, "absensi.db") }

func Load() Config {
	cfg := Config{
		Port:        GetEnv("PORT", "3000"),
		DataDir:     GetEnv("DATA_DIR", "./data"),
		Timezone:    GetEnv("APP_TIMEZONE", "Asia/Jakarta"),
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 20),

		StudentStore: strings.ToLower(GetEnv("STUDENT_STORE", "csv")),
		DBDriver:     strings.ToLower(GetEnv("DB_DRIVER", "sqlite")),
		DBDSN:        GetEnv("DB_DSN"),
		DBLogLevel:   strings.ToLower(GetEnv("DB_LOG_LEVEL", "warn")),

		JWTSecret:            GetEnv("JWT_SECRET"),
		JWTTTL:               time.Duration(getEnvInt("JWT_TTL_HOURS", 12)) * time.Hour,
		OperatorUsername:     GetEnv("OPERATOR_USERNAME", "admin"),
		OperatorPasswordHash: GetEnv("OPERATOR_PASSWORD_HASH"),

		SummaryRefreshCron: GetEnv("SUMMARY_REFRESH_CRON"),

		OSSPrefix:            GetEnv("ALI_OSS_PREFIX", "absensi"),
		ArchiveRetentionDays: getEnvInt("ARCHIVE_RETENTION_DAYS", 0),
		ArchiveReaperCron:    GetEnv("ARCHIVE_REAPER_CRON", "15 2 * * *"),
		ArchiveReaperDryRun:  getEnvBool("ARCHIVE_REAPER_DRY_RUN", false),
	}
	if cfg.StudentStore != "db" {
		cfg.StudentStore = "csv"
	}
	if cfg.BodyLimitMB <= 0 {
		cfg.BodyLimitMB = 20
	}
	return cfg
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(level string) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      ParseGormLogLevel(level),
	}
}

func ParseGormLogLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
