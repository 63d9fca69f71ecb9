package deps

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"absensiwajah_backend/internals/configs"
	ssService "absensiwajah_backend/internals/features/attendance/sessions/service"
	"absensiwajah_backend/internals/features/attendance/shared"
	"absensiwajah_backend/internals/features/attendance/storage"
	stRepo "absensiwajah_backend/internals/features/attendance/students/repository"
	stService "absensiwajah_backend/internals/features/attendance/students/service"
	sService "absensiwajah_backend/internals/features/attendance/subjects/service"
	sumService "absensiwajah_backend/internals/features/attendance/summary/service"
	trService "absensiwajah_backend/internals/features/attendance/training/service"
	opService "absensiwajah_backend/internals/features/operators/auth/service"
	ossHelper "absensiwajah_backend/internals/helpers/oss"
)

// Services semua service yang di-share antar route.
type Services struct {
	Layout     *storage.Layout
	Locks      *storage.Locks
	Subjects   *sService.Registry
	Students   *stService.Registry
	Samples    *trService.Store
	Aggregator *sumService.Aggregator
	Writer     *ssService.Writer
	Auth       *opService.Authenticator
	OSS        *ossHelper.OSSService // nil kalau ALI_OSS_* tidak diset
	Validator  *validator.Validate
}

// BuildServices rakit service dari config. db hanya dipakai kalau STUDENT_STORE=db.
func BuildServices(cfg configs.Config, db *gorm.DB) (*Services, error) {
	layout := storage.NewLayout(cfg.AttendanceDir())
	if err := layout.EnsureRoot(); err != nil {
		return nil, err
	}
	locks := storage.NewLocks()

	subjects := sService.NewRegistry(layout, locks)
	samples := trService.NewStore(cfg.TrainingImageDir(), cfg.TrainingModelPath())

	var repo stRepo.Repository
	switch cfg.StudentStore {
	case "db":
		if db == nil {
			return nil, fmt.Errorf("STUDENT_STORE=db tapi koneksi DB tidak ada")
		}
		gr := stRepo.NewGormRepository(db)
		if err := gr.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("migrate students: %w", err)
		}
		repo = gr
	default:
		repo = stRepo.NewCSVRepository(cfg.StudentCSVPath())
	}
	log.Printf("[INFO] student store: %s", cfg.StudentStore)

	students, err := stService.NewRegistry(repo, subjects, samples)
	if err != nil {
		return nil, fmt.Errorf("student registry: %w", err)
	}

	agg := sumService.NewAggregator(layout, locks, subjects)
	writer := ssService.NewWriter(layout, locks, agg)
	writer.Subjects = subjects
	writer.Students = students

	svc := &Services{
		Layout:     layout,
		Locks:      locks,
		Subjects:   subjects,
		Students:   students,
		Samples:    samples,
		Aggregator: agg,
		Writer:     writer,
		Auth:       opService.NewAuthenticator(cfg.OperatorUsername, cfg.OperatorPasswordHash, cfg.JWTSecret, cfg.JWTTTL),
		Validator:  shared.NewValidator(),
	}

	if ossHelper.Configured() {
		oss, err := ossHelper.NewOSSServiceFromEnv(cfg.OSSPrefix)
		if err != nil {
			log.Printf("[WARN] [OSS] arsip sesi nonaktif: %v", err)
		} else {
			svc.OSS = oss
			writer.Archiver = ossHelper.NewSessionArchiver(oss)
			log.Printf("[INFO] [OSS] arsip sesi aktif → bucket %s", oss.BucketName)
		}
	}
	return svc, nil
}
