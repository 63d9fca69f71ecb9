package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"absensiwajah_backend/internals/configs"
	database "absensiwajah_backend/internals/databases"
	sumService "absensiwajah_backend/internals/features/attendance/summary/service"
	"absensiwajah_backend/internals/helpers/dbtime"
	ossHelper "absensiwajah_backend/internals/helpers/oss"
	middlewares "absensiwajah_backend/internals/middlewares"
	routes "absensiwajah_backend/internals/route"
	"absensiwajah_backend/internals/route/deps"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()
	dbtime.SetLocation(cfg.Timezone)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		// nama subject di path (mis. "Bahasa%20Inggris")
		UnescapePath: true,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ProxyHeader:  fiber.HeaderXForwardedFor,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app, cfg.Timezone)

	// 🔌 DB hanya kalau master siswa disimpan di database
	var db *gorm.DB
	if cfg.StudentStore == "db" {
		var err error
		db, err = database.ConnectDB(cfg)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		database.TunePool(db, cfg.DBDriver)
	}

	svc, err := deps.BuildServices(cfg, db)
	if err != nil {
		log.Fatalf("❌ Gagal inisialisasi service: %v", err)
	}

	// ⏱ scheduler
	refreshCron, err := sumService.StartRefreshCron(svc.Aggregator, cfg.SummaryRefreshCron)
	if err != nil {
		log.Fatalf("❌ SUMMARY_REFRESH_CRON tidak valid: %v", err)
	}
	reaperCron := ossHelper.StartArchiveReaperCron(svc.OSS, ossHelper.ArchiveReaperConfig{
		RetentionDays: cfg.ArchiveRetentionDays,
		CronSchedule:  cfg.ArchiveReaperCron,
		DryRun:        cfg.ArchiveReaperDryRun,
	})

	// ✅ Routes
	routes.SetupRoutes(app, db, svc, cfg.JWTSecret)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: server → cron → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if refreshCron != nil {
		<-refreshCron.Stop().Done()
	}
	if reaperCron != nil {
		<-reaperCron.Stop().Done()
	}
	database.Close(db)
	log.Println("👋 Server berhenti")
}
