package helper

import (
	"context"
	"log"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/robfig/cron/v3"
)

// ArchiveReaperConfig retensi arsip sesi di OSS. RetentionDays 0 = simpan selamanya.
type ArchiveReaperConfig struct {
	Prefix        string
	RetentionDays int
	CronSchedule  string
	DryRun        bool
}

// ── ENTRYPOINT: panggil dari main.go
func StartArchiveReaperCron(svc *OSSService, cfg ArchiveReaperConfig) *cron.Cron {
	if svc == nil || cfg.RetentionDays <= 0 {
		log.Printf("[ARCHIVE-REAPER] nonaktif (oss=%v retention=%dd)", svc != nil, cfg.RetentionDays)
		return nil
	}
	if cfg.CronSchedule == "" {
		cfg.CronSchedule = "15 2 * * *"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = svc.ObjectKey("sessions") + "/"
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		if err := runArchiveReaper(ctx, svc, cfg.Prefix, retention, cfg.DryRun); err != nil {
			log.Printf("[ARCHIVE-REAPER] error: %v", err)
		}
	})
	if err != nil {
		log.Printf("[ARCHIVE-REAPER] add cron gagal: %v", err)
		return nil
	}
	log.Printf("[ARCHIVE-REAPER] started schedule=%q prefix=%q retention=%dd dryRun=%v",
		cfg.CronSchedule, cfg.Prefix, cfg.RetentionDays, cfg.DryRun)
	c.Start()
	return c
}

func runArchiveReaper(ctx context.Context, svc *OSSService, prefix string, retention time.Duration, dryRun bool) error {
	threshold := time.Now().Add(-retention)
	log.Printf("[ARCHIVE-REAPER] scanning prefix=%q threshold=%s dry=%v", prefix, threshold.Format(time.RFC3339), dryRun)

	marker := oss.Marker("")
	var keysToDelete []string
	total := 0

	for {
		lor, err := svc.Bucket.ListObjects(oss.Prefix(prefix), marker, oss.MaxKeys(1000), oss.WithContext(ctx))
		if err != nil {
			return err
		}
		for _, obj := range lor.Objects {
			total++
			if obj.Key != "" && obj.LastModified.Before(threshold) {
				keysToDelete = append(keysToDelete, obj.Key)
			}
		}
		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}

	if len(keysToDelete) == 0 {
		log.Printf("[ARCHIVE-REAPER] nothing to delete; scanned=%d under %q", total, prefix)
		return nil
	}
	if dryRun {
		log.Printf("[ARCHIVE-REAPER] DRY-RUN would delete %d/%d objects under %q", len(keysToDelete), total, prefix)
		return nil
	}

	deleted := 0
	for i := 0; i < len(keysToDelete); i += 1000 {
		end := i + 1000
		if end > len(keysToDelete) {
			end = len(keysToDelete)
		}
		if err := svc.DeleteObjects(ctx, keysToDelete[i:end]); err != nil {
			log.Printf("[ARCHIVE-REAPER] delete batch %d-%d gagal: %v", i, end, err)
			continue
		}
		deleted += end - i
	}
	log.Printf("[ARCHIVE-REAPER] deleted %d objects (scanned=%d) under %q", deleted, total, prefix)
	return nil
}
