package service

import (
	"log"
	"strings"

	"github.com/robfig/cron/v3"
)

// StartRefreshCron jalankan RefreshAll sesuai jadwal cron (SUMMARY_REFRESH_CRON).
// Jadwal kosong → tidak ada cron. Return *cron.Cron supaya main bisa Stop().
func StartRefreshCron(agg *Aggregator, schedule string) (*cron.Cron, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Printf("[SUMMARY-CRON] SUMMARY_REFRESH_CRON kosong, refresh terjadwal dimatikan")
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		rep, err := agg.RefreshAll()
		if err != nil {
			log.Printf("[SUMMARY-CRON] refresh gagal: %v", err)
			return
		}
		log.Printf("[SUMMARY-CRON] refreshed=%d skipped=%d failed=%d",
			len(rep.Refreshed), len(rep.Skipped), len(rep.Failed))
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[SUMMARY-CRON] started schedule=%q", schedule)
	c.Start()
	return c, nil
}
