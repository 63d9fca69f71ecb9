// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"log"
	"strings"
	"sync"
	"time"
)

// Zona waktu aplikasi: dipakai untuk CreatedAt katalog dan nama file sesi.
// Default Asia/Jakarta, fallback terakhir UTC.
const DefaultTimezone = "Asia/Jakarta"

var (
	mu     sync.RWMutex
	appLoc *time.Location
)

// SetLocation set zona dari nama IANA (APP_TIMEZONE). Nama kosong/tidak valid
// → Asia/Jakarta → UTC.
func SetLocation(name string) *time.Location {
	loc := resolve(name)
	mu.Lock()
	appLoc = loc
	mu.Unlock()
	return loc
}

func resolve(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		log.Printf("[WARN] timezone %q tidak dikenal, pakai %s", name, DefaultTimezone)
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Location zona aktif (lazy init ke default).
func Location() *time.Location {
	mu.RLock()
	loc := appLoc
	mu.RUnlock()
	if loc != nil {
		return loc
	}
	return SetLocation("")
}

// Now waktu sekarang di zona aplikasi.
func Now() time.Time {
	return time.Now().In(Location())
}

// ToAppTime konversi waktu (mis. mtime file / kolom DB UTC) ke zona aplikasi.
// t.IsZero() → dikembalikan apa adanya.
func ToAppTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Location())
}

// ParseInApp parse string layout di zona aplikasi.
func ParseInApp(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, strings.TrimSpace(value), Location())
}
