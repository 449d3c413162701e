// Package cache provides file-based caching for resolved timetables and
// geolocation lookups, so repeated CLI invocations on the same day avoid
// redundant network requests.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aalrahma/athan/internal/geo"
	"github.com/aalrahma/athan/internal/prayer"
)

const (
	timesCacheFile = "times_%s.json" // keyed by hash
	geoCacheFile   = "geolocation.json"
	geoTTL         = 24 * time.Hour
)

// Cache is rooted at a directory and stores one file per (day, place,
// method) plus one geolocation file.
type Cache struct {
	dir string
}

// TimesEntry stores a day's resolved timetable along with the parameters
// that produced it.
type TimesEntry struct {
	Date   string                 `json:"date"` // YYYY-MM-DD
	Method int                    `json:"method"`
	Times  map[prayer.Name]string `json:"times"`
	Hijri  string                 `json:"hijri,omitempty"`
}

// geoEntry stores a cached geolocation result with a timestamp.
type geoEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to ~/.cache/athan/.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "athan")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

// cacheKey builds a deterministic hash from the parameters that affect
// the timetable, so different places and methods get separate files.
func cacheKey(date string, loc geo.Location, method int) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%s|%s|%d",
		date, loc.Latitude, loc.Longitude, loc.City, loc.Country, method)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}

// LoadTimes reads a cached timetable for the given parameters.
// Returns nil if the cache is missing, unreadable, or for another day.
func (c *Cache) LoadTimes(date time.Time, loc geo.Location, method int) (prayer.Times, string) {
	dateStr := date.Format("2006-01-02")
	path := filepath.Join(c.dir, fmt.Sprintf(timesCacheFile, cacheKey(dateStr, loc, method)))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ""
	}

	var entry TimesEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, ""
	}
	if entry.Date != dateStr {
		return nil, ""
	}

	times := make(prayer.Times, len(entry.Times))
	for name, raw := range entry.Times {
		clock, err := prayer.ParseClock(raw)
		if err != nil {
			return nil, ""
		}
		times[name] = clock
	}
	if !times.Complete() {
		return nil, ""
	}
	return times, entry.Hijri
}

// SaveTimes writes a resolved timetable to the cache.
func (c *Cache) SaveTimes(date time.Time, loc geo.Location, method int, times prayer.Times, hijri string) error {
	dateStr := date.Format("2006-01-02")
	path := filepath.Join(c.dir, fmt.Sprintf(timesCacheFile, cacheKey(dateStr, loc, method)))

	entry := TimesEntry{
		Date:   dateStr,
		Method: method,
		Times:  make(map[prayer.Name]string, len(times)),
		Hijri:  hijri,
	}
	for name, clock := range times {
		entry.Times[name] = clock.String()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// LoadGeo reads a cached geolocation result.
// Returns nil if missing or older than the 24h TTL.
func (c *Cache) LoadGeo() *geo.Location {
	data, err := os.ReadFile(filepath.Join(c.dir, geoCacheFile))
	if err != nil {
		return nil
	}

	var entry geoEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}
	if time.Since(entry.CachedAt) > geoTTL {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result to the cache.
func (c *Cache) SaveGeo(loc *geo.Location) error {
	entry := geoEntry{
		Location: *loc,
		CachedAt: time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal geo cache: %w", err)
	}

	if err := os.WriteFile(filepath.Join(c.dir, geoCacheFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write geo cache: %w", err)
	}

	return nil
}
