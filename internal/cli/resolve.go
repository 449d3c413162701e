package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/aalrahma/athan/internal/api"
	"github.com/aalrahma/athan/internal/cache"
	"github.com/aalrahma/athan/internal/config"
	"github.com/aalrahma/athan/internal/geo"
	"github.com/aalrahma/athan/internal/prayer"
	"github.com/aalrahma/athan/internal/source"
)

// openCache initializes the cache; failure disables caching instead of
// failing the command.
func openCache(cfg *config.Config) *cache.Cache {
	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		return nil
	}
	return c
}

// resolveLocation determines the effective location. Explicit coordinates
// win outright; otherwise the coordinates come from the cached
// geolocation, then IP auto-detect, then the built-in default (Riyadh),
// while a configured city/country overrides the place labels for the
// remote lookup. It always yields a location, matching the "always
// produce an answer" contract.
func resolveLocation(ctx context.Context, cfg *config.Config, c *cache.Cache) geo.Location {
	if cfg.Latitude != 0 || cfg.Longitude != 0 {
		return geo.Location{
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
			City:      cfg.City,
			Country:   cfg.Country,
		}
	}

	loc := coordinates(ctx, cfg, c)
	if cfg.City != "" && cfg.Country != "" {
		loc.City = cfg.City
		loc.Country = cfg.Country
	}
	return loc
}

// coordinates finds usable coordinates when none were configured.
func coordinates(ctx context.Context, cfg *config.Config, c *cache.Cache) geo.Location {
	if c != nil {
		if cached := c.LoadGeo(); cached != nil {
			return *cached
		}
	}

	if config.BoolOrDefault(cfg.AutoLocation, true) {
		if detected, err := geo.Detect(ctx); err == nil {
			if c != nil {
				_ = c.SaveGeo(detected) // best-effort
			}
			return *detected
		}
	}

	return geo.DefaultLocation
}

// tierCache marks a timetable served from the local file cache rather
// than the resolver chain.
const tierCache source.Tier = "cache"

// resolveTimes returns today's timetable, consulting the cache before
// the fallback chain, and writing resolved tables back.
func resolveTimes(ctx context.Context, cfg *config.Config, c *cache.Cache, loc geo.Location) (prayer.Times, source.Tier) {
	method := prayer.MethodByID(cfg.MethodOrDefault(prayer.DefaultMethod.ID))
	now := time.Now()

	if c != nil {
		if times, _ := c.LoadTimes(now, loc, method.ID); times != nil {
			return times, tierCache
		}
	}

	src := source.New(api.NewClient(), zerolog.Nop())
	times, tier := src.Resolve(ctx, loc, method)

	// Only remote results are worth caching: computed and default tables
	// are cheaper to redo than to read back.
	if c != nil && tier == source.TierRemote {
		_ = c.SaveTimes(now, loc, method.ID, times, "") // best-effort
	}

	return times, tier
}

// fetchHijri returns today's Hijri date string, or "" when the lookup
// fails. Display-only, so failures are silent. A fetched date is written
// back into the day's cache entry so later invocations skip the lookup.
func fetchHijri(ctx context.Context, client *api.Client, c *cache.Cache, loc geo.Location, cfg *config.Config, times prayer.Times) string {
	now := time.Now()
	method := cfg.MethodOrDefault(prayer.DefaultMethod.ID)

	if c != nil {
		if _, hijri := c.LoadTimes(now, loc, method); hijri != "" {
			return hijri
		}
	}

	hijri, err := client.HijriDate(ctx, now)
	if err != nil {
		return ""
	}

	formatted := hijri.Format()
	if c != nil && formatted != "" && times.Complete() {
		_ = c.SaveTimes(now, loc, method, times, formatted) // best-effort
	}
	return formatted
}
