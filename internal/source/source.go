// Package source resolves a day's prayer times through a prioritized
// fallback chain: remote lookup, then local astronomical computation,
// then a static default table. Resolve always produces a table; failures
// of one tier move the chain along instead of reaching the caller.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aalrahma/athan/internal/api"
	"github.com/aalrahma/athan/internal/astro"
	"github.com/aalrahma/athan/internal/geo"
	"github.com/aalrahma/athan/internal/prayer"
)

// Fetcher is the remote lookup collaborator. *api.Client satisfies it;
// tests inject failures through it.
type Fetcher interface {
	TimingsByCity(ctx context.Context, date time.Time, city, country string, method int) (*api.Response, error)
}

// Tier identifies which step of the fallback chain satisfied a request.
type Tier string

const (
	TierRemote   Tier = "remote"
	TierComputed Tier = "computed"
	TierDefaults Tier = "defaults"
)

// DefaultTimes is the static fallback table for Riyadh, returned when
// both the remote lookup and the local computation fail.
var DefaultTimes = prayer.Times{
	prayer.Fajr:    {Hour: 5, Minute: 15},
	prayer.Sunrise: {Hour: 6, Minute: 35},
	prayer.Dhuhr:   {Hour: 12, Minute: 10},
	prayer.Asr:     {Hour: 15, Minute: 25},
	prayer.Maghrib: {Hour: 17, Minute: 45},
	prayer.Isha:    {Hour: 19, Minute: 15},
}

// Source orchestrates the fallback chain.
type Source struct {
	fetcher Fetcher
	now     func() time.Time
	log     zerolog.Logger
}

// New creates a Source using the given remote fetcher.
func New(fetcher Fetcher, log zerolog.Logger) *Source {
	return &Source{
		fetcher: fetcher,
		now:     time.Now,
		log:     log,
	}
}

// WithClock overrides the time source. For tests.
func (s *Source) WithClock(now func() time.Time) *Source {
	s.now = now
	return s
}

// Resolve returns today's prayer times for the given place. It never
// fails: transport errors, malformed payloads, and polar calculation
// anomalies all fall through to the next tier, ending at the static
// default table. The satisfying tier is logged and returned for
// diagnostics.
func (s *Source) Resolve(ctx context.Context, loc geo.Location, method prayer.Method) (prayer.Times, Tier) {
	if times, err := s.remote(ctx, loc.City, loc.Country, method); err == nil {
		s.log.Debug().Str("tier", string(TierRemote)).Str("city", loc.City).Msg("prayer times resolved")
		return times, TierRemote
	} else {
		s.log.Warn().Err(err).Msg("remote lookup failed, computing locally")
	}

	if times, err := astro.ComputeTimes(s.now(), loc.Latitude, loc.Longitude, method); err == nil {
		s.log.Debug().Str("tier", string(TierComputed)).Float64("lat", loc.Latitude).Msg("prayer times resolved")
		return times, TierComputed
	} else {
		s.log.Warn().Err(err).Msg("local computation failed, using defaults")
	}

	return DefaultTimes, TierDefaults
}

// remote performs the city lookup and validates the response. A response
// missing any of the six times, or carrying an unparseable one, counts
// as a failure.
func (s *Source) remote(ctx context.Context, city, country string, method prayer.Method) (prayer.Times, error) {
	if city == "" || country == "" {
		return nil, fmt.Errorf("no city/country for remote lookup")
	}

	resp, err := s.fetcher.TimingsByCity(ctx, s.now(), city, country, method.ID)
	if err != nil {
		return nil, err
	}

	return TimesFromTimings(resp.Data.Timings)
}

// TimesFromTimings converts an API timings payload into a complete table.
func TimesFromTimings(t api.Timings) (prayer.Times, error) {
	raw := map[prayer.Name]string{
		prayer.Fajr:    t.Fajr,
		prayer.Sunrise: t.Sunrise,
		prayer.Dhuhr:   t.Dhuhr,
		prayer.Asr:     t.Asr,
		prayer.Maghrib: t.Maghrib,
		prayer.Isha:    t.Isha,
	}

	times := make(prayer.Times, len(raw))
	for name, v := range raw {
		if v == "" {
			return nil, fmt.Errorf("response missing %s time", name)
		}
		c, err := prayer.ParseClock(v)
		if err != nil {
			return nil, fmt.Errorf("bad %s time: %w", name, err)
		}
		times[name] = c
	}
	return times, nil
}
