package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aalrahma/athan/internal/geo"
	"github.com/aalrahma/athan/internal/prayer"
	"github.com/aalrahma/athan/internal/source"
)

// Clock supplies the current time. Substituted in tests for determinism.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Notifier delivers a prayer alert. Fire-and-forget: the driver decides
// when to notify, never how the alert is rendered.
type Notifier interface {
	Notify(name prayer.Name)
}

// Resolver produces a day's timetable. *source.Source satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, loc geo.Location, m prayer.Method) (prayer.Times, source.Tier)
}

// Hooks are optional cadence callbacks the driver invokes from its loop.
type Hooks struct {
	// Upcoming is called once per minute with the next prayer.
	Upcoming func(u Upcoming)
	// Hourly runs once per hour (weather refresh).
	Hourly func(ctx context.Context)
	// Midnight runs when the calendar day changes (Hijri refresh,
	// statistics rollover).
	Midnight func(ctx context.Context)
}

// tableUpdate carries a resolved table from a background lookup back to
// the driver loop. gen correlates the result with the location it was
// requested for.
type tableUpdate struct {
	gen   int
	times prayer.Times
	tier  source.Tier
	day   time.Time
}

// Driver owns the scheduler and the notification gate and runs them at
// the contract cadence: once per minute for next-prayer and notification
// logic, hourly and daily for the auxiliary hooks. All state is touched
// only from the Run loop; the one concurrent input, SetLocation, is
// serialized behind a mutex and takes effect on the next tick.
type Driver struct {
	clock    Clock
	resolver Resolver
	notifier Notifier
	method   prayer.Method
	hooks    Hooks
	log      zerolog.Logger

	sched *Scheduler
	gate  *Gate

	mu         sync.Mutex
	loc        geo.Location
	gen        int
	locChanged bool

	updates    chan tableUpdate
	refreshing bool
	lastDay    string
}

// NewDriver wires a driver around the given collaborators.
func NewDriver(clock Clock, resolver Resolver, notifier Notifier, loc geo.Location, method prayer.Method, hooks Hooks, log zerolog.Logger) *Driver {
	return &Driver{
		clock:    clock,
		resolver: resolver,
		notifier: notifier,
		method:   method,
		hooks:    hooks,
		log:      log,
		sched:    NewScheduler(),
		gate:     NewGate(),
		loc:      loc,
		updates:  make(chan tableUpdate, 1),
	}
}

// SetLocation replaces the driver's location. Safe to call from any
// goroutine; any lookup still in flight for the old location will be
// discarded when it lands.
func (d *Driver) SetLocation(loc geo.Location) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loc = loc
	d.gen++
	d.locChanged = true
}

// Location returns the location the driver is currently tracking. Safe
// to call from any goroutine; hooks use it so a location change reaches
// them too.
func (d *Driver) Location() geo.Location {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loc
}

func (d *Driver) snapshot() (geo.Location, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.locChanged = false
	return d.loc, d.gen
}

func (d *Driver) currentGen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

func (d *Driver) locationDirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locChanged
}

// Run drives the loop until ctx is cancelled. The first tick happens
// immediately so the daemon shows a table without waiting a minute.
func (d *Driver) Run(ctx context.Context) {
	minute := time.NewTicker(time.Minute)
	defer minute.Stop()
	hourly := time.NewTicker(time.Hour)
	defer hourly.Stop()

	d.tick(ctx, d.clock.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case upd := <-d.updates:
			d.apply(upd)
		case <-minute.C:
			d.tick(ctx, d.clock.Now())
		case <-hourly.C:
			if d.hooks.Hourly != nil {
				d.hooks.Hourly(ctx)
			}
		}
	}
}

// tick is one minute of work: roll the day over, refresh a stale table in
// the background, recompute the next prayer, and run the gate.
func (d *Driver) tick(ctx context.Context, now time.Time) {
	day := now.Format("2006-01-02")
	if d.lastDay != "" && day != d.lastDay && d.hooks.Midnight != nil {
		d.hooks.Midnight(ctx)
	}
	d.lastDay = day

	if (d.sched.Stale(now) || d.locationDirty()) && !d.refreshing {
		d.refreshing = true
		loc, gen := d.snapshot()
		go func() {
			times, tier := d.resolver.Resolve(ctx, loc, d.method)
			select {
			case d.updates <- tableUpdate{gen: gen, times: times, tier: tier, day: now}:
			case <-ctx.Done():
			}
		}()
	}

	if u, ok := d.sched.Next(now); ok {
		if d.hooks.Upcoming != nil {
			d.hooks.Upcoming(u)
		}
	}

	for _, name := range d.gate.Tick(now, d.sched.Times()) {
		d.log.Info().Str("prayer", string(name)).Msg("prayer time reached")
		d.notifier.Notify(name)
	}
}

// apply installs a resolved table unless its location generation is
// stale, in which case the result is dropped and the next tick issues a
// fresh lookup.
func (d *Driver) apply(upd tableUpdate) {
	d.refreshing = false
	if upd.gen != d.currentGen() {
		d.log.Debug().Int("gen", upd.gen).Msg("discarding table for superseded location")
		return
	}
	d.sched.Refresh(upd.times, upd.day)
	d.log.Info().Str("tier", string(upd.tier)).Str("day", upd.day.Format("2006-01-02")).Msg("timetable refreshed")
}
