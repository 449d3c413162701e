package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aalrahma/athan/internal/api"
	"github.com/aalrahma/athan/internal/config"
	"github.com/aalrahma/athan/internal/geo"
	"github.com/aalrahma/athan/internal/prayer"
	"github.com/aalrahma/athan/internal/schedule"
	"github.com/aalrahma/athan/internal/source"
	"github.com/aalrahma/athan/internal/stats"
	"github.com/aalrahma/athan/internal/weather"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the prayer notification daemon",
		Long:  "Track the next prayer and emit a notification when each prayer time\narrives. Runs until interrupted. Each prayer fires at most once per day,\neven across restarts within the same minute.",
		RunE:  runDaemon,
	}
}

// consoleNotifier renders alerts to the terminal. The bell character is
// the audible cue; the OS decides what that sounds like.
type consoleNotifier struct {
	sounds bool
	log    zerolog.Logger
}

func (n *consoleNotifier) Notify(name prayer.Name) {
	fmt.Printf("🕌 It is time for %s\n", name)
	if n.sounds {
		fmt.Print("\a")
	}
	n.log.Info().Str("prayer", string(name)).Msg("notification delivered")
}

// nopNotifier is used when notifications are disabled in config: the
// driver still tracks prayers, nothing is delivered.
type nopNotifier struct{}

func (nopNotifier) Notify(prayer.Name) {}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := openCache(cfg)
	loc := resolveLocation(ctx, cfg, c)
	method := prayer.MethodByID(cfg.MethodOrDefault(prayer.DefaultMethod.ID))

	src := source.New(api.NewClient(), logger.With().Str("component", "source").Logger())

	statsStore, err := stats.NewStore("")
	if err != nil {
		logger.Warn().Err(err).Msg("statistics disabled")
		statsStore = nil
	}

	var notifier schedule.Notifier = nopNotifier{}
	if config.BoolOrDefault(cfg.Notifications, true) {
		notifier = &consoleNotifier{
			sounds: config.BoolOrDefault(cfg.Sounds, true),
			log:    logger,
		}
	}

	weatherClient := weather.NewClient()
	apiClient := api.NewClient()

	// Declared before the hooks so they can read the driver's current
	// location after auto-detection replaces the startup one.
	var driver *schedule.Driver
	driver = schedule.NewDriver(
		schedule.SystemClock{},
		src,
		notifier,
		loc,
		method,
		schedule.Hooks{
			Upcoming: func(u schedule.Upcoming) {
				logger.Debug().
					Str("next", u.Label()).
					Str("remaining", prayer.FormatRemaining(u.Remaining)).
					Msg("next prayer")
			},
			Hourly: func(ctx context.Context) {
				if !config.BoolOrDefault(cfg.ShowWeather, true) {
					return
				}
				here := driver.Location()
				report, err := weatherClient.Current(ctx, here.Latitude, here.Longitude)
				if err != nil {
					logger.Warn().Err(err).Msg("weather refresh failed")
					return
				}
				logger.Info().Str("conditions", report.String()).Msg("weather")
			},
			Midnight: func(ctx context.Context) {
				if statsStore != nil {
					if err := statsStore.RollDay(time.Now()); err != nil {
						logger.Warn().Err(err).Msg("stats rollover failed")
					}
				}
				if hijri, err := apiClient.HijriDate(ctx, time.Now()); err == nil {
					logger.Info().Str("hijri", hijri.Format()).Msg("new day")
				}
			},
		},
		logger.With().Str("component", "driver").Logger(),
	)

	// Re-detect the location in the background when auto-location is on
	// and no explicit coordinates were given. A lookup that lands after
	// a later location change is discarded by the driver.
	if config.BoolOrDefault(cfg.AutoLocation, true) && cfg.Latitude == 0 && cfg.Longitude == 0 {
		go func() {
			detected, err := geo.Detect(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("location detection failed, keeping current location")
				return
			}
			if c != nil {
				_ = c.SaveGeo(detected) // best-effort
			}
			logger.Info().Str("city", detected.City).Str("country", detected.Country).Msg("location detected")
			driver.SetLocation(*detected)
		}()
	}

	logger.Info().
		Str("location", locationLine(loc)).
		Str("method", method.Name).
		Msg("daemon started")

	driver.Run(ctx)
	logger.Info().Msg("daemon stopped")
	return nil
}
