package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalrahma/athan/internal/api"
	"github.com/aalrahma/athan/internal/astro"
	"github.com/aalrahma/athan/internal/config"
	"github.com/aalrahma/athan/internal/display"
	"github.com/aalrahma/athan/internal/geo"
	"github.com/aalrahma/athan/internal/prayer"
	"github.com/aalrahma/athan/internal/schedule"
	"github.com/aalrahma/athan/internal/source"
	"github.com/aalrahma/athan/internal/weather"
)

func runToday(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	ctx := cmd.Context()

	c := openCache(cfg)
	loc := resolveLocation(ctx, cfg, c)
	times, tier := resolveTimes(ctx, cfg, c, loc)

	now := time.Now()
	sched := schedule.NewScheduler()
	sched.Refresh(times, now)
	next, hasNext := sched.Next(now)

	hijri := fetchHijri(ctx, api.NewClient(), c, loc, cfg, times)

	var conditions string
	if config.BoolOrDefault(cfg.ShowWeather, true) {
		conditions = fetchWeather(ctx, loc)
	}

	bearing := astro.QiblaBearing(loc.Latitude, loc.Longitude)

	if FlagJSON {
		return printTodayJSON(times, tier, next, hasNext, loc, hijri, conditions, bearing, goTimeFormat(cfg))
	}

	printTodayRich(times, tier, next, hasNext, now, loc, hijri, conditions, bearing, goTimeFormat(cfg))
	return nil
}

// fetchWeather returns the current conditions string, degrading to the
// placeholder on any failure.
func fetchWeather(ctx context.Context, loc geo.Location) string {
	report, err := weather.NewClient().Current(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return weather.Unavailable
	}
	return report.String()
}

// printTodayRich renders the colored terminal output.
func printTodayRich(times prayer.Times, tier source.Tier, next schedule.Upcoming, hasNext bool, now time.Time, loc geo.Location, hijri, conditions string, bearing float64, timeFmt string) {
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Prayer Times"))
	fmt.Println()

	fmt.Printf("  %s\n", locationLine(loc))
	fmt.Printf("  %s\n", now.Format("02 Jan 2006"))
	if hijri != "" {
		fmt.Printf("  %s\n", hijri)
	}
	if conditions != "" {
		fmt.Printf("  %s\n", conditions)
	}
	fmt.Printf("  Qibla: %.1f° (%s)\n", bearing, astro.Compass(bearing))
	if tier == source.TierDefaults {
		fmt.Printf("  %s\n", display.Warn("showing default times (lookup and computation both failed)"))
	}
	fmt.Println()

	table := display.NewTable("Prayer", "Time", "")
	for i, name := range prayer.Order {
		clock := times[name]
		note := ""
		if hasNext && name == next.Name && !next.Tomorrow {
			note = "next in " + prayer.FormatRemaining(next.Remaining)
			table.Highlight(i)
		} else if clock.On(now, now.Location()).Before(now) {
			table.DimRow(i)
		}
		table.AddRow(string(name), clock.On(now, now.Location()).Format(timeFmt), note)
	}
	fmt.Print(table.Render())

	if hasNext && next.Tomorrow {
		fmt.Printf("\n  %s\n", display.Accent(fmt.Sprintf("next: %s in %s", next.Label(), prayer.FormatRemaining(next.Remaining))))
	}
	fmt.Println()
}

func locationLine(loc geo.Location) string {
	if loc.City != "" && loc.Country != "" {
		return loc.City + ", " + loc.Country
	}
	return fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude)
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Hijri    string            `json:"hijri,omitempty"`
	Weather  string            `json:"weather,omitempty"`
	Qibla    todayJSONQibla    `json:"qibla"`
	Source   string            `json:"source"`
	Timings  map[string]string `json:"timings"`
	Next     *todayJSONNext    `json:"next,omitempty"`
}

type todayJSONLocation struct {
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type todayJSONQibla struct {
	Bearing float64 `json:"bearing"`
	Compass string  `json:"compass"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Tomorrow  bool   `json:"tomorrow"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func printTodayJSON(times prayer.Times, tier source.Tier, next schedule.Upcoming, hasNext bool, loc geo.Location, hijri, conditions string, bearing float64, timeFmt string) error {
	timings := make(map[string]string, len(times))
	for name, clock := range times {
		timings[strings.ToLower(string(name))] = clock.String()
	}

	out := todayJSON{
		Location: todayJSONLocation{
			City:      loc.City,
			Country:   loc.Country,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		},
		Hijri:   hijri,
		Weather: conditions,
		Qibla: todayJSONQibla{
			Bearing: bearing,
			Compass: astro.Compass(bearing),
		},
		Source:  string(tier),
		Timings: timings,
	}

	if hasNext {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(string(next.Name)),
			Tomorrow:  next.Tomorrow,
			Time:      next.At.Format(timeFmt),
			Remaining: prayer.FormatRemaining(next.Remaining),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
