package cli

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalrahma/athan/internal/prayer"
	"github.com/aalrahma/athan/internal/schedule"
)

// Format constants for the next command's display modes.
const (
	formatTimeRemaining  = "time-remaining"
	formatNextPrayerTime = "next-prayer-time"
	formatNameAndTime    = "name-and-time"
	formatNameAndRemain  = "name-and-remaining"
	formatFull           = "full"
)

var flagFormat string

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nSuitable for status bars: the output is a single line with no decoration.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", formatFull,
		"Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, full, or a custom Go template")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	ctx := cmd.Context()

	c := openCache(cfg)
	loc := resolveLocation(ctx, cfg, c)
	times, _ := resolveTimes(ctx, cfg, c, loc)

	now := time.Now()
	sched := schedule.NewScheduler()
	sched.Refresh(times, now)

	next, ok := sched.Next(now)
	if !ok {
		return fmt.Errorf("could not determine next prayer")
	}

	fmt.Print(formatUpcoming(next, goTimeFormat(cfg)))
	return nil
}

// formatData is the data passed to custom Go templates.
type formatData struct {
	Name      string // prayer name, e.g. "Asr" or "Fajr (tomorrow)"
	Time      string // formatted prayer time
	Remaining string // e.g. "2h 15m"
	Hours     int
	Minutes   int
}

// formatUpcoming renders the next prayer according to the chosen format
// mode. Any format string containing "{{" is treated as a Go template
// over .Name, .Time, .Remaining, .Hours, and .Minutes.
func formatUpcoming(u schedule.Upcoming, timeFmt string) string {
	remaining := prayer.FormatRemaining(u.Remaining)
	timeStr := u.At.Format(timeFmt)

	if strings.Contains(flagFormat, "{{") {
		return formatCustom(flagFormat, formatData{
			Name:      u.Label(),
			Time:      timeStr,
			Remaining: remaining,
			Hours:     int(u.Remaining.Hours()),
			Minutes:   int(u.Remaining.Minutes()) % 60,
		})
	}

	switch flagFormat {
	case formatTimeRemaining:
		return remaining
	case formatNextPrayerTime:
		return timeStr
	case formatNameAndTime:
		return fmt.Sprintf("%s %s", u.Label(), timeStr)
	case formatNameAndRemain:
		return fmt.Sprintf("%s %s", u.Label(), remaining)
	case formatFull:
		return fmt.Sprintf("%s %s (%s)", u.Label(), timeStr, remaining)
	default:
		return fmt.Sprintf("%s %s", u.Label(), timeStr)
	}
}

// formatCustom executes a user-provided Go template string.
func formatCustom(tmpl string, data formatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
