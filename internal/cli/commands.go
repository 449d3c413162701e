package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalrahma/athan/internal/config"
	"github.com/aalrahma/athan/internal/display"
	"github.com/aalrahma/athan/internal/prayer"
	"github.com/aalrahma/athan/internal/stats"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  athan config set city Riyadh\n  athan config set country \"Saudi Arabia\"\n  athan config set method 4\n  athan config set notifications false",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = "(not set)"
		}
		fmt.Printf("  %-15s %s\n", key, shown)
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("%s = %s\n", key, value)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Println("configuration reset to defaults")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

var flagMark string

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show or update prayer statistics",
		Long:  "Show today's completed prayers, the monthly total, and the current\nstreak. Use --mark to record a completed prayer.",
		RunE:  runStats,
	}

	cmd.Flags().StringVar(&flagMark, "mark", "", "Record a completed prayer (e.g. --mark Asr)")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := stats.NewStore("")
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("mark") {
		name := prayer.Name(flagMark)
		if !prayer.Valid(name) || name == prayer.Sunrise {
			return fmt.Errorf("invalid prayer name %q", flagMark)
		}

		st, counted, err := store.MarkCompleted()
		if err != nil {
			return err
		}
		if !counted {
			fmt.Println("all of today's prayers are already recorded")
			return nil
		}
		fmt.Printf("recorded %s (%d/5 today)\n", name, st.CompletedToday)
		return nil
	}

	st := store.Load()
	fmt.Printf("  Today:      %d/5 prayers\n", st.CompletedToday)
	fmt.Printf("  This month: %d prayers\n", st.CompletedMonth)
	fmt.Printf("  Streak:     %d days\n", st.StreakDays)
	return nil
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List supported calculation methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := display.NewTable("ID", "Method", "Fajr", "Isha")
			for _, m := range prayer.Methods {
				isha := fmt.Sprintf("%g°", m.IshaAngle)
				if m.IshaOffsetMin > 0 {
					isha = fmt.Sprintf("Maghrib +%dm", m.IshaOffsetMin)
				}
				table.AddRow(fmt.Sprintf("%d", m.ID), m.Name, fmt.Sprintf("%g°", m.FajrAngle), isha)
			}
			fmt.Print(table.Render())
			return nil
		},
	}
}
