package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalrahma/athan/internal/astro"
)

func newQiblaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qibla",
		Short: "Show the qibla direction",
		Long:  "Compute the great-circle bearing from your location to the Kaaba.",
		RunE:  runQibla,
	}
}

func runQibla(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	ctx := cmd.Context()

	c := openCache(cfg)
	loc := resolveLocation(ctx, cfg, c)

	bearing := astro.QiblaBearing(loc.Latitude, loc.Longitude)
	compass := astro.Compass(bearing)

	if FlagJSON {
		out := struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Bearing   float64 `json:"bearing"`
			Compass   string  `json:"compass"`
		}{loc.Latitude, loc.Longitude, bearing, compass}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("  %s\n", locationLine(loc))
	fmt.Printf("  Qibla: %.1f° (%s)\n", bearing, compass)
	return nil
}
