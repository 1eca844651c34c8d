package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/tempviz-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tempviz configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "global_file: %s\n", cfg.GlobalFile)
		fmt.Fprintf(w, "country_file: %s\n", cfg.CountryFile)
		fmt.Fprintf(w, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(w, "show: %t\n", cfg.Show)
		fmt.Fprintf(w, "width_in: %.1f\n", cfg.WidthIn)
		fmt.Fprintf(w, "height_in: %.1f\n", cfg.HeightIn)
		fmt.Fprintf(w, "countries: %s\n", strings.Join(cfg.Countries, ", "))
		fmt.Fprintf(w, "heatmap_country: %s\n", cfg.HeatmapCountry)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "global_file":
			cfg.GlobalFile = val
		case "country_file":
			cfg.CountryFile = val
		case "output_dir":
			cfg.OutputDir = val
		case "show":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for show: %w", err)
			}
			cfg.Show = b
		case "width_in", "height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid size for %s: %v", key, val)
			}
			if key == "width_in" {
				cfg.WidthIn = f
			} else {
				cfg.HeightIn = f
			}
		case "countries":
			var list []string
			for _, s := range strings.Split(val, ",") {
				if s = strings.TrimSpace(s); s != "" {
					list = append(list, s)
				}
			}
			if len(list) == 0 {
				return fmt.Errorf("countries must not be empty")
			}
			cfg.Countries = list
		case "heatmap_country":
			cfg.HeatmapCountry = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
