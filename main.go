package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"selectorkit/app"
	"selectorkit/config"
	"selectorkit/inspect"
	"selectorkit/log"
	"selectorkit/ui/layout"
	"selectorkit/ui/position"
)

var (
	version    = "0.3.0"
	configFlag string

	placeFlags struct {
		trigger   string
		panel     string
		placement string
		viewport  string
		offset    int
		margin    int
	}

	modeFlags struct {
		requested  string
		width      int
		breakpoint int
	}

	rootCmd = &cobra.Command{
		Use:   "selectorkit",
		Short: "selectorkit - anchored dropdown selectors for terminal UIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize()
			defer log.Close()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return app.Run(ctx, cfg)
		},
	}

	placeCmd = &cobra.Command{
		Use:   "place",
		Short: "Compute where a panel goes next to a trigger and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			trigger, err := parseInts(placeFlags.trigger, 4)
			if err != nil {
				return fmt.Errorf("--trigger: %w", err)
			}
			panel, err := parseInts(placeFlags.panel, 2)
			if err != nil {
				return fmt.Errorf("--panel: %w", err)
			}
			placement, err := position.ParsePlacement(placeFlags.placement)
			if err != nil {
				return err
			}
			vw, vh, err := viewportSize(placeFlags.viewport)
			if err != nil {
				return fmt.Errorf("--viewport: %w", err)
			}

			p := position.Compute(
				position.NewGeometry(trigger[0], trigger[1], trigger[2], trigger[3]),
				position.Size(panel[0], panel[1]),
				placement,
				position.Viewport{Width: vw, Height: vh},
				placeFlags.offset,
				placeFlags.margin,
			)
			return printJSON(cmd, placeResult{
				Top:       p.Top,
				Left:      p.Left,
				Placement: p.Placement.String(),
				Viewport:  [2]int{vw, vh},
			})
		},
	}

	modeCmd = &cobra.Command{
		Use:   "mode",
		Short: "Print the presentation mode for a terminal width",
		RunE: func(cmd *cobra.Command, args []string) error {
			requested, err := layout.ParseRequestedMode(modeFlags.requested)
			if err != nil {
				return err
			}
			width := modeFlags.width
			if width <= 0 {
				width, _ = terminalSize()
			}
			mode := layout.ResolveMode(requested, width, modeFlags.breakpoint)
			fmt.Fprintln(cmd.OutOrStdout(), mode)
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")
			statePath, _ := config.StatePath()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Fprintf(out, "State: %s\n", statePath)
			fmt.Fprintf(out, "Log: %s\n", log.FileName())
			if inspect.IsEnabled() {
				fmt.Fprintf(out, "Inspect: %s\n", inspect.GetInspectFile())
			}

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of selectorkit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "selectorkit version %s\n", version)
		},
	}
)

type placeResult struct {
	Top       int    `json:"top"`
	Left      int    `json:"left"`
	Placement string `json:"placement"`
	Viewport  [2]int `json:"viewport"`
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"Config file to use instead of ~/.selectorkit/config.{yaml,json}")

	placeCmd.Flags().StringVar(&placeFlags.trigger, "trigger", "", "Trigger geometry as top,left,width,height")
	placeCmd.Flags().StringVar(&placeFlags.panel, "panel", "", "Panel size as width,height")
	placeCmd.Flags().StringVar(&placeFlags.placement, "placement", position.BottomStart.String(),
		"Preferred placement (bottom, bottom-start, bottom-end, top, top-start, top-end)")
	placeCmd.Flags().StringVar(&placeFlags.viewport, "viewport", "", "Viewport as width,height (defaults to the terminal size)")
	placeCmd.Flags().IntVar(&placeFlags.offset, "offset", layout.DefaultOffset, "Gap between trigger and panel")
	placeCmd.Flags().IntVar(&placeFlags.margin, "margin", layout.DefaultMargin, "Minimum gap between panel and viewport edge")
	for _, name := range []string{"trigger", "panel"} {
		if err := placeCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	modeCmd.Flags().StringVar(&modeFlags.requested, "requested", layout.Auto.String(), "Requested mode (auto, dropdown, dialog)")
	modeCmd.Flags().IntVar(&modeFlags.width, "width", 0, "Viewport width (defaults to the terminal width)")
	modeCmd.Flags().IntVar(&modeFlags.breakpoint, "breakpoint", layout.DefaultBreakpoint, "Width at or below which auto shows a dialog")

	rootCmd.AddCommand(placeCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads --config when given. An explicit file must be valid;
// the default location falls back to defaults instead.
func loadConfig() (*config.Config, error) {
	if configFlag == "" {
		return config.LoadConfig(), nil
	}
	cfg, err := config.LoadConfigFrom(configFlag)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseInts parses exactly n comma-separated integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		out[i] = v
	}
	return out, nil
}

func viewportSize(flag string) (int, int, error) {
	if flag == "" {
		w, h := terminalSize()
		return w, h, nil
	}
	v, err := parseInts(flag, 2)
	if err != nil {
		return 0, 0, err
	}
	return v[0], v[1], nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
