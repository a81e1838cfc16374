package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/fusionsketch/internal/config"
	"github.com/san-kum/fusionsketch/internal/coolant"
	"github.com/san-kum/fusionsketch/internal/fusion"
	"github.com/san-kum/fusionsketch/internal/geometry"
	"github.com/san-kum/fusionsketch/internal/logging"
	"github.com/san-kum/fusionsketch/internal/render"
	"github.com/san-kum/fusionsketch/internal/storage"
	"github.com/san-kum/fusionsketch/internal/viewer"
)

var (
	dataDir    string
	configFile string
	preset     string
	svgDir     string
	save       bool
	plain      bool
	logFile    string
	logLevel   string
	// Coolant overrides
	power    float64
	massFlow float64
	maxTemp  float64

	logger   *slog.Logger
	closeLog = func() error { return nil }
)

// main registers the commands and runs both models when no subcommand is
// given. It exits with status 1 on any command error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "fusionsketch",
		Short:             "desktop fusion reactor geometry and coolant sketch",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runAll,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".fusionsketch", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&svgDir, "svg-dir", "", "also write figures as SVG into this directory")
	pf.BoolVar(&save, "save", false, "archive the run in the data directory")
	pf.BoolVar(&plain, "plain", false, "disable colours")
	pf.StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.Float64Var(&power, "power", config.DefaultPower, "heat load (W)")
	pf.Float64Var(&massFlow, "mass-flow", config.DefaultMassFlow, "coolant mass flow (kg/s)")
	pf.Float64Var(&maxTemp, "tmax", config.DefaultMaxTemp, "maximum safe outlet temperature (K)")

	geometryCmd := &cobra.Command{
		Use:   "geometry",
		Short: "compute and plot coils, plasma ring and field lines",
		RunE:  runGeometry,
	}

	coolantCmd := &cobra.Command{
		Use:   "coolant",
		Short: "estimate the CO2 coolant loop",
		RunE:  runCoolant,
	}

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "interactive figure viewer",
		RunE:  runView,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export archived points to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).WritePoints(args[0], cmd.OutOrStdout())
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, p := range config.ListPresets() {
				fmt.Fprintf(out, "  %s\n", p)
			}
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			path := "fusionsketch.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(geometryCmd, coolantCmd, viewCmd, listCmd, exportCSVCmd, presetsCmd, initConfigCmd)

	if err := execute(rootCmd); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and closes the log file afterwards, also
// when a command fails.
func execute(root *cobra.Command) error {
	err := root.Execute()
	if cerr := closeLog(); cerr != nil && err == nil {
		err = fmt.Errorf("close log: %w", cerr)
	}
	closeLog = func() error { return nil }
	return err
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	l, cleanup, err := logging.Setup(cmd.ErrOrStderr(), logFile, level)
	if err != nil {
		return err
	}
	logger, closeLog = l, cleanup
	return nil
}

// resolveConfig applies defaults, then the preset, then the config file, then
// explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("power") {
		cfg.Reactor.Power = power
	}
	if flags.Changed("mass-flow") {
		cfg.Coolant.MassFlow = massFlow
	}
	if flags.Changed("tmax") {
		cfg.Coolant.MaxTemp = maxTemp
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sink(cmd *cobra.Command) (render.Sink, *render.SVG) {
	term := render.NewTerminal(cmd.OutOrStdout(), plain)
	if svgDir == "" {
		return term, nil
	}
	svg := render.NewSVG(svgDir)
	return render.Multi{term, svg}, svg
}

func buildGeometry(cfg *config.Config) (*geometry.Model, fusion.Figure) {
	model := geometry.Build(cfg)
	logger.Debug("geometry computed",
		"coils", len(model.Coils),
		"plasma_points", len(model.Plasma),
		"field_points", len(model.Field),
		"faces", model.Faces,
		"coil_area_m2", model.CoilArea,
		"omega_rad_s", model.AngularVelocity,
	)
	return model, model.Figure(geometry.Title(cfg.Reactor.Power, cfg.Reactor.RPM))
}

func evaluateCoolant(cfg *config.Config) (*coolant.Result, error) {
	res, err := coolant.Evaluate(cfg)
	if err != nil {
		logger.Error("coolant model undefined", "error", err)
		return nil, fmt.Errorf("coolant: %w", err)
	}
	logger.Debug("coolant evaluated",
		"rise_k", res.Rise,
		"outlet_k", res.Outlet,
		"total_length_m", res.TotalLength,
		"velocity_m_s", res.Velocity,
		"status", res.Status.String(),
	)
	if res.Status == coolant.Unsafe {
		logger.Warn("outlet temperature above safe bound", "outlet_k", res.Outlet, "max_k", res.MaxSafe)
	}
	return res, nil
}

func printSummary(cmd *cobra.Command, res *coolant.Result) {
	style := render.StatusSafe
	if res.Status == coolant.Unsafe {
		style = render.StatusUnsafe
	}
	if plain {
		fmt.Fprintln(cmd.OutOrStdout(), res.Summary())
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), style.Render(res.Summary()))
}

func finish(cmd *cobra.Command, cfg *config.Config, res *coolant.Result, svg *render.SVG, figs ...fusion.Figure) error {
	if svg != nil {
		for _, path := range svg.Written {
			logger.Info("figure written", "path", path)
		}
	}
	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	run := &storage.Run{Config: cfg, Figures: figs}
	if res != nil {
		run.Coolant = &storage.CoolantSummary{
			Rise:        res.Rise,
			Outlet:      res.Outlet,
			TotalLength: res.TotalLength,
			Velocity:    res.Velocity,
			Status:      res.Status.String(),
		}
	}
	runID, err := st.Save(run)
	if err != nil {
		return err
	}
	logger.Info("run archived", "id", runID, "dir", dataDir)
	fmt.Fprintf(cmd.OutOrStdout(), "run id: %s\n", runID)
	return nil
}

func runAll(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out, svg := sink(cmd)

	_, geo := buildGeometry(cfg)
	if err := out.Render(geo); err != nil {
		return err
	}

	res, err := evaluateCoolant(cfg)
	if err != nil {
		return err
	}
	prof := res.Figure()
	if err := out.Render(prof); err != nil {
		return err
	}
	printSummary(cmd, res)

	return finish(cmd, cfg, res, svg, geo, prof)
}

func runGeometry(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out, svg := sink(cmd)

	model, geo := buildGeometry(cfg)
	if err := out.Render(geo); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n",
		render.Metric("faces", fmt.Sprintf("%d", model.Faces)),
		render.Metric("coil area", fmt.Sprintf("%.1f cm²", model.CoilArea*1e4)),
		render.Metric("B", fmt.Sprintf("%.2f T", model.FieldTesla)),
		render.Metric("ω", fmt.Sprintf("%.0f rad/s", model.AngularVelocity)),
	)

	return finish(cmd, cfg, nil, svg, geo)
}

func runCoolant(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out, svg := sink(cmd)

	res, err := evaluateCoolant(cfg)
	if err != nil {
		return err
	}
	prof := res.Figure()
	if err := out.Render(prof); err != nil {
		return err
	}
	printSummary(cmd, res)

	return finish(cmd, cfg, res, svg, prof)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	_, geo := buildGeometry(cfg)
	res, err := evaluateCoolant(cfg)
	if err != nil {
		return err
	}

	return viewer.Run([]fusion.Figure{geo, res.Figure()}, res.Summary())
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPOWER\tRISE\tOUTLET\tVELOCITY\tSTATUS")

	for _, run := range runs {
		rise, outlet, velocity, status := "-", "-", "-", "-"
		if c := run.Coolant; c != nil {
			rise = fmt.Sprintf("%.1f K", c.Rise)
			outlet = fmt.Sprintf("%.1f K", c.Outlet)
			velocity = fmt.Sprintf("%.2f m/s", c.Velocity)
			status = c.Status
		}
		power := "-"
		if run.Config != nil {
			power = fmt.Sprintf("%.0f W", run.Config.Reactor.Power)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			power, rise, outlet, velocity, status,
		)
	}

	return w.Flush()
}
