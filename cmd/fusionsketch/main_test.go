package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/fusionsketch/internal/config"
	"github.com/san-kum/fusionsketch/internal/fusion"
)

func newTestCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	preset, configFile, svgDir, save, plain = "", "", "", false, true

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Float64Var(&power, "power", config.DefaultPower, "")
	cmd.Flags().Float64Var(&massFlow, "mass-flow", config.DefaultMassFlow, "")
	cmd.Flags().Float64Var(&maxTemp, "tmax", config.DefaultMaxTemp, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd, &out
}

func TestResolveConfig_FlagsOverride(t *testing.T) {
	cmd, _ := newTestCmd(t, "--mass-flow", "4.4")
	preset = "overdrive"

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Coolant.MassFlow != 4.4 {
		t.Errorf("expected flag mass flow 4.4, got %f", cfg.Coolant.MassFlow)
	}
	if cfg.Reactor.Power != 120000 {
		t.Errorf("unchanged flag must not override preset, got power %f", cfg.Reactor.Power)
	}
}

func TestResolveConfig_UnknownPreset(t *testing.T) {
	cmd, _ := newTestCmd(t)
	preset = "tokamak"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected unknown preset error")
	}
}

func TestRunCoolant_Summary(t *testing.T) {
	cmd, out := newTestCmd(t)

	if err := runCoolant(cmd, nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Cooling OK. Rise = 5.3 K. Velocity = 25.46 m/s.") {
		t.Errorf("missing summary line:\n%s", out.String())
	}
}

func TestRunCoolant_Unsafe(t *testing.T) {
	cmd, out := newTestCmd(t, "--tmax", "195")

	if err := runCoolant(cmd, nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Cooling UNSAFE.") {
		t.Errorf("expected UNSAFE summary:\n%s", out.String())
	}
}

func TestRunCoolant_DivisionUndefined(t *testing.T) {
	cmd, _ := newTestCmd(t, "--mass-flow", "0")

	err := runCoolant(cmd, nil)
	if !errors.Is(err, fusion.ErrDivisionUndefined) {
		t.Fatalf("expected division error, got %v", err)
	}
	if !strings.Contains(err.Error(), "mass_flow") {
		t.Errorf("error should name the parameter: %v", err)
	}
}

func TestRunGeometry(t *testing.T) {
	cmd, out := newTestCmd(t)
	svgDir = t.TempDir()

	if err := runGeometry(cmd, nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Soccer Ball Reactor - 10 kW @ 18000 RPM") {
		t.Errorf("missing title:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "26.2 cm²") {
		t.Errorf("missing coil area:\n%s", out.String())
	}
}

func TestExecute_ClosesLogOnCommandError(t *testing.T) {
	closed := 0
	root := &cobra.Command{
		Use:           "test",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog = func() error { closed++; return nil }
			return fusion.DivisionUndefined("mass_flow", 0)
		},
	}
	root.SetArgs([]string{})

	err := execute(root)
	if !errors.Is(err, fusion.ErrDivisionUndefined) {
		t.Fatalf("err = %v, want the command error", err)
	}
	if closed != 1 {
		t.Errorf("log closed %d times, want 1", closed)
	}
	if err := closeLog(); err != nil || closed != 1 {
		t.Error("closeLog should be reset after execute")
	}
}

func TestExecute_ReportsCloseError(t *testing.T) {
	root := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog = func() error { return errors.New("disk full") }
			return nil
		},
	}
	root.SetArgs([]string{})

	err := execute(root)
	if err == nil || !strings.Contains(err.Error(), "close log: disk full") {
		t.Errorf("err = %v, want close log error", err)
	}
}
