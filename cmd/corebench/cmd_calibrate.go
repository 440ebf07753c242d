package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/corebench/corebench/internal/calibration"
	"github.com/corebench/corebench/internal/config"
	"github.com/corebench/corebench/internal/models"
	"github.com/corebench/corebench/internal/params"
	"github.com/corebench/corebench/internal/suite"
)

var (
	calibrateTier     string
	calibrateOutput   string
	calibrateName     string
	calibrateCooldown time.Duration
)

func newCalibrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Measure this device and emit a ratio reference table",
		Long: `Run the benchmark on this device and write its measured throughputs
as a ratio-method calibration table. A device scored against its own
table lands at exactly 100; other devices score relative to it.`,
		Args: cobra.NoArgs,
		RunE: calibrateCommandE,
	}

	cmd.Flags().StringVarP(&calibrateTier, "tier", "t", string(params.TierMid), "Workload tier to calibrate on")
	cmd.Flags().StringVarP(&calibrateOutput, "output", "o", "", "Output YAML path for the reference table (required)")
	cmd.Flags().StringVar(&calibrateName, "name", "", "Reference device name recorded in the table")
	cmd.Flags().DurationVar(&calibrateCooldown, "cooldown", config.DefaultCooldown, "Thermal cooldown between kernels")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func calibrateCommandE(cmd *cobra.Command, args []string) error {
	tier, err := params.ParseTier(calibrateTier)
	if err != nil {
		return err
	}

	cfg := config.New(
		config.WithTier(tier),
		config.WithCooldown(calibrateCooldown),
	)
	runner, err := suite.New(cfg)
	if err != nil {
		return err
	}
	runner.AddListener(simpleProgressListener)

	fmt.Printf("Calibrating on %s tier...\n\n", tier)
	summary, err := runner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("calibration run failed: %w", err)
	}

	if invalid := summary.InvalidResults(); len(invalid) > 0 {
		return fmt.Errorf("calibration requires a clean run, %d kernel result(s) failed validation", len(invalid))
	}

	table := referenceTable(summary)
	data, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("encoding reference table: %w", err)
	}
	if err := os.WriteFile(calibrateOutput, data, 0644); err != nil {
		return fmt.Errorf("writing reference table: %w", err)
	}

	fmt.Printf("\nReference table saved to: %s\n", calibrateOutput)
	if summary.Degraded {
		return &DegradedRunError{
			Message: "calibration completed with reduced fidelity (affinity or priority control unavailable)",
		}
	}
	return nil
}

// referenceTable converts a run summary into a ratio calibration table
// keyed by this device's measured throughputs.
func referenceTable(summary *models.RunSummary) *calibration.Table {
	name := calibrateName
	if name == "" {
		name = fmt.Sprintf("calibrated-%s", time.Now().UTC().Format("2006-01-02"))
	}
	table := &calibration.Table{
		Method:     calibration.MethodRatio,
		Reference:  name,
		SingleCore: map[string]float64{},
		MultiCore:  map[string]float64{},
	}
	for _, kr := range summary.ResultsForMode(models.ModeSingleCore) {
		table.SingleCore[kr.ID] = kr.OpsPerSecond
	}
	for _, kr := range summary.ResultsForMode(models.ModeMultiCore) {
		table.MultiCore[kr.ID] = kr.OpsPerSecond
	}
	return table
}
