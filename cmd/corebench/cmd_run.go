package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/corebench/corebench/internal/affinity"
	"github.com/corebench/corebench/internal/calibration"
	"github.com/corebench/corebench/internal/config"
	"github.com/corebench/corebench/internal/params"
	"github.com/corebench/corebench/internal/report"
	"github.com/corebench/corebench/internal/suite"
)

var (
	tierName        string
	calibrationPath string
	cooldown        time.Duration
	workers         int
	outputPath      string
	verbose         bool
	interpret       bool
	format          string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark suites",
		Long: `Run the full benchmark: a discarded warm-up pass, the single-core
suite pinned to the fastest core, and the multi-core suite fanned out
across every logical core.

Without --tier on a terminal, an interactive picker asks for the tier.`,
		Args: cobra.NoArgs,
		RunE: runCommandE,
	}

	cmd.Flags().StringVarP(&tierName, "tier", "t", "", "Workload tier: warmup, low, mid, high (default: mid)")
	cmd.Flags().StringVar(&calibrationPath, "calibration", "", "Calibration table YAML (default: embedded factor table)")
	cmd.Flags().DurationVar(&cooldown, "cooldown", config.DefaultCooldown, "Thermal cooldown between kernels")
	cmd.Flags().IntVar(&workers, "workers", 0, "Multi-core workers (default: one per logical core)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for the summary (.gz compresses)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with detailed progress")
	cmd.Flags().BoolVar(&interpret, "interpret", false, "Print a plain-language interpretation of the results")
	cmd.Flags().StringVar(&format, "format", "default", "Output format: default, markdown")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	tier, err := resolveTier(cmd)
	if err != nil {
		return err
	}

	table := calibration.Default()
	if calibrationPath != "" {
		table, err = calibration.Load(calibrationPath)
		if err != nil {
			return fmt.Errorf("failed to load calibration table: %w", err)
		}
	}

	cfg := config.New(
		config.WithTier(tier),
		config.WithCooldown(cooldown),
		config.WithWorkers(workers),
		config.WithVerbose(verbose),
		config.WithOutputPath(outputPath),
		config.WithCalibration(table),
	)

	runner, err := suite.New(cfg)
	if err != nil {
		return err
	}

	if verbose {
		runner.AddListener(verboseProgressListener)
	} else {
		runner.AddListener(simpleProgressListener)
	}

	topo := affinity.Detect()
	fmt.Printf("Running benchmark: %s tier\n", tier)
	fmt.Printf("Cores: %d logical, prime core %d\n", topo.Logical, topo.PrimeCore())
	if topo.Asymmetric() {
		fmt.Printf("Layout: %d big / %d little\n", len(topo.BigCores), len(topo.LittleCores))
	}
	fmt.Printf("Scoring: %s\n", table.Method)
	fmt.Println()

	summary, err := runner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	switch format {
	case "markdown":
		fmt.Print(FormatMarkdownReport(summary))
	case "default":
		printSummary(summary)

		if interpret {
			fmt.Println()
			fmt.Print(report.Interpret(summary))
		}
	default:
		return fmt.Errorf("unknown output format: %s (supported: default, markdown)", format)
	}

	if outputPath != "" {
		if err := report.Save(summary, outputPath); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Printf("\nResults saved to: %s\n", outputPath)
	}

	if summary.Degraded {
		return &DegradedRunError{
			Message: "benchmark completed with reduced fidelity (affinity or priority control unavailable)",
		}
	}
	return nil
}

// resolveTier picks the tier from the flag, or interactively on a TTY,
// falling back to mid.
func resolveTier(cmd *cobra.Command) (params.Tier, error) {
	if tierName != "" {
		return params.ParseTier(tierName)
	}

	// Check TTY from the command's input stream, not os.Stdin directly.
	isTTY := false
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	if !isTTY {
		return params.TierMid, nil
	}

	selected := string(params.TierMid)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Workload tier").
				Description("Heavier tiers run longer but separate fast devices better.").
				Options(
					huh.NewOption("low - entry devices, ~1 minute", string(params.TierLow)),
					huh.NewOption("mid - most devices, ~3 minutes", string(params.TierMid)),
					huh.NewOption("high - flagships, ~8 minutes", string(params.TierHigh)),
				).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("tier selection failed: %w", err)
	}
	return params.ParseTier(selected)
}

func verboseProgressListener(event suite.ProgressEvent) {
	switch event.Type {
	case suite.EventSuiteStarted:
		fmt.Printf("Starting suite with %d measured kernel slots...\n\n", event.Total)
	case suite.EventWarmupStarted:
		fmt.Println("Warming up (results discarded)...")
	case suite.EventWarmupComplete:
		fmt.Println("Warm-up complete.")
	case suite.EventPhaseStarted:
		fmt.Printf("\n%s suite:\n", event.Mode)
	case suite.EventKernelStarted:
		fmt.Printf("[%d/%d] Running %s...", event.Index, event.Total, event.Name)
	case suite.EventKernelComplete:
		icon := "✓"
		if !event.Valid {
			icon = "✗"
		}
		fmt.Printf(" %s (%.0fms)\n", icon, event.ElapsedMs)
		if event.Error != "" {
			fmt.Printf("      %s\n", event.Error)
		}
	case suite.EventCooldown:
		fmt.Printf("      cooling down %.0fms\n", event.ElapsedMs)
	case suite.EventSuiteComplete:
		fmt.Println("\nSuite complete.")
	}
}

func simpleProgressListener(event suite.ProgressEvent) {
	if event.Type != suite.EventKernelComplete {
		return
	}
	icon := "✓"
	if !event.Valid {
		icon = "✗"
	}
	fmt.Printf("%s [%d/%d] %s (%s)\n", icon, event.Index, event.Total, event.Name, event.Mode)
}
