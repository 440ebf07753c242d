package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corebench/corebench/internal/models"
)

// opsPrinter renders throughput with thousands separators.
var opsPrinter = message.NewPrinter(language.English)

// formatDuration formats a duration in a consistent, human-readable way.
// This ensures stable output regardless of Go version changes.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

func printSummary(summary *models.RunSummary) {
	fmt.Println("=" + strings.Repeat("=", 60))
	fmt.Println(" BENCHMARK RESULTS")
	fmt.Println("=" + strings.Repeat("=", 60))
	fmt.Println()

	fmt.Printf("Tier:             %s\n", summary.Setup.Tier)
	fmt.Printf("Cores:            %d logical (prime core %d, %d workers)\n",
		summary.Setup.LogicalCores, summary.Setup.PrimeCore, summary.Setup.Workers)
	fmt.Printf("Scoring Method:   %s\n", summary.Setup.ScoringMethod)
	fmt.Printf("Single-Core:      %.1f\n", summary.SingleCoreScore)
	fmt.Printf("Multi-Core:       %.1f\n", summary.MultiCoreScore)
	fmt.Printf("Final Score:      %.1f\n", summary.FinalScore)
	fmt.Printf("Rating:           %s %s\n", summary.Rating, summary.Rating.Stars())
	fmt.Printf("Core Ratio:       %.2fx\n", summary.CoreRatio)
	fmt.Printf("Duration:         %s\n", formatDuration(time.Duration(summary.DurationMs)*time.Millisecond))
	if summary.Degraded {
		fmt.Println("Fidelity:         DEGRADED (affinity or priority control unavailable)")
	}
	fmt.Println()

	for _, mode := range []models.ExecutionMode{models.ModeSingleCore, models.ModeMultiCore} {
		results := summary.ResultsForMode(mode)
		if len(results) == 0 {
			continue
		}
		title := " SINGLE-CORE SUITE"
		if mode == models.ModeMultiCore {
			title = " MULTI-CORE SUITE"
		}
		fmt.Println("-" + strings.Repeat("-", 60))
		fmt.Println(title)
		fmt.Println("-" + strings.Repeat("-", 60))
		for _, kr := range results {
			icon := "✓"
			if !kr.IsValid {
				icon = "✗"
			}
			fmt.Printf("  %s %s %s  %s ops/s\n",
				icon,
				padRight(kr.DisplayName, 20),
				padLeft(fmt.Sprintf("%.1fms", kr.ExecutionTimeMs), 10),
				opsPrinter.Sprintf("%.0f", kr.OpsPerSecond))
			if kr.Error != "" {
				fmt.Printf("      • %s\n", kr.Error)
			}
		}
	}
	fmt.Println()
}

// padRight pads s with spaces so its terminal display width reaches
// width. Display names include π, so byte length is not usable here.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}

// FormatMarkdownReport formats a run summary as a markdown document
// suitable for dashboards and PR comments.
func FormatMarkdownReport(summary *models.RunSummary) string {
	var b strings.Builder

	b.WriteString("## 🏁 CPU Benchmark Results\n\n")

	statusIcon := "✅ Full fidelity"
	if summary.Degraded {
		statusIcon = "⚠️ Degraded fidelity"
	}
	invalid := summary.InvalidResults()
	if len(invalid) > 0 {
		statusIcon = "❌ Validation failures"
	}

	b.WriteString(fmt.Sprintf("**Status:** %s | **Score:** %.1f | **Rating:** %s %s\n\n",
		statusIcon, summary.FinalScore, summary.Rating, summary.Rating.Stars()))

	b.WriteString(fmt.Sprintf("- **Single-Core:** %.1f\n", summary.SingleCoreScore))
	b.WriteString(fmt.Sprintf("- **Multi-Core:** %.1f (%.2fx scaling on %d workers)\n",
		summary.MultiCoreScore, summary.CoreRatio, summary.Setup.Workers))
	b.WriteString(fmt.Sprintf("- **Tier:** %s | **Method:** %s | **Duration:** %s\n\n",
		summary.Setup.Tier, summary.Setup.ScoringMethod,
		formatDuration(time.Duration(summary.DurationMs)*time.Millisecond)))

	b.WriteString("### Kernel Results\n\n")
	b.WriteString("| Kernel | Mode | Time | Throughput | Valid |\n")
	b.WriteString("|--------|------|------|------------|-------|\n")
	for _, kr := range summary.KernelResults {
		icon := "✅"
		if !kr.IsValid {
			icon = "❌"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %.1fms | %s ops/s | %s |\n",
			kr.DisplayName, kr.Mode, kr.ExecutionTimeMs,
			opsPrinter.Sprintf("%.0f", kr.OpsPerSecond), icon))
	}
	b.WriteString("\n")

	if len(invalid) > 0 {
		b.WriteString("### Failed Validation\n\n")
		for _, kr := range invalid {
			reason := kr.Error
			if reason == "" {
				reason = "unknown"
			}
			b.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", kr.DisplayName, kr.Mode, reason))
		}
		b.WriteString("\n")
	}

	return b.String()
}
