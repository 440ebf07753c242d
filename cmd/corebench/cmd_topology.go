package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corebench/corebench/internal/affinity"
)

func newTopologyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "topology",
		Short: "Print the detected CPU topology",
		Long: `Print the logical core count, the big/little split detected from
sysfs max frequencies, and the prime core the single-core suite pins to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			topo := affinity.Detect()

			fmt.Printf("Logical cores: %d\n", topo.Logical)
			fmt.Printf("Prime core:    %d\n", topo.PrimeCore())
			fmt.Printf("Workers:       %d\n", topo.WorkerCount())

			if len(topo.MaxFreqKHz) == 0 {
				fmt.Println("Per-core frequencies: unavailable (no sysfs cpufreq data)")
				return nil
			}

			if topo.Asymmetric() {
				fmt.Printf("Big cores:     %v\n", topo.BigCores)
				fmt.Printf("Little cores:  %v\n", topo.LittleCores)
			} else {
				fmt.Println("Layout:        symmetric")
			}
			for core := 0; core < topo.Logical; core++ {
				if khz, ok := topo.MaxFreqKHz[core]; ok {
					fmt.Printf("  cpu%-3d %.2f GHz\n", core, float64(khz)/1e6)
				}
			}
			return nil
		},
	}
}
