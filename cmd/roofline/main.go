// Roofline — remote roof measurement and estimation engine.
//
// Produces contractor-grade roof reports (3D surface areas, pitch,
// edge lengths, bill of materials, RAS recovery yield and solar
// potential) from Google Solar API building models, then exports them
// as JSON, PDF, Excel or DXF.
//
// Build:
//
//	go build -ldflags "-X main.Version=$(git describe --tags --always) \
//	  -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/roofline
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reusecanada/roofline/internal/engine"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "roofline",
		Short:         "Pro-grade roof measurement and material estimation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Measure one property and print or export its report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.LatSet = cmd.Flags().Changed("lat")
			opts.LngSet = cmd.Flags().Changed("lng")
			return runAnalyze(opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Address, "address", "", "Property street address to analyze")
	f.Float64Var(&opts.Lat, "lat", 0, "Latitude (with --lng, skips geocoding)")
	f.Float64Var(&opts.Lng, "lng", 0, "Longitude")
	f.StringVar(&opts.Shingle, "shingle-type", "architectural", "Shingle type: architectural or 3tab")
	f.StringVar(&opts.JSONPath, "json", "", "Write the full JSON report to this file")
	f.StringVar(&opts.PDFPath, "pdf", "", "Write the three-page PDF report to this file")
	f.StringVar(&opts.XLSXPath, "xlsx", "", "Write the Excel workbook to this file")
	f.StringVar(&opts.DXFPath, "dxf", "", "Write the roof plan DXF to this file")
	f.BoolVar(&opts.Quiet, "quiet", false, "Suppress the console summary")
	return cmd
}

func batchCmd() *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch [jobs-file]",
		Short: "Analyze every property in a CSV or Excel job list",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts.Path = args[0]
			return runBatch(opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.OutputDir, "output-dir", "", "Directory for per-job reports (default from config)")
	f.BoolVar(&opts.Quiet, "quiet", false, "Suppress per-job summaries")
	return cmd
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Show the manual vs automated inspection comparison table",
		Run: func(_ *cobra.Command, _ []string) {
			printComparison(os.Stdout, engine.CompareMethods())
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("roofline %s (built %s)\n", Version, BuildTime)
		},
	}
}
