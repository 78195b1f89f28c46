// Command igesbatch runs the read/validate/rescale/write pipeline over
// every .igs file in a directory concurrently, writing a manifest.json
// summary alongside the converted files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"iges-kernel/internal/batch"
	"iges-kernel/internal/config"
)

func main() {
	configFile := flag.String("config", "", "path to config.json file")
	inputDir := flag.String("input", "", "directory of .igs files to process (required)")
	outputDir := flag.String("output", "", "output directory (default: ./out)")
	workers := flag.Int("workers", 0, "number of worker goroutines (default: NumCPU)")
	scale := flag.Float64("scale", 1, "uniform rescale factor applied to every file (1 = no rescale)")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "igesbatch: config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{InputDir: *inputDir, OutputDir: *outputDir, Workers: *workers})

	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "igesbatch: -input is required")
		os.Exit(2)
	}

	matches, err := filepath.Glob(filepath.Join(cfg.InputDir, "*.igs"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "igesbatch: glob: %v\n", err)
		os.Exit(1)
	}
	if len(matches) == 0 {
		fmt.Println("No .igs files found.")
		os.Exit(0)
	}

	fmt.Printf("IGES batch converter\n")
	fmt.Printf("Files: %d, Workers: %d\n", len(matches), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batch.Config{
		OutputDir:      cfg.OutputDir,
		TargetScale:    *scale,
		MinResOverride: cfg.MinResolution,
		Workers:        cfg.Workers,
	}, matches)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			fmt.Printf("  FAIL %s: %s\n", r.Path, r.Error)
		}
	}
	fmt.Printf("Converted: %d/%d\n", success, len(matches))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err == nil {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
