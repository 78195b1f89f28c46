// Package batch runs the read/validate/rescale/write pipeline over many
// files concurrently with a fixed worker pool, the same shape as the
// teacher's own batch render driver.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"iges-kernel/internal/graph"
	"iges-kernel/internal/rescale"
	"iges-kernel/internal/section"
	"iges-kernel/internal/validate"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir     string
	TargetScale   float64 // 1 means no rescale
	MinResOverride float64
	Workers       int
}

// Result holds the outcome of processing one file.
type Result struct {
	Path     string
	Success  bool
	Warnings int
	Error    string
}

// Run processes every path in files using a worker pool, mirroring the
// teacher's ticker-plus-channel pattern.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, rate)
				}
			}
		}
	}()

	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Path: path, Error: err.Error()}
	}
	defer f.Close()

	m, err := section.Read(f)
	if err != nil {
		return Result{Path: path, Error: fmt.Sprintf("read: %v", err)}
	}
	graph.Resolve(m)

	if cfg.MinResOverride > 0 {
		m.Global.MinResolution = cfg.MinResOverride
	}

	report := validate.Load(m)

	if cfg.TargetScale != 0 && cfg.TargetScale != 1 {
		rescale.Apply(m, cfg.TargetScale)
	}

	if err := validate.Write(m); err != nil {
		return Result{Path: path, Warnings: len(report.Items), Error: fmt.Sprintf("validate: %v", err)}
	}

	outPath := filepath.Join(cfg.OutputDir, filepath.Base(path))
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return Result{Path: path, Error: err.Error()}
	}
	out, err := os.Create(outPath)
	if err != nil {
		return Result{Path: path, Error: err.Error()}
	}
	defer out.Close()

	if err := section.Write(out, m); err != nil {
		return Result{Path: path, Warnings: len(report.Items), Error: fmt.Sprintf("write: %v", err)}
	}

	return Result{Path: path, Warnings: len(report.Items), Success: true}
}
