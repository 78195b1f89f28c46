// Command igeswatch watches a directory for .igs files being written or
// changed and runs the validate/convert pipeline on a file each time a
// create or write event arrives for it (events are not debounced), so an
// editor or upstream export tool can be pointed at the
// directory and get immediate feedback.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"iges-kernel/internal/batch"
	"iges-kernel/internal/config"
)

func main() {
	watchDir := flag.String("watch", "", "directory to watch for .igs files (required)")
	outputDir := flag.String("output", "", "output directory (default: ./out)")
	flag.Parse()

	if *watchDir == "" {
		fmt.Fprintln(os.Stderr, "usage: igeswatch -watch <dir> [-output <dir>]")
		os.Exit(2)
	}

	var cfg config.Config
	cfg.Resolve(config.Flags{OutputDir: *outputDir})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "igeswatch: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Close()

	if err := watcher.Add(*watchDir); err != nil {
		fmt.Fprintf(os.Stderr, "igeswatch: watch %s: %v\n", *watchDir, err)
		os.Exit(1)
	}
	fmt.Printf("Watching %s, output -> %s\n", *watchDir, cfg.OutputDir)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".igs") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			handleChange(cfg, ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "igeswatch: watcher error: %v\n", err)
		}
	}
}

func handleChange(cfg config.Config, path string) {
	results := batch.Run(batch.Config{
		OutputDir:      cfg.OutputDir,
		TargetScale:    1,
		MinResOverride: cfg.MinResolution,
		Workers:        1,
	}, []string{path})

	r := results[0]
	if r.Success {
		fmt.Printf("%s: ok (%d warnings)\n", path, r.Warnings)
	} else {
		fmt.Printf("%s: FAILED: %s\n", path, r.Error)
	}
}
