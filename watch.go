// Completion: 100%
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// watch.go - Watch mode
//
// Recompiles the source file whenever it changes on disk. A rebuild can also
// be triggered manually with SIGUSR1 on platforms that have it.

func watchAndRecompile(sourceFile, outputFile string, procs bool) error {
	absPath, err := filepath.Abs(sourceFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n🔥 Watch mode enabled - monitoring %s\n", absPath)
	fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop, or send SIGUSR1 to trigger manual rebuild\n")
	fmt.Fprintf(os.Stderr, "Command: kill -USR1 %d\n\n", os.Getpid())

	// Initial compilation
	fmt.Fprintf(os.Stderr, "[%s] Initial compilation...\n", time.Now().Format("15:04:05"))
	if err := CompileBFWithOptions(absPath, outputFile, procs, VerboseMode); err != nil {
		return fmt.Errorf("initial compilation failed: %v", err)
	}
	fmt.Fprintf(os.Stderr, "✅ Wrote %s\n", outputFile)

	// Rebuild function shared by the file watcher and the signal handler.
	// There is no incremental state; every trigger reruns the whole pipeline.
	recompile := func(trigger string) {
		fmt.Fprintf(os.Stderr, "\n[%s] %s\n", time.Now().Format("15:04:05"), trigger)

		if err := CompileBFWithOptions(absPath, outputFile, procs, VerboseMode); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Compilation failed: %v\n", err)
			return
		}

		fmt.Fprintf(os.Stderr, "✅ Wrote %s\n", outputFile)
	}

	// Set up signal handler for USR1
	setupReloadSignal(recompile)

	// Set up file watcher
	watcher, err := NewFileWatcher(func(path string) {
		recompile(fmt.Sprintf("File changed: %s", filepath.Base(path)))
	})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.AddFile(absPath); err != nil {
		return fmt.Errorf("failed to watch file: %v", err)
	}

	watcher.Watch()
	return nil
}
