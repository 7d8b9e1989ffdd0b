// Completion: 100% - Platform-specific module complete
//go:build !windows
// +build !windows

package main

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// setupReloadSignal makes SIGUSR1 trigger a manual rebuild in watch mode
func setupReloadSignal(recompile func(string)) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGUSR1)
	go func() {
		for range sigChan {
			recompile("Manual rebuild triggered (SIGUSR1)")
		}
	}()
}
