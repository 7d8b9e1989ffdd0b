// Completion: 100% - Platform-specific module complete
//go:build windows
// +build windows

package main

// setupReloadSignal is a no-op on Windows, which has no SIGUSR1; watch mode
// still rebuilds on file changes
func setupReloadSignal(recompile func(string)) {
}
