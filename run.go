// Completion: 100% - Utility module complete
package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// haveToolchain reports whether the external tools the pipeline shells out
// to (clang for emission, cc for linking) are available on PATH
func haveToolchain() bool {
	if _, err := exec.LookPath(clangCommand()); err != nil {
		return false
	}
	if _, err := exec.LookPath(ccCommand()); err != nil {
		return false
	}
	return true
}

// compileAndRun is a helper function that compiles and runs Brainfuck code,
// returning the raw bytes the program wrote to stdout and stderr. Tests
// using it are skipped when clang or cc is missing.
func compileAndRun(t *testing.T, code string, procs bool) []byte {
	t.Helper()
	return compileAndRunWithInput(t, code, procs, "")
}

// compileAndRunWithInput is compileAndRun with bytes fed to the compiled
// program's stdin, for programs using ','
func compileAndRunWithInput(t *testing.T, code string, procs bool, stdin string) []byte {
	t.Helper()

	if !haveToolchain() {
		t.Skipf("skipping: %s or %s not found in PATH", clangCommand(), ccCommand())
	}

	tmpDir := t.TempDir()

	ext := ExtBrainfuck
	if procs {
		ext = ExtProcs
	}
	srcFile := filepath.Join(tmpDir, "test"+ext)
	if err := os.WriteFile(srcFile, []byte(code), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}

	// The object file lands at the fixed relative path, so run the whole
	// pipeline from the temp directory to keep tests from colliding
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer os.Chdir(cwd)

	exePath := filepath.Join(tmpDir, "test")
	if err := CompileBFWithOptions(srcFile, exePath, procs, false); err != nil {
		t.Fatalf("Compilation failed: %v", err)
	}

	cmd := exec.Command(exePath)
	cmd.Env = os.Environ()
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	runOutput, err := cmd.CombinedOutput()
	if err != nil {
		// The entry point returns the final value of main, so a non-zero
		// exit status alone is not an execution failure
		if _, ok := err.(*exec.ExitError); ok {
			return runOutput
		}
		t.Fatalf("Execution failed: %v\nOutput: %s", err, runOutput)
	}

	return runOutput
}
