// Completion: 100% - Utility module complete
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tebeka/atexit"
)

// cli.go - User-friendly command-line interface for bf-llvm
//
// This file implements a Go-like CLI interface with subcommands:
// - bf-llvm (default: show help)
// - bf-llvm build <file> (compile to executable)
// - bf-llvm run <file> (compile and run immediately)
// - bf-llvm <file.bf> (shorthand for build)
//
// Also supports shebang execution: #!/usr/bin/bf-llvm

// CommandContext holds the execution context for a CLI command
type CommandContext struct {
	Args       []string
	Procs      bool
	Verbose    bool
	Quiet      bool
	OutputPath string
}

// isSourceFile reports whether path has one of the two source extensions
func isSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ExtBrainfuck || ext == ExtProcs
}

// RunCLI is the main entry point for the user-friendly CLI
// It determines which command to run based on arguments
func RunCLI(args []string, procs, verbose, quiet bool, outputPath string) error {
	ctx := &CommandContext{
		Args:       args,
		Procs:      procs,
		Verbose:    verbose,
		Quiet:      quiet,
		OutputPath: outputPath,
	}

	// No arguments - show help
	if len(args) == 0 {
		return cmdHelp(ctx)
	}

	// Check for shebang execution
	// If first arg is a source file and it starts with #!, we're in shebang mode
	if isSourceFile(args[0]) {
		content, err := os.ReadFile(args[0])
		if err == nil && len(content) > 2 && content[0] == '#' && content[1] == '!' {
			// Shebang mode - run the file with remaining args
			return cmdRunShebang(ctx, args[0], args[1:])
		}
	}

	// Parse subcommand
	subcmd := args[0]

	switch subcmd {
	case "build":
		if len(args) < 2 {
			return fmt.Errorf("usage: bf-llvm build <file%s> [-o output]", ExtBrainfuck)
		}
		return cmdBuild(ctx, args[1:])

	case "run":
		if len(args) < 2 {
			return fmt.Errorf("usage: bf-llvm run <file%s> [args...]", ExtBrainfuck)
		}
		return cmdRun(ctx, args[1:])

	case "help", "--help", "-h":
		return cmdHelp(ctx)

	case "version", "--version", "-V":
		fmt.Println(versionString)
		return nil

	default:
		// Check if it's a source file (shorthand for build)
		if isSourceFile(subcmd) {
			return cmdBuild(ctx, args)
		}

		// Unknown command
		return fmt.Errorf("unknown command: %s\n\nRun 'bf-llvm help' for usage information", subcmd)
	}
}

// cmdBuild compiles a source file to an executable
// Confidence that this function is working: 90%
func cmdBuild(ctx *CommandContext, args []string) error {
	// Collect input files (all non-flag arguments)
	inputFiles := []string{}
	outputPath := ""

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-o":
			if i+1 >= len(args) {
				return fmt.Errorf("-o needs an output filename")
			}
			outputPath = args[i+1]
			i++ // Skip the output filename
		case strings.HasPrefix(args[i], "-"):
			return fmt.Errorf("unknown flag for build: %s", args[i])
		default:
			inputFiles = append(inputFiles, args[i])
		}
	}

	if len(inputFiles) == 0 {
		return fmt.Errorf("no input files specified")
	}
	// A program is exactly one source file; there is no multi-file linkage
	if len(inputFiles) > 1 {
		return fmt.Errorf("expected a single input file, got %d", len(inputFiles))
	}
	inputFile := inputFiles[0]

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputFile)
	}

	// If not in args, use context output path (from main -o flag)
	if outputPath == "" && ctx.OutputPath != "" {
		outputPath = ctx.OutputPath
	}
	if outputPath == "" {
		outputPath = DefaultExecutable
	}

	if ctx.Verbose {
		fmt.Fprintf(os.Stderr, "Building %s -> %s\n", inputFile, outputPath)
	}

	err := CompileBFWithOptions(inputFile, outputPath, ctx.Procs || usesProcs(inputFile), ctx.Verbose)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	if ctx.Verbose {
		fmt.Printf("Built: %s\n", outputPath)
	}

	return nil
}

// cmdRun compiles a source file to /dev/shm and executes it
func cmdRun(ctx *CommandContext, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: bf-llvm run <file%s> [args...]", ExtBrainfuck)
	}

	inputFile := args[0]
	programArgs := args[1:]

	// Create temporary executable in /dev/shm (Linux RAM disk for fast execution)
	// Fall back to temp directory if /dev/shm doesn't exist
	tmpDir := "/dev/shm"
	if _, err := os.Stat(tmpDir); os.IsNotExist(err) {
		tmpDir = os.TempDir()
	}

	// Create unique temporary filename
	baseName := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	tmpExec := filepath.Join(tmpDir, fmt.Sprintf("bf_run_%s_%d", baseName, os.Getpid()))

	if ctx.Verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s -> %s\n", inputFile, tmpExec)
	}

	err := CompileBFWithOptions(inputFile, tmpExec, ctx.Procs || usesProcs(inputFile), ctx.Verbose)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	// Registered instead of deferred so cleanup also runs on the exit-code
	// propagation path below
	atexit.Register(func() { os.Remove(tmpExec) })

	if ctx.Verbose {
		fmt.Fprintf(os.Stderr, "Running %s\n", tmpExec)
	}

	// Execute with arguments
	cmd := exec.Command(tmpExec, programArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err = cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			// Program ran but exited with non-zero status
			atexit.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("execution failed: %v", err)
	}

	return nil
}

// cmdRunShebang handles shebang execution (#!/usr/bin/bf-llvm)
func cmdRunShebang(ctx *CommandContext, scriptPath string, scriptArgs []string) error {
	// In shebang mode, we compile and run immediately
	// This is similar to cmdRun but optimized for shebang use

	tmpDir := "/dev/shm"
	if _, err := os.Stat(tmpDir); os.IsNotExist(err) {
		tmpDir = os.TempDir()
	}

	baseName := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
	tmpExec := filepath.Join(tmpDir, fmt.Sprintf("bf_shebang_%s_%d", baseName, os.Getpid()))

	// Compile (quietly unless verbose mode)
	err := CompileBFWithOptions(scriptPath, tmpExec, ctx.Procs || usesProcs(scriptPath), ctx.Verbose)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	atexit.Register(func() { os.Remove(tmpExec) })

	// Execute with script arguments
	cmd := exec.Command(tmpExec, scriptArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err = cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			atexit.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("execution failed: %v", err)
	}

	return nil
}

// cmdHelp displays usage information
func cmdHelp(ctx *CommandContext) error {
	fmt.Printf(`bf-llvm - A Brainfuck compiler built on LLVM (Version 1.1.0)

USAGE:
    bf-llvm <command> [arguments]

COMMANDS:
    build <file.bf>       Compile a source file to an executable
    run <file.bf>         Compile and run a program immediately
    help                  Show this help message
    version               Show version information

SHORTHAND:
    bf-llvm <file.bf>     Same as 'bf-llvm build <file.bf>'
    bf-llvm               Show this help message

FLAGS (must come before the filename):
    -o, --output <file>    Output executable filename (default: main)
    -v, --verbose          Verbose mode (show pipeline stages and tool invocations)
    --procs                Enable the procedure extension for any input file
    --emit-ir              Print the textual IR module instead of building
    --watch                Recompile whenever the source file changes
    -c <code>              Compile code given directly on the command line

FILE TYPES:
    .bf                    Classic eight-instruction programs
    .bfp                   Programs using the procedure extension

ENVIRONMENT:
    BF_CLANG, CLANG        Override the clang used for IR emission
    BF_CC, CC              Override the C compiler driver used for linking
    NO_COLOR               Disable colored diagnostics

EXAMPLES:
    # Compile a program
    bf-llvm build hello.bf
    bf-llvm build hello.bf -o hello

    # Compile and run immediately
    bf-llvm run hello.bf

    # Shorthand compilation
    bf-llvm hello.bf

    # Inspect the generated IR
    bf-llvm --emit-ir hello.bf

    # Run code straight from the command line
    bf-llvm -c '++++++++.'

    # Shebang execution (add #!/usr/bin/bf-llvm to the first line)
    chmod +x script.bf
    ./script.bf

DOCUMENTATION:
    For help or bug reports: https://github.com/BlueKossa/bf-llvm/issues

`)
	return nil
}
