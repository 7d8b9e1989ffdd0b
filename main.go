// Completion: 100% - CLI interface complete, all flags working
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tebeka/atexit"
)

// A tiny compiler that lowers tape programs to native executables through
// LLVM IR, clang and the system C compiler driver

const versionString = "bf-llvm 1.1.0"

// Global flags for controlling output verbosity
var VerboseMode bool
var QuietMode bool

// reportError renders err on stderr and exits through the atexit handlers
func reportError(err error) {
	var cerr CompilerError
	if errors.As(err, &cerr) {
		fmt.Fprintln(os.Stderr, cerr.Format(UseColor()))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	atexit.Exit(1)
}

func main() {
	// NOTE: Go's flag package stops parsing at the first non-flag argument
	// So flags must come BEFORE the filename: bf-llvm --procs program.bf
	// NOT: bf-llvm program.bf --procs
	var outputFilenameFlag = flag.String("o", DefaultExecutable, "output executable filename")
	var outputFilenameLongFlag = flag.String("output", DefaultExecutable, "output executable filename")
	var versionShort = flag.Bool("V", false, "print version information and exit")
	var version = flag.Bool("version", false, "print version information and exit")
	var verbose = flag.Bool("v", false, "verbose mode (show pipeline stages and tool invocations)")
	var verboseLong = flag.Bool("verbose", false, "verbose mode (show pipeline stages and tool invocations)")
	var procsFlag = flag.Bool("procs", false, "enable the procedure extension regardless of file extension")
	var emitIRFlag = flag.Bool("emit-ir", false, "print the textual IR module instead of building")
	var codeFlag = flag.String("c", "", "compile code given on the command line")
	var watchFlag = flag.Bool("watch", false, "watch mode: recompile when the source file changes")
	flag.Parse()

	if *version || *versionShort {
		fmt.Println(versionString)
		atexit.Exit(0)
	}

	// Set global verbosity flag (use whichever was specified)
	VerboseMode = *verbose || *verboseLong
	// Quiet mode is false by default (commands should show progress)
	QuietMode = false

	// Use whichever output flag was specified (prefer short form if both given)
	outputFilename := *outputFilenameFlag
	outputFlagProvided := false
	// Check if user explicitly provided -o or --output flag
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "o" || f.Name == "output" {
			outputFlagProvided = true
		}
	})
	if *outputFilenameLongFlag != DefaultExecutable {
		outputFilename = *outputFilenameLongFlag
	}
	if *outputFilenameFlag != DefaultExecutable {
		outputFilename = *outputFilenameFlag
	}

	inputFiles := flag.Args()

	if VerboseMode {
		fmt.Fprintf(os.Stderr, "----=[ %s ]=----\n", versionString)
	}

	// Handle -c flag for inline code compilation
	if *codeFlag != "" {
		ext := ExtBrainfuck
		if *procsFlag {
			ext = ExtProcs
		}
		tmpFile, err := os.CreateTemp("", "bf_inline_*"+ext)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to create temp file: %v\n", err)
			atexit.Exit(1)
		}
		tmpFilename := tmpFile.Name()
		atexit.Register(func() { os.Remove(tmpFilename) })

		if _, err := tmpFile.WriteString(*codeFlag); err != nil {
			tmpFile.Close()
			fmt.Fprintf(os.Stderr, "Error: Failed to write to temp file: %v\n", err)
			atexit.Exit(1)
		}
		tmpFile.Close()

		if *emitIRFlag {
			text, err := CompileToIR(tmpFilename, *procsFlag)
			if err != nil {
				reportError(err)
			}
			fmt.Print(text)
			atexit.Exit(0)
		}

		writeToFilename := outputFilename
		if !outputFlagProvided {
			writeToFilename = filepath.Join(os.TempDir(), "bf_inline")
		}
		if err := CompileBFWithOptions(tmpFilename, writeToFilename, *procsFlag, VerboseMode); err != nil {
			reportError(err)
		}
		if VerboseMode {
			fmt.Fprintf(os.Stderr, "-> Wrote executable: %s\n", writeToFilename)
		} else if !outputFlagProvided {
			fmt.Println(writeToFilename)
		}
		atexit.Exit(0)
	}

	// --emit-ir prints the module and stops before any external tool runs
	if *emitIRFlag {
		if len(inputFiles) == 0 {
			fmt.Fprintf(os.Stderr, "Error: --emit-ir requires an input file\n")
			atexit.Exit(1)
		}
		file := inputFiles[0]
		text, err := CompileToIR(file, *procsFlag || usesProcs(file))
		if err != nil {
			reportError(err)
		}
		fmt.Print(text)
		atexit.Exit(0)
	}

	// Watch mode compiles once and then recompiles on every change
	if *watchFlag {
		if len(inputFiles) == 0 {
			fmt.Fprintf(os.Stderr, "Error: --watch requires an input file\n")
			atexit.Exit(1)
		}
		file := inputFiles[0]
		if err := watchAndRecompile(file, outputFilename, *procsFlag || usesProcs(file)); err != nil {
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
			atexit.Exit(1)
		}
		atexit.Exit(0)
	}

	// Everything else goes through the subcommand CLI, which also handles
	// shebang scripts and the bare-filename shorthand
	cliOutputPath := ""
	if outputFlagProvided {
		cliOutputPath = outputFilename
	}
	args := inputFiles
	if len(args) == 0 {
		args = []string{"help"}
	}
	if err := RunCLI(args, *procsFlag, VerboseMode, QuietMode, cliOutputPath); err != nil {
		reportError(err)
	}
	atexit.Exit(0)
}
