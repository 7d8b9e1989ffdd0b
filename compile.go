// compile.go - Compilation pipeline driver
// Completion: 100%
//
// Runs the stages in order: read, parse, generate IR, emit the object
// through clang, link with the system C compiler driver. Each stage either
// completes or aborts the compile; there is no error recovery and no
// partial output.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Source file extensions. The .bfp extension selects the procedure-extended
// variant; --procs forces it for any input.
const (
	ExtBrainfuck = ".bf"
	ExtProcs     = ".bfp"
)

// ObjectFile is the fixed relative path of the relocatable produced by the
// emission stage
const ObjectFile = "main.o"

// DefaultExecutable is the executable name used when -o is not given
const DefaultExecutable = "main"

// usesProcs reports whether path selects the procedure-extended variant
// by extension
func usesProcs(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ExtProcs)
}

// parseSource lexes and parses source, attaching the file name and the
// offending line to any compile error so the CLI can render it.
func parseSource(source, filename string, procs bool) (*Program, error) {
	var parser *Parser
	if procs {
		parser = NewParserWithProcs(source)
	} else {
		parser = NewParser(source)
	}

	program, err := parser.ParseProgram()
	if err != nil {
		if cerr, ok := err.(CompilerError); ok {
			return nil, cerr.WithSource(source, filename)
		}
		return nil, err
	}
	return program, nil
}

// CompileBF compiles inputPath to an executable at outputPath, selecting
// the source variant from the file extension
func CompileBF(inputPath, outputPath string) error {
	return CompileBFWithOptions(inputPath, outputPath, usesProcs(inputPath), VerboseMode)
}

// CompileBFWithOptions runs the whole pipeline for one source file
func CompileBFWithOptions(inputPath, outputPath string, procs, verbose bool) (err error) {
	// Recover from generator panics and convert to errors
	defer func() {
		if r := recover(); r != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "DEBUG: Panic stack trace:\n")
				debug.PrintStack()
			}
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("panic during compilation: %v", r)
			}
		}
	}()

	pipeline := NewCompilationPipeline()

	content, readErr := os.ReadFile(inputPath)
	if readErr != nil {
		return fmt.Errorf("failed to read %s: %v", inputPath, readErr)
	}

	pipeline.AdvanceTo(StageParse)
	program, parseErr := parseSource(string(content), inputPath, procs)
	if parseErr != nil {
		return parseErr
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "-> Parsed %d top-level statement(s)\n", len(program.Statements))
	}

	pipeline.AdvanceTo(StageGenerate)
	module, genErr := GenerateModule(program)
	if genErr != nil {
		return genErr
	}

	pipeline.AdvanceTo(StageEmit)
	if emitErr := EmitObject(module, ObjectFile, verbose); emitErr != nil {
		return emitErr
	}

	pipeline.AdvanceTo(StageLink)
	if linkErr := LinkExecutable(ObjectFile, outputPath, verbose); linkErr != nil {
		return linkErr
	}

	pipeline.AdvanceTo(StageComplete)
	return nil
}

// CompileToIR parses inputPath and returns the textual IR module without
// invoking any external tool. Used by --emit-ir.
func CompileToIR(inputPath string, procs bool) (string, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %v", inputPath, err)
	}

	program, err := parseSource(string(content), inputPath, procs)
	if err != nil {
		return "", err
	}

	module, err := GenerateModule(program)
	if err != nil {
		return "", err
	}

	return module.String(), nil
}
