// Completion: 100% - Error handling complete, clear and helpful messages
package main

import (
	"fmt"
	"strings"

	"github.com/xyproto/env/v2"
)

// errors.go - Compile error representation and rendering
//
// Every malformed construct is fatal: the compiler reports the first error
// and stops, so there is no collector and no recovery. Errors carry a source
// position and render with the offending line underlined.

// ErrorCategory classifies the type of error
type ErrorCategory int

const (
	CategorySyntax ErrorCategory = iota
	CategoryCodegen
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategoryCodegen:
		return "codegen"
	case CategoryInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// SourceLocation represents a position in source code
type SourceLocation struct {
	File   string
	Line   int
	Column int
	Length int // Length of the problematic token
}

func (loc SourceLocation) String() string {
	if loc.File == "" {
		return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
	}
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}

// ErrorContext provides additional context for an error
type ErrorContext struct {
	SourceLine string // The actual line of source code
	HelpText   string // Explanatory help text
}

// CompilerError represents a single fatal compilation error
type CompilerError struct {
	Category ErrorCategory
	Message  string
	Location SourceLocation
	Context  ErrorContext
}

// Error implements the error interface
func (e CompilerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// WithSource returns a copy of the error annotated with the file name and
// the offending source line, so Format can render the caret block.
func (e CompilerError) WithSource(source, filename string) CompilerError {
	e.Location.File = filename
	if e.Context.SourceLine == "" && source != "" && e.Location.Line > 0 {
		lines := strings.Split(source, "\n")
		if e.Location.Line <= len(lines) {
			e.Context.SourceLine = lines[e.Location.Line-1]
		}
	}
	return e
}

// Format returns a nicely formatted error message with context
func (e CompilerError) Format(useColor bool) string {
	var sb strings.Builder

	// Error header
	if useColor {
		sb.WriteString("\033[1;31m") // Bold red
	}
	sb.WriteString("error: ")
	if useColor {
		sb.WriteString("\033[0m") // Reset
	}
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	// Location
	if useColor {
		sb.WriteString("\033[1;34m") // Bold blue
	}
	sb.WriteString("  --> ")
	sb.WriteString(e.Location.String())
	if useColor {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	// Source context
	if e.Context.SourceLine != "" {
		lineNum := fmt.Sprintf("%d", e.Location.Line)
		padding := strings.Repeat(" ", len(lineNum)+1)

		sb.WriteString(padding)
		sb.WriteString("|\n")
		sb.WriteString(lineNum)
		sb.WriteString(" | ")
		sb.WriteString(e.Context.SourceLine)
		sb.WriteString("\n")
		sb.WriteString(padding)
		sb.WriteString("| ")

		// Underline the error position
		if e.Location.Column > 0 {
			sb.WriteString(strings.Repeat(" ", e.Location.Column-1))
			if useColor {
				sb.WriteString("\033[1;31m") // Bold red
			}
			if e.Location.Length > 0 {
				sb.WriteString(strings.Repeat("^", e.Location.Length))
			} else {
				sb.WriteString("^")
			}
			if useColor {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	// Help text
	if e.Context.HelpText != "" {
		if useColor {
			sb.WriteString("\033[1;36m") // Bold cyan
		}
		sb.WriteString("   note: ")
		if useColor {
			sb.WriteString("\033[0m")
		}
		sb.WriteString(e.Context.HelpText)
		sb.WriteString("\n")
	}

	return sb.String()
}

// UseColor reports whether error output should be colorized.
// Follows the NO_COLOR convention.
func UseColor() bool {
	return !env.Has("NO_COLOR")
}

// Helper functions for creating the errors this compiler emits

// IllegalCharacterError creates an error for characters outside the
// alphabet. The procedure-extended variant also accepts non-alphanumeric
// identifier runes, so its help text says so.
func IllegalCharacterError(ch rune, loc SourceLocation, procs bool) CompilerError {
	help := "valid characters are > < + - . , [ ] and whitespace"
	if procs {
		help = "valid characters are > < + - . , [ ], whitespace, and non-alphanumeric procedure identifiers"
	}
	return CompilerError{
		Category: CategorySyntax,
		Message:  fmt.Sprintf("illegal character %q", ch),
		Location: loc,
		Context: ErrorContext{
			HelpText: help,
		},
	}
}

// UnmatchedBracketError creates an error for ']' with no open loop
func UnmatchedBracketError(loc SourceLocation) CompilerError {
	return CompilerError{
		Category: CategorySyntax,
		Message:  "unmatched ']'",
		Location: loc,
		Context: ErrorContext{
			HelpText: "every ']' must close a preceding '['",
		},
	}
}

// UnterminatedLoopError creates an error for '[' still open at end of input
func UnterminatedLoopError(loc SourceLocation) CompilerError {
	return CompilerError{
		Category: CategorySyntax,
		Message:  "unterminated loop",
		Location: loc,
		Context: ErrorContext{
			HelpText: "this '[' is never closed by a ']'",
		},
	}
}

// UnterminatedProcedureError creates an error for a procedure definition
// still open at end of input
func UnterminatedProcedureError(name rune, loc SourceLocation) CompilerError {
	return CompilerError{
		Category: CategorySyntax,
		Message:  fmt.Sprintf("unterminated definition of procedure %q", name),
		Location: loc,
		Context: ErrorContext{
			HelpText: fmt.Sprintf("a second %q must close the definition", name),
		},
	}
}

// OpenProcedureReferenceError creates an error for a procedure identifier
// used inside its own unfinished definition (recursive or interleaved)
func OpenProcedureReferenceError(name rune, loc SourceLocation) CompilerError {
	return CompilerError{
		Category: CategorySyntax,
		Message:  fmt.Sprintf("procedure %q referenced inside its own unfinished definition", name),
		Location: loc,
		Context: ErrorContext{
			HelpText: "a procedure cannot be called or re-opened before its definition closes",
		},
	}
}

// BracketClosesProcedureError creates an error for ']' appearing while a
// procedure definition opened inside the loop is still open
func BracketClosesProcedureError(name rune, loc SourceLocation) CompilerError {
	return CompilerError{
		Category: CategorySyntax,
		Message:  fmt.Sprintf("']' found while procedure %q is still being defined", name),
		Location: loc,
		Context: ErrorContext{
			HelpText: "procedure definitions must close before the enclosing loop does",
		},
	}
}

// InternalError creates a fatal internal error
func InternalError(message string, loc SourceLocation) CompilerError {
	return CompilerError{
		Category: CategoryInternal,
		Message:  message,
		Location: loc,
		Context: ErrorContext{
			HelpText: "this is an internal compiler error, please report it",
		},
	}
}
