package main

import (
	"strings"
	"testing"

	"github.com/xyproto/env/v2"
)

// TestErrorFormatting tests the caret rendering of a positioned error
func TestErrorFormatting(t *testing.T) {
	err := UnmatchedBracketError(SourceLocation{Line: 2, Column: 3, Length: 1})
	err = err.WithSource("+++\n++]--\n", "prog.bf")

	out := err.Format(false)

	for _, want := range []string{
		"error: unmatched ']'",
		"--> prog.bf:2:3",
		"2 | ++]--",
		"  |   ^",
		"note: every ']' must close a preceding '['",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted error missing %q:\n%s", want, out)
		}
	}
}

// TestErrorFormattingWithColor tests that color mode wraps the header in
// ANSI escapes and plain mode emits none
func TestErrorFormattingWithColor(t *testing.T) {
	err := UnterminatedLoopError(SourceLocation{Line: 1, Column: 1, Length: 1})
	err = err.WithSource("[", "loop.bf")

	if colored := err.Format(true); !strings.Contains(colored, "\033[1;31m") {
		t.Errorf("colored output missing ANSI escape:\n%q", colored)
	}
	if plain := err.Format(false); strings.Contains(plain, "\033[") {
		t.Errorf("plain output contains ANSI escape:\n%q", plain)
	}
}

// TestWithSourceAttachesLine tests that WithSource picks the right line out
// of multi-line source and leaves out-of-range locations alone
func TestWithSourceAttachesLine(t *testing.T) {
	base := CompilerError{
		Category: CategorySyntax,
		Message:  "test",
		Location: SourceLocation{Line: 3, Column: 1},
	}

	attached := base.WithSource("aaa\nbbb\nccc", "x.bf")
	if attached.Context.SourceLine != "ccc" {
		t.Errorf("SourceLine = %q, want %q", attached.Context.SourceLine, "ccc")
	}
	if attached.Location.File != "x.bf" {
		t.Errorf("File = %q, want %q", attached.Location.File, "x.bf")
	}

	outOfRange := base
	outOfRange.Location.Line = 10
	attached = outOfRange.WithSource("aaa", "x.bf")
	if attached.Context.SourceLine != "" {
		t.Errorf("SourceLine = %q for out-of-range line, want empty", attached.Context.SourceLine)
	}
}

// TestErrorInterface tests the short error string used outside the CLI
func TestErrorInterface(t *testing.T) {
	err := IllegalCharacterError('a', SourceLocation{File: "p.bf", Line: 1, Column: 4, Length: 1}, false)
	want := `p.bf:1:4: illegal character 'a'`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// TestIllegalCharacterHelpTextByVariant tests that the help note mentions
// procedure identifiers only when the extension is active
func TestIllegalCharacterHelpTextByVariant(t *testing.T) {
	loc := SourceLocation{Line: 1, Column: 1, Length: 1}

	base := IllegalCharacterError('a', loc, false)
	if strings.Contains(base.Context.HelpText, "procedure") {
		t.Errorf("base variant help mentions procedures: %q", base.Context.HelpText)
	}

	extended := IllegalCharacterError('a', loc, true)
	if !strings.Contains(extended.Context.HelpText, "procedure identifiers") {
		t.Errorf("extended variant help missing identifier note: %q", extended.Context.HelpText)
	}

	// The lexer threads the variant through
	_, err := NewLexerWithProcs("x").Tokenize()
	if err == nil {
		t.Fatal("Tokenize(\"x\") with procs succeeded, want error")
	}
	cerr, ok := err.(CompilerError)
	if !ok {
		t.Fatalf("error is %T, want CompilerError", err)
	}
	if !strings.Contains(cerr.Context.HelpText, "procedure identifiers") {
		t.Errorf("lexer error help missing identifier note: %q", cerr.Context.HelpText)
	}
}

// TestUseColorHonorsNoColor tests the NO_COLOR convention. The env cache
// is reloaded around the Setenv so the lookup sees the test environment.
func TestUseColorHonorsNoColor(t *testing.T) {
	t.Cleanup(env.Load)
	t.Setenv("NO_COLOR", "1")
	env.Load()
	if UseColor() {
		t.Error("UseColor() = true with NO_COLOR set")
	}
}

// TestErrorCategories tests category names used in diagnostics
func TestErrorCategories(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     string
	}{
		{CategorySyntax, "syntax"},
		{CategoryCodegen, "codegen"},
		{CategoryInternal, "internal"},
	}
	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.category, got, tt.want)
		}
	}
}
