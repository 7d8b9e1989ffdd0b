package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestBasicPrograms compiles and runs classic eight-symbol programs,
// checking the exact bytes they write. Skipped when clang or cc is missing.
func TestBasicPrograms(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []byte
	}{
		{
			name:     "eight_increments_then_output",
			source:   "++++++++.",
			expected: []byte{8},
		},
		{
			name: "cell_doubling_loop",
			// Cell 0 counts down from 5 while cell 1 gains 2 per iteration
			source:   "+++++[->++<]>.",
			expected: []byte{10},
		},
		{
			name:     "multiplication_via_nested_add",
			source:   "+++[->+++<]>.",
			expected: []byte{9},
		},
		{
			name:     "wraparound_256_increments",
			source:   strings.Repeat("+", 256) + ".",
			expected: []byte{0},
		},
		{
			name:     "decrement_below_zero_wraps",
			source:   "-.",
			expected: []byte{255},
		},
		{
			name:     "clear_loop",
			source:   "++++++++[-].",
			expected: []byte{0},
		},
		{
			name:     "hello_exclamation",
			source:   strings.Repeat("+", 33) + ".",
			expected: []byte("!"),
		},
		{
			name:     "multiple_outputs",
			source:   "+.+.+.",
			expected: []byte{1, 2, 3},
		},
		{
			name:     "loop_skipped_when_cell_zero",
			source:   "[+++++.]+.",
			expected: []byte{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compileAndRun(t, tt.source, false)
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("output = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestInputPrograms feeds bytes to compiled programs using ','
func TestInputPrograms(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		stdin    string
		expected []byte
	}{
		{
			name:     "echo_one_byte",
			source:   ",.",
			stdin:    "A",
			expected: []byte("A"),
		},
		{
			name:     "increment_input",
			source:   ",+.",
			stdin:    "A",
			expected: []byte("B"),
		},
		{
			name:     "echo_two_bytes_reversed",
			source:   ",>,.<.",
			stdin:    "hi",
			expected: []byte("ih"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compileAndRunWithInput(t, tt.source, false, tt.stdin)
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("output = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestProcedurePrograms compiles and runs procedure-extended programs
func TestProcedurePrograms(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []byte
	}{
		{
			name: "increment_procedure_called_thrice",
			// '!' wraps a single '+'; three calls leave cell 0 at 3
			source:   "!+!!!!.",
			expected: []byte{3},
		},
		{
			name: "procedure_pointer_scope_is_private",
			// '!' moves right and increments cell 1; the caller's
			// position stays on cell 0 afterwards
			source:   "!>+!+++!.",
			expected: []byte{3},
		},
		{
			name: "procedure_called_inside_loop",
			// '@' wraps two '+'; the loop runs it on cell 1 three
			// times, so cell 1 ends at 6
			source:   "@++@+++[->@<]>.",
			expected: []byte{6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compileAndRun(t, tt.source, true)
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("output = %v, want %v", got, tt.expected)
			}
		})
	}
}
