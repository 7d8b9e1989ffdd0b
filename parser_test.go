package main

import (
	"strings"
	"testing"
)

// TestParseFlatStatements tests that token runs become the expected
// statement nodes with signed amounts
func TestParseFlatStatements(t *testing.T) {
	program, err := NewParser("+++-->><.,").ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}

	want := []Statement{
		&AddStmt{Amount: 3},
		&AddStmt{Amount: -2},
		&MoveStmt{Amount: 2},
		&MoveStmt{Amount: -1},
		&OutputStmt{},
		&InputStmt{},
	}
	if len(program.Statements) != len(want) {
		t.Fatalf("got %d statements, want %d", len(program.Statements), len(want))
	}
	for i, stmt := range program.Statements {
		if stmt.String() != want[i].String() {
			t.Errorf("statement %d renders %q, want %q", i, stmt.String(), want[i].String())
		}
	}
}

// TestParseLoopNesting tests that loop bodies nest structurally
func TestParseLoopNesting(t *testing.T) {
	program, err := NewParser("+[>[-]<]").ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}

	if len(program.Statements) != 2 {
		t.Fatalf("got %d top-level statements, want 2", len(program.Statements))
	}
	outer, ok := program.Statements[1].(*LoopStmt)
	if !ok {
		t.Fatalf("statement 1 is %T, want *LoopStmt", program.Statements[1])
	}
	if len(outer.Body) != 3 {
		t.Fatalf("outer loop body has %d statements, want 3", len(outer.Body))
	}
	inner, ok := outer.Body[1].(*LoopStmt)
	if !ok {
		t.Fatalf("outer body statement 1 is %T, want *LoopStmt", outer.Body[1])
	}
	if len(inner.Body) != 1 {
		t.Errorf("inner loop body has %d statements, want 1", len(inner.Body))
	}

	// The tree renders back to the source it came from
	if got := program.String(); got != "+[>[-]<]" {
		t.Errorf("String() = %q, want %q", got, "+[>[-]<]")
	}
}

// TestParseBracketErrors tests unmatched and unterminated loops, which must
// be rejected with positions before any code generation
func TestParseBracketErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
		line    int
		column  int
	}{
		{"unmatched_close", "+]", "unmatched ']'", 1, 2},
		{"close_without_any_open", "]", "unmatched ']'", 1, 1},
		{"extra_close_after_balanced", "[-]]", "unmatched ']'", 1, 4},
		{"unterminated_open", "+[-", "unterminated loop", 1, 2},
		{"unterminated_nested", "[[-]", "unterminated loop", 1, 1},
		{"unterminated_on_later_line", "+\n[", "unterminated loop", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(tt.source).ParseProgram()
			if err == nil {
				t.Fatalf("ParseProgram(%q) succeeded, want error", tt.source)
			}
			cerr, ok := err.(CompilerError)
			if !ok {
				t.Fatalf("error is %T, want CompilerError", err)
			}
			if !strings.Contains(cerr.Message, tt.message) {
				t.Errorf("message = %q, want it to contain %q", cerr.Message, tt.message)
			}
			if cerr.Location.Line != tt.line || cerr.Location.Column != tt.column {
				t.Errorf("location = %d:%d, want %d:%d",
					cerr.Location.Line, cerr.Location.Column, tt.line, tt.column)
			}
		})
	}
}

// TestLoopBalance tests that balanced programs always leave the parser with
// nothing open, regardless of nesting depth
func TestLoopBalance(t *testing.T) {
	sources := []string{
		"[]",
		"[[]]",
		"[][]",
		"+[>+[<-]>]",
		strings.Repeat("[", 50) + strings.Repeat("]", 50),
	}
	for _, source := range sources {
		if _, err := NewParser(source).ParseProgram(); err != nil {
			t.Errorf("ParseProgram(%q) failed: %v", source, err)
		}
	}
}

// TestProcedureStateMachine tests the unseen -> defining -> ready
// progression through definition and call
func TestProcedureStateMachine(t *testing.T) {
	parser := NewParserWithProcs("!+!!")
	program, err := parser.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}

	if got := parser.ProcedureState('!'); got != ProcReady {
		t.Errorf("state of '!' = %v, want %v", got, ProcReady)
	}
	if got := parser.ProcedureState('?'); got != ProcUnseen {
		t.Errorf("state of '?' = %v, want %v", got, ProcUnseen)
	}

	if len(program.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(program.Statements))
	}
	def, ok := program.Statements[0].(*ProcDefStmt)
	if !ok {
		t.Fatalf("statement 0 is %T, want *ProcDefStmt", program.Statements[0])
	}
	if def.Name != '!' || len(def.Body) != 1 {
		t.Errorf("definition = %q with %d body statements, want '!' with 1", def.Name, len(def.Body))
	}
	call, ok := program.Statements[1].(*ProcCallStmt)
	if !ok {
		t.Fatalf("statement 1 is %T, want *ProcCallStmt", program.Statements[1])
	}
	if call.Name != '!' {
		t.Errorf("call name = %q, want '!'", call.Name)
	}
}

// TestNestedProcedureDefinition tests a definition opened inside another
// definition's body, which must close before the outer one does
func TestNestedProcedureDefinition(t *testing.T) {
	program, err := NewParserWithProcs("!?+?!?").ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}

	outer, ok := program.Statements[0].(*ProcDefStmt)
	if !ok {
		t.Fatalf("statement 0 is %T, want *ProcDefStmt", program.Statements[0])
	}
	if outer.Name != '!' {
		t.Errorf("outer definition = %q, want '!'", outer.Name)
	}
	inner, ok := outer.Body[0].(*ProcDefStmt)
	if !ok {
		t.Fatalf("outer body statement 0 is %T, want *ProcDefStmt", outer.Body[0])
	}
	if inner.Name != '?' {
		t.Errorf("inner definition = %q, want '?'", inner.Name)
	}
	if _, ok := program.Statements[1].(*ProcCallStmt); !ok {
		t.Errorf("statement 1 is %T, want *ProcCallStmt", program.Statements[1])
	}
}

// TestProcedureErrors tests the malformed definition shapes the parser
// must reject
func TestProcedureErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		// '!' referenced from inside its own body: the loop opened after
		// the definition is innermost, so the second '!' cannot close it
		{"recursive_reference", "![!]", "unfinished definition"},
		{"recursive_reference_in_nested_definition", "!?!?!", "unfinished definition"},
		{"interleaved_definitions", "!?!?", "unfinished definition"},
		{"unterminated_definition", "!+", "unterminated definition"},
		{"bracket_closes_definition", "[!+]", "still being defined"},
		{"definition_spans_loop_close", "+[!]!", "still being defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParserWithProcs(tt.source).ParseProgram()
			if err == nil {
				t.Fatalf("ParseProgram(%q) succeeded, want error", tt.source)
			}
			cerr, ok := err.(CompilerError)
			if !ok {
				t.Fatalf("error is %T, want CompilerError", err)
			}
			if !strings.Contains(cerr.Message, tt.message) {
				t.Errorf("message = %q, want it to contain %q", cerr.Message, tt.message)
			}
		})
	}
}

// TestProcedureInsideLoopBody tests that a whole definition nested inside a
// loop parses, as long as it closes before the loop does
func TestProcedureInsideLoopBody(t *testing.T) {
	program, err := NewParserWithProcs("+[!+!!-]").ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram failed: %v", err)
	}
	loop, ok := program.Statements[1].(*LoopStmt)
	if !ok {
		t.Fatalf("statement 1 is %T, want *LoopStmt", program.Statements[1])
	}
	if len(loop.Body) != 3 {
		t.Fatalf("loop body has %d statements, want 3", len(loop.Body))
	}
	if _, ok := loop.Body[0].(*ProcDefStmt); !ok {
		t.Errorf("loop body statement 0 is %T, want *ProcDefStmt", loop.Body[0])
	}
	if _, ok := loop.Body[1].(*ProcCallStmt); !ok {
		t.Errorf("loop body statement 1 is %T, want *ProcCallStmt", loop.Body[1])
	}
}
