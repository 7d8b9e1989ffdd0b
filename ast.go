// Completion: 100% - All parse tree nodes implemented
package main

import (
	"strings"
)

// AST Nodes
//
// Loop bodies and procedure bodies are structural: the parser nests them,
// so the code generator never sees an unbalanced construct. String() on any
// node renders it back as source text.

type Node interface {
	String() string
}

type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	var out strings.Builder
	for _, stmt := range p.Statements {
		out.WriteString(stmt.String())
	}
	return out.String()
}

type Statement interface {
	Node
	statementNode()
}

// MoveStmt moves the tape pointer. Amount is positive for '>' runs and
// negative for '<' runs; adjacent opposite runs are never merged.
type MoveStmt struct {
	Amount int
}

func (m *MoveStmt) String() string {
	if m.Amount < 0 {
		return strings.Repeat("<", -m.Amount)
	}
	return strings.Repeat(">", m.Amount)
}
func (m *MoveStmt) statementNode() {}

// AddStmt adjusts the current cell. Amount is positive for '+' runs and
// negative for '-' runs.
type AddStmt struct {
	Amount int
}

func (a *AddStmt) String() string {
	if a.Amount < 0 {
		return strings.Repeat("-", -a.Amount)
	}
	return strings.Repeat("+", a.Amount)
}
func (a *AddStmt) statementNode() {}

// OutputStmt writes the current cell to stdout
type OutputStmt struct{}

func (o *OutputStmt) String() string  { return "." }
func (o *OutputStmt) statementNode() {}

// InputStmt reads one byte from stdin into the current cell
type InputStmt struct{}

func (i *InputStmt) String() string  { return "," }
func (i *InputStmt) statementNode() {}

// LoopStmt is a [ ... ] loop with its body already nested
type LoopStmt struct {
	Body []Statement
}

func (l *LoopStmt) String() string {
	var out strings.Builder
	out.WriteString("[")
	for _, stmt := range l.Body {
		out.WriteString(stmt.String())
	}
	out.WriteString("]")
	return out.String()
}
func (l *LoopStmt) statementNode() {}

// ProcDefStmt defines a procedure: the identifier rune, then the body,
// then the identifier again to close it
type ProcDefStmt struct {
	Name rune
	Body []Statement
}

func (p *ProcDefStmt) String() string {
	var out strings.Builder
	out.WriteRune(p.Name)
	for _, stmt := range p.Body {
		out.WriteString(stmt.String())
	}
	out.WriteRune(p.Name)
	return out.String()
}
func (p *ProcDefStmt) statementNode() {}

// ProcCallStmt invokes an already-defined procedure on the current cell
type ProcCallStmt struct {
	Name rune
}

func (p *ProcCallStmt) String() string  { return string(p.Name) }
func (p *ProcCallStmt) statementNode() {}
