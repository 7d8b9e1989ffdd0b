// parser.go - Brainfuck parser
// Completion: 100%
//
// This file transforms the token stream into a parse tree. It handles:
// - Loop nesting via an explicit stack of open constructs
// - Procedure definition tracking (unseen -> defining -> ready)
// - All structural validation, so malformed programs are rejected here
//   with source positions before any code generation happens

package main

import (
	"fmt"
)

// ProcState tracks how far a procedure identifier has progressed. States
// advance unseen -> defining -> ready, each visited at most once, and
// never regress.
type ProcState int

const (
	ProcUnseen ProcState = iota
	ProcDefining
	ProcReady
)

func (s ProcState) String() string {
	switch s {
	case ProcUnseen:
		return "unseen"
	case ProcDefining:
		return "defining"
	case ProcReady:
		return "ready"
	default:
		return "invalid"
	}
}

// openFrame is one entry on the parser's open-construct stack: a loop or a
// procedure definition whose closing token has not appeared yet. The bottom
// frame collects top-level statements and is never popped.
type openFrame struct {
	isProc bool
	name   rune // Procedure identifier when isProc is set
	body   []Statement
	line   int // Position of the opening token, for unterminated errors
	column int
}

type Parser struct {
	lexer  *Lexer
	states map[rune]ProcState
}

func NewParser(input string) *Parser {
	return &Parser{
		lexer:  NewLexer(input),
		states: make(map[rune]ProcState),
	}
}

// NewParserWithProcs returns a parser for the procedure-extended variant
func NewParserWithProcs(input string) *Parser {
	return &Parser{
		lexer:  NewLexerWithProcs(input),
		states: make(map[rune]ProcState),
	}
}

// ParseProgram consumes the whole token stream and builds the parse tree.
// It stops at the first malformed construct.
func (p *Parser) ParseProgram() (*Program, error) {
	stack := []*openFrame{{}}

	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TOKEN_EOF {
			break
		}

		top := stack[len(stack)-1]

		switch tok.Type {
		case TOKEN_RIGHT:
			top.body = append(top.body, &MoveStmt{Amount: tok.Count})
		case TOKEN_LEFT:
			top.body = append(top.body, &MoveStmt{Amount: -tok.Count})
		case TOKEN_PLUS:
			top.body = append(top.body, &AddStmt{Amount: tok.Count})
		case TOKEN_MINUS:
			top.body = append(top.body, &AddStmt{Amount: -tok.Count})
		case TOKEN_OUTPUT:
			top.body = append(top.body, &OutputStmt{})
		case TOKEN_INPUT:
			top.body = append(top.body, &InputStmt{})
		case TOKEN_LOOP_OPEN:
			stack = append(stack, &openFrame{line: tok.Line, column: tok.Column})
		case TOKEN_LOOP_CLOSE:
			if len(stack) == 1 {
				return nil, UnmatchedBracketError(tokenLocation(tok))
			}
			if top.isProc {
				return nil, BracketClosesProcedureError(top.name, tokenLocation(tok))
			}
			parent := stack[len(stack)-2]
			parent.body = append(parent.body, &LoopStmt{Body: top.body})
			stack = stack[:len(stack)-1]
		case TOKEN_PROC:
			switch p.states[tok.Proc] {
			case ProcUnseen:
				p.states[tok.Proc] = ProcDefining
				stack = append(stack, &openFrame{
					isProc: true,
					name:   tok.Proc,
					line:   tok.Line,
					column: tok.Column,
				})
			case ProcDefining:
				// Only the innermost open construct may close; anything
				// else is a reference inside an unfinished definition
				if len(stack) > 1 && top.isProc && top.name == tok.Proc {
					p.states[tok.Proc] = ProcReady
					parent := stack[len(stack)-2]
					parent.body = append(parent.body, &ProcDefStmt{Name: tok.Proc, Body: top.body})
					stack = stack[:len(stack)-1]
				} else {
					return nil, OpenProcedureReferenceError(tok.Proc, tokenLocation(tok))
				}
			case ProcReady:
				top.body = append(top.body, &ProcCallStmt{Name: tok.Proc})
			default:
				return nil, InternalError(
					fmt.Sprintf("procedure %q in invalid state %d", tok.Proc, p.states[tok.Proc]),
					tokenLocation(tok))
			}
		default:
			return nil, InternalError(
				fmt.Sprintf("unexpected token %s", tok.Type),
				tokenLocation(tok))
		}
	}

	// End of input: anything still open is unterminated
	if len(stack) > 1 {
		open := stack[len(stack)-1]
		loc := SourceLocation{Line: open.line, Column: open.column, Length: 1}
		if open.isProc {
			return nil, UnterminatedProcedureError(open.name, loc)
		}
		return nil, UnterminatedLoopError(loc)
	}

	return &Program{Statements: stack[0].body}, nil
}

// ProcedureState reports the registry state of an identifier after parsing.
func (p *Parser) ProcedureState(name rune) ProcState {
	return p.states[name]
}

func tokenLocation(tok Token) SourceLocation {
	return SourceLocation{Line: tok.Line, Column: tok.Column, Length: 1}
}
