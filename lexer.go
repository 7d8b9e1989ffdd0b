// Completion: 100% - Lexer complete, both source variants supported
package main

import (
	"unicode"
	"unicode/utf8"
)

// lexer.go - Tokenizer for Brainfuck source
//
// The eight classic symbols, with maximal runs of > < + - folded into a
// single token carrying the repeat count. A run ends at the first differing
// character; runs are never merged across whitespace gaps, so "++ ++" is
// two tokens. In the procedure-extended variant every other non-alphanumeric
// rune is a procedure identifier; in the base variant it is an error.
// Whitespace never produces a token.

// Token types for Brainfuck source
type TokenType int

const (
	TOKEN_EOF        TokenType = iota
	TOKEN_RIGHT                // > move pointer right (folded)
	TOKEN_LEFT                 // < move pointer left (folded)
	TOKEN_PLUS                 // + increment current cell (folded)
	TOKEN_MINUS                // - decrement current cell (folded)
	TOKEN_OUTPUT               // . write current cell to stdout
	TOKEN_INPUT                // , read one byte into current cell
	TOKEN_LOOP_OPEN            // [
	TOKEN_LOOP_CLOSE           // ]
	TOKEN_PROC                 // procedure identifier (extended variant only)
)

func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_RIGHT:
		return "'>'"
	case TOKEN_LEFT:
		return "'<'"
	case TOKEN_PLUS:
		return "'+'"
	case TOKEN_MINUS:
		return "'-'"
	case TOKEN_OUTPUT:
		return "'.'"
	case TOKEN_INPUT:
		return "','"
	case TOKEN_LOOP_OPEN:
		return "'['"
	case TOKEN_LOOP_CLOSE:
		return "']'"
	case TOKEN_PROC:
		return "procedure identifier"
	default:
		return "unknown token"
	}
}

type Token struct {
	Type   TokenType
	Count  int  // Repeat count; >1 only for folded >, <, +, - runs
	Proc   rune // Identifier rune when Type is TOKEN_PROC
	Line   int
	Column int // Column position (1-indexed) where the token starts
}

type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	procs  bool // Accept procedure identifiers (the .bfp variant)
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, pos: 0, line: 1, column: 1}

	// Skip shebang line if present (#!/usr/bin/bf-llvm)
	if len(input) >= 2 && input[0] == '#' && input[1] == '!' {
		for l.pos < len(l.input) && l.input[l.pos] != '\n' {
			l.pos++
		}
		if l.pos < len(l.input) && l.input[l.pos] == '\n' {
			l.pos++ // Skip the newline too
			l.line++
			l.column = 1
		}
	}

	return l
}

// NewLexerWithProcs returns a lexer for the procedure-extended variant,
// where non-alphanumeric runes outside the core alphabet name procedures.
func NewLexerWithProcs(input string) *Lexer {
	l := NewLexer(input)
	l.procs = true
	return l
}

// current decodes the rune at the read position without consuming it.
// A zero size means the input is exhausted.
func (l *Lexer) current() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *Lexer) advance() {
	r, size := l.current()
	if size == 0 {
		return
	}
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// NextToken returns the next token, or a TOKEN_EOF token once the input is
// exhausted. Lexing stops at the first illegal character.
func (l *Lexer) NextToken() (Token, error) {
	for {
		r, size := l.current()
		if size == 0 {
			return Token{Type: TOKEN_EOF, Line: l.line, Column: l.column}, nil
		}

		switch r {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '>':
			return l.foldRun('>', TOKEN_RIGHT), nil
		case '<':
			return l.foldRun('<', TOKEN_LEFT), nil
		case '+':
			return l.foldRun('+', TOKEN_PLUS), nil
		case '-':
			return l.foldRun('-', TOKEN_MINUS), nil
		case '.':
			return l.single(TOKEN_OUTPUT), nil
		case ',':
			return l.single(TOKEN_INPUT), nil
		case '[':
			return l.single(TOKEN_LOOP_OPEN), nil
		case ']':
			return l.single(TOKEN_LOOP_CLOSE), nil
		default:
			if l.procs && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				tok := Token{Type: TOKEN_PROC, Count: 1, Proc: r, Line: l.line, Column: l.column}
				l.advance()
				return tok, nil
			}
			loc := SourceLocation{Line: l.line, Column: l.column, Length: 1}
			return Token{}, IllegalCharacterError(r, loc, l.procs)
		}
	}
}

// single consumes one character and returns its token with a count of 1.
func (l *Lexer) single(tt TokenType) Token {
	tok := Token{Type: tt, Count: 1, Line: l.line, Column: l.column}
	l.advance()
	return tok
}

// foldRun consumes a maximal run of ch and returns one token carrying the
// run length. Only single-character lookahead: the run ends as soon as the
// next rune differs.
func (l *Lexer) foldRun(ch rune, tt TokenType) Token {
	tok := Token{Type: tt, Line: l.line, Column: l.column}
	for {
		r, size := l.current()
		if size == 0 || r != ch {
			return tok
		}
		tok.Count++
		l.advance()
	}
}

// Tokenize runs the lexer to completion and returns all tokens in source
// order. The returned slice carries no end-of-input marker.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TOKEN_EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
