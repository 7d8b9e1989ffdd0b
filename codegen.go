// codegen.go - LLVM IR generation
// Completion: 100%
//
// This file lowers the parse tree to a single LLVM IR module using llir/llvm.
// The insertion point is threaded explicitly: every emit call takes the
// current block and the loop walk returns the block where generation
// continues. Pointer scopes live on an explicit stack with the program tape
// pointer at the bottom and one cell per open procedure definition above it.

package main

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// TapeSize is the number of byte cells the generated program allocates.
// The tape is zero-initialized by calloc at runtime and never bounds-checked.
const TapeSize = 1000

// CodeGen lowers one parse tree to one LLVM IR module
type CodeGen struct {
	module *ir.Module

	putchar *ir.Func
	getchar *ir.Func
	calloc  *ir.Func

	// scopes is the pointer-scope stack. Each entry is an alloca'd i8*
	// cell; all tape operations address the top entry.
	scopes []*ir.InstAlloca

	// procs maps procedure identifiers to their generated functions.
	// An entry exists only once the definition has closed.
	procs map[rune]*ir.Func

	loopCount int // Monotonic, so loop block names never collide
}

// NewCodeGen creates a generator with the external C functions declared:
// putchar(i32) -> i8, getchar() -> i8, calloc(i64, i64) -> i8*.
func NewCodeGen() *CodeGen {
	m := ir.NewModule()
	return &CodeGen{
		module:  m,
		putchar: m.NewFunc("putchar", types.I8, ir.NewParam("", types.I32)),
		getchar: m.NewFunc("getchar", types.I8),
		calloc:  m.NewFunc("calloc", types.I8Ptr, ir.NewParam("", types.I64), ir.NewParam("", types.I64)),
		procs:   make(map[rune]*ir.Func),
	}
}

// Generate lowers program to a complete module. The entry point allocates
// the tape with calloc(TapeSize, 1) and finally returns byte 0.
func (g *CodeGen) Generate(program *Program) (*ir.Module, error) {
	mainFunc := g.module.NewFunc("main", types.I8)
	entry := mainFunc.NewBlock("entry")

	tape := entry.NewAlloca(types.I8Ptr)
	cells := entry.NewCall(g.calloc,
		constant.NewInt(types.I64, TapeSize),
		constant.NewInt(types.I64, 1))
	entry.NewStore(cells, tape)
	g.scopes = []*ir.InstAlloca{tape}

	cur, err := g.genBody(program.Statements, entry)
	if err != nil {
		return nil, err
	}
	cur.NewRet(constant.NewInt(types.I8, 0))

	return g.module, nil
}

// genBody walks stmts, emitting into cur, and returns the block where
// generation continues. The returned block is never terminated yet.
func (g *CodeGen) genBody(stmts []Statement, cur *ir.Block) (*ir.Block, error) {
	for _, stmt := range stmts {
		var err error
		switch s := stmt.(type) {
		case *MoveStmt:
			g.genMove(cur, s.Amount)
		case *AddStmt:
			g.genAdd(cur, s.Amount)
		case *OutputStmt:
			g.genOutput(cur)
		case *InputStmt:
			g.genInput(cur)
		case *LoopStmt:
			cur, err = g.genLoop(cur, s)
		case *ProcDefStmt:
			// Definitions emit into their own function; the cursor in
			// the defining context is untouched
			err = g.genProcDef(s)
		case *ProcCallStmt:
			err = g.genProcCall(cur, s)
		default:
			err = InternalError(fmt.Sprintf("unknown statement type %T", stmt), SourceLocation{})
		}
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// scopeTop returns the innermost pointer-scope cell
func (g *CodeGen) scopeTop() *ir.InstAlloca {
	return g.scopes[len(g.scopes)-1]
}

// genMove displaces the pointer in the innermost scope by n cells.
// No wraparound, no bounds check.
func (g *CodeGen) genMove(cur *ir.Block, n int) {
	cell := g.scopeTop()
	ptr := cur.NewLoad(types.I8Ptr, cell)
	next := cur.NewGetElementPtr(types.I8, ptr, constant.NewInt(types.I64, int64(n)))
	cur.NewStore(next, cell)
}

// genAdd adds n to the current cell at byte width, so stored values wrap
// modulo 256 regardless of the folded run length.
func (g *CodeGen) genAdd(cur *ir.Block, n int) {
	cell := g.scopeTop()
	ptr := cur.NewLoad(types.I8Ptr, cell)
	val := cur.NewLoad(types.I8, ptr)
	sum := cur.NewAdd(val, constant.NewInt(types.I8, wrapByte(n)))
	cur.NewStore(sum, ptr)
}

// wrapByte reduces n modulo 256 into the signed byte range [-128, 127]
func wrapByte(n int) int64 {
	r := n % 256
	if r > 127 {
		r -= 256
	} else if r < -128 {
		r += 256
	}
	return int64(r)
}

// genOutput loads the current cell, widens it to i32 and calls putchar
func (g *CodeGen) genOutput(cur *ir.Block) {
	ptr := cur.NewLoad(types.I8Ptr, g.scopeTop())
	val := cur.NewLoad(types.I8, ptr)
	wide := cur.NewZExt(val, types.I32)
	cur.NewCall(g.putchar, wide)
}

// genInput calls getchar and stores the byte into the current cell
func (g *CodeGen) genInput(cur *ir.Block) {
	ptr := cur.NewLoad(types.I8Ptr, g.scopeTop())
	ch := cur.NewCall(g.getchar)
	cur.NewStore(ch, ptr)
}

// genLoop emits the cond/body/exit blocks for one loop, walks the body,
// and returns the exit block as the new insertion point. The condition
// re-reads the pointer on every iteration, so moves inside the body are
// honored.
func (g *CodeGen) genLoop(cur *ir.Block, loop *LoopStmt) (*ir.Block, error) {
	g.loopCount++
	f := cur.Parent
	cond := f.NewBlock(fmt.Sprintf("loop.%d.cond", g.loopCount))
	body := f.NewBlock(fmt.Sprintf("loop.%d.body", g.loopCount))
	exit := f.NewBlock(fmt.Sprintf("loop.%d.exit", g.loopCount))

	cur.NewBr(cond)

	ptr := cond.NewLoad(types.I8Ptr, g.scopeTop())
	val := cond.NewLoad(types.I8, ptr)
	nonzero := cond.NewICmp(enum.IPredNE, val, constant.NewInt(types.I8, 0))
	cond.NewCondBr(nonzero, body, exit)

	last, err := g.genBody(loop.Body, body)
	if err != nil {
		return nil, err
	}
	last.NewBr(cond)

	return exit, nil
}

// genProcDef lowers a procedure definition into its own void function
// taking the caller's tape position. The body addresses a fresh scope cell
// initialized from the parameter, so pointer movement inside the procedure
// never leaks back to the caller.
func (g *CodeGen) genProcDef(def *ProcDefStmt) error {
	f := g.module.NewFunc(procSymbol(def.Name), types.Void, ir.NewParam("tape", types.I8Ptr))
	entry := f.NewBlock("entry")

	cell := entry.NewAlloca(types.I8Ptr)
	entry.NewStore(f.Params[0], cell)
	g.scopes = append(g.scopes, cell)

	last, err := g.genBody(def.Body, entry)
	if err != nil {
		return err
	}
	last.NewRet(nil)

	g.scopes = g.scopes[:len(g.scopes)-1]
	g.procs[def.Name] = f
	return nil
}

// genProcCall calls a defined procedure with the current pointer
func (g *CodeGen) genProcCall(cur *ir.Block, call *ProcCallStmt) error {
	f, ok := g.procs[call.Name]
	if !ok {
		// The parser guarantees definitions close before any call
		return InternalError(
			fmt.Sprintf("call to procedure %q with no generated function", call.Name),
			SourceLocation{})
	}
	ptr := cur.NewLoad(types.I8Ptr, g.scopeTop())
	cur.NewCall(f, ptr)
	return nil
}

// procSymbol names the generated function for a procedure identifier.
// The codepoint keeps symbols ASCII-safe for any identifier rune.
func procSymbol(name rune) string {
	return fmt.Sprintf("proc.%d", name)
}

// GenerateModule builds the IR module for a parsed program
func GenerateModule(program *Program) (*ir.Module, error) {
	return NewCodeGen().Generate(program)
}
