/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

// Package compiler implements loxgo's single-pass compiler: it drives
// pkg/scanner directly, parses with a Pratt table (see precedence.go), and
// emits bytecode straight into a pkg/bytecode.Chunk. There is no
// intermediate AST.
package compiler

import (
	"github.com/loxgo/loxgo/pkg/bytecode"
	"github.com/loxgo/loxgo/pkg/errs"
	"github.com/loxgo/loxgo/pkg/scanner"
	"github.com/loxgo/loxgo/pkg/token"
)

// MaxLocals is the largest number of locals in scope at once: the
// GET_LOCAL/SET_LOCAL operand is a single byte.
const MaxLocals = 256

// Compiler holds all state that lives only for the duration of one
// compilation: the token cursor, the chunk being emitted into, and the
// lexical-scope bookkeeping needed to resolve locals versus globals while
// emitting code.
type Compiler struct {
	scanner *scanner.Scanner
	chunk   *bytecode.Chunk
	intern  func(string) *bytecode.ObjString

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errors    errs.CompileTimeCollection

	locals     []local
	scopeDepth int

	// initializedGlobals records every global name that has had a const
	// binding created, so a later assignment (by declaration or by plain
	// `name = ...`) to the same name can be rejected at compile time.
	initializedGlobals map[string]bool

	// switchTempCount gives each switch statement's hidden global slot a
	// distinct name, so nested switches don't clobber each other's saved
	// value.
	switchTempCount int
}

// Compile compiles source into chunk. intern is used to turn every string
// and identifier literal into an interned *bytecode.ObjString, matching
// pkg/vm's own interning so that string equality stays reference equality at
// runtime. Returns nil on success, or the accumulated compile-time errors.
func Compile(source string, chunk *bytecode.Chunk, intern func(string) *bytecode.ObjString) errs.Error {
	c := &Compiler{
		scanner:            scanner.New(source),
		chunk:              chunk,
		intern:             intern,
		initializedGlobals: map[string]bool{},
	}

	c.advance()
	for !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.EOF, "Expect end of expression.")

	c.emitReturn()

	if c.hadError {
		return &c.errors
	}
	return nil
}

//
// Token cursor
//

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.Token()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent("%s", c.current.Lexeme)
	}
}

func (c *Compiler) check(kind token.Kind) bool {
	return c.current.Kind == kind
}

func (c *Compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind token.Kind, format string, a ...any) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(format, a...)
}

//
// Error reporting
//

func (c *Compiler) errorAtCurrent(format string, a ...any) {
	c.errorAt(c.current, format, a...)
}

func (c *Compiler) error(format string, a ...any) {
	c.errorAt(c.previous, format, a...)
}

// errorAt records a CompileTime error at tok, unless the compiler is already
// in panic mode (which suppresses the cascade of errors a single syntax
// mistake tends to produce).
func (c *Compiler) errorAt(tok token.Token, format string, a ...any) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	e := errs.NewCompileTime(tok.Line, format, a...)
	if tok.Kind != token.EOF && tok.Kind != token.Error {
		e.Lexeme = tok.Lexeme
	}
	c.errors.Add(e)
}

// synchronize leaves panic mode and skips tokens until it finds a plausible
// statement boundary: a semicolon, or a keyword that starts a new
// declaration or statement.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.Semicolon {
			return
		}

		switch c.current.Kind {
		case token.Class, token.Fun, token.Var, token.Const, token.For,
			token.If, token.While, token.Print, token.Return, token.Switch:
			return
		}

		c.advance()
	}
}

//
// Emission helpers
//

func (c *Compiler) emitByte(b byte) {
	c.chunk.WriteByte(b, c.previous.Line)
}

func (c *Compiler) emitOp(op bytecode.OpCode) {
	c.emitByte(byte(op))
}

func (c *Compiler) emitReturn() {
	c.emitOp(bytecode.OpReturn)
}

func (c *Compiler) emitConstant(v bytecode.Value) {
	idx := c.makeConstant(v)
	c.emitOp(bytecode.OpConstant)
	c.emitByte(byte(idx))
}

// makeConstant adds v to the chunk's constant pool (deduplicated by
// Chunk.AddConstant) and returns its index, reporting "too many constants"
// at the current source line if the pool is already full.
func (c *Compiler) makeConstant(v bytecode.Value) int {
	idx, err := c.chunk.AddConstant(v)
	if err != nil {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return idx
}

func (c *Compiler) emitJump(op bytecode.OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk.Code) - 2
}

// patchJump backfills the 2-byte operand at offset with the distance from
// just after it to the current end of the code stream.
func (c *Compiler) patchJump(offset int) {
	jump := len(c.chunk.Code) - offset - 2
	if jump > bytecode.MaxJump {
		c.error("Too much code to jump over.")
		return
	}
	c.chunk.Code[offset] = byte(jump >> 8)
	c.chunk.Code[offset+1] = byte(jump & 0xff)
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(bytecode.OpLoop)

	offset := len(c.chunk.Code) - loopStart + 2
	if offset > bytecode.MaxJump {
		c.error("Loop body too large.")
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset & 0xff))
}

//
// Declarations
//

func (c *Compiler) declaration() {
	switch {
	case c.match(token.Var):
		c.varDeclaration(false)
	case c.match(token.Const):
		c.varDeclaration(true)
	default:
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration(isConst bool) {
	global := c.parseVariable("Expect variable name.", isConst)

	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emitOp(bytecode.OpNil)
	}
	c.consume(token.Semicolon, "Expect ';' after variable declaration.")

	c.defineVariable(global, isConst)
}

// parseVariable consumes an identifier, declares it (as a local, if inside a
// scope), and for globals returns the constant-pool index holding its name.
// The return value is meaningless for locals.
func (c *Compiler) parseVariable(errMsg string, isConst bool) int {
	c.consume(token.Identifier, errMsg)

	c.declareVariable(isConst)
	if c.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

func (c *Compiler) identifierConstant(tok token.Token) int {
	s := c.intern(tok.Lexeme)
	return c.makeConstant(bytecode.Obj(s.Object()))
}

// defineVariable finishes a variable declaration: for a local it just marks
// the slot initialized (the value is already sitting on the stack where the
// local lives); for a global it emits OP_DEFINE_GLOBAL and enforces const
// semantics.
func (c *Compiler) defineVariable(global int, isConst bool) {
	if c.scopeDepth > 0 {
		c.markInitialized()
		return
	}

	name := c.chunk.Constants[global].AsString().Chars
	if c.initializedGlobals[name] {
		c.error("Can't reassign to const variable.")
	} else if isConst {
		c.initializedGlobals[name] = true
	}

	c.emitOp(bytecode.OpDefineGlobal)
	c.emitByte(byte(global))
}

//
// Statements
//

func (c *Compiler) statement() {
	switch {
	case c.match(token.Print):
		c.printStatement()
	case c.match(token.If):
		c.ifStatement()
	case c.match(token.While):
		c.whileStatement()
	case c.match(token.For):
		c.forStatement()
	case c.match(token.Switch):
		c.switchStatement()
	case c.match(token.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after value.")
	c.emitOp(bytecode.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after expression.")
	c.emitOp(bytecode.OpPop)
}

func (c *Compiler) block() {
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RightBrace, "Expect '}' after block.")
}

func (c *Compiler) ifStatement() {
	c.consume(token.LeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()

	elseJump := c.emitJump(bytecode.OpJump)

	c.patchJump(thenJump)
	c.emitOp(bytecode.OpPop)

	if c.match(token.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.chunk.Code)

	c.consume(token.LeftParen, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(bytecode.OpPop)
}

// forStatement desugars `for (init; cond; incr) body` into a while-shaped
// sequence: the increment is compiled once, after the body, and a pair of
// jumps reorders it so it actually runs after each iteration of the body
// rather than before the next condition check.
func (c *Compiler) forStatement() {
	c.beginScope()

	c.consume(token.LeftParen, "Expect '(' after 'for'.")
	switch {
	case c.match(token.Semicolon):
		// No initializer.
	case c.match(token.Var):
		c.varDeclaration(false)
	case c.match(token.Const):
		c.varDeclaration(true)
	default:
		c.expressionStatement()
	}

	loopStart := len(c.chunk.Code)
	exitJump := -1
	if !c.match(token.Semicolon) {
		c.expression()
		c.consume(token.Semicolon, "Expect ';' after loop condition.")

		exitJump = c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)
	}

	if !c.match(token.RightParen) {
		bodyJump := c.emitJump(bytecode.OpJump)

		incrementStart := len(c.chunk.Code)
		c.expression()
		c.emitOp(bytecode.OpPop)
		c.consume(token.RightParen, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(bytecode.OpPop)
	}

	c.endScope()
}

// switchStatement compiles `switch (expr) { case e1: s1 ... default: sd }`.
// expr is hoisted into a hidden global slot so each case's guard can
// re-fetch it; every matched case falls through unconditionally into the
// default block, per the pinned fallthrough-to-default semantics (see
// DESIGN.md).
func (c *Compiler) switchStatement() {
	c.consume(token.LeftParen, "Expect '(' after 'switch'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after switch expression.")

	tempIdx := c.switchTempConstant()
	c.emitOp(bytecode.OpDefineGlobal)
	c.emitByte(byte(tempIdx))

	c.consume(token.LeftBrace, "Expect '{' before switch body.")

	var endJumps []int
	for c.match(token.Case) {
		c.emitOp(bytecode.OpGetGlobal)
		c.emitByte(byte(tempIdx))

		c.expression()
		c.consume(token.Colon, "Expect ':' after case value.")

		c.emitOp(bytecode.OpEqual)
		nextJump := c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)

		for !c.check(token.Case) && !c.check(token.Default) && !c.check(token.RightBrace) {
			c.statement()
		}

		endJumps = append(endJumps, c.emitJump(bytecode.OpJump))
		c.patchJump(nextJump)
		c.emitOp(bytecode.OpPop)
	}

	// Every matched case lands here, right before default -- it always runs
	// once a case matches, not only when none did.
	for _, j := range endJumps {
		c.patchJump(j)
	}

	if c.match(token.Default) {
		c.consume(token.Colon, "Expect ':' after 'default'.")
		for !c.check(token.RightBrace) {
			c.statement()
		}
	}

	c.consume(token.RightBrace, "Expect '}' after switch body.")
}

func (c *Compiler) switchTempConstant() int {
	c.switchTempCount++
	s := c.intern(switchTempName(c.switchTempCount))
	return c.makeConstant(bytecode.Obj(s.Object()))
}
