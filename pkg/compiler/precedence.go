/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package compiler

import (
	"fmt"
	"strconv"

	"github.com/loxgo/loxgo/pkg/bytecode"
	"github.com/loxgo/loxgo/pkg/token"
)

// precedence orders loxgo's binary operators, low to high. Each level binds
// tighter than the one before it.
type precedence int

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

// parseFn is a Pratt prefix or infix rule: it consumes tokens (c.previous is
// the token that triggered the rule) and emits the corresponding bytecode.
// canAssign is true only when the rule is allowed to consume a trailing `=`.
type parseFn func(c *Compiler, canAssign bool)

type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// rules is the Pratt table: token kind -> (prefix rule, infix rule, infix
// precedence). A zero rule (nil, nil, precNone) is correct for every token
// that never starts or continues an expression. It is filled in by init,
// since the rule functions themselves reach back into the table.
var rules map[token.Kind]rule

func init() {
	rules = map[token.Kind]rule{
		token.LeftParen:    {grouping, nil, precNone},
		token.Minus:        {unary, binary, precTerm},
		token.Plus:         {nil, binary, precTerm},
		token.Slash:        {nil, binary, precFactor},
		token.Star:         {nil, binary, precFactor},
		token.Bang:         {unary, nil, precNone},
		token.BangEqual:    {nil, binary, precEquality},
		token.EqualEqual:   {nil, binary, precEquality},
		token.Greater:      {nil, binary, precComparison},
		token.GreaterEqual: {nil, binary, precComparison},
		token.Less:         {nil, binary, precComparison},
		token.LessEqual:    {nil, binary, precComparison},
		token.Identifier:   {variable, nil, precNone},
		token.String:       {stringLiteral, nil, precNone},
		token.Number:       {number, nil, precNone},
		token.And:          {nil, and_, precAnd},
		token.Or:           {nil, or_, precOr},
		token.False:        {literal, nil, precNone},
		token.Nil:          {literal, nil, precNone},
		token.True:         {literal, nil, precNone},
	}
}

func ruleFor(kind token.Kind) rule {
	return rules[kind]
}

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

// parsePrecedence is the heart of the Pratt parser: advance to the next
// token, run its prefix rule, then keep consuming infix operators as long as
// their precedence is at least p.
func (c *Compiler) parsePrecedence(p precedence) {
	c.advance()
	prefixRule := ruleFor(c.previous.Kind).prefix
	if prefixRule == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := p <= precAssignment
	prefixRule(c, canAssign)

	for p <= ruleFor(c.current.Kind).precedence {
		c.advance()
		infixRule := ruleFor(c.previous.Kind).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.error("Invalid assignment target.")
	}
}

//
// Prefix rules
//

func grouping(c *Compiler, canAssign bool) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func unary(c *Compiler, canAssign bool) {
	opKind := c.previous.Kind

	c.parsePrecedence(precUnary)

	switch opKind {
	case token.Bang:
		c.emitOp(bytecode.OpNot)
	case token.Minus:
		c.emitOp(bytecode.OpNegate)
	}
}

func number(c *Compiler, canAssign bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(bytecode.Number(n))
}

// stringLiteral strips the surrounding quotes and interns the rest.
func stringLiteral(c *Compiler, canAssign bool) {
	raw := c.previous.Lexeme
	s := c.intern(raw[1 : len(raw)-1])
	c.emitConstant(bytecode.Obj(s.Object()))
}

func literal(c *Compiler, canAssign bool) {
	switch c.previous.Kind {
	case token.False:
		c.emitOp(bytecode.OpFalse)
	case token.Nil:
		c.emitOp(bytecode.OpNil)
	case token.True:
		c.emitOp(bytecode.OpTrue)
	}
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

//
// Infix rules
//

func binary(c *Compiler, canAssign bool) {
	opKind := c.previous.Kind
	r := ruleFor(opKind)
	c.parsePrecedence(r.precedence + 1)

	switch opKind {
	case token.BangEqual:
		c.emitOp(bytecode.OpEqual)
		c.emitOp(bytecode.OpNot)
	case token.EqualEqual:
		c.emitOp(bytecode.OpEqual)
	case token.Greater:
		c.emitOp(bytecode.OpGreater)
	case token.GreaterEqual:
		c.emitOp(bytecode.OpLess)
		c.emitOp(bytecode.OpNot)
	case token.Less:
		c.emitOp(bytecode.OpLess)
	case token.LessEqual:
		c.emitOp(bytecode.OpGreater)
		c.emitOp(bytecode.OpNot)
	case token.Plus:
		c.emitOp(bytecode.OpAdd)
	case token.Minus:
		c.emitOp(bytecode.OpSubtract)
	case token.Star:
		c.emitOp(bytecode.OpMultiply)
	case token.Slash:
		c.emitOp(bytecode.OpDivide)
	}
}

// and_ short-circuits: if the left operand is falsey, skip the right operand
// entirely and leave the left operand's value (the falsey one) on the
// stack as the result.
func and_(c *Compiler, canAssign bool) {
	endJump := c.emitJump(bytecode.OpJumpIfFalse)

	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(precAnd)

	c.patchJump(endJump)
}

// or_ short-circuits the other way: if the left operand is truthy, skip the
// right operand.
func or_(c *Compiler, canAssign bool) {
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	endJump := c.emitJump(bytecode.OpJump)

	c.patchJump(elseJump)
	c.emitOp(bytecode.OpPop)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

//
// Variable reference and assignment
//

// namedVariable compiles a reference to the identifier tok, resolving it as
// a local if one is in scope, otherwise as a global by name. When canAssign
// and the next token is '=', compiles an assignment instead of a read,
// enforcing const-reassignment rejection along the way.
func (c *Compiler) namedVariable(tok token.Token, canAssign bool) {
	slot, isLocal := c.resolveLocal(tok)

	var getOp, setOp bytecode.OpCode
	var arg int

	if isLocal {
		getOp, setOp = bytecode.OpGetLocal, bytecode.OpSetLocal
		arg = slot
	} else {
		getOp, setOp = bytecode.OpGetGlobal, bytecode.OpSetGlobal
		arg = c.identifierConstant(tok)
	}

	if canAssign && c.match(token.Equal) {
		if isLocal && c.locals[slot].isConst {
			c.error("Can't reassign to const variable.")
		}
		if !isLocal && c.initializedGlobals[tok.Lexeme] {
			c.error("Can't reassign to const variable.")
		}

		c.expression()
		c.emitOp(setOp)
		c.emitByte(byte(arg))
		return
	}

	c.emitOp(getOp)
	c.emitByte(byte(arg))
}

// switchTempName names the hidden global slot a switch statement hoists its
// subject expression into. Numbered so nested switches don't collide.
func switchTempName(n int) string {
	return fmt.Sprintf("$switch%d", n)
}
