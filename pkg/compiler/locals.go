/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package compiler

import (
	"github.com/loxgo/loxgo/pkg/bytecode"
	"github.com/loxgo/loxgo/pkg/token"
)

// local is one entry of the compiler's local-variable stack: a name, the
// scope depth it was declared at, and whether it's a const binding.
//
// depth == -1 marks a local that has been declared but not yet initialized
// -- its own initializer expression is still being compiled, so a reference
// to the name within that expression must be rejected (it would otherwise
// read uninitialized stack garbage).
type local struct {
	name    string
	depth   int
	isConst bool
}

func (c *Compiler) beginScope() {
	c.scopeDepth++
}

// endScope pops every local declared at the scope just exited, emitting one
// OP_POP per local so the runtime stack matches the compiler's slot
// accounting.
func (c *Compiler) endScope() {
	c.scopeDepth--

	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.emitOp(bytecode.OpPop)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// declareVariable registers the identifier just consumed (c.previous) as a
// new local, rejecting a duplicate name already declared in the same scope.
// A no-op at global scope: globals are resolved by name at runtime, so they
// need no slot bookkeeping here.
func (c *Compiler) declareVariable(isConst bool) {
	if c.scopeDepth == 0 {
		return
	}

	name := c.previous.Lexeme
	for i := len(c.locals) - 1; i >= 0; i-- {
		l := c.locals[i]
		if l.depth != -1 && l.depth < c.scopeDepth {
			break
		}
		if l.name == name {
			c.error("Already a variable with this name in this scope.")
		}
	}

	c.addLocal(name, isConst)
}

func (c *Compiler) addLocal(name string, isConst bool) {
	if len(c.locals) >= MaxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.locals = append(c.locals, local{name: name, depth: -1, isConst: isConst})
}

// markInitialized finalizes the most recently declared local, making it
// visible to name resolution.
func (c *Compiler) markInitialized() {
	c.locals[len(c.locals)-1].depth = c.scopeDepth
}

// resolveLocal searches the local stack innermost-scope-first for name,
// returning its slot index. The second result is false if name isn't a
// local (the caller should then treat it as a global).
func (c *Compiler) resolveLocal(tok token.Token) (int, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == tok.Lexeme {
			if c.locals[i].depth == -1 {
				c.errorAt(tok, "Can't read local variable in its own initializer.")
			}
			return i, true
		}
	}
	return 0, false
}
