/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package compiler_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loxgo/loxgo/pkg/bytecode"
	"github.com/loxgo/loxgo/pkg/compiler"
	"github.com/loxgo/loxgo/pkg/vm"
)

// run compiles and interprets source in a fresh VM, returning everything
// `print` wrote and any error the VM produced.
func run(t *testing.T, source string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	v := vm.New(&out)
	err := v.Interpret(source)
	if err != nil {
		return out.String(), err
	}
	return out.String(), nil
}

func TestCompiler_ArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestCompiler_ShortCircuitAnd(t *testing.T) {
	out, err := run(t, `var x = 0; (false) and (x = 1); print x;`)
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestCompiler_ShortCircuitOr(t *testing.T) {
	out, err := run(t, `var x = 0; (true) or (x = 1); print x;`)
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestCompiler_LexicalScope(t *testing.T) {
	out, err := run(t, `var a = "global"; { var a = "local"; print a; } print a;`)
	require.NoError(t, err)
	require.Equal(t, "local\nglobal\n", out)
}

func TestCompiler_ConstReassignmentIsCompileError(t *testing.T) {
	_, err := run(t, `const pi = 3; pi = 4;`)
	require.Error(t, err)
	require.Equal(t, 65, err.(interface{ ExitCode() int }).ExitCode())
	require.Contains(t, err.Error(), "Can't reassign to const variable")
}

func TestCompiler_ConstLocalReassignmentIsCompileError(t *testing.T) {
	_, err := run(t, `{ const x = 1; x = 2; }`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't reassign to const variable")
}

func TestCompiler_WhileLoop(t *testing.T) {
	out, err := run(t, `var i = 0; while (i < 3) { print i; i = i + 1; }`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestCompiler_ForLoop(t *testing.T) {
	out, err := run(t, `for (var i = 0; i < 3; i = i + 1) { print i; }`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestCompiler_SwitchFallsThroughToDefault(t *testing.T) {
	out, err := run(t, `var x = 2; switch (x) { case 1: print "one"; case 2: print "two"; default: print "other"; }`)
	require.NoError(t, err)
	require.Equal(t, "two\nother\n", out)
}

func TestCompiler_SwitchNoMatchStillRunsDefault(t *testing.T) {
	out, err := run(t, `var x = 9; switch (x) { case 1: print "one"; default: print "other"; }`)
	require.NoError(t, err)
	require.Equal(t, "other\n", out)
}

func TestCompiler_SwitchNoMatchNoDefault(t *testing.T) {
	out, err := run(t, `var x = 9; switch (x) { case 1: print "one"; }`)
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestCompiler_NestedSwitchTempSlotsDontCollide(t *testing.T) {
	src := `
		var x = 1;
		var y = 2;
		switch (x) {
		case 1:
			switch (y) {
			case 2:
				print "inner";
			default:
				print "inner-default";
			}
			print "outer";
		default:
			print "outer-default";
		}
	`
	// Default runs unconditionally after a match, per the pinned
	// fallthrough-to-default semantics -- so both the inner and outer
	// switch's default clauses fire even though both matched a case.
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "inner\ninner-default\nouter\nouter-default\n", out)
}

func TestCompiler_BlockScopingDoesNotLeak(t *testing.T) {
	out, err := run(t, `var a = 1; { var a = 2; } print a;`)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestCompiler_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print nope;`)
	require.Error(t, err)
	require.Equal(t, 70, err.(interface{ ExitCode() int }).ExitCode())
}

func TestCompiler_InvalidAssignmentTargetIsCompileError(t *testing.T) {
	_, err := run(t, `1 + 2 = 3;`)
	require.Error(t, err)
	require.Equal(t, 65, err.(interface{ ExitCode() int }).ExitCode())
	require.Contains(t, err.Error(), "Invalid assignment target")
}

func TestCompiler_ReadLocalInOwnInitializerIsCompileError(t *testing.T) {
	_, err := run(t, `{ var a = a; }`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "own initializer")
}

func TestCompiler_DuplicateLocalInSameScopeIsCompileError(t *testing.T) {
	_, err := run(t, `{ var a = 1; var a = 2; }`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Already a variable with this name")
}

// TestCompiler_ExactlyMaxConstantsAllowed exercises the 256-constants
// boundary straight from the compiler side (each distinct number literal is
// its own constant).
func TestCompiler_ExactlyMaxConstantsAllowed(t *testing.T) {
	var b strings.Builder
	for i := 0; i < bytecode.MaxConstants; i++ {
		fmt.Fprintf(&b, "print %d.0;\n", i)
	}

	chunk := bytecode.NewChunk()
	err := compiler.Compile(b.String(), chunk, noopIntern)
	require.NoError(t, err)
}

// TestCompiler_TooManyConstantsIsCompileError pushes one past MaxConstants
// and expects the compiler to reject it.
func TestCompiler_TooManyConstantsIsCompileError(t *testing.T) {
	var b strings.Builder
	for i := 0; i < bytecode.MaxConstants+1; i++ {
		fmt.Fprintf(&b, "print %d.0;\n", i)
	}

	chunk := bytecode.NewChunk()
	err := compiler.Compile(b.String(), chunk, noopIntern)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Too many constants")
}

// TestCompiler_JumpAtMaxJumpSucceeds builds an `if`'s then-branch out of
// exactly 65,531 bytes of bytecode: 32,764 `nil;` expression statements
// (each OP_NIL + OP_POP, 65,528 bytes) plus a local `var x = 1;` (2 bytes
// for its OP_CONSTANT initializer, plus the 1-byte OP_POP endScope emits for
// it). The if's jump also skips the OP_POP after it and the 3-byte else
// OP_JUMP, so it is exactly bytecode.MaxJump (65535): spec.md §8's boundary
// case that must still compile.
func TestCompiler_JumpAtMaxJumpSucceeds(t *testing.T) {
	var b strings.Builder
	b.WriteString("if (true) {")
	for i := 0; i < 32764; i++ {
		b.WriteString("nil;")
	}
	b.WriteString("var x = 1;")
	b.WriteString("} print \"ok\";")

	chunk := bytecode.NewChunk()
	err := compiler.Compile(b.String(), chunk, noopIntern)
	require.NoError(t, err)
}

// TestCompiler_JumpPastMaxJumpIsCompileError builds a then-branch one byte
// over the boundary: 32,766 `nil;` statements, for 65,532 bytes of body
// and (with the OP_POP and the 3-byte else OP_JUMP the jump also skips) a
// jump of 65536 -- one past bytecode.MaxJump, which patchJump must reject.
func TestCompiler_JumpPastMaxJumpIsCompileError(t *testing.T) {
	var b strings.Builder
	b.WriteString("if (true) {")
	for i := 0; i < 32766; i++ {
		b.WriteString("nil;")
	}
	b.WriteString("}")

	chunk := bytecode.NewChunk()
	err := compiler.Compile(b.String(), chunk, noopIntern)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Too much code to jump over")
}

func noopIntern(s string) *bytecode.ObjString {
	return bytecode.Obj(bytecode.NewObjString(s, 0, nil)).AsString()
}
