/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

// Package vm implements loxgo's stack-based bytecode interpreter: the value
// stack, the string-intern table, the globals environment and its
// self-patching inline cache, and the heap-object allocation list.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/loxgo/loxgo/pkg/bytecode"
	"github.com/loxgo/loxgo/pkg/compiler"
	"github.com/loxgo/loxgo/pkg/errs"
	"github.com/loxgo/loxgo/pkg/table"
)

// VM is a loxgo Virtual Machine. The zero value is not ready to use; call
// New.
type VM struct {
	// DebugTraceExecution, when true, makes the VM disassemble each
	// instruction and dump the stack before executing it.
	DebugTraceExecution bool

	// out is where `print` sends its output.
	out io.Writer

	chunk *bytecode.Chunk
	ip    int
	stack stack

	strings *table.Table[*bytecode.ObjString, struct{}]
	globals *table.Table[*bytecode.ObjString, bytecode.Value]

	globalsCache []globalCacheEntry

	// objects is the head of the intrusive allocation list of every heap
	// object the VM has ever created. The VM only ever prepends to it; it
	// has no Close or teardown method, and nothing walks the list.
	objects *bytecode.Object
}

// New returns a new VM that sends `print` output to out.
func New(out io.Writer) *VM {
	return &VM{
		out:     out,
		strings: table.New[*bytecode.ObjString, struct{}](),
		globals: table.New[*bytecode.ObjString, bytecode.Value](),
	}
}

// Interpret compiles and runs source in a single step, per spec.md §4.4's
// interpret(source): a fresh Chunk is compiled, and on success the VM
// executes it to completion (or to the first runtime error).
func (vm *VM) Interpret(source string) errs.Error {
	chunk := bytecode.NewChunk()

	if err := compiler.Compile(source, chunk, vm.internString); err != nil {
		return err
	}

	vm.chunk = chunk
	vm.ip = 0
	vm.stack.reset()

	return vm.run()
}

func (vm *VM) run() errs.Error {
	for {
		if vm.DebugTraceExecution {
			vm.traceExecution()
		}

		op := bytecode.OpCode(vm.readByte())

		switch op {
		case bytecode.OpConstant:
			vm.stack.push(vm.readConstant())

		case bytecode.OpNil:
			vm.stack.push(bytecode.Nil)

		case bytecode.OpTrue:
			vm.stack.push(bytecode.Bool(true))

		case bytecode.OpFalse:
			vm.stack.push(bytecode.Bool(false))

		case bytecode.OpPop:
			vm.stack.pop()

		case bytecode.OpGetLocal:
			slot := int(vm.readByte())
			vm.stack.push(vm.stack.at(slot))

		case bytecode.OpSetLocal:
			slot := int(vm.readByte())
			vm.stack.setAt(slot, vm.stack.peek(0))

		case bytecode.OpGetGlobal:
			if err := vm.execGetGlobal(); err != nil {
				return err
			}

		case bytecode.OpGetGlobalFast:
			idx := int(vm.readByte())
			vm.stack.push(vm.globalsCache[idx].value)

		case bytecode.OpDefineGlobal:
			name := vm.readConstant().AsString()
			value := vm.stack.pop()
			vm.globals.Set(name, value)
			vm.writeThroughCache(name, value)

		case bytecode.OpSetGlobal:
			name := vm.readConstant().AsString()
			value := vm.stack.peek(0)
			if isNew := vm.globals.Set(name, value); isNew {
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%v'.", name.Chars)
			}
			vm.writeThroughCache(name, value)

		case bytecode.OpEqual:
			b := vm.stack.pop()
			a := vm.stack.pop()
			vm.stack.push(bytecode.Bool(bytecode.ValuesEqual(a, b)))

		case bytecode.OpGreater:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Bool(a > b) }); err != nil {
				return err
			}

		case bytecode.OpLess:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Bool(a < b) }); err != nil {
				return err
			}

		case bytecode.OpAdd:
			if err := vm.execAdd(); err != nil {
				return err
			}

		case bytecode.OpSubtract:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Number(a - b) }); err != nil {
				return err
			}

		case bytecode.OpMultiply:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Number(a * b) }); err != nil {
				return err
			}

		case bytecode.OpDivide:
			if err := vm.binaryNumberOp(func(a, b float64) bytecode.Value { return bytecode.Number(a / b) }); err != nil {
				return err
			}

		case bytecode.OpNot:
			vm.stack.push(bytecode.Bool(vm.stack.pop().IsFalsey()))

		case bytecode.OpNegate:
			if !vm.stack.top().IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.stack.push(bytecode.Number(-vm.stack.pop().AsNumber()))

		case bytecode.OpPrint:
			fmt.Fprintf(vm.out, "%v\n", vm.stack.pop())

		case bytecode.OpJump:
			offset := vm.readShort()
			vm.ip += offset

		case bytecode.OpJumpIfFalse:
			offset := vm.readShort()
			if vm.stack.top().IsFalsey() {
				vm.ip += offset
			}

		case bytecode.OpLoop:
			offset := vm.readShort()
			vm.ip -= offset

		case bytecode.OpReturn:
			return nil

		default:
			return errs.NewICE("unknown opcode %d at offset %d", op, vm.ip-1)
		}
	}
}

func (vm *VM) execGetGlobal() errs.Error {
	nameIdx := vm.chunk.Code[vm.ip]
	name := vm.readConstant().AsString()

	value, ok := vm.globals.Get(name)
	if !ok {
		return vm.runtimeError("Undefined variable '%v'.", name.Chars)
	}

	cacheIdx := vm.cacheIndexOf(name)
	if cacheIdx == -1 && len(vm.globalsCache) < MaxGlobalsCache {
		cacheIdx = len(vm.globalsCache)
		vm.globalsCache = append(vm.globalsCache, globalCacheEntry{name: name, value: value})
	}
	if cacheIdx != -1 {
		patchGetGlobal(vm.chunk, vm.ip, nameIdx, cacheIdx)
	}

	vm.stack.push(value)
	return nil
}

// writeThroughCache keeps a global's inline-cache entry, if any, coherent
// with a just-written value (spec.md §4.3 and the inline-cache-coherence
// property in §8).
func (vm *VM) writeThroughCache(name *bytecode.ObjString, value bytecode.Value) {
	if idx := vm.cacheIndexOf(name); idx != -1 {
		vm.globalsCache[idx].value = value
	}
}

func (vm *VM) execAdd() errs.Error {
	b := vm.stack.peek(0)
	a := vm.stack.peek(1)

	switch {
	case a.IsNumber() && b.IsNumber():
		vm.stack.pop()
		vm.stack.pop()
		vm.stack.push(bytecode.Number(a.AsNumber() + b.AsNumber()))

	case a.IsString() && b.IsString():
		vm.stack.pop()
		vm.stack.pop()
		concatenated := vm.internString(a.AsString().Chars + b.AsString().Chars)
		vm.stack.push(bytecode.Obj(concatenated.Object()))

	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}

	return nil
}

func (vm *VM) binaryNumberOp(op func(a, b float64) bytecode.Value) errs.Error {
	if !vm.stack.peek(0).IsNumber() || !vm.stack.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.stack.pop().AsNumber()
	a := vm.stack.pop().AsNumber()
	vm.stack.push(op(a, b))
	return nil
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readShort() int {
	hi := vm.chunk.Code[vm.ip]
	lo := vm.chunk.Code[vm.ip+1]
	vm.ip += 2
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant() bytecode.Value {
	return vm.chunk.Constants[vm.readByte()]
}

// runtimeError reports a runtime error at the currently-executing
// instruction's source line, resets the stack, and returns it as an
// errs.Runtime. ip-1 accounts for the opcode byte already having been read
// by the caller, per spec.md §4.4.
func (vm *VM) runtimeError(format string, a ...any) errs.Error {
	line := vm.chunk.GetLine(vm.ip - 1)
	vm.stack.reset()
	return errs.NewRuntime(line, format, a...)
}

func (vm *VM) traceExecution() {
	fmt.Fprint(os.Stdout, "          ")
	for i := 0; i < vm.stack.size(); i++ {
		fmt.Fprintf(os.Stdout, "[ %v ]", vm.stack.data[i])
	}
	fmt.Fprintln(os.Stdout)

	bytecode.DisassembleInstruction(vm.chunk, os.Stdout, vm.ip)
}
