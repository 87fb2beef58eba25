/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package vm

import "github.com/loxgo/loxgo/pkg/bytecode"

// MaxStackSize is the fixed capacity of the VM's value stack. The compiler
// is trusted to never emit code that pushes past this; if it does, that's a
// bug in loxgo, not in the user's source (spec.md leaves overflow behavior
// as undefined in the original design; push bound-checks and panics with
// "vm: stack overflow" rather than corrupting memory).
const MaxStackSize = 256

// stack is the VM's runtime value stack: a fixed-size array of Values with
// stackTop as the next free index.
type stack struct {
	data     [MaxStackSize]bytecode.Value
	stackTop int
}

// reset empties the stack. Called after a runtime error, per spec.md §4.4.
func (s *stack) reset() {
	s.stackTop = 0
}

// push pushes v onto the stack. Panics on overflow.
func (s *stack) push(v bytecode.Value) {
	if s.stackTop >= MaxStackSize {
		panic("vm: stack overflow")
	}
	s.data[s.stackTop] = v
	s.stackTop++
}

// pop pops and returns the top value. Panics on underflow.
func (s *stack) pop() bytecode.Value {
	s.stackTop--
	return s.data[s.stackTop]
}

// top returns the top value without popping it.
func (s *stack) top() bytecode.Value {
	return s.data[s.stackTop-1]
}

// peek returns the value distance slots down from the top. peek(0) is the
// same as top().
func (s *stack) peek(distance int) bytecode.Value {
	return s.data[s.stackTop-1-distance]
}

// at returns the value at the given absolute stack slot -- used by
// GET_LOCAL/SET_LOCAL, whose operand is a slot index rather than a
// distance-from-top.
func (s *stack) at(slot int) bytecode.Value {
	return s.data[slot]
}

// setAt overwrites the value at the given absolute stack slot.
func (s *stack) setAt(slot int, v bytecode.Value) {
	s.data[slot] = v
}

// size returns the number of live values on the stack.
func (s *stack) size() int {
	return s.stackTop
}
