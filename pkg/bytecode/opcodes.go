/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package bytecode

// OpCode is a single bytecode instruction. Operands, when present, follow the
// opcode byte directly in the chunk's code array.
type OpCode uint8

const (
	// OpConstant pushes constants[operand] (1-byte operand).
	OpConstant OpCode = iota

	// OpNil, OpTrue, OpFalse push the corresponding literal value.
	OpNil
	OpTrue
	OpFalse

	// OpPop discards the top of the stack.
	OpPop

	// OpGetLocal and OpSetLocal address a stack slot (1-byte operand).
	OpGetLocal
	OpSetLocal

	// OpGetGlobal looks up a global by name (1-byte constant-pool operand);
	// it self-patches into OpGetGlobalFast after its first execution.
	OpGetGlobal

	// OpGetGlobalFast reads directly from the VM's globals cache (1-byte
	// cache-index operand). Never emitted by the compiler; only ever
	// written by the VM rewriting an OpGetGlobal in place.
	OpGetGlobalFast

	// OpDefineGlobal and OpSetGlobal address a name in the constant pool
	// (1-byte operand).
	OpDefineGlobal
	OpSetGlobal

	// OpEqual, OpGreater, OpLess are the only comparison primitives; !=, >=,
	// <= are compiled as two-instruction sequences built from these plus
	// OpNot.
	OpEqual
	OpGreater
	OpLess

	// OpAdd, OpSubtract, OpMultiply, OpDivide are binary arithmetic. OpAdd
	// also handles string concatenation.
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide

	// OpNot and OpNegate are unary.
	OpNot
	OpNegate

	// OpPrint pops and prints the top of the stack.
	OpPrint

	// OpJump, OpJumpIfFalse, OpLoop carry a 2-byte big-endian operand.
	// OpJumpIfFalse does not pop its condition.
	OpJump
	OpJumpIfFalse
	OpLoop

	// OpReturn halts execution.
	OpReturn
)

var opcodeNames = map[OpCode]string{
	OpConstant:      "CONSTANT",
	OpNil:           "NIL",
	OpTrue:          "TRUE",
	OpFalse:         "FALSE",
	OpPop:           "POP",
	OpGetLocal:      "GET_LOCAL",
	OpSetLocal:      "SET_LOCAL",
	OpGetGlobal:     "GET_GLOBAL",
	OpGetGlobalFast: "GET_GLOBAL_FAST",
	OpDefineGlobal:  "DEFINE_GLOBAL",
	OpSetGlobal:     "SET_GLOBAL",
	OpEqual:         "EQUAL",
	OpGreater:       "GREATER",
	OpLess:          "LESS",
	OpAdd:           "ADD",
	OpSubtract:      "SUBTRACT",
	OpMultiply:      "MULTIPLY",
	OpDivide:        "DIVIDE",
	OpNot:           "NOT",
	OpNegate:        "NEGATE",
	OpPrint:         "PRINT",
	OpJump:          "JUMP",
	OpJumpIfFalse:   "JUMP_IF_FALSE",
	OpLoop:          "LOOP",
	OpReturn:        "RETURN",
}

// String converts an OpCode to its disassembly mnemonic. Returns
// "UNKNOWN" for an invalid value.
func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}
