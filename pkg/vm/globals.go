/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package vm

import "github.com/loxgo/loxgo/pkg/bytecode"

// MaxGlobalsCache bounds the VM's globals inline cache (spec.md §4.3: "a
// bounded array (default 100)"). Once full, OP_GET_GLOBAL keeps falling
// back to the hash table instead of self-patching.
const MaxGlobalsCache = 100

// globalCacheEntry is one slot of the globals inline cache.
type globalCacheEntry struct {
	name  *bytecode.ObjString
	value bytecode.Value
}

// cacheIndexOf returns the cache slot for name, or -1 if it has none.
func (vm *VM) cacheIndexOf(name *bytecode.ObjString) int {
	for i, e := range vm.globalsCache {
		if e.name == name {
			return i
		}
	}
	return -1
}

// instructionWidth returns the total byte length (opcode + operands) of the
// instruction at chunk.Code[offset], so the inline-cache patcher can walk
// the code stream without misinterpreting operand bytes as opcodes.
func instructionWidth(op bytecode.OpCode) int {
	switch op {
	case bytecode.OpJump, bytecode.OpJumpIfFalse, bytecode.OpLoop:
		return 3
	case bytecode.OpConstant, bytecode.OpGetLocal, bytecode.OpSetLocal,
		bytecode.OpGetGlobal, bytecode.OpGetGlobalFast, bytecode.OpDefineGlobal,
		bytecode.OpSetGlobal:
		return 2
	default:
		return 1
	}
}

// patchGetGlobal rewrites chunk.Code[ip-2:ip] (the just-executed
// OP_GET_GLOBAL and its operand) into OP_GET_GLOBAL_FAST <cacheIdx>, then
// scans forward from ip to the end of the chunk rewriting every later
// OP_GET_GLOBAL that references the same constant-pool name index, per
// spec.md §4.3's "additionally rewrites all later OP_GET_GLOBAL
// instructions in the same chunk that reference the same name".
func patchGetGlobal(chunk *bytecode.Chunk, ip int, nameIdx byte, cacheIdx int) {
	chunk.Code[ip-2] = byte(bytecode.OpGetGlobalFast)
	chunk.Code[ip-1] = byte(cacheIdx)

	for offset := ip; offset < len(chunk.Code); {
		op := bytecode.OpCode(chunk.Code[offset])
		width := instructionWidth(op)

		if op == bytecode.OpGetGlobal && chunk.Code[offset+1] == nameIdx {
			chunk.Code[offset] = byte(bytecode.OpGetGlobalFast)
			chunk.Code[offset+1] = byte(cacheIdx)
		}

		offset += width
	}
}
