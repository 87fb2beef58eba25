/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package vm

import (
	"github.com/loxgo/loxgo/internal/fnv1a"
	"github.com/loxgo/loxgo/pkg/bytecode"
)

// internString returns the interned *bytecode.ObjString for chars, creating
// and linking a new one onto the objects list only if an equal string isn't
// already interned. Every string the scanner, compiler, or runtime
// concatenation produces goes through here, which is what makes Value
// equality on strings a pointer comparison (spec.md §3).
func (vm *VM) internString(chars string) *bytecode.ObjString {
	hash := fnv1a.String(chars)

	if existing, ok := vm.strings.FindMatch(hash, func(k *bytecode.ObjString) bool {
		return k.Hash() == hash && k.Chars == chars
	}); ok {
		return existing
	}

	vm.objects = bytecode.NewObjString(chars, hash, vm.objects)
	s := bytecode.Obj(vm.objects).AsString()
	vm.strings.Set(s, struct{}{})
	return s
}
