/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package bytecode

import (
	"fmt"

	"github.com/loxgo/loxgo/pkg/table"
)

// ValueKind identifies which variant of the Value tagged union is populated.
type ValueKind int

const (
	ValueNil ValueKind = iota
	ValueBool
	ValueNumber
	ValueObj
)

// Value is a loxgo value: a small tagged union, copied by value everywhere
// (on the VM stack, in the constant pool) rather than boxed behind an
// interface, since every variant but Obj is a handful of bytes.
type Value struct {
	Kind ValueKind
	num  float64 // the Number payload, or 0/1 for a Bool payload
	obj  *Object
}

// Nil is the singleton Nil value.
var Nil = Value{Kind: ValueNil}

// Bool builds a Value holding a boolean.
func Bool(b bool) Value {
	v := Value{Kind: ValueBool}
	if b {
		v.num = 1
	}
	return v
}

// Number builds a Value holding a 64-bit float.
func Number(n float64) Value {
	return Value{Kind: ValueNumber, num: n}
}

// Obj builds a Value holding a heap object reference.
func Obj(o *Object) Value {
	return Value{Kind: ValueObj, obj: o}
}

// IsNil, IsBool, IsNumber, IsObj report the Value's variant.
func (v Value) IsNil() bool    { return v.Kind == ValueNil }
func (v Value) IsBool() bool   { return v.Kind == ValueBool }
func (v Value) IsNumber() bool { return v.Kind == ValueNumber }
func (v Value) IsObj() bool    { return v.Kind == ValueObj }

// AsBool returns the Value's boolean payload. Only meaningful if IsBool.
func (v Value) AsBool() bool { return v.num != 0 }

// AsNumber returns the Value's numeric payload. Only meaningful if IsNumber.
func (v Value) AsNumber() float64 { return v.num }

// AsObj returns the Value's object payload. Only meaningful if IsObj.
func (v Value) AsObj() *Object { return v.obj }

// IsString reports whether the Value holds a String object.
func (v Value) IsString() bool {
	return v.IsObj() && v.obj.Type == ObjTypeString
}

// AsString returns the Value's ObjString. Only meaningful if IsString.
func (v Value) AsString() *ObjString {
	return v.obj.asString
}

// IsFalsey implements loxgo's truthiness rule: nil and false are falsey,
// everything else (including 0 and "") is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// ValuesEqual reports whether a and b are equal. Cross-variant comparisons
// are always false. Number equality follows IEEE-754 (NaN != NaN). Obj
// string equality is reference equality, since every string is interned.
func ValuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValueNil:
		return true
	case ValueBool:
		return a.AsBool() == b.AsBool()
	case ValueNumber:
		return a.AsNumber() == b.AsNumber()
	case ValueObj:
		if a.IsString() && b.IsString() {
			return a.AsString() == b.AsString()
		}
		return a.obj == b.obj
	default:
		return false
	}
}

// String renders a Value the way `print` does.
func (v Value) String() string {
	switch v.Kind {
	case ValueNil:
		return "nil"
	case ValueBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case ValueNumber:
		return formatNumber(v.AsNumber())
	case ValueObj:
		return v.obj.String()
	default:
		return fmt.Sprintf("<unknown value kind %v>", v.Kind)
	}
}

func formatNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}

//
// Object header and String object
//

// ObjType identifies the concrete type of a heap Object.
type ObjType int

const (
	// ObjTypeString is the only object variant loxgo requires.
	ObjTypeString ObjType = iota
)

// Object is the header every heap-allocated value carries: a type tag and a
// forward link. The VM threads every object it creates through Next to form
// an intrusive list (the "objects list"). Nothing walks or frees the list;
// memory is reclaimed by Go's garbage collector.
type Object struct {
	Type ObjType
	Next *Object

	// asString is set when Type == ObjTypeString. Using a field here rather
	// than a type-asserted wrapper keeps Object a single allocation shared
	// by both the header and the concrete payload.
	asString *ObjString
}

// String renders the object the way `print` does.
func (o *Object) String() string {
	switch o.Type {
	case ObjTypeString:
		return o.asString.Chars
	default:
		return fmt.Sprintf("<object of unknown type %v>", o.Type)
	}
}

// ObjString is an interned, immutable byte string. The hash is computed
// once, at construction, and never recomputed -- not even when the intern
// table grows and every entry's bucket index is recalculated.
type ObjString struct {
	object *Object
	Chars  string
	hash   uint32
}

// NewObjString wraps chars in a fresh Object/ObjString pair, linking it onto
// head (the VM's objects list), and returns the new Object header, which is
// also the new list head. Callers needing string interning go through the
// VM, which checks its intern table before calling this -- construction
// here is unconditional.
func NewObjString(chars string, hash uint32, head *Object) *Object {
	s := &ObjString{Chars: chars, hash: hash}
	obj := &Object{Type: ObjTypeString, Next: head, asString: s}
	s.object = obj
	return obj
}

// Object returns the heap Object header wrapping this ObjString.
func (s *ObjString) Object() *Object {
	return s.object
}

// Hash fulfills table.Key, reusing the hash cached at construction.
func (s *ObjString) Hash() uint32 {
	return s.hash
}

// Equal fulfills table.Key. All ObjStrings are interned, so equality is
// reference equality.
func (s *ObjString) Equal(other table.Key) bool {
	o, ok := other.(*ObjString)
	return ok && s == o
}
