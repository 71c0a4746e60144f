package object

import (
	"fmt"
	"math"
	"strconv"
)

// ValueKind is the tag of a Value's payload.
type ValueKind uint8

const (
	VNil ValueKind = iota
	VBool
	VNumber
	VObj
)

// Value is Tok's tagged union: nil, bool, number (float64), or a reference to
// a heap-allocated Obj. It is deliberately a small value type (copied by
// assignment, pushed/popped on the operand stack by value) rather than an
// interface, so the VM's stack is a flat []Value with no per-slot heap
// allocation for the non-object cases.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	obj  Obj
}

var Nil = Value{kind: VNil}

func Bool(b bool) Value   { return Value{kind: VBool, b: b} }
func Number(n float64) Value { return Value{kind: VNumber, n: n} }
func FromObj(o Obj) Value { return Value{kind: VObj, obj: o} }

func (v Value) IsNil() bool    { return v.kind == VNil }
func (v Value) IsBool() bool   { return v.kind == VBool }
func (v Value) IsNumber() bool { return v.kind == VNumber }
func (v Value) IsObj() bool    { return v.kind == VObj }

func (v Value) AsBool() bool     { return v.b }
func (v Value) AsNumber() float64 { return v.n }
func (v Value) AsObj() Obj       { return v.obj }

// ObjKind returns the Kind of the referenced object and true if the value is
// an object, or false if it is nil, a bool or a number.
func (v Value) ObjKind() (Kind, bool) {
	if v.kind != VObj {
		return 0, false
	}
	return v.obj.Kind(), true
}

// Falsey implements Tok's truthiness rule: only nil and false are false,
// every other value (including 0 and "") is true.
func (v Value) Falsey() bool {
	switch v.kind {
	case VNil:
		return true
	case VBool:
		return !v.b
	default:
		return false
	}
}

// Equal implements Tok's == semantics: same tag and same payload. Object
// references compare by identity, which suffices for strings because they
// are interned (identical content implies the same *String).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case VNil:
		return true
	case VBool:
		return v.b == o.b
	case VNumber:
		return v.n == o.n
	case VObj:
		return v.obj == o.obj
	default:
		return false
	}
}

// TypeName returns a short description of the value's runtime type, used in
// error messages.
func (v Value) TypeName() string {
	switch v.kind {
	case VNil:
		return "nil"
	case VBool:
		return "bool"
	case VNumber:
		return "number"
	case VObj:
		return v.obj.Kind().String()
	default:
		return "unknown"
	}
}

// String renders the value the way Tok's PRINT instruction and string
// concatenation do.
func (v Value) String() string {
	switch v.kind {
	case VNil:
		return "nil"
	case VBool:
		if v.b {
			return "true"
		}
		return "false"
	case VNumber:
		return formatNumber(v.n)
	case VObj:
		return v.obj.String()
	default:
		return "<invalid value>"
	}
}

func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "nan"
	}
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// GoString supports %#v for debugging/tests.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{%s: %s}", v.TypeName(), v.String())
}
