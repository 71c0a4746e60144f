package object

import "fmt"

// Function is the compile-time product of `fun`/method/script: its arity,
// how many upvalues it captures, the Chunk of bytecode for its body, and an
// optional name (nil for the implicit top-level script function).
type Function struct {
	Header
	Arity        int
	UpvalueCount int
	Chunk        Chunk
	Name         *String // nil for the top-level script
}

var _ Obj = (*Function)(nil)

func (f *Function) Kind() Kind { return OFunction }
func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name.String())
}

// DisplayName returns the function's name, or "script" for the implicit
// top-level function, matching the "[line L] in FN()" stack trace format.
func (f *Function) DisplayName() string {
	if f.Name == nil {
		return "script"
	}
	return f.Name.String()
}

// UpvalueDesc describes, inside an enclosing function's Chunk metadata, how
// one of a nested closure's upvalues should be captured: either from a local
// slot of the enclosing frame (IsLocal true) or by reusing one of the
// enclosing closure's own upvalues (IsLocal false). The compiler emits one
// (IsLocal, Index) pair per upvalue right after OP_CLOSURE's function
// constant operand; the VM reads them back while building the Closure.
type UpvalueDesc struct {
	IsLocal bool
	Index   byte
}

// Closure wraps a Function with the concrete upvalues captured at the site
// where the closure was created. Every callable value at runtime is a
// Closure — even the implicit top-level script — so the VM's call dispatch
// never special-cases a bare Function.
type Closure struct {
	Header
	Function *Function
	Upvalues []*Upvalue
}

var _ Obj = (*Closure)(nil)

func (c *Closure) Kind() Kind     { return OClosure }
func (c *Closure) String() string { return c.Function.String() }
