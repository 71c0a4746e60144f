package object

import "fmt"

// NativeFn is a host function accepting the called argument slice and
// returning a Value or an error (reported as a runtime error by the VM).
type NativeFn func(args []Value) (Value, error)

// Native wraps a host-provided function so it can be called like any other
// Tok callable. The only Native the core language defines is clock (§6); a
// host embedding the VM may register more through the same mechanism.
type Native struct {
	Header
	Name string
	Fn   NativeFn
}

var _ Obj = (*Native)(nil)

func (n *Native) Kind() Kind     { return ONative }
func (n *Native) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }
