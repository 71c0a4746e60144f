package vm

import (
	"unsafe"

	"github.com/jyotindersingh/goctok/lang/object"
)

// uintptrOf gives the address of a stack slot as a comparable integer so the
// open-upvalue list can be kept ordered by descending slot address, exactly
// as clox compares raw pointers into its value stack. Slots only ever point
// into VM.stack, a fixed-size array field that never moves for the life of
// the VM, so this address is stable.
func uintptrOf(v *object.Value) uintptr { return uintptr(unsafe.Pointer(v)) }
