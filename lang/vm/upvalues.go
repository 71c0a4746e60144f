package vm

import "github.com/jyotindersingh/goctok/lang/object"

// captureUpvalue returns the existing open upvalue pointing at slot, or
// allocates and links in a new one at the correct position in the
// descending-by-address open-upvalue list (§4.3 "Upvalue capture").
func (vm *VM) captureUpvalue(slot *object.Value) *object.Upvalue {
	var prev *object.Upvalue
	uv := vm.openUpvalues
	for uv != nil && uv.Location != slot {
		// list is ordered by descending slot address; stop once we've passed
		// where slot would belong
		if uintptrOf(uv.Location) < uintptrOf(slot) {
			break
		}
		prev = uv
		uv = uv.OpenNext
	}
	if uv != nil && uv.Location == slot {
		return uv
	}

	created := vm.gc.NewUpvalue(slot)
	created.OpenNext = uv
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.OpenNext = created
	}
	return created
}

// closeUpvalues closes every open upvalue whose slot lies at or above
// threshold, copying its value out of the stack and unlinking it from the
// open list, per §4.3 "CLOSE_UPVALUE and RETURN".
func (vm *VM) closeUpvalues(threshold *object.Value) {
	for vm.openUpvalues != nil && uintptrOf(vm.openUpvalues.Location) >= uintptrOf(threshold) {
		uv := vm.openUpvalues
		uv.Close()
		vm.openUpvalues = uv.OpenNext
	}
}
