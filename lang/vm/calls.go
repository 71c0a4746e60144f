package vm

import "github.com/jyotindersingh/goctok/lang/object"

// callValue dispatches CALL's callee per its runtime kind (§4.3 "Call
// dispatch"). A non-nil return is already a fully formatted RuntimeError
// (via vm.runtimeError); callers just propagate it up out of the dispatch
// loop.
func (vm *VM) callValue(callee object.Value, argCount int) error {
	if !callee.IsObj() {
		return vm.runtimeError("Can only call functions and classes.")
	}
	switch obj := callee.AsObj().(type) {
	case *object.Closure:
		return vm.call(obj, argCount)
	case *object.Class:
		inst := vm.gc.NewInstance(obj)
		vm.stack[vm.sp-argCount-1] = object.FromObj(inst)
		if initializer, ok := obj.Methods.Get(vm.initString); ok {
			return vm.call(initializer, argCount)
		}
		if argCount != 0 {
			return vm.runtimeError("Expected 0 arguments but got %d.", argCount)
		}
		return nil
	case *object.BoundMethod:
		vm.stack[vm.sp-argCount-1] = obj.Receiver
		return vm.call(obj.Method, argCount)
	case *object.Native:
		args := vm.stack[vm.sp-argCount : vm.sp]
		result, err := obj.Fn(args)
		if err != nil {
			return vm.runtimeError("%s", err.Error())
		}
		vm.sp -= argCount + 1
		vm.push(result)
		return nil
	default:
		return vm.runtimeError("Can only call functions and classes.")
	}
}

// call pushes a new CallFrame for closure, validating arity and frame-depth
// limits.
func (vm *VM) call(closure *object.Closure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argCount)
	}
	if len(vm.frames) >= MaxFrames {
		return vm.runtimeError("Stack overflow.")
	}
	vm.frames = append(vm.frames, CallFrame{
		closure: closure,
		ip:      0,
		slots:   vm.sp - argCount - 1,
	})
	return nil
}

// bindMethod resolves name on class's method table and, on a hit, replaces
// the instance on top of the stack with a BoundMethod.
func (vm *VM) bindMethod(class *object.Class, name *object.String) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.String())
	}
	bound := vm.gc.NewBoundMethod(vm.peek(0), method)
	vm.pop()
	vm.push(object.FromObj(bound))
	return nil
}

// invoke performs GET_PROPERTY-then-CALL in one step but without allocating
// an intermediate BoundMethod when the name resolves to a method: a field
// hit is called as a value instead (§4.3 "Invocation").
func (vm *VM) invoke(name *object.String, argCount int) error {
	receiver := vm.peek(argCount)
	inst, ok := receiver.AsObj().(*object.Instance)
	if !receiver.IsObj() || !ok {
		return vm.runtimeError("Only instances have methods.")
	}

	if field, ok := inst.Fields.Get(name); ok {
		vm.stack[vm.sp-argCount-1] = field
		return vm.callValue(field, argCount)
	}

	method, ok := inst.Class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.String())
	}
	return vm.call(method, argCount)
}

// invokeFromClass looks up name directly on superclass's method table (used
// by SUPER_INVOKE, which already knows to skip the receiver's own class).
func (vm *VM) invokeFromClass(class *object.Class, name *object.String, argCount int) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.String())
	}
	return vm.call(method, argCount)
}
