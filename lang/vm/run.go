package vm

import (
	"fmt"

	"github.com/jyotindersingh/goctok/lang/object"
)

// run is the bytecode dispatch loop: it advances one instruction per
// iteration with no interior yield points (§5), reading the current
// CallFrame by pointer so ip/slots mutations are visible across opcodes.
func (vm *VM) run() error {
	frame := &vm.frames[len(vm.frames)-1]

	readByte := func() byte {
		b := frame.closure.Function.Chunk.Code[frame.ip]
		frame.ip++
		return b
	}
	readUint16 := func() uint16 {
		v := frame.closure.Function.Chunk.ReadUint16(frame.ip)
		frame.ip += 2
		return v
	}
	readConstant := func() object.Value {
		return frame.closure.Function.Chunk.Constants[readByte()]
	}
	readString := func() *object.String {
		s, _ := readConstant().AsObj().(*object.String)
		return s
	}

	for {
		op := object.Opcode(readByte())
		switch op {
		case object.OP_CONSTANT:
			vm.push(readConstant())

		case object.OP_NIL:
			vm.push(object.Nil)
		case object.OP_TRUE:
			vm.push(object.Bool(true))
		case object.OP_FALSE:
			vm.push(object.Bool(false))
		case object.OP_POP:
			vm.pop()

		case object.OP_GET_LOCAL:
			vm.push(vm.stack[frame.slots+int(readByte())])
		case object.OP_SET_LOCAL:
			vm.stack[frame.slots+int(readByte())] = vm.peek(0)

		case object.OP_GET_GLOBAL:
			name := readString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.String())
			}
			vm.push(v)
		case object.OP_DEFINE_GLOBAL:
			name := readString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case object.OP_SET_GLOBAL:
			name := readString()
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.String())
			}

		case object.OP_GET_UPVALUE:
			idx := readByte()
			vm.push(*frame.closure.Upvalues[idx].Location)
		case object.OP_SET_UPVALUE:
			idx := readByte()
			*frame.closure.Upvalues[idx].Location = vm.peek(0)

		case object.OP_GET_PROPERTY:
			if err := vm.getProperty(readString()); err != nil {
				return err
			}

		case object.OP_SET_PROPERTY:
			inst, ok := vm.peek(1).AsObj().(*object.Instance)
			if !vm.peek(1).IsObj() || !ok {
				return vm.runtimeError("Only instances have fields.")
			}
			name := readString()
			value := vm.peek(0)
			inst.Fields.Set(name, value)
			vm.pop()
			vm.pop()
			vm.push(value)

		case object.OP_GET_SUPER:
			name := readString()
			superclass, _ := vm.pop().AsObj().(*object.Class)
			if err := vm.bindMethod(superclass, name); err != nil {
				return err
			}

		case object.OP_EQUAL:
			b, a := vm.pop(), vm.pop()
			vm.push(object.Bool(a.Equal(b)))
		case object.OP_GREATER:
			if err := vm.numericBinary(func(a, b float64) object.Value { return object.Bool(a > b) }); err != nil {
				return err
			}
		case object.OP_LESS:
			if err := vm.numericBinary(func(a, b float64) object.Value { return object.Bool(a < b) }); err != nil {
				return err
			}

		case object.OP_ADD:
			if err := vm.add(); err != nil {
				return err
			}
		case object.OP_SUBTRACT:
			if err := vm.numericBinary(func(a, b float64) object.Value { return object.Number(a - b) }); err != nil {
				return err
			}
		case object.OP_MULTIPLY:
			if err := vm.numericBinary(func(a, b float64) object.Value { return object.Number(a * b) }); err != nil {
				return err
			}
		case object.OP_DIVIDE:
			if err := vm.numericBinary(func(a, b float64) object.Value { return object.Number(a / b) }); err != nil {
				return err
			}

		case object.OP_NOT:
			vm.push(object.Bool(vm.pop().Falsey()))
		case object.OP_NEGATE:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(object.Number(-vm.pop().AsNumber()))

		case object.OP_PRINT:
			fmt.Fprintln(vm.Stdout, vm.pop().String())

		case object.OP_JUMP:
			offset := readUint16()
			frame.ip += int(offset)
		case object.OP_JUMP_IF_FALSE:
			offset := readUint16()
			if vm.peek(0).Falsey() {
				frame.ip += int(offset)
			}
		case object.OP_LOOP:
			offset := readUint16()
			frame.ip -= int(offset)

		case object.OP_CALL:
			argCount := int(readByte())
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
			frame = &vm.frames[len(vm.frames)-1]

		case object.OP_INVOKE:
			name := readString()
			argCount := int(readByte())
			if err := vm.invoke(name, argCount); err != nil {
				return err
			}
			frame = &vm.frames[len(vm.frames)-1]

		case object.OP_SUPER_INVOKE:
			name := readString()
			argCount := int(readByte())
			superclass, _ := vm.pop().AsObj().(*object.Class)
			if err := vm.invokeFromClass(superclass, name, argCount); err != nil {
				return err
			}
			frame = &vm.frames[len(vm.frames)-1]

		case object.OP_CLOSURE:
			fn, _ := readConstant().AsObj().(*object.Function)
			upvalues := make([]*object.Upvalue, fn.UpvalueCount)
			for i := range upvalues {
				isLocal := readByte()
				index := readByte()
				if isLocal != 0 {
					upvalues[i] = vm.captureUpvalue(&vm.stack[frame.slots+int(index)])
				} else {
					upvalues[i] = frame.closure.Upvalues[index]
				}
			}
			closure := vm.gc.NewClosure(fn, upvalues)
			vm.push(object.FromObj(closure))

		case object.OP_CLOSE_UPVALUE:
			vm.closeUpvalues(&vm.stack[vm.sp-1])
			vm.pop()

		case object.OP_RETURN:
			result := vm.pop()
			vm.closeUpvalues(&vm.stack[frame.slots])
			vm.frames = vm.frames[:len(vm.frames)-1]
			if len(vm.frames) == 0 {
				vm.pop()
				return nil
			}
			vm.sp = frame.slots
			vm.push(result)
			frame = &vm.frames[len(vm.frames)-1]

		case object.OP_CLASS:
			name := readString()
			vm.push(object.FromObj(vm.gc.NewClass(name)))

		case object.OP_INHERIT:
			superclass, ok := vm.peek(1).AsObj().(*object.Class)
			if !vm.peek(1).IsObj() || !ok {
				return vm.runtimeError("Superclass must be a class.")
			}
			subclass, _ := vm.peek(0).AsObj().(*object.Class)
			subclass.Methods.AddAll(superclass.Methods)
			vm.pop()

		case object.OP_METHOD:
			vm.defineMethod(readString())

		default:
			return vm.runtimeError("Unknown opcode %d.", op)
		}
	}
}

func (vm *VM) getProperty(name *object.String) error {
	inst, ok := vm.peek(0).AsObj().(*object.Instance)
	if !vm.peek(0).IsObj() || !ok {
		return vm.runtimeError("Only instances have properties.")
	}
	if value, ok := inst.Fields.Get(name); ok {
		vm.pop()
		vm.push(value)
		return nil
	}
	return vm.bindMethod(inst.Class, name)
}

func (vm *VM) numericBinary(op func(a, b float64) object.Value) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b, a := vm.pop(), vm.pop()
	vm.push(op(a.AsNumber(), b.AsNumber()))
	return nil
}

func (vm *VM) add() error {
	bObj, bIsStr := vm.peek(0).AsObj().(*object.String)
	aObj, aIsStr := vm.peek(1).AsObj().(*object.String)
	switch {
	case bIsStr && aIsStr:
		vm.pop()
		vm.pop()
		concat := append(append([]byte{}, aObj.Bytes...), bObj.Bytes...)
		s := vm.gc.Intern(concat)
		vm.push(object.FromObj(s))
	case vm.peek(0).IsNumber() && vm.peek(1).IsNumber():
		b, a := vm.pop(), vm.pop()
		vm.push(object.Number(a.AsNumber() + b.AsNumber()))
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
	return nil
}

func (vm *VM) defineMethod(name *object.String) {
	method, _ := vm.peek(0).AsObj().(*object.Closure)
	class, _ := vm.peek(1).AsObj().(*object.Class)
	class.Methods.Set(name, method)
	vm.pop()
}
