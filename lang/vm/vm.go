// Package vm implements Tok's stack-based virtual machine: the bytecode
// dispatch loop, the call-frame stack, the open-upvalue list, and
// class/instance/method dispatch (§4.3).
//
// The VM is register-less: every operation reads its operands off the
// operand stack and pushes its result back. Closures (including the
// implicit top-level script) are the only callable representation the loop
// ever dispatches on directly; Class, BoundMethod, and Native values are
// each resolved down to a closure call (or a native call) before the frame
// stack is touched.
package vm

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jyotindersingh/goctok/lang/gc"
	"github.com/jyotindersingh/goctok/lang/object"
	"github.com/jyotindersingh/goctok/lang/table"
)

// processStart is the baseline clock() measures against (§6: "seconds since
// program start", not since the Unix epoch). Captured once at package
// initialization.
var processStart = time.Now()

// MaxFrames bounds call-frame depth; exceeding it is a runtime "stack
// overflow" (§4.3, §8).
const MaxFrames = 64

// stackSize is the fixed capacity of the operand stack, generous enough for
// MaxFrames frames times a realistic per-frame high-water mark.
const stackSize = MaxFrames * 256

// CallFrame tracks one live call to a Closure: its instruction pointer into
// the closure's chunk, and the base offset into the VM's operand stack
// where its locals begin (slot 0 is the callee/this placeholder).
type CallFrame struct {
	closure *object.Closure
	ip      int
	slots   int
}

// VM is the interpreter state: the operand stack, the call-frame stack, the
// globals table, the open-upvalue list, and the collector it allocates
// through. A VM executes one program at a time and is not safe for
// concurrent use (§5).
type VM struct {
	gc *gc.Collector

	stack   [stackSize]object.Value
	sp      int
	frames  []CallFrame
	globals *table.Table[*object.String, object.Value]

	openUpvalues *object.Upvalue

	initString *object.String

	Stdout io.Writer
}

var _ gc.RootProvider = (*VM)(nil)

// New returns a ready-to-run VM sharing collector for all allocation, with
// the clock native already registered (§6).
func New(collector *gc.Collector) *VM {
	vm := &VM{
		gc:      collector,
		globals: table.New[*object.String, object.Value](16),
		Stdout:  os.Stdout,
	}
	vm.initString = collector.Intern([]byte("init"))
	collector.Register(vm)
	vm.defineNative("clock", clockNative)
	return vm
}

// GCRoots implements gc.RootProvider (§4.4): the live operand stack slots,
// every Closure referenced by a live CallFrame, every open Upvalue, every
// key/value in the globals table, and the interned "init" string.
func (vm *VM) GCRoots() []object.Value {
	roots := make([]object.Value, 0, vm.sp+len(vm.frames)+8)
	for i := 0; i < vm.sp; i++ {
		roots = append(roots, vm.stack[i])
	}
	for _, fr := range vm.frames {
		roots = append(roots, object.FromObj(fr.closure))
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.OpenNext {
		roots = append(roots, object.FromObj(uv))
	}
	vm.globals.Each(func(k *object.String, v object.Value) bool {
		roots = append(roots, object.FromObj(k), v)
		return true
	})
	roots = append(roots, object.FromObj(vm.initString))
	return roots
}

func (vm *VM) push(v object.Value) {
	vm.stack[vm.sp] = v
	vm.sp++
}

func (vm *VM) pop() object.Value {
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) object.Value {
	return vm.stack[vm.sp-1-distance]
}

func (vm *VM) resetStack() {
	vm.sp = 0
	vm.frames = vm.frames[:0]
	vm.openUpvalues = nil
}

// RuntimeError is returned by Interpret when execution fails after a
// compiled program has started running; its Error text already contains the
// full "[line N] in FN()" stack trace described in §4.3.
type RuntimeError struct {
	msg string
}

func (e *RuntimeError) Error() string { return e.msg }

// runtimeError formats msg (with fmt.Sprintf semantics), appends a stack
// trace frame for every live CallFrame, and resets the VM's stacks so it is
// ready to interpret another program afterwards.
func (vm *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	var trace string
	for i := len(vm.frames) - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		fn := fr.closure.Function
		line := fn.Chunk.Lines[fr.ip-1]
		trace += fmt.Sprintf("[line %d] in %s()\n", line, fn.DisplayName())
	}
	vm.resetStack()
	return &RuntimeError{msg: msg + "\n" + trace}
}

func (vm *VM) defineNative(name string, fn object.NativeFn) {
	n := vm.gc.NewNative(name, fn)
	// Intermediate products (the native object, its name string) must be
	// reachable before the next allocation; pushing n keeps it rooted while
	// Intern below may itself allocate (§4.4 allocator discipline).
	vm.push(object.FromObj(n))
	key := vm.gc.Intern([]byte(name))
	vm.globals.Set(key, vm.peek(0))
	vm.pop()
}

func clockNative(_ []object.Value) (object.Value, error) {
	return object.Number(time.Since(processStart).Seconds()), nil
}

// Interpret compiles-and-runs nothing itself: fn is the already-compiled
// top-level script Function. It wraps fn in a Closure, pushes the initial
// CallFrame, and runs the dispatch loop to completion.
func (vm *VM) Interpret(fn *object.Function) error {
	vm.resetStack()
	closure := vm.gc.NewClosure(fn, nil)
	vm.push(object.FromObj(closure))
	if err := vm.call(closure, 0); err != nil {
		return err
	}
	return vm.run()
}
