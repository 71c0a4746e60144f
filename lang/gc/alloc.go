package gc

import "github.com/jyotindersingh/goctok/lang/object"

// Intern returns the canonical *object.String for the given bytes, allocating
// and tracking a new one only if no equal string has been interned yet. This
// is the single entry point for string identity in the whole system: two
// Strings with equal bytes are always the same *object.String afterwards.
//
// Allocator discipline: Intern tracks the new String before registering it
// in the (weak) intern table, not after. track may itself trigger a
// collection (stress mode, or crossing nextGC); pruneIntern runs as part of
// that collection and deletes any intern entry whose string is still white,
// so the new String must not be visible in the table until the collection
// that its own allocation might provoke has already happened — otherwise
// that very collection would prune the entry it was never rooted for.
func (c *Collector) Intern(b []byte) *object.String {
	key := string(b)
	if s, ok := c.intern.Get(key); ok {
		return s
	}
	s := &object.String{Bytes: []byte(key), Hash: object.HashFNV1a(b)}
	c.track(s)
	c.intern.Set(key, s)
	return s
}

// NewFunction allocates a fresh, empty Function. The compiler fills in
// Arity/UpvalueCount/Chunk/Name as it compiles the function's body; the
// Function is rooted throughout compilation via the compiler's own
// RootProvider registration (its stack of in-progress function states), so
// no stack-push discipline is needed here.
func (c *Collector) NewFunction() *object.Function {
	f := &object.Function{}
	c.track(f)
	return f
}

// NewClosure allocates a Closure over fn with the given already-captured
// upvalues. Callers (the VM's OP_CLOSURE handler) must finish building the
// upvalues slice — which may itself allocate Upvalues via NewUpvalue/
// CaptureUpvalue — before calling NewClosure, and must push the returned
// Closure onto the operand stack immediately, before performing any further
// allocation, per §4.4.
func (c *Collector) NewClosure(fn *object.Function, upvalues []*object.Upvalue) *object.Closure {
	cl := &object.Closure{Function: fn, Upvalues: upvalues}
	c.track(cl)
	return cl
}

// NewUpvalue allocates a fresh open upvalue pointing at slot. The caller is
// responsible for linking it into the VM's open-upvalue list immediately, so
// it is reachable through that root source even before it is stored into a
// closure.
func (c *Collector) NewUpvalue(slot *object.Value) *object.Upvalue {
	uv := &object.Upvalue{Location: slot}
	c.track(uv)
	return uv
}

// NewClass allocates an empty class named name.
func (c *Collector) NewClass(name *object.String) *object.Class {
	cl := object.NewClass(name)
	c.track(cl)
	return cl
}

// NewInstance allocates an instance of class with an empty field table.
func (c *Collector) NewInstance(class *object.Class) *object.Instance {
	inst := object.NewInstance(class)
	c.track(inst)
	return inst
}

// NewBoundMethod allocates a bound method pairing receiver with method.
func (c *Collector) NewBoundMethod(receiver object.Value, method *object.Closure) *object.BoundMethod {
	bm := &object.BoundMethod{Receiver: receiver, Method: method}
	c.track(bm)
	return bm
}

// NewNative allocates a native function wrapper.
func (c *Collector) NewNative(name string, fn object.NativeFn) *object.Native {
	n := &object.Native{Name: name, Fn: fn}
	c.track(n)
	return n
}
