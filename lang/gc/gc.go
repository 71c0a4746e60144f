// Package gc implements Tok's tracing garbage collector: a tri-colour
// mark-sweep pass over the single list of every live heap object, cooperating
// with the compiler and the VM, which both register themselves as sources of
// roots (see RootProvider).
//
// White objects are unreached, grey objects are reached but not yet scanned
// (the grey worklist), black objects are scanned. Blackening is driven by a
// type switch over object.Obj's concrete kinds (blacken.go); the worklist
// itself is a plain Go slice, i.e. allocated with the system allocator, never
// routed back through Collector.track, so marking can never itself trigger a
// nested collection.
package gc

import (
	"github.com/jyotindersingh/goctok/lang/object"
	"github.com/jyotindersingh/goctok/lang/table"
)

// growthFactor is applied to bytesAllocated after every sweep to compute the
// next collection threshold.
const growthFactor = 2

// RootProvider is implemented by every long-lived owner of Values the
// collector must treat as reachable: the VM (operand stack, call frames,
// open upvalues, globals) and the compiler (the stack of function-under-
// construction states active during compilation, per §4.4).
type RootProvider interface {
	GCRoots() []object.Value
}

// Collector owns the single list of every live object, the weak string
// intern table, and the set of registered root providers.
type Collector struct {
	head  object.Obj
	roots []RootProvider

	intern *table.Table[string, *object.String]

	bytesAllocated int
	nextGC         int
	stress         bool

	grey []object.Obj

	// Collections counts completed sweep passes, for tests and diagnostics.
	Collections int
}

// New returns a ready-to-use Collector with its own intern table.
func New() *Collector {
	return &Collector{
		intern: table.New[string, *object.String](64),
		nextGC: 1 << 20, // 1 MiB of approximate heap before the first collection
	}
}

// SetStressMode enables/disables stress-testing mode, in which a collection
// is requested on every allocation that grows the heap (§4.4).
func (c *Collector) SetStressMode(on bool) { c.stress = on }

// Register adds p as a root source and returns a handle that can later be
// passed to Unregister. The VM registers once for its whole lifetime; the
// compiler registers only while actively compiling (its stack of
// function-under-construction states is only meaningful during that window)
// and unregisters itself once Compile returns.
func (c *Collector) Register(p RootProvider) int {
	c.roots = append(c.roots, p)
	return len(c.roots) - 1
}

// Unregister removes the root provider identified by handle (as returned by
// Register). Safe to call at most once per handle.
func (c *Collector) Unregister(handle int) {
	if handle < 0 || handle >= len(c.roots) {
		return
	}
	c.roots[handle] = nil
}

// approxSize estimates an object's heap footprint for the growth policy. It
// does not need to be exact, only monotonic with real allocation, since it
// only drives when to collect, never correctness.
func approxSize(o object.Obj) int {
	switch v := o.(type) {
	case *object.String:
		return 32 + len(v.Bytes)
	case *object.Function:
		return 64 + len(v.Chunk.Code) + len(v.Chunk.Constants)*16
	case *object.Closure:
		return 32 + len(v.Upvalues)*8
	case *object.Upvalue:
		return 32
	case *object.Class:
		return 48
	case *object.Instance:
		return 32
	case *object.BoundMethod:
		return 32
	case *object.Native:
		return 32
	default:
		return 16
	}
}

// track updates the byte-allocation counter and requests a collection if
// warranted, then links o into the object list. The threshold check and any
// triggered Collect happen before o is linked in (mirroring clox's
// reallocate-then-allocateObject ordering), so a collection that the new
// allocation itself provokes can never sweep o: at that point o is still
// unlinked and unreachable from the object list, so sweep never visits it,
// and it is not yet rooted anywhere either. Every constructor in this
// package (Intern, NewFunction, ...) funnels through track exactly once,
// right after the new object is fully built (see the allocator discipline
// note on each constructor).
func (c *Collector) track(o object.Obj) {
	c.bytesAllocated += approxSize(o)

	if c.stress || c.bytesAllocated > c.nextGC {
		c.Collect()
	}

	o.SetNext(c.head)
	c.head = o
}

// Collect runs one full mark-sweep pass unconditionally.
func (c *Collector) Collect() {
	c.markRoots()
	c.traceReferences()
	c.pruneIntern()
	c.sweep()
	c.nextGC = c.bytesAllocated * growthFactor
	c.Collections++
}

func (c *Collector) markRoots() {
	for _, p := range c.roots {
		if p == nil {
			continue
		}
		for _, v := range p.GCRoots() {
			c.MarkValue(v)
		}
	}
}

// MarkValue marks v's referenced object (if any) grey, enqueuing it on the
// worklist. Safe to call with a non-object Value (nil/bool/number): a no-op.
func (c *Collector) MarkValue(v object.Value) {
	if v.IsObj() {
		c.MarkObject(v.AsObj())
	}
}

// MarkObject marks o grey if it was white, enqueuing it for blacken.
func (c *Collector) MarkObject(o object.Obj) {
	if o == nil || o.Marked() {
		return
	}
	o.SetMarked(true)
	c.grey = append(c.grey, o)
}

func (c *Collector) traceReferences() {
	for len(c.grey) > 0 {
		n := len(c.grey) - 1
		o := c.grey[n]
		c.grey = c.grey[:n]
		c.blacken(o)
	}
}

// pruneIntern removes every intern-table entry whose key string is still
// white: the table is a weak set and is never itself a root source (§4.4).
// It must run after marking and before sweeping, since sweep would otherwise
// free the still-linked *String before this pass can observe its mark bit.
func (c *Collector) pruneIntern() {
	var dead []string
	c.intern.Each(func(k string, v *object.String) bool {
		if !v.Marked() {
			dead = append(dead, k)
		}
		return true
	})
	for _, k := range dead {
		c.intern.Delete(k)
	}
}

func (c *Collector) sweep() {
	var prev object.Obj
	obj := c.head
	freed := 0
	for obj != nil {
		if obj.Marked() {
			obj.SetMarked(false)
			prev = obj
			obj = obj.Next()
			continue
		}
		unreached := obj
		obj = obj.Next()
		if prev != nil {
			prev.SetNext(obj)
		} else {
			c.head = obj
		}
		c.bytesAllocated -= approxSize(unreached)
		freed++
	}
}

// Stats reports the collector's current bookkeeping, for tests.
type Stats struct {
	BytesAllocated int
	NextGC         int
	Collections    int
}

func (c *Collector) Stats() Stats {
	return Stats{BytesAllocated: c.bytesAllocated, NextGC: c.nextGC, Collections: c.Collections}
}

// Walk calls fn once per live object, in list order. Used by tests to verify
// "every live heap object is reachable from the VM's object list" style
// invariants.
func (c *Collector) Walk(fn func(object.Obj)) {
	for o := c.head; o != nil; o = o.Next() {
		fn(o)
	}
}
