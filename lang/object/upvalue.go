package object

// Upvalue lets a closure reference a variable that lives in an enclosing
// call frame. It is *open* while that frame is alive — Location points
// directly at the live stack slot — and *closed* once the slot is about to
// leave scope, at which point the value is copied into Closed and Location
// is redirected to point at it. The transition from open to closed is
// one-way.
//
// OpenNext links open upvalues together in the VM's single open-upvalue
// list, kept sorted by descending stack slot so capture() can find-or-insert
// in one linear scan and close(threshold) can stop at the first upvalue
// below the threshold.
type Upvalue struct {
	Header
	Location *Value
	Closed   Value
	OpenNext *Upvalue
}

var _ Obj = (*Upvalue)(nil)

func (u *Upvalue) Kind() Kind     { return OUpvalue }
func (u *Upvalue) String() string { return "<upvalue>" }

// IsOpen reports whether this upvalue still points into a live stack slot.
func (u *Upvalue) IsOpen() bool { return u.Location != &u.Closed }

// Close copies the current value out of the (about to be invalidated) stack
// slot and redirects Location to the closed storage. Idempotent: closing an
// already-closed upvalue is a no-op.
func (u *Upvalue) Close() {
	if !u.IsOpen() {
		return
	}
	u.Closed = *u.Location
	u.Location = &u.Closed
}
