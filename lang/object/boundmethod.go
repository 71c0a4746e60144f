package object

// BoundMethod pairs a receiver with the method Closure resolved for it. It
// is produced whenever a method name is read as a value (GET_PROPERTY
// falling through to the method table); calling it rebinds slot 0 of the
// call to Receiver before invoking Method.
type BoundMethod struct {
	Header
	Receiver Value
	Method   *Closure
}

var _ Obj = (*BoundMethod)(nil)

func (b *BoundMethod) Kind() Kind     { return OBoundMethod }
func (b *BoundMethod) String() string { return b.Method.String() }
