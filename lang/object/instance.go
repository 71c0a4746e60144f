package object

import (
	"fmt"

	"github.com/jyotindersingh/goctok/lang/table"
)

// Instance is a runtime object of some Class, with its own per-instance
// field table. Field access takes priority over method dispatch (§4.3
// GET_PROPERTY): a field can shadow a method of the same name.
type Instance struct {
	Header
	Class  *Class
	Fields *table.Table[*String, Value]
}

var _ Obj = (*Instance)(nil)

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: table.New[*String, Value](4)}
}

func (i *Instance) Kind() Kind     { return OInstance }
func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name.String()) }
