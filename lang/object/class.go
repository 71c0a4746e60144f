package object

import (
	"fmt"

	"github.com/jyotindersingh/goctok/lang/table"
)

// Class is a named method table. Inheritance is resolved once, at
// class-definition time: OP_INHERIT bulk-copies every entry of the
// superclass's Methods into the subclass's, so method lookup at call time
// never walks a superclass chain.
type Class struct {
	Header
	Name    *String
	Methods *table.Table[*String, *Closure]
}

var _ Obj = (*Class)(nil)

func NewClass(name *String) *Class {
	return &Class{Name: name, Methods: table.New[*String, *Closure](8)}
}

func (c *Class) Kind() Kind     { return OClass }
func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name.String()) }
