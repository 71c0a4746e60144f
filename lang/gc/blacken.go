package gc

import "github.com/jyotindersingh/goctok/lang/object"

// blacken marks every object directly reachable from o, per the table in
// spec §4.4. Strings and natives have no outgoing references.
func (c *Collector) blacken(o object.Obj) {
	switch v := o.(type) {
	case *object.String, *object.Native:
		// no outgoing references

	case *object.Function:
		if v.Name != nil {
			c.MarkObject(v.Name)
		}
		for _, k := range v.Chunk.Constants {
			c.MarkValue(k)
		}

	case *object.Closure:
		c.MarkObject(v.Function)
		for _, uv := range v.Upvalues {
			c.MarkObject(uv)
		}

	case *object.Upvalue:
		c.MarkValue(*v.Location)

	case *object.Class:
		c.MarkObject(v.Name)
		v.Methods.Each(func(k *object.String, m *object.Closure) bool {
			c.MarkObject(k)
			c.MarkObject(m)
			return true
		})

	case *object.Instance:
		c.MarkObject(v.Class)
		v.Fields.Each(func(k *object.String, val object.Value) bool {
			c.MarkObject(k)
			c.MarkValue(val)
			return true
		})

	case *object.BoundMethod:
		c.MarkValue(v.Receiver)
		c.MarkObject(v.Method)
	}
}
