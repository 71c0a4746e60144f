package compiler

import (
	"github.com/jyotindersingh/goctok/lang/object"
	"github.com/jyotindersingh/goctok/lang/token"
)

// classDeclaration compiles a class declaration, including an optional
// single-superclass inherit clause and its method list. Inheritance is
// realized at OP_INHERIT time by the VM bulk-copying the superclass's method
// table into the subclass's (§4.7) rather than walking a superclass chain at
// lookup time.
func (c *Compiler) classDeclaration() {
	c.consume(token.IDENT, "Expect class name.")
	nameTok := c.previous
	nameConstant := c.identifierConstant(nameTok.Lexeme)
	c.declareVariable()

	c.emitOpByte(object.OP_CLASS, nameConstant)
	c.defineVariable(nameConstant)

	cs := &classState{enclosing: c.cs}
	c.cs = cs

	if c.match(token.LESS) {
		c.consume(token.IDENT, "Expect superclass name.")
		variable(c, false) // pushes the superclass value
		if nameTok.Lexeme == c.previous.Lexeme {
			c.error("A class can't inherit from itself.")
		}

		c.beginScope()
		c.addLocal("super")
		c.defineVariable(0)

		c.namedVariable(nameTok.Lexeme, false)
		c.emitOp(object.OP_INHERIT)
		cs.hasSuperclass = true
	}

	c.namedVariable(nameTok.Lexeme, false)
	c.consume(token.LBRACE, "Expect '{' before class body.")
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.method()
	}
	c.consume(token.RBRACE, "Expect '}' after class body.")
	c.emitOp(object.OP_POP)

	if cs.hasSuperclass {
		c.endScope()
	}
	c.cs = c.cs.enclosing
}

func (c *Compiler) method() {
	c.consume(token.IDENT, "Expect method name.")
	name := c.previous.Lexeme
	constant := c.identifierConstant(name)

	typ := TypeMethod
	if name == "init" {
		typ = TypeInitializer
	}
	c.function(typ)
	c.emitOpByte(object.OP_METHOD, constant)
}
