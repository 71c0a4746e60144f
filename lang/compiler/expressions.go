package compiler

import (
	"strconv"

	"github.com/jyotindersingh/goctok/lang/object"
	"github.com/jyotindersingh/goctok/lang/token"
)

// parsePrecedence is the Pratt driver: it parses one prefix expression, then
// repeatedly folds in infix operators whose precedence is at least prec.
func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefixRule := getRule(c.previous.Kind).prefix
	if prefixRule == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	prefixRule(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infixRule := getRule(c.previous.Kind).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) expression() { c.parsePrecedence(PrecAssignment) }

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

func unary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(PrecUnary)
	switch opKind {
	case token.BANG:
		c.emitOp(object.OP_NOT)
	case token.MINUS:
		c.emitOp(object.OP_NEGATE)
	}
}

func binary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	r := getRule(opKind)
	c.parsePrecedence(r.precedence + 1)

	switch opKind {
	case token.BANG_EQUAL:
		c.emitOp(object.OP_EQUAL)
		c.emitOp(object.OP_NOT)
	case token.EQUAL_EQUAL:
		c.emitOp(object.OP_EQUAL)
	case token.GREATER:
		c.emitOp(object.OP_GREATER)
	case token.GREATER_EQUAL:
		c.emitOp(object.OP_LESS)
		c.emitOp(object.OP_NOT)
	case token.LESS:
		c.emitOp(object.OP_LESS)
	case token.LESS_EQUAL:
		c.emitOp(object.OP_GREATER)
		c.emitOp(object.OP_NOT)
	case token.PLUS:
		c.emitOp(object.OP_ADD)
	case token.MINUS:
		c.emitOp(object.OP_SUBTRACT)
	case token.STAR:
		c.emitOp(object.OP_MULTIPLY)
	case token.SLASH:
		c.emitOp(object.OP_DIVIDE)
	}
}

func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(object.OP_JUMP_IF_FALSE)
	c.emitOp(object.OP_POP)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(object.OP_JUMP_IF_FALSE)
	endJump := c.emitJump(object.OP_JUMP)
	c.patchJump(elseJump)
	c.emitOp(object.OP_POP)
	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func literal(c *Compiler, _ bool) {
	switch c.previous.Kind {
	case token.FALSE:
		c.emitOp(object.OP_FALSE)
	case token.TRUE:
		c.emitOp(object.OP_TRUE)
	case token.NIL:
		c.emitOp(object.OP_NIL)
	}
}

func number(c *Compiler, _ bool) {
	v, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(object.Number(v))
}

func stringLit(c *Compiler, _ bool) {
	lex := c.previous.Lexeme
	// Lexeme spans the surrounding quotes; strip them before interning.
	s := c.gc.Intern([]byte(lex[1 : len(lex)-1]))
	c.emitConstant(object.FromObj(s))
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous.Lexeme, canAssign)
}

func this_(c *Compiler, _ bool) {
	if c.cs == nil {
		c.error("Can't use 'this' outside of a class.")
		return
	}
	variable(c, false)
}

func super_(c *Compiler, _ bool) {
	if c.cs == nil {
		c.error("Can't use 'super' outside of a class.")
	} else if !c.cs.hasSuperclass {
		c.error("Can't use 'super' in a class with no superclass.")
	}

	c.consume(token.DOT, "Expect '.' after 'super'.")
	c.consume(token.IDENT, "Expect superclass method name.")
	name := c.identifierConstant(c.previous.Lexeme)

	c.namedVariable("this", false)
	if c.match(token.LPAREN) {
		argCount := c.argumentList()
		c.namedVariable("super", false)
		c.emitOpByte(object.OP_SUPER_INVOKE, name)
		c.emitByte(argCount)
	} else {
		c.namedVariable("super", false)
		c.emitOpByte(object.OP_GET_SUPER, name)
	}
}

func dot(c *Compiler, canAssign bool) {
	c.consume(token.IDENT, "Expect property name after '.'.")
	name := c.identifierConstant(c.previous.Lexeme)

	switch {
	case canAssign && c.match(token.EQUAL):
		c.expression()
		c.emitOpByte(object.OP_SET_PROPERTY, name)
	case c.match(token.LPAREN):
		argCount := c.argumentList()
		c.emitOpByte(object.OP_INVOKE, name)
		c.emitByte(argCount)
	default:
		c.emitOpByte(object.OP_GET_PROPERTY, name)
	}
}

func call(c *Compiler, _ bool) {
	argCount := c.argumentList()
	c.emitOpByte(object.OP_CALL, argCount)
}

func (c *Compiler) argumentList() byte {
	var count int
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			if count == MaxParams {
				c.error("Can't have more than 255 arguments.")
			}
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after arguments.")
	return byte(count)
}
