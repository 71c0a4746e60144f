package compiler

import (
	"github.com/jyotindersingh/goctok/lang/object"
	"github.com/jyotindersingh/goctok/lang/token"
)

func (c *Compiler) declaration() {
	switch {
	case c.match(token.CLASS):
		c.classDeclaration()
	case c.match(token.FUN):
		c.funDeclaration()
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(token.EQUAL) {
		c.expression()
	} else {
		c.emitOp(object.OP_NIL)
	}
	c.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(TypeFunction)
	c.defineVariable(global)
}

// function compiles one function body (parameter list + block) as a nested
// funcState, then emits OP_CLOSURE with the per-upvalue (isLocal, index)
// descriptor pairs the VM's OP_CLOSURE handler needs to capture them (§4.3).
func (c *Compiler) function(typ FunctionType) {
	name := c.gc.Intern([]byte(c.previous.Lexeme))

	c.fs = &funcState{
		enclosing: c.fs,
		function:  c.gc.NewFunction(),
		typ:       typ,
	}
	c.fs.function.Name = name
	// slot 0 holds the receiver for methods/initializers, and the (unnamed,
	// unusable) callee itself for plain functions
	if typ == TypeMethod || typ == TypeInitializer {
		c.fs.locals = append(c.fs.locals, Local{Name: "this", Depth: 0})
	} else {
		c.fs.locals = append(c.fs.locals, Local{Name: "", Depth: 0})
	}

	c.beginScope()
	c.consume(token.LPAREN, "Expect '(' after function name.")
	if !c.check(token.RPAREN) {
		for {
			c.fs.function.Arity++
			if c.fs.function.Arity > MaxParams {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			constant := c.parseVariable("Expect parameter name.")
			c.defineVariable(constant)
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after parameters.")
	c.consume(token.LBRACE, "Expect '{' before function body.")
	c.block()

	fn, upvalues := c.endFunction()
	idx := c.makeConstant(object.FromObj(fn))
	c.emitOpByte(object.OP_CLOSURE, idx)
	for _, uv := range upvalues {
		if uv.IsLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(uv.Index)
	}
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "Expect '}' after block.")
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emitOp(object.OP_PRINT)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after expression.")
	c.emitOp(object.OP_POP)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPAREN, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	thenJump := c.emitJump(object.OP_JUMP_IF_FALSE)
	c.emitOp(object.OP_POP)
	c.statement()

	elseJump := c.emitJump(object.OP_JUMP)
	c.patchJump(thenJump)
	c.emitOp(object.OP_POP)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.currentChunk().Code)
	c.consume(token.LPAREN, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	exitJump := c.emitJump(object.OP_JUMP_IF_FALSE)
	c.emitOp(object.OP_POP)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(object.OP_POP)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "Expect '(' after 'for'.")
	switch {
	case c.match(token.SEMICOLON):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.currentChunk().Code)
	exitJump := -1
	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = c.emitJump(object.OP_JUMP_IF_FALSE)
		c.emitOp(object.OP_POP)
	}

	if !c.match(token.RPAREN) {
		bodyJump := c.emitJump(object.OP_JUMP)
		incrementStart := len(c.currentChunk().Code)
		c.expression()
		c.emitOp(object.OP_POP)
		c.consume(token.RPAREN, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(object.OP_POP)
	}
	c.endScope()
}

func (c *Compiler) returnStatement() {
	if c.fs.typ == TypeScript {
		c.error("Can't return from top-level code.")
	}
	if c.match(token.SEMICOLON) {
		c.emitReturn()
		return
	}
	if c.fs.typ == TypeInitializer {
		c.error("Can't return a value from an initializer.")
	}
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after return value.")
	c.emitOp(object.OP_RETURN)
}
