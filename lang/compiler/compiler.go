// Package compiler implements Tok's single-pass compiler: it consumes the
// token stream produced by lang/scanner and emits bytecode directly, with no
// intermediate AST, resolving lexical scope (locals, globals, upvalues) as it
// goes (§4.2).
//
// Parsing is Pratt-style, driven by the fixed table in rules.go keyed by
// token.Kind. The compiler maintains a stack of per-function states
// (funcState), each tracking the Function under construction, its locals and
// upvalues, and the current scope depth; a parallel stack of classState
// frames tracks whether `this`/`super` are legal.
package compiler

import (
	"github.com/jyotindersingh/goctok/lang/gc"
	"github.com/jyotindersingh/goctok/lang/object"
	"github.com/jyotindersingh/goctok/lang/scanner"
	"github.com/jyotindersingh/goctok/lang/token"
)

// MaxLocals and MaxUpvalues mirror the one-byte slot/index operand width.
const (
	MaxLocals   = 256
	MaxUpvalues = 256
	MaxParams   = 255
)

// FunctionType distinguishes the kind of callable a funcState is compiling,
// which changes how `return` and the implicit trailing return are emitted.
type FunctionType int

const (
	TypeScript FunctionType = iota
	TypeFunction
	TypeMethod
	TypeInitializer
)

// Local is a resolved local variable slot within the function currently
// being compiled. Depth -1 means "declared but not yet defined" (its
// initializer expression is still being compiled), which is how the
// compiler detects `var a = a;` self-reference.
type Local struct {
	Name       string
	Depth      int
	IsCaptured bool
}

type upvalueRef struct {
	Index   byte
	IsLocal bool
}

// funcState is one frame of the compiler's per-function state stack.
type funcState struct {
	enclosing *funcState
	function  *object.Function
	typ       FunctionType

	locals     []Local
	upvalues   []upvalueRef
	scopeDepth int
}

// classState tracks whether the compiler is currently inside a class body
// and whether that class has a superclass (making `super` legal).
type classState struct {
	enclosing     *classState
	hasSuperclass bool
}

// Compiler holds all state for one single-pass compilation.
type Compiler struct {
	gc      *gc.Collector
	scanner scanner.Scanner

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
	errors    ErrorList

	fs *funcState
	cs *classState
}

var _ gc.RootProvider = (*Compiler)(nil)

// Compile compiles src into a top-level script Function. On any compile
// error, it returns a nil Function and a non-nil error (an ErrorList); a
// caller must not attempt to run a nil Function.
func Compile(src string, collector *gc.Collector) (*object.Function, error) {
	c := &Compiler{gc: collector}
	c.scanner.Init(src)
	c.fs = &funcState{function: collector.NewFunction(), typ: TypeScript}
	// slot 0 holds the script closure itself, exactly as function() reserves
	// slot 0 for every nested function — top-level locals start at slot 1.
	c.fs.locals = append(c.fs.locals, Local{Name: "", Depth: 0})

	handle := collector.Register(c)
	defer collector.Unregister(handle)

	c.advance()
	for !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.EOF, "Expect end of expression.")

	fn, _ := c.endFunction()
	if c.hadError {
		return nil, c.errors.Err()
	}
	return fn, nil
}

// GCRoots implements gc.RootProvider: every Function belonging to an active
// funcState (the current one and every enclosing one still on the stack) is
// rooted for the duration of compilation (§4.4).
func (c *Compiler) GCRoots() []object.Value {
	var roots []object.Value
	for fs := c.fs; fs != nil; fs = fs.enclosing {
		roots = append(roots, object.FromObj(fs.function))
	}
	return roots
}

func (c *Compiler) currentChunk() *object.Chunk { return &c.fs.function.Chunk }

// ---- token stream ----------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.Scan()
		if c.current.Kind != token.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(k token.Kind) bool { return c.current.Kind == k }

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, msg string) {
	if c.current.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

// ---- error reporting ---------------------------------------------------

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.current, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.previous, msg) }

func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	where := ""
	switch tok.Kind {
	case token.EOF:
		where = "at end"
	case token.ERROR:
		// message is already the diagnostic; leave where empty
	default:
		where = "'" + tok.Lexeme + "'"
	}
	c.errors = append(c.errors, &CompileError{Line: tok.Line, Where: where, Message: msg})
}

func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		switch c.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// ---- bytecode emission -------------------------------------------------

func (c *Compiler) emitByte(b byte) { c.currentChunk().Write(b, c.previous.Line) }

func (c *Compiler) emitOp(op object.Opcode) { c.emitByte(byte(op)) }

func (c *Compiler) emitOpByte(op object.Opcode, arg byte) {
	c.emitByte(byte(op))
	c.emitByte(arg)
}

// emitJump emits a jump instruction with a placeholder 16-bit offset and
// returns the offset of the placeholder, to be passed to patchJump once the
// target is known.
func (c *Compiler) emitJump(op object.Opcode) int {
	c.emitByte(byte(op))
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.currentChunk().Code) - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := len(c.currentChunk().Code) - offset - 2
	if jump > 0xffff {
		c.error("Too much code to jump over.")
		return
	}
	c.currentChunk().PatchUint16(offset, uint16(jump))
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitByte(byte(object.OP_LOOP))
	offset := len(c.currentChunk().Code) - loopStart + 2
	if offset > 0xffff {
		c.error("Loop body too large.")
	}
	c.currentChunk().WriteUint16(uint16(offset), c.previous.Line)
}

func (c *Compiler) emitReturn() {
	if c.fs.typ == TypeInitializer {
		c.emitOpByte(object.OP_GET_LOCAL, 0)
	} else {
		c.emitOp(object.OP_NIL)
	}
	c.emitOp(object.OP_RETURN)
}

func (c *Compiler) makeConstant(v object.Value) byte {
	idx, err := c.currentChunk().AddConstant(v)
	if err != nil {
		c.error(err.Error())
		return 0
	}
	return byte(idx)
}

func (c *Compiler) emitConstant(v object.Value) {
	c.emitOpByte(object.OP_CONSTANT, c.makeConstant(v))
}

// endFunction closes out the funcState on top of the stack (emitting the
// implicit trailing return), pops it, and returns the finished Function
// along with the upvalue capture descriptors the enclosing compiler needs to
// follow OP_CLOSURE with.
func (c *Compiler) endFunction() (*object.Function, []upvalueRef) {
	c.emitReturn()
	fn := c.fs.function
	fn.UpvalueCount = len(c.fs.upvalues)
	upvalues := c.fs.upvalues
	c.fs = c.fs.enclosing
	return fn, upvalues
}

// ---- identifiers & scope ------------------------------------------------

func (c *Compiler) identifierConstant(name string) byte {
	s := c.gc.Intern([]byte(name))
	return c.makeConstant(object.FromObj(s))
}

func (c *Compiler) beginScope() { c.fs.scopeDepth++ }

func (c *Compiler) endScope() {
	c.fs.scopeDepth--
	for len(c.fs.locals) > 0 && c.fs.locals[len(c.fs.locals)-1].Depth > c.fs.scopeDepth {
		last := c.fs.locals[len(c.fs.locals)-1]
		if last.IsCaptured {
			c.emitOp(object.OP_CLOSE_UPVALUE)
		} else {
			c.emitOp(object.OP_POP)
		}
		c.fs.locals = c.fs.locals[:len(c.fs.locals)-1]
	}
}

func (c *Compiler) addLocal(name string) {
	if len(c.fs.locals) >= MaxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.fs.locals = append(c.fs.locals, Local{Name: name, Depth: -1})
}

func (c *Compiler) declareVariable() {
	if c.fs.scopeDepth == 0 {
		return
	}
	name := c.previous.Lexeme
	for i := len(c.fs.locals) - 1; i >= 0; i-- {
		l := c.fs.locals[i]
		if l.Depth != -1 && l.Depth < c.fs.scopeDepth {
			break
		}
		if l.Name == name {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) parseVariable(errMsg string) byte {
	c.consume(token.IDENT, errMsg)
	c.declareVariable()
	if c.fs.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous.Lexeme)
}

func (c *Compiler) markInitialized() {
	if c.fs.scopeDepth == 0 {
		return
	}
	c.fs.locals[len(c.fs.locals)-1].Depth = c.fs.scopeDepth
}

func (c *Compiler) defineVariable(global byte) {
	if c.fs.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(object.OP_DEFINE_GLOBAL, global)
}

func resolveLocal(fs *funcState, c *Compiler, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].Name == name {
			if fs.locals[i].Depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

func addUpvalue(fs *funcState, c *Compiler, index byte, isLocal bool) int {
	for i, uv := range fs.upvalues {
		if uv.Index == index && uv.IsLocal == isLocal {
			return i
		}
	}
	if len(fs.upvalues) >= MaxUpvalues {
		c.error("Too many closure variables in function.")
		return 0
	}
	fs.upvalues = append(fs.upvalues, upvalueRef{Index: index, IsLocal: isLocal})
	return len(fs.upvalues) - 1
}

func resolveUpvalue(fs *funcState, c *Compiler, name string) int {
	if fs.enclosing == nil {
		return -1
	}
	if local := resolveLocal(fs.enclosing, c, name); local != -1 {
		fs.enclosing.locals[local].IsCaptured = true
		return addUpvalue(fs, c, byte(local), true)
	}
	if up := resolveUpvalue(fs.enclosing, c, name); up != -1 {
		return addUpvalue(fs, c, byte(up), false)
	}
	return -1
}

func (c *Compiler) namedVariable(name string, canAssign bool) {
	var getOp, setOp object.Opcode
	arg := resolveLocal(c.fs, c, name)
	if arg != -1 {
		getOp, setOp = object.OP_GET_LOCAL, object.OP_SET_LOCAL
	} else if arg = resolveUpvalue(c.fs, c, name); arg != -1 {
		getOp, setOp = object.OP_GET_UPVALUE, object.OP_SET_UPVALUE
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = object.OP_GET_GLOBAL, object.OP_SET_GLOBAL
	}

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}
