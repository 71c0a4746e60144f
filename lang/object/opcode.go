package object

// Opcode is a single bytecode instruction's operation. Operand widths are
// fixed per opcode: B means one inline byte operand, S means two inline
// big-endian bytes, CLOSURE takes one byte plus two bytes per captured
// upvalue. See the table in spec §4.3 for the full stack-effect reference.
type Opcode byte

//nolint:revive
const (
	OP_CONSTANT Opcode = iota
	OP_NIL
	OP_TRUE
	OP_FALSE
	OP_POP
	OP_GET_LOCAL
	OP_SET_LOCAL
	OP_GET_GLOBAL
	OP_DEFINE_GLOBAL
	OP_SET_GLOBAL
	OP_GET_UPVALUE
	OP_SET_UPVALUE
	OP_GET_PROPERTY
	OP_SET_PROPERTY
	OP_GET_SUPER
	OP_EQUAL
	OP_GREATER
	OP_LESS
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NOT
	OP_NEGATE
	OP_PRINT
	OP_JUMP
	OP_JUMP_IF_FALSE
	OP_LOOP
	OP_CALL
	OP_INVOKE
	OP_SUPER_INVOKE
	OP_CLOSURE
	OP_CLOSE_UPVALUE
	OP_RETURN
	OP_CLASS
	OP_INHERIT
	OP_METHOD
)

var opcodeNames = [...]string{
	OP_CONSTANT:      "CONSTANT",
	OP_NIL:           "NIL",
	OP_TRUE:          "TRUE",
	OP_FALSE:         "FALSE",
	OP_POP:           "POP",
	OP_GET_LOCAL:     "GET_LOCAL",
	OP_SET_LOCAL:     "SET_LOCAL",
	OP_GET_GLOBAL:    "GET_GLOBAL",
	OP_DEFINE_GLOBAL: "DEFINE_GLOBAL",
	OP_SET_GLOBAL:    "SET_GLOBAL",
	OP_GET_UPVALUE:   "GET_UPVALUE",
	OP_SET_UPVALUE:   "SET_UPVALUE",
	OP_GET_PROPERTY:  "GET_PROPERTY",
	OP_SET_PROPERTY:  "SET_PROPERTY",
	OP_GET_SUPER:     "GET_SUPER",
	OP_EQUAL:         "EQUAL",
	OP_GREATER:       "GREATER",
	OP_LESS:          "LESS",
	OP_ADD:           "ADD",
	OP_SUBTRACT:      "SUBTRACT",
	OP_MULTIPLY:      "MULTIPLY",
	OP_DIVIDE:        "DIVIDE",
	OP_NOT:           "NOT",
	OP_NEGATE:        "NEGATE",
	OP_PRINT:         "PRINT",
	OP_JUMP:          "JUMP",
	OP_JUMP_IF_FALSE: "JUMP_IF_FALSE",
	OP_LOOP:          "LOOP",
	OP_CALL:          "CALL",
	OP_INVOKE:        "INVOKE",
	OP_SUPER_INVOKE:  "SUPER_INVOKE",
	OP_CLOSURE:       "CLOSURE",
	OP_CLOSE_UPVALUE: "CLOSE_UPVALUE",
	OP_RETURN:        "RETURN",
	OP_CLASS:         "CLASS",
	OP_INHERIT:       "INHERIT",
	OP_METHOD:        "METHOD",
}

func (op Opcode) String() string {
	if int(op) >= len(opcodeNames) || opcodeNames[op] == "" {
		return "UNKNOWN"
	}
	return opcodeNames[op]
}
