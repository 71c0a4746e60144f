package compiler

import "github.com/jyotindersingh/goctok/lang/token"

// Precedence orders binding strength from loosest to tightest, following
// clox's single flat enum (spec §4.2's Pratt table).
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is indexed by token.Kind and gives the prefix parser, infix parser,
// and infix binding precedence for that token, exactly mirroring clox's
// rules[] table.
var rules [token.NumKinds]parseRule

func rule(k token.Kind, prefix, infix parseFn, prec Precedence) {
	rules[k] = parseRule{prefix: prefix, infix: infix, precedence: prec}
}

func init() {
	rule(token.LPAREN, grouping, call, PrecCall)
	rule(token.RPAREN, nil, nil, PrecNone)
	rule(token.LBRACE, nil, nil, PrecNone)
	rule(token.RBRACE, nil, nil, PrecNone)
	rule(token.COMMA, nil, nil, PrecNone)
	rule(token.DOT, nil, dot, PrecCall)
	rule(token.MINUS, unary, binary, PrecTerm)
	rule(token.PLUS, nil, binary, PrecTerm)
	rule(token.SEMICOLON, nil, nil, PrecNone)
	rule(token.SLASH, nil, binary, PrecFactor)
	rule(token.STAR, nil, binary, PrecFactor)
	rule(token.BANG, unary, nil, PrecNone)
	rule(token.BANG_EQUAL, nil, binary, PrecEquality)
	rule(token.EQUAL, nil, nil, PrecNone)
	rule(token.EQUAL_EQUAL, nil, binary, PrecEquality)
	rule(token.GREATER, nil, binary, PrecComparison)
	rule(token.GREATER_EQUAL, nil, binary, PrecComparison)
	rule(token.LESS, nil, binary, PrecComparison)
	rule(token.LESS_EQUAL, nil, binary, PrecComparison)
	rule(token.IDENT, variable, nil, PrecNone)
	rule(token.STRING, stringLit, nil, PrecNone)
	rule(token.NUMBER, number, nil, PrecNone)
	rule(token.AND, nil, and_, PrecAnd)
	rule(token.CLASS, nil, nil, PrecNone)
	rule(token.ELSE, nil, nil, PrecNone)
	rule(token.FALSE, literal, nil, PrecNone)
	rule(token.FOR, nil, nil, PrecNone)
	rule(token.FUN, nil, nil, PrecNone)
	rule(token.IF, nil, nil, PrecNone)
	rule(token.NIL, literal, nil, PrecNone)
	rule(token.OR, nil, or_, PrecOr)
	rule(token.PRINT, nil, nil, PrecNone)
	rule(token.RETURN, nil, nil, PrecNone)
	rule(token.SUPER, super_, nil, PrecNone)
	rule(token.THIS, this_, nil, PrecNone)
	rule(token.TRUE, literal, nil, PrecNone)
	rule(token.VAR, nil, nil, PrecNone)
	rule(token.WHILE, nil, nil, PrecNone)
	rule(token.ERROR, nil, nil, PrecNone)
}

func getRule(k token.Kind) *parseRule { return &rules[k] }
