package scanner_test

import (
	"testing"

	"github.com/jyotindersingh/goctok/lang/scanner"
	"github.com/jyotindersingh/goctok/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	var s scanner.Scanner
	s.Init(src)

	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "(){};,.-+*/ ! != = == < <= > >=")
	want := []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.SEMICOLON,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.STAR, token.SLASH,
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL, token.LESS,
		token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "class fun var myVar2 _hidden")
	require.Len(t, toks, 6)
	assert.Equal(t, token.CLASS, toks[0].Kind)
	assert.Equal(t, token.FUN, toks[1].Kind)
	assert.Equal(t, token.VAR, toks[2].Kind)
	assert.Equal(t, token.IDENT, toks[3].Kind)
	assert.Equal(t, "myVar2", toks[3].Lexeme)
	assert.Equal(t, token.IDENT, toks[4].Kind)
	assert.Equal(t, "_hidden", toks[4].Lexeme)
}

func TestScanNumberAndString(t *testing.T) {
	toks := scanAll(t, `123 4.5 "hi there"`)
	require.Len(t, toks, 4)
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, "123", toks[0].Lexeme)
	assert.Equal(t, token.NUMBER, toks[1].Kind)
	assert.Equal(t, "4.5", toks[1].Lexeme)
	assert.Equal(t, token.STRING, toks[2].Kind)
	assert.Equal(t, `"hi there"`, toks[2].Lexeme)
}

func TestScanSkipsCommentsAndTracksLines(t *testing.T) {
	toks := scanAll(t, "var a = 1; // comment\nvar b = 2;")
	require.NotEmpty(t, toks)
	assert.Equal(t, 1, toks[0].Line)
	last := toks[len(toks)-2]
	assert.Equal(t, 2, last.Line)
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	toks := scanAll(t, `"never closed`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ERROR, toks[0].Kind)
	assert.Equal(t, "unterminated string", toks[0].Lexeme)
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll(t, "@")
	require.Len(t, toks, 2)
	assert.Equal(t, token.ERROR, toks[0].Kind)
}
