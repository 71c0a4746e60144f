// Package scanner tokenizes Tok source code for the compiler to consume.
//
// The scanner performs no allocation: every lexeme is a borrowed slice into
// the source buffer passed to Init, which must outlive the scanner and every
// token it produced. Comments (// …) and whitespace are skipped silently;
// newlines advance the line counter so tokens can be attributed to a source
// line for error reporting and for the Chunk's line table.
package scanner

import (
	"github.com/jyotindersingh/goctok/lang/token"
)

// Scanner tokenizes a single in-memory source buffer.
type Scanner struct {
	src     string
	start   int // byte offset of the start of the lexeme being scanned
	current int // byte offset of the next unread byte
	line    int
}

// Init (re)initializes the scanner to tokenize src from the beginning.
func (s *Scanner) Init(src string) {
	s.src = src
	s.start = 0
	s.current = 0
	s.line = 1
}

// Scan returns the next token in the stream. Once it returns a token of kind
// token.EOF, every subsequent call also returns token.EOF.
func (s *Scanner) Scan() token.Token {
	s.skipWhitespaceAndComments()
	s.start = s.current

	if s.atEnd() {
		return s.make(token.EOF)
	}

	c := s.advance()
	switch {
	case isAlpha(c):
		return s.identifier()
	case isDigit(c):
		return s.number()
	}

	switch c {
	case '(':
		return s.make(token.LPAREN)
	case ')':
		return s.make(token.RPAREN)
	case '{':
		return s.make(token.LBRACE)
	case '}':
		return s.make(token.RBRACE)
	case ';':
		return s.make(token.SEMICOLON)
	case ',':
		return s.make(token.COMMA)
	case '.':
		return s.make(token.DOT)
	case '-':
		return s.make(token.MINUS)
	case '+':
		return s.make(token.PLUS)
	case '/':
		return s.make(token.SLASH)
	case '*':
		return s.make(token.STAR)
	case '!':
		return s.make(s.choose('=', token.BANG_EQUAL, token.BANG))
	case '=':
		return s.make(s.choose('=', token.EQUAL_EQUAL, token.EQUAL))
	case '<':
		return s.make(s.choose('=', token.LESS_EQUAL, token.LESS))
	case '>':
		return s.make(s.choose('=', token.GREATER_EQUAL, token.GREATER))
	case '"':
		return s.string()
	}

	return s.errorf("unexpected character")
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

// choose implements the common "maybe a two-char token" pattern: if the next
// byte matches want, it is consumed and ifMatch is returned, else ifNot.
func (s *Scanner) choose(want byte, ifMatch, ifNot token.Kind) token.Kind {
	if s.atEnd() || s.src[s.current] != want {
		return ifNot
	}
	s.current++
	return ifMatch
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.current++
		case '\n':
			s.line++
			s.current++
		case '/':
			if s.peekNext() == '/' {
				for s.peek() != '\n' && !s.atEnd() {
					s.current++
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) string() token.Token {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.current++
	}
	if s.atEnd() {
		return s.errorf("unterminated string")
	}
	s.current++ // closing quote
	return s.make(token.STRING)
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.current++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.current++ // consume '.'
		for isDigit(s.peek()) {
			s.current++
		}
	}
	return s.make(token.NUMBER)
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.current++
	}
	lexeme := s.src[s.start:s.current]
	if kind, ok := token.Keywords[lexeme]; ok {
		return s.make(kind)
	}
	return s.make(token.IDENT)
}

func (s *Scanner) make(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Lexeme: s.src[s.start:s.current], Line: s.line}
}

func (s *Scanner) errorf(msg string) token.Token {
	return token.Token{Kind: token.ERROR, Lexeme: msg, Line: s.line}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
