package compiler

import "fmt"

// CompileError is a single diagnostic produced while compiling, attributed to
// a source line and (when available) the offending lexeme.
type CompileError struct {
	Line    int
	Where   string
	Message string
}

func (e *CompileError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at %s: %s", e.Line, e.Where, e.Message)
}

// ErrorList aggregates every CompileError recorded over one compilation, in
// the style of go/scanner.ErrorList (the same shape the teacher codebase
// borrows directly for its own scanner diagnostics), but scoped to this
// language's single-line positions rather than a go/token.FileSet.
type ErrorList []*CompileError

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}

// Err returns el as an error, or nil if el is empty.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}
