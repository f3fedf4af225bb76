package literal

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("invalid literal")

// SyntaxError reports input that is not a valid literal. Line and Column are
// 1-based; Column counts characters, not bytes.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErrorf(line, col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
}
