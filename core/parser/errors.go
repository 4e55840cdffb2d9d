package parser

import (
	"errors"
	"fmt"
)

// Lexical errors reported by the StatementSplitter. Every error is scoped to
// a single statement; the splitter keeps scanning the rest of the input after
// reporting one.
var (
	ErrUnterminatedSubshell   = errors.New("syntax error: unterminated subshell")
	ErrUnterminatedBrace      = errors.New("syntax error: unterminated brace")
	ErrUnterminatedBracedVar  = errors.New("syntax error: unterminated braced var")
	ErrUnterminatedMethod     = errors.New("syntax error: unterminated method")
	ErrUnterminatedArithmetic = errors.New("syntax error: unterminated arithmetic subexpression")
)

// InvalidCharacterError reports a byte that cannot appear where it was found.
type InvalidCharacterError struct {
	Char rune
	Pos  int // 1-based byte offset into the input
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("syntax error: '%c' at position %d is out of place", e.Char, e.Pos)
}

// IllegalCommandNameError reports a statement whose command name is a glob or
// brace metacharacter standing alone.
type IllegalCommandNameError struct {
	Name string
}

func (e *IllegalCommandNameError) Error() string {
	return "illegal command name: " + e.Name
}

// ExpectedCommandError reports a statement that starts with an operator where
// a command name was required.
type ExpectedCommandError struct {
	Found string // "redirection", "pipe" or "&"
}

func (e *ExpectedCommandError) Error() string {
	return "expected command, but found " + e.Found
}
