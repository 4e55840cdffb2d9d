// Package parser implements the scanners that turn raw shell input into
// statements and argument tokens.
//
// The statement splitter is a single-pass byte scanner with a set of
// interacting modes: quoting, escaping, `$(...)` command substitutions,
// `@(...)` process substitutions, `${...}`/`@{...}` braced variables,
// literal `{...}` grouping, `$name(...)`/`@name(...)` method calls and
// `$((...))` arithmetic expressions. All of these must agree on byte-exact
// statement boundaries.
package parser

import "strings"

// StatementSplitter splits raw input into statement substrings delimited by
// unquoted, unparenthesized semicolons, comment starts, or end of input.
//
// It follows the bufio.Scanner idiom, except that errors are per statement
// rather than terminal: after Scan reports a statement with a non-nil Err,
// the next call resumes with the remainder of the input. A splitter is
// stateful and forward-only; it must not be shared between goroutines or
// reused once exhausted.
type StatementSplitter struct {
	data string
	read int

	// Quote and construct modes.
	dquote   bool // inside an unescaped double-quoted region
	vbrace   bool // inside ${...} or @{...}
	variab   bool // scanning a scalar-sigil identifier
	array    bool // scanning an array-sigil identifier
	method   bool // inside a name(...) argument list
	mathExpr bool // inside $((...))
	postMath bool // just closed the inner paren of $((...)), expect the second ')'

	// Sigil disambiguation: a bare '$' or '@' was seen and the next byte
	// decides what it introduces. Cleared at the end of every iteration
	// unless the sigil itself was just read.
	comm1 bool // '$'
	comm2 bool // '@'

	pLevel         int // $( ) nesting
	apLevel        int // @( ) nesting
	braceLevel     int // literal { } nesting
	mathParenLevel int // parens inside an arithmetic expression

	text string
	err  error
}

// NewStatementSplitter returns a splitter over data.
func NewStatementSplitter(data string) *StatementSplitter {
	return &StatementSplitter{data: data}
}

// Text returns the statement found by the last call to Scan, trimmed of
// surrounding whitespace. It is empty when Err is non-nil, and also for a
// valid empty statement (e.g. between two consecutive semicolons).
func (s *StatementSplitter) Text() string { return s.text }

// Err returns the lexical error for the statement found by the last call to
// Scan, or nil.
func (s *StatementSplitter) Err() error { return s.err }

// Scan advances to the next statement. It returns false once the input is
// exhausted.
func (s *StatementSplitter) Scan() bool {
	s.text, s.err = "", nil

	data := s.data
	start := s.read
	firstArgFound := false
	elseFound := false
	elsePos := 0
	var lexErr error

	for s.read < len(data) {
		b := data[s.read]
		s.read++
		clearComm := true

		switch {
		case b == '\\':
			// A backslash always escapes exactly the next raw byte.
			s.read++

		case s.postMath:
			// This byte is the second ')' of a $((...)).
			s.postMath = false

		case s.vbrace && invalidBracedVarByte(b):
			// Only identifier bytes, ':', ',' and '}' are legal inside a
			// braced variable. Record the error and keep scanning so the
			// statement terminator is still found.
			if lexErr == nil {
				lexErr = &InvalidCharacterError{Char: rune(b), Pos: s.read}
			}

		case b == '\'' && !s.dquote:
			s.variab, s.array = false, false
			s.skipSingleQuote()

		case b == '"':
			// A quote boundary always ends an in-progress identifier scan.
			s.dquote = !s.dquote
			s.variab, s.array = false, false

		case b == '@':
			s.comm1 = false
			s.comm2, s.array = true, true
			clearComm = false

		case b == '$':
			s.comm2 = false
			s.comm1, s.variab = true, true
			clearComm = false

		case b == '{' && (s.comm1 || s.comm2):
			s.vbrace = true

		case b == '{' && !s.dquote:
			s.braceLevel++

		case b == '}' && s.vbrace:
			s.vbrace = false

		case b == '}' && !s.dquote:
			if s.braceLevel == 0 {
				if lexErr == nil {
					lexErr = &InvalidCharacterError{Char: rune(b), Pos: s.read}
				}
			} else {
				s.braceLevel--
			}

		case b == '(' && s.mathExpr:
			s.mathParenLevel++

		case b == '(' && !(s.comm1 || s.variab || s.array):
			// Bare parentheses are not valid command syntax.
			if lexErr == nil && !s.dquote {
				lexErr = &InvalidCharacterError{Char: rune(b), Pos: s.read}
			}

		case b == '(' && (s.comm1 || s.method):
			s.variab, s.array = false, false
			if s.read < len(data) && data[s.read] == '(' {
				// $(( opens an arithmetic expression; the doubled paren is
				// consumed as one unit, so the level starts at -1 and the
				// next byte's increment brings it back to zero.
				s.comm1 = false
				s.mathExpr = true
				s.mathParenLevel = -1
			} else {
				s.pLevel++
			}

		case b == '(' && s.comm2:
			s.apLevel++

		case b == '(':
			// A '(' directly after a completed identifier scan opens a
			// method-call argument list.
			s.variab, s.array = false, false
			s.method = true

		case b == ')' && s.mathExpr:
			if s.mathParenLevel == 0 {
				if s.read >= len(data) {
					if lexErr == nil {
						lexErr = ErrUnterminatedArithmetic
					}
				} else if next := data[s.read]; next == ')' {
					s.mathExpr = false
					s.postMath = true
				} else if lexErr == nil {
					lexErr = &InvalidCharacterError{Char: rune(next), Pos: s.read}
				}
			} else {
				s.mathParenLevel--
			}

		case b == ')' && s.method && s.pLevel == 0:
			s.method = false

		case b == ')' && s.pLevel+s.apLevel == 0:
			if lexErr == nil && !s.dquote {
				lexErr = &InvalidCharacterError{Char: rune(b), Pos: s.read}
			}

		case b == ')' && s.pLevel != 0:
			s.pLevel--

		case b == ')':
			s.apLevel--

		case b == ';' && !s.dquote && s.pLevel == 0 && s.apLevel == 0:
			if lexErr != nil {
				s.err = lexErr
			} else {
				s.text = strings.TrimSpace(data[start : s.read-1])
			}
			return true

		case b == '#' && (s.read == 1 || (!s.dquote && s.pLevel+s.apLevel == 0 && isBlank(data[s.read-2]))):
			// A comment terminates the statement and discards the rest of
			// the input.
			out := strings.TrimSpace(data[start : s.read-1])
			s.read = len(data)
			if lexErr != nil {
				s.err = lexErr
			} else {
				s.text = out
			}
			return true

		case b == ' ' && elseFound:
			// An "else" not followed by "if" is re-split into its own
			// synthetic statement.
			out := strings.TrimSpace(data[elsePos : s.read-1])
			if out != "" && out != "if" {
				s.read = elsePos
				s.text = "else"
				return true
			}
			elseFound = false

		case b == ' ' && !firstArgFound:
			out := strings.TrimSpace(data[start : s.read-1])
			if out != "" {
				if out == "else" {
					elseFound = true
					elsePos = s.read
				} else {
					firstArgFound = true
				}
			}

		default:
			if (s.variab || s.array) && invalidIdentByte(b) {
				s.variab, s.array = false, false
			}
		}

		if clearComm {
			s.comm1, s.comm2 = false, false
		}
	}

	if start >= s.read {
		return false
	}
	end := s.read
	if end > len(data) {
		end = len(data)
	}
	s.read = len(data)

	switch {
	case lexErr != nil:
		s.err = lexErr
	case s.pLevel != 0 || s.apLevel != 0:
		s.err = ErrUnterminatedSubshell
	case s.method:
		s.err = ErrUnterminatedMethod
	case s.vbrace:
		s.err = ErrUnterminatedBracedVar
	case s.braceLevel != 0:
		s.err = ErrUnterminatedBrace
	case s.mathExpr:
		s.err = ErrUnterminatedArithmetic
	default:
		out := strings.TrimSpace(data[start:end])
		if out == "" {
			return true
		}
		switch out[0] {
		case '>', '<', '^':
			s.err = &ExpectedCommandError{Found: "redirection"}
		case '|':
			s.err = &ExpectedCommandError{Found: "pipe"}
		case '&':
			s.err = &ExpectedCommandError{Found: "&"}
		case '*', '%', '?', '{', '}':
			s.err = &IllegalCommandNameError{Name: out}
		default:
			s.text = out
		}
	}
	return true
}

// skipSingleQuote consumes a raw single-quoted region. Backslash still
// escapes the following byte so an escaped quote does not close the region.
func (s *StatementSplitter) skipSingleQuote() {
	for s.read < len(s.data) {
		c := s.data[s.read]
		s.read++
		if c == '\\' {
			s.read++
		} else if c == '\'' {
			return
		}
	}
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

// invalidIdentByte reports whether b matches [^A-Za-z0-9_].
func invalidIdentByte(b byte) bool {
	return b <= 47 || (b >= 58 && b <= 64) || (b >= 91 && b <= 94) || b == 96 ||
		(b >= 123 && b <= 127)
}

// invalidBracedVarByte reports whether b is illegal inside ${...}/@{...}:
// anything but [A-Za-z0-9_], ':', ',' and '}'. The closing brace and
// backslash escapes are handled by their own scanner rules.
func invalidBracedVarByte(b byte) bool {
	return b <= 43 || (b >= 45 && b <= 47) || (b >= 59 && b <= 64) ||
		(b >= 91 && b <= 94) || b == 96 || b == 123 || b == 124 ||
		b == 126 || b == 127
}
