package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	text string
	err  error
}

func collect(t *testing.T, data string) []result {
	t.Helper()

	var out []result
	splitter := NewStatementSplitter(data)
	for splitter.Scan() {
		out = append(out, result{text: splitter.Text(), err: splitter.Err()})
	}
	return out
}

func ok(text string) result { return result{text: text} }

func TestSyntaxErrors(t *testing.T) {
	results := collect(t, "echo (echo one); echo $( (echo one); echo ) two; echo $(echo one")
	require.Len(t, results, 4)
	assert.Equal(t, &InvalidCharacterError{Char: '(', Pos: 6}, results[0].err)
	assert.Equal(t, &InvalidCharacterError{Char: '(', Pos: 26}, results[1].err)
	assert.Equal(t, &InvalidCharacterError{Char: ')', Pos: 43}, results[2].err)
	assert.Equal(t, ErrUnterminatedSubshell, results[3].err)

	results = collect(t, ">echo")
	require.Len(t, results, 1)
	assert.Equal(t, &ExpectedCommandError{Found: "redirection"}, results[0].err)

	results = collect(t, "echo $((foo bar baz)")
	require.Len(t, results, 1)
	assert.Equal(t, ErrUnterminatedArithmetic, results[0].err)
}

func TestLeadingOperators(t *testing.T) {
	cases := []struct {
		input string
		err   error
	}{
		{"| cat", &ExpectedCommandError{Found: "pipe"}},
		{"^> out", &ExpectedCommandError{Found: "redirection"}},
		{"< input", &ExpectedCommandError{Found: "redirection"}},
		{"&& echo", &ExpectedCommandError{Found: "&"}},
		{"* foo", &IllegalCommandNameError{Name: "* foo"}},
		{"% foo", &IllegalCommandNameError{Name: "% foo"}},
		{"? foo", &IllegalCommandNameError{Name: "? foo"}},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			results := collect(t, tc.input)
			require.Len(t, results, 1)
			assert.Equal(t, tc.err, results[0].err)
			assert.Empty(t, results[0].text)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t,
		&InvalidCharacterError{Char: '(', Pos: 6},
		"syntax error: '(' at position 6 is out of place")
	assert.EqualError(t,
		&IllegalCommandNameError{Name: "*"},
		"illegal command name: *")
	assert.EqualError(t,
		&ExpectedCommandError{Found: "pipe"},
		"expected command, but found pipe")
}

func TestMethods(t *testing.T) {
	results := collect(t, "echo $join(array, ', '); echo @join(var, ', ')")
	require.Len(t, results, 2)
	assert.Equal(t, ok("echo $join(array, ', ')"), results[0])
	assert.Equal(t, ok("echo @join(var, ', ')"), results[1])
}

func TestProcesses(t *testing.T) {
	for _, res := range collect(t, "echo $(seq 1 10); echo $(seq 1 10)") {
		assert.Equal(t, ok("echo $(seq 1 10)"), res)
	}
}

func TestArrayProcesses(t *testing.T) {
	for _, res := range collect(t, "echo @(echo one; sleep 1); echo @(echo one; sleep 1)") {
		assert.Equal(t, ok("echo @(echo one; sleep 1)"), res)
	}
}

func TestProcessWithStatements(t *testing.T) {
	command := "echo $(seq 1 10; seq 1 10)"
	for _, res := range collect(t, command) {
		assert.Equal(t, ok(command), res)
	}
}

func TestQuotes(t *testing.T) {
	results := collect(t, `echo "This ;'is a test"; echo 'This ;" is also a test'`)
	require.Len(t, results, 2)
	assert.Equal(t, ok(`echo "This ;'is a test"`), results[0])
	assert.Equal(t, ok(`echo 'This ;" is also a test'`), results[1])
}

func TestComments(t *testing.T) {
	results := collect(t, "echo $(echo one # two); echo three # four")
	require.Len(t, results, 2)
	assert.Equal(t, ok("echo $(echo one # two)"), results[0])
	assert.Equal(t, ok("echo three"), results[1])
}

func TestCommentAtStart(t *testing.T) {
	results := collect(t, "# just a comment")
	require.Len(t, results, 1)
	assert.Equal(t, ok(""), results[0])
}

func TestHashInsideWord(t *testing.T) {
	// '#' only starts a comment after a blank or at the very beginning.
	results := collect(t, "echo foo#bar")
	require.Len(t, results, 1)
	assert.Equal(t, ok("echo foo#bar"), results[0])
}

func TestNestedProcess(t *testing.T) {
	for _, command := range []string{
		"echo $(echo one $(echo two) three)",
		"echo $(echo $(echo one; echo two); echo two)",
	} {
		t.Run(command, func(t *testing.T) {
			results := collect(t, command)
			require.Len(t, results, 1)
			assert.Equal(t, ok(command), results[0])
		})
	}
}

func TestNestedArrayProcess(t *testing.T) {
	for _, command := range []string{
		"echo @(echo one @(echo two) three)",
		"echo @(echo @(echo one; echo two); echo two)",
	} {
		t.Run(command, func(t *testing.T) {
			results := collect(t, command)
			require.Len(t, results, 1)
			assert.Equal(t, ok(command), results[0])
		})
	}
}

func TestBracedVariables(t *testing.T) {
	command := "echo ${foo}bar ${bar}baz ${baz}quux @{zardoz}wibble"
	results := collect(t, command)
	require.Len(t, results, 1)
	assert.Equal(t, ok(command), results[0])
}

func TestBracedVariableErrors(t *testing.T) {
	results := collect(t, "echo ${foo bar}")
	require.Len(t, results, 1)
	assert.Equal(t, &InvalidCharacterError{Char: ' ', Pos: 11}, results[0].err)

	results = collect(t, "echo ${unclosed")
	require.Len(t, results, 1)
	assert.Equal(t, ErrUnterminatedBracedVar, results[0].err)
}

func TestUnterminatedConstructs(t *testing.T) {
	cases := []struct {
		input string
		err   error
	}{
		{"echo $(seq 1 10", ErrUnterminatedSubshell},
		{"echo @(a b", ErrUnterminatedSubshell},
		{"echo $join(a, b", ErrUnterminatedMethod},
		{"echo { a b", ErrUnterminatedBrace},
		{"echo $((1 + 2", ErrUnterminatedArithmetic},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			results := collect(t, tc.input)
			require.Len(t, results, 1)
			assert.Equal(t, tc.err, results[0].err)
		})
	}
}

func TestArithmetic(t *testing.T) {
	command := "echo $((foo * bar + baz))"
	results := collect(t, command)
	require.Len(t, results, 1)
	assert.Equal(t, ok(command), results[0])

	// Nested parens inside the expression are tracked separately.
	command = "echo $(((1 + 2) * 3))"
	results = collect(t, command)
	require.Len(t, results, 1)
	assert.Equal(t, ok(command), results[0])
}

func TestUnterminatedQuotes(t *testing.T) {
	// Unterminated quotes are not statement errors; the remainder of the
	// input is taken literally.
	results := collect(t, `echo "unterminated`)
	require.Len(t, results, 1)
	assert.Equal(t, ok(`echo "unterminated`), results[0])

	results = collect(t, "echo 'unterminated; still one")
	require.Len(t, results, 1)
	assert.Equal(t, ok("echo 'unterminated; still one"), results[0])
}

func TestEscapes(t *testing.T) {
	results := collect(t, `echo one\;two; echo three`)
	require.Len(t, results, 2)
	assert.Equal(t, ok(`echo one\;two`), results[0])
	assert.Equal(t, ok("echo three"), results[1])
}

func TestErrorRecovery(t *testing.T) {
	// The statement after a broken one still parses.
	results := collect(t, "echo ); echo fine")
	require.Len(t, results, 2)
	assert.Error(t, results[0].err)
	assert.Equal(t, ok("echo fine"), results[1])
}

func TestElseResplitting(t *testing.T) {
	results := collect(t, "else echo foo")
	require.Len(t, results, 2)
	assert.Equal(t, ok("else"), results[0])
	assert.Equal(t, ok("echo foo"), results[1])

	// "else if" stays a single statement.
	results = collect(t, "else if test")
	require.Len(t, results, 1)
	assert.Equal(t, ok("else if test"), results[0])

	// A bare "else" too.
	results = collect(t, "else")
	require.Len(t, results, 1)
	assert.Equal(t, ok("else"), results[0])
}

func TestEmptyStatements(t *testing.T) {
	results := collect(t, "echo one;; echo two")
	require.Len(t, results, 3)
	assert.Equal(t, ok("echo one"), results[0])
	assert.Equal(t, ok(""), results[1])
	assert.Equal(t, ok("echo two"), results[2])
}

func TestRescanIsStable(t *testing.T) {
	// Statements reported by the splitter re-split to themselves.
	inputs := []string{
		"echo $join(array, ', '); echo @join(var, ', ')",
		"echo $(echo one $(echo two) three); echo ${foo}bar",
		`echo "This ;'is a test"; echo 'This ;" is also a test'`,
	}
	for _, input := range inputs {
		for _, res := range collect(t, input) {
			require.NoError(t, res.err)
			again := collect(t, res.text)
			require.Len(t, again, 1)
			assert.Equal(t, ok(res.text), again[0])
		}
	}
}
