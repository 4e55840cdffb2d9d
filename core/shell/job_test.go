package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riversh/riversh/core/vos"
)

func TestPreserveEmptyArg(t *testing.T) {
	job := NewJob([]string{"rename", "", "0", "a"}, Last)
	expanded := *job
	expanded.Expand(LiteralExpander{}, NewMemoryHistory(0))

	assert.Equal(t, job.Args, expanded.Args)
	assert.Equal(t, job.Command, expanded.Command)
}

func TestExpandKeepsCommand(t *testing.T) {
	env := vos.NewMapEnv()
	env.Setenv("CMD", "rm")

	job := NewJob([]string{"$CMD", "$CMD"}, Last)
	job.Expand(&EnvExpander{Env: env}, NewMemoryHistory(0))

	// The command name is fixed at construction; only arguments expand.
	assert.Equal(t, "$CMD", job.Command)
	assert.Equal(t, []string{"rm", "rm"}, job.Args)
}

func TestHistoryBackReferences(t *testing.T) {
	history := NewMemoryHistory(0)
	history.Add("echo one two three")

	cases := []struct {
		token string
		want  []string
	}{
		{"!!", []string{"echo", "one", "two", "three"}},
		{"!$", []string{"three"}},
		{"!0", []string{"echo"}},
		{"!^", []string{"one"}},
		{"!*", []string{"one", "two", "three"}},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			job := NewJob([]string{"cmd", tc.token}, Last)
			job.Expand(LiteralExpander{}, history)
			assert.Equal(t, append([]string{"cmd"}, tc.want...), job.Args)
		})
	}
}

func TestHistoryBackReferenceEmptyHistory(t *testing.T) {
	job := NewJob([]string{"cmd", "!!"}, Last)
	job.Expand(LiteralExpander{}, NewMemoryHistory(0))

	// No history at all substitutes a single empty string, keeping the
	// argument slot.
	assert.Equal(t, []string{"cmd", ""}, job.Args)
}

func TestHistoryBackReferenceQuotedArgs(t *testing.T) {
	history := NewMemoryHistory(0)
	history.Add(`printf "%s %s" 'a b'`)

	job := NewJob([]string{"cmd", "!$"}, Last)
	job.Expand(LiteralExpander{}, history)

	// Argument re-tokenizing respects quoting, so the quoted word comes
	// back whole.
	assert.Equal(t, []string{"cmd", "'a b'"}, job.Args)
}

func TestJobKindString(t *testing.T) {
	assert.Equal(t, "last", Last.String())
	assert.Equal(t, "background", Background.String())
	assert.Equal(t, "and", And.String())
	assert.Equal(t, "or", Or.String())
	assert.Equal(t, "pipe", Pipe.String())
}

func TestRedirectFromString(t *testing.T) {
	assert.Equal(t, "stdout", RedirectStdout.String())
	assert.Equal(t, "stderr", RedirectStderr.String())
	assert.Equal(t, "both", RedirectBoth.String())
}
