// Package shell implements the riversh job model: parsed statements become
// pipelines of jobs, jobs are expanded and resolved into refined jobs with
// their I/O endpoints wired, and refined jobs are handed to the runner.
package shell

import (
	"github.com/riversh/riversh/core/parser"
)

// RedirectFrom names which output stream of a job feeds a pipe or
// redirection.
type RedirectFrom int

const (
	RedirectStdout RedirectFrom = iota
	RedirectStderr
	RedirectBoth
)

func (r RedirectFrom) String() string {
	switch r {
	case RedirectStdout:
		return "stdout"
	case RedirectStderr:
		return "stderr"
	case RedirectBoth:
		return "both"
	}
	return "unknown"
}

// JobKind is the sequencing relation between a job and the next job in its
// pipeline.
type JobKind int

const (
	// Last marks the end of a pipeline.
	Last JobKind = iota
	// Background detaches the pipeline from the foreground.
	Background
	// And runs the next job only if this one succeeds.
	And
	// Or runs the next job only if this one fails.
	Or
	// Pipe connects this job's output to the next job's input; the stream
	// carried is the job's PipeFrom.
	Pipe
)

func (k JobKind) String() string {
	switch k {
	case Last:
		return "last"
	case Background:
		return "background"
	case And:
		return "and"
	case Or:
		return "or"
	case Pipe:
		return "pipe"
	}
	return "unknown"
}

// Job is one statement's command with its arguments and its sequencing
// relation to the next job. The command name is captured once at
// construction and never re-derived, so expansion cannot change it.
type Job struct {
	Command string
	Args    []string
	Kind    JobKind
	// PipeFrom selects the stream carried to the next job when Kind is Pipe.
	PipeFrom RedirectFrom
}

// NewJob builds a job from a non-empty argument list. The first argument is
// the command name.
func NewJob(args []string, kind JobKind) *Job {
	return &Job{Command: args[0], Args: args, Kind: kind}
}

// NewPipeJob builds a job that pipes the given stream into the next job.
func NewPipeJob(args []string, from RedirectFrom) *Job {
	job := NewJob(args, Pipe)
	job.PipeFrom = from
	return job
}

// historyOp selects which part of the most recent history entry a history
// back-reference expands to.
type historyOp int

const (
	opAll historyOp = iota
	opLastArg
	opFirstArg
	opCommand
	opNoCommand
)

// Expand replaces every argument with the concatenation of its expansions,
// in order. The five history back-reference tokens are resolved against the
// newest history entry instead of the word expander. An expansion that
// yields no words leaves a single empty string in the argument's slot, so
// expansion never changes positional semantics by deleting a slot.
func (j *Job) Expand(expander WordExpander, history History) {
	expanded := make([]string, 0, len(j.Args))
	for _, arg := range j.Args {
		switch arg {
		case "!!":
			expanded = append(expanded, expandLastCommand(expander, history, opAll)...)
		case "!$":
			expanded = append(expanded, expandLastCommand(expander, history, opLastArg)...)
		case "!0":
			expanded = append(expanded, expandLastCommand(expander, history, opCommand)...)
		case "!^":
			expanded = append(expanded, expandLastCommand(expander, history, opFirstArg)...)
		case "!*":
			expanded = append(expanded, expandLastCommand(expander, history, opNoCommand)...)
		default:
			expanded = append(expanded, expandArg(expander, arg)...)
		}
	}
	j.Args = expanded
}

// expandLastCommand resolves a history back-reference. With no history at
// all the result is a single empty string.
func expandLastCommand(expander WordExpander, history History, op historyOp) []string {
	buffer, ok := history.Newest()
	if !ok {
		return []string{""}
	}
	switch op {
	case opLastArg:
		return expandArg(expander, parser.LastArgument(buffer))
	case opFirstArg:
		return expandArg(expander, parser.SecondArgument(buffer))
	case opCommand:
		return expandArg(expander, parser.FirstArgument(buffer))
	case opNoCommand:
		return expandArgs(expander, parser.ArgumentsTail(buffer))
	default:
		return expandArgs(expander, buffer)
	}
}

func expandArgs(expander WordExpander, buffer string) []string {
	var out []string
	for _, arg := range parser.SplitArguments(buffer) {
		out = append(out, expandArg(expander, arg)...)
	}
	return out
}

// expandArg expands one argument, substituting a single empty string when
// the expansion is empty.
func expandArg(expander WordExpander, arg string) []string {
	res := expander.Expand(arg)
	if len(res) == 0 {
		return []string{""}
	}
	return res
}
