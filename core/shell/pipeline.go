package shell

import (
	"fmt"

	"github.com/riversh/riversh/core/parser"
)

// Redirection is one output target of a pipeline item.
type Redirection struct {
	From   RedirectFrom
	File   string
	Append bool
}

// InputKind distinguishes the sources a pipeline item can read from.
type InputKind int

const (
	// InputFile reads from a named file.
	InputFile InputKind = iota
	// InputHereString feeds a literal string followed by a newline.
	InputHereString
)

// Input is one input source of a pipeline item.
type Input struct {
	Kind  InputKind
	Value string
}

// PipeItem is one job of a pipeline together with its redirection lists.
// More than one output for the same stream fans out through a Tee job; more
// than one input fans in through a Cat job.
type PipeItem struct {
	Job     *Job
	Outputs []Redirection
	Inputs  []Input
}

// Pipeline is the ordered list of jobs a single statement resolves to.
type Pipeline struct {
	Items []PipeItem
}

// ParsePipeline splits one statement into a pipeline of jobs, recognizing
// the sequencing operators `&&`, `||`, `|`, `^|`, `&|`, a trailing `&`, the
// output redirections `>`, `>>`, `^>`, `^>>`, `&>`, `&>>` and the inputs
// `<` and `<<< word`. Operator tokens are recognized only when they stand
// alone as arguments; quoted or glued text stays an ordinary argument.
func ParsePipeline(statement string) (*Pipeline, error) {
	pipeline := &Pipeline{}
	var args []string
	var outputs []Redirection
	var inputs []Input

	flush := func(kind JobKind, from RedirectFrom) error {
		if len(args) == 0 {
			return fmt.Errorf("expected command, but found %q", kind.String())
		}
		job := NewJob(args, kind)
		job.PipeFrom = from
		pipeline.Items = append(pipeline.Items, PipeItem{
			Job:     job,
			Outputs: outputs,
			Inputs:  inputs,
		})
		args, outputs, inputs = nil, nil, nil
		return nil
	}

	tokens := parser.SplitArguments(statement)
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		switch token {
		case "&&":
			if err := flush(And, RedirectStdout); err != nil {
				return nil, err
			}
		case "||":
			if err := flush(Or, RedirectStdout); err != nil {
				return nil, err
			}
		case "|":
			if err := flush(Pipe, RedirectStdout); err != nil {
				return nil, err
			}
		case "^|":
			if err := flush(Pipe, RedirectStderr); err != nil {
				return nil, err
			}
		case "&|":
			if err := flush(Pipe, RedirectBoth); err != nil {
				return nil, err
			}
		case ">", ">>", "^>", "^>>", "&>", "&>>":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("no file provided for redirection %q", token)
			}
			i++
			outputs = append(outputs, Redirection{
				From:   redirectStream(token),
				File:   tokens[i],
				Append: len(token) >= 2 && token[len(token)-2] == '>',
			})
		case "<":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("no file provided for input redirection")
			}
			i++
			inputs = append(inputs, Input{Kind: InputFile, Value: tokens[i]})
		case "<<<":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("no string provided for here-string")
			}
			i++
			inputs = append(inputs, Input{Kind: InputHereString, Value: tokens[i]})
		case "&":
			if i != len(tokens)-1 {
				return nil, fmt.Errorf("syntax error: '&' at token %d is out of place", i+1)
			}
			return pipeline, flush(Background, RedirectStdout)
		default:
			args = append(args, token)
		}
	}

	if len(args) == 0 && len(pipeline.Items) == 0 {
		// Empty statement: an empty pipeline, not an error.
		return pipeline, nil
	}
	if err := flush(Last, RedirectStdout); err != nil {
		return nil, err
	}
	return pipeline, nil
}

func redirectStream(op string) RedirectFrom {
	switch op[0] {
	case '^':
		return RedirectStderr
	case '&':
		return RedirectBoth
	default:
		return RedirectStdout
	}
}

// Expand expands every job of the pipeline in place.
func (p *Pipeline) Expand(expander WordExpander, history History) {
	for i := range p.Items {
		p.Items[i].Job.Expand(expander, history)
	}
}
