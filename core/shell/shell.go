package shell

import (
	"fmt"
	"os"

	"github.com/riversh/riversh/core/logger"
	"github.com/riversh/riversh/core/parser"
	"github.com/riversh/riversh/core/vos"
)

// Shell is the front end façade: it splits raw input into statements,
// parses each statement into a pipeline, expands the jobs and drives them
// through the runner.
type Shell struct {
	Env      vos.VEnv
	Expander WordExpander
	History  History
	Runner   *Runner
	Log      *logger.SessionLogger

	// Quit is set by the exit builtin.
	Quit bool

	lastStatus int
}

// Options configures New.
type Options struct {
	Env      vos.VEnv
	Expander WordExpander
	History  History
	Runner   *Runner
	Log      *logger.SessionLogger
}

// New builds a shell, filling in defaults for anything unset.
func New(opts Options) *Shell {
	if opts.Env == nil {
		opts.Env = vos.NewMapEnvFromEnvList(os.Environ())
	}
	if opts.Expander == nil {
		opts.Expander = &EnvExpander{Env: opts.Env}
	}
	if opts.History == nil {
		opts.History = NewMemoryHistory(0)
	}
	if opts.Log == nil {
		opts.Log = logger.NewJSONLinesLogger(nil).Sessionless()
	}
	return &Shell{
		Env:      opts.Env,
		Expander: opts.Expander,
		History:  opts.History,
		Runner:   opts.Runner,
		Log:      opts.Log,
	}
}

// LastStatus returns the exit status of the last pipeline run.
func (s *Shell) LastStatus() int { return s.lastStatus }

// RunLine splits one raw input line into statements and runs each pipeline.
// Lexical errors are reported and skipped; the rest of the line still runs.
// The line is recorded in history before expansion so history
// back-references see the raw text.
func (s *Shell) RunLine(line string) int {
	splitter := parser.NewStatementSplitter(line)
	recorded := false
	for splitter.Scan() {
		if err := splitter.Err(); err != nil {
			fmt.Fprintf(s.Runner.Stderr, "riversh: %v\n", err)
			s.Log.LexError(line, err)
			s.lastStatus = 1
			continue
		}
		statement := splitter.Text()
		if statement == "" {
			continue
		}
		if !recorded {
			// One history entry per line, not per statement.
			defer s.History.Add(line)
			recorded = true
		}
		s.runStatement(statement)
		if s.Quit {
			break
		}
	}
	return s.lastStatus
}

func (s *Shell) runStatement(statement string) {
	pipeline, err := ParsePipeline(statement)
	if err != nil {
		fmt.Fprintf(s.Runner.Stderr, "riversh: %v\n", err)
		s.lastStatus = 1
		return
	}
	if len(pipeline.Items) == 0 {
		return
	}
	pipeline.Expand(s.Expander, s.History)
	s.Log.Statement(statement)

	status, err := s.Runner.Run(pipeline)
	if err != nil {
		fmt.Fprintf(s.Runner.Stderr, "riversh: %v\n", err)
		s.Log.UnknownCommand(pipeline.Items[0].Job.Command, err)
	}
	s.lastStatus = status
}
