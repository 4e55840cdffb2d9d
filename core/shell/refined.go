package shell

import (
	"os"
	"os/exec"
	"strings"
)

// RefinedJob is the resolved, executable form of a Job. Concrete variants
// are ExternalJob, BuiltinJob, FunctionJob, CatJob and TeeJob.
//
// A refined job exclusively owns every file handle attached to it: handles
// are moved in through the setters, never shared, and released by Close
// unless execution hands them to a child process first. The setters are
// idempotent in the sense that attaching a new handle simply replaces the
// slot; the caller keeps ownership of any handle it swaps out that way.
type RefinedJob interface {
	// SetStdin attaches the job's standard input. Cat treats this slot as a
	// fallback used only when its source list is empty; see CatJob.
	SetStdin(f *os.File)
	// SetStdout attaches the job's standard output.
	SetStdout(f *os.File)
	// SetStderr attaches the job's standard error. Cat has no stderr
	// concept and ignores it.
	SetStderr(f *os.File)
	// Short returns a one-line description for job-control listings.
	Short() string
	// Long returns the full command line, when the variant has one.
	Long() string
	// Close releases every handle the job still owns.
	Close() error
}

// ExternalJob owns a not-yet-spawned external process. Attached handles
// become the process's standard stream redirections.
type ExternalJob struct {
	Cmd *exec.Cmd
}

// NewExternalJob builds an external job for the resolved path and the full
// argument list (argv[0] included).
func NewExternalJob(path string, args []string) *ExternalJob {
	cmd := &exec.Cmd{Path: path, Args: args}
	return &ExternalJob{Cmd: cmd}
}

func (j *ExternalJob) SetStdin(f *os.File)  { j.Cmd.Stdin = f }
func (j *ExternalJob) SetStdout(f *os.File) { j.Cmd.Stdout = f }
func (j *ExternalJob) SetStderr(f *os.File) { j.Cmd.Stderr = f }

func (j *ExternalJob) Short() string {
	if len(j.Cmd.Args) > 0 {
		return j.Cmd.Args[0]
	}
	return j.Cmd.Path
}

func (j *ExternalJob) Long() string { return strings.Join(j.Cmd.Args, " ") }

func (j *ExternalJob) Close() error {
	var first error
	for _, endpoint := range []interface{}{j.Cmd.Stdin, j.Cmd.Stdout, j.Cmd.Stderr} {
		if f, ok := endpoint.(*os.File); ok && f != nil {
			if err := f.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	j.Cmd.Stdin, j.Cmd.Stdout, j.Cmd.Stderr = nil, nil, nil
	return first
}

// stdio is the shared endpoint triple of the in-process variants.
type stdio struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

func (s *stdio) SetStdin(f *os.File)  { s.Stdin = f }
func (s *stdio) SetStdout(f *os.File) { s.Stdout = f }
func (s *stdio) SetStderr(f *os.File) { s.Stderr = f }

func (s *stdio) Close() error {
	var first error
	for _, f := range []*os.File{s.Stdin, s.Stdout, s.Stderr} {
		if f != nil {
			if err := f.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	s.Stdin, s.Stdout, s.Stderr = nil, nil, nil
	return first
}

// BuiltinJob invokes an in-process procedure.
type BuiltinJob struct {
	Name string
	Args []string
	stdio
}

// NewBuiltinJob builds a builtin invocation.
func NewBuiltinJob(name string, args []string) *BuiltinJob {
	return &BuiltinJob{Name: name, Args: args}
}

func (j *BuiltinJob) Short() string { return j.Name }
func (j *BuiltinJob) Long() string  { return strings.Join(j.Args, " ") }

// FunctionJob invokes a user-defined function.
type FunctionJob struct {
	Name string
	Args []string
	stdio
}

// NewFunctionJob builds a function invocation.
func NewFunctionJob(name string, args []string) *FunctionJob {
	return &FunctionJob{Name: name, Args: args}
}

func (j *FunctionJob) Short() string { return j.Name }
func (j *FunctionJob) Long() string  { return strings.Join(j.Args, " ") }

// CatJob concatenates multiple input sources into one output stream. It has
// no stderr concept.
type CatJob struct {
	Sources []*os.File
	// Stdin is read only when Sources is empty; attaching one does not add
	// to the source list. This mirrors how a lone input behaves and is a
	// deliberate exception to the other variants' stdin semantics.
	Stdin  *os.File
	Stdout *os.File
}

// NewCatJob builds a fan-in job over the given sources. Ownership of the
// handles moves to the job.
func NewCatJob(sources []*os.File) *CatJob {
	return &CatJob{Sources: sources}
}

func (j *CatJob) SetStdin(f *os.File)  { j.Stdin = f }
func (j *CatJob) SetStdout(f *os.File) { j.Stdout = f }
func (j *CatJob) SetStderr(*os.File)   {}

func (j *CatJob) Short() string { return "multi-input" }
func (j *CatJob) Long() string  { return "" }

func (j *CatJob) Close() error {
	var first error
	files := append([]*os.File{j.Stdin, j.Stdout}, j.Sources...)
	for _, f := range files {
		if f != nil {
			if err := f.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	j.Stdin, j.Stdout, j.Sources = nil, nil, nil
	return first
}

// TeeJob duplicates up to two independent streams, one copier per output
// stream.
type TeeJob struct {
	// Out duplicates the stdout stream, Err the stderr stream. Either may
	// be nil.
	Out *TeeItem
	Err *TeeItem
	stdio
}

// NewTeeJob builds a fan-out job from the per-stream copiers.
func NewTeeJob(out, err *TeeItem) *TeeJob {
	return &TeeJob{Out: out, Err: err}
}

func (j *TeeJob) Short() string { return "multi-output" }
func (j *TeeJob) Long() string  { return "" }

func (j *TeeJob) Close() error {
	first := j.stdio.Close()
	for _, item := range []*TeeItem{j.Out, j.Err} {
		if item == nil {
			continue
		}
		if err := item.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
