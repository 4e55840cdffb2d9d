package shell

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/riversh/riversh/core/vos"
)

// Runner drives one pipeline to completion for the CLI. It is a minimal
// foreground executor: externals are spawned with their attached endpoints,
// builtins and functions run in process, Cat and Tee helpers run their copy
// loops, and And/Or sequencing short-circuits on the previous exit status.
// Job control (stopping, resuming, background reaping) is out of scope.
type Runner struct {
	Env      vos.VEnv
	Resolver Resolver
	// Builtins invokes a builtin by name. Required when the resolver can
	// return BuiltinCommand.
	Builtins func(name string) vos.ProcessFunc
	// Functions invokes a user function by name.
	Functions func(name string) vos.ProcessFunc

	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Run executes the pipeline and returns the exit status of its last job.
func (r *Runner) Run(pipeline *Pipeline) (int, error) {
	status := 0
	items := pipeline.Items
	for i := 0; i < len(items); {
		end := i
		for end < len(items) && items[end].Job.Kind == Pipe {
			end++
		}
		if end >= len(items) {
			end = len(items) - 1
		}
		segment := items[i : end+1]
		kind := items[end].Job.Kind

		var err error
		status, err = r.runSegment(segment)
		if err != nil {
			return status, err
		}

		i = end + 1
		switch kind {
		case And:
			if status != 0 {
				i = skipSequence(items, i, false)
			}
		case Or:
			if status == 0 {
				i = skipSequence(items, i, true)
			}
		}
	}
	return status, nil
}

// skipSequence advances past jobs that the short-circuit rules disable.
// After a failed `&&` we skip until an `||` boundary and vice versa.
func skipSequence(items []PipeItem, i int, skipOr bool) int {
	for i < len(items) {
		kind := items[i].Job.Kind
		if (skipOr && kind == Or) || (!skipOr && kind == And) {
			return i + 1
		}
		if kind == Last || kind == Background {
			return i + 1
		}
		i++
	}
	return i
}

// runSegment executes one pipe-connected run of jobs.
func (r *Runner) runSegment(segment []PipeItem) (int, error) {
	jobs := make([]RefinedJob, 0, len(segment))

	// Refine all jobs first so a resolution error wires nothing.
	for _, item := range segment {
		job, err := Refine(item.Job, r.Resolver)
		if err != nil {
			return 127, err
		}
		jobs = append(jobs, job)
	}

	var teeJobs []*TeeJob
	var catJobs []*CatJob

	// Attach endpoints.
	for i, item := range segment {
		job := jobs[i]

		stdin, extraCat, err := r.openInputs(item.Inputs)
		if err != nil {
			return 1, err
		}
		if extraCat != nil {
			// Fan-in: a synthesized Cat job feeds the real job through a
			// pipe.
			pr, pw, err := os.Pipe()
			if err != nil {
				return 1, err
			}
			extraCat.SetStdout(pw)
			job.SetStdin(pr)
			catJobs = append(catJobs, extraCat)
		} else if stdin != nil {
			job.SetStdin(stdin)
		} else if i == 0 && r.Stdin != nil {
			// Jobs own their endpoints, so hand over a duplicate rather
			// than the shell's own descriptor.
			if dup, err := dupFile(r.Stdin, r.Stdin.Name()); err == nil {
				job.SetStdin(dup)
			}
		}

		stdoutTargets, stderrTargets, err := r.openOutputs(item.Outputs)
		if err != nil {
			return 1, err
		}

		pipeNext := item.Job.Kind == Pipe && i+1 < len(jobs)
		var pipeWriter, pipeWriterErr *os.File
		if pipeNext {
			pr, pw, err := os.Pipe()
			if err != nil {
				return 1, err
			}
			jobs[i+1].SetStdin(pr)
			pipeWriter = pw
			if item.Job.PipeFrom == RedirectBoth {
				// Each stream must own an independently closable handle.
				dup, err := dupFile(pw, "|")
				if err != nil {
					return 1, err
				}
				pipeWriterErr = dup
			} else if item.Job.PipeFrom == RedirectStderr {
				pipeWriter, pipeWriterErr = nil, pw
			}
		}

		out := r.streamTargets(stdoutTargets, pipeWriter != nil, pipeWriter, r.Stdout)
		errOut := r.streamTargets(stderrTargets, pipeWriterErr != nil, pipeWriterErr, r.Stderr)

		outTee := attachStream(job, RedirectStdout, out)
		errTee := attachStream(job, RedirectStderr, errOut)
		if outTee != nil || errTee != nil {
			// Fan-out: a synthesized Tee job drains the real job's streams.
			tee := NewTeeJob(outTee, errTee)
			teeJobs = append(teeJobs, tee)
		}
	}

	// Start tee copiers on their own goroutines so a full pipe cannot
	// deadlock against the producing job.
	var wg sync.WaitGroup
	var teeErr error
	var teeErrOnce sync.Once
	for _, tee := range teeJobs {
		for _, item := range []*TeeItem{tee.Out, tee.Err} {
			if item == nil {
				continue
			}
			wg.Add(1)
			go func(item *TeeItem) {
				defer wg.Done()
				if err := item.CopyAll(nil); err != nil {
					teeErrOnce.Do(func() { teeErr = err })
				}
				item.Close()
			}(item)
		}
	}
	for _, cat := range catJobs {
		wg.Add(1)
		go func(cat *CatJob) {
			defer wg.Done()
			r.runCat(cat)
			cat.Close()
		}(cat)
	}

	// Start every job before waiting on any so pipe-connected jobs run
	// concurrently.
	waits := make([]func() int, 0, len(jobs))
	for _, job := range jobs {
		wait, err := r.startJob(job)
		if err != nil {
			job.Close()
			wg.Wait()
			return 1, err
		}
		waits = append(waits, wait)
	}

	status := 0
	for _, wait := range waits {
		status = wait()
	}
	wg.Wait()
	if teeErr != nil {
		return 1, teeErr
	}
	return status, nil
}

// streamTargets decides where one output stream of a job goes: its
// redirection files, the connecting pipe, or the terminal default. The
// terminal handle is duplicated because the job takes ownership of whatever
// it is given.
func (r *Runner) streamTargets(files []*os.File, piped bool, pipeWriter, fallback *os.File) []*os.File {
	var out []*os.File
	out = append(out, files...)
	if piped && pipeWriter != nil {
		out = append(out, pipeWriter)
	}
	if len(out) == 0 && fallback != nil {
		if dup, err := dupFile(fallback, fallback.Name()); err == nil {
			out = append(out, dup)
		}
	}
	return out
}

// attachStream wires one output stream. A single target attaches directly;
// multiple targets return a TeeItem fed by a fresh pipe.
func attachStream(job RefinedJob, stream RedirectFrom, targets []*os.File) *TeeItem {
	set := func(f *os.File) {
		if stream == RedirectStdout {
			job.SetStdout(f)
		} else {
			job.SetStderr(f)
		}
	}
	switch len(targets) {
	case 0:
		return nil
	case 1:
		set(targets[0])
		return nil
	default:
		pr, pw, err := os.Pipe()
		if err != nil {
			set(targets[0])
			return nil
		}
		set(pw)
		item := &TeeItem{Source: pr}
		for _, f := range targets {
			item.Sinks = append(item.Sinks, f)
		}
		return item
	}
}

// openInputs opens a pipeline item's input list. One plain file input is
// returned directly; multiple inputs or any here-string synthesize a Cat
// job.
func (r *Runner) openInputs(inputs []Input) (*os.File, *CatJob, error) {
	if len(inputs) == 0 {
		return nil, nil, nil
	}
	if len(inputs) == 1 && inputs[0].Kind == InputFile {
		f, err := os.Open(inputs[0].Value)
		if err != nil {
			return nil, nil, err
		}
		return f, nil, nil
	}

	var sources []*os.File
	for _, input := range inputs {
		switch input.Kind {
		case InputFile:
			f, err := os.Open(input.Value)
			if err != nil {
				for _, s := range sources {
					s.Close()
				}
				return nil, nil, err
			}
			sources = append(sources, f)
		case InputHereString:
			pr, pw, err := os.Pipe()
			if err != nil {
				for _, s := range sources {
					s.Close()
				}
				return nil, nil, err
			}
			go func(text string, pw *os.File) {
				io.WriteString(pw, text+"\n")
				pw.Close()
			}(input.Value, pw)
			sources = append(sources, pr)
		}
	}
	return nil, NewCatJob(sources), nil
}

// openOutputs opens a pipeline item's redirection targets, grouped per
// stream. A RedirectBoth target is opened once and duplicated so each
// stream owns an independently closable handle.
func (r *Runner) openOutputs(outputs []Redirection) (stdout, stderr []*os.File, err error) {
	closeAll := func() {
		for _, f := range append(stdout, stderr...) {
			f.Close()
		}
	}
	for _, redir := range outputs {
		flags := os.O_WRONLY | os.O_CREATE
		if redir.Append {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(redir.File, flags, 0644)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		switch redir.From {
		case RedirectStdout:
			stdout = append(stdout, f)
		case RedirectStderr:
			stderr = append(stderr, f)
		case RedirectBoth:
			dup, err := dupFile(f, redir.File)
			if err != nil {
				f.Close()
				closeAll()
				return nil, nil, err
			}
			stdout = append(stdout, f)
			stderr = append(stderr, dup)
		}
	}
	return stdout, stderr, nil
}

// startJob launches one refined job and returns a wait function yielding
// its exit status.
func (r *Runner) startJob(job RefinedJob) (func() int, error) {
	switch j := job.(type) {
	case *ExternalJob:
		if err := j.Cmd.Start(); err != nil {
			job.Close()
			return nil, err
		}
		// The child owns its copies of the handles now; release ours so
		// pipe readers see EOF.
		j.Close()
		return func() int {
			if err := j.Cmd.Wait(); err != nil {
				if exit, ok := err.(interface{ ExitCode() int }); ok {
					return exit.ExitCode()
				}
				return 1
			}
			return 0
		}, nil

	case *BuiltinJob:
		fn := r.Builtins(j.Name)
		if fn == nil {
			job.Close()
			return nil, fmt.Errorf("%s: builtin not registered", j.Name)
		}
		return r.startProc(fn, j.Args, &j.stdio), nil

	case *FunctionJob:
		var fn vos.ProcessFunc
		if r.Functions != nil {
			fn = r.Functions(j.Name)
		}
		if fn == nil {
			job.Close()
			return nil, fmt.Errorf("%s: function not defined", j.Name)
		}
		return r.startProc(fn, j.Args, &j.stdio), nil

	case *CatJob:
		done := make(chan int, 1)
		go func() {
			done <- r.runCat(j)
			j.Close()
		}()
		return func() int { return <-done }, nil

	case *TeeJob:
		done := make(chan int, 1)
		go func() {
			status := 0
			for _, item := range []*TeeItem{j.Out, j.Err} {
				if item == nil {
					continue
				}
				if err := item.CopyAll(nil); err != nil {
					fmt.Fprintf(r.errWriter(), "riversh: %v\n", err)
					status = 1
				}
			}
			j.Close()
			done <- status
		}()
		return func() int { return <-done }, nil

	default:
		job.Close()
		return nil, fmt.Errorf("unknown job variant %q", job.Short())
	}
}

// startProc runs an in-process procedure on its own goroutine so it can
// take part in a pipe without deadlocking.
func (r *Runner) startProc(fn vos.ProcessFunc, args []string, endpoints *stdio) func() int {
	proc := r.procFor(args, endpoints)
	done := make(chan int, 1)
	go func() {
		done <- fn(proc)
		endpoints.Close()
	}()
	return func() int { return <-done }
}

// runCat drains the fan-in sources, or the fallback stdin slot when the
// source list is empty, into stdout.
func (r *Runner) runCat(j *CatJob) int {
	var out io.Writer = r.Stdout
	if j.Stdout != nil {
		out = j.Stdout
	}
	sources := j.Sources
	if len(sources) == 0 && j.Stdin != nil {
		sources = []*os.File{j.Stdin}
	}
	for _, src := range sources {
		if _, err := io.Copy(out, src); err != nil {
			fmt.Fprintf(r.errWriter(), "riversh: %v\n", err)
			return 1
		}
	}
	return 0
}

func (r *Runner) errWriter() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

func (r *Runner) procFor(args []string, endpoints *stdio) *vos.Proc {
	var in io.Reader
	if endpoints.Stdin != nil {
		in = endpoints.Stdin
	} else if r.Stdin != nil {
		in = r.Stdin
	}
	var out io.Writer
	if endpoints.Stdout != nil {
		out = endpoints.Stdout
	} else if r.Stdout != nil {
		out = r.Stdout
	}
	var errOut io.Writer
	if endpoints.Stderr != nil {
		errOut = endpoints.Stderr
	} else if r.Stderr != nil {
		errOut = r.Stderr
	}
	return vos.NewProc(args, r.Env, vos.NewVIOAdapter(in, out, errOut))
}

// Describe renders one line per refined job for job-control listings.
func Describe(jobs []RefinedJob) string {
	var b strings.Builder
	for i, job := range jobs {
		fmt.Fprintf(&b, "[%d] %s", i, job.Short())
		if long := job.Long(); long != "" {
			fmt.Fprintf(&b, "\t%s", long)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
