package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// CommandKind is the result class of name resolution.
type CommandKind int

const (
	// Unresolved means the name matched nothing.
	Unresolved CommandKind = iota
	// BuiltinCommand is an in-process procedure.
	BuiltinCommand
	// FunctionCommand is a user-defined function.
	FunctionCommand
	// ExternalCommand is an executable file on $PATH.
	ExternalCommand
)

// Resolution is the outcome of resolving a command name.
type Resolution struct {
	Kind CommandKind
	// Path is the executable path for ExternalCommand.
	Path string
}

// Resolver maps a command name to its execution strategy.
type Resolver interface {
	Resolve(name string) Resolution
}

// PathResolver resolves names against a builtin registry, a function table
// and a $PATH walk, in that order.
type PathResolver struct {
	Fs        afero.Fs
	IsBuiltin func(name string) bool
	// HasFunction may be nil when the shell has no function table yet.
	HasFunction func(name string) bool
	// PathEnv returns the current value of $PATH.
	PathEnv func() string
}

var _ Resolver = (*PathResolver)(nil)

func (r *PathResolver) Resolve(name string) Resolution {
	if r.IsBuiltin != nil && r.IsBuiltin(name) {
		return Resolution{Kind: BuiltinCommand}
	}
	if r.HasFunction != nil && r.HasFunction(name) {
		return Resolution{Kind: FunctionCommand}
	}
	if path, err := r.lookPath(name); err == nil {
		return Resolution{Kind: ExternalCommand, Path: path}
	}
	return Resolution{}
}

// lookPath searches for an executable named name. A name containing a path
// separator is checked directly instead of walking $PATH.
func (r *PathResolver) lookPath(name string) (string, error) {
	if strings.Contains(name, "/") {
		if err := r.isExecutable(name); err != nil {
			return "", err
		}
		return name, nil
	}
	var pathEnv string
	if r.PathEnv != nil {
		pathEnv = r.PathEnv()
	}
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if err := r.isExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: command not found", name)
}

func (r *PathResolver) isExecutable(path string) error {
	info, err := r.Fs.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s: is a directory", path)
	}
	if info.Mode()&0111 == 0 {
		return os.ErrPermission
	}
	return nil
}

// Refine resolves a job's command name into its executable representation.
// I/O endpoints are attached afterwards by the pipeline driver.
func Refine(job *Job, resolver Resolver) (RefinedJob, error) {
	res := resolver.Resolve(job.Command)
	switch res.Kind {
	case BuiltinCommand:
		return NewBuiltinJob(job.Command, job.Args), nil
	case FunctionCommand:
		return NewFunctionJob(job.Command, job.Args), nil
	case ExternalCommand:
		return NewExternalJob(res.Path, job.Args), nil
	default:
		return nil, fmt.Errorf("%s: command not found", job.Command)
	}
}
