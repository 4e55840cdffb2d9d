// Package commands holds the in-process builtin procedures and their
// registry. Builtins that need shell state (history, the resolver, the quit
// flag) are registered at startup through constructors instead of init.
package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/pborman/getopt/v2"

	"github.com/riversh/riversh/core/vos"
)

// AllBuiltins maps a builtin name to its procedure.
var AllBuiltins = make(map[string]vos.ProcessFunc)

// addBuiltin registers a builtin at package init time.
func addBuiltin(name string, fn vos.ProcessFunc) {
	AllBuiltins[name] = fn
}

// Register installs a builtin at startup; used for builtins constructed
// around shell state.
func Register(name string, fn vos.ProcessFunc) {
	AllBuiltins[name] = fn
}

// IsBuiltin reports whether name is a registered builtin.
func IsBuiltin(name string) bool {
	_, ok := AllBuiltins[name]
	return ok
}

// Lookup returns the procedure for name, or nil.
func Lookup(name string) vos.ProcessFunc {
	return AllBuiltins[name]
}

// Names returns every registered builtin name, sorted.
func Names() []string {
	out := make([]string, 0, len(AllBuiltins))
	for name := range AllBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag
	// isn't added.
	ShowHelp *bool
	// NeverBail skips interacting with stdout/stderr on failure and
	// always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(p *vos.Proc, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(p.Args(), nil)
	if err != nil && !s.NeverBail {
		fmt.Fprintf(p.Stderr(), "error: %s\n\n", err)

		s.PrintHelp(p.Stdout())
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(p.Stdout())
		return 0
	}

	return callback()
}
