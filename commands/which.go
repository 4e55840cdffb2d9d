package commands

import (
	"fmt"

	"github.com/riversh/riversh/core/shell"
	"github.com/riversh/riversh/core/vos"
)

// NewWhich builds the which builtin around the shell's command resolver.
func NewWhich(resolver shell.Resolver) vos.ProcessFunc {
	return func(p *vos.Proc) int {
		cmd := &SimpleCommand{
			Use:   "which COMMAND ...",
			Short: "Locate a command.",
		}

		return cmd.Run(p, func() int {
			status := 0
			for _, name := range cmd.Flags().Args() {
				res := resolver.Resolve(name)
				switch res.Kind {
				case shell.BuiltinCommand:
					fmt.Fprintf(p.Stdout(), "%s: shell builtin\n", name)
				case shell.FunctionCommand:
					fmt.Fprintf(p.Stdout(), "%s: shell function\n", name)
				case shell.ExternalCommand:
					fmt.Fprintln(p.Stdout(), res.Path)
				default:
					fmt.Fprintf(p.Stderr(), "which: no %s in ($PATH)\n", name)
					status = 1
				}
			}
			return status
		})
	}
}
