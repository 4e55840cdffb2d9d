package commands

import (
	"fmt"

	"github.com/riversh/riversh/core/vos"
)

// Env implements the POSIX env command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/env.html
func Env(p *vos.Proc) int {
	cmd := &SimpleCommand{
		Use:   "env",
		Short: "Print the environment for command invocation.",
	}

	return cmd.Run(p, func() int {
		for _, envDef := range p.Environ() {
			fmt.Fprintln(p.Stdout(), envDef)
		}

		return 0
	})
}

var _ vos.ProcessFunc = Env

func init() {
	addBuiltin("env", Env)
}
