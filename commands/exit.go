package commands

import (
	"fmt"
	"strconv"

	"github.com/riversh/riversh/core/vos"
)

// NewExit builds the exit builtin. quit is called with the requested exit
// status so the interactive loop can stop.
func NewExit(quit func(status int)) vos.ProcessFunc {
	return func(p *vos.Proc) int {
		cmd := &SimpleCommand{
			Use:   "exit [STATUS]",
			Short: "Exit the shell.",
		}

		return cmd.Run(p, func() int {
			status := 0
			if args := cmd.Flags().Args(); len(args) > 0 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					fmt.Fprintf(p.Stderr(), "exit: %s: numeric argument required\n", args[0])
					parsed = 2
				}
				status = parsed
			}
			quit(status)
			return status
		})
	}
}
