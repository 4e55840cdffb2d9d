package commands

import (
	"fmt"

	"github.com/riversh/riversh/core/shell"
	"github.com/riversh/riversh/core/vos"
)

// NewHistory builds the history builtin around the shell's history buffer.
func NewHistory(history shell.History) vos.ProcessFunc {
	return func(p *vos.Proc) int {
		cmd := &SimpleCommand{
			Use:   "history",
			Short: "Display the command history list with line numbers.",
		}

		return cmd.Run(p, func() int {
			for i, line := range history.Lines() {
				fmt.Fprintf(p.Stdout(), "%5d  %s\n", i+1, line)
			}
			return 0
		})
	}
}
