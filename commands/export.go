package commands

import (
	"fmt"
	"strings"

	"github.com/riversh/riversh/core/vos"
)

// Export sets environment variables for subsequent commands. Arguments
// without an '=' print the variable's current binding instead.
func Export(p *vos.Proc) int {
	cmd := &SimpleCommand{
		Use:   "export [NAME[=VALUE]] ...",
		Short: "Set export attribute for shell variables.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			for _, envDef := range p.Environ() {
				fmt.Fprintf(p.Stdout(), "export %s\n", envDef)
			}
			return 0
		}

		status := 0
		for _, arg := range args {
			name, value, hasValue := cut(arg, "=")
			if name == "" {
				fmt.Fprintf(p.Stderr(), "export: %q: not a valid identifier\n", arg)
				status = 1
				continue
			}
			if hasValue {
				p.Setenv(name, value)
				continue
			}
			if current, ok := p.LookupEnv(name); ok {
				fmt.Fprintf(p.Stdout(), "export %s=%s\n", name, current)
			}
		}
		return status
	})
}

func cut(s, sep string) (before, after string, found bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

var _ vos.ProcessFunc = Export

func init() {
	addBuiltin("export", Export)
}
