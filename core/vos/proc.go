package vos

// Proc is the execution context handed to an in-process procedure: its
// argument vector, environment sink and stdio endpoints.
type Proc struct {
	VEnv
	VIO
	Argv []string
}

// NewProc builds a procedure context. argv must include the procedure name
// as its first element.
func NewProc(argv []string, env VEnv, io VIO) *Proc {
	return &Proc{VEnv: env, VIO: io, Argv: argv}
}

// Args returns the full argument vector, name included.
func (p *Proc) Args() []string { return p.Argv }

// ProcessFunc is an in-process procedure; it returns the exit status.
type ProcessFunc func(p *Proc) int
