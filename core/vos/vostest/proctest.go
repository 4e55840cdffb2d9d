// Package vostest runs in-process procedures against deterministic
// environments and captured stdio for tests.
package vostest

import (
	"bytes"
	"io"

	"github.com/riversh/riversh/core/vos"
)

// Cmd is similar to exec.Cmd.
type Cmd struct {
	// Process function
	Process vos.ProcessFunc
	// Process arguments, the first argument should be the process name.
	Argv []string
	// If Env is non-empty, it gives the environment variables for the
	// new process in the form NAME=VALUE.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ExitStatus int

	// VEnv is the live environment the process ran against; populated by
	// Run so tests can inspect mutations.
	VEnv vos.VEnv
}

func Command(process vos.ProcessFunc, name string, arg ...string) *Cmd {
	return &Cmd{
		Process: process,
		Argv:    append([]string{name}, arg...),
	}
}

// CombinedOutput runs the command returning interleaved stdout and stderr.
func (c *Cmd) CombinedOutput() ([]byte, error) {
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	if err := c.Run(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Output runs the command returning its stdout.
func (c *Cmd) Output() ([]byte, error) {
	buf := &bytes.Buffer{}
	c.Stdout = buf

	if err := c.Run(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the command and waits for it to complete. The exit status is
// recorded in ExitStatus.
func (c *Cmd) Run() error {
	c.VEnv = vos.NewMapEnvFromEnvList(c.Env)
	vio := vos.NewVIOAdapter(c.Stdin, c.Stdout, c.Stderr)
	c.ExitStatus = c.Process(vos.NewProc(c.Argv, c.VEnv, vio))
	return nil
}
