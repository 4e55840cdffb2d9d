package vos

import (
	"io"
	"os"
)

// VIO is the stdio endpoint triple a procedure runs against.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// VIOAdapter adapts arbitrary readers and writers into a VIO. Nil values
// become /dev/null style endpoints.
type VIOAdapter struct {
	IStdin  io.ReadCloser
	IStdout io.WriteCloser
	IStderr io.WriteCloser
}

var _ VIO = (*VIOAdapter)(nil)

// NewVIOAdapter wraps the given streams, adding no-op Close methods where
// needed.
func NewVIOAdapter(stdin io.Reader, stdout, stderr io.Writer) *VIOAdapter {
	return &VIOAdapter{
		IStdin:  toReadCloserOrClosed(stdin),
		IStdout: toWriteCloserOrDiscard(stdout),
		IStderr: toWriteCloserOrDiscard(stderr),
	}
}

// NewNullIO creates /dev/null style I/O: reads fail closed and writes are
// discarded.
func NewNullIO() VIO {
	return NewVIOAdapter(nil, nil, nil)
}

func (v *VIOAdapter) Stdin() io.ReadCloser   { return v.IStdin }
func (v *VIOAdapter) Stdout() io.WriteCloser { return v.IStdout }
func (v *VIOAdapter) Stderr() io.WriteCloser { return v.IStderr }

func toWriteCloserOrDiscard(w io.Writer) io.WriteCloser {
	if w == nil {
		return &devNull{}
	}
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}
	return nopWriteCloser{w}
}

func toReadCloserOrClosed(r io.Reader) io.ReadCloser {
	if r == nil {
		return &devNull{}
	}
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// devNull fails reads with ErrClosed and discards writes.
type devNull struct{}

var _ io.ReadCloser = (*devNull)(nil)
var _ io.WriteCloser = (*devNull)(nil)

func (*devNull) Read([]byte) (int, error)    { return 0, os.ErrClosed }
func (*devNull) Write(b []byte) (int, error) { return len(b), nil }
func (*devNull) Close() error                { return nil }
