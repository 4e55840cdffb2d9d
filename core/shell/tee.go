package shell

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// teeBufSize is the chunk size of the fan-out copy loop.
const teeBufSize = 4096

// TeeItem copies one stream to multiple sinks. A nil Source reads from the
// running process's own standard input. The item owns its sinks; sink order
// matters only for error attribution.
//
// Because pipeline endpoints are usually blocking pipes, CopyAll must run on
// its own goroutine per item, or the copier can deadlock blocking on a full
// sink while the upstream producer blocks waiting for the source to drain.
type TeeItem struct {
	Source io.Reader
	Sinks  []io.Writer
}

// CopyAll copies the source to every sink until EOF, using a fixed-size
// buffer. Short sink writes are retried until the whole chunk is written;
// the first sink error aborts the copy and is returned, leaving
// already-written sinks with a valid but truncated stream.
//
// relay optionally names exactly one of the live terminal streams to
// additionally duplicate onto; the descriptor is dup(2)'d so the extra sink
// is independently closable. Asking to relay both streams is a programming
// error, not a runtime condition, and panics.
func (t *TeeItem) CopyAll(relay *RedirectFrom) error {
	if relay != nil {
		switch *relay {
		case RedirectStdout:
			f, err := dupFile(os.Stdout, "/dev/stdout")
			if err != nil {
				return err
			}
			t.Sinks = append(t.Sinks, f)
		case RedirectStderr:
			f, err := dupFile(os.Stderr, "/dev/stderr")
			if err != nil {
				return err
			}
			t.Sinks = append(t.Sinks, f)
		default:
			panic("tee: relay must name a single terminal stream")
		}
	}

	source := t.Source
	if source == nil {
		source = os.Stdin
	}
	return copyToSinks(source, t.Sinks)
}

// Close closes every sink and the source where they are closable.
func (t *TeeItem) Close() error {
	var first error
	if c, ok := t.Source.(io.Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			first = err
		}
	}
	for _, sink := range t.Sinks {
		if c, ok := sink.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	t.Source, t.Sinks = nil, nil
	return first
}

func copyToSinks(source io.Reader, sinks []io.Writer) error {
	var buf [teeBufSize]byte
	for {
		n, readErr := source.Read(buf[:])
		for _, sink := range sinks {
			total := 0
			for total < n {
				wrote, err := sink.Write(buf[total:n])
				if err != nil {
					return err
				}
				total += wrote
			}
		}
		switch {
		case readErr == io.EOF:
			return nil
		case readErr != nil:
			return readErr
		case n == 0:
			// A zero-length read signals end of stream.
			return nil
		}
	}
}

// dupFile duplicates an open descriptor into a new, independently closable
// file. Never alias the same descriptor into two owned slots: closing both
// would double-close it.
func dupFile(f *os.File, name string) (*os.File, error) {
	fd, err := unix.Dup(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(fd), name), nil
}
