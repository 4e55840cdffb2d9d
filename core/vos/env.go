// Package vos provides the abstract environment and stdio capabilities the
// shell core runs against, so it never mutates process-global state and
// stays testable in isolation.
package vos

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// VEnv is an environment sink: a variable store the shell reads from and
// exports to. The process environment is only one possible implementation.
type VEnv interface {
	// Setenv sets the value of the variable named by the key.
	Setenv(key, value string) error

	// Unsetenv unsets a single variable.
	Unsetenv(key string) error

	// LookupEnv retrieves the value of the variable named by the key,
	// reporting whether it is present at all.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the variable named by the key, empty
	// when unset.
	Getenv(key string) string

	// ExpandEnv replaces ${var} or $var in s with the current values.
	// References to undefined variables are replaced by the empty string.
	ExpandEnv(s string) string

	// Environ returns a copy of the variables in "key=value" form, sorted
	// by key.
	Environ() []string
}

// CopyEnv copies all variables in "key=value" form into dst.
func CopyEnv(dst VEnv, environ []string) error {
	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// NewMapEnv creates an empty in-memory environment.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates an in-memory environment pre-populated from
// "key=value" entries, e.g. os.Environ().
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}
	// Ignore error, it is never set for MapEnv.
	_ = CopyEnv(out, environ)
	return out
}

// MapEnv implements an in-memory VEnv.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ VEnv = (*MapEnv)(nil)

func (m *MapEnv) Setenv(key, value string) error {
	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
	return nil
}

func (m *MapEnv) Unsetenv(key string) error {
	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env != nil {
		delete(m.env, key)
	}
	return nil
}

func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()
	val, ok := m.env[key]
	return val, ok
}

func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

func (m *MapEnv) ExpandEnv(s string) string {
	return os.Expand(s, m.Getenv)
}

func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	env := make([]string, 0, len(m.env))
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)
	return env
}
