// Package core wires the shell front end to the terminal, the configured
// history store and the event log.
package core

import (
	"fmt"
	"io"
	"os"

	shlex "github.com/anmitsu/go-shlex"
	"github.com/spf13/afero"

	"github.com/riversh/riversh/commands"
	"github.com/riversh/riversh/core/config"
	"github.com/riversh/riversh/core/logger"
	"github.com/riversh/riversh/core/shell"
	"github.com/riversh/riversh/core/store"
	"github.com/riversh/riversh/core/vos"
)

const (
	EnvHome     = "HOME"
	EnvPWD      = "PWD"
	EnvPath     = "PATH"
	EnvPrompt   = "PS1"
	EnvHostname = "HOSTNAME"
	EnvUser     = "USER"

	DefaultPrompt = `\u@\h:\w\$ `
	DefaultPath   = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"
)

// Session is one user-facing shell run: the front end plus the sinks it
// reports to.
type Session struct {
	Config *config.Configuration
	Shell  *shell.Shell
	Env    vos.VEnv
	Log    *logger.SessionLogger

	toClose listCloser
}

// NewSession builds a session from the configuration. fs is the filesystem
// used for command resolution and the configuration directory.
func NewSession(configuration *config.Configuration, fs afero.Fs) (*Session, error) {
	session := &Session{Config: configuration}

	env := vos.NewMapEnvFromEnvList(os.Environ())
	if err := vos.CopyEnv(env, configuration.Env); err != nil {
		session.Close()
		return nil, fmt.Errorf("bad env entry in configuration: %v", err)
	}
	session.Env = env
	initEnv(env)
	if configuration.Prompt != "" {
		env.Setenv(EnvPrompt, configuration.Prompt)
	}

	appLog, err := configuration.OpenAppLog(fs)
	if err != nil {
		session.Close()
		return nil, err
	}
	session.toClose = append(session.toClose, appLog)
	session.Log = logger.NewJSONLinesLogger(appLog).NewSession()

	var history shell.History = shell.NewMemoryHistory(configuration.HistoryLimit)
	if configuration.PersistHistory {
		st, err := store.Open(configuration.HistoryDBPath())
		if err != nil {
			session.Close()
			return nil, err
		}
		session.toClose = append(session.toClose, st)
		history, err = NewBoltHistory(st, configuration.HistoryLimit)
		if err != nil {
			session.Close()
			return nil, err
		}
	}

	resolver := &shell.PathResolver{
		Fs:        fs,
		IsBuiltin: commands.IsBuiltin,
		PathEnv:   func() string { return env.Getenv(EnvPath) },
	}

	runner := &shell.Runner{
		Env:      env,
		Resolver: resolver,
		Builtins: commands.Lookup,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}

	session.Shell = shell.New(shell.Options{
		Env:     env,
		History: history,
		Runner:  runner,
		Log:     session.Log,
	})

	commands.Register("exit", commands.NewExit(func(status int) {
		session.Shell.Quit = true
	}))
	commands.Register("history", commands.NewHistory(history))
	commands.Register("which", commands.NewWhich(resolver))

	session.Log.SessionStart(env.Getenv(EnvUser))
	return session, nil
}

// initEnv fills in login-style defaults without clobbering inherited
// values.
func initEnv(env vos.VEnv) {
	if _, ok := env.LookupEnv(EnvPath); !ok {
		env.Setenv(EnvPath, DefaultPath)
	}
	if _, ok := env.LookupEnv(EnvPrompt); !ok {
		env.Setenv(EnvPrompt, DefaultPrompt)
	}
	if _, ok := env.LookupEnv(EnvHostname); !ok {
		if host, err := os.Hostname(); err == nil {
			env.Setenv(EnvHostname, host)
		}
	}
	if _, ok := env.LookupEnv(EnvUser); !ok {
		env.Setenv(EnvUser, "user")
	}
	if _, ok := env.LookupEnv(EnvPWD); !ok {
		if wd, err := os.Getwd(); err == nil {
			env.Setenv(EnvPWD, wd)
		}
	}
}

// RunInitCommands runs the configuration's trusted startup commands. These
// come from the operator, not the user, so they are split with plain word
// splitting instead of the statement tokenizer and dispatched one job at a
// time.
func (s *Session) RunInitCommands() {
	for _, line := range s.Config.InitCommands {
		tokens, err := shlex.Split(line, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "riversh: bad init command %q: %v\n", line, err)
			continue
		}
		for i, tok := range tokens {
			tokens[i] = s.Env.ExpandEnv(tok)
		}
		if len(tokens) == 0 {
			continue
		}

		pipeline := &shell.Pipeline{Items: []shell.PipeItem{
			{Job: shell.NewJob(tokens, shell.Last)},
		}}
		if _, err := s.Shell.Runner.Run(pipeline); err != nil {
			fmt.Fprintf(os.Stderr, "riversh: %v\n", err)
		}
	}
}

// RunLine feeds one raw line through the shell.
func (s *Session) RunLine(line string) int {
	return s.Shell.RunLine(line)
}

// Close ends the session, flushing the log and closing the history store.
func (s *Session) Close() error {
	if s.Log != nil && s.Shell != nil {
		s.Log.SessionEnd(s.Shell.LastStatus())
	}
	return s.toClose.Close()
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
