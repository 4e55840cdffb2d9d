package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	promptUserColor = color.New(color.FgGreen, color.Bold)
	promptPathColor = color.New(color.FgBlue, color.Bold)
)

// REPL is the interactive read-eval-print loop around a session.
type REPL struct {
	Session  *Session
	Readline *readline.Instance

	isTerminal bool
}

// NewREPL attaches a line editor to the session's terminal.
func NewREPL(session *Session) (*REPL, error) {
	isTerminal := isatty.IsTerminal(os.Stdout.Fd())

	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(os.Stdin),
		Stdout: os.Stdout,
		Stderr: os.Stderr,

		FuncIsTerminal: func() bool {
			return isTerminal
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &REPL{
		Session:    session,
		Readline:   rl,
		isTerminal: isTerminal,
	}, nil
}

// Prompt expands the PS1-style template: \u is the user, \h the hostname,
// \w the working directory with $HOME abbreviated to ~, and \$ the prompt
// terminator.
func (r *REPL) Prompt() string {
	env := r.Session.Env
	prompt := env.Getenv(EnvPrompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}

	user := env.Getenv(EnvUser)
	host := env.Getenv(EnvHostname)
	if r.isTerminal {
		user = promptUserColor.Sprint(user)
		host = promptUserColor.Sprint(host)
	}
	prompt = strings.ReplaceAll(prompt, `\u`, user)
	prompt = strings.ReplaceAll(prompt, `\h`, host)

	pwd, _ := os.Getwd()
	if home := env.Getenv(EnvHome); home != "" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	if r.isTerminal {
		pwd = promptPathColor.Sprint(pwd)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if os.Getuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return prompt
}

// Run reads lines until EOF or the exit builtin. The exit status of the
// last pipeline is returned.
func (r *REPL) Run() int {
	if motd := r.Session.Config.Motd; motd != "" {
		fmt.Fprintln(r.Readline, motd)
	}
	r.Session.RunInitCommands()

	for {
		r.Readline.SetPrompt(r.Prompt())
		line, err := r.Readline.Readline()

		switch {
		case err == io.EOF:
			return r.Session.Shell.LastStatus()

		case err == readline.ErrInterrupt:
			continue // ^C abandons the line.

		case err != nil:
			fmt.Fprintf(os.Stderr, "riversh: readline: %v\n", err)
			continue

		case strings.TrimSpace(line) == "":
			continue

		default:
			r.Session.RunLine(line)
			if r.Session.Shell.Quit {
				return r.Session.Shell.LastStatus()
			}
		}
	}
}

// Close releases the line editor.
func (r *REPL) Close() error {
	return r.Readline.Close()
}
